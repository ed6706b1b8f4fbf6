package command

import "strings"

// decodeHex decodes ^FH hex-escape sequences (ind + 2 hex digits) in s,
// leaving literal bytes untouched. A malformed escape (not followed by
// two hex digits) is passed through literally rather than aborting.
func decodeHex(s string, ind byte) string {
	if ind == 0 {
		ind = '_'
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == ind && i+2 < len(s) && isHexDigit(s[i+1]) && isHexDigit(s[i+2]) {
			hi := hexVal(s[i+1])
			lo := hexVal(s[i+2])
			b.WriteByte(byte(hi<<4 | lo))
			i += 2
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'A' && c <= 'F') || (c >= 'a' && c <= 'f')
}

func hexVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	default:
		return int(c-'a') + 10
	}
}

// stripQRPrefix removes the ZPL QR data convention's leading
// "<ecc-override><mode>," prefix (e.g. "HA,") from content bound for a
// pending QR barcode. The prefix letters are discarded: the element
// keeps the error-correction level ^BQ staged on the PendingBarcode.
func stripQRPrefix(s string) string {
	comma := strings.IndexByte(s, ',')
	if comma != 2 {
		return s
	}
	return s[comma+1:]
}
