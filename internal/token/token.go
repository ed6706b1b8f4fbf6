// Package token implements the ZPL tokenizer: it splits a source string
// into {prefix, code, payload} tokens, honoring the payload-rule
// overrides that let field data legally contain '^' and '~'.
package token

import (
	"strings"

	"zplrender/internal/rendererr"
)

// Prefix is the command-introducing byte: '^' or '~'.
type Prefix byte

const (
	Caret Prefix = '^'
	Tilde Prefix = '~'
)

// Token is a single {prefix, code, payload} unit produced by the
// tokenizer, along with its location in the source.
type Token struct {
	Prefix       Prefix
	Code         string
	Payload      string
	SourceOffset int
	Length       int
}

// RawContent returns the exact source slice this token was built from,
// used by the token-coverage invariant (spec §8, invariant 1).
func (t Token) RawContent(source string) string {
	end := t.SourceOffset + t.Length
	if end > len(source) {
		end = len(source)
	}
	return source[t.SourceOffset:end]
}

// fieldDataCodes lists the field-data command codes whose payload runs
// to the next "^FS" rather than the next prefix (the DF, FX, GF and DG
// overrides are handled separately in readPayload).
var fieldDataCodes = map[string]bool{"FD": true, "SN": true, "FV": true}

// Tokenizer is a forward-only, lazy iterator over a ZPL source string,
// shaped like bufio.Scanner: call Scan() until it returns false, then
// read the current token with Token().
type Tokenizer struct {
	src      string
	pos      int
	cur      Token
	warnings []*rendererr.Warning
}

// New returns a Tokenizer over source.
func New(source string) *Tokenizer {
	return &Tokenizer{src: source}
}

// Warnings returns every TokenizerWarning accumulated so far.
func (tz *Tokenizer) Warnings() []*rendererr.Warning {
	return tz.warnings
}

// Scan advances to the next token, returning false when the source is
// exhausted. Garbage between commands (anything before the first '^'
// or '~') is skipped silently, matching spec §4.1's ordering rule.
func (tz *Tokenizer) Scan() bool {
	for tz.pos < len(tz.src) {
		c := tz.src[tz.pos]
		if c != '^' && c != '~' {
			tz.pos++
			continue
		}

		start := tz.pos
		prefix := Prefix(c)
		tz.pos++

		code, ok := tz.readCode()
		if !ok {
			// Stray prefix followed by a non-alphanumeric: skipped silently.
			continue
		}

		payload := tz.readPayload(code)

		tz.cur = Token{
			Prefix:       prefix,
			Code:         code,
			Payload:      payload,
			SourceOffset: start,
			Length:       tz.pos - start,
		}
		return true
	}
	return false
}

// Token returns the token produced by the most recent successful Scan.
func (tz *Tokenizer) Token() Token {
	return tz.cur
}

// readCode extracts 1-2 alphanumerics (or '@' for the scalable-font
// variant) after a prefix has just been consumed. The font-select
// command is special-cased: the character after 'A' is a font
// identifier, not part of a two-letter mnemonic, but it is still kept
// as part of the code so the registry can dispatch on it directly.
func (tz *Tokenizer) readCode() (string, bool) {
	if tz.pos >= len(tz.src) || !isCodeChar(tz.src[tz.pos]) {
		return "", false
	}
	first := tz.src[tz.pos]
	tz.pos++

	if first == 'A' {
		if tz.pos < len(tz.src) && isFontIDChar(tz.src[tz.pos]) {
			code := tz.src[tz.pos-1 : tz.pos+1]
			tz.pos++
			return code, true
		}
		return "A", true
	}

	if tz.pos < len(tz.src) && isCodeChar(tz.src[tz.pos]) {
		code := tz.src[tz.pos-1 : tz.pos+1]
		tz.pos++
		return code, true
	}
	return string(first), true
}

func isCodeChar(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isFontIDChar(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'A' && b <= 'Z') || b == '@'
}

// readPayload consumes the payload for the token whose code was just
// read, applying the command-specific terminator overrides of §4.1.
// tz.pos is left just past the consumed payload.
func (tz *Tokenizer) readPayload(code string) string {
	upper := strings.ToUpper(code)

	switch {
	case fieldDataCodes[upper]:
		return tz.readUntilFS()
	case upper == "DF":
		return tz.readUntilXZInclusive()
	case upper == "FX":
		return tz.readUntilNextPrefix()
	case upper == "GF" || upper == "DG":
		return tz.readGraphicPayload(upper == "DG")
	default:
		return tz.readUntilNextPrefix()
	}
}

// readUntilNextPrefix is the generic rule: payload runs up to but not
// including the next '^' or '~'.
func (tz *Tokenizer) readUntilNextPrefix() string {
	start := tz.pos
	for tz.pos < len(tz.src) {
		c := tz.src[tz.pos]
		if c == '^' || c == '~' {
			break
		}
		tz.pos++
	}
	return tz.src[start:tz.pos]
}

// readUntilFS implements the FD/SN/FV override: the payload extends
// until the next literal "^FS" (case-insensitive), which is the only
// way ZPL field data may legally contain '^' or '~'. A truncated
// payload (no "^FS" before end of input) falls back to the generic
// rule and records a TokenizerWarning.
func (tz *Tokenizer) readUntilFS() string {
	start := tz.pos
	idx := indexFoldFS(tz.src[tz.pos:])
	if idx < 0 {
		tz.warnings = append(tz.warnings, rendererr.New(
			rendererr.KindTokenizer, start, "^FD/^SN/^FV without terminating ^FS"))
		return tz.readUntilNextPrefix()
	}
	payload := tz.src[start : start+idx]
	tz.pos = start + idx
	return payload
}

// indexFoldFS finds the byte offset of the first case-insensitive
// "^FS" in s, or -1.
func indexFoldFS(s string) int {
	for i := 0; i+3 <= len(s); i++ {
		if s[i] == '^' &&
			(s[i+1] == 'F' || s[i+1] == 'f') &&
			(s[i+2] == 'S' || s[i+2] == 's') {
			return i
		}
	}
	return -1
}

// readUntilXZInclusive implements the DF override: payload extends
// through the terminating "^XZ", inclusive.
func (tz *Tokenizer) readUntilXZInclusive() string {
	start := tz.pos
	rest := tz.src[tz.pos:]
	idx := strings.Index(strings.ToUpper(rest), "^XZ")
	if idx < 0 {
		tz.warnings = append(tz.warnings, rendererr.New(
			rendererr.KindTokenizer, start, "^DF without terminating ^XZ"))
		tz.pos = len(tz.src)
		return tz.src[start:]
	}
	end := idx + 3
	tz.pos = start + end
	return tz.src[start:tz.pos]
}

// readGraphicPayload implements the GF/~DG override: parse header
// parameters up through the required commas, use the byte-count
// parameter to find the exact end of the data, then stop there so the
// next prefix begins a new token. ASCII-hex data (always for ~DG, and
// for ^GF with format 'A') spans twice the byte count; binary ^GF
// payloads use the raw count.
func (tz *Tokenizer) readGraphicPayload(alwaysHex bool) string {
	start := tz.pos
	rest := tz.src[tz.pos:]

	// Header: up to 4 comma-separated params for GF (a,b,c,d), or
	// 3 for ~DG (name,t,w) followed by the hex blob. In both cases the
	// byte-count-bearing field is needed to size the trailing data; we
	// walk commas generically and look at the parameter in the
	// position documented by §4.1.
	commaPositions := make([]int, 0, 4)
	for i := 0; i < len(rest) && len(commaPositions) < 4; i++ {
		if rest[i] == ',' {
			commaPositions = append(commaPositions, i)
		}
		if rest[i] == '^' || rest[i] == '~' {
			break
		}
	}
	if len(commaPositions) < 3 {
		// Malformed header: fall back to generic rule.
		return tz.readUntilNextPrefix()
	}

	isASCIIHexGF := alwaysHex || (len(rest) > 0 && (rest[0] == 'A' || rest[0] == 'a'))

	var byteCountField string
	if len(commaPositions) >= 4 {
		byteCountField = rest[commaPositions[1]+1 : commaPositions[2]]
	} else {
		byteCountField = rest[commaPositions[0]+1 : commaPositions[1]]
	}
	totalBytes := parseLeadingInt(byteCountField)

	dataStart := commaPositions[len(commaPositions)-1] + 1
	dataLen := totalBytes
	if isASCIIHexGF {
		dataLen = totalBytes * 2
	}

	dataEnd := dataStart + dataLen
	if dataEnd > len(rest) {
		dataEnd = len(rest)
	}

	tz.pos = start + dataEnd
	return rest[:dataEnd]
}

func parseLeadingInt(s string) int {
	s = strings.TrimSpace(s)
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
	}
	return n
}

// All tokenizes the entire source eagerly and returns every token in
// source order, along with accumulated warnings.
func All(source string) ([]Token, []*rendererr.Warning) {
	tz := New(source)
	var toks []Token
	for tz.Scan() {
		toks = append(toks, tz.Token())
	}
	return toks, tz.Warnings()
}
