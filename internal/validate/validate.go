// Package validate implements the lightweight ZPL structural check
// (spec §4.4): it walks tokens without ever executing them, so it can
// validate sources that would otherwise take a long time (or never
// finish producing elements) to actually render.
package validate

import (
	"fmt"

	"zplrender/internal/command"
	"zplrender/internal/token"
)

// Messages reports every structural or lexical problem found in
// source. An empty slice means the source is valid.
func Messages(source string) []string {
	var msgs []string

	tokens, warnings := token.All(source)
	for _, w := range warnings {
		msgs = append(msgs, w.Error())
	}

	opens, closes := 0, 0
	for _, tok := range tokens {
		switch tok.Code {
		case "XA":
			opens++
		case "XZ":
			closes++
		}
		if !command.Supported(tok.Code) {
			msgs = append(msgs, fmt.Sprintf("unsupported command %q at offset %d", tok.Code, tok.SourceOffset))
		}
	}

	if opens == 0 {
		msgs = append(msgs, "missing ^XA label start")
	}
	if closes == 0 {
		msgs = append(msgs, "missing ^XZ label end")
	}
	if opens != closes {
		msgs = append(msgs, fmt.Sprintf("mismatched label frames: %d ^XA vs %d ^XZ", opens, closes))
	}

	return msgs
}
