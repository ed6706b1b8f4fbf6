package command

import (
	"zplrender/internal/rendererr"
	"zplrender/internal/state"
	"zplrender/internal/token"
)

// Run tokenizes source and executes every recognized command against
// st in order, collecting tokenizer and unknown-command warnings
// alongside whatever warnings individual commands raise. It never
// returns an error: an unrenderable or malformed source still
// produces whatever elements its recognizable prefix yields (spec §7 —
// only a non-positive canvas size fails a render outright, and that
// check belongs to the caller, not the executor).
func Run(source string, st *state.State) []*rendererr.Warning {
	var warnings []*rendererr.Warning
	collect := func(w *rendererr.Warning) { warnings = append(warnings, w) }

	tokens, tzWarnings := token.All(source)
	warnings = append(warnings, tzWarnings...)

	ctx := &Context{State: st, Warn: collect}

	for _, tok := range tokens {
		factory, ok := Lookup(tok.Code)
		if !ok {
			warnings = append(warnings, rendererr.New(rendererr.KindUnknownCommand, tok.SourceOffset, tok.Code))
			continue
		}
		factory(tok.Payload).Execute(ctx)
	}

	return warnings
}
