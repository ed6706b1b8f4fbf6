// Package label is the parse product spec §6's parse(source) returns:
// an ordered sequence of parsed commands plus the label-level
// attributes set by them, without rasterizing anything.
package label

import (
	"zplrender/internal/command"
	"zplrender/internal/element"
	"zplrender/internal/rendererr"
	"zplrender/internal/state"
	"zplrender/internal/token"
)

// Command is one parsed ZPL command, exposed for inspection without
// re-tokenizing the source.
type Command struct {
	Prefix token.Prefix
	Code   string
	Raw    string
}

// Label is the fully parsed product: the command sequence plus the
// label-level attributes those commands set, and the elements they
// produced along the way.
type Label struct {
	Commands []Command

	PrintWidthDots  int
	LabelLengthDots int
	HomeX, HomeY    int
	ShiftX          int
	TopY            int

	Elements []element.Element
}

// Parse tokenizes and executes source against a fresh state, then
// packages the result as a Label. Unlike Render, it does not need a
// Canvas/Symbol backend — it stops at the element list.
func Parse(source string) (*Label, []*rendererr.Warning) {
	toks, _ := token.All(source)
	commands := make([]Command, 0, len(toks))
	for _, t := range toks {
		commands = append(commands, Command{Prefix: t.Prefix, Code: t.Code, Raw: t.RawContent(source)})
	}

	st := state.New()
	warnings := command.Run(source, st)

	return &Label{
		Commands:        commands,
		PrintWidthDots:  st.PrintWidthDots,
		LabelLengthDots: st.LabelLengthDots,
		HomeX:           st.HomeX,
		HomeY:           st.HomeY,
		ShiftX:          st.ShiftX,
		TopY:            st.TopY,
		Elements:        st.Elements,
	}, warnings
}
