package command

import (
	"zplrender/internal/rendererr"
	"zplrender/internal/state"
)

// Context is threaded through every command's Execute call: the modal
// state it mutates, and a sink for non-fatal warnings.
type Context struct {
	State *state.State
	Warn  func(*rendererr.Warning)
}

func (c *Context) warn(kind rendererr.WarningKind, detail string) {
	if c.Warn != nil {
		c.Warn(rendererr.New(kind, -1, detail))
	}
}

// Command is one parsed, ready-to-run ZPL command: mutate state and/or
// emit an element and/or stage a pending barcode (spec §4.2).
type Command interface {
	Execute(ctx *Context)
}

// Factory parses a command's payload into an executable Command.
type Factory func(payload string) Command

// registry is the code -> factory table, built once at package init
// time and never mutated afterward — it is safe for concurrent use
// across independent renders, the same way the teacher's registry is
// built once at process start and then only read.
var registry = map[string]Factory{}

func register(code string, f Factory) {
	registry[code] = f
}

// Lookup resolves a command code to its factory. Font-select is the
// one two-character family with 36+ possible codes ("A0".."AZ","A@");
// rather than enumerate every one, any "A<id>" code dispatches to the
// shared font-select factory, which reads the id back out of the code.
func Lookup(code string) (Factory, bool) {
	if f, ok := registry[code]; ok {
		return f, true
	}
	if len(code) == 2 && code[0] == 'A' {
		return fontSelectFactory(code[1:]), true
	}
	return nil, false
}

// Supported reports whether code is a recognized command, for the
// validator (spec §4.4) without needing a full parse.
func Supported(code string) bool {
	_, ok := Lookup(code)
	return ok
}

// funcCommand adapts a plain function to the Command interface, for
// the many commands whose entire behavior is "mutate state".
type funcCommand func(ctx *Context)

func (f funcCommand) Execute(ctx *Context) { f(ctx) }
