package command

import "zplrender/internal/state"

func init() {
	// ^PW p: print width in dots.
	register("PW", func(payload string) Command {
		params := splitParams(payload)
		w := intField(params, 0, 0)
		return funcCommand(func(ctx *Context) {
			if w > 0 {
				ctx.State.PrintWidthDots = w
			}
		})
	})

	// ^LL l: label length in dots.
	register("LL", func(payload string) Command {
		params := splitParams(payload)
		l := intField(params, 0, 0)
		return funcCommand(func(ctx *Context) {
			if l > 0 {
				ctx.State.LabelLengthDots = l
			}
		})
	})

	// ^PO [I|N]: print orientation, inverted or normal.
	register("PO", func(payload string) Command {
		params := splitParams(payload)
		dir := charField(params, 0, 'N')
		return funcCommand(func(ctx *Context) {
			if dir == 'I' {
				ctx.State.PrintOrientation = state.PrintInverted
			} else {
				ctx.State.PrintOrientation = state.PrintNormal
			}
		})
	})

	// ^PQ, ^MD, ^PR, ^MM: accepted metadata/no-ops per spec §4.2 — they
	// affect print quantity, darkness, speed and media-tracking
	// behavior on a physical printer, none of which this preview
	// renderer models.
	noop := func(payload string) Command {
		return funcCommand(func(ctx *Context) {})
	}
	register("PQ", noop)
	register("MD", noop)
	register("PR", noop)
	register("MM", noop)
	register("FN", noop)
}
