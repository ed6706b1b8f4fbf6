package command

func init() {
	register("XA", func(payload string) Command {
		return funcCommand(func(ctx *Context) {
			ctx.State.HandleXA()
		})
	})

	// ^XZ marks the end of a label frame. Label grouping for the
	// parsed Label sequence (spec §3) happens one layer up, in
	// internal/label; the executor itself has nothing to mutate here.
	register("XZ", func(payload string) Command {
		return funcCommand(func(ctx *Context) {})
	})

	register("FS", func(payload string) Command {
		return funcCommand(func(ctx *Context) {
			ctx.State.HandleFS()
		})
	})
}
