package command

import "zplrender/internal/element"

// ^FO x,y[,j] and ^FT x,y[,j]: set current position and origin mode.
// Both clear field-block/reverse/hex (spec §4.2), same as any fresh
// field start.
func positionCommand(origin element.OriginMode) Factory {
	return func(payload string) Command {
		params := splitParams(payload)
		x := intField(params, 0, 0)
		y := intField(params, 1, 0)
		return funcCommand(func(ctx *Context) {
			ctx.State.CurX = x
			ctx.State.CurY = y
			ctx.State.OriginMode = origin
			ctx.State.Field.Reverse = false
			ctx.State.Field.HexIndicator = ""
			ctx.State.Field.Block = nil
		})
	}
}

func init() {
	register("FO", positionCommand(element.TopLeft))
	register("FT", positionCommand(element.Baseline))

	// ^LH x,y: label home offset.
	register("LH", func(payload string) Command {
		params := splitParams(payload)
		x := intField(params, 0, 0)
		y := intField(params, 1, 0)
		return funcCommand(func(ctx *Context) {
			ctx.State.HomeX = x
			ctx.State.HomeY = y
		})
	})

	// ^LS x: label shift, horizontal.
	register("LS", func(payload string) Command {
		params := splitParams(payload)
		x := intField(params, 0, 0)
		return funcCommand(func(ctx *Context) {
			ctx.State.ShiftX = x
		})
	})

	// ^LT y: label top, vertical.
	register("LT", func(payload string) Command {
		params := splitParams(payload)
		y := intField(params, 0, 0)
		return funcCommand(func(ctx *Context) {
			ctx.State.TopY = y
		})
	})

	// ^FW orientation: field default orientation. Accepted as metadata
	// per spec §4.2; it does not retroactively rotate already-selected
	// fonts in this implementation (no component consumes it further),
	// so it is a documented no-op.
	register("FW", func(payload string) Command {
		return funcCommand(func(ctx *Context) {})
	})
}
