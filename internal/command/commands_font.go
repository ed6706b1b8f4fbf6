package command

import "zplrender/internal/element"

// orientationFromChar maps ZPL's N/R/I/B orientation letter to the
// Orientation enum, defaulting to Normal for anything else.
func orientationFromChar(c rune) element.Orientation {
	switch c {
	case 'R':
		return element.Rot90
	case 'I':
		return element.Rot180
	case 'B':
		return element.Rot270
	default:
		return element.Normal
	}
}

// fontSelectFactory builds the ^A<id> command factory for a specific
// font id, extracted from the two-character code by the registry.
func fontSelectFactory(id string) Factory {
	return func(payload string) Command {
		params := splitParams(payload)
		orient := orientationFromChar(charField(params, 0, 'N'))
		h := intField(params, 1, 0)
		w := intField(params, 2, 0)
		return funcCommand(func(ctx *Context) {
			if h > 0 {
				ctx.State.DefaultFont.HeightDots = h
			}
			ctx.State.DefaultFont.WidthDots = w
			ctx.State.DefaultFont.Orientation = orient
			ctx.State.DefaultFont.ID = id
		})
	}
}

func init() {
	// ^CF f,h,w: change default font; does not touch orientation.
	register("CF", func(payload string) Command {
		params := splitParams(payload)
		f := field(params, 0)
		h := intField(params, 1, 0)
		w := intField(params, 2, 0)
		return funcCommand(func(ctx *Context) {
			if f != "" {
				ctx.State.DefaultFont.ID = f
			}
			if h > 0 {
				ctx.State.DefaultFont.HeightDots = h
			}
			ctx.State.DefaultFont.WidthDots = w
		})
	})

	// ^CI map: encoding id. 28 = UTF-8; everything else is mapped
	// pragmatically to UTF-8 too (spec §9 open question — no codepage
	// table is in scope).
	register("CI", func(payload string) Command {
		params := splitParams(payload)
		id := intField(params, 0, 0)
		return funcCommand(func(ctx *Context) {
			ctx.State.EncodingID = id
		})
	})
}
