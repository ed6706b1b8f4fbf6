package command

import (
	"zplrender/internal/element"
	"zplrender/internal/rendererr"
)

// hexDecodeBytes decodes a run of hex-digit pairs into bytes, skipping
// any stray non-hex byte rather than aborting (permissive per spec §7).
func hexDecodeBytes(s string) []byte {
	out := make([]byte, 0, len(s)/2)
	hi, haveHi := 0, false
	for i := 0; i < len(s); i++ {
		if !isHexDigit(s[i]) {
			continue
		}
		if !haveHi {
			hi, haveHi = hexVal(s[i]), true
			continue
		}
		out = append(out, byte(hi<<4|hexVal(s[i])))
		haveHi = false
	}
	return out
}

// bitmapFromRowBytes builds a Bitmap1 from already-decoded row-major
// 1bpp data, deriving height from the row stride.
func bitmapFromRowBytes(data []byte, bytesPerRow int) *element.Bitmap1 {
	if bytesPerRow <= 0 {
		return nil
	}
	height := len(data) / bytesPerRow
	if height <= 0 {
		return nil
	}
	return &element.Bitmap1{
		Width:    bytesPerRow * 8,
		Height:   height,
		RowBytes: data[:height*bytesPerRow],
	}
}

func colorFromChar(c rune) element.Color {
	if c == 'W' {
		return element.White
	}
	return element.Black
}

func init() {
	// ^GB w,h,thickness,color,rounding: graphic box.
	register("GB", func(payload string) Command {
		params := splitParams(payload)
		w := intField(params, 0, 1)
		h := intField(params, 1, 1)
		thick := intField(params, 2, 1)
		col := colorFromChar(charField(params, 3, 'B'))
		round := intField(params, 4, 0)
		return funcCommand(func(ctx *Context) {
			x, y := ctx.State.Anchor()
			ctx.State.Emit(element.FromBox(&element.Box{
				Anchor:   element.Anchor{X: x, Y: y, Origin: ctx.State.OriginMode},
				W:        w,
				H:        h,
				Border:   thick,
				Color:    col,
				Rounding: round,
			}))
		})
	})

	// ^GC d,thickness,color: graphic circle, modeled as an ellipse with
	// equal width and height.
	register("GC", func(payload string) Command {
		params := splitParams(payload)
		d := intField(params, 0, 3)
		thick := intField(params, 1, 1)
		col := colorFromChar(charField(params, 2, 'B'))
		return funcCommand(func(ctx *Context) {
			x, y := ctx.State.Anchor()
			ctx.State.Emit(element.FromEllipse(&element.Ellipse{
				Anchor: element.Anchor{X: x, Y: y, Origin: ctx.State.OriginMode},
				W:      d,
				H:      d,
				Border: thick,
				Color:  col,
			}))
		})
	})

	// ^GE w,h,thickness,color: graphic ellipse.
	register("GE", func(payload string) Command {
		params := splitParams(payload)
		w := intField(params, 0, 1)
		h := intField(params, 1, 1)
		thick := intField(params, 2, 1)
		col := colorFromChar(charField(params, 3, 'B'))
		return funcCommand(func(ctx *Context) {
			x, y := ctx.State.Anchor()
			ctx.State.Emit(element.FromEllipse(&element.Ellipse{
				Anchor: element.Anchor{X: x, Y: y, Origin: ctx.State.OriginMode},
				W:      w,
				H:      h,
				Border: thick,
				Color:  col,
			}))
		})
	})

	// ^GD w,h,thickness,color,orientation: diagonal line. No element
	// kind models a diagonal stroke (spec §3's element set is
	// Text/Box/Ellipse/Image/Barcode only), so this is accepted but
	// recorded as an unknown-command warning rather than silently
	// dropped.
	register("GD", func(payload string) Command {
		return funcCommand(func(ctx *Context) {
			ctx.warn(rendererr.KindUnknownCommand, "^GD diagonal line has no renderable element")
		})
	})

	// ^GFa,b,c,d,data: inline graphic field, placed at the current
	// field origin immediately (no name, no cache entry).
	register("GF", func(payload string) Command {
		params := splitParams(payload)
		format := charField(params, 0, 'B')
		bytesPerRow := intField(params, 3, 0)
		data := field(params, 4)
		return funcCommand(func(ctx *Context) {
			var raw []byte
			if format == 'A' {
				raw = hexDecodeBytes(data)
			} else {
				raw = []byte(data)
			}
			bmp := bitmapFromRowBytes(raw, bytesPerRow)
			if bmp == nil {
				ctx.warn(rendererr.KindRenderFailure, "^GF produced an empty bitmap")
				return
			}
			x, y := ctx.State.Anchor()
			ctx.State.Emit(element.FromImage(&element.Image{
				Anchor: element.Anchor{X: x, Y: y, Origin: ctx.State.OriginMode},
				Bitmap: bmp,
				ScaleX: 1,
				ScaleY: 1,
			}))
		})
	})

	// ~DGd:o.x,t,w,data: download graphic, stored under name o.x for
	// later recall via ^XG or ^IM. Always ASCII-hex by convention.
	register("DG", func(payload string) Command {
		params := splitParams(payload)
		name := field(params, 0)
		bytesPerRow := intField(params, 2, 0)
		data := field(params, 3)
		return funcCommand(func(ctx *Context) {
			raw := hexDecodeBytes(data)
			bmp := bitmapFromRowBytes(raw, bytesPerRow)
			if bmp == nil || name == "" {
				ctx.warn(rendererr.KindRenderFailure, "~DG produced no storable bitmap")
				return
			}
			ctx.State.Graphics.Store(name, bmp)
		})
	})

	// ^XGd:o.x,mx,my: recall a stored graphic at the current field
	// origin, scaled by integer factors mx, my.
	register("XG", func(payload string) Command {
		params := splitParams(payload)
		name := field(params, 0)
		mx := intField(params, 1, 1)
		my := intField(params, 2, 1)
		return funcCommand(func(ctx *Context) {
			bmp := ctx.State.Graphics.Lookup(name)
			if bmp == nil {
				ctx.warn(rendererr.KindRenderFailure, "^XG recalls unknown graphic "+name)
				return
			}
			x, y := ctx.State.Anchor()
			ctx.State.Emit(element.FromImage(&element.Image{
				Anchor: element.Anchor{X: x, Y: y, Origin: ctx.State.OriginMode},
				Bitmap: bmp,
				ScaleX: clampInt(mx, 1, 10),
				ScaleY: clampInt(my, 1, 10),
			}))
		})
	})

	// ^IMd:o.x: recall a stored graphic at 1:1 scale, equivalent to
	// ^XG with unit scale factors.
	register("IM", func(payload string) Command {
		params := splitParams(payload)
		name := field(params, 0)
		return funcCommand(func(ctx *Context) {
			bmp := ctx.State.Graphics.Lookup(name)
			if bmp == nil {
				ctx.warn(rendererr.KindRenderFailure, "^IM recalls unknown graphic "+name)
				return
			}
			x, y := ctx.State.Anchor()
			ctx.State.Emit(element.FromImage(&element.Image{
				Anchor: element.Anchor{X: x, Y: y, Origin: ctx.State.OriginMode},
				Bitmap: bmp,
				ScaleX: 1,
				ScaleY: 1,
			}))
		})
	})
}
