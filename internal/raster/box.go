package raster

import "zplrender/internal/element"
import "zplrender/internal/canvas"

// drawBox renders a ^GB rectangle. ^GB has no rotation parameter, so
// it always draws in the canvas's current (already anchor-translated)
// frame. Rounding (^GB's fifth parameter) applies to both the filled
// and stroked cases; Darkness, when set by a printer profile, scales
// the stroke thickness around a neutral value of 15 the way higher
// print density thickens a real thermal head's strokes.
func (r *Rasterizer) drawBox(ctx canvas.Context, b *element.Box) {
	w, h := float64(b.W), float64(b.H)
	border := float64(b.Border)
	if border <= 0 {
		border = 1
	}
	if r.Darkness > 0 {
		border = border * float64(r.Darkness) / 15.0
		if border < 1 {
			border = 1
		}
	}
	col := colorOf(b.Color)

	fill := float64(b.W) <= border || float64(b.H) <= border
	radius := (float64(b.Rounding) / 8) * minF(w, h) / 2

	switch {
	case fill && radius > 0:
		ctx.FillRoundRect(0, 0, w, h, radius, col)
	case fill:
		ctx.FillRect(0, 0, w, h, col)
	case radius > 0:
		ctx.StrokeRoundRect(border/2, border/2, w-border, h-border, radius, border, col)
	default:
		ctx.StrokeRect(border/2, border/2, w-border, h-border, border, col)
	}
}
