package raster

import "zplrender/internal/element"
import "zplrender/internal/canvas"

// drawEllipse renders a ^GC/^GE oval or circle. Neither command takes
// an orientation parameter.
func drawEllipse(ctx canvas.Context, e *element.Ellipse) {
	w, h := float64(e.W), float64(e.H)
	border := float64(e.Border)
	if border <= 0 {
		border = 1
	}
	col := colorOf(e.Color)

	fill := e.Shape == element.ShapeFill || border >= minF(w, h)/2
	if e.Shape == element.ShapeStroke {
		fill = false
	}

	if fill {
		ctx.FillOval(0, 0, w, h, col)
		return
	}
	ctx.StrokeOval(border/2, border/2, w-border, h-border, border, col)
}
