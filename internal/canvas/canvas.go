// Package canvas defines the 2-D drawing abstraction the rasterizer
// draws through, and ships a default image/image-draw/freetype-backed
// implementation of it. A caller may substitute an entirely different
// Canvas (a GPU-backed one, say) without touching internal/raster.
package canvas

import "image"

// Canvas constructs bitmaps to draw into.
type Canvas interface {
	NewBitmap(w, h int, background Color) Bitmap
}

// Bitmap is a drawable surface plus the means to read it back out.
type Bitmap interface {
	Context() Context
	Image() image.Image
}

// Color is the minimal RGBA color type Canvas callers work with,
// avoiding a hard dependency on image/color at the interface boundary.
type Color struct {
	R, G, B, A uint8
}

var (
	White = Color{255, 255, 255, 255}
	Black = Color{0, 0, 0, 255}
)

// Context is the stateful drawing surface: a save/restore transform
// stack plus shape, text and image primitives, shaped after the
// pack's save/restore 2-D graphics contexts.
type Context interface {
	Save()
	Restore()

	Translate(dx, dy float64)
	RotateDegrees(deg float64)
	Scale(sx, sy float64)

	FillRect(x, y, w, h float64, c Color)
	StrokeRect(x, y, w, h, thickness float64, c Color)
	FillRoundRect(x, y, w, h, radius float64, c Color)
	StrokeRoundRect(x, y, w, h, radius, thickness float64, c Color)
	FillOval(x, y, w, h float64, c Color)
	StrokeOval(x, y, w, h, thickness float64, c Color)
	Line(x0, y0, x1, y1, thickness float64, c Color)

	DrawText(s string, x, y float64, face Face, c Color)
	DrawImage(img image.Image, dstX, dstY, dstW, dstH float64, nearestNeighbor bool)
}

// Face measures and describes a selected font at a fixed pixel size.
type Face interface {
	MeasureString(s string) float64
	Metrics() (ascent, descent, lineHeight float64)
}

// FontResolver resolves a font-class family name to a drawable Face at
// a given pixel size, caching across calls (spec §9's fix for the
// teacher's per-change typeface dispose/recreate pattern).
type FontResolver interface {
	Resolve(family string, bold bool, sizePixels float64) (Face, error)
}
