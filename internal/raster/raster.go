// Package raster walks a label's emitted elements and draws each onto
// a Canvas bitmap (spec §4.3). It is the one package that knows how
// to turn the tagged element sum type into concrete Canvas/Symbol
// calls; everything upstream of it (tokenizer, executor) never
// touches pixels.
package raster

import (
	"zplrender/internal/canvas"
	"zplrender/internal/element"
	"zplrender/internal/rendererr"
	"zplrender/internal/symbol"
)

// Rasterizer draws a resolved element list onto a bitmap of the
// requested size, delegating shape/text drawing to a Canvas and
// barcode/2D-symbol encoding to a Symbol backend.
type Rasterizer struct {
	Canvas canvas.Canvas
	Fonts  canvas.FontResolver
	Symbol symbol.Symbol

	// FontOverrides maps a ZPL font id to a family name that should be
	// resolved instead of internal/font's static table entry, the way a
	// printer profile's font-substitution table (spec §10.1) lets a
	// caller swap in its own registered TrueType family. Nil means no
	// overrides.
	FontOverrides map[string]string
	// MaxModuleWidth clamps a barcode's effective module width, the
	// rasterizer-side half of a printer profile's documented parameter
	// clamp (spec §10.1). Zero means unclamped.
	MaxModuleWidth int
	// Darkness approximates print density (ZPL's ~SD 0-30 scale) by
	// scaling stroke/border thickness around a neutral value of 15.
	// Zero means unset - drawers use their own thickness unscaled.
	Darkness int
}

// New builds a Rasterizer from its three collaborators, with no
// profile-driven clamps applied.
func New(cv canvas.Canvas, fonts canvas.FontResolver, sym symbol.Symbol) *Rasterizer {
	return &Rasterizer{Canvas: cv, Fonts: fonts, Symbol: sym}
}

// Warn reports a non-fatal problem encountered while drawing; the
// caller plugs in whatever render-scoped warning sink it is using.
type Warn func(kind rendererr.WarningKind, detail string)

// Rasterize draws elements onto a fresh widthDots x heightDots bitmap.
// inverted pre-rotates the whole drawing 180 degrees about the bitmap
// center, matching ^POI's "upside-down" print orientation.
func (r *Rasterizer) Rasterize(elements []element.Element, widthDots, heightDots int, background canvas.Color, inverted bool, warn Warn) (canvas.Bitmap, error) {
	if widthDots <= 0 || heightDots <= 0 {
		return nil, rendererr.ErrInvalidDimensions
	}
	if warn == nil {
		warn = func(rendererr.WarningKind, string) {}
	}

	bmp := r.Canvas.NewBitmap(widthDots, heightDots, background)
	ctx := bmp.Context()

	if inverted {
		ctx.Save()
		ctx.Translate(float64(widthDots)/2, float64(heightDots)/2)
		ctx.RotateDegrees(180)
		ctx.Translate(-float64(widthDots)/2, -float64(heightDots)/2)
	}

	for i := range elements {
		r.drawOne(ctx, &elements[i], warn)
	}

	if inverted {
		ctx.Restore()
	}

	return bmp, nil
}

func (r *Rasterizer) drawOne(ctx canvas.Context, el *element.Element, warn Warn) {
	anchor := anchorOf(el)

	ctx.Save()
	defer ctx.Restore()
	ctx.Translate(float64(anchor.X), float64(anchor.Y))

	switch el.Kind {
	case element.KindText:
		r.drawText(ctx, el.Text, warn)
	case element.KindBox:
		r.drawBox(ctx, el.Box)
	case element.KindEllipse:
		drawEllipse(ctx, el.Ellipse)
	case element.KindImage:
		drawImage(ctx, el.Image)
	case element.KindBarcode:
		r.drawBarcode(ctx, el.Barcode, warn)
	}
}

func anchorOf(el *element.Element) element.Anchor {
	switch el.Kind {
	case element.KindText:
		return el.Text.Anchor
	case element.KindBox:
		return el.Box.Anchor
	case element.KindEllipse:
		return el.Ellipse.Anchor
	case element.KindImage:
		return el.Image.Anchor
	case element.KindBarcode:
		return el.Barcode.Anchor
	}
	return element.Anchor{}
}

// rotateAndShift applies an orientation's rotation and then the
// canonical post-rotation translate that keeps a w x h shape, drawn
// in its own unrotated [0,w]x[0,h] local frame, growing in the
// direction ZPL expects instead of pivoting off-canvas (spec §4.3's
// rotation-translation table).
func rotateAndShift(ctx canvas.Context, orient element.Orientation, w, h float64) {
	switch orient {
	case element.Rot90:
		ctx.RotateDegrees(90)
		ctx.Translate(0, -h)
	case element.Rot180:
		ctx.RotateDegrees(180)
		ctx.Translate(-w, -h)
	case element.Rot270:
		ctx.RotateDegrees(270)
		ctx.Translate(-w, 0)
	}
}

func colorOf(c element.Color) canvas.Color {
	if c == element.White {
		return canvas.White
	}
	return canvas.Black
}

func oppositeColor(c canvas.Color) canvas.Color {
	if c == canvas.White {
		return canvas.Black
	}
	return canvas.White
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
