package raster

import (
	"strings"

	"zplrender/internal/canvas"
	"zplrender/internal/element"
	"zplrender/internal/rendererr"
	"zplrender/internal/symbol"
)

var barcodeFormat = map[element.BarcodeKind]symbol.Format{
	element.BarcodeCode128:    symbol.Code128,
	element.BarcodeCode39:     symbol.Code39,
	element.BarcodeEAN13:      symbol.EAN13,
	element.BarcodeCode93:     symbol.Code93,
	element.BarcodeUPCA:       symbol.UPCA,
	element.BarcodeQR:         symbol.QR,
	element.BarcodeDataMatrix: symbol.DataMatrix,
	element.BarcodePDF417:     symbol.PDF417,
	element.BarcodeAztec:      symbol.Aztec,
	element.BarcodeMaxiCode:   symbol.MaxiCode,
	element.BarcodeITF:        symbol.ITF,
	element.BarcodeCodabar:    symbol.Codabar,
}

func is2D(k element.BarcodeKind) bool {
	switch k {
	case element.BarcodeQR, element.BarcodeDataMatrix, element.BarcodePDF417, element.BarcodeAztec, element.BarcodeMaxiCode:
		return true
	default:
		return false
	}
}

// drawBarcode encodes a Barcode element's content into a module grid
// and blits it scaled by module width/bar height, falling back to a
// bordered placeholder rectangle on any encoding failure (spec §4.3:
// a barcode drawer must never crash and never leave a gap).
func (r *Rasterizer) drawBarcode(ctx canvas.Context, b *element.Barcode, warn Warn) {
	format, ok := barcodeFormat[b.Kind]
	if !ok {
		format = symbol.Code128
	}
	content := stripBarcodeContentPrefix(b)

	moduleWidth := b.ModuleWidth
	if moduleWidth <= 0 {
		moduleWidth = 2
	}
	if r.MaxModuleWidth > 0 && moduleWidth > r.MaxModuleWidth {
		moduleWidth = r.MaxModuleWidth
	}

	opts := symbol.Options{ErrorCorrection: mapErrorCorrection(b.ErrorCorrection)}
	if !is2D(b.Kind) {
		h := b.BarHeight
		if h <= 0 {
			h = 10
		}
		opts.Height = &h
	}

	grid, err := r.Symbol.Encode(format, content, opts)
	if err != nil {
		warn(rendererr.KindRenderFailure, "barcode: "+err.Error())
		r.drawBarcodePlaceholder(ctx, content, float64(moduleWidth*40), 40)
		return
	}

	cols, rows := grid.Bounds()
	w := float64(cols * moduleWidth)
	var h float64
	if is2D(b.Kind) {
		h = float64(rows * moduleWidth)
	} else {
		h = float64(b.BarHeight)
		if h <= 0 {
			h = 10
		}
	}

	if b.Anchor.Origin == element.Baseline {
		ctx.Translate(0, -h)
	}
	rotateAndShift(ctx, b.Orientation, w, h)

	ctx.DrawImage(grid.Image(), 0, 0, w, h, true)

	if !is2D(b.Kind) && b.Interpretation != element.InterpretationOff {
		r.drawInterpretationLine(ctx, content, w, h, b.Interpretation, warn)
	}
}

// drawInterpretationLine draws the human-readable text under (or
// over) a 1D barcode, using the OCR-B-class font ZPL defaults to for
// this purpose.
func (r *Rasterizer) drawInterpretationLine(ctx canvas.Context, content string, w, h float64, line element.InterpretationLine, warn Warn) {
	face, err := resolveFaceForHeight(r.Fonts, "ocr-b", false, minF(h, 20))
	if err != nil {
		return
	}
	ascent, _, lineHeight := face.Metrics()
	tw := face.MeasureString(content)
	x := (w - tw) / 2
	if x < 0 {
		x = 0
	}

	y := h + ascent + 2
	if line == element.InterpretationAbove {
		y = -lineHeight + ascent - 2
	}
	ctx.DrawText(content, x, y, face, canvas.Black)
}

// stripBarcodeContentPrefix removes symbology-specific ZPL content
// conventions the drawer must not pass through to the symbol encoder.
// Only Code 128's inline subset-switch escapes (">" plus the following
// character, e.g. ">:", ">;") are handled here; QR's leading
// "<ecc><mode>," selector is already stripped by the executor at ^FD.
func stripBarcodeContentPrefix(b *element.Barcode) string {
	content := b.Content
	switch b.Kind {
	case element.BarcodeCode128:
		content = stripCode128Escapes(content)
	}
	return content
}

func stripCode128Escapes(s string) string {
	var out strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '>' && i+1 < len(s) {
			i++
			continue
		}
		out.WriteByte(s[i])
	}
	return out.String()
}

func mapErrorCorrection(ec element.ErrorCorrection) symbol.ErrorCorrection {
	switch ec {
	case element.ECLow:
		return symbol.ECLow
	case element.ECMedium:
		return symbol.ECMedium
	case element.ECHigh:
		return symbol.ECHigh
	default:
		return symbol.ECQuartile
	}
}

// drawBarcodePlaceholder draws a thin-bordered box containing a
// truncated literal of the failed content, the never-crash fallback
// spec §4.3/§7 require for an unrenderable symbology.
func (r *Rasterizer) drawBarcodePlaceholder(ctx canvas.Context, content string, w, h float64) {
	if w <= 0 {
		w = 80
	}
	if h <= 0 {
		h = 40
	}
	ctx.StrokeRect(1, 1, w-2, h-2, 1, canvas.Black)
	label := content
	if len(label) > 12 {
		label = label[:12]
	}
	if face, err := resolveFaceForHeight(r.Fonts, "swiss", false, minF(h-4, 12)); err == nil {
		ctx.DrawText(label, 4, h/2, face, canvas.Black)
	}
}
