package raster

import (
	"image/color"
	"testing"

	"zplrender/internal/canvas"
	"zplrender/internal/element"
	"zplrender/internal/rendererr"
	"zplrender/internal/symbol"
)

func newTestRasterizer() *Rasterizer {
	return New(canvas.New(), canvas.DefaultResolver(), symbol.New())
}

func isBlack(bmp canvas.Bitmap, x, y int) bool {
	r, g, b, _ := bmp.Image().At(x, y).RGBA()
	return r < 0x8000 && g < 0x8000 && b < 0x8000
}

// ^GB w h t with h <= t draws a filled w x h rectangle (spec §8
// boundary behavior: thick "lines" drawn via ^GB fill rather than
// stroke an empty outline).
func TestBoxWithHeightBelowBorderFills(t *testing.T) {
	r := newTestRasterizer()
	box := &element.Box{
		Anchor: element.Anchor{X: 2, Y: 2},
		W:      20, H: 3, Border: 5,
		Color: element.Black,
	}
	els := []element.Element{element.FromBox(box)}

	bmp, err := r.Rasterize(els, 30, 30, canvas.White, false, nil)
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	if !isBlack(bmp, 10, 3) {
		t.Error("expected the degenerate box to be filled, center pixel is not black")
	}
}

// Idempotence invariant (spec §8 #7): rendering the same source twice
// produces byte-identical bitmaps.
func TestRasterizeIsIdempotent(t *testing.T) {
	r := newTestRasterizer()
	els := []element.Element{
		element.FromText(&element.Text{
			Anchor:         element.Anchor{X: 5, Y: 5},
			Content:        "HELLO",
			FontID:         "0",
			FontHeightDots: 20,
		}),
		element.FromBox(&element.Box{
			Anchor: element.Anchor{X: 0, Y: 0},
			W: 10, H: 10, Border: 2,
		}),
	}

	bmp1, err := r.Rasterize(els, 60, 40, canvas.White, false, nil)
	if err != nil {
		t.Fatalf("Rasterize (1): %v", err)
	}
	bmp2, err := r.Rasterize(els, 60, 40, canvas.White, false, nil)
	if err != nil {
		t.Fatalf("Rasterize (2): %v", err)
	}

	b := bmp1.Image().Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c1 := color.RGBAModel.Convert(bmp1.Image().At(x, y))
			c2 := color.RGBAModel.Convert(bmp2.Image().At(x, y))
			if c1 != c2 {
				t.Fatalf("pixel (%d,%d) differs between identical renders: %v vs %v", x, y, c1, c2)
			}
		}
	}
}

// A failing barcode encode (EAN-13 given non-12/13-digit content)
// draws a placeholder instead of crashing or leaving a gap (spec §7/
// §8 scenario 3).
func TestFailingBarcodeDrawsPlaceholderInsteadOfCrashing(t *testing.T) {
	r := newTestRasterizer()
	var gotWarning bool
	warn := func(kind rendererr.WarningKind, detail string) {
		if kind == rendererr.KindRenderFailure {
			gotWarning = true
		}
	}

	els := []element.Element{
		element.FromBarcode(&element.Barcode{
			Anchor:      element.Anchor{X: 2, Y: 2},
			Kind:        element.BarcodeEAN13,
			Content:     "ABCDEF",
			ModuleWidth: 2,
			BarHeight:   20,
		}),
	}

	bmp, err := r.Rasterize(els, 80, 40, canvas.White, false, warn)
	if err != nil {
		t.Fatalf("Rasterize returned an error instead of falling back to a placeholder: %v", err)
	}
	if bmp == nil {
		t.Fatal("expected a bitmap even though the barcode content was invalid")
	}
	if !gotWarning {
		t.Error("expected a render-failure warning for the invalid EAN-13 content")
	}
}
