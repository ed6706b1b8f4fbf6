package zpl

import (
	"bytes"
	"image/png"
	"testing"

	"zplrender/internal/rendererr"
)

func encodePNG(t *testing.T, bmp Bitmap) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, bmp.Image()); err != nil {
		t.Fatalf("encoding bitmap: %v", err)
	}
	return buf.Bytes()
}

// Minimal end-to-end scenario: a single text field renders without
// error or warnings.
func TestRenderMinimalText(t *testing.T) {
	bmp, warnings, err := Render("^XA^FO20,20^A0N,30,30^FDHello^FS^XZ", 200, 100, DefaultOptions())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if bmp == nil {
		t.Fatal("expected a bitmap")
	}
}

// Empty source yields a background-filled bitmap of the requested
// size rather than an error (spec §7 FatalInput handling).
func TestRenderEmptySourceFillsBackground(t *testing.T) {
	bmp, warnings, err := Render("", 50, 30, DefaultOptions())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings for empty source: %v", warnings)
	}
	b := bmp.Image().Bounds()
	if b.Dx() != 50 || b.Dy() != 30 {
		t.Fatalf("bitmap size = %dx%d, want 50x30", b.Dx(), b.Dy())
	}
	r, g, bl, _ := bmp.Image().At(25, 15).RGBA()
	if r < 0x8000 || g < 0x8000 || bl < 0x8000 {
		t.Error("expected the empty-source bitmap to stay background-white, found a non-white pixel")
	}
}

// Non-positive dimensions are rejected outright.
func TestRenderRejectsInvalidDimensions(t *testing.T) {
	if _, _, err := Render("^XA^XZ", 0, 10, DefaultOptions()); err == nil {
		t.Error("expected an error for zero width")
	}
	if _, _, err := Render("^XA^XZ", 10, -5, DefaultOptions()); err == nil {
		t.Error("expected an error for negative height")
	}
}

// Idempotence invariant (spec §8): rendering identical source twice
// produces byte-identical PNG output.
func TestRenderIsIdempotent(t *testing.T) {
	source := "^XA^FO10,10^GB100,60,3^FO20,20^A0N,20,20^FDIdempotent^FS^XZ"
	bmp1, _, err := Render(source, 150, 100, DefaultOptions())
	if err != nil {
		t.Fatalf("Render (1): %v", err)
	}
	bmp2, _, err := Render(source, 150, 100, DefaultOptions())
	if err != nil {
		t.Fatalf("Render (2): %v", err)
	}
	png1 := encodePNG(t, bmp1)
	png2 := encodePNG(t, bmp2)
	if !bytes.Equal(png1, png2) {
		t.Error("rendering identical source twice produced different output")
	}
}

// QR content carries the ZPL "<ecc><mode>," selector prefix, which
// must be stripped before reaching the symbol encoder; the render
// must still succeed with no warnings.
func TestRenderStripsQRPrefix(t *testing.T) {
	_, warnings, err := Render("^XA^FO30,30^BQN,2,5^FDHA,HELLO^FS^XZ", 150, 150, DefaultOptions())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, w := range warnings {
		if w.Kind == rendererr.KindRenderFailure {
			t.Errorf("unexpected render-failure warning: %v", w)
		}
	}
}

// An EAN-13 barcode given non-numeric content cannot be encoded; the
// render must still succeed (a placeholder is drawn) and report a
// render-failure warning rather than propagating an error.
func TestRenderFallsBackOnInvalidBarcodeContent(t *testing.T) {
	bmp, warnings, err := Render("^XA^FO10,10^BY2^BEN,80,Y,N^FDNOTDIGITS^FS^XZ", 200, 120, DefaultOptions())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if bmp == nil {
		t.Fatal("expected a bitmap even though the barcode content was invalid")
	}
	found := false
	for _, w := range warnings {
		if w.Kind == rendererr.KindRenderFailure {
			found = true
		}
	}
	if !found {
		t.Error("expected a render-failure warning for the invalid EAN-13 content")
	}
}

// Reverse print (^FR) swaps the field's foreground/background so the
// text area reads white-on-black instead of leaving a blank gap.
func TestRenderReversePrintDarkensBackground(t *testing.T) {
	bmp, _, err := Render("^XA^FO5,5^FR^A0N,40,40^FDX^FS^XZ", 60, 60, DefaultOptions())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	r, g, b, _ := bmp.Image().At(10, 20).RGBA()
	if r > 0x8000 && g > 0x8000 && b > 0x8000 {
		t.Error("expected reverse-printed field area to include dark fill pixels, found only white")
	}
}

// ~DG downloads a named graphic; ^XG recalls it by name at the
// current field origin and scale factor.
func TestRenderDownloadAndRecallGraphic(t *testing.T) {
	source := "^XA~DGSAMPLE,2,2,FFFF^FO10,10^XGSAMPLE,1,1^FS^XZ"
	bmp, warnings, err := Render(source, 80, 80, DefaultOptions())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, w := range warnings {
		if w.Kind == rendererr.KindRenderFailure {
			t.Errorf("unexpected render-failure warning recalling stored graphic: %v", w)
		}
	}
	if bmp == nil {
		t.Fatal("expected a bitmap")
	}
}

// RenderMM converts a physical label size to dots via DPI before
// delegating to Render.
func TestRenderMMConvertsPhysicalSize(t *testing.T) {
	bmp, _, err := RenderMM("^XA^XZ", 50.8, 25.4, 203, DefaultOptions())
	if err != nil {
		t.Fatalf("RenderMM: %v", err)
	}
	b := bmp.Image().Bounds()
	if b.Dx() != 406 || b.Dy() != 203 {
		t.Fatalf("bitmap size = %dx%d, want 406x203 (50.8mm/25.4mm at 203dpi)", b.Dx(), b.Dy())
	}
}

// Validate reports structural problems (unbalanced label frame,
// unrecognized command) without executing anything.
func TestValidateReportsUnbalancedLabel(t *testing.T) {
	msgs := Validate("^XA^FO10,10^FDhi^FS")
	if len(msgs) == 0 {
		t.Fatal("expected a validation message for a missing ^XZ")
	}
}

func TestValidateAcceptsWellFormedLabel(t *testing.T) {
	msgs := Validate("^XA^FO10,10^A0N,20,20^FDok^FS^XZ")
	if len(msgs) != 0 {
		t.Errorf("unexpected validation messages for well-formed source: %v", msgs)
	}
}

// Parse returns label-level attributes and elements without
// rasterizing anything.
func TestParseExtractsLabelAttributes(t *testing.T) {
	lbl, _ := Parse("^XA^PW400^LL300^LH5,6^FO10,10^FDhi^FS^XZ")
	if lbl.PrintWidthDots != 400 {
		t.Errorf("PrintWidthDots = %d, want 400", lbl.PrintWidthDots)
	}
	if lbl.LabelLengthDots != 300 {
		t.Errorf("LabelLengthDots = %d, want 300", lbl.LabelLengthDots)
	}
	if len(lbl.Elements) != 1 {
		t.Fatalf("expected 1 element, got %d", len(lbl.Elements))
	}
}
