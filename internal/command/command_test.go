package command

import (
	"testing"

	"zplrender/internal/element"
	"zplrender/internal/rendererr"
	"zplrender/internal/state"
)

func run(t *testing.T, source string) (*state.State, []*rendererr.Warning) {
	t.Helper()
	st := state.New()
	warnings := Run(source, st)
	return st, warnings
}

// Field-scoped state reset invariant (spec §8 #3): ^FS unconditionally
// clears reverse, hex indicator, field block, and any pending barcode.
func TestFSResetsFieldScopedState(t *testing.T) {
	st, _ := run(t, "^XA^FO10,10^FR^FH_^FB200,2,0,C^BQN,2,5^FD_41,HELLO^FS^XZ")

	if st.Field.Reverse {
		t.Error("Reverse still set after ^FS")
	}
	if st.Field.HexIndicator != "" {
		t.Error("HexIndicator still set after ^FS")
	}
	if st.Field.Block != nil {
		t.Error("Block still set after ^FS")
	}
	if st.Field.PendingBarcode != nil {
		t.Error("PendingBarcode still set after ^FS")
	}
}

// Anchor formula invariant (spec §8 #4): an emitted element's anchor
// is home + shift/top + current position.
func TestAnchorFormula(t *testing.T) {
	st, _ := run(t, "^XA^LH20,30^LS5^LT7^FO10,15^A0N,20,20^FDhi^FS^XZ")

	if len(st.Elements) != 1 {
		t.Fatalf("expected 1 element, got %d", len(st.Elements))
	}
	text := st.Elements[0].Text
	if text == nil {
		t.Fatal("expected a Text element")
	}
	wantX, wantY := 20+5+10, 30+7+15
	if text.X != wantX || text.Y != wantY {
		t.Fatalf("anchor = (%d, %d), want (%d, %d)", text.X, text.Y, wantX, wantY)
	}
}

// Pending-barcode consumption invariant (spec §8 #5): ^BQ...^FD...^FS
// produces exactly one Barcode element of the right kind, with the
// QR "<mode>," selector prefix stripped from the content, and no
// accompanying Text element.
func TestPendingBarcodeConsumedByFD(t *testing.T) {
	st, _ := run(t, "^XA^FO50,50^BQN,2,5^FDHA,HELLO^FS^XZ")

	if len(st.Elements) != 1 {
		t.Fatalf("expected exactly 1 element, got %d", len(st.Elements))
	}
	el := st.Elements[0]
	if el.Kind != element.KindBarcode {
		t.Fatalf("expected a Barcode element, got kind %v", el.Kind)
	}
	if el.Barcode.Kind != element.BarcodeQR {
		t.Fatalf("expected BarcodeQR, got %v", el.Barcode.Kind)
	}
	if el.Barcode.Content != "HELLO" {
		t.Fatalf("content = %q, want %q (prefix stripped)", el.Barcode.Content, "HELLO")
	}
	if el.Barcode.ModuleWidth != 5 {
		t.Errorf("ModuleWidth = %d, want 5 (the ^BQ magnification parameter)", el.Barcode.ModuleWidth)
	}
	if el.Barcode.ErrorCorrection != element.ECMedium {
		t.Errorf("ErrorCorrection = %v, want ECMedium (the ZPL default)", el.Barcode.ErrorCorrection)
	}
}

// ^BY with all-zero parameters clamps to the documented minimums
// instead of producing a degenerate (zero-width) barcode.
func TestBYClampsToMinimums(t *testing.T) {
	st, _ := run(t, "^XA^BY0,0,0^XZ")

	if st.Barcode.ModuleWidth != 1 {
		t.Fatalf("ModuleWidth = %d, want 1", st.Barcode.ModuleWidth)
	}
	if st.Barcode.Ratio != 2.0 {
		t.Fatalf("Ratio = %v, want 2.0", st.Barcode.Ratio)
	}
}

// Unknown commands are reported as warnings but never abort the run;
// every other recognized command in the source still executes.
func TestUnknownCommandWarnsButContinues(t *testing.T) {
	st := state.New()
	warnings := Run("^XA^ZZbogus^FO5,5^FDok^FS^XZ", st)

	if len(st.Elements) != 1 {
		t.Fatalf("expected 1 element despite the unknown command, got %d", len(st.Elements))
	}
	found := false
	for _, w := range warnings {
		if w.Kind == "UNKNOWN_COMMAND" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected an unknown-command warning")
	}
}
