// Package element defines the positioned drawing records the command
// executor emits, and that the rasterizer later consumes. Each variant
// carries its own anchor, snapshotted from execution state at emission
// time (spec §3 invariant (a): later state changes never mutate an
// already-emitted element).
package element

// OriginMode says whether an element's anchor is its top-left corner
// or its text baseline.
type OriginMode int

const (
	TopLeft OriginMode = iota
	Baseline
)

// Orientation is the ZPL rotation applied around an element's anchor.
type Orientation int

const (
	Normal Orientation = iota
	Rot90
	Rot180
	Rot270
)

// Color is the two-tone palette ZPL draws with.
type Color int

const (
	Black Color = iota
	White
)

// Anchor is the common positioning data every element carries.
type Anchor struct {
	X, Y    int
	Origin  OriginMode
	Reverse bool
}

// Kind discriminates the Element sum type.
type Kind int

const (
	KindText Kind = iota
	KindBox
	KindEllipse
	KindImage
	KindBarcode
)

// Alignment is the field-block horizontal alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
	AlignJustify
)

// FieldBlock describes ^FB wrapping/alignment for a Text element.
type FieldBlock struct {
	Width      int
	MaxLines   int
	Alignment  Alignment
	LineSpace  int
	Indent     int
}

// Text is a positioned, wrapped-or-not run of text.
type Text struct {
	Anchor
	Content        string
	FontID         string
	FontHeightDots int
	FontWidthDots  int
	Orientation    Orientation
	Block          *FieldBlock // nil when ^FB was not in effect
}

// ShapeOverride distinguishes ^GE's explicit fill/stroke request from
// the "decide from border width" default.
type ShapeOverride int

const (
	ShapeAuto ShapeOverride = iota
	ShapeFill
	ShapeStroke
)

// Box is a ^GB rectangle (ZPL's general-purpose line/box/fill primitive).
type Box struct {
	Anchor
	W, H, Border int
	Color        Color
	Rounding     int // 0..=8
}

// Ellipse is a ^GE/^GC oval or circle.
type Ellipse struct {
	Anchor
	W, H, Border int
	Color        Color
	Shape        ShapeOverride
}

// Image is a ^GF/^XG/^IM bitmap blit.
type Image struct {
	Anchor
	Bitmap              *Bitmap1
	ScaleX, ScaleY      int
	Orientation         Orientation
}

// Bitmap1 is a 1-bit-per-pixel bitmap: black bit = 1, MSB-first within
// each row byte, matching the ^GF/~DG on-wire format.
type Bitmap1 struct {
	Width, Height int
	RowBytes      []byte // len == Height * ceil(Width/8)
}

// At reports whether pixel (x,y) is black.
func (b *Bitmap1) At(x, y int) bool {
	if b == nil || x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return false
	}
	stride := (b.Width + 7) / 8
	idx := y*stride + x/8
	if idx >= len(b.RowBytes) {
		return false
	}
	bit := 7 - uint(x%8)
	return (b.RowBytes[idx]>>bit)&1 == 1
}

// BarcodeKind enumerates the symbologies the pending-barcode commands
// (§4.2) can construct.
type BarcodeKind int

const (
	BarcodeCode128 BarcodeKind = iota
	BarcodeCode39
	BarcodeEAN13
	BarcodeCode93
	BarcodeUPCA
	BarcodeQR
	BarcodeDataMatrix
	BarcodePDF417
	BarcodeAztec
	BarcodeMaxiCode
	BarcodeITF
	BarcodeCodabar
)

// InterpretationLine says whether/where the human-readable text under
// a 1D barcode is drawn.
type InterpretationLine int

const (
	InterpretationOff InterpretationLine = iota
	InterpretationBelow
	InterpretationAbove
)

// ErrorCorrection is the QR error-correction level.
type ErrorCorrection int

const (
	ECLow ErrorCorrection = iota
	ECMedium
	ECQuartile
	ECHigh
)

// Barcode is an emitted barcode element, built from a pending-barcode
// descriptor (§3 invariant (b)) once ^FD supplies its content.
type Barcode struct {
	Anchor
	Kind               BarcodeKind
	Content            string
	ModuleWidth        int
	ModuleRatio        float64
	BarHeight          int
	Orientation        Orientation
	Interpretation     InterpretationLine
	ErrorCorrection    ErrorCorrection
	QRModel            int
	QRMagnification    int
	AztecMagnification int
}

// Element is the sum type the rasterizer walks. Exactly one field is
// non-nil, selected by Kind.
type Element struct {
	Kind    Kind
	Text    *Text
	Box     *Box
	Ellipse *Ellipse
	Image   *Image
	Barcode *Barcode
}

func FromText(t *Text) Element       { return Element{Kind: KindText, Text: t} }
func FromBox(b *Box) Element         { return Element{Kind: KindBox, Box: b} }
func FromEllipse(e *Ellipse) Element { return Element{Kind: KindEllipse, Ellipse: e} }
func FromImage(i *Image) Element     { return Element{Kind: KindImage, Image: i} }
func FromBarcode(b *Barcode) Element { return Element{Kind: KindBarcode, Barcode: b} }
