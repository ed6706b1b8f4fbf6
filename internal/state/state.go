// Package state holds the modal printer state machine that ZPL
// commands mutate as they execute, and the append-only element list
// they emit into. One State belongs to exactly one render call; it is
// never shared across goroutines (spec §5).
package state

import (
	"strings"

	"zplrender/internal/element"
)

// PrintOrientation is the whole-label print orientation set by ^PO.
type PrintOrientation int

const (
	PrintNormal PrintOrientation = iota
	PrintInverted
)

// BarcodeDefaults are the ^BY-configured values every barcode command
// inherits unless it overrides them.
type BarcodeDefaults struct {
	ModuleWidth int     // 1..10 dots
	Ratio       float64 // 2.0..3.0
	Height      int     // dots
}

// PendingBarcode is the descriptor a ^Bxx command stages; the next
// ^FD consumes it and turns it into a Barcode element (spec §3
// invariant (b)). Cleared unconditionally by ^FS.
type PendingBarcode struct {
	Kind               element.BarcodeKind
	Orientation        element.Orientation
	BarHeight          int
	ModuleWidth        int
	ModuleRatio        float64
	Interpretation     element.InterpretationLine
	ErrorCorrection    element.ErrorCorrection
	QRModel            int
	QRMagnification    int
	AztecMagnification int
}

// FieldState is the per-field state cleared on ^FS (spec §3, §8
// invariant 3).
type FieldState struct {
	Reverse       bool
	HexIndicator  string // "" when ^FH not in effect, else the indicator char
	Block         *element.FieldBlock
	PendingBarcode *PendingBarcode
}

func (f *FieldState) reset() {
	f.Reverse = false
	f.HexIndicator = ""
	f.Block = nil
	f.PendingBarcode = nil
}

// Font is the current default/selected font (set by ^A or ^CF).
type Font struct {
	ID          string
	HeightDots  int
	WidthDots   int
	Orientation element.Orientation
}

// Cache is the case-insensitive graphics cache: name -> bitmap.
// Lookup tries the exact key, then the portion after the first ':'
// (stripping the ZPL drive prefix), per spec §4.2/§9.
type Cache struct {
	images map[string]*element.Bitmap1
}

func newCache() *Cache {
	return &Cache{images: make(map[string]*element.Bitmap1)}
}

// Store caches a bitmap under name (case-insensitive).
func (c *Cache) Store(name string, bmp *element.Bitmap1) {
	c.images[strings.ToUpper(name)] = bmp
}

// Lookup resolves name to a cached bitmap, or nil if absent.
func (c *Cache) Lookup(name string) *element.Bitmap1 {
	key := strings.ToUpper(name)
	if bmp, ok := c.images[key]; ok {
		return bmp
	}
	if idx := strings.IndexByte(key, ':'); idx >= 0 {
		if bmp, ok := c.images[key[idx+1:]]; ok {
			return bmp
		}
	}
	return nil
}

// State is the full modal execution state driven by the command
// executor (spec §3).
type State struct {
	CurX, CurY int
	OriginMode element.OriginMode

	HomeX, HomeY int
	ShiftX       int // set by ^LS
	TopY         int // set by ^LT

	DefaultFont Font
	Field       FieldState
	Barcode     BarcodeDefaults

	EncodingID       int
	PrintOrientation PrintOrientation

	Graphics *Cache

	PrintWidthDots  int
	LabelLengthDots int

	Elements []element.Element
}

// New returns a freshly initialized State with the documented
// defaults, as if ^XA had just been seen.
func New() *State {
	s := &State{Graphics: newCache()}
	s.resetLabel()
	s.Barcode = BarcodeDefaults{ModuleWidth: 2, Ratio: 3.0, Height: 10}
	s.DefaultFont = Font{ID: "0", HeightDots: 9, WidthDots: 0, Orientation: element.Normal}
	s.EncodingID = 0
	return s
}

// resetLabel applies ^XA's per-label reset: current position back to
// the origin, field state cleared, orientation back to Normal. Label
// home/shift/top and graphics cache persist across ^XA...^XZ frames
// within a single render, matching real printer behavior where those
// are set once per job.
func (s *State) resetLabel() {
	s.CurX, s.CurY = 0, 0
	s.OriginMode = element.TopLeft
	s.Field.reset()
	s.DefaultFont.Orientation = element.Normal
	s.PrintOrientation = PrintNormal
}

// HandleXA applies the ^XA reset.
func (s *State) HandleXA() {
	s.resetLabel()
}

// HandleFS applies the ^FS per-field reset (spec §8 invariant 3).
func (s *State) HandleFS() {
	s.Field.reset()
}

// Anchor computes the absolute anchor for an element emitted right
// now, per spec §8 invariant 4: home + shift/top + current position.
func (s *State) Anchor() (x, y int) {
	return s.HomeX + s.ShiftX + s.CurX, s.HomeY + s.TopY + s.CurY
}

// Emit appends an element to the ordered list; the element's anchor
// was already resolved by the caller from the state in effect at the
// moment of emission (spec §3 invariant (a)).
func (s *State) Emit(e element.Element) {
	s.Elements = append(s.Elements, e)
}
