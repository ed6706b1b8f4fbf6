// Package symbol defines the 1D/2D symbology backend abstraction and
// ships a default implementation over github.com/boombuler/barcode,
// the same library the retrieved warehouse-label and barcode-label
// reference tools build their own barcode generation on.
package symbol

import "image"

// Format identifies a barcode/2D-symbol symbology.
type Format int

const (
	Code128 Format = iota
	Code39
	EAN13
	Code93
	UPCA
	QR
	DataMatrix
	PDF417
	Aztec
	MaxiCode
	ITF
	Codabar
)

// ErrorCorrection is the symbol-level error-correction request, most
// meaningful for QR and Aztec.
type ErrorCorrection int

const (
	ECLow ErrorCorrection = iota
	ECMedium
	ECQuartile
	ECHigh
)

// Options configures a single Encode call.
type Options struct {
	// Height is the requested module-grid height in pixels for 1D
	// symbologies' bar height; nil lets the backend pick its natural
	// aspect ratio. The default backend ignores it for the matrix
	// symbologies (QR, Data Matrix, Aztec, MaxiCode) and scales PDF417
	// to it.
	Height *int
	// Margin is the quiet-zone width in modules added around the
	// encoded grid.
	Margin int
	// ErrorCorrection requests a correction level; backends that don't
	// support the concept ignore it.
	ErrorCorrection ErrorCorrection
	// Columns/Rows are hints for PDF417's row/column count; zero means
	// "let the encoder decide".
	Columns, Rows int
}

// ModuleGrid is the resulting black/white module grid plus a direct
// image view, so a rasterizer can either walk modules itself (to
// apply its own module-width scaling) or blit the image wholesale.
type ModuleGrid interface {
	Bounds() (cols, rows int)
	At(x, y int) bool // true = black module
	Image() image.Image
}

// Symbol encodes content into a symbology-specific module grid.
type Symbol interface {
	Encode(format Format, content string, opts Options) (ModuleGrid, error)
}
