package symbol

import (
	"fmt"
	"image"
	"image/color"

	bc "github.com/boombuler/barcode"
	"github.com/boombuler/barcode/aztec"
	"github.com/boombuler/barcode/codabar"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/code39"
	"github.com/boombuler/barcode/code93"
	"github.com/boombuler/barcode/datamatrix"
	"github.com/boombuler/barcode/ean"
	"github.com/boombuler/barcode/pdf417"
	"github.com/boombuler/barcode/qr"
	"github.com/boombuler/barcode/twooffive"

	"zplrender/internal/rendererr"
)

// Default is the github.com/boombuler/barcode-backed Symbol.
type Default struct{}

// New returns the default Symbol backend.
func New() Symbol { return Default{} }

func (Default) Encode(format Format, content string, opts Options) (ModuleGrid, error) {
	bcImg, err := encode(format, content, opts)
	if err != nil {
		return nil, err
	}

	if h := targetHeight(format, opts); h > 0 {
		scaled, err := bc.Scale(bcImg, bcImg.Bounds().Dx(), h)
		if err != nil {
			return nil, fmt.Errorf("symbol: scaling %v barcode: %w", format, err)
		}
		bcImg = scaled
	}

	return &grid{img: bcImg, margin: opts.Margin}, nil
}

func targetHeight(format Format, opts Options) int {
	if opts.Height == nil {
		return 0
	}
	switch format {
	case QR, DataMatrix, Aztec, MaxiCode:
		return 0 // 2D symbologies are square; height comes from the module count.
	default:
		return *opts.Height
	}
}

func encode(format Format, content string, opts Options) (bc.Barcode, error) {
	switch format {
	case Code128:
		b, err := code128.Encode(content)
		return b, wrap(format, err)
	case Code39:
		b, err := code39.Encode(content, true, true)
		return b, wrap(format, err)
	case EAN13:
		b, err := ean.Encode(content)
		return b, wrap(format, err)
	case UPCA:
		// boombuler/barcode has no dedicated UPC-A encoder; UPC-A is
		// structurally EAN-13 with a leading zero digit.
		b, err := ean.Encode("0" + content)
		return b, wrap(format, err)
	case Code93:
		b, err := code93.Encode(content, true, true)
		return b, wrap(format, err)
	case ITF:
		b, err := twooffive.Encode(content, true)
		return b, wrap(format, err)
	case Codabar:
		b, err := codabar.Encode(content)
		return b, wrap(format, err)
	case QR:
		b, err := qr.Encode(content, qrLevel(opts.ErrorCorrection), qr.Auto)
		return b, wrap(format, err)
	case DataMatrix:
		b, err := datamatrix.Encode(content)
		return b, wrap(format, err)
	case PDF417:
		b, err := pdf417.Encode(content, 5)
		return b, wrap(format, err)
	case Aztec:
		b, err := aztec.Encode([]byte(content), 25, 0)
		return b, wrap(format, err)
	case MaxiCode:
		return nil, rendererr.ErrUnsupportedFormat
	default:
		return nil, rendererr.ErrUnsupportedFormat
	}
}

func wrap(format Format, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("symbol: encoding format %v: %w", format, err)
}

func qrLevel(ec ErrorCorrection) qr.ErrorCorrectionLevel {
	switch ec {
	case ECLow:
		return qr.L
	case ECMedium:
		return qr.M
	case ECHigh:
		return qr.H
	default:
		return qr.Q
	}
}

// grid wraps a boombuler/barcode image with the margin-aware
// ModuleGrid interface the rasterizer consumes.
type grid struct {
	img    bc.Barcode
	margin int
}

func (g *grid) Bounds() (cols, rows int) {
	b := g.img.Bounds()
	return b.Dx() + 2*g.margin, b.Dy() + 2*g.margin
}

func (g *grid) At(x, y int) bool {
	b := g.img.Bounds()
	lx, ly := x-g.margin, y-g.margin
	if lx < 0 || ly < 0 || lx >= b.Dx() || ly >= b.Dy() {
		return false
	}
	r, gg, bl, _ := g.img.At(b.Min.X+lx, b.Min.Y+ly).RGBA()
	// boombuler barcodes are pure black/white; treat anything closer to
	// black as a set module.
	return r+gg+bl < 3*0x8000
}

func (g *grid) Image() image.Image {
	if g.margin == 0 {
		return g.img
	}
	cols, rows := g.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, cols, rows))
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if g.At(x, y) {
				out.Set(x, y, color.Black)
			} else {
				out.Set(x, y, color.White)
			}
		}
	}
	return out
}
