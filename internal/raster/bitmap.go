package raster

import (
	"image"
	"image/color"

	"zplrender/internal/canvas"
	"zplrender/internal/element"
)

// drawImage renders a ^GF/~DG/^XG/^IM bitmap blit, scaled by its
// integer module multipliers and rotated about its anchor per the
// canonical rotation-translation table.
func drawImage(ctx canvas.Context, img *element.Image) {
	if img.Bitmap == nil {
		return
	}
	sx, sy := img.ScaleX, img.ScaleY
	if sx <= 0 {
		sx = 1
	}
	if sy <= 0 {
		sy = 1
	}
	w := float64(img.Bitmap.Width * sx)
	h := float64(img.Bitmap.Height * sy)

	rotateAndShift(ctx, img.Orientation, w, h)

	ctx.DrawImage(bitmapToImage(img.Bitmap), 0, 0, w, h, true)
}

// bitmapToImage adapts a 1-bit-per-pixel Bitmap1 to image.Image so it
// can flow through Canvas.DrawImage's nearest-neighbor scaling path.
func bitmapToImage(b *element.Bitmap1) image.Image {
	return &bitmap1Image{b: b}
}

type bitmap1Image struct{ b *element.Bitmap1 }

func (m *bitmap1Image) ColorModel() color.Model { return color.GrayModel }

func (m *bitmap1Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.b.Width, m.b.Height)
}

func (m *bitmap1Image) At(x, y int) color.Color {
	if m.b.At(x, y) {
		return color.Black
	}
	return color.White
}
