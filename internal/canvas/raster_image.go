package canvas

import (
	"image"
	"image/color"
	"math"
)

// imageCanvas is the default Canvas: every Bitmap it builds is backed
// by a standard image.RGBA.
type imageCanvas struct{}

// New returns the default image/image-draw-backed Canvas.
func New() Canvas { return imageCanvas{} }

func (imageCanvas) NewBitmap(w, h int, background Color) Bitmap {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	bg := toNRGBA(background)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, bg)
		}
	}
	return &imageBitmap{img: img}
}

type imageBitmap struct {
	img *image.RGBA
}

func (b *imageBitmap) Image() image.Image { return b.img }

func (b *imageBitmap) Context() Context {
	return &imageContext{img: b.img, stack: []affine{identity()}}
}

// imageContext implements Context by inverse-mapping every destination
// pixel in a shape's device-space bounding box back into local shape
// coordinates through the current transform, and testing it against
// the shape equation there. This handles translate/rotate/scale
// uniformly for rectangles, ovals, lines and blitted images (including
// rendered text, which DrawText turns into an image and blits the
// same way), without a separate code path per transform case.
type imageContext struct {
	img   *image.RGBA
	stack []affine
}

func (c *imageContext) cur() affine { return c.stack[len(c.stack)-1] }

func (c *imageContext) Save() {
	c.stack = append(c.stack, c.cur())
}

func (c *imageContext) Restore() {
	if len(c.stack) > 1 {
		c.stack = c.stack[:len(c.stack)-1]
	}
}

func (c *imageContext) Translate(dx, dy float64) {
	c.stack[len(c.stack)-1] = c.cur().translate(dx, dy)
}

func (c *imageContext) RotateDegrees(deg float64) {
	c.stack[len(c.stack)-1] = c.cur().rotateDegrees(deg)
}

func (c *imageContext) Scale(sx, sy float64) {
	c.stack[len(c.stack)-1] = c.cur().scale(sx, sy)
}

// deviceBounds returns the pixel bounding box a local-space rectangle
// covers under the current transform, clipped to the image.
func (c *imageContext) deviceBounds(x, y, w, h float64) (minX, minY, maxX, maxY int) {
	t := c.cur()
	corners := [4][2]float64{{x, y}, {x + w, y}, {x, y + h}, {x + w, y + h}}
	lo0, lo1 := math.Inf(1), math.Inf(1)
	hi0, hi1 := math.Inf(-1), math.Inf(-1)
	for _, p := range corners {
		dx, dy := t.apply(p[0], p[1])
		lo0, hi0 = math.Min(lo0, dx), math.Max(hi0, dx)
		lo1, hi1 = math.Min(lo1, dy), math.Max(hi1, dy)
	}
	b := c.img.Bounds()
	minX = clampI(int(math.Floor(lo0))-1, b.Min.X, b.Max.X)
	maxX = clampI(int(math.Ceil(hi0))+1, b.Min.X, b.Max.X)
	minY = clampI(int(math.Floor(lo1))-1, b.Min.Y, b.Max.Y)
	maxY = clampI(int(math.Ceil(hi1))+1, b.Min.Y, b.Max.Y)
	return
}

func clampI(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (c *imageContext) FillRect(x, y, w, h float64, col Color) {
	inv := c.cur().invert()
	minX, minY, maxX, maxY := c.deviceBounds(x, y, w, h)
	rgba := toNRGBA(col)
	for dy := minY; dy < maxY; dy++ {
		for dx := minX; dx < maxX; dx++ {
			lx, ly := inv.apply(float64(dx)+0.5, float64(dy)+0.5)
			if lx >= x && lx <= x+w && ly >= y && ly <= y+h {
				c.img.Set(dx, dy, rgba)
			}
		}
	}
}

func (c *imageContext) StrokeRect(x, y, w, h, thickness float64, col Color) {
	if thickness <= 0 {
		thickness = 1
	}
	inv := c.cur().invert()
	minX, minY, maxX, maxY := c.deviceBounds(x, y, w, h)
	rgba := toNRGBA(col)
	for dy := minY; dy < maxY; dy++ {
		for dx := minX; dx < maxX; dx++ {
			lx, ly := inv.apply(float64(dx)+0.5, float64(dy)+0.5)
			if lx < x || lx > x+w || ly < y || ly > y+h {
				continue
			}
			if lx-x < thickness || x+w-lx < thickness || ly-y < thickness || y+h-ly < thickness {
				c.img.Set(dx, dy, rgba)
			}
		}
	}
}

func (c *imageContext) FillRoundRect(x, y, w, h, radius float64, col Color) {
	if radius <= 0 {
		c.FillRect(x, y, w, h, col)
		return
	}
	inv := c.cur().invert()
	minX, minY, maxX, maxY := c.deviceBounds(x, y, w, h)
	rgba := toNRGBA(col)
	for dy := minY; dy < maxY; dy++ {
		for dx := minX; dx < maxX; dx++ {
			lx, ly := inv.apply(float64(dx)+0.5, float64(dy)+0.5)
			if insideRoundRect(lx, ly, x, y, w, h, radius) {
				c.img.Set(dx, dy, rgba)
			}
		}
	}
}

func (c *imageContext) StrokeRoundRect(x, y, w, h, radius, thickness float64, col Color) {
	if thickness <= 0 {
		thickness = 1
	}
	if radius <= 0 {
		c.StrokeRect(x, y, w, h, thickness, col)
		return
	}
	inset := radius - thickness
	if inset < 0 {
		inset = 0
	}
	inv := c.cur().invert()
	minX, minY, maxX, maxY := c.deviceBounds(x, y, w, h)
	rgba := toNRGBA(col)
	for dy := minY; dy < maxY; dy++ {
		for dx := minX; dx < maxX; dx++ {
			lx, ly := inv.apply(float64(dx)+0.5, float64(dy)+0.5)
			outer := insideRoundRect(lx, ly, x, y, w, h, radius)
			inner := insideRoundRect(lx, ly, x+thickness, y+thickness, w-2*thickness, h-2*thickness, inset)
			if outer && !inner {
				c.img.Set(dx, dy, rgba)
			}
		}
	}
}

func insideRoundRect(lx, ly, x, y, w, h, r float64) bool {
	if lx < x || lx > x+w || ly < y || ly > y+h {
		return false
	}
	if r > w/2 {
		r = w / 2
	}
	if r > h/2 {
		r = h / 2
	}
	cx, cy := lx, ly
	switch {
	case cx < x+r && cy < y+r:
		return dist2(cx, cy, x+r, y+r) <= r*r
	case cx > x+w-r && cy < y+r:
		return dist2(cx, cy, x+w-r, y+r) <= r*r
	case cx < x+r && cy > y+h-r:
		return dist2(cx, cy, x+r, y+h-r) <= r*r
	case cx > x+w-r && cy > y+h-r:
		return dist2(cx, cy, x+w-r, y+h-r) <= r*r
	default:
		return true
	}
}

func dist2(x0, y0, x1, y1 float64) float64 {
	dx, dy := x0-x1, y0-y1
	return dx*dx + dy*dy
}

func (c *imageContext) FillOval(x, y, w, h float64, col Color) {
	rx, ry := w/2, h/2
	cx, cy := x+rx, y+ry
	inv := c.cur().invert()
	minX, minY, maxX, maxY := c.deviceBounds(x, y, w, h)
	rgba := toNRGBA(col)
	for dy := minY; dy < maxY; dy++ {
		for dx := minX; dx < maxX; dx++ {
			lx, ly := inv.apply(float64(dx)+0.5, float64(dy)+0.5)
			nx, ny := (lx-cx)/rx, (ly-cy)/ry
			if nx*nx+ny*ny <= 1 {
				c.img.Set(dx, dy, rgba)
			}
		}
	}
}

func (c *imageContext) StrokeOval(x, y, w, h, thickness float64, col Color) {
	if thickness <= 0 {
		thickness = 1
	}
	rx, ry := w/2, h/2
	cx, cy := x+rx, y+ry
	irx, iry := rx-thickness, ry-thickness
	inv := c.cur().invert()
	minX, minY, maxX, maxY := c.deviceBounds(x, y, w, h)
	rgba := toNRGBA(col)
	for dy := minY; dy < maxY; dy++ {
		for dx := minX; dx < maxX; dx++ {
			lx, ly := inv.apply(float64(dx)+0.5, float64(dy)+0.5)
			nx, ny := (lx-cx)/rx, (ly-cy)/ry
			outer := nx*nx+ny*ny <= 1
			inner := irx > 0 && iry > 0 && ((lx-cx)/irx)*((lx-cx)/irx)+((ly-cy)/iry)*((ly-cy)/iry) <= 1
			if outer && !inner {
				c.img.Set(dx, dy, rgba)
			}
		}
	}
}

func (c *imageContext) Line(x0, y0, x1, y1, thickness float64, col Color) {
	if thickness <= 0 {
		thickness = 1
	}
	t := c.cur()
	dx0, dy0 := t.apply(x0, y0)
	dx1, dy1 := t.apply(x1, y1)
	minX := clampI(int(math.Floor(math.Min(dx0, dx1)-thickness)), c.img.Bounds().Min.X, c.img.Bounds().Max.X)
	maxX := clampI(int(math.Ceil(math.Max(dx0, dx1)+thickness)), c.img.Bounds().Min.X, c.img.Bounds().Max.X)
	minY := clampI(int(math.Floor(math.Min(dy0, dy1)-thickness)), c.img.Bounds().Min.Y, c.img.Bounds().Max.Y)
	maxY := clampI(int(math.Ceil(math.Max(dy0, dy1)+thickness)), c.img.Bounds().Min.Y, c.img.Bounds().Max.Y)
	rgba := toNRGBA(col)
	segLen2 := dist2(dx0, dy0, dx1, dy1)
	for py := minY; py < maxY; py++ {
		for px := minX; px < maxX; px++ {
			if pointToSegmentDist(float64(px)+0.5, float64(py)+0.5, dx0, dy0, dx1, dy1, segLen2) <= thickness/2 {
				c.img.Set(px, py, rgba)
			}
		}
	}
}

func pointToSegmentDist(px, py, x0, y0, x1, y1, segLen2 float64) float64 {
	if segLen2 == 0 {
		return math.Sqrt(dist2(px, py, x0, y0))
	}
	t := ((px-x0)*(x1-x0) + (py-y0)*(y1-y0)) / segLen2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	projX, projY := x0+t*(x1-x0), y0+t*(y1-y0)
	return math.Sqrt(dist2(px, py, projX, projY))
}

// DrawText rasterizes s using face into a temporary image, then blits
// it with DrawImage so text shares the exact same rotate/scale
// sampling path as any other image element.
func (c *imageContext) DrawText(s string, x, y float64, face Face, col Color) {
	rf, ok := face.(*renderedFace)
	if !ok {
		return
	}
	img, originX, originY := rf.render(s, col)
	if img == nil {
		return
	}
	b := img.Bounds()
	c.DrawImage(img, x-float64(originX), y-float64(originY), float64(b.Dx()), float64(b.Dy()), true)
}

func (c *imageContext) DrawImage(img image.Image, dstX, dstY, dstW, dstH float64, nearestNeighbor bool) {
	if img == nil {
		return
	}
	sb := img.Bounds()
	if sb.Dx() == 0 || sb.Dy() == 0 || dstW == 0 || dstH == 0 {
		return
	}
	inv := c.cur().invert()
	minX, minY, maxX, maxY := c.deviceBounds(dstX, dstY, dstW, dstH)
	for dy := minY; dy < maxY; dy++ {
		for dx := minX; dx < maxX; dx++ {
			lx, ly := inv.apply(float64(dx)+0.5, float64(dy)+0.5)
			if lx < dstX || lx >= dstX+dstW || ly < dstY || ly >= dstY+dstH {
				continue
			}
			u := (lx - dstX) / dstW
			v := (ly - dstY) / dstH
			sx := sb.Min.X + int(u*float64(sb.Dx()))
			sy := sb.Min.Y + int(v*float64(sb.Dy()))
			sx = clampI(sx, sb.Min.X, sb.Max.X-1)
			sy = clampI(sy, sb.Min.Y, sb.Max.Y-1)
			r, g, b, a := img.At(sx, sy).RGBA()
			if a == 0 {
				continue
			}
			src := color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
			if a == 0xffff {
				c.img.Set(dx, dy, src)
			} else {
				c.img.Set(dx, dy, alphaBlend(c.img.RGBAAt(dx, dy), src))
			}
		}
	}
}

func alphaBlend(dst, src color.RGBA) color.RGBA {
	sa := float64(src.A) / 255
	blend := func(d, s uint8) uint8 {
		return uint8(float64(s)*sa + float64(d)*(1-sa))
	}
	return color.RGBA{blend(dst.R, src.R), blend(dst.G, src.G), blend(dst.B, src.B), 255}
}

func toNRGBA(c Color) color.RGBA {
	return color.RGBA{c.R, c.G, c.B, c.A}
}
