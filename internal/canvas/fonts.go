package canvas

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// defaultResolver is the process-wide FontResolver every Render call
// shares. A sync.Map-backed cache keyed by (family, bold, sizePixels)
// replaces the teacher's per-change typeface dispose/recreate pattern
// (spec §9) with a resolve-once, reuse-forever cache.
var defaultResolver = &Resolver{ttfFonts: map[string]*truetype.Font{}}

// DefaultResolver returns the shared process-wide FontResolver.
func DefaultResolver() FontResolver { return defaultResolver }

// Resolver is the default FontResolver: it renders glyphs with a
// registered TrueType face (github.com/golang/freetype/truetype) when
// one was supplied for a family via RegisterTTF, and otherwise falls
// back to golang.org/x/image/font/basicfont scaled to the requested
// pixel size with the same nearest-neighbor scaler DrawImage uses for
// bitmap graphics — keeping every font family drawable even with zero
// embedded TTF assets.
type Resolver struct {
	mu       sync.RWMutex
	ttfFonts map[string]*truetype.Font
	cache    sync.Map // faceKey -> *renderedFace
}

// RegisterTTF parses raw TrueType bytes and binds them to family, so
// subsequent Resolve calls for that family use real vector glyphs
// instead of the bitmap fallback.
func (r *Resolver) RegisterTTF(family string, ttfBytes []byte) error {
	f, err := truetype.Parse(ttfBytes)
	if err != nil {
		return fmt.Errorf("canvas: parsing TrueType data for %q: %w", family, err)
	}
	r.mu.Lock()
	r.ttfFonts[family] = f
	r.mu.Unlock()
	r.cache.Range(func(k, _ any) bool {
		if ck, ok := k.(faceKey); ok && ck.family == family {
			r.cache.Delete(k)
		}
		return true
	})
	return nil
}

type faceKey struct {
	family     string
	bold       bool
	sizePixels float64
}

func (r *Resolver) Resolve(family string, bold bool, sizePixels float64) (Face, error) {
	if sizePixels <= 0 {
		sizePixels = 1
	}
	key := faceKey{family, bold, sizePixels}
	if v, ok := r.cache.Load(key); ok {
		return v.(*renderedFace), nil
	}

	r.mu.RLock()
	ttf := r.ttfFonts[family]
	r.mu.RUnlock()

	var rf *renderedFace
	if ttf != nil {
		face := truetype.NewFace(ttf, &truetype.Options{Size: sizePixels, DPI: 72, Hinting: font.HintingFull})
		rf = &renderedFace{face: face}
	} else {
		rf = &renderedFace{face: basicfont.Face7x13, bitmapScale: sizePixels / 13}
	}
	r.cache.Store(key, rf)
	return rf, nil
}

// renderedFace is both the Face a caller measures with and the
// concrete type imageContext.DrawText type-asserts to for rendering.
type renderedFace struct {
	face        font.Face
	bitmapScale float64 // 0 (or 1) when using a real TTF face at native size
}

func (rf *renderedFace) MeasureString(s string) float64 {
	d := &font.Drawer{Face: rf.face}
	w := fixedToFloat(d.MeasureString(s))
	if rf.bitmapScale > 0 {
		w *= rf.bitmapScale
	}
	return w
}

func (rf *renderedFace) Metrics() (ascent, descent, lineHeight float64) {
	m := rf.face.Metrics()
	ascent = fixedToFloat(m.Ascent)
	descent = fixedToFloat(m.Descent)
	lineHeight = fixedToFloat(m.Height)
	if rf.bitmapScale > 0 {
		ascent *= rf.bitmapScale
		descent *= rf.bitmapScale
		lineHeight *= rf.bitmapScale
	}
	return
}

// render draws s at the face's native resolution, then (for the
// bitmap fallback only) applies the nearest-neighbor scaler to reach
// the requested pixel size. Returns the image plus the pixel offset
// of the text baseline within it, so DrawText can position it at
// (x, y).
func (rf *renderedFace) render(s string, col Color) (image.Image, int, int) {
	nativeAscent := fixedToFloat(rf.face.Metrics().Ascent)
	nativeDescent := fixedToFloat(rf.face.Metrics().Descent)
	width := int(fixedToFloat((&font.Drawer{Face: rf.face}).MeasureString(s))) + 1
	height := int(nativeAscent+nativeDescent) + 1
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}

	native := image.NewRGBA(image.Rect(0, 0, width, height))
	d := &font.Drawer{
		Dst:  native,
		Src:  image.NewUniform(toNRGBA(col)),
		Face: rf.face,
		Dot:  fixed.P(0, int(nativeAscent)),
	}
	d.DrawString(s)

	if rf.bitmapScale <= 0 || rf.bitmapScale == 1 {
		return native, 0, int(nativeAscent)
	}

	src := &scaler{image: native, scale: rf.bitmapScale}
	out := image.NewRGBA(src.Bounds())
	draw.Draw(out, out.Bounds(), src, image.Point{}, draw.Src)
	return out, 0, int(nativeAscent * rf.bitmapScale)
}

func fixedToFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }

// scaler is a nearest-neighbor scaling image.Image wrapper, the same
// shape as the warehouse-label reference tool's scaler type (spec
// §6.1's grounding for this package's scaling helpers).
type scaler struct {
	image image.Image
	scale float64
}

func (s *scaler) ColorModel() color.Model { return s.image.ColorModel() }

func (s *scaler) Bounds() image.Rectangle {
	r := s.image.Bounds()
	return image.Rect(
		int(float64(r.Min.X)*s.scale), int(float64(r.Min.Y)*s.scale),
		int(float64(r.Max.X)*s.scale), int(float64(r.Max.Y)*s.scale),
	)
}

func (s *scaler) At(x, y int) color.Color {
	if s.scale == 0 {
		return color.Transparent
	}
	return s.image.At(int(float64(x)/s.scale), int(float64(y)/s.scale))
}
