package canvas

import "math"

// affine is a 2x3 affine transform: [a c e; b d f]. It maps a local
// point (x, y) to device space as (a*x + c*y + e, b*x + d*y + f).
type affine struct{ a, b, c, d, e, f float64 }

func identity() affine { return affine{a: 1, d: 1} }

func (t affine) apply(x, y float64) (dx, dy float64) {
	return t.a*x + t.c*y + t.e, t.b*x + t.d*y + t.f
}

// invert returns the inverse transform, used to map device pixels back
// into local shape space for inverse-rasterization.
func (t affine) invert() affine {
	det := t.a*t.d - t.b*t.c
	if det == 0 {
		return identity()
	}
	inv := 1 / det
	return affine{
		a: t.d * inv,
		b: -t.b * inv,
		c: -t.c * inv,
		d: t.a * inv,
		e: (t.c*t.f - t.d*t.e) * inv,
		f: (t.b*t.e - t.a*t.f) * inv,
	}
}

func (t affine) translate(dx, dy float64) affine {
	return t.mul(affine{a: 1, d: 1, e: dx, f: dy})
}

func (t affine) scale(sx, sy float64) affine {
	return t.mul(affine{a: sx, d: sy})
}

func (t affine) rotateDegrees(deg float64) affine {
	rad := deg * (math.Pi / 180)
	cos, sin := math.Cos(rad), math.Sin(rad)
	return t.mul(affine{a: cos, b: sin, c: -sin, d: cos})
}

// mul composes t followed by o: result applies o in t's coordinate
// frame, i.e. result(p) = t(o(p)).
func (t affine) mul(o affine) affine {
	return affine{
		a: t.a*o.a + t.c*o.b,
		b: t.b*o.a + t.d*o.b,
		c: t.a*o.c + t.c*o.d,
		d: t.b*o.c + t.d*o.d,
		e: t.a*o.e + t.c*o.f + t.e,
		f: t.b*o.e + t.d*o.f + t.f,
	}
}
