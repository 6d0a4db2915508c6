// Package curve implements elliptic curves of the DSTU 4145-2002 shape
// y^2 + xy = x^3 + A*x^2 + B over a binary extension field, plus the
// point compression and generation procedures the standard defines on
// top of that group law.
package curve

import "github.com/sq26-yara/hybrid-post-quantum-signature/gf2m"

// Point is an affine point of a Curve, or the point at infinity when
// Infinity is true (X and Y are nil in that case).
type Point struct {
	X, Y      gf2m.Element
	Infinity  bool
}

// InfinityPoint is the group identity for any curve.
var InfinityPoint = Point{Infinity: true}

// Equal reports whether p and q are the same point.
func (p Point) Equal(f *gf2m.Field, q Point) bool {
	if p.Infinity || q.Infinity {
		return p.Infinity == q.Infinity
	}
	return f.Equal(p.X, q.X) && f.Equal(p.Y, q.Y)
}
