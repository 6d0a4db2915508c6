package curve

import (
	"fmt"
	"io"
	"math/big"

	"github.com/sq26-yara/hybrid-post-quantum-signature/gf2m"
	"github.com/sq26-yara/hybrid-post-quantum-signature/sigerr"
)

const (
	maxRandomPointAttempts = 1000
	maxBasePointAttempts   = 100
)

// EllipticCurve is y^2 + xy = x^3 + A*x^2 + B over a binary field, with
// A restricted to {0,1} as DSTU 4145-2002 requires.
type EllipticCurve struct {
	Field *gf2m.Field
	A     int
	B     gf2m.Element
}

// New validates A and B and returns the curve y^2+xy=x^3+A*x^2+B over f.
func New(f *gf2m.Field, a int, b gf2m.Element) (*EllipticCurve, error) {
	if a != 0 && a != 1 {
		return nil, fmt.Errorf("%w: curve coefficient A must be 0 or 1, got %d", sigerr.ErrDomain, a)
	}
	if f.IsZero(b) {
		return nil, fmt.Errorf("%w: curve coefficient B must be nonzero", sigerr.ErrDomain)
	}
	return &EllipticCurve{Field: f, A: a, B: f.Copy(b)}, nil
}

// IsOnCurve reports whether p satisfies y^2+xy = x^3+A*x^2+B.
func (c *EllipticCurve) IsOnCurve(p Point) bool {
	if p.Infinity {
		return true
	}
	f := c.Field
	left := f.Add(f.Square(p.Y), f.Multiply(p.X, p.Y))

	xSquared := f.Square(p.X)
	right := f.Multiply(p.X, xSquared)
	if c.A == 1 {
		right = f.Add(right, xSquared)
	}
	right = f.Add(right, c.B)

	return f.Equal(left, right)
}

// Add returns P+Q (DSTU 4145-2002, Annex B.8).
func (c *EllipticCurve) Add(p, q Point) Point {
	f := c.Field
	if p.Infinity {
		return q
	}
	if q.Infinity {
		return p
	}
	if f.Equal(p.X, q.X) {
		if f.Equal(p.Y, q.Y) {
			return c.Double(p)
		}
		return InfinityPoint
	}

	numerator := f.Add(p.Y, q.Y)
	denominator := f.Add(p.X, q.X)
	denomInv, err := f.Inverse(denominator)
	if err != nil {
		return InfinityPoint
	}
	lambda := f.Multiply(numerator, denomInv)

	xR := f.Add(f.Square(lambda), lambda)
	xR = f.Add(xR, p.X)
	xR = f.Add(xR, q.X)
	if c.A == 1 {
		xR = f.Add(xR, f.One())
	}

	yR := f.Multiply(lambda, f.Add(p.X, xR))
	yR = f.Add(yR, xR)
	yR = f.Add(yR, p.Y)

	return Point{X: xR, Y: yR}
}

// Double returns 2P (DSTU 4145-2002, Annex B.8).
func (c *EllipticCurve) Double(p Point) Point {
	f := c.Field
	if p.Infinity || f.IsZero(p.X) {
		return InfinityPoint
	}

	xInv, err := f.Inverse(p.X)
	if err != nil {
		return InfinityPoint
	}
	lambda := f.Add(p.X, f.Multiply(p.Y, xInv))

	xR := f.Add(f.Square(lambda), lambda)
	if c.A == 1 {
		xR = f.Add(xR, f.One())
	}

	yR := f.Add(f.Square(p.X), f.Multiply(lambda, xR))
	yR = f.Add(yR, xR)

	return Point{X: xR, Y: yR}
}

// ScalarMul returns k*P via double-and-add. k must be non-negative.
func (c *EllipticCurve) ScalarMul(k *big.Int, p Point) Point {
	if k.Sign() == 0 || p.Infinity {
		return InfinityPoint
	}
	result := InfinityPoint
	addend := p
	for i := 0; i < k.BitLen(); i++ {
		if k.Bit(i) == 1 {
			result = c.Add(result, addend)
		}
		if i != k.BitLen()-1 {
			addend = c.Double(addend)
		}
	}
	return result
}

// Compress returns the compressed representation of p (DSTU 4145-2002,
// 6.9): the x-coordinate with its bit-0 coefficient overwritten by the
// trace bit needed to recover y.
func (c *EllipticCurve) Compress(p Point) gf2m.Element {
	f := c.Field
	if p.Infinity || f.IsZero(p.X) {
		return f.Zero()
	}

	xInv, err := f.Inverse(p.X)
	if err != nil {
		return f.Zero()
	}
	yNorm := f.Multiply(p.Y, xInv)
	traceBit := f.Trace(yNorm)

	compressed := f.Copy(p.X)
	setLowBit(compressed, traceBit)
	return compressed
}

// Decompress recovers the point encoded by Compress.
func (c *EllipticCurve) Decompress(compressed gf2m.Element) (Point, error) {
	f := c.Field
	if f.IsZero(compressed) {
		half := new(big.Int).Lsh(big.NewInt(1), uint(f.M()-1))
		return Point{X: f.Zero(), Y: f.Power(c.B, half)}, nil
	}

	k := int(lowBit(compressed))
	xP := f.Copy(compressed)
	setLowBit(xP, 0)

	if f.Trace(xP) != c.A {
		setLowBit(xP, 1)
	}

	xSquared := f.Square(xP)
	w := f.Multiply(xP, xSquared)
	if c.A == 1 {
		w = f.Add(w, xSquared)
	}
	w = f.Add(w, c.B)

	xSquaredInv, err := f.Inverse(xSquared)
	if err != nil {
		return Point{}, fmt.Errorf("%w: decompressing point with x=0 coefficient bit cleared", sigerr.ErrDecode)
	}
	v := f.Multiply(w, xSquaredInv)

	count, z, err := f.SolveQuadratic(f.One(), v)
	if err != nil {
		return Point{}, err
	}
	if count == 0 {
		return Point{}, fmt.Errorf("%w: compressed point does not correspond to a curve point", sigerr.ErrDecode)
	}

	var yP gf2m.Element
	if f.Trace(z) == k {
		yP = f.Multiply(z, xP)
	} else {
		zAlt := f.Add(z, f.One())
		yP = f.Multiply(zAlt, xP)
	}

	return Point{X: xP, Y: yP}, nil
}

func setLowBit(e gf2m.Element, bit int) {
	if bit != 0 {
		e[0] |= 1
	} else {
		e[0] &^= 1
	}
}

func lowBit(e gf2m.Element) uint64 {
	return e[0] & 1
}

// RandomPoint draws a random point of the curve (DSTU 4145-2002, 6.8),
// retrying up to maxRandomPointAttempts times. It only produces points
// whose x-coordinate has trace A, and of the two points sharing an x it
// returns only the one with y = z*x for the root z that SolveQuadratic
// gives, so the draw is not uniform over the whole curve.
func (c *EllipticCurve) RandomPoint(r io.Reader) (Point, error) {
	f := c.Field
	for attempt := 0; attempt < maxRandomPointAttempts; attempt++ {
		xP, err := f.RandomNonzeroElement(r)
		if err != nil {
			return Point{}, err
		}

		if f.Trace(xP) != c.A {
			xP = f.Add(xP, f.One())
			if f.Trace(xP) != c.A {
				continue
			}
		}

		xSquared := f.Square(xP)
		w := f.Multiply(xP, xSquared)
		if c.A == 1 {
			w = f.Add(w, xSquared)
		}
		w = f.Add(w, c.B)

		xSquaredInv, err := f.Inverse(xSquared)
		if err != nil {
			continue
		}
		v := f.Multiply(w, xSquaredInv)

		count, z, err := f.SolveQuadratic(f.One(), v)
		if err != nil {
			return Point{}, err
		}
		if count == 0 {
			continue
		}

		yP := f.Multiply(z, xP)
		candidate := Point{X: xP, Y: yP}
		if c.IsOnCurve(candidate) {
			return candidate, nil
		}
	}
	return Point{}, fmt.Errorf("%w: no random point found in %d attempts", sigerr.ErrGeneration, maxRandomPointAttempts)
}

// ComputeBasePoint derives a base point of order n and the given
// cofactor (DSTU 4145-2002, 7.3): draw a random point, scale by the
// cofactor, and check the resulting point really has order n, retrying
// up to maxBasePointAttempts times.
func (c *EllipticCurve) ComputeBasePoint(r io.Reader, n *big.Int, cofactor int64) (Point, error) {
	for attempt := 0; attempt < maxBasePointAttempts; attempt++ {
		q, err := c.RandomPoint(r)
		if err != nil {
			return Point{}, err
		}

		p := q
		if cofactor != 1 {
			p = c.ScalarMul(big.NewInt(cofactor), q)
		}
		if p.Infinity {
			continue
		}

		if c.ScalarMul(n, p).Infinity {
			return p, nil
		}
	}
	return Point{}, fmt.Errorf("%w: no base point of order n found in %d attempts", sigerr.ErrGeneration, maxBasePointAttempts)
}
