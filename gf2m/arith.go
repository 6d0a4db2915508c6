package gf2m

import (
	"fmt"
	"math/big"

	"github.com/sq26-yara/hybrid-post-quantum-signature/sigerr"
)

// Add returns a+b, which is XOR in characteristic 2.
func (f *Field) Add(a, b Element) Element {
	out := f.newZero()
	for i := 0; i < f.words; i++ {
		out[i] = a[i] ^ b[i]
	}
	return out
}

// xorShiftedInto XORs (src << shift) into dst, both treated as
// little-endian word-packed bit vectors. dst must be long enough to
// hold the shifted value; bits that would fall outside dst are dropped.
func xorShiftedInto(dst, src []uint64, shift int) {
	wordShift := shift / 64
	bitShift := uint(shift % 64)
	if wordShift >= len(dst) {
		return
	}
	var carry uint64
	for i, w := range src {
		idx := wordShift + i
		if idx >= len(dst) {
			return
		}
		var lo uint64
		if bitShift == 0 {
			lo = w
		} else {
			lo = w << bitShift
		}
		dst[idx] ^= lo ^ carry
		if bitShift == 0 {
			carry = 0
		} else {
			carry = w >> (64 - bitShift)
		}
	}
	idx := wordShift + len(src)
	if idx < len(dst) && carry != 0 {
		dst[idx] ^= carry
	}
}

// polyMultiply computes the carry-less (polynomial) product of a and b,
// with no field reduction applied, into a buffer of 2*f.words words.
func (f *Field) polyMultiply(a, b Element) []uint64 {
	wide := make([]uint64, 2*f.words)
	for i := 0; i < f.m; i++ {
		if bitAt(a, i) == 0 {
			continue
		}
		xorShiftedInto(wide, b, i)
	}
	return wide
}

// reduceWide folds a double-width polynomial down to a canonical
// element by repeatedly eliminating the highest set bit at or above
// position m using the field's reduction polynomial, processed from
// the top down so that every fold target is still unvisited.
func (f *Field) reduceWide(wide []uint64) Element {
	total := len(wide) * 64
	for p := total - 1; p >= f.m; p-- {
		if bitAt(wide, p) == 0 {
			continue
		}
		clearBit(wide, p)
		base := p - f.m
		xorBitIfInRange(wide, base)
		xorBitIfInRange(wide, base+f.k)
		if f.basis == Pentanomial {
			xorBitIfInRange(wide, base+f.j)
			xorBitIfInRange(wide, base+f.l)
		}
	}
	out := make(Element, f.words)
	copy(out, wide[:f.words])
	return out
}

// Multiply returns a*b mod the field's reduction polynomial.
func (f *Field) Multiply(a, b Element) Element {
	return f.reduceWide(f.polyMultiply(a, b))
}

// Square returns a*a. Implementations of GF(2^m) typically special-case
// squaring as a bit-spread operation; this one is defined directly in
// terms of Multiply so the two can never disagree.
func (f *Field) Square(a Element) Element {
	return f.Multiply(a, a)
}

// Power returns a^e for a non-negative exponent e, via square-and-multiply.
func (f *Field) Power(a Element, e *big.Int) Element {
	if e.Sign() == 0 {
		return f.One()
	}
	result := f.One()
	base := f.Copy(a)
	for i := 0; i < e.BitLen(); i++ {
		if e.Bit(i) == 1 {
			result = f.Multiply(result, base)
		}
		if i != e.BitLen()-1 {
			base = f.Square(base)
		}
	}
	return result
}

// fieldOrderMinusTwo returns 2^m - 2 as a big.Int, the Fermat exponent
// used for inversion.
func (f *Field) fieldOrderMinusTwo() *big.Int {
	exp := new(big.Int).Lsh(big.NewInt(1), uint(f.m))
	exp.Sub(exp, big.NewInt(2))
	return exp
}

// Inverse returns a^-1. Inverse of zero is a domain error.
func (f *Field) Inverse(a Element) (Element, error) {
	if f.IsZero(a) {
		return nil, fmt.Errorf("%w: no multiplicative inverse of zero", sigerr.ErrDomain)
	}
	return f.Power(a, f.fieldOrderMinusTwo()), nil
}

// Trace returns Tr(a) = a + a^2 + a^4 + ... + a^(2^(m-1)), folded to a
// single bit (0 or 1) of GF(2).
func (f *Field) Trace(a Element) int {
	result := f.Copy(a)
	t := f.Copy(a)
	for i := 1; i < f.m; i++ {
		t = f.Square(t)
		result = f.Add(result, t)
	}
	if bitAt(result, 0) == 1 {
		return 1
	}
	return 0
}

// HalfTrace returns h(a) = a + a^4 + a^16 + ... + a^(2^(m-1)) for odd m,
// satisfying h(a)^2 + h(a) = a + Tr(a).
func (f *Field) HalfTrace(a Element) (Element, error) {
	if f.m%2 == 0 {
		return nil, fmt.Errorf("%w: half-trace is only defined for odd m", sigerr.ErrDomain)
	}
	result := f.Copy(a)
	t := f.Copy(a)
	for i := 0; i < (f.m-1)/2; i++ {
		t = f.Square(f.Square(t))
		result = f.Add(result, t)
	}
	return result, nil
}

// SolveQuadratic finds roots of z^2 + u*z + w = 0 over the field.
// It returns the number of distinct roots (0, 1, or 2) and, when at
// least one root exists, one root z; the other (when count == 2) is
// z + u.
func (f *Field) SolveQuadratic(u, w Element) (int, Element, error) {
	if f.IsZero(u) {
		if f.IsZero(w) {
			return 2, f.Zero(), nil
		}
		half := new(big.Int).Lsh(big.NewInt(1), uint(f.m-1))
		return 1, f.Power(w, half), nil
	}
	uInv, err := f.Inverse(u)
	if err != nil {
		return 0, nil, err
	}
	uInvSq := f.Square(uInv)
	v := f.Multiply(w, uInvSq)
	if f.Trace(v) != 0 {
		return 0, nil, nil
	}
	h, err := f.HalfTrace(v)
	if err != nil {
		return 0, nil, err
	}
	z := f.Multiply(u, h)
	return 2, z, nil
}
