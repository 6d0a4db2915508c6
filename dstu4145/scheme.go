// Package dstu4145 implements the DSTU 4145-2002 elliptic-curve digital
// signature scheme: key generation, signing and verification over a
// curve.Domain, plus the fixed-width byte codecs 4145 defines for
// signatures and public keys.
package dstu4145

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/sq26-yara/hybrid-post-quantum-signature/curve"
	"github.com/sq26-yara/hybrid-post-quantum-signature/gf2m"
	"github.com/sq26-yara/hybrid-post-quantum-signature/kupyna"
	"github.com/sq26-yara/hybrid-post-quantum-signature/sigerr"
)

const maxSignAttempts = 1000

// Scheme is DSTU 4145-2002 bound to one domain (field, curve, base
// point and order). Callers typically use curve.DomainM163() or
// curve.DomainM257().
type Scheme struct {
	Domain *curve.Domain
}

// New validates that the domain's base point lies on its curve and
// returns a Scheme bound to it.
func New(domain *curve.Domain) (*Scheme, error) {
	if !domain.Curve.IsOnCurve(domain.Base) {
		return nil, fmt.Errorf("%w: base point is not on the curve", sigerr.ErrDomain)
	}
	return &Scheme{Domain: domain}, nil
}

// PrivateKey is a DSTU 4145 signing key: an integer d with 0 < d < n.
type PrivateKey struct {
	D *big.Int
}

// PublicKey is a DSTU 4145 verification key: the curve point Q = dP.
type PublicKey struct {
	Q curve.Point
}

// Signature is a DSTU 4145 signature pair (r, s).
type Signature struct {
	R, S *big.Int
}

// hashData computes the Kupyna-256 digest of data (DSTU 4145-2002, 5.9
// uses a hash function black-box; this scheme uses the domain's
// Kupyna-256 binding).
func (s *Scheme) hashData(data []byte) []byte {
	digest := kupyna.Sum256(data)
	return digest[:]
}

// hashToFieldElement maps a hash digest to a field element, substituting
// 1 for the zero element (DSTU 4145-2002, 5.9).
func (s *Scheme) hashToFieldElement(h []byte) (gf2m.Element, error) {
	f := s.Domain.Curve.Field
	el, err := f.NewElementFromBytes(padOrTruncate(h, (f.M()+7)/8))
	if err != nil {
		return nil, err
	}
	if f.IsZero(el) {
		el = f.One()
	}
	return el, nil
}

// padOrTruncate aligns a hash digest to the field's byte width: hashes
// shorter than the field keep their value (left-zero-padded, i.e.
// unchanged magnitude), hashes longer are truncated to the field's
// leading bytes, matching the standard's convention of taking the hash
// as a big-endian integer reduced into the field's bit width.
func padOrTruncate(h []byte, width int) []byte {
	if len(h) == width {
		return h
	}
	if len(h) > width {
		return h[:width]
	}
	out := make([]byte, width)
	copy(out[width-len(h):], h)
	return out
}

// fieldElementToInt converts a field element to an integer truncated to
// L(n)-1 bits, where L(n) is the bit length of the domain order (DSTU
// 4145-2002, 5.8).
func (s *Scheme) fieldElementToInt(x gf2m.Element) *big.Int {
	f := s.Domain.Curve.Field
	v := f.ElementToInt(x)
	nBits := s.Domain.Order.BitLen()
	mask := new(big.Int).Lsh(big.NewInt(1), uint(nBits-1))
	mask.Sub(mask, big.NewInt(1))
	return v.And(v, mask)
}

// GenerateKey draws a private key 0 < d < n from r and derives Q = dP.
func (s *Scheme) GenerateKey(r io.Reader) (*PrivateKey, *PublicKey, error) {
	n := s.Domain.Order
	for {
		d, err := rand.Int(r, n)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: generating private key: %v", sigerr.ErrGeneration, err)
		}
		if d.Sign() != 0 {
			q := s.Domain.Curve.ScalarMul(d, s.Domain.Base)
			return &PrivateKey{D: d}, &PublicKey{Q: q}, nil
		}
	}
}

// Sign produces a DSTU 4145 signature over data under priv (DSTU
// 4145-2002, section 12), retrying the ephemeral scalar up to
// maxSignAttempts times.
func (s *Scheme) Sign(r io.Reader, data []byte, priv *PrivateKey) (*Signature, error) {
	n := s.Domain.Order
	if priv.D.Sign() <= 0 || priv.D.Cmp(n) >= 0 {
		return nil, fmt.Errorf("%w: private key out of range [1,n-1]", sigerr.ErrDomain)
	}

	h, err := s.hashToFieldElement(s.hashData(data))
	if err != nil {
		return nil, err
	}

	f := s.Domain.Curve.Field
	for attempt := 0; attempt < maxSignAttempts; attempt++ {
		e, err := rand.Int(r, n)
		if err != nil {
			return nil, fmt.Errorf("%w: drawing ephemeral scalar: %v", sigerr.ErrExhausted, err)
		}
		if e.Sign() == 0 {
			continue
		}

		R := s.Domain.Curve.ScalarMul(e, s.Domain.Base)
		if R.Infinity {
			continue
		}

		y := f.Multiply(h, R.X)
		rInt := s.fieldElementToInt(y)
		if rInt.Sign() == 0 {
			continue
		}

		sInt := new(big.Int).Mul(priv.D, rInt)
		sInt.Sub(e, sInt)
		sInt.Mod(sInt, n)
		if sInt.Sign() == 0 {
			continue
		}

		return &Signature{R: rInt, S: sInt}, nil
	}

	return nil, fmt.Errorf("%w: no valid signature found in %d attempts", sigerr.ErrExhausted, maxSignAttempts)
}

// Verify reports whether sig is a valid DSTU 4145 signature over data
// under pub (DSTU 4145-2002, section 13). Verification failure is
// always returned as false, never as an error.
func (s *Scheme) Verify(data []byte, sig *Signature, pub *PublicKey) bool {
	n := s.Domain.Order
	if sig.R.Sign() <= 0 || sig.R.Cmp(n) >= 0 {
		return false
	}
	if sig.S.Sign() <= 0 || sig.S.Cmp(n) >= 0 {
		return false
	}
	if pub.Q.Infinity || !s.Domain.Curve.IsOnCurve(pub.Q) {
		return false
	}

	h, err := s.hashToFieldElement(s.hashData(data))
	if err != nil {
		return false
	}

	c := s.Domain.Curve
	sP := c.ScalarMul(sig.S, s.Domain.Base)
	rQ := c.ScalarMul(sig.R, pub.Q)
	R := c.Add(sP, rQ)
	if R.Infinity {
		return false
	}

	y := c.Field.Multiply(h, R.X)
	rPrime := s.fieldElementToInt(y)

	return rPrime.Cmp(sig.R) == 0
}

func (s *Scheme) nBytes() int {
	return (s.Domain.Order.BitLen() + 7) / 8
}

// ExportSignature serializes sig as big-endian r||s, each zero-padded to
// ceil(bitlen(n)/8) bytes.
func (s *Scheme) ExportSignature(sig *Signature) []byte {
	n := s.nBytes()
	out := make([]byte, 2*n)
	rBytes := sig.R.Bytes()
	sBytes := sig.S.Bytes()
	copy(out[n-len(rBytes):n], rBytes)
	copy(out[2*n-len(sBytes):], sBytes)
	return out
}

// ImportSignature parses a signature produced by ExportSignature.
func (s *Scheme) ImportSignature(data []byte) (*Signature, error) {
	n := s.nBytes()
	if len(data) != 2*n {
		return nil, fmt.Errorf("%w: signature requires %d bytes, got %d", sigerr.ErrDecode, 2*n, len(data))
	}
	r := new(big.Int).SetBytes(data[:n])
	sVal := new(big.Int).SetBytes(data[n:])
	return &Signature{R: r, S: sVal}, nil
}

// ExportPublicKey serializes a public key as big-endian x||y, each
// zero-padded to ceil(m/8) bytes. The point at infinity cannot be
// exported.
func (s *Scheme) ExportPublicKey(pub *PublicKey) ([]byte, error) {
	if pub.Q.Infinity {
		return nil, fmt.Errorf("%w: cannot export the point at infinity as a public key", sigerr.ErrDomain)
	}
	f := s.Domain.Curve.Field
	x := f.ElementToBytes(pub.Q.X)
	y := f.ElementToBytes(pub.Q.Y)
	return append(x, y...), nil
}

// ImportPublicKey parses a public key produced by ExportPublicKey,
// rejecting any point not on the scheme's curve.
func (s *Scheme) ImportPublicKey(data []byte) (*PublicKey, error) {
	f := s.Domain.Curve.Field
	byteLen := (f.M() + 7) / 8
	if len(data) != 2*byteLen {
		return nil, fmt.Errorf("%w: public key requires %d bytes, got %d", sigerr.ErrDecode, 2*byteLen, len(data))
	}
	x, err := f.NewElementFromBytes(data[:byteLen])
	if err != nil {
		return nil, err
	}
	y, err := f.NewElementFromBytes(data[byteLen:])
	if err != nil {
		return nil, err
	}
	p := curve.Point{X: x, Y: y}
	if !s.Domain.Curve.IsOnCurve(p) {
		return nil, fmt.Errorf("%w: decoded point is not on the curve", sigerr.ErrDecode)
	}
	return &PublicKey{Q: p}, nil
}
