// Package ecdsap256 implements the secondary hybrid component scheme:
// ECDSA over NIST P-256 with deterministic (RFC 6979) nonce generation
// in place of DSTU 4145's random ephemeral scalar.
package ecdsap256

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/sha256"
	"fmt"
	"io"
	"math/big"

	"github.com/nspcc-dev/rfc6979"

	"github.com/sq26-yara/hybrid-post-quantum-signature/sigerr"
)

// ComponentSize is the fixed width, in bytes, of each of the r and s
// signature components over P-256.
const ComponentSize = 32

// GenerateKey draws a fresh P-256 keypair from r.
func GenerateKey(r io.Reader) (*ecdsa.PrivateKey, error) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), r)
	if err != nil {
		return nil, fmt.Errorf("%w: P-256 key generation: %v", sigerr.ErrGeneration, err)
	}
	return priv, nil
}

// Sign computes SHA-256(data) and signs it with a deterministic nonce
// (RFC 6979), returning the fixed-width r||s encoding.
func Sign(priv *ecdsa.PrivateKey, data []byte) []byte {
	digest := sha256.Sum256(data)
	r, s := rfc6979.SignECDSA(priv, digest[:], sha256.New)
	return encodeSignature(r, s)
}

// Verify reports whether signature is a valid ECDSA-P256 signature over
// data under pub. Malformed signatures are treated as verification
// failure, never as an error.
func Verify(pub *ecdsa.PublicKey, data, signature []byte) bool {
	r, s, err := decodeSignature(signature)
	if err != nil {
		return false
	}
	digest := sha256.Sum256(data)
	return ecdsa.Verify(pub, digest[:], r, s)
}

func encodeSignature(r, s *big.Int) []byte {
	out := make([]byte, 2*ComponentSize)
	rBytes := r.Bytes()
	sBytes := s.Bytes()
	copy(out[ComponentSize-len(rBytes):ComponentSize], rBytes)
	copy(out[2*ComponentSize-len(sBytes):], sBytes)
	return out
}

func decodeSignature(data []byte) (r, s *big.Int, err error) {
	if len(data) != 2*ComponentSize {
		return nil, nil, fmt.Errorf("%w: ECDSA-P256 signature requires %d bytes, got %d", sigerr.ErrDecode, 2*ComponentSize, len(data))
	}
	r = new(big.Int).SetBytes(data[:ComponentSize])
	s = new(big.Int).SetBytes(data[ComponentSize:])
	return r, s, nil
}

// MarshalPublicKey returns the uncompressed SEC1 encoding of pub.
func MarshalPublicKey(pub *ecdsa.PublicKey) []byte {
	return elliptic.Marshal(elliptic.P256(), pub.X, pub.Y)
}

// UnmarshalPublicKey parses an uncompressed SEC1-encoded P-256 public key.
func UnmarshalPublicKey(data []byte) (*ecdsa.PublicKey, error) {
	x, y := elliptic.Unmarshal(elliptic.P256(), data)
	if x == nil {
		return nil, fmt.Errorf("%w: invalid P-256 public key encoding", sigerr.ErrDecode)
	}
	return &ecdsa.PublicKey{Curve: elliptic.P256(), X: x, Y: y}, nil
}

// MarshalPrivateKey returns the fixed-width big-endian scalar encoding
// of priv's private value D.
func MarshalPrivateKey(priv *ecdsa.PrivateKey) []byte {
	out := make([]byte, ComponentSize)
	b := priv.D.Bytes()
	copy(out[ComponentSize-len(b):], b)
	return out
}

// UnmarshalPrivateKey rebuilds a private key from its scalar encoding.
func UnmarshalPrivateKey(data []byte) (*ecdsa.PrivateKey, error) {
	if len(data) != ComponentSize {
		return nil, fmt.Errorf("%w: ECDSA-P256 private key requires %d bytes, got %d", sigerr.ErrDecode, ComponentSize, len(data))
	}
	d := new(big.Int).SetBytes(data)
	priv := new(ecdsa.PrivateKey)
	priv.PublicKey.Curve = elliptic.P256()
	priv.D = d
	priv.PublicKey.X, priv.PublicKey.Y = elliptic.P256().ScalarBaseMult(data)
	return priv, nil
}
