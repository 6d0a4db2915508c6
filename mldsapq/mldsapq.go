// Package mldsapq is a thin adapter over Cloudflare's circl ML-DSA-44
// implementation (FIPS 204). It exists so the rest of this module
// depends on a small byte-string-in, byte-string-out surface instead of
// circl's key types directly, and so a future backend swap only
// touches this package.
package mldsapq

import (
	"crypto"
	"fmt"
	"io"

	"github.com/cloudflare/circl/sign/mldsa/mldsa44"

	"github.com/sq26-yara/hybrid-post-quantum-signature/sigerr"
)

// AlgorithmNames lists strings accepted as aliases for ML-DSA-44 in
// interoperating implementations; the draft-era name and the NIST round
// 3 submission name both still circulate.
var AlgorithmNames = []string{"ML-DSA-44", "Dilithium2", "ML-DSA-44-ipd"}

const (
	PublicKeySize  = mldsa44.PublicKeySize
	PrivateKeySize = mldsa44.PrivateKeySize
	SignatureSize  = mldsa44.SignatureSize
)

// GenerateKey draws a fresh ML-DSA-44 keypair from r and returns both
// keys in circl's fixed-length wire encoding.
func GenerateKey(r io.Reader) (publicKey, privateKey []byte, err error) {
	pk, sk, err := mldsa44.GenerateKey(r)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: ML-DSA-44 key generation: %v", sigerr.ErrBackend, err)
	}
	pub, err := pk.MarshalBinary()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: marshaling ML-DSA-44 public key: %v", sigerr.ErrBackend, err)
	}
	priv, err := sk.MarshalBinary()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: marshaling ML-DSA-44 private key: %v", sigerr.ErrBackend, err)
	}
	return pub, priv, nil
}

// Sign produces a detached ML-DSA-44 signature over message under the
// wire-encoded private key, via the crypto.Signer interface circl's key
// type implements.
func Sign(r io.Reader, privateKey, message []byte) ([]byte, error) {
	var sk mldsa44.PrivateKey
	if err := sk.UnmarshalBinary(privateKey); err != nil {
		return nil, fmt.Errorf("%w: unmarshaling ML-DSA-44 private key: %v", sigerr.ErrDecode, err)
	}
	sig, err := sk.Sign(r, message, crypto.Hash(0))
	if err != nil {
		return nil, fmt.Errorf("%w: ML-DSA-44 signing: %v", sigerr.ErrBackend, err)
	}
	return sig, nil
}

// Verify reports whether signature is a valid ML-DSA-44 signature over
// message under the wire-encoded public key. Any malformed input
// (public key or signature), and any panic raised by the backend, is
// treated as verification failure rather than surfaced as an error,
// matching the scheme's "verify never errors" contract.
func Verify(publicKey, message, signature []byte) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	var pk mldsa44.PublicKey
	if err := pk.UnmarshalBinary(publicKey); err != nil {
		return false
	}
	return mldsa44.Verify(&pk, message, nil, signature)
}
