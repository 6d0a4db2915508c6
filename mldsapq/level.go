package mldsapq

import (
	"crypto"
	"fmt"
	"io"

	"github.com/cloudflare/circl/sign/mldsa/mldsa44"
	"github.com/cloudflare/circl/sign/mldsa/mldsa65"
	"github.com/cloudflare/circl/sign/mldsa/mldsa87"

	"github.com/sq26-yara/hybrid-post-quantum-signature/sigerr"
)

// Level selects an ML-DSA parameter set. Level44 is the scheme's
// default; Level65 and Level87 trade larger keys and signatures for a
// higher post-quantum security margin.
type Level int

const (
	Level44 Level = 44
	Level65 Level = 65
	Level87 Level = 87
)

// GenerateKeyAt, SignAt and VerifyAt mirror GenerateKey/Sign/Verify but
// select the parameter set at runtime instead of being fixed to
// ML-DSA-44.
func GenerateKeyAt(level Level, r io.Reader) (publicKey, privateKey []byte, err error) {
	switch level {
	case Level44:
		return GenerateKey(r)
	case Level65:
		pk, sk, err := mldsa65.GenerateKey(r)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: ML-DSA-65 key generation: %v", sigerr.ErrBackend, err)
		}
		pub, _ := pk.MarshalBinary()
		priv, _ := sk.MarshalBinary()
		return pub, priv, nil
	case Level87:
		pk, sk, err := mldsa87.GenerateKey(r)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: ML-DSA-87 key generation: %v", sigerr.ErrBackend, err)
		}
		pub, _ := pk.MarshalBinary()
		priv, _ := sk.MarshalBinary()
		return pub, priv, nil
	default:
		return nil, nil, fmt.Errorf("%w: unsupported ML-DSA level %d", sigerr.ErrDomain, level)
	}
}

func SignAt(level Level, r io.Reader, privateKey, message []byte) ([]byte, error) {
	switch level {
	case Level44:
		return Sign(r, privateKey, message)
	case Level65:
		var sk mldsa65.PrivateKey
		if err := sk.UnmarshalBinary(privateKey); err != nil {
			return nil, fmt.Errorf("%w: unmarshaling ML-DSA-65 private key: %v", sigerr.ErrDecode, err)
		}
		sig, err := sk.Sign(r, message, crypto.Hash(0))
		if err != nil {
			return nil, fmt.Errorf("%w: ML-DSA-65 signing: %v", sigerr.ErrBackend, err)
		}
		return sig, nil
	case Level87:
		var sk mldsa87.PrivateKey
		if err := sk.UnmarshalBinary(privateKey); err != nil {
			return nil, fmt.Errorf("%w: unmarshaling ML-DSA-87 private key: %v", sigerr.ErrDecode, err)
		}
		sig, err := sk.Sign(r, message, crypto.Hash(0))
		if err != nil {
			return nil, fmt.Errorf("%w: ML-DSA-87 signing: %v", sigerr.ErrBackend, err)
		}
		return sig, nil
	default:
		return nil, fmt.Errorf("%w: unsupported ML-DSA level %d", sigerr.ErrDomain, level)
	}
}

func VerifyAt(level Level, publicKey, message, signature []byte) bool {
	switch level {
	case Level44:
		return Verify(publicKey, message, signature)
	case Level65:
		var pk mldsa65.PublicKey
		if err := pk.UnmarshalBinary(publicKey); err != nil {
			return false
		}
		return mldsa65.Verify(&pk, message, nil, signature)
	case Level87:
		var pk mldsa87.PublicKey
		if err := pk.UnmarshalBinary(publicKey); err != nil {
			return false
		}
		return mldsa87.Verify(&pk, message, nil, signature)
	default:
		return false
	}
}
