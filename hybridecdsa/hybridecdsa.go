// Package hybridecdsa composes ECDSA-P256 (deterministic, RFC 6979
// nonces) with ML-DSA-44 into the secondary hybrid signature scheme:
// a NIST-curve classical component paired with the same post-quantum
// component as the primary DSTU 4145 scheme.
package hybridecdsa

import (
	"crypto/ecdsa"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/sq26-yara/hybrid-post-quantum-signature/ecdsap256"
	"github.com/sq26-yara/hybrid-post-quantum-signature/mldsapq"
	"github.com/sq26-yara/hybrid-post-quantum-signature/sigerr"
)

const AlgorithmName = "ECDSA-P256 + ML-DSA-44"

// KeyPair holds both component keypairs for the ECDSA variant.
type KeyPair struct {
	KeyID     string
	CreatedAt time.Time

	ECDSAPrivate *ecdsa.PrivateKey
	ECDSAPublic  *ecdsa.PublicKey
	MLDSAPublic  []byte
	MLDSAPrivate []byte
}

// GenerateKeyPair draws an independent P-256 keypair and ML-DSA-44
// keypair.
func GenerateKeyPair(r io.Reader, keyID string) (*KeyPair, error) {
	ePriv, err := ecdsap256.GenerateKey(r)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "generating ECDSA-P256 keypair")
	}
	mPub, mPriv, err := mldsapq.GenerateKey(r)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "generating ML-DSA-44 keypair")
	}
	return &KeyPair{
		KeyID:        keyID,
		CreatedAt:    time.Now().UTC(),
		ECDSAPrivate: ePriv,
		ECDSAPublic:  &ePriv.PublicKey,
		MLDSAPublic:  mPub,
		MLDSAPrivate: mPriv,
	}, nil
}

// Signature is a composed ECDSA-P256 + ML-DSA-44 signature.
type Signature struct {
	Algorithm     string
	Timestamp     time.Time
	DataHashSHA256 [sha256.Size]byte
	ECDSA         []byte
	MLDSA         []byte
}

// Sign produces a hybrid signature over data, signing independently
// with both component schemes.
func Sign(r io.Reader, data []byte, keys *KeyPair) (*Signature, error) {
	ecdsaSig := ecdsap256.Sign(keys.ECDSAPrivate, data)
	mldsaSig, err := mldsapq.Sign(r, keys.MLDSAPrivate, data)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "signing with ML-DSA-44")
	}
	return &Signature{
		Algorithm:      AlgorithmName,
		Timestamp:      time.Now().UTC(),
		DataHashSHA256: sha256.Sum256(data),
		ECDSA:          ecdsaSig,
		MLDSA:          mldsaSig,
	}, nil
}

// VerifyResult mirrors hybrid.VerifyResult for the ECDSA variant.
type VerifyResult struct {
	Valid      bool
	ECDSAValid bool
	MLDSAValid bool
}

// Verify checks data against sig. Valid is true only if both component
// signatures verify.
func Verify(data []byte, sig *Signature, ecdsaPub *ecdsa.PublicKey, mldsaPub []byte) VerifyResult {
	ecdsaOK := ecdsap256.Verify(ecdsaPub, data, sig.ECDSA)
	mldsaOK := mldsapq.Verify(mldsaPub, data, sig.MLDSA)
	return VerifyResult{
		Valid:      ecdsaOK && mldsaOK,
		ECDSAValid: ecdsaOK,
		MLDSAValid: mldsaOK,
	}
}

type signatureJSON struct {
	Algorithm      string `json:"algorithm"`
	Timestamp      string `json:"timestamp"`
	DataHashSHA256 string `json:"data_hash_sha256"`
	ECDSAP256      struct {
		Signature string `json:"signature"`
	} `json:"ecdsa_p256"`
	MLDSA44 struct {
		Signature string `json:"signature"`
	} `json:"mldsa44"`
}

// MarshalJSON encodes sig into the interop envelope shape.
func MarshalJSON(sig *Signature) ([]byte, error) {
	var out signatureJSON
	out.Algorithm = sig.Algorithm
	out.Timestamp = sig.Timestamp.Format(time.RFC3339)
	out.DataHashSHA256 = hex.EncodeToString(sig.DataHashSHA256[:])
	out.ECDSAP256.Signature = hex.EncodeToString(sig.ECDSA)
	out.MLDSA44.Signature = base64.StdEncoding.EncodeToString(sig.MLDSA)
	return json.Marshal(out)
}

// UnmarshalJSON decodes a signature from the interop envelope shape.
func UnmarshalJSON(data []byte) (*Signature, error) {
	var in signatureJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("%w: parsing hybrid ECDSA signature JSON: %v", sigerr.ErrDecode, err)
	}

	ts, err := time.Parse(time.RFC3339, in.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing hybrid ECDSA signature timestamp: %v", sigerr.ErrDecode, err)
	}

	hashBytes, err := hex.DecodeString(in.DataHashSHA256)
	if err != nil || len(hashBytes) != sha256.Size {
		return nil, fmt.Errorf("%w: decoding data hash hex", sigerr.ErrDecode)
	}
	var hash [sha256.Size]byte
	copy(hash[:], hashBytes)

	ecdsaSig, err := hex.DecodeString(in.ECDSAP256.Signature)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding ECDSA-P256 signature hex: %v", sigerr.ErrDecode, err)
	}

	mldsaSig, err := base64.StdEncoding.DecodeString(in.MLDSA44.Signature)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding ML-DSA-44 signature base64: %v", sigerr.ErrDecode, err)
	}

	return &Signature{
		Algorithm:      in.Algorithm,
		Timestamp:      ts,
		DataHashSHA256: hash,
		ECDSA:          ecdsaSig,
		MLDSA:          mldsaSig,
	}, nil
}
