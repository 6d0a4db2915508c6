// Package hybrid composes DSTU 4145-2002 with ML-DSA-44 into a single
// signature envelope: sign independently with both, verify only
// succeeds when both component signatures verify. The JSON encoding
// matches the interop shape used across implementations of this
// scheme, not any Go-specific convention.
package hybrid

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"

	"github.com/sq26-yara/hybrid-post-quantum-signature/curve"
	"github.com/sq26-yara/hybrid-post-quantum-signature/dstu4145"
	"github.com/sq26-yara/hybrid-post-quantum-signature/kupyna"
	"github.com/sq26-yara/hybrid-post-quantum-signature/mldsapq"
	"github.com/sq26-yara/hybrid-post-quantum-signature/sigerr"
)

const AlgorithmName = "DSTU-4145 + ML-DSA-44 + Купина-256"

// Scheme composes a DSTU 4145 scheme over a fixed domain with the
// ML-DSA-44 adapter.
type Scheme struct {
	dstu *dstu4145.Scheme
}

// New binds a hybrid scheme to domain (curve.DomainM163() or
// curve.DomainM257()).
func New(domain *curve.Domain) (*Scheme, error) {
	d, err := dstu4145.New(domain)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "constructing hybrid scheme")
	}
	return &Scheme{dstu: d}, nil
}

// KeyPair holds both component keypairs plus bookkeeping metadata.
type KeyPair struct {
	KeyID     string
	CreatedAt time.Time

	DSTUPrivate  *dstu4145.PrivateKey
	DSTUPublic   *dstu4145.PublicKey
	MLDSAPublic  []byte
	MLDSAPrivate []byte
}

// GenerateKeyPair draws an independent DSTU 4145 keypair and ML-DSA-44
// keypair and packages them with a generated key identifier and the
// current time.
func (s *Scheme) GenerateKeyPair(r io.Reader) (*KeyPair, error) {
	dPriv, dPub, err := s.dstu.GenerateKey(r)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "generating DSTU 4145 keypair")
	}
	mPub, mPriv, err := mldsapq.GenerateKey(r)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "generating ML-DSA-44 keypair")
	}
	return &KeyPair{
		KeyID:        uuid.New().String(),
		CreatedAt:    time.Now().UTC(),
		DSTUPrivate:  dPriv,
		DSTUPublic:   dPub,
		MLDSAPublic:  mPub,
		MLDSAPrivate: mPriv,
	}, nil
}

// Signature is a composed DSTU 4145 + ML-DSA-44 signature, carrying the
// algorithm tag, timestamp and Kupyna-256 hash of the signed data that
// the JSON envelope exposes for inspection (the hash is informational;
// verification recomputes it from the supplied data).
type Signature struct {
	Algorithm      string
	Timestamp      time.Time
	DataHashKupyna [kupyna.Size]byte
	DSTU           *dstu4145.Signature
	MLDSA          []byte
}

// Sign produces a hybrid signature over data, signing independently
// with both component schemes.
func (s *Scheme) Sign(r io.Reader, data []byte, keys *KeyPair) (*Signature, error) {
	dstuSig, err := s.dstu.Sign(r, data, keys.DSTUPrivate)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "signing with DSTU 4145")
	}
	mldsaSig, err := mldsapq.Sign(r, keys.MLDSAPrivate, data)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "signing with ML-DSA-44")
	}
	return &Signature{
		Algorithm:      AlgorithmName,
		Timestamp:      time.Now().UTC(),
		DataHashKupyna: kupyna.Sum256(data),
		DSTU:           dstuSig,
		MLDSA:          mldsaSig,
	}, nil
}

// VerifyResult carries the overall hybrid verdict alongside each
// component's individual result, so a caller can distinguish "the
// classical half forged" from "the post-quantum half forged" without
// either condition ever being reported as an error.
type VerifyResult struct {
	Valid     bool
	DSTUValid bool
	MLDSAValid bool
}

// Verify checks data against sig under the DSTU 4145 public key dstuPub
// and the ML-DSA-44 public key mldsaPub. Valid is true only if both
// component signatures verify.
func (s *Scheme) Verify(data []byte, sig *Signature, dstuPub *dstu4145.PublicKey, mldsaPub []byte) VerifyResult {
	dstuOK := s.dstu.Verify(data, sig.DSTU, dstuPub)
	mldsaOK := mldsapq.Verify(mldsaPub, data, sig.MLDSA)
	return VerifyResult{
		Valid:      dstuOK && mldsaOK,
		DSTUValid:  dstuOK,
		MLDSAValid: mldsaOK,
	}
}

type signatureJSON struct {
	Algorithm      string `json:"algorithm"`
	Timestamp      string `json:"timestamp"`
	DataHashKupyna string `json:"data_hash_kupyna"`
	DSTU4145       struct {
		R string `json:"r"`
		S string `json:"s"`
	} `json:"dstu4145"`
	MLDSA44 struct {
		Signature string `json:"signature"`
	} `json:"mldsa44"`
}

// MarshalJSON encodes sig into the interop envelope shape.
func (s *Scheme) MarshalJSON(sig *Signature) ([]byte, error) {
	var out signatureJSON
	out.Algorithm = sig.Algorithm
	out.Timestamp = sig.Timestamp.Format(time.RFC3339)
	out.DataHashKupyna = fmt.Sprintf("%x", sig.DataHashKupyna[:])
	out.DSTU4145.R = fmt.Sprintf("0x%x", sig.DSTU.R)
	out.DSTU4145.S = fmt.Sprintf("0x%x", sig.DSTU.S)
	out.MLDSA44.Signature = base64.StdEncoding.EncodeToString(sig.MLDSA)
	return json.Marshal(out)
}

// UnmarshalJSON decodes a signature from the interop envelope shape.
func (s *Scheme) UnmarshalJSON(data []byte) (*Signature, error) {
	var in signatureJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("%w: parsing hybrid signature JSON: %v", sigerr.ErrDecode, err)
	}

	ts, err := time.Parse(time.RFC3339, in.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing hybrid signature timestamp: %v", sigerr.ErrDecode, err)
	}

	r, err := parseHexBigInt(in.DSTU4145.R)
	if err != nil {
		return nil, err
	}
	sVal, err := parseHexBigInt(in.DSTU4145.S)
	if err != nil {
		return nil, err
	}

	mldsaSig, err := base64.StdEncoding.DecodeString(in.MLDSA44.Signature)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding ML-DSA-44 signature base64: %v", sigerr.ErrDecode, err)
	}

	hashBytes, err := hex.DecodeString(in.DataHashKupyna)
	if err != nil || len(hashBytes) != kupyna.Size {
		return nil, fmt.Errorf("%w: decoding data hash hex", sigerr.ErrDecode)
	}
	var hash [kupyna.Size]byte
	copy(hash[:], hashBytes)

	return &Signature{
		Algorithm:      in.Algorithm,
		Timestamp:      ts,
		DataHashKupyna: hash,
		DSTU:           &dstu4145.Signature{R: r, S: sVal},
		MLDSA:          mldsaSig,
	}, nil
}

func parseHexBigInt(s string) (*big.Int, error) {
	s = strings.TrimPrefix(s, "0x")
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		return nil, fmt.Errorf("%w: invalid hex integer %q", sigerr.ErrDecode, s)
	}
	return v, nil
}
