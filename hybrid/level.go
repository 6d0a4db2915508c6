package hybrid

import (
	"io"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"

	"github.com/sq26-yara/hybrid-post-quantum-signature/curve"
	"github.com/sq26-yara/hybrid-post-quantum-signature/dstu4145"
	"github.com/sq26-yara/hybrid-post-quantum-signature/kupyna"
	"github.com/sq26-yara/hybrid-post-quantum-signature/mldsapq"
)

// LeveledScheme is a hybrid scheme parameterized over the post-quantum
// component's security level (ML-DSA-44/65/87) instead of being fixed
// to ML-DSA-44.
type LeveledScheme struct {
	dstu  *dstu4145.Scheme
	level mldsapq.Level
}

// SchemeAt binds a hybrid scheme to domain and an ML-DSA parameter
// level. SchemeAt(domain, mldsapq.Level44) is equivalent to New(domain).
func SchemeAt(domain *curve.Domain, level mldsapq.Level) (*LeveledScheme, error) {
	d, err := dstu4145.New(domain)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "constructing leveled hybrid scheme")
	}
	return &LeveledScheme{dstu: d, level: level}, nil
}

// GenerateKeyPair mirrors Scheme.GenerateKeyPair at the bound level.
func (s *LeveledScheme) GenerateKeyPair(r io.Reader) (*KeyPair, error) {
	dPriv, dPub, err := s.dstu.GenerateKey(r)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "generating DSTU 4145 keypair")
	}
	mPub, mPriv, err := mldsapq.GenerateKeyAt(s.level, r)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "generating ML-DSA keypair")
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

// Sign mirrors Scheme.Sign at the bound level.
func (s *LeveledScheme) Sign(r io.Reader, data []byte, keys *KeyPair) (*Signature, error) {
	dstuSig, err := s.dstu.Sign(r, data, keys.DSTUPrivate)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "signing with DSTU 4145")
	}
	mldsaSig, err := mldsapq.SignAt(s.level, r, keys.MLDSAPrivate, data)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "signing with ML-DSA")
	}
	return &Signature{
		Algorithm:      AlgorithmName,
		Timestamp:      time.Now().UTC(),
		DataHashKupyna: kupyna.Sum256(data),
		DSTU:           dstuSig,
		MLDSA:          mldsaSig,
	}, nil
}

// Verify mirrors Scheme.Verify at the bound level.
func (s *LeveledScheme) Verify(data []byte, sig *Signature, dstuPub *dstu4145.PublicKey, mldsaPub []byte) VerifyResult {
	dstuOK := s.dstu.Verify(data, sig.DSTU, dstuPub)
	mldsaOK := mldsapq.VerifyAt(s.level, mldsaPub, data, sig.MLDSA)
	return VerifyResult{
		Valid:      dstuOK && mldsaOK,
		DSTUValid:  dstuOK,
		MLDSAValid: mldsaOK,
	}
}
