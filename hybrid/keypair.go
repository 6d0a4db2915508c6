package hybrid

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sq26-yara/hybrid-post-quantum-signature/dstu4145"
	"github.com/sq26-yara/hybrid-post-quantum-signature/sigerr"
)

type keyPairJSON struct {
	KeyID      string `json:"key_id"`
	CreatedAt  string `json:"created_at"`
	Algorithm  string `json:"algorithm"`
	PublicKeys struct {
		DSTU4145 string `json:"dstu4145"`
		MLDSA44  string `json:"mldsa44"`
	} `json:"public_keys"`
	PrivateKeys *struct {
		DSTU4145 string `json:"dstu4145"`
		MLDSA44  string `json:"mldsa44"`
	} `json:"private_keys,omitempty"`
}

// MarshalKeyPairJSON encodes kp into the interop keypair envelope. When
// includePrivate is false the private_keys object is omitted entirely.
func (s *Scheme) MarshalKeyPairJSON(kp *KeyPair, includePrivate bool) ([]byte, error) {
	dstuPub, err := s.dstu.ExportPublicKey(kp.DSTUPublic)
	if err != nil {
		return nil, err
	}

	var out keyPairJSON
	out.KeyID = kp.KeyID
	out.Algorithm = AlgorithmName
	out.CreatedAt = kp.CreatedAt.Format(time.RFC3339)
	out.PublicKeys.DSTU4145 = base64.StdEncoding.EncodeToString(dstuPub)
	out.PublicKeys.MLDSA44 = base64.StdEncoding.EncodeToString(kp.MLDSAPublic)

	if includePrivate {
		out.PrivateKeys = &struct {
			DSTU4145 string `json:"dstu4145"`
			MLDSA44  string `json:"mldsa44"`
		}{
			DSTU4145: fmt.Sprintf("0x%x", kp.DSTUPrivate.D),
			MLDSA44:  base64.StdEncoding.EncodeToString(kp.MLDSAPrivate),
		}
	}

	return json.Marshal(out)
}

// UnmarshalKeyPairJSON decodes a keypair envelope produced by
// MarshalKeyPairJSON. The resulting KeyPair's private fields are left
// nil when the envelope carries no private_keys object.
func (s *Scheme) UnmarshalKeyPairJSON(data []byte) (*KeyPair, error) {
	var in keyPairJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("%w: parsing hybrid keypair JSON: %v", sigerr.ErrDecode, err)
	}

	dstuPubRaw, err := base64.StdEncoding.DecodeString(in.PublicKeys.DSTU4145)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding DSTU 4145 public key base64: %v", sigerr.ErrDecode, err)
	}
	dstuPub, err := s.dstu.ImportPublicKey(dstuPubRaw)
	if err != nil {
		return nil, err
	}
	mldsaPub, err := base64.StdEncoding.DecodeString(in.PublicKeys.MLDSA44)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding ML-DSA-44 public key base64: %v", sigerr.ErrDecode, err)
	}

	createdAt, err := time.Parse(time.RFC3339, in.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing keypair timestamp: %v", sigerr.ErrDecode, err)
	}

	kp := &KeyPair{
		KeyID:       in.KeyID,
		CreatedAt:   createdAt,
		DSTUPublic:  dstuPub,
		MLDSAPublic: mldsaPub,
	}

	if in.PrivateKeys != nil {
		d, err := parseHexBigInt(in.PrivateKeys.DSTU4145)
		if err != nil {
			return nil, err
		}
		kp.DSTUPrivate = &dstu4145.PrivateKey{D: d}
		mldsaPriv, err := base64.StdEncoding.DecodeString(in.PrivateKeys.MLDSA44)
		if err != nil {
			return nil, fmt.Errorf("%w: decoding ML-DSA-44 private key base64: %v", sigerr.ErrDecode, err)
		}
		kp.MLDSAPrivate = mldsaPriv
	}

	return kp, nil
}
