package hybrid

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sq26-yara/hybrid-post-quantum-signature/curve"
)

func newTestScheme(t *testing.T) *Scheme {
	t.Helper()
	s, err := New(curve.DomainM163())
	require.NoError(t, err)
	return s
}

func TestSignVerifyRoundTrip(t *testing.T) {
	s := newTestScheme(t)
	keys, err := s.GenerateKeyPair(rand.Reader)
	require.NoError(t, err)

	msg := []byte("hybrid signature payload")
	sig, err := s.Sign(rand.Reader, msg, keys)
	require.NoError(t, err)

	result := s.Verify(msg, sig, keys.DSTUPublic, keys.MLDSAPublic)
	require.True(t, result.Valid)
	require.True(t, result.DSTUValid)
	require.True(t, result.MLDSAValid)
}

func TestVerifyDetectsClassicalForgery(t *testing.T) {
	s := newTestScheme(t)
	keys, err := s.GenerateKeyPair(rand.Reader)
	require.NoError(t, err)

	msg := []byte("hybrid signature payload")
	sig, err := s.Sign(rand.Reader, msg, keys)
	require.NoError(t, err)

	sig.DSTU.S.Add(sig.DSTU.S, sig.DSTU.S)

	result := s.Verify(msg, sig, keys.DSTUPublic, keys.MLDSAPublic)
	require.False(t, result.Valid)
	require.False(t, result.DSTUValid)
	require.True(t, result.MLDSAValid)
}

func TestVerifyDetectsClassicalForgeryRFlip(t *testing.T) {
	s := newTestScheme(t)
	keys, err := s.GenerateKeyPair(rand.Reader)
	require.NoError(t, err)

	msg := []byte("hybrid signature payload")
	sig, err := s.Sign(rand.Reader, msg, keys)
	require.NoError(t, err)

	sig.DSTU.R.Add(sig.DSTU.R, sig.DSTU.R)

	result := s.Verify(msg, sig, keys.DSTUPublic, keys.MLDSAPublic)
	require.False(t, result.Valid)
	require.False(t, result.DSTUValid)
	require.True(t, result.MLDSAValid)
}

func TestVerifyDetectsPostQuantumForgery(t *testing.T) {
	s := newTestScheme(t)
	keys, err := s.GenerateKeyPair(rand.Reader)
	require.NoError(t, err)

	msg := []byte("hybrid signature payload")
	sig, err := s.Sign(rand.Reader, msg, keys)
	require.NoError(t, err)

	sig.MLDSA[0] ^= 0xFF

	result := s.Verify(msg, sig, keys.DSTUPublic, keys.MLDSAPublic)
	require.False(t, result.Valid)
	require.True(t, result.DSTUValid)
	require.False(t, result.MLDSAValid)
}

func TestVerifyDetectsTamperedMessage(t *testing.T) {
	s := newTestScheme(t)
	keys, err := s.GenerateKeyPair(rand.Reader)
	require.NoError(t, err)

	sig, err := s.Sign(rand.Reader, []byte("original payload"), keys)
	require.NoError(t, err)

	result := s.Verify([]byte("tampered payload"), sig, keys.DSTUPublic, keys.MLDSAPublic)
	require.False(t, result.Valid)
	require.False(t, result.DSTUValid)
	require.False(t, result.MLDSAValid)
}

func TestSignatureJSONRoundTrip(t *testing.T) {
	s := newTestScheme(t)
	keys, err := s.GenerateKeyPair(rand.Reader)
	require.NoError(t, err)

	msg := []byte("json round trip payload")
	sig, err := s.Sign(rand.Reader, msg, keys)
	require.NoError(t, err)

	encoded, err := s.MarshalJSON(sig)
	require.NoError(t, err)

	decoded, err := s.UnmarshalJSON(encoded)
	require.NoError(t, err)
	require.Equal(t, sig.Algorithm, decoded.Algorithm)
	require.Equal(t, sig.DataHashKupyna, decoded.DataHashKupyna)
	require.Equal(t, 0, sig.DSTU.R.Cmp(decoded.DSTU.R))
	require.Equal(t, 0, sig.DSTU.S.Cmp(decoded.DSTU.S))
	require.Equal(t, sig.MLDSA, decoded.MLDSA)

	result := s.Verify(msg, decoded, keys.DSTUPublic, keys.MLDSAPublic)
	require.True(t, result.Valid)
}

func TestKeyPairJSONRoundTripWithoutPrivate(t *testing.T) {
	s := newTestScheme(t)
	keys, err := s.GenerateKeyPair(rand.Reader)
	require.NoError(t, err)

	encoded, err := s.MarshalKeyPairJSON(keys, false)
	require.NoError(t, err)

	decoded, err := s.UnmarshalKeyPairJSON(encoded)
	require.NoError(t, err)
	require.Equal(t, keys.KeyID, decoded.KeyID)
	require.Nil(t, decoded.DSTUPrivate)
	require.Nil(t, decoded.MLDSAPrivate)

	msg := []byte("verify using recovered public keys")
	sig, err := s.Sign(rand.Reader, msg, keys)
	require.NoError(t, err)
	result := s.Verify(msg, sig, decoded.DSTUPublic, decoded.MLDSAPublic)
	require.True(t, result.Valid)
}

func TestKeyPairJSONRoundTripWithPrivate(t *testing.T) {
	s := newTestScheme(t)
	keys, err := s.GenerateKeyPair(rand.Reader)
	require.NoError(t, err)

	encoded, err := s.MarshalKeyPairJSON(keys, true)
	require.NoError(t, err)

	decoded, err := s.UnmarshalKeyPairJSON(encoded)
	require.NoError(t, err)
	require.NotNil(t, decoded.DSTUPrivate)
	require.Equal(t, 0, keys.DSTUPrivate.D.Cmp(decoded.DSTUPrivate.D))
	require.Equal(t, keys.MLDSAPrivate, decoded.MLDSAPrivate)
}
