package hybridecdsa

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	keys, err := GenerateKeyPair(rand.Reader, "test-key-1")
	require.NoError(t, err)

	msg := []byte("ecdsa hybrid payload")
	sig, err := Sign(rand.Reader, msg, keys)
	require.NoError(t, err)

	result := Verify(msg, sig, keys.ECDSAPublic, keys.MLDSAPublic)
	require.True(t, result.Valid)
	require.True(t, result.ECDSAValid)
	require.True(t, result.MLDSAValid)
}

func TestVerifyDetectsClassicalForgery(t *testing.T) {
	keys, err := GenerateKeyPair(rand.Reader, "test-key-2")
	require.NoError(t, err)

	msg := []byte("ecdsa hybrid payload")
	sig, err := Sign(rand.Reader, msg, keys)
	require.NoError(t, err)

	sig.ECDSA[len(sig.ECDSA)-1] ^= 0xFF

	result := Verify(msg, sig, keys.ECDSAPublic, keys.MLDSAPublic)
	require.False(t, result.Valid)
	require.False(t, result.ECDSAValid)
	require.True(t, result.MLDSAValid)
}

func TestVerifyDetectsPostQuantumForgery(t *testing.T) {
	keys, err := GenerateKeyPair(rand.Reader, "test-key-3")
	require.NoError(t, err)

	msg := []byte("ecdsa hybrid payload")
	sig, err := Sign(rand.Reader, msg, keys)
	require.NoError(t, err)

	sig.MLDSA[0] ^= 0xFF

	result := Verify(msg, sig, keys.ECDSAPublic, keys.MLDSAPublic)
	require.False(t, result.Valid)
	require.True(t, result.ECDSAValid)
	require.False(t, result.MLDSAValid)
}

func TestSignatureJSONRoundTrip(t *testing.T) {
	keys, err := GenerateKeyPair(rand.Reader, "test-key-4")
	require.NoError(t, err)

	msg := []byte("json round trip payload")
	sig, err := Sign(rand.Reader, msg, keys)
	require.NoError(t, err)

	encoded, err := MarshalJSON(sig)
	require.NoError(t, err)

	decoded, err := UnmarshalJSON(encoded)
	require.NoError(t, err)
	require.Equal(t, sig.Algorithm, decoded.Algorithm)
	require.Equal(t, sig.DataHashSHA256, decoded.DataHashSHA256)
	require.Equal(t, sig.ECDSA, decoded.ECDSA)
	require.Equal(t, sig.MLDSA, decoded.MLDSA)

	result := Verify(msg, decoded, keys.ECDSAPublic, keys.MLDSAPublic)
	require.True(t, result.Valid)
}
