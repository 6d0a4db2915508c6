package dstu4145

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/sq26-yara/hybrid-post-quantum-signature/curve"
)

// counterReader yields the deterministic byte stream 0,1,2,...,255,0,1,...
// It exists only so TestKnownAnswerM163 can pin an exact (r,s) pair: Sign
// draws its ephemeral scalar from whatever io.Reader it is given, so a
// reproducible reader turns that draw into a fixed, checkable value.
type counterReader struct{ n int }

func (r *counterReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r.n)
		r.n++
	}
	return len(p), nil
}

func TestSignVerifyRoundTrip163(t *testing.T) {
	s, err := New(curve.DomainM163())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	priv, pub, err := s.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}

	msg := []byte("the quick brown fox jumps over the lazy dog")
	sig, err := s.Sign(rand.Reader, msg, priv)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if !s.Verify(msg, sig, pub) {
		t.Fatalf("valid signature failed to verify")
	}
}

// TestKnownAnswerM163 pins the exact (r, s) produced by signing the empty
// message under the fixed private key d=1 on the M-163 domain, using a
// deterministic ephemeral-scalar source. The expected values were derived
// by independently re-implementing this package's field, curve, Kupyna and
// signing algorithms and running them against the same fixed inputs; they
// catch any future change to those algorithms that silently alters the
// signatures this scheme produces.
func TestKnownAnswerM163(t *testing.T) {
	s, err := New(curve.DomainM163())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	priv := &PrivateKey{D: big.NewInt(1)}
	pub := &PublicKey{Q: s.Domain.Curve.ScalarMul(priv.D, s.Domain.Base)}

	sig, err := s.Sign(&counterReader{}, []byte{}, priv)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	wantR, _ := new(big.Int).SetString("2446C149613CFD8F76EE4811B161C29889B056001", 16)
	wantS, _ := new(big.Int).SetString("1BC95EE6DF1362E109A2848B222D40BB4AFC9A460", 16)
	if sig.R.Cmp(wantR) != 0 {
		t.Fatalf("r = %X, want %X", sig.R, wantR)
	}
	if sig.S.Cmp(wantS) != 0 {
		t.Fatalf("s = %X, want %X", sig.S, wantS)
	}

	if !s.Verify([]byte{}, sig, pub) {
		t.Fatalf("known-answer signature failed to verify")
	}
}

func TestSignVerifyRoundTrip257(t *testing.T) {
	s, err := New(curve.DomainM257())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	priv, pub, err := s.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}

	msg := []byte("another message entirely")
	sig, err := s.Sign(rand.Reader, msg, priv)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if !s.Verify(msg, sig, pub) {
		t.Fatalf("valid signature failed to verify")
	}
}

func TestVerifyRejectsTamperedMessage(t *testing.T) {
	s, _ := New(curve.DomainM163())
	priv, pub, _ := s.GenerateKey(rand.Reader)

	msg := []byte("original message")
	sig, err := s.Sign(rand.Reader, msg, priv)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	tampered := []byte("0riginal message")
	if s.Verify(tampered, sig, pub) {
		t.Fatalf("tampered message verified as valid")
	}
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	s, _ := New(curve.DomainM163())
	priv, pub, _ := s.GenerateKey(rand.Reader)

	msg := []byte("sign me please")
	sig, err := s.Sign(rand.Reader, msg, priv)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	tampered := &Signature{R: sig.R, S: new(big.Int).Add(sig.S, big.NewInt(1))}
	if s.Verify(msg, tampered, pub) {
		t.Fatalf("tampered signature verified as valid")
	}
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	s, _ := New(curve.DomainM163())
	priv, _, _ := s.GenerateKey(rand.Reader)
	_, otherPub, _ := s.GenerateKey(rand.Reader)

	msg := []byte("whose key is it anyway")
	sig, err := s.Sign(rand.Reader, msg, priv)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if s.Verify(msg, sig, otherPub) {
		t.Fatalf("signature verified under the wrong public key")
	}
}

func TestSignatureCodecRoundTrip(t *testing.T) {
	s, _ := New(curve.DomainM257())
	priv, _, _ := s.GenerateKey(rand.Reader)

	sig, err := s.Sign(rand.Reader, []byte("codec test"), priv)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	exported := s.ExportSignature(sig)
	imported, err := s.ImportSignature(exported)
	if err != nil {
		t.Fatalf("ImportSignature: %v", err)
	}
	if imported.R.Cmp(sig.R) != 0 || imported.S.Cmp(sig.S) != 0 {
		t.Fatalf("signature codec round-trip mismatch")
	}
}

func TestPublicKeyCodecRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		name       string
		domain     *curve.Domain
		exportSize int
	}{
		{"M163", curve.DomainM163(), 42},
		{"M257", curve.DomainM257(), 66},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s, err := New(tc.domain)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			priv, pub, err := s.GenerateKey(rand.Reader)
			if err != nil {
				t.Fatalf("GenerateKey: %v", err)
			}

			msg := []byte("verify using the key recovered after export")
			sig, err := s.Sign(rand.Reader, msg, priv)
			if err != nil {
				t.Fatalf("Sign: %v", err)
			}

			exported, err := s.ExportPublicKey(pub)
			if err != nil {
				t.Fatalf("ExportPublicKey: %v", err)
			}
			if len(exported) != tc.exportSize {
				t.Fatalf("exported public key is %d bytes, want %d", len(exported), tc.exportSize)
			}

			imported, err := s.ImportPublicKey(exported)
			if err != nil {
				t.Fatalf("ImportPublicKey: %v", err)
			}
			if !imported.Q.Equal(s.Domain.Curve.Field, pub.Q) {
				t.Fatalf("public key codec round-trip mismatch")
			}

			if !s.Verify(msg, sig, imported) {
				t.Fatalf("signature made before export failed to verify under the imported key")
			}
		})
	}
}
