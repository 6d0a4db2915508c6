// Package sigerr defines the error kinds shared across the DSTU 4145 /
// ML-DSA hybrid signature stack. Cryptographic verification failure is
// never represented here: it is always a bool, not an error, so that a
// caller cannot distinguish "forged" from "malformed" via the error
// taxonomy.
package sigerr

import "errors"

// Sentinel error kinds. Wrap with fmt.Errorf("%w: ...", Err...) or
// github.com/pkg/errors.Wrap to add context while preserving errors.Is.
var (
	// ErrDomain marks an invalid input: zero inverse requested, A not in
	// {0,1}, B = 0, m out of range, inconsistent reduction polynomial.
	ErrDomain = errors.New("sigerr: domain error")

	// ErrDecode marks a malformed serialized point, key, or signature.
	ErrDecode = errors.New("sigerr: decode error")

	// ErrGeneration marks a random-point or base-point search that
	// exceeded its retry cap.
	ErrGeneration = errors.New("sigerr: generation exhausted")

	// ErrExhausted marks signature generation that exceeded its retry cap.
	ErrExhausted = errors.New("sigerr: signing exhausted")

	// ErrBackend marks an external library (ML-DSA) failure.
	ErrBackend = errors.New("sigerr: backend error")
)
