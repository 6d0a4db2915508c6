package kupyna

import (
	"bytes"
	"testing"
)

func TestSum256IsDeterministic(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")
	a := Sum256(data)
	b := Sum256(data)
	if a != b {
		t.Fatalf("Sum256 is not deterministic: %x != %x", a, b)
	}
}

func TestSum256DistinguishesInputs(t *testing.T) {
	a := Sum256([]byte("message one"))
	b := Sum256([]byte("message two"))
	if a == b {
		t.Fatalf("distinct messages hashed to the same digest: %x", a)
	}
}

func TestSum256SensitiveToSingleBitFlip(t *testing.T) {
	msg := bytes.Repeat([]byte{0x42}, 64)
	a := Sum256(msg)
	msg[0] ^= 0x01
	b := Sum256(msg)
	if a == b {
		t.Fatalf("single-bit input change did not change the digest")
	}
}

func TestSum256HandlesMultipleBlockLengths(t *testing.T) {
	lengths := []int{0, 1, 31, 63, 64, 65, 127, 128, 129, 1000}
	seen := make(map[[Size]byte]int)
	for _, n := range lengths {
		msg := bytes.Repeat([]byte{0x5a}, n)
		d := Sum256(msg)
		if prev, ok := seen[d]; ok {
			t.Fatalf("length %d collided with length %d", n, prev)
		}
		seen[d] = n
	}
}

func TestWriteInChunksMatchesSingleWrite(t *testing.T) {
	msg := bytes.Repeat([]byte("abcdefgh"), 17) // not a multiple of the block size
	whole := Sum256(msg)

	h := New256()
	for i := 0; i < len(msg); i += 9 {
		end := i + 9
		if end > len(msg) {
			end = len(msg)
		}
		if _, err := h.Write(msg[i:end]); err != nil {
			t.Fatalf("Write returned an error: %v", err)
		}
	}
	var chunked [Size]byte
	copy(chunked[:], h.Sum(nil))

	if whole != chunked {
		t.Fatalf("chunked writes produced a different digest than a single write: %x != %x", chunked, whole)
	}
}

func TestSumDoesNotMutateHasherState(t *testing.T) {
	h := New256()
	h.Write([]byte("partial message"))
	first := h.Sum(nil)
	second := h.Sum(nil)
	if !bytes.Equal(first, second) {
		t.Fatalf("repeated Sum calls returned different digests: %x != %x", first, second)
	}
	h.Write([]byte(" continued"))
	third := h.Sum(nil)
	if bytes.Equal(first, third) {
		t.Fatalf("writing more data after Sum did not change the digest")
	}
}

func TestDigestReportsStandardSizes(t *testing.T) {
	h := New256()
	if h.Size() != Size {
		t.Fatalf("Size() = %d, want %d", h.Size(), Size)
	}
	if h.BlockSize() != blockLen {
		t.Fatalf("BlockSize() = %d, want %d", h.BlockSize(), blockLen)
	}
}

func TestResetReturnsToInitialState(t *testing.T) {
	h := New256()
	h.Write([]byte("some data"))
	h.Reset()
	h.Write([]byte("other data"))
	reset := h.Sum(nil)

	fresh := New256()
	fresh.Write([]byte("other data"))
	cleanStart := fresh.Sum(nil)

	if !bytes.Equal(reset, cleanStart) {
		t.Fatalf("Reset did not restore the hasher to its initial state")
	}
}
