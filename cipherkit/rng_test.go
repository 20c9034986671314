package cipherkit

import "testing"

// TestGlobalRNGMonobitRatio is a coarse randomness sanity check: the
// fraction of set bits in a large sample from the global RNG should sit
// close to one half. It is not a cryptographic soundness proof, only a
// smoke test against a badly broken generator (e.g. one that returns all
// zero bytes).
func TestGlobalRNGMonobitRatio(t *testing.T) {
	sample := make([]byte, 4096)
	if _, err := Global().Read(sample); err != nil {
		t.Fatalf("Read: %v", err)
	}

	ones := 0
	for _, b := range sample {
		for i := 0; i < 8; i++ {
			if (b>>i)&1 == 1 {
				ones++
			}
		}
	}
	total := len(sample) * 8
	ratio := float64(ones) / float64(total)
	if ratio < 0.45 || ratio > 0.55 {
		t.Fatalf("monobit ratio out of range: ones=%d total=%d ratio=%.4f", ones, total, ratio)
	}
}

func TestGlobalRNGNotConstant(t *testing.T) {
	a := make([]byte, 32)
	b := make([]byte, 32)
	if _, err := Global().Read(a); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if _, err := Global().Read(b); err != nil {
		t.Fatalf("Read: %v", err)
	}
	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("two successive RNG reads returned identical output")
	}
}
