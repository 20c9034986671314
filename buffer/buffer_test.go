package buffer

import "testing"

func TestFromHexRoundTrip(t *testing.T) {
	const s = "deadbeef01"
	b, err := FromHex(s)
	if err != nil {
		t.Fatalf("FromHex: %v", err)
	}
	if got := b.Hex(); got != s {
		t.Fatalf("Hex round-trip mismatch: got %s, want %s", got, s)
	}
}

func TestGrowToPaddedLengthPreservesPrefix(t *testing.T) {
	b := FromBytes([]byte("hello"))
	b.GrowToPaddedLength(10)
	if b.Len() != 10 {
		t.Fatalf("Len() = %d, want 10", b.Len())
	}
	if string(b.Data[:5]) != "hello" {
		t.Fatalf("prefix corrupted after grow: %q", b.Data[:5])
	}
}

func TestTruncate(t *testing.T) {
	b := FromBytes([]byte("hello world"))
	b.Truncate(5)
	if string(b.Data) != "hello" {
		t.Fatalf("Truncate result = %q, want %q", b.Data, "hello")
	}
}

func TestConcatAndSplit(t *testing.T) {
	a := FromBytes([]byte("abc"))
	c := FromBytes([]byte("def"))
	joined := Concat(a, c)
	if string(joined.Data) != "abcdef" {
		t.Fatalf("Concat = %q, want %q", joined.Data, "abcdef")
	}
	left, right := joined.Split(3)
	if string(left.Data) != "abc" || string(right.Data) != "def" {
		t.Fatalf("Split = %q / %q, want %q / %q", left.Data, right.Data, "abc", "def")
	}
}

func TestContentHashStableForEqualContent(t *testing.T) {
	a := FromBytes([]byte("the quick brown fox"))
	b := FromBytes([]byte("the quick brown fox"))
	if a.ContentHash() != b.ContentHash() {
		t.Fatalf("ContentHash differs for identical content")
	}
	b.Data[0] ^= 0xff
	if a.ContentHash() == b.ContentHash() {
		t.Fatalf("ContentHash did not change after mutation")
	}
}

func TestWipe(t *testing.T) {
	b := FromBytes([]byte{1, 2, 3, 4})
	b.Wipe()
	for i, v := range b.Data {
		if v != 0 {
			t.Fatalf("byte %d not wiped: %d", i, v)
		}
	}
}
