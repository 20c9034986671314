package cipherkit

import (
	"bytes"
	"testing"

	"wizardtoolkit/buffer"
)

var allKinds = []Kind{KindAES, KindSerpent32, KindTwofish, KindARX}
var allModes = []Mode{ECB, CBC, CFB, OFB, CTR}

func roundTrip(t *testing.T, kind Kind, mode Mode, plaintext []byte) {
	t.Helper()

	enc, err := Acquire(kind, mode)
	if err != nil {
		t.Fatalf("Acquire(%v,%v): %v", kind, mode, err)
	}
	key := bytes.Repeat([]byte{0x42}, 32)
	if err := enc.SetKey(key); err != nil {
		t.Fatalf("SetKey: %v", err)
	}
	nonce := enc.GetNonce()

	buf := buffer.FromBytes(plaintext)
	if err := enc.Encipher(buf); err != nil {
		t.Fatalf("Encipher: %v", err)
	}

	dec, err := Acquire(kind, mode)
	if err != nil {
		t.Fatalf("Acquire(%v,%v): %v", kind, mode, err)
	}
	if err := dec.SetKey(key); err != nil {
		t.Fatalf("SetKey: %v", err)
	}
	if err := dec.SetNonce(nonce); err != nil {
		t.Fatalf("SetNonce: %v", err)
	}
	if err := dec.Decipher(buf); err != nil {
		t.Fatalf("Decipher: %v", err)
	}

	if !bytes.Equal(buf.Data, plaintext) {
		t.Fatalf("%v/%v round-trip mismatch:\ngot:  %x\nwant: %x", kind, mode, buf.Data, plaintext)
	}
}

func TestRoundTripAllCombinations(t *testing.T) {
	plaintexts := [][]byte{
		[]byte(""),
		[]byte("a"),
		[]byte("exactly sixteen!"),
		bytes.Repeat([]byte("wizard toolkit cipher envelope "), 3),
	}
	for _, kind := range allKinds {
		for _, mode := range allModes {
			for _, pt := range plaintexts {
				roundTrip(t, kind, mode, pt)
			}
		}
	}
}

func TestPaddingBoundaryExactMultipleOfBlockSize(t *testing.T) {
	e, err := Acquire(KindAES, ECB)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if err := e.SetKey(bytes.Repeat([]byte{0x01}, 16)); err != nil {
		t.Fatalf("SetKey: %v", err)
	}
	plaintext := bytes.Repeat([]byte{0xAB}, e.BlockSize()) // exactly one block
	buf := buffer.FromBytes(plaintext)
	if err := e.Encipher(buf); err != nil {
		t.Fatalf("Encipher: %v", err)
	}
	// Padding always adds at least one byte, even on an exact multiple.
	if buf.Len() <= len(plaintext) {
		t.Fatalf("padded length %d did not grow past plaintext length %d", buf.Len(), len(plaintext))
	}
	if err := e.Decipher(buf); err != nil {
		t.Fatalf("Decipher: %v", err)
	}
	if !bytes.Equal(buf.Data, plaintext) {
		t.Fatalf("padding-boundary round-trip mismatch")
	}
}

func TestCTRSymmetricKeystream(t *testing.T) {
	// CTR mode must encipher and decipher via the identical keystream XOR
	// operation (spec.md §8): two independently-acquired envelopes sharing
	// a key and nonce must round-trip each other's ciphertext.
	e1, _ := Acquire(KindAES, CTR)
	e2, _ := Acquire(KindAES, CTR)
	key := bytes.Repeat([]byte{0x07}, 32)
	e1.SetKey(key)
	e2.SetKey(key)
	nonce := e1.GetNonce()
	e2.SetNonce(nonce)

	plaintext := bytes.Repeat([]byte("stream cipher symmetry check..."), 2)
	buf := buffer.FromBytes(plaintext)

	if err := e1.Encipher(buf); err != nil {
		t.Fatalf("Encipher: %v", err)
	}
	if err := e2.Decipher(buf); err != nil {
		t.Fatalf("Decipher: %v", err)
	}
	if !bytes.Equal(buf.Data, plaintext) {
		t.Fatalf("independently-driven CTR envelopes failed to round-trip")
	}
}

func TestSetNonceWrongLengthRejected(t *testing.T) {
	e, _ := Acquire(KindAES, CBC)
	e.SetKey(bytes.Repeat([]byte{0x09}, 16))
	if err := e.SetNonce([]byte{1, 2, 3}); err == nil {
		t.Fatalf("expected error for short nonce")
	}
}

func TestWipeInvalidatesEnvelope(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic after using a wiped envelope")
		}
	}()
	e, _ := Acquire(KindAES, ECB)
	e.SetKey(bytes.Repeat([]byte{0x02}, 16))
	e.Wipe()
	_ = e.BlockSize() // must panic: signature invalidated
}

func TestNormalizeKeyPadsShortKeys(t *testing.T) {
	e, err := Acquire(KindAES, ECB)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if err := e.SetKey([]byte("short")); err != nil {
		t.Fatalf("SetKey with short key should pad, not fail: %v", err)
	}
}
