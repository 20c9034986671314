package cipherkit

import (
	"encoding/binary"
	"fmt"
)

// arxPrimitive is the 512-bit stream cipher (Primitive D): a 4x4 matrix of
// 32-bit words run through 20 rounds (10 double rounds) of ARX quarter
// rounds, grounded on the ChaCha20 core shown by the public-domain
// skeeto/chacha-go and codahale/chacha20 implementations retrieved
// alongside this module (no pack dependency exposes a block-level rather
// than keystream-level ChaCha core, so this one is hand-written — see
// DESIGN.md).
type arxPrimitive struct {
	constant [4]uint32
	key      [8]uint32
	nonce    [2]uint32
	counter  [2]uint32
	keyLen   int // 16 or 32, selects the "expand Nn-byte k" constant
}

const arxBlockSize = 64

func (p *arxPrimitive) BlockSize() int { return arxBlockSize }

var (
	constant16 = [4]uint32{0x61707865, 0x3120646e, 0x79622d36, 0x6b206574} // "expand 16-byte k"
	constant32 = [4]uint32{0x61707865, 0x3320646e, 0x79622d32, 0x6b206574} // "expand 32-byte k"
)

func (p *arxPrimitive) SetKey(key []byte) error {
	normalized, err := normalizeKey(key, false)
	if err != nil {
		return err
	}
	if len(normalized) != 16 && len(normalized) != 32 {
		return fmt.Errorf("cipherkit: arx key must normalize to 128 or 256 bits, got %d bytes", len(normalized)*8)
	}
	p.keyLen = len(normalized)
	if p.keyLen == 16 {
		p.constant = constant16
		for i := 0; i < 4; i++ {
			w := binary.LittleEndian.Uint32(normalized[i*4:])
			p.key[i] = w
			p.key[i+4] = w
		}
	} else {
		p.constant = constant32
		for i := 0; i < 8; i++ {
			p.key[i] = binary.LittleEndian.Uint32(normalized[i*4:])
		}
	}
	p.counter = [2]uint32{}
	return nil
}

// SetNonce installs the primitive's internal nonce words and resets its
// block counter to zero, as required for a fresh encipher/decipher run to
// reproduce the same keystream as its counterpart envelope.
func (p *arxPrimitive) SetNonce(nonce []byte) {
	if len(nonce) < 8 {
		var padded [8]byte
		copy(padded[:], nonce)
		nonce = padded[:]
	}
	p.nonce[0] = binary.LittleEndian.Uint32(nonce[0:4])
	p.nonce[1] = binary.LittleEndian.Uint32(nonce[4:8])
	p.counter = [2]uint32{}
}

func rotl32(x uint32, n uint) uint32 { return (x << n) | (x >> (32 - n)) }

func quarterRound(a, b, c, d *uint32) {
	*a += *b
	*d = rotl32(*d^*a, 16)
	*c += *d
	*b = rotl32(*b^*c, 12)
	*a += *b
	*d = rotl32(*d^*a, 8)
	*c += *d
	*b = rotl32(*b^*c, 7)
}

// block computes the 64-byte keystream block for the current state and
// advances the counter, handling the 32-bit carry into the second counter
// word explicitly.
func (p *arxPrimitive) block(out *[arxBlockSize]byte) {
	var w [16]uint32
	copy(w[0:4], p.constant[:])
	copy(w[4:12], p.key[:])
	w[12] = p.counter[0]
	w[13] = p.counter[1]
	w[14] = p.nonce[0]
	w[15] = p.nonce[1]

	x := w
	for round := 0; round < 10; round++ {
		// column round
		quarterRound(&x[0], &x[4], &x[8], &x[12])
		quarterRound(&x[1], &x[5], &x[9], &x[13])
		quarterRound(&x[2], &x[6], &x[10], &x[14])
		quarterRound(&x[3], &x[7], &x[11], &x[15])
		// diagonal round
		quarterRound(&x[0], &x[5], &x[10], &x[15])
		quarterRound(&x[1], &x[6], &x[11], &x[12])
		quarterRound(&x[2], &x[7], &x[8], &x[13])
		quarterRound(&x[3], &x[4], &x[9], &x[14])
	}
	for i := 0; i < 16; i++ {
		binary.LittleEndian.PutUint32(out[i*4:], x[i]+w[i])
	}

	p.counter[0]++
	if p.counter[0] == 0 {
		p.counter[1]++
	}
}

// EncipherBlock and DecipherBlock are the same operation: XOR the input
// against the next keystream block (spec.md §4.2: "Decipher is the same
// operation (stream cipher)").
func (p *arxPrimitive) EncipherBlock(dst, src []byte) {
	var ks [arxBlockSize]byte
	p.block(&ks)
	for i := 0; i < arxBlockSize; i++ {
		dst[i] = src[i] ^ ks[i]
	}
}

func (p *arxPrimitive) DecipherBlock(dst, src []byte) { p.EncipherBlock(dst, src) }

func (p *arxPrimitive) Wipe() {
	p.key = [8]uint32{}
	p.nonce = [2]uint32{}
	p.counter = [2]uint32{}
}
