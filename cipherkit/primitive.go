// Package cipherkit implements the cipher envelope: four block primitives
// (spec.md §4.2) plugged into five modes of operation (spec.md §4.1)
// through a single polymorphic envelope.
package cipherkit

import (
	"crypto/cipher"
	"fmt"
)

// cipherBlock is the standard library's block-cipher interface, shared by
// the AES, Serpent, and Twofish primitive wrappers.
type cipherBlock = cipher.Block

// BlockPrimitive is the shape every block primitive exposes: a pure,
// keyed permutation over fixed-width blocks (spec.md §4.2). Primitive D
// folds its XOR-with-keystream step into Encipher/DecipherBlock itself
// (see primitive_arx.go) so that it remains drop-in compatible with the
// same mode implementations as the three SPN/Feistel primitives.
type BlockPrimitive interface {
	BlockSize() int
	SetKey(key []byte) error
	EncipherBlock(dst, src []byte)
	DecipherBlock(dst, src []byte)
	Wipe()
}

// noncePrimitive is implemented by primitives that fold an internal
// counter/nonce into their own block operation (currently only the ARX
// stream primitive). The envelope forwards SetNonce to it in addition to
// keeping its own mode-level IV register.
type noncePrimitive interface {
	SetNonce(nonce []byte)
}

// Kind tags which of the four block primitives an envelope is bound to.
type Kind int

const (
	KindAES Kind = iota
	KindSerpent32
	KindTwofish
	KindARX
)

func (k Kind) String() string {
	switch k {
	case KindAES:
		return "aes"
	case KindSerpent32:
		return "serpent32"
	case KindTwofish:
		return "twofish"
	case KindARX:
		return "arx"
	default:
		return "unknown"
	}
}

func newPrimitive(kind Kind) (BlockPrimitive, error) {
	switch kind {
	case KindAES:
		return &aesPrimitive{}, nil
	case KindSerpent32:
		return &serpent32Primitive{}, nil
	case KindTwofish:
		return &twofishPrimitive{}, nil
	case KindARX:
		return &arxPrimitive{}, nil
	default:
		return nil, fmt.Errorf("cipherkit: invalid primitive kind %d", kind)
	}
}

// normalizeKey implements spec.md §4.1's key-padding rule: valid lengths
// are 128 or 256 bits (and 192 when allow192), shorter lengths are padded
// with a leading 0x01 sentinel then zeros up to 32 bytes.
func normalizeKey(key []byte, allow192 bool) ([]byte, error) {
	switch len(key) {
	case 16, 32:
		return key, nil
	case 24:
		if allow192 {
			return key, nil
		}
	}
	if len(key) > 32 {
		return nil, fmt.Errorf("cipherkit: key too long: %d bytes", len(key))
	}
	padded := make([]byte, 32)
	n := copy(padded, key)
	padded[n] = 0x01
	return padded, nil
}
