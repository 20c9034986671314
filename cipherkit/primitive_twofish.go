package cipherkit

import "golang.org/x/crypto/twofish"

// twofishPrimitive is the 128-bit Feistel-like cipher (Primitive C).
// Spec.md §4.2 explicitly permits using the standard Twofish
// specification; golang.org/x/crypto/twofish is that implementation and
// is already one hop from the module's other golang.org/x/crypto use.
type twofishPrimitive struct {
	block cipherBlock
	key   []byte
}

func (p *twofishPrimitive) BlockSize() int { return twofish.BlockSize }

func (p *twofishPrimitive) SetKey(key []byte) error {
	normalized, err := normalizeKey(key, true)
	if err != nil {
		return err
	}
	block, err := twofish.NewCipher(normalized)
	if err != nil {
		return err
	}
	p.block = block
	p.key = normalized
	return nil
}

func (p *twofishPrimitive) EncipherBlock(dst, src []byte) { p.block.Encrypt(dst, src) }
func (p *twofishPrimitive) DecipherBlock(dst, src []byte) { p.block.Decrypt(dst, src) }

func (p *twofishPrimitive) Wipe() {
	for i := range p.key {
		p.key[i] = 0
	}
	p.block = nil
}
