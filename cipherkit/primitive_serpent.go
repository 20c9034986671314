package cipherkit

import "github.com/aead/serpent"

// serpent32Primitive is the 128-bit, 32-round SPN cipher (Primitive B).
// github.com/aead/serpent implements Serpent's 8 S-boxes and the φ-based
// subkey expansion (rotate-by-11) that spec.md §4.2 describes for this
// primitive's key schedule.
type serpent32Primitive struct {
	block cipherBlock
	key   []byte
}

func (p *serpent32Primitive) BlockSize() int { return serpent.BlockSize }

func (p *serpent32Primitive) SetKey(key []byte) error {
	normalized, err := normalizeKey(key, true)
	if err != nil {
		return err
	}
	block, err := serpent.NewCipher(normalized)
	if err != nil {
		return err
	}
	p.block = block
	p.key = normalized
	return nil
}

func (p *serpent32Primitive) EncipherBlock(dst, src []byte) { p.block.Encrypt(dst, src) }
func (p *serpent32Primitive) DecipherBlock(dst, src []byte) { p.block.Decrypt(dst, src) }

func (p *serpent32Primitive) Wipe() {
	for i := range p.key {
		p.key[i] = 0
	}
	p.block = nil
}
