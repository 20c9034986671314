package cipherkit

import "crypto/aes"

// aesPrimitive is the 128-bit SPN cipher (Primitive A). Spec.md §4.2
// explicitly permits using the standard AES specification (FIPS 197)
// verbatim; the standard library's AES is that implementation.
type aesPrimitive struct {
	block cipherBlock
	key   []byte
}

func (p *aesPrimitive) BlockSize() int { return aes.BlockSize }

func (p *aesPrimitive) SetKey(key []byte) error {
	normalized, err := normalizeKey(key, true)
	if err != nil {
		return err
	}
	block, err := aes.NewCipher(normalized)
	if err != nil {
		return err
	}
	p.block = block
	p.key = normalized
	return nil
}

func (p *aesPrimitive) EncipherBlock(dst, src []byte) { p.block.Encrypt(dst, src) }
func (p *aesPrimitive) DecipherBlock(dst, src []byte) { p.block.Decrypt(dst, src) }

func (p *aesPrimitive) Wipe() {
	for i := range p.key {
		p.key[i] = 0
	}
	p.block = nil
}
