package cipherkit

import (
	"wizardtoolkit/buffer"
	"wizardtoolkit/werror"
)

// --- ECB ---

func (e *Envelope) encipherECB(buf *buffer.Buffer) error {
	if err := e.pad(buf); err != nil {
		return err
	}
	b := e.blockSize
	tmp := make([]byte, b)
	for off := 0; off < buf.Len(); off += b {
		e.prim.EncipherBlock(tmp, buf.Data[off:off+b])
		copy(buf.Data[off:off+b], tmp)
	}
	return nil
}

func (e *Envelope) decipherECB(buf *buffer.Buffer) error {
	b := e.blockSize
	if buf.Len()%b != 0 {
		return werror.New(werror.Code{Severity: werror.Error, Domain: werror.DomainCipher}, "decipher", "ciphertext not a multiple of block size", nil)
	}
	tmp := make([]byte, b)
	for off := 0; off < buf.Len(); off += b {
		e.prim.DecipherBlock(tmp, buf.Data[off:off+b])
		copy(buf.Data[off:off+b], tmp)
	}
	return e.unpad(buf)
}

// --- CBC ---

func (e *Envelope) encipherCBC(buf *buffer.Buffer) error {
	if err := e.pad(buf); err != nil {
		return err
	}
	b := e.blockSize
	register := make([]byte, b)
	copy(register, e.nonce)
	xored := make([]byte, b)
	for off := 0; off < buf.Len(); off += b {
		block := buf.Data[off : off+b]
		for i := 0; i < b; i++ {
			xored[i] = block[i] ^ register[i]
		}
		e.prim.EncipherBlock(block, xored)
		copy(register, block)
	}
	return nil
}

func (e *Envelope) decipherCBC(buf *buffer.Buffer) error {
	b := e.blockSize
	if buf.Len()%b != 0 {
		return werror.New(werror.Code{Severity: werror.Error, Domain: werror.DomainCipher}, "decipher", "ciphertext not a multiple of block size", nil)
	}
	register := make([]byte, b)
	copy(register, e.nonce)
	tmp := make([]byte, b)
	prevCipher := make([]byte, b)
	for off := 0; off < buf.Len(); off += b {
		block := buf.Data[off : off+b]
		copy(prevCipher, block)
		e.prim.DecipherBlock(tmp, block)
		for i := 0; i < b; i++ {
			block[i] = tmp[i] ^ register[i]
		}
		copy(register, prevCipher)
	}
	return e.unpad(buf)
}

// --- CFB (byte-oriented, no padding) ---

func (e *Envelope) encipherCFB(buf *buffer.Buffer) error {
	b := e.blockSize
	register := make([]byte, b)
	copy(register, e.nonce)
	keystream := make([]byte, b)
	for i := 0; i < buf.Len(); i++ {
		e.prim.EncipherBlock(keystream, register)
		ct := keystream[0] ^ buf.Data[i]
		copy(register, register[1:])
		register[b-1] = ct
		buf.Data[i] = ct
	}
	return nil
}

// decipherCFB mirrors encipherCFB using the ciphertext byte as the
// feedback byte — the standard CFB-8 construction (spec.md §9 open
// question, resolved in favor of matching the source).
func (e *Envelope) decipherCFB(buf *buffer.Buffer) error {
	b := e.blockSize
	register := make([]byte, b)
	copy(register, e.nonce)
	keystream := make([]byte, b)
	for i := 0; i < buf.Len(); i++ {
		e.prim.EncipherBlock(keystream, register)
		ct := buf.Data[i]
		pt := keystream[0] ^ ct
		copy(register, register[1:])
		register[b-1] = ct
		buf.Data[i] = pt
	}
	return nil
}

// --- OFB ---

func (e *Envelope) encipherOFB(buf *buffer.Buffer) error {
	if err := e.pad(buf); err != nil {
		return err
	}
	e.ofbXOR(buf)
	return nil
}

func (e *Envelope) decipherOFB(buf *buffer.Buffer) error {
	e.ofbXOR(buf)
	return e.unpad(buf)
}

func (e *Envelope) ofbXOR(buf *buffer.Buffer) {
	b := e.blockSize
	register := make([]byte, b)
	copy(register, e.nonce)
	tmp := make([]byte, b)
	for off := 0; off < buf.Len(); off += b {
		e.prim.EncipherBlock(tmp, register)
		copy(register, tmp)
		block := buf.Data[off : off+b]
		for i := 0; i < b; i++ {
			block[i] ^= register[i]
		}
	}
}

// --- CTR ---

func (e *Envelope) encipherCTR(buf *buffer.Buffer) error {
	if err := e.pad(buf); err != nil {
		return err
	}
	return e.ctrXOR(buf)
}

func (e *Envelope) decipherCTR(buf *buffer.Buffer) error {
	if err := e.ctrXOR(buf); err != nil {
		return err
	}
	return e.unpad(buf)
}

func (e *Envelope) ctrXOR(buf *buffer.Buffer) error {
	b := e.blockSize
	register := make([]byte, b)
	copy(register, e.nonce)
	keystream := make([]byte, b)
	for off := 0; off < buf.Len(); off += b {
		e.prim.EncipherBlock(keystream, register)
		block := buf.Data[off : off+b]
		for i := 0; i < b; i++ {
			block[i] ^= keystream[i]
		}
		if incrementBigEndian(register) {
			return werror.ErrCounterWrap
		}
	}
	return nil
}

// incrementBigEndian increments register as a big-endian integer,
// reporting true if the increment overflowed past the most-significant
// byte (spec.md §4.1: "Overflow past the most-significant byte is
// fatal").
func incrementBigEndian(register []byte) bool {
	for i := len(register) - 1; i >= 0; i-- {
		register[i]++
		if register[i] != 0 {
			return false
		}
	}
	return true
}
