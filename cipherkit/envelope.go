package cipherkit

import (
	"fmt"

	"wizardtoolkit/buffer"
	"wizardtoolkit/werror"
)

// Mode is one of the five modes of operation (spec.md §4.1).
type Mode int

const (
	ECB Mode = iota
	CBC
	CFB
	OFB
	CTR
)

func (m Mode) String() string {
	switch m {
	case ECB:
		return "ECB"
	case CBC:
		return "CBC"
	case CFB:
		return "CFB"
	case OFB:
		return "OFB"
	case CTR:
		return "CTR"
	default:
		return "unknown"
	}
}

// envelopeSignature is the magic word used to detect use of a destroyed
// or corrupted envelope (spec.md §3 "Block primitive state"), matching
// the original toolkit's per-struct signature assertions (see
// original_source/wizard/signature.c).
const envelopeSignature = 0x57495a44 // "WIZD"

// MaxCipherBlocksize bounds every primitive's block size (spec.md §3); it
// equals buffer.MaxCipherBlocksize so a Buffer's reserved tail always
// covers one block of padding.
const MaxCipherBlocksize = buffer.MaxCipherBlocksize

// Envelope binds one block primitive to one mode of operation and owns the
// nonce, padding, and per-message state (spec.md §3 "Cipher envelope").
type Envelope struct {
	kind      Kind
	mode      Mode
	blockSize int
	prim      BlockPrimitive
	nonce     []byte
	rng       *RNG
	signature uint32
}

// Acquire creates an envelope for the given (algorithm, mode), instantiates
// the primitive, and generates a random nonce of the shape the mode
// requires.
func Acquire(kind Kind, mode Mode) (*Envelope, error) {
	if mode < ECB || mode > CTR {
		werror.Fatal(werror.DomainCipher, "acquire", "invalid mode enum value")
	}
	prim, err := newPrimitive(kind)
	if err != nil {
		return nil, err
	}
	bs := prim.BlockSize()
	if bs > MaxCipherBlocksize {
		werror.Fatal(werror.DomainCipher, "acquire", "primitive block size exceeds MaxCipherBlocksize")
	}
	e := &Envelope{
		kind:      kind,
		mode:      mode,
		blockSize: bs,
		prim:      prim,
		nonce:     make([]byte, bs),
		rng:       Global(),
		signature: envelopeSignature,
	}
	if err := e.ResetNonce(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Envelope) checkSignature() {
	if e.signature != envelopeSignature {
		werror.Fatal(werror.DomainCipher, "envelope", "corrupted envelope signature")
	}
}

// BlockSize reports the bound primitive's block size.
func (e *Envelope) BlockSize() int { e.checkSignature(); return e.blockSize }

// Kind reports the bound primitive kind.
func (e *Envelope) Kind() Kind { e.checkSignature(); return e.kind }

// Mode reports the bound mode of operation.
func (e *Envelope) Mode() Mode { e.checkSignature(); return e.mode }

// SetKey installs a key by forwarding to the primitive's key schedule.
func (e *Envelope) SetKey(key []byte) error {
	e.checkSignature()
	return e.prim.SetKey(key)
}

// SetNonce installs a nonce of exactly BlockSize() bytes.
func (e *Envelope) SetNonce(nonce []byte) error {
	e.checkSignature()
	if len(nonce) != e.blockSize {
		return fmt.Errorf("cipherkit: nonce must be %d bytes, got %d", e.blockSize, len(nonce))
	}
	copy(e.nonce, nonce)
	if np, ok := e.prim.(noncePrimitive); ok {
		np.SetNonce(e.nonce)
	}
	return nil
}

// GetNonce returns a copy of the current nonce.
func (e *Envelope) GetNonce() []byte {
	e.checkSignature()
	out := make([]byte, len(e.nonce))
	copy(out, e.nonce)
	return out
}

// ResetNonce regenerates the nonce using the mode-specific shape from
// spec.md §4.1: a full-block random nonce for ECB/CBC/CFB/OFB, or a
// half-block random prefix with a zero half-block counter for CTR.
func (e *Envelope) ResetNonce() error {
	e.checkSignature()
	fresh := make([]byte, e.blockSize)
	switch e.mode {
	case CTR:
		half := e.blockSize / 2
		if _, err := e.rng.Read(fresh[:half]); err != nil {
			return err
		}
	default:
		if _, err := e.rng.Read(fresh); err != nil {
			return err
		}
	}
	return e.SetNonce(fresh)
}

// Wipe zeroes the primitive's key schedule and the envelope's nonce, and
// invalidates the signature so further use is fatal (spec.md §9).
func (e *Envelope) Wipe() {
	e.prim.Wipe()
	for i := range e.nonce {
		e.nonce[i] = 0
	}
	e.signature = 0
}

// Encipher enciphers buf in place, dispatching on the envelope's mode.
func (e *Envelope) Encipher(buf *buffer.Buffer) error {
	e.checkSignature()
	switch e.mode {
	case ECB:
		return e.encipherECB(buf)
	case CBC:
		return e.encipherCBC(buf)
	case CFB:
		return e.encipherCFB(buf)
	case OFB:
		return e.encipherOFB(buf)
	case CTR:
		return e.encipherCTR(buf)
	default:
		werror.Fatal(werror.DomainCipher, "encipher", "invalid mode enum value")
		return nil
	}
}

// Decipher deciphers buf in place, dispatching on the envelope's mode.
func (e *Envelope) Decipher(buf *buffer.Buffer) error {
	e.checkSignature()
	switch e.mode {
	case ECB:
		return e.decipherECB(buf)
	case CBC:
		return e.decipherCBC(buf)
	case CFB:
		return e.decipherCFB(buf)
	case OFB:
		return e.decipherOFB(buf)
	case CTR:
		return e.decipherCTR(buf)
	default:
		werror.Fatal(werror.DomainCipher, "decipher", "invalid mode enum value")
		return nil
	}
}

// pad appends length-prefixed pseudo-random padding (spec.md §4.1): the
// first pad-1 bytes are random, the final byte carries pad-1.
func (e *Envelope) pad(buf *buffer.Buffer) error {
	b := e.blockSize
	n := buf.Len()
	padLen := b - (n % b)
	buf.GrowToPaddedLength(n + padLen)
	if padLen > 1 {
		if _, err := e.rng.Read(buf.Data[n : n+padLen-1]); err != nil {
			return err
		}
	}
	buf.Data[n+padLen-1] = byte(padLen - 1)
	return nil
}

// unpad reads the final byte to recover pad-1 and truncates.
func (e *Envelope) unpad(buf *buffer.Buffer) error {
	n := buf.Len()
	if n == 0 || n%e.blockSize != 0 {
		return werror.New(werror.Code{Severity: werror.Error, Domain: werror.DomainCipher}, "decipher", "ciphertext not a multiple of block size", nil)
	}
	padLen := int(buf.Data[n-1]) + 1
	if padLen > e.blockSize || padLen > n {
		return werror.New(werror.Code{Severity: werror.Error, Domain: werror.DomainCipher}, "decipher", "invalid padding", nil)
	}
	buf.Truncate(n - padLen)
	return nil
}
