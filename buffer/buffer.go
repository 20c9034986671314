// Package buffer implements the owned, variable-length byte sequence that
// carries data across the cipher and hash envelopes and the keyring layer.
package buffer

import (
	"encoding/hex"
	"fmt"
	"hash/crc64"
)

// ISOPoly is the CRC64 generator used by the buffer's content-hash helper,
// the reflected polynomial 0xd800000000000000 named by the hash dispatcher
// (hashkit.KindCRC64).
const ISOPoly = crc64.ISO

var crcTable = crc64.MakeTable(ISOPoly)

// MaxCipherBlocksize bounds the tail padding reservation every Buffer
// carries so that a cipher envelope can grow the buffer in place without
// reallocating.
const MaxCipherBlocksize = 64

// Buffer is an owned byte sequence with a path tag and a reserved tail
// block. Encipherment grows Data by 1..MaxCipherBlocksize bytes in place;
// decipherment shrinks it. A zero-value Buffer is empty and valid.
type Buffer struct {
	Data []byte
	Path string
}

// New allocates a Buffer of the given length with a reserved padding tail.
func New(length int) *Buffer {
	b := &Buffer{Data: make([]byte, length, length+MaxCipherBlocksize)}
	return b
}

// FromBytes copies src into a new owned Buffer.
func FromBytes(src []byte) *Buffer {
	b := New(len(src))
	copy(b.Data, src)
	return b
}

// FromHex decodes a hex string into a new owned Buffer.
func FromHex(s string) (*Buffer, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("buffer: invalid hex: %w", err)
	}
	return FromBytes(raw), nil
}

// Hex renders the buffer's content as a lowercase hex string.
func (b *Buffer) Hex() string {
	return hex.EncodeToString(b.Data)
}

// Len reports the current logical length, excluding the reserved tail.
func (b *Buffer) Len() int {
	return len(b.Data)
}

// GrowToPaddedLength extends Data to newLen, reusing the reserved tail
// capacity when possible. It never shrinks the buffer; callers needing a
// shorter buffer should reslice Data directly.
func (b *Buffer) GrowToPaddedLength(newLen int) {
	if newLen <= len(b.Data) {
		return
	}
	if cap(b.Data) >= newLen {
		b.Data = b.Data[:newLen]
		return
	}
	grown := make([]byte, newLen, newLen+MaxCipherBlocksize)
	copy(grown, b.Data)
	b.Data = grown
}

// Truncate shrinks Data to newLen in place; used by decipherment to remove
// padding.
func (b *Buffer) Truncate(newLen int) {
	if newLen < 0 || newLen > len(b.Data) {
		panic("buffer: truncate length out of range")
	}
	b.Data = b.Data[:newLen]
}

// Concat returns a new Buffer holding the concatenation of a and b.
func Concat(a, b *Buffer) *Buffer {
	out := New(len(a.Data) + len(b.Data))
	n := copy(out.Data, a.Data)
	copy(out.Data[n:], b.Data)
	return out
}

// Split returns two new Buffers, the first holding Data[:at] and the
// second Data[at:].
func (b *Buffer) Split(at int) (*Buffer, *Buffer) {
	if at < 0 || at > len(b.Data) {
		panic("buffer: split index out of range")
	}
	return FromBytes(b.Data[:at]), FromBytes(b.Data[at:])
}

// ContentHash runs CRC64 (ISO polynomial) over the buffer's content; it is
// a lightweight identity/content-check helper, not a cryptographic digest.
func (b *Buffer) ContentHash() uint64 {
	return crc64.Checksum(b.Data, crcTable)
}

// Wipe zeroes the buffer's backing array. Destruction in this port is
// garbage-collected, but key and nonce material is wiped explicitly before
// a Buffer holding it is released, matching the primitives' "secure zero"
// discipline described in spec.md §9.
func (b *Buffer) Wipe() {
	full := b.Data[:cap(b.Data)]
	for i := range full {
		full[i] = 0
	}
}
