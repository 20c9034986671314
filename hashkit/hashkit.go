// Package hashkit implements the hash envelope: seven digest algorithms
// (spec.md §4.4) exposed behind the single streaming interface
// Init/Update/Final (spec.md §4.3).
package hashkit

import (
	"encoding/hex"
	"fmt"
	"hash"
)

// Kind tags which of the seven hash primitives an envelope is bound to.
type Kind int

const (
	KindCRC64 Kind = iota
	KindMD5
	KindSHA1
	KindSHA224
	KindSHA256
	KindSHA384
	KindSHA512
	KindSponge224
	KindSponge256
	KindSponge384
	KindSponge512
	KindSponge128Wide // the (36,1024,576) profile, 288-bit output
)

func (k Kind) String() string {
	switch k {
	case KindCRC64:
		return "crc64"
	case KindMD5:
		return "md5"
	case KindSHA1:
		return "sha1"
	case KindSHA224:
		return "sha224"
	case KindSHA256:
		return "sha256"
	case KindSHA384:
		return "sha384"
	case KindSHA512:
		return "sha512"
	case KindSponge224:
		return "sponge224"
	case KindSponge256:
		return "sponge256"
	case KindSponge384:
		return "sponge384"
	case KindSponge512:
		return "sponge512"
	case KindSponge128Wide:
		return "sponge288"
	default:
		return "unknown"
	}
}

// Envelope selects one hash core by Kind and exposes the common streaming
// API (spec.md §3 "Hash envelope").
type Envelope struct {
	kind   Kind
	core   hash.Hash
	digest []byte
	done   bool
}

// Acquire creates an envelope for the given hash Kind. The digest buffer
// is produced by Finalize.
func Acquire(kind Kind) (*Envelope, error) {
	core, err := newCore(kind)
	if err != nil {
		return nil, err
	}
	return &Envelope{kind: kind, core: core}, nil
}

// Init (re)initializes the envelope for a fresh Update/Final cycle.
func (e *Envelope) Init() {
	e.core.Reset()
	e.digest = nil
	e.done = false
}

// Update feeds data into the envelope. Per spec.md §5's ordering
// guarantee, Update(a); Update(b) is equivalent to one Update(a||b) call.
func (e *Envelope) Update(data []byte) {
	e.core.Write(data)
}

// Finalize computes the digest. It is idempotent: calling Finalize again
// on an already-finalized envelope returns the same digest without
// mutating the underlying core (spec.md §4.4's streaming discipline).
func (e *Envelope) Finalize() []byte {
	if !e.done {
		e.digest = e.core.Sum(nil)
		e.done = true
	}
	return e.digest
}

// Digest returns the digest bytes; valid only after Finalize.
func (e *Envelope) Digest() []byte { return e.digest }

// HexDigest returns the digest as a lowercase hex string.
func (e *Envelope) HexDigest() string { return hex.EncodeToString(e.Finalize()) }

// DigestSize reports the algorithm's fixed digest size in bytes.
func (e *Envelope) DigestSize() int { return e.core.Size() }

// BlockSize reports the algorithm's internal block size in bytes.
func (e *Envelope) BlockSize() int { return e.core.BlockSize() }

// Kind reports the bound algorithm.
func (e *Envelope) Kind() Kind { return e.kind }

// Sum is a convenience one-shot helper: Init, Update(data), Finalize.
func Sum(kind Kind, data []byte) ([]byte, error) {
	e, err := Acquire(kind)
	if err != nil {
		return nil, err
	}
	e.Update(data)
	return e.Finalize(), nil
}

func newCore(kind Kind) (hash.Hash, error) {
	switch kind {
	case KindCRC64:
		return newCRC64(), nil
	case KindMD5:
		return newMD5(), nil
	case KindSHA1:
		return newSHA1(), nil
	case KindSHA224:
		return newSHA224(), nil
	case KindSHA256:
		return newSHA256(), nil
	case KindSHA384:
		return newSHA384(), nil
	case KindSHA512:
		return newSHA512(), nil
	case KindSponge224, KindSponge256, KindSponge384, KindSponge512, KindSponge128Wide:
		return newSponge(kind)
	default:
		return nil, fmt.Errorf("hashkit: invalid hash kind %d", kind)
	}
}
