// Package keyring implements the append-only, binary keyring file format
// (spec.md §3-4.5): export-by-id, import-if-absent, and property listing
// over (id, key, nonce, timestamp, protocol-version) tuples, guarded by a
// cross-process advisory lock (see wizardtoolkit/keylock).
package keyring

import "time"

// wizardMagic is the toolkit-wide magic word every record's SIGNATURE
// field must equal, and that opens every keyring file (spec.md §3).
const wizardMagic uint32 = 0x5749_5a52 // "WIZR"

// fileTypeTag is the ASCII literal "keyring" serialized right after MAGIC.
var fileTypeTag = []byte("keyring")

// CurrentVersionMajor/Minor is the protocol version this module writes.
// Spec.md §9 requires new implementations to write only (1,1) or later
// while still reading (1,0) for backward compatibility.
const (
	CurrentVersionMajor uint16 = 1
	CurrentVersionMinor uint16 = 1
)

// Record is a single on-disk (id, key, nonce, timestamp, version) tuple
// (spec.md §3 "Keyring record in memory"). The record owns its three
// buffers; Clone deep-copies them.
type Record struct {
	ID           []byte
	Key          []byte
	Nonce        []byte
	VersionMajor uint16
	VersionMinor uint16
	Timestamp    time.Time
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	out := Record{
		VersionMajor: r.VersionMajor,
		VersionMinor: r.VersionMinor,
		Timestamp:    r.Timestamp,
	}
	out.ID = append([]byte(nil), r.ID...)
	out.Key = append([]byte(nil), r.Key...)
	out.Nonce = append([]byte(nil), r.Nonce...)
	return out
}

// Wipe zeroes the record's key and nonce material.
func (r *Record) Wipe() {
	for i := range r.Key {
		r.Key[i] = 0
	}
	for i := range r.Nonce {
		r.Nonce[i] = 0
	}
}
