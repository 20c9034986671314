package keyring

import (
	"fmt"
	"io"
	"time"

	"wizardtoolkit/keylock"
	"wizardtoolkit/werror"
)

// On-disk record layout (spec.md §3-4.5, little-endian throughout):
//
//	SIGNATURE        uint32  must equal wizardMagic; checked per record, not
//	                         just once at the file header (matches the
//	                         original's ReadKeyringInfo, which re-validates
//	                         signature on every record and rejects the
//	                         record otherwise)
//	RESERVED_OR_TS32 uint32  (1,0) readers: low 32 bits of a legacy 32-bit
//	                         timestamp; (1,1)+ writers: reserved, always 0
//	VERSION_MAJOR    uint16
//	VERSION_MINOR    uint16
//	TIMESTAMP64      uint64  present only when NOT (major==1 && minor==0)
//	ID_LEN           uint32
//	ID               []byte
//	KEY_LEN          uint32
//	KEY              []byte
//	NONCE_LEN        uint32
//	NONCE            []byte
//
// spec.md §9 flags the historical (1,0) vs (1,1)+ layout as ambiguous
// because VERSION is described as following a TIMESTAMP field that differs
// in width between the two revisions, which cannot be parsed without
// already knowing the version. This module resolves the ambiguity by
// placing VERSION_MAJOR/MINOR directly after the one 32-bit field whose
// meaning depends on it, so a reader always knows which timestamp width
// to expect before it needs one. See DESIGN.md.
const fileHeaderFixedLen = 4 + 4 + 2 + 2 // SIGNATURE, RESERVED_OR_TS32, VERSION_MAJOR, VERSION_MINOR

// ReadHeader validates the fixed MAGIC|FILETYPE prologue of a keyring file.
func ReadHeader(r io.Reader) error { return readMagicAndType(r) }

// WriteHeader writes the fixed MAGIC|FILETYPE prologue.
func WriteHeader(w io.Writer) error { return writeMagicAndType(w) }

func readMagicAndType(r io.Reader) error {
	magic, err := keylock.ReadFile32Bits(r)
	if err != nil {
		return fmt.Errorf("keyring: read signature: %w", err)
	}
	if magic != wizardMagic {
		return werror.ErrCorruptKeyring
	}
	tag := make([]byte, len(fileTypeTag))
	if err := keylock.ReadFileChunk(r, tag); err != nil {
		return fmt.Errorf("keyring: read filetype: %w", err)
	}
	for i := range tag {
		if tag[i] != fileTypeTag[i] {
			return werror.ErrCorruptKeyring
		}
	}
	return nil
}

func writeMagicAndType(w io.Writer) error {
	if err := keylock.WriteFile32Bits(w, wizardMagic); err != nil {
		return err
	}
	return keylock.WriteFileChunk(w, fileTypeTag)
}

// ReadRecord reads one record from r, or io.EOF if the stream is exhausted
// before a new record begins.
func ReadRecord(r io.Reader) (Record, error) {
	signature, err := keylock.ReadFile32Bits(r)
	if err != nil {
		return Record{}, err // EOF propagates to caller as end-of-stream
	}
	if signature != wizardMagic {
		return Record{}, werror.ErrCorruptKeyring
	}
	reservedOrTS32, err := keylock.ReadFile32Bits(r)
	if err != nil {
		return Record{}, fmt.Errorf("keyring: read reserved/timestamp32: %w", err)
	}
	major, err := keylock.ReadFile16Bits(r)
	if err != nil {
		return Record{}, fmt.Errorf("keyring: read version major: %w", err)
	}
	minor, err := keylock.ReadFile16Bits(r)
	if err != nil {
		return Record{}, fmt.Errorf("keyring: read version minor: %w", err)
	}

	var ts time.Time
	if major == 1 && minor == 0 {
		ts = time.Unix(int64(reservedOrTS32), 0).UTC()
	} else {
		ts64, err := keylock.ReadFile64Bits(r)
		if err != nil {
			return Record{}, fmt.Errorf("keyring: read timestamp: %w", err)
		}
		ts = time.Unix(int64(ts64), 0).UTC()
	}

	id, err := readLenPrefixed(r)
	if err != nil {
		return Record{}, fmt.Errorf("keyring: read id: %w", err)
	}
	key, err := readLenPrefixed(r)
	if err != nil {
		return Record{}, fmt.Errorf("keyring: read key: %w", err)
	}
	nonce, err := readLenPrefixed(r)
	if err != nil {
		return Record{}, fmt.Errorf("keyring: read nonce: %w", err)
	}

	return Record{
		ID:           id,
		Key:          key,
		Nonce:        nonce,
		VersionMajor: major,
		VersionMinor: minor,
		Timestamp:    ts,
	}, nil
}

// WriteRecord appends rec to w using the current protocol version.
func WriteRecord(w io.Writer, rec Record) error {
	if err := keylock.WriteFile32Bits(w, wizardMagic); err != nil { // SIGNATURE
		return err
	}
	if err := keylock.WriteFile32Bits(w, 0); err != nil { // RESERVED
		return err
	}
	if err := keylock.WriteFile16Bits(w, CurrentVersionMajor); err != nil {
		return err
	}
	if err := keylock.WriteFile16Bits(w, CurrentVersionMinor); err != nil {
		return err
	}
	if err := keylock.WriteFile64Bits(w, uint64(rec.Timestamp.Unix())); err != nil {
		return err
	}
	if err := writeLenPrefixed(w, rec.ID); err != nil {
		return fmt.Errorf("keyring: write id: %w", err)
	}
	if err := writeLenPrefixed(w, rec.Key); err != nil {
		return fmt.Errorf("keyring: write key: %w", err)
	}
	if err := writeLenPrefixed(w, rec.Nonce); err != nil {
		return fmt.Errorf("keyring: write nonce: %w", err)
	}
	return nil
}

func readLenPrefixed(r io.Reader) ([]byte, error) {
	n, err := keylock.ReadFile32Bits(r)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if err := keylock.ReadFileChunk(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func writeLenPrefixed(w io.Writer, data []byte) error {
	if err := keylock.WriteFile32Bits(w, uint32(len(data))); err != nil {
		return err
	}
	return keylock.WriteFileChunk(w, data)
}
