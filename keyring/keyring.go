package keyring

import (
	"bytes"
	"io"
	"os"
	"time"

	"wizardtoolkit/keylock"
	"wizardtoolkit/werror"
)

// Keyring is a handle on one keyring.xdm file, guarded by a cross-process
// advisory lock for the duration of Export/Import (spec.md §4.6). A
// Keyring also holds the pending (id, key, nonce) set by SetID/SetKey/
// SetNonce, consumed by the next Import.
type Keyring struct {
	path    string
	pending Record
}

// Acquire opens (creating if absent) the keyring file at path and returns
// a handle. It does not hold the cross-process lock between calls; each
// Export/Import acquires and releases it for the duration of the
// operation (spec.md §5: "the lock's scope is one read-modify-write
// cycle, not the lifetime of the handle").
func Acquire(path string) (*Keyring, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := initFile(path); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}
	return &Keyring{path: path}, nil
}

func initFile(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteHeader(f)
}

// SetID stages the key identifier for the next Import.
func (k *Keyring) SetID(id []byte) { k.pending.ID = append([]byte(nil), id...) }

// SetKey stages the key material for the next Import.
func (k *Keyring) SetKey(key []byte) { k.pending.Key = append([]byte(nil), key...) }

// SetNonce stages the nonce for the next Import.
func (k *Keyring) SetNonce(nonce []byte) { k.pending.Nonce = append([]byte(nil), nonce...) }

// Export looks up the record whose ID equals id, returning
// werror.ErrKeyNotFound if absent.
func (k *Keyring) Export(id []byte) (Record, error) {
	lock, err := keylock.Acquire(k.path)
	if err != nil {
		return Record{}, werror.New(werror.Code{Severity: werror.Error, Domain: werror.DomainKeyring}, "export", "lock acquisition timed out", err)
	}
	defer lock.Release()

	return k.find(id)
}

// find scans the file for id without taking the lock; callers must hold
// it already.
func (k *Keyring) find(id []byte) (Record, error) {
	f, err := os.Open(k.path)
	if err != nil {
		return Record{}, err
	}
	defer f.Close()

	if err := ReadHeader(f); err != nil {
		return Record{}, err
	}
	for {
		rec, err := ReadRecord(f)
		if err == io.EOF {
			return Record{}, werror.ErrKeyNotFound
		}
		if err != nil {
			return Record{}, err
		}
		if bytes.Equal(rec.ID, id) {
			return rec, nil
		}
	}
}

// Import appends the staged (id, key, nonce) as a new record, stamped
// with the current time and protocol version, rejecting the write with
// werror.ErrDuplicateKey if a record with the same ID already exists
// (spec.md §4.5: "import performs an export first; a hit aborts the
// import before any bytes are written").
func (k *Keyring) Import() error {
	lock, err := keylock.Acquire(k.path)
	if err != nil {
		return werror.New(werror.Code{Severity: werror.Error, Domain: werror.DomainKeyring}, "import", "lock acquisition timed out", err)
	}
	defer lock.Release()

	if _, err := k.find(k.pending.ID); err == nil {
		return werror.ErrDuplicateKey
	} else if err != werror.ErrKeyNotFound {
		return err
	}

	f, err := os.OpenFile(k.path, os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	rec := k.pending.Clone()
	rec.VersionMajor = CurrentVersionMajor
	rec.VersionMinor = CurrentVersionMinor
	rec.Timestamp = time.Now().UTC()
	return WriteRecord(f, rec)
}

// List returns every record currently stored, in file order.
func (k *Keyring) List() ([]Record, error) {
	lock, err := keylock.Acquire(k.path)
	if err != nil {
		return nil, werror.New(werror.Code{Severity: werror.Error, Domain: werror.DomainKeyring}, "list", "lock acquisition timed out", err)
	}
	defer lock.Release()

	f, err := os.Open(k.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := ReadHeader(f); err != nil {
		return nil, err
	}
	var out []Record
	for {
		rec, err := ReadRecord(f)
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
}
