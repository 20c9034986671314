package keyring

import (
	"bytes"
	"path/filepath"
	"testing"

	"wizardtoolkit/werror"
)

func TestImportExportRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keyring.xdm")

	k, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}

	id := []byte{0x41}
	key := bytes.Repeat([]byte{0x42}, 16)
	nonce := bytes.Repeat([]byte{0x43}, 16)

	k.SetID(id)
	k.SetKey(key)
	k.SetNonce(nonce)
	if err := k.Import(); err != nil {
		t.Fatalf("Import: %v", err)
	}

	rec, err := k.Export(id)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !bytes.Equal(rec.ID, id) {
		t.Fatalf("ID mismatch: got %x, want %x", rec.ID, id)
	}
	if !bytes.Equal(rec.Key, key) {
		t.Fatalf("Key mismatch: got %x, want %x", rec.Key, key)
	}
	if !bytes.Equal(rec.Nonce, nonce) {
		t.Fatalf("Nonce mismatch: got %x, want %x", rec.Nonce, nonce)
	}
	if rec.VersionMajor != CurrentVersionMajor || rec.VersionMinor != CurrentVersionMinor {
		t.Fatalf("version mismatch: got %d.%d", rec.VersionMajor, rec.VersionMinor)
	}
}

func TestImportRejectsDuplicateID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keyring.xdm")
	k, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}

	id := []byte{0xAA}
	k.SetID(id)
	k.SetKey(bytes.Repeat([]byte{0x01}, 16))
	k.SetNonce(bytes.Repeat([]byte{0x02}, 16))
	if err := k.Import(); err != nil {
		t.Fatalf("first Import: %v", err)
	}

	k.SetID(id)
	k.SetKey(bytes.Repeat([]byte{0x09}, 16))
	k.SetNonce(bytes.Repeat([]byte{0x0a}, 16))
	if err := k.Import(); err != werror.ErrDuplicateKey {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestExportMissingKeyNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keyring.xdm")
	k, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if _, err := k.Export([]byte{0xFF}); err != werror.ErrKeyNotFound {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestListReturnsAllImportedRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keyring.xdm")
	k, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}

	ids := [][]byte{{0x01}, {0x02}, {0x03}}
	for _, id := range ids {
		k.SetID(id)
		k.SetKey(bytes.Repeat([]byte{id[0]}, 16))
		k.SetNonce(bytes.Repeat([]byte{id[0]}, 16))
		if err := k.Import(); err != nil {
			t.Fatalf("Import(%x): %v", id, err)
		}
	}

	records, err := k.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != len(ids) {
		t.Fatalf("List returned %d records, want %d", len(records), len(ids))
	}
}

func TestAcquireOnExistingFileDoesNotTruncate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keyring.xdm")
	k, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	k.SetID([]byte{0x10})
	k.SetKey(bytes.Repeat([]byte{0x11}, 16))
	k.SetNonce(bytes.Repeat([]byte{0x12}, 16))
	if err := k.Import(); err != nil {
		t.Fatalf("Import: %v", err)
	}

	reopened, err := Acquire(path)
	if err != nil {
		t.Fatalf("second Acquire: %v", err)
	}
	records, err := reopened.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("List after reopen returned %d records, want 1", len(records))
	}
}
