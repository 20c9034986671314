package keylock

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAcquireReleaseCycle(t *testing.T) {
	target := filepath.Join(t.TempDir(), "keyring.xdm")

	lock, err := Acquire(target)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if _, err := os.Stat(lock.lockPath); err != nil {
		t.Fatalf("lock sidecar file missing: %v", err)
	}
	if err := lock.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if _, err := os.Stat(lock.lockPath); !os.IsNotExist(err) {
		t.Fatalf("lock sidecar file still present after Release")
	}
}

func TestAcquireReentrantWithinSameProcess(t *testing.T) {
	target := filepath.Join(t.TempDir(), "keyring.xdm")

	first, err := Acquire(target)
	if err != nil {
		t.Fatalf("first Acquire: %v", err)
	}
	defer first.Release()

	second, err := Acquire(target)
	if err != nil {
		t.Fatalf("reentrant Acquire should succeed for the same pid/tid holder: %v", err)
	}
	if second.lockPath != first.lockPath {
		t.Fatalf("reentrant lock targeted a different sidecar file")
	}
}

func TestAcquireStealsOrphanedLock(t *testing.T) {
	target := filepath.Join(t.TempDir(), "keyring.xdm")
	lockPath := target + ".lck"

	// A lock file naming a pid that cannot possibly be alive.
	f, err := os.OpenFile(lockPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		t.Fatalf("seed orphaned lock: %v", err)
	}
	if err := writeHolder(f, 1<<30, 1); err != nil {
		t.Fatalf("writeHolder: %v", err)
	}
	f.Close()

	lock, err := Acquire(target)
	if err != nil {
		t.Fatalf("Acquire should steal an orphaned lock: %v", err)
	}
	defer lock.Release()
}

func TestFixedWidthIntegerRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ints.bin")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := WriteFile16Bits(f, 0xABCD); err != nil {
		t.Fatalf("WriteFile16Bits: %v", err)
	}
	if err := WriteFile32Bits(f, 0xDEADBEEF); err != nil {
		t.Fatalf("WriteFile32Bits: %v", err)
	}
	if err := WriteFile64Bits(f, 0x0102030405060708); err != nil {
		t.Fatalf("WriteFile64Bits: %v", err)
	}
	f.Close()

	r, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer r.Close()

	v16, err := ReadFile16Bits(r)
	if err != nil || v16 != 0xABCD {
		t.Fatalf("ReadFile16Bits = %x, %v", v16, err)
	}
	v32, err := ReadFile32Bits(r)
	if err != nil || v32 != 0xDEADBEEF {
		t.Fatalf("ReadFile32Bits = %x, %v", v32, err)
	}
	v64, err := ReadFile64Bits(r)
	if err != nil || v64 != 0x0102030405060708 {
		t.Fatalf("ReadFile64Bits = %x, %v", v64, err)
	}
}
