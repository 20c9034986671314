// Package keylock implements the scoped, cross-process advisory file lock
// described in spec.md §4.6: a sidecar "<target>.lck" file containing
// (pid, tid), reentrant within the holding thread, with liveness-probe
// based stealing of an orphaned lock.
package keylock

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

// ErrTimeout is returned when acquisition fails after all retries.
var ErrTimeout = errors.New("keylock: lock acquisition timed out")

const maxAttempts = 10
const retryDelay = time.Second

// pathMutexes serializes the acquire/release protocol per lock path within
// this process (spec.md §4.6: "A process-internal semaphore serialises the
// acquire/release protocol within one process so that steps 2-5 are
// themselves atomic").
var pathMutexes sync.Map // map[string]*sync.Mutex

func mutexFor(path string) *sync.Mutex {
	v, _ := pathMutexes.LoadOrStore(path, &sync.Mutex{})
	return v.(*sync.Mutex)
}

// Lock is a held advisory lock over one target path's sidecar file.
type Lock struct {
	lockPath string
}

// Acquire attempts to take the lock guarding targetPath, retrying up to
// ten times with a one-second delay against a live holder, and stealing
// the lock immediately if the recorded holder process is gone.
func Acquire(targetPath string) (*Lock, error) {
	lockPath := targetPath + ".lck"
	mu := mutexFor(lockPath)
	mu.Lock()
	defer mu.Unlock()

	pid := int64(os.Getpid())
	tid := int64(gettid())

	for attempt := 0; attempt < maxAttempts; attempt++ {
		f, err := os.OpenFile(lockPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
		if err == nil {
			if werr := writeHolder(f, pid, tid); werr != nil {
				f.Close()
				os.Remove(lockPath)
				return nil, werr
			}
			f.Close()
			return &Lock{lockPath: lockPath}, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("keylock: open %s: %w", lockPath, err)
		}

		holderPID, holderTID, rerr := readHolder(lockPath)
		if rerr != nil {
			// Racing remover or partial write; retry without consuming
			// a full attempt's backoff.
			continue
		}
		if holderPID == pid && holderTID == tid {
			return &Lock{lockPath: lockPath}, nil // reentrant
		}
		if !processAlive(int(holderPID)) {
			os.Remove(lockPath)
			continue
		}
		time.Sleep(retryDelay)
	}
	return nil, ErrTimeout
}

// Release removes the lock's sidecar file.
func (l *Lock) Release() error {
	mu := mutexFor(l.lockPath)
	mu.Lock()
	defer mu.Unlock()
	return os.Remove(l.lockPath)
}

func writeHolder(f *os.File, pid, tid int64) error {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], uint64(pid))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(tid))
	_, err := f.Write(buf[:])
	return err
}

func readHolder(lockPath string) (pid, tid int64, err error) {
	f, err := os.Open(lockPath)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()
	var buf [16]byte
	if _, err := f.Read(buf[:]); err != nil {
		return 0, 0, err
	}
	pid = int64(binary.LittleEndian.Uint64(buf[0:8]))
	tid = int64(binary.LittleEndian.Uint64(buf[8:16]))
	return pid, tid, nil
}

// processAlive probes pid liveness via the OS's "signal zero" mechanism
// (spec.md §4.6 step 4).
func processAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	err := unix.Kill(pid, 0)
	if err == nil {
		return true
	}
	return !errors.Is(err, unix.ESRCH)
}

func gettid() int {
	return unix.Gettid()
}
