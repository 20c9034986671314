package keylock

import (
	"encoding/binary"
	"fmt"
	"io"
)

// ReadFile16Bits, ReadFile32Bits, and ReadFile64Bits transfer unsigned
// integers least-significant-byte-first regardless of host byte order
// (spec.md §6).
func ReadFile16Bits(r io.Reader) (uint16, error) {
	var buf [2]byte
	if err := readFileChunk(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf[:]), nil
}

func ReadFile32Bits(r io.Reader) (uint32, error) {
	var buf [4]byte
	if err := readFileChunk(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func ReadFile64Bits(r io.Reader) (uint64, error) {
	var buf [8]byte
	if err := readFileChunk(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

func WriteFile16Bits(w io.Writer, v uint16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	return writeFileChunk(w, buf[:])
}

func WriteFile32Bits(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return writeFileChunk(w, buf[:])
}

func WriteFile64Bits(w io.Writer, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return writeFileChunk(w, buf[:])
}

// ReadFileChunk reads exactly len(buf) bytes, retrying short reads until
// the buffer is full, EOF, or a non-transient error occurs.
func ReadFileChunk(r io.Reader, buf []byte) error { return readFileChunk(r, buf) }

// WriteFileChunk writes exactly len(buf) bytes, retrying short writes.
func WriteFileChunk(w io.Writer, buf []byte) error { return writeFileChunk(w, buf) }

func readFileChunk(r io.Reader, buf []byte) error {
	total := 0
	for total < len(buf) {
		n, err := r.Read(buf[total:])
		total += n
		if err != nil {
			if err == io.EOF && total == len(buf) {
				return nil
			}
			if err == io.EOF && total > 0 {
				return io.ErrUnexpectedEOF
			}
			return err
		}
	}
	return nil
}

func writeFileChunk(w io.Writer, buf []byte) error {
	total := 0
	for total < len(buf) {
		n, err := w.Write(buf[total:])
		total += n
		if err != nil {
			return fmt.Errorf("keylock: file-write-failed: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("keylock: file-write-failed: short write")
		}
	}
	return nil
}
