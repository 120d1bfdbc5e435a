// Package binary provides bounds-checked reads for header sniffing.
package binary

import (
	"encoding/binary"
	"fmt"
	"io"
)

// SafeReader wraps io.ReaderAt with bounds checking and helpful error messages.
type SafeReader struct {
	r    io.ReaderAt
	path string
	size int64
}

// NewSafeReader creates a new SafeReader.
func NewSafeReader(r io.ReaderAt, size int64, path string) *SafeReader {
	return &SafeReader{
		r:    r,
		size: size,
		path: path,
	}
}

// Size returns the number of readable bytes.
func (sr *SafeReader) Size() int64 {
	return sr.size
}

// ReadAt fills b from the given offset. what names the structure being
// read and ends up in the error message.
func (sr *SafeReader) ReadAt(b []byte, off int64, what string) error {
	if off < 0 || off >= sr.size {
		return fmt.Errorf("%s: offset %d out of bounds (file size: %d) while reading %s",
			sr.path, off, sr.size, what)
	}

	if off+int64(len(b)) > sr.size {
		return fmt.Errorf("%s: read of %d bytes at offset %d would exceed file size %d while reading %s",
			sr.path, len(b), off, sr.size, what)
	}

	n, err := sr.r.ReadAt(b, off)
	if err != nil && err != io.EOF {
		return fmt.Errorf("%s: failed to read %s at offset %d: %w", sr.path, what, off, err)
	}

	if n < len(b) {
		return fmt.Errorf("%s: short read for %s at offset %d: got %d bytes, expected %d",
			sr.path, what, off, n, len(b))
	}

	return nil
}

// Bytes reads n bytes at off into a new slice.
func (sr *SafeReader) Bytes(off int64, n int, what string) ([]byte, error) {
	buf := make([]byte, n)
	if err := sr.ReadAt(buf, off, what); err != nil {
		return nil, err
	}
	return buf, nil
}

// Magic reports whether the bytes at off equal want. Out-of-bounds reads
// report false.
func (sr *SafeReader) Magic(off int64, want string) bool {
	buf, err := sr.Bytes(off, len(want), "magic "+want)
	if err != nil {
		return false
	}
	return string(buf) == want
}

// Uint8 reads a single byte.
func (sr *SafeReader) Uint8(off int64, what string) (uint8, error) {
	var buf [1]byte
	if err := sr.ReadAt(buf[:], off, what); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// Uint16BE reads a big-endian uint16.
func (sr *SafeReader) Uint16BE(off int64, what string) (uint16, error) {
	var buf [2]byte
	if err := sr.ReadAt(buf[:], off, what); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf[:]), nil
}

// Uint32BE reads a big-endian uint32.
func (sr *SafeReader) Uint32BE(off int64, what string) (uint32, error) {
	var buf [4]byte
	if err := sr.ReadAt(buf[:], off, what); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}

// Uint32LE reads a little-endian uint32.
func (sr *SafeReader) Uint32LE(off int64, what string) (uint32, error) {
	var buf [4]byte
	if err := sr.ReadAt(buf[:], off, what); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// Uint16LE reads a little-endian uint16.
func (sr *SafeReader) Uint16LE(off int64, what string) (uint16, error) {
	var buf [2]byte
	if err := sr.ReadAt(buf[:], off, what); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf[:]), nil
}

// Uint64BE reads a big-endian uint64.
func (sr *SafeReader) Uint64BE(off int64, what string) (uint64, error) {
	var buf [8]byte
	if err := sr.ReadAt(buf[:], off, what); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}

// Uint64LE reads a little-endian uint64.
func (sr *SafeReader) Uint64LE(off int64, what string) (uint64, error) {
	var buf [8]byte
	if err := sr.ReadAt(buf[:], off, what); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}
