// Package mmap provides read-only memory-mapped file access.
//
// The store's tiered reader uses it for large text snapshots, where mapping
// avoids double-buffering the whole file through the page cache and the Go
// heap at once. Callers must not touch Bytes() after Close.
package mmap

import (
	"errors"
	"os"
)

// Mapping is a read-only memory-mapped file.
type Mapping struct {
	data []byte
	f    *os.File
}

// Open maps the file at path into memory as read-only.
func Open(path string) (*Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	size := fi.Size()
	if size < 0 {
		f.Close()
		return nil, errors.New("mmap: file size is negative")
	}
	if size == 0 {
		return &Mapping{f: f}, nil
	}

	data, err := mapFile(f, int(size))
	if err != nil {
		f.Close()
		return nil, err
	}
	return &Mapping{data: data, f: f}, nil
}

// Bytes returns the mapped file contents. The slice aliases the mapping and
// becomes invalid after Close.
func (m *Mapping) Bytes() []byte {
	if m == nil {
		return nil
	}
	return m.data
}

// Size returns the length of the mapped region.
func (m *Mapping) Size() int64 {
	return int64(len(m.Bytes()))
}

// Close unmaps the memory and closes the underlying file. It is safe to
// call on a nil Mapping and is idempotent.
func (m *Mapping) Close() error {
	if m == nil {
		return nil
	}
	var err error
	if m.data != nil {
		err = unmapFile(m.data)
		m.data = nil
	}
	if m.f != nil {
		if closeErr := m.f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		m.f = nil
	}
	return err
}
