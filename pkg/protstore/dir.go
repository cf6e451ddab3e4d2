// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package protstore

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Dir is a Store backed by a directory holding one file per index, named
// after FileName. It emulates a security chip for host-side tooling.
type Dir struct {
	Path string
}

// FileName returns the name of the file holding the area at index.
func FileName(index uint32) string {
	return fmt.Sprintf("0x%08x.bin", index)
}

// Read implements Store.
func (d *Dir) Read(index uint32, size int) ([]byte, error) {
	if err := checkSize(index, size); err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(d.Path, FileName(index)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = ErrIndexNotFound
		}
		return nil, &ReadError{Index: index, Size: size, Err: err}
	}
	defer f.Close()

	buf := make([]byte, size)
	if _, err := io.ReadFull(f, buf); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			err = ErrShortRead
		}
		return nil, &ReadError{Index: index, Size: size, Err: err}
	}

	return buf, nil
}

// Write defines the area at index. Only tooling writes to a Dir store; the
// trust logic never does.
func (d *Dir) Write(index uint32, data []byte) error {
	if err := os.MkdirAll(d.Path, 0o755); err != nil {
		return fmt.Errorf("unable to create store directory '%s': %w", d.Path, err)
	}

	path := filepath.Join(d.Path, FileName(index))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("unable to write index 0x%x to '%s': %w", index, path, err)
	}
	return nil
}

var _ Store = (*Dir)(nil)
