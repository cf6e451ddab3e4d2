// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hibdata

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// FileBank is a Bank persisted to a file, so that a simulated controller
// keeps its always-on words between process runs. A missing file reads as
// a powered-off bank.
type FileBank struct {
	Path string
}

func (f *FileBank) load() ([NumWords]uint32, error) {
	var words [NumWords]uint32

	b, err := os.ReadFile(f.Path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return words, nil
	case err != nil:
		return words, fmt.Errorf("unable to read hibernate data '%s': %w", f.Path, err)
	case len(b) != 4*int(NumWords):
		return words, fmt.Errorf("invalid hibernate data '%s': %d bytes", f.Path, len(b))
	}

	for i := range words {
		words[i] = binary.LittleEndian.Uint32(b[4*i:])
	}
	return words, nil
}

func (f *FileBank) store(words [NumWords]uint32) error {
	b := make([]byte, 4*NumWords)
	for i, w := range words {
		binary.LittleEndian.PutUint32(b[4*i:], w)
	}
	if err := os.WriteFile(f.Path, b, 0o644); err != nil {
		return fmt.Errorf("unable to write hibernate data '%s': %w", f.Path, err)
	}
	return nil
}

// ReadWord implements Bank.
func (f *FileBank) ReadWord(i Index) (uint32, error) {
	if err := checkIndex(i); err != nil {
		return 0, err
	}
	words, err := f.load()
	if err != nil {
		return 0, err
	}
	return words[i], nil
}

// WriteWord implements Bank.
func (f *FileBank) WriteWord(i Index, v uint32) error {
	if err := checkIndex(i); err != nil {
		return err
	}
	words, err := f.load()
	if err != nil {
		return err
	}
	words[i] = v
	return f.store(words)
}

// PowerOff removes the backing file.
func (f *FileBank) PowerOff() error {
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("unable to remove hibernate data '%s': %w", f.Path, err)
	}
	return nil
}

var _ Bank = (*FileBank)(nil)
