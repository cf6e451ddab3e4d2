// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package protstore

import (
	"fmt"
	"io"

	"github.com/google/go-tpm/tpm2"
	"github.com/google/go-tpm/tpmutil"
)

// DefaultBlockSize is the largest chunk requested per TPM2_NV_Read.
const DefaultBlockSize = 256

// nvIndexFirst is the handle of the first NV index. Indices below it are
// offsets into the NV handle range.
const nvIndexFirst = 0x01000000

// NVHandle returns the TPM handle of the logical index.
func NVHandle(index uint32) tpmutil.Handle {
	if index < nvIndexFirst {
		index |= nvIndexFirst
	}
	return tpmutil.Handle(index)
}

// TPM is a Store reading NV indices of a TPM 2.0 device. Indices are read
// with their own authorization and an empty password, which is how the
// firmware-owned spaces are defined.
type TPM struct {
	RW io.ReadWriter

	// BlockSize overrides DefaultBlockSize when non-zero.
	BlockSize int
}

// OpenTPM opens the TPM character device at path.
func OpenTPM(path string) (*TPM, io.Closer, error) {
	rwc, err := tpm2.OpenTPM(path)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to open TPM '%s': %w", path, err)
	}
	return &TPM{RW: rwc}, rwc, nil
}

// Read implements Store.
func (t *TPM) Read(index uint32, size int) ([]byte, error) {
	if err := checkSize(index, size); err != nil {
		return nil, err
	}

	handle := NVHandle(index)

	pub, err := tpm2.NVReadPublic(t.RW, handle)
	if err != nil {
		return nil, &ReadError{Index: index, Size: size, Err: fmt.Errorf("%w: %v", ErrIndexNotFound, err)}
	}
	if int(pub.DataSize) < size {
		return nil, &ReadError{Index: index, Size: size, Err: ErrShortRead}
	}

	blockSize := t.BlockSize
	if blockSize == 0 {
		blockSize = DefaultBlockSize
	}

	data, err := tpm2.NVReadEx(t.RW, handle, handle, "", blockSize)
	if err != nil {
		return nil, &ReadError{Index: index, Size: size, Err: err}
	}
	if len(data) < size {
		return nil, &ReadError{Index: index, Size: size, Err: ErrShortRead}
	}

	return data[:size], nil
}

var _ Store = (*TPM)(nil)
