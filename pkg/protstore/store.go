// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package protstore provides read access to the protected non-volatile
// storage of a security chip, addressed by logical index.
//
// Stores are read-only from the point of view of the trust logic. Reads are
// synchronous and bounded; retry and timeout policy belong to the
// implementation of the transport, not to the callers.
package protstore

import (
	"errors"
	"fmt"
)

// Store reads fixed-size areas of protected storage.
type Store interface {
	// Read returns exactly size bytes stored at index, or an error.
	Read(index uint32, size int) ([]byte, error)
}

var (
	// ErrIndexNotFound means no area is defined at the index.
	ErrIndexNotFound = errors.New("protected storage index not found")

	// ErrShortRead means the area holds fewer bytes than requested.
	ErrShortRead = errors.New("short read from protected storage")
)

// ReadError describes a failed read of one index.
type ReadError struct {
	Index uint32
	Size  int
	Err   error
}

func (err *ReadError) Error() string {
	return fmt.Sprintf("unable to read %d bytes at index 0x%x: %v", err.Size, err.Index, err.Err)
}

func (err *ReadError) Unwrap() error {
	return err.Err
}

func checkSize(index uint32, size int) error {
	if size <= 0 {
		return &ReadError{Index: index, Size: size, Err: fmt.Errorf("invalid size")}
	}
	return nil
}
