// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package secdata

import (
	"github.com/linuxboot/ecefs/pkg/protstore"
)

// Reader loads the EC-RW digest from the kernel secdata kept in protected
// storage.
type Reader struct {
	Store protstore.Store
	Index uint32

	// Checksum overrides CRC8 when set.
	Checksum func([]byte) uint8
}

// NewReader returns a Reader of the kernel secdata index of store.
func NewReader(store protstore.Store) *Reader {
	return &Reader{
		Store: store,
		Index: KernelNVIndex,
	}
}

func (r *Reader) checksum(b []byte) uint8 {
	if r.Checksum != nil {
		return r.Checksum(b)
	}
	return CRC8(b)
}

// LoadDigest reads the structure and returns a copy of its EC hash.
//
// The checks are applied in order and the first failing one is returned:
// read (ErrUnderrun), version (ErrIncompatible), size (ErrMalformed) and
// CRC (ErrIntegrity). The CRC is not computed for an old or mis-sized
// structure. No retry is done.
func (r *Reader) LoadDigest() (Digest, error) {
	var digest Digest

	buf, err := r.Store.Read(r.Index, KernelSize)
	if err != nil {
		return digest, &ErrReadFailed{Index: r.Index, Err: err}
	}

	k, err := Parse(buf)
	if err != nil {
		return digest, err
	}

	if k.StructVersion < MinStructVersion {
		return digest, &ErrVersionTooOld{Version: k.StructVersion}
	}

	if k.StructSize != KernelSize {
		return digest, &ErrSizeMismatch{Size: k.StructSize, Expected: KernelSize}
	}

	covered, err := CRCRange.Slice(buf)
	if err != nil {
		return digest, err
	}
	if crc := r.checksum(covered); crc != k.CRC8 {
		return digest, &ErrCRCMismatch{Stored: k.CRC8, Computed: crc}
	}

	digest = k.ECHash
	return digest, nil
}
