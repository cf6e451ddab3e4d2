// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package secdata implements parsing and validation of the kernel secure
// data ("secdata kernel") structure kept by the security chip in protected
// NV storage, and extraction of the EC-RW digest it carries.
//
// The structure is owned by the security chip and by the AP firmware which
// provisions it; this package only reads it.
package secdata

import (
	"bytes"
	"encoding/binary"
	"fmt"

	pkgbytes "github.com/linuxboot/ecefs/pkg/bytes"
)

// constants of the kernel secdata v1.0 layout
const (
	// KernelNVIndex is the protected storage index of the kernel secdata.
	KernelNVIndex = 0x1008

	// KernelSize is the size in bytes of the v1.x structure.
	KernelSize = 40

	// MinStructVersion is the oldest layout this package can interpret,
	// 0x10 is v1.0. Older layouts place the CRC at another offset.
	MinStructVersion = 0x10

	// StructVersion10 is the version written by NewKernel.
	StructVersion10 = 0x10

	crcOffset = 2
)

// CRCRange is the part of the structure covered by the CRC: everything
// from the first field after the CRC byte up to the end of the structure.
var CRCRange = pkgbytes.Range{
	Offset: crcOffset + 1,
	Length: KernelSize - crcOffset - 1,
}

// Kernel is the kernel secdata v1.x structure, little endian.
type Kernel struct {
	// high nibble is the major version, low nibble the minor
	StructVersion uint8
	StructSize    uint8
	CRC8          uint8
	// reserved in the first v1.0 revisions
	Flags          uint8
	KernelVersions uint32
	ECHash         Digest
}

// NewKernel returns a valid v1.0 structure carrying hash.
func NewKernel(hash Digest, kernelVersions uint32) *Kernel {
	k := &Kernel{
		StructVersion:  StructVersion10,
		StructSize:     KernelSize,
		KernelVersions: kernelVersions,
		ECHash:         hash,
	}
	k.Seal()
	return k
}

// Parse decodes the structure from the beginning of b. Parse does not
// validate anything but the length, see Validate and Reader.
func Parse(b []byte) (*Kernel, error) {
	if len(b) < KernelSize {
		return nil, &ErrTooShort{Length: len(b), Expected: KernelSize}
	}

	var k Kernel
	if err := binary.Read(bytes.NewReader(b[:KernelSize]), binary.LittleEndian, &k); err != nil {
		return nil, fmt.Errorf("unable to decode kernel secdata: %w", err)
	}
	return &k, nil
}

// Bytes encodes the structure.
func (k *Kernel) Bytes() []byte {
	buf := new(bytes.Buffer)
	// writes to a bytes.Buffer of a fixed-size struct cannot fail
	_ = binary.Write(buf, binary.LittleEndian, k)
	return buf.Bytes()
}

// MajorVersion returns the major part of StructVersion.
func (k *Kernel) MajorVersion() uint8 {
	return k.StructVersion >> 4
}

// MinorVersion returns the minor part of StructVersion.
func (k *Kernel) MinorVersion() uint8 {
	return k.StructVersion & 0x0f
}

// ComputeCRC returns the CRC-8 of the bytes covered by CRCRange.
func (k *Kernel) ComputeCRC() uint8 {
	covered, _ := CRCRange.Slice(k.Bytes())
	return CRC8(covered)
}

// Seal stores the CRC matching the current content.
func (k *Kernel) Seal() {
	k.CRC8 = k.ComputeCRC()
}
