// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hibdata

import (
	"fmt"

	"github.com/u-root/u-root/pkg/memio"
)

// DevMem is a Bank of consecutive 32-bit registers at a physical address,
// accessed through /dev/mem.
type DevMem struct {
	Base int64

	// In and Out default to memio.Read and memio.Write.
	In  func(addr int64, data memio.UintN) error
	Out func(addr int64, data memio.UintN) error
}

// NewDevMem returns a Bank at base.
func NewDevMem(base int64) *DevMem {
	return &DevMem{
		Base: base,
		In:   memio.Read,
		Out:  memio.Write,
	}
}

func (d *DevMem) addr(i Index) int64 {
	return d.Base + 4*int64(i)
}

// ReadWord implements Bank.
func (d *DevMem) ReadWord(i Index) (uint32, error) {
	if err := checkIndex(i); err != nil {
		return 0, err
	}
	var v memio.Uint32
	if err := d.In(d.addr(i), &v); err != nil {
		return 0, fmt.Errorf("unable to read %s at 0x%x: %w", i, d.addr(i), err)
	}
	return uint32(v), nil
}

// WriteWord implements Bank.
func (d *DevMem) WriteWord(i Index, v uint32) error {
	if err := checkIndex(i); err != nil {
		return err
	}
	data := memio.Uint32(v)
	if err := d.Out(d.addr(i), &data); err != nil {
		return fmt.Errorf("unable to write %s at 0x%x: %w", i, d.addr(i), err)
	}
	return nil
}

var _ Bank = (*DevMem)(nil)
