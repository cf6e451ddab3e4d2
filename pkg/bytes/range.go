// Copyright 2019 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bytes contains helpers to address parts of fixed-layout
// structures.
package bytes

import (
	"fmt"
)

// Range is a contiguous part of a byte slice, `Offset` inclusive and
// `Offset+Length` exclusive.
type Range struct {
	Offset uint64
	Length uint64
}

func (r Range) String() string {
	return fmt.Sprintf(`{"Offset":"0x%x", "Length":"0x%x"}`, r.Offset, r.Length)
}

// End returns the first index after the range.
func (r Range) End() uint64 {
	return r.Offset + r.Length
}

// Contains returns true if the index is covered by the range.
func (r Range) Contains(index uint64) bool {
	// The same as usual slice indices works:
	//
	//     slice[Offset:End()]
	return r.Offset <= index && index < r.End()
}

// ErrOutOfBounds means the range does not fit into the slice.
type ErrOutOfBounds struct {
	Range  Range
	Length uint64
}

func (err *ErrOutOfBounds) Error() string {
	return fmt.Sprintf("range %s is outside of the bounds: %d > %d",
		err.Range, err.Range.End(), err.Length)
}

// Slice returns the bytes from `b` referenced by the range. The result
// shares memory with `b`.
func (r Range) Slice(b []byte) ([]byte, error) {
	if r.End() < r.Offset || r.End() > uint64(len(b)) {
		return nil, &ErrOutOfBounds{Range: r, Length: uint64(len(b))}
	}
	return b[r.Offset:r.End()], nil
}
