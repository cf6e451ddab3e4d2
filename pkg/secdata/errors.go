// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package secdata

import (
	"errors"
	"fmt"
)

// Classes of failures of LoadDigest. Every error returned by Reader
// matches exactly one of them with errors.Is.
var (
	// ErrUnderrun means the structure could not be read in full.
	ErrUnderrun = errors.New("secdata underrun")
	// ErrIncompatible means the structure version is too old to interpret.
	ErrIncompatible = errors.New("secdata incompatible")
	// ErrMalformed means the structure size is not the expected one.
	ErrMalformed = errors.New("secdata malformed")
	// ErrIntegrity means the CRC does not match.
	ErrIntegrity = errors.New("secdata integrity")
)

// ErrTooShort means fewer bytes than the structure size were available.
type ErrTooShort struct {
	Length   int
	Expected int
}

func (err *ErrTooShort) Error() string {
	return fmt.Sprintf("not enough bytes for kernel secdata: %d < %d", err.Length, err.Expected)
}

// Is implements errors.Is.
func (err *ErrTooShort) Is(target error) bool {
	return target == ErrUnderrun
}

// ErrReadFailed means the protected storage read failed.
type ErrReadFailed struct {
	Index uint32
	Err   error
}

func (err *ErrReadFailed) Error() string {
	return fmt.Sprintf("unable to read kernel secdata at index 0x%x: %v", err.Index, err.Err)
}

// Is implements errors.Is.
func (err *ErrReadFailed) Is(target error) bool {
	return target == ErrUnderrun
}

func (err *ErrReadFailed) Unwrap() error {
	return err.Err
}

// ErrVersionTooOld means StructVersion is below MinStructVersion.
type ErrVersionTooOld struct {
	Version uint8
}

func (err *ErrVersionTooOld) Error() string {
	return fmt.Sprintf("struct version is too old: 0x%02x < 0x%02x", err.Version, MinStructVersion)
}

// Is implements errors.Is.
func (err *ErrVersionTooOld) Is(target error) bool {
	return target == ErrIncompatible
}

// ErrSizeMismatch means StructSize is not the size of the structure.
type ErrSizeMismatch struct {
	Size     uint8
	Expected uint8
}

func (err *ErrSizeMismatch) Error() string {
	return fmt.Sprintf("struct size mismatch: %d != %d", err.Size, err.Expected)
}

// Is implements errors.Is.
func (err *ErrSizeMismatch) Is(target error) bool {
	return target == ErrMalformed
}

// ErrCRCMismatch means the stored CRC does not match the content.
type ErrCRCMismatch struct {
	Stored   uint8
	Computed uint8
}

func (err *ErrCRCMismatch) Error() string {
	return fmt.Sprintf("CRC mismatch: stored 0x%02x, computed 0x%02x", err.Stored, err.Computed)
}

// Is implements errors.Is.
func (err *ErrCRCMismatch) Is(target error) bool {
	return target == ErrIntegrity
}

// ErrHashNotProvisioned means the structure is valid but carries an
// all-zero EC hash. Only reported by Validate.
type ErrHashNotProvisioned struct{}

func (ErrHashNotProvisioned) Error() string {
	return "EC hash is not provisioned (all zeros)"
}
