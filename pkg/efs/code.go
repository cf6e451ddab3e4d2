// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package efs

import (
	"errors"
	"fmt"

	"github.com/linuxboot/ecefs/pkg/secdata"
)

// Code is the outcome of the last digest load, with the values of the EC
// error list so it can be reported as is in host command responses.
type Code uint32

// Codes recorded by Refresh.
const (
	Success      = Code(0x0)
	Unknown      = Code(0x1)
	Integrity    = Code(0xb)    // EC_ERROR_CRC
	Malformed    = Code(0x100a) // EC_ERROR_VBOOT_DATA
	Incompatible = Code(0x100c) // EC_ERROR_VBOOT_DATA_INCOMPATIBLE
	Underrun     = Code(0x100d) // EC_ERROR_VBOOT_DATA_UNDERSIZED
)

func (c Code) String() string {
	switch c {
	case Success:
		return "success"
	case Unknown:
		return "unknown"
	case Integrity:
		return "integrity"
	case Malformed:
		return "malformed"
	case Incompatible:
		return "incompatible"
	case Underrun:
		return "underrun"
	}
	return fmt.Sprintf("code(0x%x)", uint32(c))
}

// CodeOf returns the Code describing err.
func CodeOf(err error) Code {
	switch {
	case err == nil:
		return Success
	case errors.Is(err, secdata.ErrUnderrun):
		return Underrun
	case errors.Is(err, secdata.ErrIncompatible):
		return Incompatible
	case errors.Is(err, secdata.ErrMalformed):
		return Malformed
	case errors.Is(err, secdata.ErrIntegrity):
		return Integrity
	}
	return Unknown
}
