// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package secdata

import (
	"github.com/hashicorp/go-multierror"
)

// Validate reports every structural defect of the structure at once, for
// tooling. The trust decision uses Reader, which stops at the first one.
//
// The CRC is only checked when the version and the size allow to locate it.
func (k *Kernel) Validate() error {
	var result *multierror.Error

	layoutKnown := true
	if k.StructVersion < MinStructVersion {
		result = multierror.Append(result, &ErrVersionTooOld{Version: k.StructVersion})
		layoutKnown = false
	}
	if k.StructSize != KernelSize {
		result = multierror.Append(result, &ErrSizeMismatch{Size: k.StructSize, Expected: KernelSize})
		layoutKnown = false
	}
	if layoutKnown {
		if crc := k.ComputeCRC(); crc != k.CRC8 {
			result = multierror.Append(result, &ErrCRCMismatch{Stored: k.CRC8, Computed: crc})
		}
	}
	if k.ECHash.IsZero() {
		result = multierror.Append(result, ErrHashNotProvisioned{})
	}

	return result.ErrorOrNil()
}
