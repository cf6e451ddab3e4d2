// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package efs

import (
	"fmt"

	"github.com/linuxboot/ecefs/pkg/hibdata"
)

// BootMode is the boot policy code. Only Normal has a meaning here; other
// values belong to the security policy and are stored as opaque bytes.
type BootMode uint8

// Normal is the default boot mode.
const Normal = BootMode(0)

// bits of the always-on word holding the boot mode
const bootModeMask = 0xff

func (m BootMode) String() string {
	if m == Normal {
		return "NORMAL"
	}
	return fmt.Sprintf("0x%02x", uint8(m))
}

// setBootMode writes the mode through to the always-on word, then commits
// it in memory. On a register failure the in-memory mode is left as is, so
// both never disagree.
func (c *Context) setBootMode(mode BootMode) error {
	if err := hibdata.UpdateBits(c.reg, bootModeMask, uint32(mode)); err != nil {
		return fmt.Errorf("unable to store boot mode %s: %w", mode, err)
	}
	c.bootMode = mode
	return nil
}

func (c *Context) resetBootMode() error {
	return c.setBootMode(Normal)
}

// restoreBootMode loads the mode kept in the always-on word over hibernate.
// The register is not written.
func (c *Context) restoreBootMode() error {
	v, err := c.reg.Read()
	if err != nil {
		return fmt.Errorf("unable to restore boot mode: %w", err)
	}
	c.bootMode = BootMode(v & bootModeMask)
	return nil
}
