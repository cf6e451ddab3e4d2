// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package efs implements the EC Early Firmware Selection (EC-EFS) trust
// state of the security chip: the EC-RW digest loaded from the kernel
// secdata, the outcome of that load, and the boot mode kept over hibernate.
//
// A Context is created once per boot and Init is called from the init
// sequence before application tasks start. After that, every operation
// locks the Context, so callers from several goroutines are serialized.
//
// Whether an unloaded digest blocks the boot is decided by the caller; no
// failure here is fatal.
package efs

import (
	"errors"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"

	"github.com/linuxboot/ecefs/pkg/hibdata"
	"github.com/linuxboot/ecefs/pkg/log"
	"github.com/linuxboot/ecefs/pkg/protstore"
	"github.com/linuxboot/ecefs/pkg/resetcause"
	"github.com/linuxboot/ecefs/pkg/secdata"
)

// Config describes the platform of a Context.
type Config struct {
	// Capable is false on boards without a link to the EC; Init is then a
	// no-op.
	Capable bool

	// Store is the protected storage holding the kernel secdata.
	Store protstore.Store
	// Index defaults to secdata.KernelNVIndex.
	Index uint32
	// Checksum defaults to secdata.CRC8.
	Checksum func([]byte) uint8

	// Register is the always-on word mirroring the boot mode.
	Register hibdata.Register
	// ResetCause tells whether this boot is a wake from hibernate.
	ResetCause resetcause.Source

	// Log defaults to log.DefaultLogger.
	Log log.Logger
}

// Context is the EC-EFS trust state.
type Context struct {
	sync.Mutex

	capable    bool
	reader     *secdata.Reader
	reg        hibdata.Register
	resetCause resetcause.Source
	log        log.Logger

	bootMode   BootMode
	hashLoaded bool
	lastError  Code
	// stale unless hashLoaded
	hash secdata.Digest
}

var errMissingPlatform = errors.New("missing platform component")

// New returns the trust state of a platform. The boot mode starts as
// Normal and no digest is loaded until Init or Refresh.
func New(cfg Config) (*Context, error) {
	c := &Context{
		capable:    cfg.Capable,
		reg:        cfg.Register,
		resetCause: cfg.ResetCause,
		log:        cfg.Log,
		bootMode:   Normal,
	}
	if c.log == nil {
		c.log = log.DefaultLogger
	}
	if !c.capable {
		return c, nil
	}

	switch {
	case cfg.Store == nil:
		return nil, fmt.Errorf("%w: protected store", errMissingPlatform)
	case cfg.Register == nil:
		return nil, fmt.Errorf("%w: always-on register", errMissingPlatform)
	case cfg.ResetCause == nil:
		return nil, fmt.Errorf("%w: reset cause", errMissingPlatform)
	}

	c.reader = secdata.NewReader(cfg.Store)
	if cfg.Index != 0 {
		c.reader.Index = cfg.Index
	}
	c.reader.Checksum = cfg.Checksum
	return c, nil
}

// Init restores the boot mode after a wake from hibernate, or resets it
// to Normal after any other reset, then loads the digest if it is not
// loaded yet.
//
// The returned error is informational and may hold both a register fault
// and a load failure: the outcome stays available through LastError and
// HashLoaded.
func (c *Context) Init() error {
	c.Lock()
	defer c.Unlock()

	if !c.capable {
		return nil
	}

	flags, err := c.resetCause.Flags()
	if err != nil {
		// without a reset cause this boot is handled as a cold one
		c.log.Warnf("unable to get the reset cause: %v", err)
		flags = 0
	}

	var result *multierror.Error

	// a register fault must not keep the digest from being loaded
	if flags&resetcause.Hibernate != 0 {
		err = c.restoreBootMode()
	} else {
		err = c.resetBootMode()
	}
	if err != nil {
		c.log.Warnf("%v", err)
		result = multierror.Append(result, err)
	}

	if !c.hashLoaded {
		if err := c.refresh(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// Refresh loads the digest again from protected storage.
//
// On success the digest is cached and marked loaded. On failure it is
// marked unloaded and the failure recorded; the cached bytes are kept but
// never handed out by Hash.
func (c *Context) Refresh() error {
	c.Lock()
	defer c.Unlock()

	return c.refresh()
}

func (c *Context) refresh() error {
	if c.reader == nil {
		return fmt.Errorf("%w: protected store", errMissingPlatform)
	}

	digest, err := c.reader.LoadDigest()
	c.lastError = CodeOf(err)
	if err != nil {
		c.hashLoaded = false
		c.log.Errorf("load_ec_hash error: 0x%x (%s): %v", uint32(c.lastError), c.lastError, err)
		return err
	}

	c.hash = digest
	c.hashLoaded = true
	c.log.Infof("EC hash loaded from index 0x%x: %s", c.reader.Index, digest)
	return nil
}

// Reset sets the boot mode back to Normal. The digest is not touched.
func (c *Context) Reset() error {
	c.Lock()
	defer c.Unlock()

	return c.resetBootMode()
}

// SetBootMode stores a new boot mode. Only the low 8 bits of mode are kept,
// the stored value is returned.
func (c *Context) SetBootMode(mode uint32) (BootMode, error) {
	c.Lock()
	defer c.Unlock()

	m := BootMode(mode & bootModeMask)
	if err := c.setBootMode(m); err != nil {
		return c.bootMode, err
	}
	return m, nil
}

// BootMode returns the current boot mode.
func (c *Context) BootMode() BootMode {
	c.Lock()
	defer c.Unlock()

	return c.bootMode
}

// HashLoaded returns true if the digest was loaded by the last refresh.
func (c *Context) HashLoaded() bool {
	c.Lock()
	defer c.Unlock()

	return c.hashLoaded
}

// Hash returns the cached digest. ok is false, and the digest zero, when
// no digest is loaded.
func (c *Context) Hash() (digest secdata.Digest, ok bool) {
	c.Lock()
	defer c.Unlock()

	if !c.hashLoaded {
		return secdata.Digest{}, false
	}
	return c.hash, true
}

// LastError returns the outcome of the last refresh.
func (c *Context) LastError() Code {
	c.Lock()
	defer c.Unlock()

	return c.lastError
}

// Status returns a consistent snapshot of the trust state.
func (c *Context) Status() Status {
	c.Lock()
	defer c.Unlock()

	s := Status{
		BootMode:   c.bootMode,
		HashLoaded: c.hashLoaded,
		LastError:  c.lastError,
	}
	if c.hashLoaded {
		hash := c.hash
		s.Hash = &hash
	}
	return s
}
