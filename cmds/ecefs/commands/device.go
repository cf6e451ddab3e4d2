// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/linuxboot/ecefs/pkg/efs"
	"github.com/linuxboot/ecefs/pkg/hibdata"
	"github.com/linuxboot/ecefs/pkg/log"
	"github.com/linuxboot/ecefs/pkg/protstore"
	"github.com/linuxboot/ecefs/pkg/resetcause"
)

// Device is a controller simulated in a state directory: the protected
// storage lives in "nvmem/", the always-on words in "hibdata" unless they
// are mapped from physical memory. Every command run is one boot of the
// controller.
type Device struct {
	Store *protstore.Dir
	Bank  hibdata.Bank

	tracker *resetcause.Tracker
}

// State is the option selecting the state directory.
type State struct {
	Dir    string `short:"s" long:"state" description:"path to the simulated device state directory" required:"true"`
	DevMem *int64 `long:"devmem" base:"0" description:"physical address of the always-on words, accessed through /dev/mem"`
}

// Device returns the simulated device.
func (s State) Device() (*Device, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("unable to create state directory '%s': %w", s.Dir, err)
	}

	var bank hibdata.Bank = &hibdata.FileBank{Path: filepath.Join(s.Dir, "hibdata")}
	if s.DevMem != nil {
		bank = hibdata.NewDevMem(*s.DevMem)
	}
	return &Device{
		Store: &protstore.Dir{Path: filepath.Join(s.Dir, "nvmem")},
		Bank:  bank,
	}, nil
}

// Tracker returns the reset flag bookkeeping of the device.
func (d *Device) Tracker() *resetcause.Tracker {
	if d.tracker == nil {
		d.tracker = resetcause.NewTracker(d.Bank, nil)
	}
	return d.tracker
}

// PowerOff clears the always-on words. Words mapped from physical memory
// only lose power with the machine.
func (d *Device) PowerOff() error {
	fb, ok := d.Bank.(*hibdata.FileBank)
	if !ok {
		return ErrArgs{Err: fmt.Errorf("cannot power off a %T bank", d.Bank)}
	}
	return fb.PowerOff()
}

// Boot runs the init sequence of the device and returns its trust state.
// A failed digest load is not an error here, it is part of the state.
func (d *Device) Boot() (*efs.Context, error) {
	tracker := d.Tracker()
	ctx, err := efs.New(efs.Config{
		Capable:    true,
		Store:      d.Store,
		Register:   hibdata.Word(d.Bank, hibdata.IndexEFS),
		ResetCause: tracker,
		Log:        log.DefaultLogger,
	})
	if err != nil {
		return nil, err
	}

	if flags, err := tracker.Flags(); err == nil {
		// no flags at all is an unknown cause, handled as cold
		kind := "cold"
		if flags != 0 && resetcause.IsWarm(flags) {
			kind = "warm"
		}
		log.Infof("%s reset: %s", kind, flags)
	}

	if err := ctx.Init(); err != nil && ctx.LastError() == efs.Success {
		return nil, fmt.Errorf("unable to boot: %w", err)
	}
	return ctx, nil
}
