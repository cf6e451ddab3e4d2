// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resetcause

import (
	"fmt"
	"sync"

	"github.com/linuxboot/ecefs/pkg/hibdata"
)

// Option describes an intentional reset.
type Option uint

// Options of Tracker.Save.
const (
	// PreserveFlags carries the current flags over the reset.
	PreserveFlags = Option(1 << iota)
	// LeaveAPOff keeps the AP off after the reset.
	LeaveAPOff
	// HardReset requests a hard reset instead of a soft one.
	HardReset
	// WakeFromHibernate marks a hibernate entry.
	WakeFromHibernate
)

// Tracker keeps the reset flags of intentional resets in an always-on
// word, and merges them with the hardware status on the next boot.
type Tracker struct {
	sync.Mutex

	// Saved is the always-on word holding the flags over a reset.
	Saved hibdata.Register
	// Hardware returns the causes latched by the hardware, may be nil.
	Hardware func() (Flags, error)

	detected bool
	flags    Flags
}

// NewTracker returns a Tracker saving the flags into bank.
func NewTracker(bank hibdata.Bank, hw func() (Flags, error)) *Tracker {
	return &Tracker{
		Saved:    hibdata.Word(bank, hibdata.IndexSavedResetFlags),
		Hardware: hw,
	}
}

// Flags implements Source. The first call consumes the saved word, later
// calls return the same result.
func (t *Tracker) Flags() (Flags, error) {
	t.Lock()
	defer t.Unlock()

	if t.detected {
		return t.flags, nil
	}

	var hw Flags
	if t.Hardware != nil {
		var err error
		if hw, err = t.Hardware(); err != nil {
			return 0, fmt.Errorf("unable to read hardware reset status: %w", err)
		}
	}

	saved, err := t.Saved.Read()
	if err != nil {
		return 0, fmt.Errorf("unable to read saved reset flags: %w", err)
	}
	if err := t.Saved.Write(0); err != nil {
		return 0, fmt.Errorf("unable to clear saved reset flags: %w", err)
	}

	flags := Flags(saved)
	// intentional resets go through the watchdog too
	if hw&Watchdog != 0 && flags&(Soft|Hard|Hibernate) != 0 {
		hw &^= Watchdog
	}
	flags |= hw

	t.flags = flags
	t.detected = true
	return flags, nil
}

// Save records the flags describing an intentional reset, to be reported
// by the next boot. current is the flag set of the running boot, only
// kept with PreserveFlags.
func (t *Tracker) Save(current Flags, opts Option) error {
	var flags Flags

	if opts&PreserveFlags != 0 {
		flags = current | Preserved
	}
	if opts&LeaveAPOff != 0 {
		flags |= APOff
	}

	switch {
	case opts&WakeFromHibernate != 0:
		flags |= Hibernate
	case opts&HardReset != 0:
		flags |= Hard
	default:
		flags |= Soft
	}

	if err := t.Saved.Write(uint32(flags)); err != nil {
		return fmt.Errorf("unable to save reset flags: %w", err)
	}
	return nil
}
