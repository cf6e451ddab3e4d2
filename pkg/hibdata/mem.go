// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hibdata

import (
	"sync"
)

// MemBank is an in-memory Bank standing for the always-on power domain.
type MemBank struct {
	sync.Mutex

	words [NumWords]uint32

	// Writes counts WriteWord calls.
	Writes int
}

// ReadWord implements Bank.
func (m *MemBank) ReadWord(i Index) (uint32, error) {
	if err := checkIndex(i); err != nil {
		return 0, err
	}
	m.Lock()
	defer m.Unlock()
	return m.words[i], nil
}

// WriteWord implements Bank.
func (m *MemBank) WriteWord(i Index, v uint32) error {
	if err := checkIndex(i); err != nil {
		return err
	}
	m.Lock()
	defer m.Unlock()
	m.words[i] = v
	m.Writes++
	return nil
}

// PowerOff models a full power removal: every word is lost.
func (m *MemBank) PowerOff() {
	m.Lock()
	defer m.Unlock()
	m.words = [NumWords]uint32{}
}

var _ Bank = (*MemBank)(nil)
