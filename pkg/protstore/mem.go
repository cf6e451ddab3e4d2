// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package protstore

import (
	"sync"
)

// Mem is an in-memory Store. The zero value is an empty store.
type Mem struct {
	sync.Mutex

	areas map[uint32][]byte

	// Fail, when set, is returned by every Read.
	Fail error
	// Reads counts Read calls.
	Reads int
}

// NewMem returns a store holding a copy of the given areas.
func NewMem(areas map[uint32][]byte) *Mem {
	m := &Mem{}
	for index, data := range areas {
		m.Set(index, data)
	}
	return m
}

// Set stores a copy of data at index.
func (m *Mem) Set(index uint32, data []byte) {
	m.Lock()
	defer m.Unlock()

	if m.areas == nil {
		m.areas = make(map[uint32][]byte)
	}
	m.areas[index] = append([]byte(nil), data...)
}

// Delete undefines the area at index.
func (m *Mem) Delete(index uint32) {
	m.Lock()
	defer m.Unlock()

	delete(m.areas, index)
}

// Read implements Store.
func (m *Mem) Read(index uint32, size int) ([]byte, error) {
	m.Lock()
	defer m.Unlock()

	m.Reads++

	if err := checkSize(index, size); err != nil {
		return nil, err
	}
	if m.Fail != nil {
		return nil, &ReadError{Index: index, Size: size, Err: m.Fail}
	}

	data, ok := m.areas[index]
	if !ok {
		return nil, &ReadError{Index: index, Size: size, Err: ErrIndexNotFound}
	}
	if len(data) < size {
		return nil, &ReadError{Index: index, Size: size, Err: ErrShortRead}
	}

	return append([]byte(nil), data[:size]...), nil
}

var _ Store = (*Mem)(nil)
