// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hibdata provides access to the always-on registers of an
// embedded controller: a few words kept alive through hibernate but lost
// on a full power removal.
//
// Accesses are single-word; no atomicity is provided across words or
// across a read-modify-write sequence.
package hibdata

import (
	"fmt"
)

// Register is one always-on word.
type Register interface {
	Read() (uint32, error)
	Write(v uint32) error
}

// Index names a word of a Bank.
type Index int

// Words of the hibernate data bank.
const (
	// IndexScratchpad is the general purpose scratchpad.
	IndexScratchpad = Index(iota)
	// IndexSavedResetFlags keeps the reset flags over an intentional reset.
	IndexSavedResetFlags
	// IndexEFS mirrors the EC-EFS context (boot mode in the low byte).
	IndexEFS

	// NumWords is the size of a bank.
	NumWords
)

func (i Index) String() string {
	switch i {
	case IndexScratchpad:
		return "scratchpad"
	case IndexSavedResetFlags:
		return "saved-reset-flags"
	case IndexEFS:
		return "efs"
	}
	return fmt.Sprintf("index(%d)", int(i))
}

// Bank is a set of always-on words.
type Bank interface {
	ReadWord(i Index) (uint32, error)
	WriteWord(i Index, v uint32) error
}

// ErrInvalidIndex means the word does not exist in the bank.
type ErrInvalidIndex struct {
	Index Index
}

func (err *ErrInvalidIndex) Error() string {
	return fmt.Sprintf("invalid hibernate data word: %s", err.Index)
}

func checkIndex(i Index) error {
	if i < 0 || i >= NumWords {
		return &ErrInvalidIndex{Index: i}
	}
	return nil
}

// Word returns the Register view of one word of b.
func Word(b Bank, i Index) Register {
	return word{bank: b, index: i}
}

type word struct {
	bank  Bank
	index Index
}

func (w word) Read() (uint32, error) {
	return w.bank.ReadWord(w.index)
}

func (w word) Write(v uint32) error {
	return w.bank.WriteWord(w.index, v)
}

// UpdateBits replaces the bits of r selected by mask with the ones of v,
// leaving the other bits untouched.
func UpdateBits(r Register, mask, v uint32) error {
	old, err := r.Read()
	if err != nil {
		return err
	}
	return r.Write(old&^mask | v&mask)
}
