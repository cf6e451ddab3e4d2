// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package efs

import (
	"encoding/binary"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/linuxboot/ecefs/pkg/secdata"
)

// ResponseSize is the size of the encoded Status.
const ResponseSize = 8

const responseFlagHashLoaded = 1 << 0

// Status is a snapshot of the trust state.
type Status struct {
	BootMode   BootMode `json:"boot_mode"`
	HashLoaded bool     `json:"hash_loaded"`
	LastError  Code     `json:"last_error"`
	// nil unless HashLoaded
	Hash *secdata.Digest `json:"hash,omitempty"`
}

// Response encodes the status for a host command response:
//
//	[0]   boot mode
//	[1]   flags, bit 0 set when the hash is loaded
//	[2:4] reserved
//	[4:8] last error, little endian
func (s Status) Response() []byte {
	b := make([]byte, ResponseSize)
	b[0] = uint8(s.BootMode)
	if s.HashLoaded {
		b[1] |= responseFlagHashLoaded
	}
	binary.LittleEndian.PutUint32(b[4:], uint32(s.LastError))
	return b
}

// ParseResponse decodes a host command response. The hash is not part of
// the response.
func ParseResponse(b []byte) (Status, error) {
	if len(b) < ResponseSize {
		return Status{}, fmt.Errorf("response too short: %d < %d", len(b), ResponseSize)
	}
	return Status{
		BootMode:   BootMode(b[0]),
		HashLoaded: b[1]&responseFlagHashLoaded != 0,
		LastError:  Code(binary.LittleEndian.Uint32(b[4:])),
	}, nil
}

// Table renders the status as a table.
func (s Status) Table() string {
	hash := "-"
	if s.Hash != nil {
		hash = s.Hash.String()
	}

	t := table.NewWriter()
	t.SetTitle("EC-EFS")
	t.AppendRows([]table.Row{
		{"Boot Mode", s.BootMode.String()},
		{"Hash Loaded", s.HashLoaded},
		{"Last Error", fmt.Sprintf("0x%x (%s)", uint32(s.LastError), s.LastError)},
		{"EC Hash", hash},
	})
	return t.Render()
}
