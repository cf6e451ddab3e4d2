// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package flashmap locates the regions of an EC flash image through its
// FMAP and computes the digest of the RW firmware stored in it.
package flashmap

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	pkgbytes "github.com/linuxboot/ecefs/pkg/bytes"
)

// Signature starts every FMAP header.
var Signature = []byte("__FMAP__")

// AreaRW is the name of the area holding the EC RW firmware.
const AreaRW = "EC_RW"

// Area flags.
const (
	AreaStatic = 1 << iota
	AreaCompressed
	AreaReadOnly
)

const nameSize = 32

// Name is a NUL padded area or map name.
type Name [nameSize]byte

func (n Name) String() string {
	return strings.TrimRight(string(n[:]), "\x00")
}

// Header is the encoded FMAP header.
type Header struct {
	Signature [8]byte
	VerMajor  uint8
	VerMinor  uint8
	Base      uint64
	Size      uint32
	Name      Name
	NAreas    uint16
}

// Area is one region of the flash.
type Area struct {
	Offset uint32
	Size   uint32
	Name   Name
	Flags  uint16
}

// Range returns the bytes covered by the area.
func (a Area) Range() pkgbytes.Range {
	return pkgbytes.Range{Offset: uint64(a.Offset), Length: uint64(a.Size)}
}

// Map is a parsed FMAP.
type Map struct {
	Header
	Areas []Area

	// Start is the offset of the header in the image.
	Start uint64
}

var (
	// ErrNotFound means the image has no valid FMAP.
	ErrNotFound = errors.New("cannot find FMAP signature")

	// ErrMultiple means the image has more than one valid FMAP.
	ErrMultiple = errors.New("found multiple FMAPs")
)

// ErrAreaNotFound is returned when no area has the requested name.
type ErrAreaNotFound struct {
	Name string
}

func (err *ErrAreaNotFound) Error() string {
	return fmt.Sprintf("FMAP area %q not found", err.Name)
}

func (h *Header) valid() bool {
	return h.VerMajor == 1 && h.Size != 0 && bytes.IndexByte(h.Name[:], 0) >= 0
}

// Parse finds the only valid FMAP of the image.
func Parse(image []byte) (*Map, error) {
	var found *Map
	for start := 0; start < len(image); start += len(Signature) {
		next := bytes.Index(image[start:], Signature)
		if next == -1 {
			break
		}
		start += next

		r := bytes.NewReader(image[start:])
		m := &Map{Start: uint64(start)}
		// a signature too close to the end is a stray byte pattern
		if err := binary.Read(r, binary.LittleEndian, &m.Header); err != nil || !m.valid() {
			continue
		}
		if found != nil {
			return nil, ErrMultiple
		}

		m.Areas = make([]Area, m.NAreas)
		if err := binary.Read(r, binary.LittleEndian, m.Areas); err != nil {
			return nil, fmt.Errorf("truncated FMAP areas at %#x: %w", start, err)
		}
		found = m
	}
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

// Area returns the area with the given name.
func (m *Map) Area(name string) (Area, error) {
	for _, a := range m.Areas {
		if a.Name.String() == name {
			return a, nil
		}
	}
	return Area{}, &ErrAreaNotFound{Name: name}
}

// ReadArea returns the contents of the named area.
func (m *Map) ReadArea(image []byte, name string) ([]byte, error) {
	a, err := m.Area(name)
	if err != nil {
		return nil, err
	}
	b, err := a.Range().Slice(image)
	if err != nil {
		return nil, fmt.Errorf("area %q: %w", name, err)
	}
	return b, nil
}

// TrimErased drops the trailing erased (0xff) bytes of a firmware area.
func TrimErased(b []byte) []byte {
	end := len(b)
	for end > 0 && b[end-1] == 0xff {
		end--
	}
	return b[:end]
}

// Digest returns the SHA-256 of the named area. With trim, the trailing
// erased bytes are not hashed.
func Digest(image []byte, area string, trim bool) ([sha256.Size]byte, error) {
	m, err := Parse(image)
	if err != nil {
		return [sha256.Size]byte{}, err
	}
	b, err := m.ReadArea(image, area)
	if err != nil {
		return [sha256.Size]byte{}, err
	}
	if pkgbytes.IsErased(b) {
		return [sha256.Size]byte{}, fmt.Errorf("area %q is erased", area)
	}
	if trim {
		b = TrimErased(b)
	}
	return sha256.Sum256(b), nil
}
