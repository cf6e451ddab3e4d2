// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package secdata

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	pkgbytes "github.com/linuxboot/ecefs/pkg/bytes"
)

// DigestSize is the size of the EC-RW digest.
const DigestSize = sha256.Size

// Digest is the SHA-256 digest of the EC-RW firmware.
type Digest [DigestSize]byte

// ParseDigest parses a digest from its hex representation.
func ParseDigest(s string) (Digest, error) {
	var d Digest
	b, err := hex.DecodeString(s)
	if err != nil {
		return d, fmt.Errorf("invalid digest '%s': %w", s, err)
	}
	if len(b) != DigestSize {
		return d, fmt.Errorf("invalid digest length: %d != %d", len(b), DigestSize)
	}
	copy(d[:], b)
	return d, nil
}

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// IsZero returns true for the all-zero digest of an unprovisioned space.
func (d Digest) IsZero() bool {
	return pkgbytes.IsZeroFilled(d[:])
}

// MarshalText implements encoding.TextMarshaler.
func (d Digest) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Digest) UnmarshalText(b []byte) error {
	v, err := ParseDigest(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
