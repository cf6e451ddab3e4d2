// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package secdata

import (
	"github.com/sigurn/crc8"
)

// CRC-8 with polynomial x^8 + x^2 + x + 1, no reflection, zero init and
// xorout, as used by the firmware for secdata.
var crcTable = crc8.MakeTable(crc8.CRC8)

// CRC8 returns the checksum of b.
func CRC8(b []byte) uint8 {
	return crc8.Checksum(b, crcTable)
}
