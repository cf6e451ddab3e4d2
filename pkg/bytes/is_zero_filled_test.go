// Copyright 2019 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bytes

import (
	"fmt"
	"testing"
)

func TestIsZeroFilled(t *testing.T) {
	for _, tc := range []struct {
		in   []byte
		zero bool
		ff   bool
	}{
		{in: nil, zero: true, ff: false},
		{in: []byte{0}, zero: true, ff: false},
		{in: make([]byte, 32), zero: true, ff: false},
		{in: []byte{0, 0, 1}, zero: false, ff: false},
		{in: []byte{0xff, 0xff}, zero: false, ff: true},
		{in: []byte{0xff, 0xfe}, zero: false, ff: false},
	} {
		t.Run(fmt.Sprintf("%x", tc.in), func(t *testing.T) {
			if got := IsZeroFilled(tc.in); got != tc.zero {
				t.Errorf("IsZeroFilled(%x) = %v; want %v", tc.in, got, tc.zero)
			}
			if got := IsErased(tc.in); got != tc.ff {
				t.Errorf("IsErased(%x) = %v; want %v", tc.in, got, tc.ff)
			}
		})
	}
}
