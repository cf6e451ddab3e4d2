// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package secdata

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/linuxboot/ecefs/pkg/protstore"
)

type countingCRC struct {
	calls int
}

func (c *countingCRC) sum(b []byte) uint8 {
	c.calls++
	return CRC8(b)
}

func newTestReader(blob []byte) (*Reader, *protstore.Mem, *countingCRC) {
	store := protstore.NewMem(map[uint32][]byte{KernelNVIndex: blob})
	crc := &countingCRC{}
	r := NewReader(store)
	r.Checksum = crc.sum
	return r, store, crc
}

func TestLoadDigest(t *testing.T) {
	var hash Digest
	copy(hash[:], bytes.Repeat([]byte{0xaa}, DigestSize))

	r, _, crc := newTestReader(NewKernel(hash, 0).Bytes())
	got, err := r.LoadDigest()
	require.NoError(t, err)
	require.Equal(t, hash, got)
	require.Equal(t, 1, crc.calls)
}

func TestLoadDigestReadsKernelIndex(t *testing.T) {
	store := protstore.NewMem(map[uint32][]byte{
		KernelNVIndex + 1: NewKernel(sampleHash(), 0).Bytes(),
	})
	_, err := NewReader(store).LoadDigest()
	require.True(t, errors.Is(err, ErrUnderrun))
	require.True(t, errors.Is(err, protstore.ErrIndexNotFound))
}

func TestLoadDigestErrors(t *testing.T) {
	valid := NewKernel(sampleHash(), 0)

	for _, tc := range []struct {
		name      string
		blob      func() []byte
		fail      error
		want      error
		crcCalled bool
	}{
		{
			name: "read_failure",
			blob: valid.Bytes,
			fail: errors.New("transport"),
			want: ErrUnderrun,
		},
		{
			name: "short",
			blob: func() []byte { return valid.Bytes()[:KernelSize-1] },
			want: ErrUnderrun,
		},
		{
			name: "old_version_with_valid_crc",
			blob: func() []byte {
				k := *valid
				k.StructVersion = MinStructVersion - 1
				k.Seal()
				return k.Bytes()
			},
			want: ErrIncompatible,
		},
		{
			name: "old_version_and_wrong_size",
			blob: func() []byte {
				k := *valid
				k.StructVersion = 0x02
				k.StructSize = 13
				return k.Bytes()
			},
			want: ErrIncompatible,
		},
		{
			name: "size_too_small",
			blob: func() []byte {
				k := *valid
				k.StructSize = KernelSize - 1
				k.Seal()
				return k.Bytes()
			},
			want: ErrMalformed,
		},
		{
			name: "size_zero_padded",
			blob: func() []byte {
				k := *valid
				k.StructSize = KernelSize + 4
				return k.Bytes()
			},
			want: ErrMalformed,
		},
		{
			name: "bad_crc",
			blob: func() []byte {
				k := *valid
				k.CRC8++
				return k.Bytes()
			},
			want:      ErrIntegrity,
			crcCalled: true,
		},
		{
			name: "newer_minor_version",
			blob: func() []byte {
				k := *valid
				k.StructVersion = 0x11
				k.Seal()
				return k.Bytes()
			},
			want:      nil,
			crcCalled: true,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r, store, crc := newTestReader(tc.blob())
			store.Fail = tc.fail

			got, err := r.LoadDigest()
			if tc.want == nil {
				require.NoError(t, err)
				require.Equal(t, sampleHash(), got)
			} else {
				require.Error(t, err)
				require.True(t, errors.Is(err, tc.want), "unexpected error: %v", err)
				for _, other := range []error{ErrUnderrun, ErrIncompatible, ErrMalformed, ErrIntegrity} {
					if other != tc.want {
						require.False(t, errors.Is(err, other), "%v also matches %v", err, other)
					}
				}
				require.Equal(t, Digest{}, got)
			}
			require.Equal(t, tc.crcCalled, crc.calls > 0)
			require.Equal(t, 1, store.Reads)
		})
	}
}

func TestLoadDigestDetectsEverySingleBitFlip(t *testing.T) {
	blob := NewKernel(sampleHash(), 0x12345678).Bytes()

	for idx := CRCRange.Offset; idx < CRCRange.End(); idx++ {
		for bit := 0; bit < 8; bit++ {
			t.Run(fmt.Sprintf("byte%d_bit%d", idx, bit), func(t *testing.T) {
				corrupted := append([]byte(nil), blob...)
				corrupted[idx] ^= 1 << bit

				r, _, _ := newTestReader(corrupted)
				_, err := r.LoadDigest()
				require.True(t, errors.Is(err, ErrIntegrity), "unexpected error: %v", err)
			})
		}
	}
}
