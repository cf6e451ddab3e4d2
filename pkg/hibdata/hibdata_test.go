// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hibdata

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/u-root/u-root/pkg/memio"
)

func testBank(t *testing.T, b Bank) {
	for i := IndexScratchpad; i < NumWords; i++ {
		v, err := b.ReadWord(i)
		require.NoError(t, err)
		require.Zero(t, v, "word %s", i)
	}

	require.NoError(t, b.WriteWord(IndexEFS, 0xdeadbe42))
	require.NoError(t, b.WriteWord(IndexScratchpad, 7))

	v, err := b.ReadWord(IndexEFS)
	require.NoError(t, err)
	require.Equal(t, uint32(0xdeadbe42), v)

	r := Word(b, IndexEFS)
	require.NoError(t, UpdateBits(r, 0xff, 0x1234))
	v, err = r.Read()
	require.NoError(t, err)
	require.Equal(t, uint32(0xdeadbe34), v)

	v, err = b.ReadWord(IndexScratchpad)
	require.NoError(t, err)
	require.Equal(t, uint32(7), v)

	var invalid *ErrInvalidIndex
	_, err = b.ReadWord(NumWords)
	require.True(t, errors.As(err, &invalid))
	require.True(t, errors.As(b.WriteWord(-1, 0), &invalid))
}

func TestMemBank(t *testing.T) {
	b := &MemBank{}
	testBank(t, b)
	assert.Equal(t, 3, b.Writes)

	b.PowerOff()
	v, err := b.ReadWord(IndexEFS)
	require.NoError(t, err)
	require.Zero(t, v)
}

func TestFileBank(t *testing.T) {
	b := &FileBank{Path: filepath.Join(t.TempDir(), "hibdata")}
	testBank(t, b)

	// another instance on the same file sees the same words
	other := &FileBank{Path: b.Path}
	v, err := other.ReadWord(IndexEFS)
	require.NoError(t, err)
	require.Equal(t, uint32(0xdeadbe34), v)

	require.NoError(t, b.PowerOff())
	require.NoError(t, b.PowerOff())
	v, err = other.ReadWord(IndexEFS)
	require.NoError(t, err)
	require.Zero(t, v)

	require.NoError(t, os.WriteFile(b.Path, []byte{1, 2, 3}, 0o644))
	_, err = b.ReadWord(IndexEFS)
	require.Error(t, err)
}

func TestDevMem(t *testing.T) {
	mem := map[int64]uint32{}
	d := &DevMem{
		Base: 0x40000000,
		In: func(addr int64, data memio.UintN) error {
			v, ok := data.(*memio.Uint32)
			if !ok {
				return errors.New("unexpected access width")
			}
			*v = memio.Uint32(mem[addr])
			return nil
		},
		Out: func(addr int64, data memio.UintN) error {
			v, ok := data.(*memio.Uint32)
			if !ok {
				return errors.New("unexpected access width")
			}
			mem[addr] = uint32(*v)
			return nil
		},
	}
	testBank(t, d)
	assert.Equal(t, uint32(0xdeadbe34), mem[0x40000008])
	assert.Equal(t, uint32(7), mem[0x40000000])

	d.Out = func(int64, memio.UintN) error { return errors.New("bus fault") }
	require.Error(t, d.WriteWord(IndexEFS, 1))
}
