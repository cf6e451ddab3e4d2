// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxboot/ecefs/pkg/protstore"
	"github.com/linuxboot/ecefs/pkg/secdata"
)

func testKernel() *secdata.Kernel {
	var hash secdata.Digest
	for i := range hash {
		hash[i] = byte(i)
	}
	return secdata.NewKernel(hash, 0x00010001)
}

func TestRunSummary(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(&out, testKernel().Bytes(), false, true))
	assert.Contains(t, out.String(), "Struct Version : 1.0 (0x10)")
	assert.True(t, strings.HasSuffix(out.String(), "Status         : OK\n"))
}

func TestRunJSON(t *testing.T) {
	var out bytes.Buffer
	want := testKernel()
	require.NoError(t, run(&out, want.Bytes(), true, false))

	var got secdata.Kernel
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, *want, got)
}

func TestRunVerify(t *testing.T) {
	k := testKernel()
	k.CRC8++

	var out bytes.Buffer
	require.NoError(t, run(&out, k.Bytes(), false, false))
	assert.Contains(t, out.String(), "INVALID")

	out.Reset()
	err := run(&out, k.Bytes(), false, true)
	assert.True(t, errors.Is(err, secdata.ErrIntegrity), err)
}

func TestRunTooShort(t *testing.T) {
	err := run(&bytes.Buffer{}, make([]byte, secdata.KernelSize-1), false, false)
	assert.Error(t, err)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secdata.bin")
	want := testKernel().Bytes()
	require.NoError(t, os.WriteFile(path, want, 0o644))

	got, err := readFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = readFile(path + ".missing")
	assert.Error(t, err)
}

func TestReadStore(t *testing.T) {
	want := testKernel().Bytes()
	store := protstore.NewMem(map[uint32][]byte{secdata.KernelNVIndex: want})

	got, err := readStore(store, secdata.KernelNVIndex)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = readStore(store, 0x1007)
	assert.True(t, errors.Is(err, protstore.ErrIndexNotFound), err)
}
