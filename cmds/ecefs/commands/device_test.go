// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxboot/ecefs/pkg/hibdata"
	"github.com/linuxboot/ecefs/pkg/log"
	"github.com/linuxboot/ecefs/pkg/resetcause"
)

func TestDeviceFileBank(t *testing.T) {
	dir := t.TempDir()
	dev, err := State{Dir: dir}.Device()
	require.NoError(t, err)

	fb, ok := dev.Bank.(*hibdata.FileBank)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "hibdata"), fb.Path)
	assert.Equal(t, filepath.Join(dir, "nvmem"), dev.Store.Path)

	require.NoError(t, fb.WriteWord(hibdata.IndexEFS, 1))
	require.NoError(t, dev.PowerOff())
	v, err := fb.ReadWord(hibdata.IndexEFS)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), v)
}

func TestDeviceDevMem(t *testing.T) {
	base := int64(0xfed1c000)
	dev, err := State{Dir: t.TempDir(), DevMem: &base}.Device()
	require.NoError(t, err)

	dm, ok := dev.Bank.(*hibdata.DevMem)
	require.True(t, ok)
	assert.Equal(t, base, dm.Base)
	assert.NotNil(t, dm.In)
	assert.NotNil(t, dm.Out)

	err = dev.PowerOff()
	assert.True(t, errors.As(err, &ErrArgs{}))
}

func TestBootLogsResetKind(t *testing.T) {
	saved := log.DefaultLogger
	defer func() { log.DefaultLogger = saved }()

	for _, tc := range []struct {
		name  string
		opts  resetcause.Option
		saved bool
		want  string
	}{
		{name: "first boot", want: "cold reset: 0x0"},
		{name: "hibernate", opts: resetcause.WakeFromHibernate, saved: true, want: "warm reset: hibernate"},
		{name: "hard", opts: resetcause.HardReset, saved: true, want: "cold reset: hard"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var logs bytes.Buffer
			log.DefaultLogger = log.New(&logs)

			dev, err := State{Dir: t.TempDir()}.Device()
			require.NoError(t, err)
			if tc.saved {
				require.NoError(t, resetcause.NewTracker(dev.Bank, nil).Save(0, tc.opts))
			}

			_, err = dev.Boot()
			require.NoError(t, err)
			assert.Contains(t, logs.String(), tc.want)
		})
	}
}
