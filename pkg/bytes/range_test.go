// Copyright 2019 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bytes

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRangeContains(t *testing.T) {
	r := Range{Offset: 3, Length: 37}
	require.Equal(t, uint64(40), r.End())
	require.False(t, r.Contains(2))
	require.True(t, r.Contains(3))
	require.True(t, r.Contains(39))
	require.False(t, r.Contains(40))

	empty := Range{Offset: 5}
	require.False(t, empty.Contains(5))
}

func TestRangeSlice(t *testing.T) {
	b := []byte{0, 1, 2, 3, 4, 5}

	t.Run("inside", func(t *testing.T) {
		s, err := Range{Offset: 2, Length: 3}.Slice(b)
		require.NoError(t, err)
		require.Equal(t, []byte{2, 3, 4}, s)
	})
	t.Run("until_end", func(t *testing.T) {
		s, err := Range{Offset: 4, Length: 2}.Slice(b)
		require.NoError(t, err)
		require.Equal(t, []byte{4, 5}, s)
	})
	t.Run("out_of_bounds", func(t *testing.T) {
		_, err := Range{Offset: 4, Length: 3}.Slice(b)
		var oob *ErrOutOfBounds
		require.True(t, errors.As(err, &oob))
		require.Equal(t, uint64(len(b)), oob.Length)
	})
	t.Run("overflow", func(t *testing.T) {
		_, err := Range{Offset: 1, Length: ^uint64(0)}.Slice(b)
		require.Error(t, err)
	})
}
