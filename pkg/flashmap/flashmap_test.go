// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flashmap

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgbytes "github.com/linuxboot/ecefs/pkg/bytes"
)

var rwFirmware = []byte("EC RW firmware payload")

func name(s string) Name {
	var n Name
	copy(n[:], s)
	return n
}

// fakeImage returns a 4KiB EC image: EC_RO, EC_RW and the FMAP at 0x800.
func fakeImage(t *testing.T, areas ...Area) []byte {
	t.Helper()

	image := bytes.Repeat([]byte{0xff}, 0x1000)
	copy(image[0x400:], rwFirmware)

	if areas == nil {
		areas = []Area{
			{Offset: 0, Size: 0x400, Name: name("EC_RO"), Flags: AreaStatic | AreaReadOnly},
			{Offset: 0x400, Size: 0x400, Name: name(AreaRW)},
			{Offset: 0x800, Size: 0x800, Name: name("FMAP"), Flags: AreaStatic},
		}
	}
	var buf bytes.Buffer
	hdr := Header{
		VerMajor: 1,
		VerMinor: 1,
		Size:     uint32(len(image)),
		Name:     name("ECIMAGE"),
		NAreas:   uint16(len(areas)),
	}
	copy(hdr.Signature[:], Signature)
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, hdr))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, areas))
	copy(image[0x800:], buf.Bytes())
	return image
}

func TestParse(t *testing.T) {
	m, err := Parse(fakeImage(t))
	require.NoError(t, err)

	assert.Equal(t, uint64(0x800), m.Start)
	assert.Equal(t, "ECIMAGE", m.Name.String())
	require.Len(t, m.Areas, 3)

	a, err := m.Area(AreaRW)
	require.NoError(t, err)
	assert.Equal(t, pkgbytes.Range{Offset: 0x400, Length: 0x400}, a.Range())

	_, err = m.Area("RW_LEGACY")
	var notFound *ErrAreaNotFound
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "RW_LEGACY", notFound.Name)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse(bytes.Repeat([]byte{0xff}, 0x100))
	assert.True(t, errors.Is(err, ErrNotFound))

	// a signature without a valid header is skipped
	junk := append(bytes.Repeat([]byte{0}, 16), Signature...)
	_, err = Parse(append(junk, make([]byte, 64)...))
	assert.True(t, errors.Is(err, ErrNotFound))

	image := fakeImage(t)
	_, err = Parse(append(image, image[0x800:]...))
	assert.True(t, errors.Is(err, ErrMultiple))

	_, err = Parse(image[:0x800+len(Signature)+4])
	assert.True(t, errors.Is(err, ErrNotFound))

	// truncated areas of a valid header
	_, err = Parse(image[:0x800+binary.Size(Header{})+4])
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestParseSkipsTrailingSignature(t *testing.T) {
	image := append(fakeImage(t), Signature...)
	image = append(image, 1, 0)

	m, err := Parse(image)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x800), m.Start)
}

func TestReadAreaOutOfBounds(t *testing.T) {
	image := fakeImage(t, Area{Offset: 0xf00, Size: 0x200, Name: name(AreaRW)})
	m, err := Parse(image)
	require.NoError(t, err)

	_, err = m.ReadArea(image, AreaRW)
	var oob *pkgbytes.ErrOutOfBounds
	assert.True(t, errors.As(err, &oob), err)
}

func TestDigest(t *testing.T) {
	image := fakeImage(t)

	d, err := Digest(image, AreaRW, true)
	require.NoError(t, err)
	assert.Equal(t, sha256.Sum256(rwFirmware), d)

	full := append(append([]byte{}, rwFirmware...), bytes.Repeat([]byte{0xff}, 0x400-len(rwFirmware))...)
	d, err = Digest(image, AreaRW, false)
	require.NoError(t, err)
	assert.Equal(t, sha256.Sum256(full), d)

	_, err = Digest(image[:0x800], AreaRW, false)
	assert.True(t, errors.Is(err, ErrNotFound))

	erased := fakeImage(t)
	copy(erased[0x400:], bytes.Repeat([]byte{0xff}, len(rwFirmware)))
	_, err = Digest(erased, AreaRW, true)
	assert.Error(t, err)
}

func TestTrimErased(t *testing.T) {
	assert.Equal(t, []byte{1, 0xff, 2}, TrimErased([]byte{1, 0xff, 2, 0xff, 0xff}))
	assert.Empty(t, TrimErased([]byte{0xff, 0xff}))
	assert.Empty(t, TrimErased(nil))
}
