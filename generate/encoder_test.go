package generate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteUint32LEB128(t *testing.T) {
	cases := []struct {
		value    uint32
		expected []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{63, []byte{0x3F}},
		{64, []byte{0x40}},
		{127, []byte{0x7F}},
		{128, []byte{0x80, 0x01}},
		{8191, []byte{0xFF, 0x3F}},
		{8192, []byte{0x80, 0x40}},
		{0xFFFFFFFF, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x0F}},
	}

	for _, c := range cases {
		buf := &Buffer{}
		buf.writeUint32LEB128(c.value)
		assert.Equal(t, c.expected, buf.Bytes(), "encoding %d", c.value)
	}
}

func TestUint32LEB128RoundTrip(t *testing.T) {
	values := []uint32{0, 1, 38, 127, 128, 255, 8191, 8192, 65535, 1 << 20, 0xFFFFFFFF}

	buf := &Buffer{}
	for _, v := range values {
		buf.writeUint32LEB128(v)
	}

	off := 0
	for _, v := range values {
		got, next, err := buf.readUint32LEB128(off)
		require.NoError(t, err)
		assert.Equal(t, v, got)
		off = next
	}

	assert.Equal(t, buf.Len(), off)
}

func TestWriteInt32LEB128(t *testing.T) {
	cases := []struct {
		value    int32
		expected []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{-1, []byte{0x7F}},
		{63, []byte{0x3F}},
		{64, []byte{0xC0, 0x00}},
		{-64, []byte{0x40}},
		{-65, []byte{0xBF, 0x7F}},
		{8191, []byte{0xFF, 0x3F}},
		{8192, []byte{0x80, 0xC0, 0x00}},
	}

	for _, c := range cases {
		buf := &Buffer{}
		buf.writeInt32LEB128(c.value)
		assert.Equal(t, c.expected, buf.Bytes(), "encoding %d", c.value)
	}
}

func TestInt32LEB128RoundTrip(t *testing.T) {
	values := []int32{0, 1, -1, 10, -10, 63, -64, 8191, -8192, 1 << 30, -2147483648, 2147483647}

	buf := &Buffer{}
	for _, v := range values {
		buf.writeInt32LEB128(v)
	}

	off := 0
	for _, v := range values {
		got, next, err := buf.readInt32LEB128(off)
		require.NoError(t, err)
		assert.Equal(t, v, got)
		off = next
	}

	assert.Equal(t, buf.Len(), off)
}

func TestReadLEB128PastEnd(t *testing.T) {
	buf := &Buffer{}

	_, _, err := buf.readUint32LEB128(0)
	assert.Error(t, err)

	_, _, err = buf.readInt32LEB128(0)
	assert.Error(t, err)
}

func TestWriteName(t *testing.T) {
	buf := &Buffer{}
	buf.writeName("")
	assert.Equal(t, []byte{0x00}, buf.Bytes())

	buf = &Buffer{}
	buf.writeName("abc")
	assert.Equal(t, []byte{0x03, 0x61, 0x62, 0x63}, buf.Bytes())
}

func TestWriteFloat32(t *testing.T) {
	buf := &Buffer{}
	buf.writeFloat32(1.0)
	assert.Equal(t, []byte{0x00, 0x00, 0x80, 0x3F}, buf.Bytes())

	buf = &Buffer{}
	buf.writeFloat32(-0.5)
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0xBF}, buf.Bytes())
}
