package generate

import (
	"encoding/binary"
	"io"
	"math"
)

// max32bitLEB128ByteCount is the maximum number of bytes a 32-bit integer
// (signed or unsigned) may be encoded as: ceil(32/7)
const max32bitLEB128ByteCount = 5

// Buffer is an in-memory byte buffer the section writer assembles output
// into.  Section payloads are built into scratch buffers first so their byte
// length is known before the section header is written.
type Buffer struct {
	data []byte
}

// Bytes returns the accumulated contents of the buffer
func (buf *Buffer) Bytes() []byte {
	return buf.data
}

// Len returns the number of accumulated bytes
func (buf *Buffer) Len() int {
	return len(buf.data)
}

func (buf *Buffer) writeByte(b byte) {
	buf.data = append(buf.data, b)
}

func (buf *Buffer) writeBytes(data []byte) {
	buf.data = append(buf.data, data...)
}

// writeUint32LEB128 encodes and writes the given unsigned 32-bit integer in
// canonical (fewest bytes possible) unsigned little endian base 128 format
func (buf *Buffer) writeUint32LEB128(v uint32) {
	if v < 128 {
		buf.writeByte(uint8(v))
		return
	}

	more := true
	for more {
		// low order 7 bits of value
		c := uint8(v & 0x7f)
		v >>= 7
		// more bits to come?
		more = v != 0
		if more {
			// set high order bit of byte
			c |= 0x80
		}
		// emit byte
		buf.writeByte(c)
	}
}

// writeInt32LEB128 encodes and writes the given signed 32-bit integer in
// canonical signed little endian base 128 format
func (buf *Buffer) writeInt32LEB128(v int32) {
	more := true
	for more {
		// low order 7 bits of value
		c := uint8(v & 0x7f)
		// the sign of the 7-bit chunk just written
		signBit := c & 0x40
		v >>= 7
		if (v == 0 && signBit == 0) || (v == -1 && signBit != 0) {
			more = false
		} else {
			c |= 0x80
		}
		buf.writeByte(c)
	}
}

// writeName writes a length-prefixed UTF-8 string
func (buf *Buffer) writeName(name string) {
	bytes := []byte(name)
	buf.writeUint32LEB128(uint32(len(bytes)))
	buf.writeBytes(bytes)
}

// writeFloat32 writes a 32-bit float as 4 little-endian IEEE-754 bytes
func (buf *Buffer) writeFloat32(v float32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], math.Float32bits(v))
	buf.writeBytes(b[:])
}

// -----------------------------------------------------------------------------
// Decoding counterparts, used to verify round trips.

// readByte reads one byte starting at the given offset
func (buf *Buffer) readByte(off int) (byte, int, error) {
	if off >= len(buf.data) {
		return 0, off, io.EOF
	}

	return buf.data[off], off + 1, nil
}

// readUint32LEB128 reads and decodes an unsigned 32-bit integer starting at
// the given offset, returning the value and the offset past it
func (buf *Buffer) readUint32LEB128(off int) (uint32, int, error) {
	var result uint32
	var shift uint

	// only read up to the maximum number of bytes
	for i := 0; i < max32bitLEB128ByteCount; i++ {
		b, next, err := buf.readByte(off)
		if err != nil {
			return 0, off, err
		}

		off = next
		result |= (uint32(b & 0x7F)) << shift
		// check high order bit of byte
		if b&0x80 == 0 {
			break
		}

		shift += 7
	}

	return result, off, nil
}

// readInt32LEB128 reads and decodes a signed 32-bit integer starting at the
// given offset, returning the value and the offset past it
func (buf *Buffer) readInt32LEB128(off int) (int32, int, error) {
	var result int32
	var shift uint
	var b byte

	for i := 0; i < max32bitLEB128ByteCount; i++ {
		var next int
		var err error
		b, next, err = buf.readByte(off)
		if err != nil {
			return 0, off, err
		}

		off = next
		result |= int32(b&0x7F) << shift
		shift += 7
		if b&0x80 == 0 {
			break
		}
	}

	// sign-extend when the final sign bit is set
	if shift < 32 && b&0x40 != 0 {
		result |= -1 << shift
	}

	return result, off, nil
}
