package qstream

import (
	"encoding/binary"
	"fmt"

	kerrors "github.com/PolarWolf314/tdmigrate/internal/errors"
	"golang.org/x/text/encoding/unicode"
)

// Status is the validity flag of a Cursor.
type Status int

const (
	// StatusOk means every read so far was satisfied.
	StatusOk Status = iota
	// StatusReadPastEnd means a read needed more bytes than were left.
	StatusReadPastEnd
	// StatusCorrupt means a length prefix or encoded value was malformed.
	StatusCorrupt
)

func (s Status) String() string {
	switch s {
	case StatusOk:
		return "ok"
	case StatusReadPastEnd:
		return "read past end"
	case StatusCorrupt:
		return "corrupt"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// nullLength is the length prefix of a null string or byte array.
const nullLength = 0xFFFFFFFF

var utf16BE = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

// Cursor is a sequential reader over a resident byte buffer.
// It is not safe for concurrent use.
type Cursor struct {
	data       []byte
	offset     int
	status     Status
	failOffset int
}

// NewCursor returns a Cursor positioned at the start of data.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Status returns the current validity flag.
func (c *Cursor) Status() Status {
	return c.status
}

// Ok reports whether every read so far succeeded.
func (c *Cursor) Ok() bool {
	return c.status == StatusOk
}

// Err maps a bad status onto the stream error taxonomy.
// It returns nil while the cursor is valid.
func (c *Cursor) Err() error {
	switch c.status {
	case StatusOk:
		return nil
	case StatusReadPastEnd:
		return fmt.Errorf("at offset %d: %w", c.failOffset, kerrors.ErrStreamExhausted)
	default:
		return fmt.Errorf("at offset %d: %w", c.failOffset, kerrors.ErrFieldCorrupt)
	}
}

// Offset returns the number of bytes consumed so far.
func (c *Cursor) Offset() int {
	return c.offset
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.data) - c.offset
}

// AtEnd reports whether the cursor has no more bytes to offer.
func (c *Cursor) AtEnd() bool {
	return c.status != StatusOk || c.offset >= len(c.data)
}

// Invalidate puts the cursor into a bad state. The first bad status wins.
func (c *Cursor) Invalidate(s Status) {
	if c.status != StatusOk || s == StatusOk {
		return
	}
	c.status = s
	c.failOffset = c.offset
}

func (c *Cursor) take(n int) []byte {
	if c.status != StatusOk {
		return nil
	}
	if n < 0 {
		c.Invalidate(StatusCorrupt)
		return nil
	}
	if c.Remaining() < n {
		c.Invalidate(StatusReadPastEnd)
		c.offset = len(c.data)
		return nil
	}
	b := c.data[c.offset : c.offset+n]
	c.offset += n
	return b
}

// ReadRaw reads exactly n bytes without a length prefix.
func (c *Cursor) ReadRaw(n int) []byte {
	b := c.take(n)
	if b == nil {
		return nil
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}

// ReadUint16 reads a big-endian uint16.
func (c *Cursor) ReadUint16() uint16 {
	b := c.take(2)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint16(b)
}

// ReadUint32 reads a big-endian uint32.
func (c *Cursor) ReadUint32() uint32 {
	b := c.take(4)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}

// ReadInt32 reads a big-endian int32.
func (c *Cursor) ReadInt32() int32 {
	return int32(c.ReadUint32())
}

// ReadUint64 reads a big-endian uint64.
func (c *Cursor) ReadUint64() uint64 {
	b := c.take(8)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}

// ReadInt64 reads a big-endian int64.
func (c *Cursor) ReadInt64() int64 {
	return int64(c.ReadUint64())
}

// ReadBool reads a single byte; any non-zero value is true.
func (c *Cursor) ReadBool() bool {
	b := c.take(1)
	if b == nil {
		return false
	}
	return b[0] != 0
}

// ReadBytes reads a length-prefixed byte array. A null array reads as nil.
func (c *Cursor) ReadBytes() []byte {
	n := c.ReadUint32()
	if c.status != StatusOk || n == nullLength {
		return nil
	}
	if uint64(n) > uint64(c.Remaining()) {
		c.Invalidate(StatusReadPastEnd)
		c.offset = len(c.data)
		return nil
	}
	out := c.ReadRaw(int(n))
	if out == nil {
		return []byte{}
	}
	return out
}

// ReadString reads a length-prefixed UTF-16BE string. A null string reads
// as the empty string. An odd byte length marks the cursor corrupt.
//
// Unpaired surrogates cannot be held by a Go string and are read as
// U+FFFD without affecting the status, so such a string does not
// round-trip through Writer.WriteString byte for byte.
func (c *Cursor) ReadString() string {
	n := c.ReadUint32()
	if c.status != StatusOk || n == nullLength || n == 0 {
		return ""
	}
	if n&1 == 1 {
		c.Invalidate(StatusCorrupt)
		return ""
	}
	if uint64(n) > uint64(c.Remaining()) {
		c.Invalidate(StatusReadPastEnd)
		c.offset = len(c.data)
		return ""
	}
	raw := c.take(int(n))
	decoded, err := utf16BE.NewDecoder().Bytes(raw)
	if err != nil {
		c.Invalidate(StatusCorrupt)
		return ""
	}
	return string(decoded)
}

// ReadCount reads a uint32 element count and rejects counts that cannot
// fit in the remaining bytes, given the minimum encoded element size.
func (c *Cursor) ReadCount(minElementSize int) int {
	n := c.ReadUint32()
	if c.status != StatusOk {
		return 0
	}
	if minElementSize < 1 {
		minElementSize = 1
	}
	if uint64(n)*uint64(minElementSize) > uint64(c.Remaining()) {
		c.Invalidate(StatusReadPastEnd)
		c.offset = len(c.data)
		return 0
	}
	return int(n)
}

// ReadList reads a counted list, decoding each element with read.
// minElementSize bounds the count before anything is allocated.
func ReadList[T any](c *Cursor, minElementSize int, read func(*Cursor) T) []T {
	n := c.ReadCount(minElementSize)
	if c.status != StatusOk {
		return nil
	}
	out := make([]T, 0, n)
	for i := 0; i < n; i++ {
		v := read(c)
		if c.status != StatusOk {
			return nil
		}
		out = append(out, v)
	}
	return out
}

// ReadMap reads a counted sequence of key/value pairs. Later duplicates
// overwrite earlier ones.
func ReadMap[K comparable, V any](c *Cursor, minPairSize int, readKey func(*Cursor) K, readValue func(*Cursor) V) map[K]V {
	n := c.ReadCount(minPairSize)
	if c.status != StatusOk {
		return nil
	}
	out := make(map[K]V, n)
	for i := 0; i < n; i++ {
		k := readKey(c)
		v := readValue(c)
		if c.status != StatusOk {
			return nil
		}
		out[k] = v
	}
	return out
}
