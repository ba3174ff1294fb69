package qstream

import (
	"errors"
	"math"
	"testing"

	kerrors "github.com/PolarWolf314/tdmigrate/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorReadsPrimitives(t *testing.T) {
	w := NewWriter()
	w.WriteInt32(-7)
	w.WriteUint32(math.MaxUint32 - 1)
	w.WriteInt64(math.MinInt64)
	w.WriteUint64(0xD83CDDEFD83CDDF5)
	w.WriteUint16(0xBEEF)
	w.WriteBool(true)
	w.WriteBool(false)
	w.WriteString("héllo 🇯🇵")
	w.WriteString("")
	w.WriteBytes([]byte{1, 2, 3})
	w.WriteBytes(nil)
	w.WriteRaw([]byte{9, 8})
	require.NoError(t, w.Err())

	c := NewCursor(w.Bytes())
	assert.Equal(t, int32(-7), c.ReadInt32())
	assert.Equal(t, uint32(math.MaxUint32-1), c.ReadUint32())
	assert.Equal(t, int64(math.MinInt64), c.ReadInt64())
	assert.Equal(t, uint64(0xD83CDDEFD83CDDF5), c.ReadUint64())
	assert.Equal(t, uint16(0xBEEF), c.ReadUint16())
	assert.True(t, c.ReadBool())
	assert.False(t, c.ReadBool())
	assert.Equal(t, "héllo 🇯🇵", c.ReadString())
	assert.Equal(t, "", c.ReadString())
	assert.Equal(t, []byte{1, 2, 3}, c.ReadBytes())
	assert.Nil(t, c.ReadBytes())
	assert.Equal(t, []byte{9, 8}, c.ReadRaw(2))

	require.NoError(t, c.Err())
	assert.True(t, c.AtEnd())
	assert.Equal(t, StatusOk, c.Status())
}

func TestCursorStringIsUTF16BigEndian(t *testing.T) {
	w := NewWriter()
	w.WriteString("A")
	assert.Equal(t, []byte{0, 0, 0, 2, 0, 'A'}, w.Bytes())
}

func TestCursorUnpairedSurrogateIsReplaced(t *testing.T) {
	data := []byte{0, 0, 0, 6, 0, 'A', 0xDC, 0x00, 0, 'B'}
	c := NewCursor(data)

	assert.Equal(t, "A\uFFFDB", c.ReadString())
	assert.Equal(t, StatusOk, c.Status())
	assert.True(t, c.AtEnd())

	w := NewWriter()
	w.WriteString("A\uFFFDB")
	assert.Equal(t, []byte{0, 0, 0, 6, 0, 'A', 0xFF, 0xFD, 0, 'B'}, w.Bytes())
}

func TestCursorReadPastEndIsSticky(t *testing.T) {
	c := NewCursor([]byte{0, 0, 0, 1, 0xFF})

	assert.Equal(t, int32(1), c.ReadInt32())
	assert.Equal(t, int32(0), c.ReadInt32())
	assert.Equal(t, StatusReadPastEnd, c.Status())

	// Later reads are no-ops returning zero values.
	assert.Equal(t, uint16(0), c.ReadUint16())
	assert.Equal(t, "", c.ReadString())
	assert.Equal(t, StatusReadPastEnd, c.Status())

	err := c.Err()
	require.Error(t, err)
	assert.True(t, errors.Is(err, kerrors.ErrStreamExhausted))
}

func TestCursorOddStringLengthIsCorrupt(t *testing.T) {
	c := NewCursor([]byte{0, 0, 0, 3, 0, 'a', 0})

	assert.Equal(t, "", c.ReadString())
	assert.Equal(t, StatusCorrupt, c.Status())
	assert.True(t, errors.Is(c.Err(), kerrors.ErrFieldCorrupt))
}

func TestCursorLengthPrefixBeyondBuffer(t *testing.T) {
	c := NewCursor([]byte{0x7F, 0xFF, 0xFF, 0xFF, 1, 2})

	assert.Nil(t, c.ReadBytes())
	assert.Equal(t, StatusReadPastEnd, c.Status())
	assert.True(t, c.AtEnd())
}

func TestCursorFirstBadStatusWins(t *testing.T) {
	c := NewCursor(nil)
	c.Invalidate(StatusCorrupt)
	c.Invalidate(StatusReadPastEnd)
	assert.Equal(t, StatusCorrupt, c.Status())
}

func TestReadListAndMap(t *testing.T) {
	w := NewWriter()
	WriteList(w, []uint64{3, 1, 2}, (*Writer).WriteUint64)
	WriteMap(w, map[string]int32{"b": 2, "a": 1}, (*Writer).WriteString, (*Writer).WriteInt32)

	c := NewCursor(w.Bytes())
	list := ReadList(c, 8, (*Cursor).ReadUint64)
	m := ReadMap(c, 8, (*Cursor).ReadString, (*Cursor).ReadInt32)

	require.NoError(t, c.Err())
	assert.Equal(t, []uint64{3, 1, 2}, list)
	assert.Equal(t, map[string]int32{"a": 1, "b": 2}, m)
}

func TestReadListRejectsImpossibleCount(t *testing.T) {
	w := NewWriter()
	w.WriteUint32(1 << 30)
	w.WriteUint64(1)

	c := NewCursor(w.Bytes())
	list := ReadList(c, 8, (*Cursor).ReadUint64)

	assert.Nil(t, list)
	assert.Equal(t, StatusReadPastEnd, c.Status())
}

func TestWriteMapIsDeterministic(t *testing.T) {
	m := map[uint32]uint64{5: 1, 1: 2, 3: 3}

	first := NewWriter()
	WriteMap(first, m, (*Writer).WriteUint32, (*Writer).WriteUint64)
	second := NewWriter()
	WriteMap(second, m, (*Writer).WriteUint32, (*Writer).WriteUint64)

	assert.Equal(t, first.Bytes(), second.Bytes())
}
