package qstream

import (
	"bytes"
	"cmp"
	"encoding/binary"
	"fmt"
	"slices"
)

// Writer encodes values in the layout Cursor reads.
// The zero value is ready to use.
type Writer struct {
	buf bytes.Buffer
	err error
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the encoded stream.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Err returns the first encoding error, if any.
func (w *Writer) Err() error {
	return w.err
}

// WriteRaw appends b without a length prefix.
func (w *Writer) WriteRaw(b []byte) {
	w.buf.Write(b)
}

func (w *Writer) WriteUint16(v uint16) {
	w.buf.Write(binary.BigEndian.AppendUint16(nil, v))
}

func (w *Writer) WriteUint32(v uint32) {
	w.buf.Write(binary.BigEndian.AppendUint32(nil, v))
}

func (w *Writer) WriteInt32(v int32) {
	w.WriteUint32(uint32(v))
}

func (w *Writer) WriteUint64(v uint64) {
	w.buf.Write(binary.BigEndian.AppendUint64(nil, v))
}

func (w *Writer) WriteInt64(v int64) {
	w.WriteUint64(uint64(v))
}

func (w *Writer) WriteBool(v bool) {
	if v {
		w.buf.WriteByte(1)
	} else {
		w.buf.WriteByte(0)
	}
}

// WriteBytes writes a length-prefixed byte array. A nil slice is written
// as a null array.
func (w *Writer) WriteBytes(b []byte) {
	if b == nil {
		w.WriteUint32(nullLength)
		return
	}
	w.WriteUint32(uint32(len(b)))
	w.buf.Write(b)
}

// WriteString writes s as a length-prefixed UTF-16BE string.
func (w *Writer) WriteString(s string) {
	encoded, err := utf16BE.NewEncoder().Bytes([]byte(s))
	if err != nil {
		if w.err == nil {
			w.err = fmt.Errorf("encoding string %q: %w", s, err)
		}
		encoded = nil
	}
	w.WriteUint32(uint32(len(encoded)))
	w.buf.Write(encoded)
}

// WriteCount writes a list or map element count.
func (w *Writer) WriteCount(n int) {
	w.WriteUint32(uint32(n))
}

// WriteList writes a counted list.
func WriteList[T any](w *Writer, items []T, write func(*Writer, T)) {
	w.WriteCount(len(items))
	for _, item := range items {
		write(w, item)
	}
}

// WriteMap writes a counted map with keys in ascending order so that the
// same map always encodes to the same bytes.
func WriteMap[K cmp.Ordered, V any](w *Writer, m map[K]V, writeKey func(*Writer, K), writeValue func(*Writer, V)) {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	w.WriteCount(len(keys))
	for _, k := range keys {
		writeKey(w, k)
		writeValue(w, m[k])
	}
}
