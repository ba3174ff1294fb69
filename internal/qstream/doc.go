// Package qstream reads and writes the primitive wire encoding used by the
// legacy settings streams.
//
// The encoding is the big-endian QDataStream layout:
//
//   - fixed-width integers are written as-is, most significant byte first
//   - bool is a single byte
//   - byte arrays carry a uint32 length prefix (0xFFFFFFFF marks a null array)
//   - strings carry a uint32 byte length followed by UTF-16BE code units
//   - lists carry a uint32 element count, maps a uint32 pair count
//
// There is no per-field framing, so a reader that consumes too few or too
// many bytes desynchronizes everything after it.
//
// # Cursor
//
// A Cursor reads sequentially from a resident buffer. Reading past the end
// or hitting a malformed length prefix puts the cursor into a permanent bad
// state; every later read returns the zero value and Status() never returns
// to StatusOk:
//
//	c := qstream.NewCursor(data)
//	size := c.ReadInt64()
//	limit := c.ReadInt32()
//	if err := c.Err(); err != nil {
//	    return err
//	}
//
// Check the status once after all reads of a unit, before using any value.
//
// # Writer
//
// Writer is the inverse of Cursor and produces byte-identical encodings.
package qstream
