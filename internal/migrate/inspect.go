package migrate

import (
	"fmt"

	"github.com/PolarWolf314/tdmigrate/internal/qstream"
	"github.com/PolarWolf314/tdmigrate/internal/scheme"
)

// Entry is one record found by Inspect.
type Entry struct {
	Index     int           `json:"index"`
	Offset    int           `json:"offset"`
	Size      int           `json:"size"`
	Tag       scheme.Tag    `json:"tag"`
	Discarded bool          `json:"discarded,omitempty"`
	Record    scheme.Record `json:"record"`
}

// Inspect decodes data without applying anything. It returns the entries
// read before the first failure together with a *DecodeError for it.
func Inspect(data []byte, options Options) ([]Entry, error) {
	env := options.env()
	var entries []Entry

	c := qstream.NewCursor(data)
	for !c.AtEnd() {
		offset := c.Offset()
		tag := scheme.Tag(c.ReadUint32())
		if err := c.Err(); err != nil {
			return entries, &DecodeError{Index: len(entries), Offset: offset, Err: fmt.Errorf("reading tag: %w", err)}
		}

		rec, err := scheme.Decode(tag, c, env)
		if err != nil {
			return entries, &DecodeError{Index: len(entries), Tag: tag, TagRead: true, Offset: offset, Err: err}
		}

		entries = append(entries, Entry{
			Index:     len(entries),
			Offset:    offset,
			Size:      c.Offset() - offset,
			Tag:       tag,
			Discarded: tag.Discarded(),
			Record:    rec,
		})
	}
	return entries, nil
}
