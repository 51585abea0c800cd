package record

import (
	"errors"
	"strings"
)

// SectionPrefix starts every section marker record.
const SectionPrefix = "@"

var ErrCursorExhausted = errors.New("record: cursor exhausted")

// Cursor walks a record slice front to back. It is shared by pointer through
// the whole section build; consumed records are never revisited.
type Cursor struct {
	records []Record
	pos     int
}

func NewCursor(records []Record) *Cursor {
	return &Cursor{records: records}
}

// Next pops the front record.
func (c *Cursor) Next() (Record, error) {
	if c.pos >= len(c.records) {
		return "", ErrCursorExhausted
	}
	rec := c.records[c.pos]
	c.pos++
	return rec, nil
}

// Take pops n records.
func (c *Cursor) Take(n int) ([]Record, error) {
	if n > c.Len() {
		return nil, ErrCursorExhausted
	}
	out := make([]Record, n)
	copy(out, c.records[c.pos:c.pos+n])
	c.pos += n
	return out, nil
}

// TakeUntilMarker pops records until the next section marker or the end.
func (c *Cursor) TakeUntilMarker() []Record {
	var out []Record
	for c.pos < len(c.records) && !c.records[c.pos].IsMarker() {
		out = append(out, c.records[c.pos])
		c.pos++
	}
	return out
}

// Peek returns the front record without consuming it.
func (c *Cursor) Peek() (Record, bool) {
	if c.pos >= len(c.records) {
		return "", false
	}
	return c.records[c.pos], true
}

// Len is the number of unconsumed records.
func (c *Cursor) Len() int {
	return len(c.records) - c.pos
}

// Offset is the index of the front record in the original slice.
func (c *Cursor) Offset() int {
	return c.pos
}

// IsMarker reports whether r names a section.
func (r Record) IsMarker() bool {
	return strings.HasPrefix(string(r), SectionPrefix)
}
