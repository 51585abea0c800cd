package section

import (
	"errors"
	"fmt"
)

var (
	ErrMissingSectionPrefix  = errors.New("section: missing section prefix")
	ErrUnexpectedChildTag    = errors.New("section: unexpected child tag")
	ErrMalformedNumericField = errors.New("section: malformed numeric field")
	ErrTruncatedSection      = errors.New("section: truncated section")
	ErrChildNotSupported     = errors.New("section: child not supported")
)

// PrefixError reports a record read in marker position that is not a marker.
type PrefixError struct {
	Record string
	Index  int
}

func (e *PrefixError) Error() string {
	return fmt.Sprintf("section: invalid section prefix at record %d: %q", e.Index, e.Record)
}

func (e *PrefixError) Unwrap() error {
	return ErrMissingSectionPrefix
}

// ChildTagError reports an indexed child marker that does not match the name
// computed from its parent.
type ChildTagError struct {
	Parent   string
	Expected string
	Actual   string
}

func (e *ChildTagError) Error() string {
	return fmt.Sprintf("section: invalid %s subsection: got %q want %q", e.Parent, e.Actual, e.Expected)
}

func (e *ChildTagError) Unwrap() error {
	return ErrUnexpectedChildTag
}

// FieldError reports a fixed field that could not be read.
type FieldError struct {
	Section string
	Field   string
	Value   string
	Err     error
}

func (e *FieldError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("section: %s.%s: %v", e.Section, e.Field, e.Err)
	}
	return fmt.Sprintf("section: %s.%s=%q: %v", e.Section, e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
