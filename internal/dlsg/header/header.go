package header

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Len is the fixed size of the declaration header in bytes.
const Len = 60

const (
	magic   = "DLSG"
	kind    = "Decl"
	version = "0102"
)

var (
	ErrInvalidHeader  = errors.New("header: invalid declaration header")
	ErrYearOutOfRange = errors.New("header: year out of range")
)

var pattern = regexp.MustCompile(`^DLSG {12}Decl(\d{4})0102F{32}$`)

// HeaderError carries the offending header text.
type HeaderError struct {
	Header string
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("header: unexpected file header %q", e.Header)
}

func (e *HeaderError) Unwrap() error {
	return ErrInvalidHeader
}

// Parse validates a header and returns the declaration year. raw must be the
// first Len bytes of the file; shorter input is rejected.
func Parse(raw []byte) (int, error) {
	if len(raw) != Len {
		return 0, &HeaderError{Header: string(raw)}
	}
	parts := pattern.FindSubmatch(raw)
	if parts == nil {
		return 0, &HeaderError{Header: string(raw)}
	}
	year, err := strconv.Atoi(string(parts[1]))
	if err != nil {
		return 0, &HeaderError{Header: string(raw)}
	}
	return year, nil
}

// Format renders the header for year.
func Format(year int) ([]byte, error) {
	if year < 0 || year > 9999 {
		return nil, fmt.Errorf("%w: %d", ErrYearOutOfRange, year)
	}
	head := magic + strings.Repeat(" ", 12) + kind + fmt.Sprintf("%04d", year) + version + strings.Repeat("F", 32)
	return []byte(head), nil
}
