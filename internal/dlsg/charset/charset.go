// Package charset converts between the single-byte Windows-1251 encoding used
// by declaration files and Go's UTF-8 strings.
package charset

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var ErrUnmappedByte = errors.New("charset: byte has no windows-1251 mapping")

// ByteError reports a byte the code page leaves undefined. Index is relative
// to the decoded slice.
type ByteError struct {
	Index int
	Byte  byte
}

func (e *ByteError) Error() string {
	return fmt.Sprintf("charset: undefined windows-1251 byte %#02x at index %d", e.Byte, e.Index)
}

func (e *ByteError) Unwrap() error {
	return ErrUnmappedByte
}

// Decode converts Windows-1251 bytes to a UTF-8 string. Bytes without a
// mapping (0x98) are rejected rather than replaced, so every decoded string
// encodes back to its source bytes.
func Decode(b []byte) (string, error) {
	for i, c := range b {
		if charmap.Windows1251.DecodeByte(c) == utf8.RuneError {
			return "", &ByteError{Index: i, Byte: c}
		}
	}
	out, err := charmap.Windows1251.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("charset: decode: %w", err)
	}
	return string(out), nil
}

// Encode converts a UTF-8 string to Windows-1251 bytes. Characters without a
// Windows-1251 representation are an error.
func Encode(s string) ([]byte, error) {
	out, err := charmap.Windows1251.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("charset: encode %q: %w", s, err)
	}
	return out, nil
}

// MustEncode is Encode for literals known to be representable.
func MustEncode(s string) []byte {
	b, err := Encode(s)
	if err != nil {
		panic(err)
	}
	return b
}
