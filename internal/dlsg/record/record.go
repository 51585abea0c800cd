package record

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/danmuck/dlsgctl/internal/dlsg/charset"
	"github.com/rs/zerolog/log"
)

const (
	// SizeLen is the width of the decimal length prefix of every record.
	SizeLen = 4
	// MaxLen is the largest payload a 4-digit prefix can describe.
	MaxLen = 9999
	// Footer fills the length prefix slot at the end of the record stream.
	Footer byte = 0
)

var (
	ErrInvalidRecordLength = errors.New("record: invalid record length")
	ErrTruncatedRecord     = errors.New("record: truncated record")
	ErrRecordTooLong       = errors.New("record: record too long")
	ErrFooterTooLong       = errors.New("record: footer too long")
)

// Record is one decoded record payload.
type Record string

// Stream is a tokenized record body.
type Stream struct {
	Records []Record
	// FooterLen is the number of NUL bytes that terminated the stream, 0 when
	// the data simply ended.
	FooterLen int
}

// LengthError reports a length prefix that is not a decimal number.
type LengthError struct {
	Offset int
	Field  string
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("record: invalid record size at position %d: %q", e.Offset, e.Field)
}

func (e *LengthError) Unwrap() error {
	return ErrInvalidRecordLength
}

// Tokenize splits body into records. base is the absolute file offset of
// body, used in error positions.
func Tokenize(body []byte, base int) (Stream, error) {
	var out Stream
	pos := 0
	for pos < len(body) {
		end := min(pos+SizeLen, len(body))
		field := body[pos:end]

		if isFooter(field) {
			out.FooterLen = len(field)
			break
		}

		length, err := parseLength(field)
		if err != nil {
			log.Error().Int("offset", base+pos).Str("field", string(field)).Msg("invalid record size")
			return Stream{}, &LengthError{Offset: base + pos, Field: string(field)}
		}
		pos = end
		if length > len(body)-pos {
			return Stream{}, fmt.Errorf("%w at position %d: want %d bytes, have %d",
				ErrTruncatedRecord, base+pos-SizeLen, length, len(body)-pos)
		}
		payload, err := charset.Decode(body[pos : pos+length])
		if err != nil {
			var be *charset.ByteError
			if errors.As(err, &be) {
				log.Error().Int("offset", base+pos+be.Index).Msg("undefined windows-1251 byte")
				return Stream{}, fmt.Errorf("record at position %d: byte at position %d: %w", base+pos-SizeLen, base+pos+be.Index, err)
			}
			return Stream{}, fmt.Errorf("record at position %d: %w", base+pos-SizeLen, err)
		}
		out.Records = append(out.Records, Record(payload))
		pos += length
	}
	log.Debug().Int("records", len(out.Records)).Int("footer", out.FooterLen).Msg("records tokenized")
	return out, nil
}

// Encode renders records with their length prefixes followed by footerLen
// NUL bytes.
func Encode(records []Record, footerLen int) ([]byte, error) {
	if footerLen < 0 || footerLen > SizeLen {
		return nil, fmt.Errorf("%w: %d", ErrFooterTooLong, footerLen)
	}
	var buf bytes.Buffer
	for i, rec := range records {
		payload, err := charset.Encode(string(rec))
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if len(payload) > MaxLen {
			return nil, fmt.Errorf("%w: record %d is %d bytes", ErrRecordTooLong, i, len(payload))
		}
		fmt.Fprintf(&buf, "%04d", len(payload))
		buf.Write(payload)
	}
	for i := 0; i < footerLen; i++ {
		buf.WriteByte(Footer)
	}
	return buf.Bytes(), nil
}

func isFooter(field []byte) bool {
	if len(field) == 0 {
		return false
	}
	for _, b := range field {
		if b != Footer {
			return false
		}
	}
	return true
}

func parseLength(field []byte) (int, error) {
	if len(field) != SizeLen {
		return 0, ErrInvalidRecordLength
	}
	for _, b := range field {
		if b < '0' || b > '9' {
			return 0, ErrInvalidRecordLength
		}
	}
	return strconv.Atoi(string(field))
}
