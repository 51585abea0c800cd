package dlsg

import (
	"errors"
	"fmt"
	"os"

	"github.com/danmuck/dlsgctl/internal/dlsg/header"
	"github.com/danmuck/dlsgctl/internal/dlsg/record"
	"github.com/danmuck/dlsgctl/internal/dlsg/section"
	"github.com/rs/zerolog/log"
)

var (
	ErrSectionNotFound = errors.New("dlsg: section not found")
	ErrTrailingRecords = errors.New("dlsg: records left after build")
)

// Document is one parsed declaration.
type Document struct {
	Year int
	// FooterLen is the number of NUL bytes that ended the file.
	FooterLen int
	Sections  []section.Section
}

// Read parses a whole declaration file. No document is returned on failure.
func Read(raw []byte) (*Document, error) {
	head := raw[:min(len(raw), header.Len)]
	year, err := header.Parse(head)
	if err != nil {
		log.Error().Str("header", string(head)).Msg("unexpected file header")
		return nil, err
	}
	log.Info().Int("year", year).Msg("declaration found")

	stream, err := record.Tokenize(raw[header.Len:], header.Len)
	if err != nil {
		return nil, err
	}

	c := record.NewCursor(stream.Records)
	sections, err := section.Build(c)
	if err != nil {
		return nil, err
	}
	if c.Len() != 0 {
		return nil, fmt.Errorf("%w: %d", ErrTrailingRecords, c.Len())
	}

	return &Document{
		Year:      year,
		FooterLen: stream.FooterLen,
		Sections:  sections,
	}, nil
}

// ReadFile loads and parses the declaration at path.
func ReadFile(path string) (*Document, error) {
	log.Info().Str("path", path).Msg("loading file")
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dlsg: read %s: %w", path, err)
	}
	doc, err := Read(raw)
	if err != nil {
		return nil, fmt.Errorf("dlsg: parse %s: %w", path, err)
	}
	return doc, nil
}

// Write renders the document in file form, footer included.
func (d *Document) Write() ([]byte, error) {
	head, err := header.Format(d.Year)
	if err != nil {
		return nil, err
	}
	body, err := record.Encode(section.Write(d.Sections), d.FooterLen)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(head)+len(body))
	out = append(out, head...)
	out = append(out, body...)
	return out, nil
}

// WriteFile renders the document to path.
func (d *Document) WriteFile(path string) error {
	data, err := d.Write()
	if err != nil {
		return fmt.Errorf("dlsg: render %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("dlsg: write %s: %w", path, err)
	}
	log.Info().Str("path", path).Int("bytes", len(data)).Msg("declaration written")
	return nil
}

// FindSection returns the first top-level section with tag.
func (d *Document) FindSection(tag string) (section.Section, bool) {
	for _, s := range d.Sections {
		if s.Tag() == tag {
			return s, true
		}
	}
	return nil, false
}

// Foreign returns the foreign income section.
func (d *Document) Foreign() (*section.DeclForeign, bool) {
	s, ok := d.FindSection(section.TagDeclForeign)
	if !ok {
		return nil, false
	}
	foreign, ok := s.(*section.DeclForeign)
	return foreign, ok
}

// AppendChild adds child to the first top-level section tagged parentTag.
// The child's id and the parent's count follow from its position.
func (d *Document) AppendChild(parentTag string, child section.Section) error {
	s, ok := d.FindSection(parentTag)
	if !ok {
		return fmt.Errorf("%w: %s", ErrSectionNotFound, parentTag)
	}
	parent, ok := s.(section.Parent)
	if !ok {
		return fmt.Errorf("%w: %s has no children", section.ErrChildNotSupported, parentTag)
	}
	if err := parent.AppendChild(child); err != nil {
		return err
	}
	log.Debug().Str("parent", parentTag).Int("count", parent.Count()).Msg("child appended")
	return nil
}
