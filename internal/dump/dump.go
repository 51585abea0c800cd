// Package dump renders a parsed declaration as YAML for inspection.
package dump

import (
	"fmt"
	"io"

	"github.com/danmuck/dlsgctl/internal/dlsg"
	"github.com/danmuck/dlsgctl/internal/dlsg/section"
	"gopkg.in/yaml.v3"
)

type document struct {
	Year      int     `yaml:"year"`
	FooterLen int     `yaml:"footer_length"`
	Sections  []entry `yaml:"sections"`
}

type entry struct {
	Tag    string          `yaml:"tag"`
	Fields section.Section `yaml:"fields"`
}

// Write encodes doc to w.
func Write(w io.Writer, doc *dlsg.Document) error {
	view := document{
		Year:      doc.Year,
		FooterLen: doc.FooterLen,
		Sections:  make([]entry, 0, len(doc.Sections)),
	}
	for _, s := range doc.Sections {
		view.Sections = append(view.Sections, entry{Tag: s.Tag(), Fields: s})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(view); err != nil {
		return fmt.Errorf("dump: encode: %w", err)
	}
	return enc.Close()
}
