package gemtext

import (
	"bytes"
	"iter"

	"github.com/yaklabco/exarch/pkg/mdevent"
	"github.com/yaklabco/exarch/pkg/parser/goldmark"
)

// Parser produces document events from Markdown source.
type Parser interface {
	Events(source []byte) iter.Seq[mdevent.Event]
}

// Converter turns whole Markdown documents into Gemtext.
// A Converter is safe for concurrent use if its Parser is.
type Converter struct {
	parser Parser
}

// NewConverter creates a converter using parser. A nil parser selects the
// goldmark parser.
func NewConverter(parser Parser) *Converter {
	if parser == nil {
		parser = goldmark.New()
	}
	return &Converter{parser: parser}
}

// Convert strips front matter from markdown, renders the rest as Gemtext and
// returns it without trailing newlines.
func (c *Converter) Convert(markdown string) ([]byte, error) {
	body := StripFrontMatter(markdown)

	var buf bytes.Buffer
	if err := NewRenderer(&buf).Render(c.parser.Events([]byte(body))); err != nil {
		return nil, err
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Document is a converted document together with its front matter metadata.
type Document struct {
	Gemtext  []byte
	Metadata Metadata

	// MetadataErr records a front matter decoding failure. It never prevents
	// conversion.
	MetadataErr error
}

// ConvertDocument converts markdown and also decodes its front matter.
func (c *Converter) ConvertDocument(markdown string) (*Document, error) {
	body, err := c.Convert(markdown)
	if err != nil {
		return nil, err
	}

	meta, _, metaErr := ParseMetadata(markdown)
	return &Document{
		Gemtext:     body,
		Metadata:    meta,
		MetadataErr: metaErr,
	}, nil
}

//nolint:gochecknoglobals // Stateless default converter.
var defaultConverter = NewConverter(nil)

// ToGemini converts markdown with the default goldmark-backed converter.
func ToGemini(markdown string) ([]byte, error) {
	return defaultConverter.Convert(markdown)
}
