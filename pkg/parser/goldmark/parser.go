// Package goldmark provides a Markdown event source backed by the goldmark library.
package goldmark

import (
	"context"
	"fmt"
	"iter"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/exarch/pkg/mdevent"
)

// Parser turns Markdown source into a sequence of mdevent.Event values.
// A Parser is safe for concurrent use.
type Parser struct {
	md goldmark.Markdown
}

// New creates a parser for CommonMark with the strikethrough extension enabled.
func New() *Parser {
	return &Parser{md: newGoldmarkInstance()}
}

// Events parses source and returns its document events in document order.
//
// Parsing happens when the sequence is first iterated; the AST is then walked
// once, yielding events as nodes are entered and left. Breaking out of the
// range loop stops the walk. The source is copied, so the caller may reuse it.
func (p *Parser) Events(source []byte) iter.Seq[mdevent.Event] {
	content := copyContent(source)
	return func(yield func(mdevent.Event) bool) {
		doc := p.md.Parser().Parse(text.NewReader(content), parser.WithContext(parser.NewContext()))
		m := newMapper(content, yield)
		_ = ast.Walk(doc, m.walk)
	}
}

// Collect parses source and returns all of its events.
// It honours context cancellation between events.
func (p *Parser) Collect(ctx context.Context, source []byte) ([]mdevent.Event, error) {
	var events []mdevent.Event
	for event := range p.Events(source) {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("parse cancelled: %w", err)
		}
		events = append(events, event)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}
	return events, nil
}

// newGoldmarkInstance creates a configured goldmark.Markdown instance.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.Strikethrough,
		),
	)
}

// copyContent creates a copy of the content slice to ensure immutability.
func copyContent(content []byte) []byte {
	if content == nil {
		return nil
	}
	cp := make([]byte, len(content))
	copy(cp, content)
	return cp
}
