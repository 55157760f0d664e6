package goldmark

import (
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/exarch/pkg/mdevent"
)

// mapper converts a goldmark AST walk into a flat event stream.
type mapper struct {
	content []byte
	yield   func(mdevent.Event) bool
	stopped bool
}

// newMapper creates a new mapper for the given content and sink.
func newMapper(content []byte, yield func(mdevent.Event) bool) *mapper {
	return &mapper{content: content, yield: yield}
}

// emit forwards one event to the consumer and records whether it wants more.
func (m *mapper) emit(event mdevent.Event) bool {
	if m.stopped {
		return false
	}
	if !m.yield(event) {
		m.stopped = true
	}
	return !m.stopped
}

// status converts the consumer's state into a walk status.
func (m *mapper) status(next ast.WalkStatus) ast.WalkStatus {
	if m.stopped {
		return ast.WalkStop
	}
	return next
}

// pair emits start on entry and end on exit.
func (m *mapper) pair(entering bool, start, end mdevent.Kind) (ast.WalkStatus, error) {
	if entering {
		m.emit(mdevent.Marker(start))
	} else {
		m.emit(mdevent.Marker(end))
	}
	return m.status(ast.WalkContinue), nil
}

// walk is the ast.Walker that maps each goldmark node.
func (m *mapper) walk(gmNode ast.Node, entering bool) (ast.WalkStatus, error) {
	switch gmn := gmNode.(type) {
	// Block-level nodes.
	case *ast.Paragraph:
		return m.pair(entering, mdevent.KindStartParagraph, mdevent.KindEndParagraph)

	case *ast.Heading:
		return m.mapHeading(gmn, entering)

	case *ast.Blockquote:
		return m.pair(entering, mdevent.KindStartBlockquote, mdevent.KindEndBlockquote)

	case *ast.List:
		return m.mapList(gmn, entering)

	case *ast.ListItem:
		return m.pair(entering, mdevent.KindStartItem, mdevent.KindEndItem)

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		return m.mapCodeBlock(gmNode, entering)

	case *ast.HTMLBlock:
		return m.mapHTMLBlock(gmn, entering)

	case *ast.ThematicBreak:
		if entering {
			m.emit(mdevent.Marker(mdevent.KindRule))
		}
		return m.status(ast.WalkContinue), nil

	// Inline-level nodes.
	case *ast.Text:
		return m.mapText(gmn, entering)

	case *ast.String:
		if entering && len(gmn.Value) > 0 {
			m.emit(mdevent.Text(string(gmn.Value)))
		}
		return m.status(ast.WalkContinue), nil

	case *ast.Emphasis:
		if gmn.Level == 2 {
			return m.pair(entering, mdevent.KindStartStrong, mdevent.KindEndStrong)
		}
		return m.pair(entering, mdevent.KindStartEmphasis, mdevent.KindEndEmphasis)

	case *east.Strikethrough:
		return m.pair(entering, mdevent.KindStartStrikethrough, mdevent.KindEndStrikethrough)

	case *ast.CodeSpan:
		return m.mapCodeSpan(gmn, entering)

	case *ast.Link:
		return m.mapLink(gmn, entering)

	case *ast.AutoLink:
		return m.mapAutoLink(gmn, entering)

	case *ast.Image:
		return m.mapImage(gmn, entering)

	case *ast.RawHTML:
		return m.mapRawHTML(gmn, entering)

	default:
		// Document, TextBlock and unknown nodes produce no events of their own.
		return m.status(ast.WalkContinue), nil
	}
}

// mapHeading emits heading events carrying the heading depth.
func (m *mapper) mapHeading(h *ast.Heading, entering bool) (ast.WalkStatus, error) {
	if entering {
		m.emit(mdevent.StartHeading(h.Level))
	} else {
		m.emit(mdevent.EndHeading(h.Level))
	}
	return m.status(ast.WalkContinue), nil
}

// mapList emits list events carrying ordering information.
func (m *mapper) mapList(list *ast.List, entering bool) (ast.WalkStatus, error) {
	if entering {
		m.emit(mdevent.StartList(list.IsOrdered(), list.Start))
	} else {
		m.emit(mdevent.Marker(mdevent.KindEndList))
	}
	return m.status(ast.WalkContinue), nil
}

// mapCodeBlock emits one text event per code line between code block markers.
func (m *mapper) mapCodeBlock(block ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return m.status(ast.WalkContinue), nil
	}

	if !m.emit(mdevent.Marker(mdevent.KindStartCodeBlock)) {
		return ast.WalkStop, nil
	}
	lines := block.Lines()
	for i := range lines.Len() {
		seg := lines.At(i)
		if !m.emit(mdevent.Text(string(seg.Value(m.content)))) {
			return ast.WalkStop, nil
		}
	}
	m.emit(mdevent.Marker(mdevent.KindEndCodeBlock))
	return m.status(ast.WalkSkipChildren), nil
}

// mapHTMLBlock emits the raw lines of an HTML block.
func (m *mapper) mapHTMLBlock(block *ast.HTMLBlock, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return m.status(ast.WalkContinue), nil
	}

	lines := block.Lines()
	for i := range lines.Len() {
		seg := lines.At(i)
		if !m.emit(mdevent.Event{Kind: mdevent.KindHTML, Text: string(seg.Value(m.content))}) {
			return ast.WalkStop, nil
		}
	}
	return m.status(ast.WalkSkipChildren), nil
}

// mapText emits literal text followed by any line break the node ends with.
func (m *mapper) mapText(textNode *ast.Text, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return m.status(ast.WalkContinue), nil
	}

	value := textNode.Segment.Value(m.content)
	if !textNode.IsRaw() {
		value = unescape(value)
	}
	if len(value) > 0 && !m.emit(mdevent.Text(string(value))) {
		return ast.WalkStop, nil
	}

	switch {
	case textNode.HardLineBreak():
		m.emit(mdevent.Marker(mdevent.KindHardBreak))
	case textNode.SoftLineBreak():
		m.emit(mdevent.SoftBreak())
	}
	return m.status(ast.WalkContinue), nil
}

// mapCodeSpan emits a single code event with the span's content.
func (m *mapper) mapCodeSpan(codeSpan *ast.CodeSpan, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return m.status(ast.WalkContinue), nil
	}

	var code []byte
	for child := codeSpan.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Text:
			code = append(code, c.Segment.Value(m.content)...)
		case *ast.String:
			code = append(code, c.Value...)
		}
	}

	m.emit(mdevent.Event{Kind: mdevent.KindCode, Text: string(code)})
	return m.status(ast.WalkSkipChildren), nil
}

// mapLink emits link events; the end event carries the target.
func (m *mapper) mapLink(link *ast.Link, entering bool) (ast.WalkStatus, error) {
	destination := string(link.Destination)
	title := string(link.Title)
	if entering {
		m.emit(mdevent.StartLink(destination, title))
	} else {
		m.emit(mdevent.EndLink(destination, title))
	}
	return m.status(ast.WalkContinue), nil
}

// mapAutoLink emits an autolink as a link whose text is its label.
func (m *mapper) mapAutoLink(al *ast.AutoLink, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return m.status(ast.WalkContinue), nil
	}

	url := string(al.URL(m.content))
	if m.emit(mdevent.StartLink(url, "")) && m.emit(mdevent.Text(string(al.Label(m.content)))) {
		m.emit(mdevent.EndLink(url, ""))
	}
	return m.status(ast.WalkSkipChildren), nil
}

// mapImage emits image events; the alt text arrives as child text events.
func (m *mapper) mapImage(img *ast.Image, entering bool) (ast.WalkStatus, error) {
	event := mdevent.Event{
		Kind:        mdevent.KindStartImage,
		Destination: string(img.Destination),
		Title:       string(img.Title),
	}
	if !entering {
		event.Kind = mdevent.KindEndImage
	}
	m.emit(event)
	return m.status(ast.WalkContinue), nil
}

// mapRawHTML emits inline HTML as a single event.
func (m *mapper) mapRawHTML(raw *ast.RawHTML, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return m.status(ast.WalkContinue), nil
	}

	var html []byte
	for i := range raw.Segments.Len() {
		seg := raw.Segments.At(i)
		html = append(html, seg.Value(m.content)...)
	}
	m.emit(mdevent.Event{Kind: mdevent.KindHTML, Text: string(html)})
	return m.status(ast.WalkSkipChildren), nil
}

// unescape resolves backslash escapes and character references in literal text.
func unescape(value []byte) []byte {
	value = util.UnescapePunctuations(value)
	value = util.ResolveNumericReferences(value)
	return util.ResolveEntityNames(value)
}
