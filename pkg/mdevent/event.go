// Package mdevent defines the flat stream of structural events that a
// Markdown parser produces and a renderer consumes in a single forward pass.
package mdevent

import "strconv"

// Kind classifies a document event.
type Kind uint8

// Event kinds. Container constructs come in Start/End pairs.
const (
	KindOther Kind = iota

	// Block-level containers.
	KindStartParagraph
	KindEndParagraph
	KindStartHeading
	KindEndHeading
	KindStartBlockquote
	KindEndBlockquote
	KindStartList
	KindEndList
	KindStartItem
	KindEndItem
	KindStartCodeBlock
	KindEndCodeBlock

	// Inline containers.
	KindStartEmphasis
	KindEndEmphasis
	KindStartStrong
	KindEndStrong
	KindStartStrikethrough
	KindEndStrikethrough
	KindStartLink
	KindEndLink
	KindStartImage
	KindEndImage

	// Leaves.
	KindText
	KindCode
	KindHTML
	KindSoftBreak
	KindHardBreak
	KindRule
)

//nolint:gochecknoglobals // Read-only lookup table.
var kindNames = [...]string{
	KindOther:              "Other",
	KindStartParagraph:     "StartParagraph",
	KindEndParagraph:       "EndParagraph",
	KindStartHeading:       "StartHeading",
	KindEndHeading:         "EndHeading",
	KindStartBlockquote:    "StartBlockquote",
	KindEndBlockquote:      "EndBlockquote",
	KindStartList:          "StartList",
	KindEndList:            "EndList",
	KindStartItem:          "StartItem",
	KindEndItem:            "EndItem",
	KindStartCodeBlock:     "StartCodeBlock",
	KindEndCodeBlock:       "EndCodeBlock",
	KindStartEmphasis:      "StartEmphasis",
	KindEndEmphasis:        "EndEmphasis",
	KindStartStrong:        "StartStrong",
	KindEndStrong:          "EndStrong",
	KindStartStrikethrough: "StartStrikethrough",
	KindEndStrikethrough:   "EndStrikethrough",
	KindStartLink:          "StartLink",
	KindEndLink:            "EndLink",
	KindStartImage:         "StartImage",
	KindEndImage:           "EndImage",
	KindText:               "Text",
	KindCode:               "Code",
	KindHTML:               "HTML",
	KindSoftBreak:          "SoftBreak",
	KindHardBreak:          "HardBreak",
	KindRule:               "Rule",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Event is one structural unit of a parsed document.
// Only the fields relevant to Kind are populated.
type Event struct {
	Kind Kind

	// Level is the heading depth (>= 1) for heading events.
	Level int

	// Ordered and Start describe a list for KindStartList.
	Ordered bool
	Start   int

	// Destination and Title are set on link and image events.
	Destination string
	Title       string

	// Text holds the literal content of Text, Code and HTML events.
	Text string
}

// Text returns a literal text event.
func Text(s string) Event {
	return Event{Kind: KindText, Text: s}
}

// SoftBreak returns a soft line break event.
func SoftBreak() Event {
	return Event{Kind: KindSoftBreak}
}

// StartHeading returns the opening event of a heading with the given depth.
func StartHeading(level int) Event {
	return Event{Kind: KindStartHeading, Level: level}
}

// EndHeading returns the closing event of a heading with the given depth.
func EndHeading(level int) Event {
	return Event{Kind: KindEndHeading, Level: level}
}

// StartLink returns the opening event of a link.
func StartLink(destination, title string) Event {
	return Event{Kind: KindStartLink, Destination: destination, Title: title}
}

// EndLink returns the closing event of a link carrying its target.
func EndLink(destination, title string) Event {
	return Event{Kind: KindEndLink, Destination: destination, Title: title}
}

// StartList returns the opening event of a list.
func StartList(ordered bool, start int) Event {
	return Event{Kind: KindStartList, Ordered: ordered, Start: start}
}

// Marker returns an event that carries nothing but its kind.
func Marker(kind Kind) Event {
	return Event{Kind: kind}
}

// IsStart reports whether the event opens a container.
func (e Event) IsStart() bool {
	switch e.Kind {
	case KindStartParagraph, KindStartHeading, KindStartBlockquote, KindStartList,
		KindStartItem, KindStartCodeBlock, KindStartEmphasis, KindStartStrong,
		KindStartStrikethrough, KindStartLink, KindStartImage:
		return true
	default:
		return false
	}
}

// IsEnd reports whether the event closes a container.
func (e Event) IsEnd() bool {
	switch e.Kind {
	case KindEndParagraph, KindEndHeading, KindEndBlockquote, KindEndList,
		KindEndItem, KindEndCodeBlock, KindEndEmphasis, KindEndStrong,
		KindEndStrikethrough, KindEndLink, KindEndImage:
		return true
	default:
		return false
	}
}
