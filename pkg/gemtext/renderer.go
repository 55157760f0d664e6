// Package gemtext converts Markdown documents into Gemtext, the line-oriented
// markup served over the Gemini protocol.
package gemtext

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"

	"github.com/yaklabco/exarch/pkg/mdevent"
)

// maxHeadingLevel is the deepest heading Gemtext can express.
const maxHeadingLevel = 3

// listState tracks numbering for one open list.
type listState struct {
	ordered bool
	next    int
}

// Renderer writes Gemtext for a stream of document events.
//
// Links are not written inline. Each link end writes a short "[n]" marker and
// queues the target; the queued targets are written as "=>" link lines once
// the enclosing paragraph ends. Link ids start at 1 and increase across the
// whole document.
//
// A Renderer holds per-document state and must not be reused.
type Renderer struct {
	out        *bufio.Writer
	nextLinkID int
	links      linkQueue
	lists      []listState
}

// NewRenderer creates a renderer writing to w. Output is buffered and flushed
// when Render returns.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{
		out:        bufio.NewWriter(w),
		nextLinkID: 1,
	}
}

// Render consumes events in order and writes the resulting Gemtext.
// The only possible error is a failure of the underlying writer.
func (r *Renderer) Render(events iter.Seq[mdevent.Event]) error {
	for event := range events {
		if err := r.handle(event); err != nil {
			return err
		}
	}
	if err := r.out.Flush(); err != nil {
		return fmt.Errorf("flush gemtext: %w", err)
	}
	return nil
}

//nolint:cyclop // One case per event kind.
func (r *Renderer) handle(event mdevent.Event) error {
	switch event.Kind {
	case mdevent.KindStartEmphasis, mdevent.KindEndEmphasis:
		return r.write("*")
	case mdevent.KindStartStrong, mdevent.KindEndStrong:
		return r.write("**")
	case mdevent.KindStartStrikethrough, mdevent.KindEndStrikethrough:
		return r.write("~~")
	case mdevent.KindStartBlockquote:
		return r.write(">")
	case mdevent.KindStartList:
		r.lists = append(r.lists, listState{ordered: event.Ordered, next: event.Start})
		return nil
	case mdevent.KindStartItem:
		return r.write(r.itemMarker())
	case mdevent.KindEndItem:
		return r.write("\n")
	case mdevent.KindEndList:
		if len(r.lists) > 0 {
			r.lists = r.lists[:len(r.lists)-1]
		}
		return r.write("\n")
	case mdevent.KindStartHeading:
		return r.write(headingMarker(event.Level))
	case mdevent.KindEndHeading:
		return r.write("\n\n")
	case mdevent.KindEndParagraph:
		if err := r.write("\n\n"); err != nil {
			return err
		}
		return r.writePendingLinks()
	case mdevent.KindEndLink:
		return r.handleLink(event.Destination, event.Title)
	case mdevent.KindText:
		return r.write(event.Text)
	case mdevent.KindSoftBreak:
		return r.write(" ")
	default:
		return nil
	}
}

// itemMarker returns the prefix for the next item of the innermost list.
func (r *Renderer) itemMarker() string {
	if len(r.lists) == 0 {
		return "* "
	}
	top := &r.lists[len(r.lists)-1]
	if !top.ordered {
		return "* "
	}
	marker := strconv.Itoa(top.next) + ". "
	top.next++
	return marker
}

// headingMarker clamps level to the range Gemtext supports.
func headingMarker(level int) string {
	level = max(1, min(level, maxHeadingLevel))
	return strings.Repeat("#", level) + " "
}

func (r *Renderer) handleLink(destination, title string) error {
	r.links.push(Link{Destination: destination, Title: title})
	if err := r.write("[" + strconv.Itoa(r.nextLinkID) + "]"); err != nil {
		return err
	}
	r.nextLinkID++
	return nil
}

// writePendingLinks writes one link line per queued link, then a blank line.
// It writes nothing when the queue is empty.
func (r *Renderer) writePendingLinks() error {
	if r.links.len() == 0 {
		return nil
	}
	for _, link := range r.links.drain() {
		line := "=> " + link.Destination
		if link.Title != "" {
			line += " " + link.Title
		}
		if err := r.write(line + "\n"); err != nil {
			return err
		}
	}
	return r.write("\n")
}

func (r *Renderer) write(s string) error {
	if _, err := r.out.WriteString(s); err != nil {
		return fmt.Errorf("write gemtext: %w", err)
	}
	return nil
}
