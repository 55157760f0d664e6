package gemtext

import (
	"bytes"
	"errors"
	"iter"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/exarch/pkg/mdevent"
)

func render(t *testing.T, events ...mdevent.Event) string {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, NewRenderer(&buf).Render(slices.Values(events)))
	return buf.String()
}

func paragraph(inner ...mdevent.Event) []mdevent.Event {
	out := []mdevent.Event{mdevent.Marker(mdevent.KindStartParagraph)}
	out = append(out, inner...)
	return append(out, mdevent.Marker(mdevent.KindEndParagraph))
}

func link(destination, title, text string) []mdevent.Event {
	return []mdevent.Event{
		mdevent.StartLink(destination, title),
		mdevent.Text(text),
		mdevent.EndLink(destination, title),
	}
}

func TestRenderer_Events(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		events []mdevent.Event
		want   string
	}{
		{
			name:   "paragraph",
			events: paragraph(mdevent.Text("foo"), mdevent.SoftBreak(), mdevent.Text("bar")),
			want:   "foo bar\n\n",
		},
		{
			name: "heading clamped to three",
			events: []mdevent.Event{
				mdevent.StartHeading(5), mdevent.Text("deep"), mdevent.EndHeading(5),
			},
			want: "### deep\n\n",
		},
		{
			name: "emphasis markers",
			events: []mdevent.Event{
				mdevent.Marker(mdevent.KindStartEmphasis), mdevent.Text("a"), mdevent.Marker(mdevent.KindEndEmphasis),
				mdevent.Marker(mdevent.KindStartStrong), mdevent.Text("b"), mdevent.Marker(mdevent.KindEndStrong),
				mdevent.Marker(mdevent.KindStartStrikethrough), mdevent.Text("c"), mdevent.Marker(mdevent.KindEndStrikethrough),
			},
			want: "*a***b**~~c~~",
		},
		{
			name: "blockquote",
			events: append(append([]mdevent.Event{mdevent.Marker(mdevent.KindStartBlockquote)},
				paragraph(mdevent.Text("quoted"))...), mdevent.Marker(mdevent.KindEndBlockquote)),
			want: ">quoted\n\n",
		},
		{
			name: "ignored events",
			events: []mdevent.Event{
				mdevent.Marker(mdevent.KindHardBreak),
				mdevent.Marker(mdevent.KindRule),
				{Kind: mdevent.KindCode, Text: "x"},
				{Kind: mdevent.KindHTML, Text: "<b>"},
				mdevent.Marker(mdevent.KindStartCodeBlock),
				mdevent.Marker(mdevent.KindEndCodeBlock),
			},
			want: "",
		},
		{
			name: "link with title",
			events: paragraph(link("http://x.com", "t", "x")...),
			want:   "x[1]\n\n=> http://x.com t\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, render(t, tt.events...))
		})
	}
}

func TestRenderer_Lists(t *testing.T) {
	t.Parallel()

	item := func(text string) []mdevent.Event {
		return []mdevent.Event{
			mdevent.Marker(mdevent.KindStartItem),
			mdevent.Text(text),
			mdevent.Marker(mdevent.KindEndItem),
		}
	}
	list := func(ordered bool, start int, items ...string) []mdevent.Event {
		out := []mdevent.Event{mdevent.StartList(ordered, start)}
		for _, text := range items {
			out = append(out, item(text)...)
		}
		return append(out, mdevent.Marker(mdevent.KindEndList))
	}

	t.Run("bullet", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "* first\n* second\n\n", render(t, list(false, 0, "first", "second")...))
	})

	t.Run("ordered counts from start", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "4. a\n5. b\n\n", render(t, list(true, 4, "a", "b")...))
	})

	t.Run("nested numbering is independent", func(t *testing.T) {
		t.Parallel()

		events := []mdevent.Event{mdevent.StartList(true, 1), mdevent.Marker(mdevent.KindStartItem), mdevent.Text("outer")}
		events = append(events, list(true, 1, "inner")...)
		events = append(events, mdevent.Marker(mdevent.KindEndItem))
		events = append(events, item("second")...)
		events = append(events, mdevent.Marker(mdevent.KindEndList))

		assert.Equal(t, "1. outer1. inner\n\n\n2. second\n\n", render(t, events...))
	})

	t.Run("item outside list", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "* stray\n", render(t, item("stray")...))
	})
}

func TestRenderer_LinkIDsSpanParagraphs(t *testing.T) {
	t.Parallel()

	var events []mdevent.Event
	events = append(events, paragraph(link("http://a", "", "a")...)...)
	events = append(events, paragraph(mdevent.Text("plain"))...)
	events = append(events, paragraph(link("http://b", "", "b")...)...)

	assert.Equal(t,
		"a[1]\n\n=> http://a\n\nplain\n\nb[2]\n\n=> http://b\n\n",
		render(t, events...))
}

func TestRenderer_LinksOutsideParagraphWaitForNextParagraph(t *testing.T) {
	t.Parallel()

	var events []mdevent.Event
	events = append(events, mdevent.StartHeading(1))
	events = append(events, link("http://h", "", "h")...)
	events = append(events, mdevent.EndHeading(1))
	events = append(events, paragraph(mdevent.Text("body"))...)

	assert.Equal(t, "# h[1]\n\nbody\n\n=> http://h\n\n", render(t, events...))
}

type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }

func TestRenderer_WriterErrorPropagates(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("disk full")
	err := NewRenderer(failingWriter{err: sentinel}).
		Render(slices.Values(paragraph(mdevent.Text("foo"))))

	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
}

func TestRenderer_EmptyStream(t *testing.T) {
	t.Parallel()

	var empty iter.Seq[mdevent.Event] = func(func(mdevent.Event) bool) {}
	var buf bytes.Buffer
	require.NoError(t, NewRenderer(&buf).Render(empty))
	assert.Empty(t, buf.String())
}
