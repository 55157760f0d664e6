package goldmark

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/exarch/pkg/mdevent"
)

func collect(t *testing.T, source string) []mdevent.Event {
	t.Helper()

	events, err := New().Collect(context.Background(), []byte(source))
	require.NoError(t, err)
	return events
}

func kinds(events []mdevent.Event) []mdevent.Kind {
	out := make([]mdevent.Kind, 0, len(events))
	for _, e := range events {
		out = append(out, e.Kind)
	}
	return out
}

func TestParser_SoftBreak(t *testing.T) {
	t.Parallel()

	events := collect(t, "foo\nbar")

	assert.Equal(t, []mdevent.Event{
		mdevent.Marker(mdevent.KindStartParagraph),
		mdevent.Text("foo"),
		mdevent.SoftBreak(),
		mdevent.Text("bar"),
		mdevent.Marker(mdevent.KindEndParagraph),
	}, events)
}

func TestParser_Headings(t *testing.T) {
	t.Parallel()

	events := collect(t, "# one\n#### four")

	assert.Equal(t, []mdevent.Event{
		mdevent.StartHeading(1),
		mdevent.Text("one"),
		mdevent.EndHeading(1),
		mdevent.StartHeading(4),
		mdevent.Text("four"),
		mdevent.EndHeading(4),
	}, events)
}

func TestParser_Link(t *testing.T) {
	t.Parallel()

	events := collect(t, `[a link](http://x.com "t")`)

	assert.Equal(t, []mdevent.Event{
		mdevent.Marker(mdevent.KindStartParagraph),
		mdevent.StartLink("http://x.com", "t"),
		mdevent.Text("a link"),
		mdevent.EndLink("http://x.com", "t"),
		mdevent.Marker(mdevent.KindEndParagraph),
	}, events)
}

func TestParser_AutoLink(t *testing.T) {
	t.Parallel()

	events := collect(t, "<http://a.example>")

	assert.Equal(t, []mdevent.Event{
		mdevent.Marker(mdevent.KindStartParagraph),
		mdevent.StartLink("http://a.example", ""),
		mdevent.Text("http://a.example"),
		mdevent.EndLink("http://a.example", ""),
		mdevent.Marker(mdevent.KindEndParagraph),
	}, events)
}

func TestParser_Emphasis(t *testing.T) {
	t.Parallel()

	events := collect(t, "*a* **b** ~~c~~")

	assert.Equal(t, []mdevent.Kind{
		mdevent.KindStartParagraph,
		mdevent.KindStartEmphasis, mdevent.KindText, mdevent.KindEndEmphasis,
		mdevent.KindText,
		mdevent.KindStartStrong, mdevent.KindText, mdevent.KindEndStrong,
		mdevent.KindText,
		mdevent.KindStartStrikethrough, mdevent.KindText, mdevent.KindEndStrikethrough,
		mdevent.KindEndParagraph,
	}, kinds(events))
}

func TestParser_TightList(t *testing.T) {
	t.Parallel()

	events := collect(t, "* first\n* second")

	assert.Equal(t, []mdevent.Kind{
		mdevent.KindStartList,
		mdevent.KindStartItem, mdevent.KindText, mdevent.KindEndItem,
		mdevent.KindStartItem, mdevent.KindText, mdevent.KindEndItem,
		mdevent.KindEndList,
	}, kinds(events))
	assert.False(t, events[0].Ordered)
}

func TestParser_OrderedList(t *testing.T) {
	t.Parallel()

	events := collect(t, "3. a\n4. b")

	require.NotEmpty(t, events)
	assert.Equal(t, mdevent.KindStartList, events[0].Kind)
	assert.True(t, events[0].Ordered)
	assert.Equal(t, 3, events[0].Start)
}

func TestParser_Blockquote(t *testing.T) {
	t.Parallel()

	events := collect(t, "> quoted")

	assert.Equal(t, []mdevent.Kind{
		mdevent.KindStartBlockquote,
		mdevent.KindStartParagraph, mdevent.KindText, mdevent.KindEndParagraph,
		mdevent.KindEndBlockquote,
	}, kinds(events))
}

func TestParser_CodeSpan(t *testing.T) {
	t.Parallel()

	events := collect(t, "use `x` here")

	assert.Equal(t, []mdevent.Event{
		mdevent.Marker(mdevent.KindStartParagraph),
		mdevent.Text("use "),
		{Kind: mdevent.KindCode, Text: "x"},
		mdevent.Text(" here"),
		mdevent.Marker(mdevent.KindEndParagraph),
	}, events)
}

func TestParser_FencedCodeBlock(t *testing.T) {
	t.Parallel()

	events := collect(t, "```\nline one\nline two\n```\n")

	assert.Equal(t, []mdevent.Event{
		mdevent.Marker(mdevent.KindStartCodeBlock),
		mdevent.Text("line one\n"),
		mdevent.Text("line two\n"),
		mdevent.Marker(mdevent.KindEndCodeBlock),
	}, events)
}

func TestParser_ThematicBreak(t *testing.T) {
	t.Parallel()

	events := collect(t, "---")

	assert.Equal(t, []mdevent.Kind{mdevent.KindRule}, kinds(events))
}

func TestParser_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, collect(t, ""))
}

func TestParser_EventsStopEarly(t *testing.T) {
	t.Parallel()

	seen := 0
	for range New().Events([]byte("# a\n\nb\n\nc")) {
		seen++
		if seen == 2 {
			break
		}
	}
	assert.Equal(t, 2, seen)
}

func TestParser_EventsCopiesSource(t *testing.T) {
	t.Parallel()

	source := []byte("hello")
	seq := New().Events(source)
	source[0] = 'j'

	var got []mdevent.Event
	for event := range seq {
		got = append(got, event)
	}
	assert.Contains(t, got, mdevent.Text("hello"))
}

func TestParser_Collect_ContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Collect(ctx, []byte("# Hello"))
	assert.Error(t, err)
}

func TestParser_Collect_ContextTimeout(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), -1*time.Second)
	defer cancel()

	_, err := New().Collect(ctx, []byte("# Hello"))
	assert.Error(t, err)
}

func TestUnescape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "plain text", "plain text"},
		{"backslash escapes", `\*not emphasis\*`, "*not emphasis*"},
		{"named entity", "AT&amp;T", "AT&T"},
		{"numeric reference", "&#35;1", "#1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, string(unescape([]byte(tt.input))))
		})
	}
}
