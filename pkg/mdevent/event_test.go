package mdevent_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/exarch/pkg/mdevent"
)

func TestKindString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind mdevent.Kind
		want string
	}{
		{mdevent.KindOther, "Other"},
		{mdevent.KindStartHeading, "StartHeading"},
		{mdevent.KindEndLink, "EndLink"},
		{mdevent.KindSoftBreak, "SoftBreak"},
		{mdevent.KindRule, "Rule"},
		{mdevent.Kind(200), "Kind(200)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.kind.String())
		})
	}
}

func TestEventConstructors(t *testing.T) {
	t.Parallel()

	assert.Equal(t, mdevent.Event{Kind: mdevent.KindText, Text: "hi"}, mdevent.Text("hi"))
	assert.Equal(t, 4, mdevent.StartHeading(4).Level)
	assert.Equal(t, mdevent.KindEndHeading, mdevent.EndHeading(2).Kind)

	link := mdevent.EndLink("http://x.com", "t")
	assert.Equal(t, mdevent.KindEndLink, link.Kind)
	assert.Equal(t, "http://x.com", link.Destination)
	assert.Equal(t, "t", link.Title)

	list := mdevent.StartList(true, 3)
	assert.True(t, list.Ordered)
	assert.Equal(t, 3, list.Start)
}

func TestEventStartEnd(t *testing.T) {
	t.Parallel()

	assert.True(t, mdevent.Marker(mdevent.KindStartParagraph).IsStart())
	assert.False(t, mdevent.Marker(mdevent.KindStartParagraph).IsEnd())
	assert.True(t, mdevent.EndLink("a", "").IsEnd())
	assert.False(t, mdevent.Text("x").IsStart())
	assert.False(t, mdevent.Text("x").IsEnd())
	assert.False(t, mdevent.SoftBreak().IsEnd())
}
