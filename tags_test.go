package callflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTags(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []Tag
	}{
		{
			name: "no markers",
			line: "Just checking in",
			want: nil,
		},
		{
			name: "single tag",
			line: "How much is it? [QUESTION: pricing]",
			want: []Tag{{Kind: TagQuestion, Value: "pricing"}},
		},
		{
			name: "kind order regardless of position",
			line: "I'm worried [OBJECTION: price] and [EMOTION: hesitant]",
			want: []Tag{
				{Kind: TagEmotion, Value: "hesitant"},
				{Kind: TagObjection, Value: "price"},
			},
		},
		{
			name: "case insensitive",
			line: "[emotion: curious] [Cue: wants proof]",
			want: []Tag{
				{Kind: TagEmotion, Value: "curious"},
				{Kind: TagCue, Value: "wants proof"},
			},
		},
		{
			name: "first occurrence wins",
			line: "[EMOTION: calm] then [EMOTION: angry]",
			want: []Tag{{Kind: TagEmotion, Value: "calm"}},
		},
		{
			name: "value trimmed",
			line: "[ OBJECTION :   too expensive  ]",
			want: []Tag{{Kind: TagObjection, Value: "too expensive"}},
		},
		{
			name: "unrecognized kind ignored",
			line: "[TONE: sarcastic] [CUE: ready]",
			want: []Tag{{Kind: TagCue, Value: "ready"}},
		},
		{
			name: "empty value ignored",
			line: "[QUESTION:   ]",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractTags(tt.line))
		})
	}
}

func TestExtractOrderedByLine(t *testing.T) {
	tags := extractOrdered("[CUE: a] [OBJECTION: b] [EMOTION: c]", TagOrderLine)
	assert.Equal(t, []Tag{
		{Kind: TagCue, Value: "a"},
		{Kind: TagObjection, Value: "b"},
		{Kind: TagEmotion, Value: "c"},
	}, tags)
}

func TestTagString(t *testing.T) {
	assert.Equal(t, "Objection: price", Tag{Kind: TagObjection, Value: "price"}.String())
	assert.Equal(t, "Question: pricing", Tag{Kind: TagQuestion, Value: "pricing"}.String())
	assert.Equal(t, "TONE", TagKind("TONE").Display())
}

func TestJoinTags(t *testing.T) {
	got := JoinTags([]Tag{
		{Kind: TagObjection, Value: "price"},
		{Kind: TagEmotion, Value: "hesitant"},
	})
	assert.Equal(t, "Objection: price, Emotion: hesitant", got)
	assert.Equal(t, "", JoinTags(nil))
}

func TestTagKinds(t *testing.T) {
	assert.Equal(t, []TagKind{TagEmotion, TagQuestion, TagObjection, TagCue}, TagKinds())
}
