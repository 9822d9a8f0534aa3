package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripCodeFence(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"no fence", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"leading whitespace", "  \n```json\n{}\n```  ", "{}"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, stripCodeFence(tc.in))
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	assert.Equal(t, `{"a": {"b": 2}}`, extractJSONObject(`noise {"a": {"b": 2}} trailing`))
	assert.Equal(t, "", extractJSONObject("no braces here"))
}

func TestSplitParagraphs(t *testing.T) {
	got := splitParagraphs("one\n\n  \ntwo\n\nthree")
	assert.Equal(t, []string{"one", "two", "three"}, got)

	assert.Empty(t, splitParagraphs("   \n\n  "))
}
