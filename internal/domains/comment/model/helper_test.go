package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanContent(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "hello world", "hello world"},
		{"strips tags", "<b>hello</b> <i>world</i>", "hello world"},
		{"trims whitespace", "  hello  ", "hello"},
		{"unclosed tag at end", "hello <b", "hello"},
		{"only tags", "<p></p>", ""},
		{"self closing", "line<br/>break", "linebreak"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanContent(tt.input))
		})
	}
}

func TestContainsBannedWord(t *testing.T) {
	assert.True(t, ContainsBannedWord("this is shit"))
	assert.True(t, ContainsBannedWord("ShIt happens"))
	assert.True(t, ContainsBannedWord("xbadword1x"))
	assert.False(t, ContainsBannedWord("a perfectly fine comment"))
	assert.False(t, ContainsBannedWord(""))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 3.33, Round2(10.0/3.0))
	assert.Equal(t, 4.5, Round2(4.5))
	assert.Equal(t, 0.0, Round2(0))
	assert.Equal(t, 4.67, Round2(14.0/3.0))
}
