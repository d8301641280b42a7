package telegram

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSplitMessage(t *testing.T) {
	assert.Equal(t, []string{"short"}, SplitMessage("short", 10))

	text := strings.Repeat("a", 6) + "\n" + strings.Repeat("b", 6)
	parts := SplitMessage(text, 10)
	assert.Equal(t, []string{"aaaaaa\n", "bbbbbb"}, parts)

	long := strings.Repeat("я", 25)
	parts = SplitMessage(long, 10)
	assert.Len(t, parts, 3)
	for _, p := range parts {
		assert.LessOrEqual(t, utf8.RuneCountInString(p), 10)
	}
	assert.Equal(t, long, strings.Join(parts, ""))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", Truncate("hello", 5))
	assert.Equal(t, "he...", Truncate("hello world", 5))
	assert.Equal(t, "пр...", Truncate("привет мир", 5))
	assert.Equal(t, "he", Truncate("hello", 2))
}

func TestEscapeMarkdown(t *testing.T) {
	assert.Equal(t, `my\_notes\*v2\*.txt`, EscapeMarkdown("my_notes*v2*.txt"))
	assert.Equal(t, "plain.md", EscapeMarkdown("plain.md"))
}
