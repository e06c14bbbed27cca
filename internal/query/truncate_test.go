package query

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate_ShortTextUnchanged(t *testing.T) {
	for _, text := range []string{"", "corto", strings.Repeat("word ", 50), strings.Repeat("x", 800)} {
		got, truncated := Truncate(text, 800)
		assert.False(t, truncated)
		assert.Equal(t, text, got)
	}
}

func TestTruncate_WordBoundary(t *testing.T) {
	text := strings.Repeat("word ", 200)

	got, truncated := Truncate(text, 800)
	assert.True(t, truncated)
	assert.True(t, strings.HasSuffix(got, Ellipsis))

	body := strings.TrimSuffix(got, Ellipsis)
	assert.Len(t, body, 799)
	assert.Equal(t, byte(' '), text[len(body)], "cut must land on a space")
	assert.True(t, strings.HasSuffix(body, "word"))
}

func TestTruncate_HardCutWithoutSpaces(t *testing.T) {
	got, truncated := Truncate(strings.Repeat("x", 1000), 800)
	assert.True(t, truncated)
	assert.Equal(t, strings.Repeat("x", 800)+Ellipsis, got)
}

func TestTruncate_Threshold(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"space at exactly 70%", "abcdefg hijklmnop", "abcdefg..."},
		{"space before 70%", "abcdef ghijklmnop", "abcdef ghi..."},
		{"latest space wins", "ab cdef gh ijklmnop", "ab cdef..."},
		{"tab counts as whitespace", "abcdefgh\tijklmnop", "abcdefgh..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, truncated := Truncate(tt.text, 10)
			assert.True(t, truncated)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTruncate_CountsCharacters(t *testing.T) {
	got, truncated := Truncate("áéíóúñ", 3)
	assert.True(t, truncated)
	assert.Equal(t, "áéí"+Ellipsis, got)

	got, truncated = Truncate("áéíóúñ", 6)
	assert.False(t, truncated)
	assert.Equal(t, "áéíóúñ", got)
}

func TestNewExcerpt(t *testing.T) {
	t.Run("short body is unavailable", func(t *testing.T) {
		ex := NewExcerpt("   sin texto  ")
		assert.False(t, ex.Available)
		assert.Empty(t, ex.Preview)
	})

	t.Run("long body keeps full text", func(t *testing.T) {
		body := strings.Repeat("palabra ", 200)
		ex := NewExcerpt(body)
		assert.True(t, ex.Available)
		assert.True(t, ex.Truncated)
		assert.Equal(t, body, ex.Full)
		assert.LessOrEqual(t, utf8.RuneCountInString(ex.Preview), PreviewChars+len(Ellipsis))
	})

	t.Run("medium body is shown whole", func(t *testing.T) {
		ex := NewExcerpt("Convocatoria a junta general")
		assert.True(t, ex.Available)
		assert.False(t, ex.Truncated)
		assert.Equal(t, ex.Full, ex.Preview)
	})
}
