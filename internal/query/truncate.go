package query

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// PreviewChars is the preview length used when displaying a notice body
	PreviewChars = 800

	// Ellipsis marks a truncated preview
	Ellipsis = "..."

	// minBodyChars is the trimmed length a body must exceed to be shown
	minBodyChars = 10

	boundaryRatio = 0.7
)

// Truncate shortens text to at most maxChars characters. It cuts at the last
// whitespace inside the first maxChars characters when that whitespace sits at
// or past 70% of maxChars, otherwise it cuts hard at maxChars. Truncated previews end
// with Ellipsis.
func Truncate(text string, maxChars int) (string, bool) {
	maxChars = max(maxChars, 0)
	if utf8.RuneCountInString(text) <= maxChars {
		return text, false
	}

	runes := []rune(text)
	candidate := runes[:maxChars]

	boundary := -1
	for i := len(candidate) - 1; i >= 0; i-- {
		if unicode.IsSpace(candidate[i]) {
			boundary = i
			break
		}
	}

	if boundary >= 0 && float64(boundary) >= boundaryRatio*float64(maxChars) {
		return string(runes[:boundary]) + Ellipsis, true
	}
	return string(candidate) + Ellipsis, true
}

// Excerpt is the display form of a notice body
type Excerpt struct {
	Preview   string
	Full      string
	Truncated bool
	Available bool
}

// NewExcerpt builds the preview for a body. Bodies with ten characters or
// fewer of content are reported as unavailable.
func NewExcerpt(body string) Excerpt {
	if utf8.RuneCountInString(strings.TrimSpace(body)) <= minBodyChars {
		return Excerpt{Full: body}
	}
	preview, truncated := Truncate(body, PreviewChars)
	return Excerpt{
		Preview:   preview,
		Full:      body,
		Truncated: truncated,
		Available: true,
	}
}
