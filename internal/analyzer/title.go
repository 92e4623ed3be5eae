package analyzer

import "strings"

// defaultTitle is used when the input has no usable text at all.
const defaultTitle = "Untitled Opportunity"

const (
	titleMaxRunes     = 100
	titlePrefixRunes  = 50
	titleEllipsis     = "..."
)

// deriveTitle produces a short human-readable title: the first line verbatim
// when it fits, otherwise a fixed-length prefix of the whole text with an
// ellipsis marker. Never empty, never over titleMaxRunes runes.
func deriveTitle(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return defaultTitle
	}

	line := trimmed
	if i := strings.IndexByte(trimmed, '\n'); i >= 0 {
		line = strings.TrimSpace(trimmed[:i])
	}
	if line != "" && len([]rune(line)) < titleMaxRunes {
		return line
	}

	r := []rune(trimmed)
	if len(r) > titlePrefixRunes {
		return strings.TrimSpace(string(r[:titlePrefixRunes])) + titleEllipsis
	}
	return trimmed
}
