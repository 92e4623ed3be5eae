package analyzer

import (
	"regexp"
	"strings"
)

// requirementPatterns capture the span after a requirement lead-in, up to the
// next sentence boundary. Every match of every pattern contributes, in
// pattern order.
var requirementPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)requirements?[:\s]+([^.!]+)`),
	regexp.MustCompile(`(?i)qualifications?[:\s]+([^.!]+)`),
	regexp.MustCompile(`(?i)skills?[:\s]+([^.!]+)`),
	regexp.MustCompile(`(?i)experience[:\s]+([^.!]+)`),
	regexp.MustCompile(`(?i)must have[:\s]+([^.!]+)`),
	regexp.MustCompile(`(?i)need someone with[:\s]+([^.!]+)`),
}

// requirementSplitRe breaks a captured span into discrete items: comma,
// semicolon, bullet, newline, or the word "and".
var requirementSplitRe = regexp.MustCompile(`[,;•\n]|\band\s+`)

const (
	maxRequirements   = 5
	minRequirementLen = 4  // inclusive
	maxRequirementLen = 50 // exclusive
)

// extractRequirements pulls up to maxRequirements short requirement items out
// of text. Items shorter than minRequirementLen are noise fragments; items at
// maxRequirementLen or longer are run-on sentences. Both are dropped.
func extractRequirements(text string) []string {
	var out []string
	for _, pat := range requirementPatterns {
		for _, m := range pat.FindAllStringSubmatch(text, -1) {
			for _, item := range requirementSplitRe.Split(m[1], -1) {
				item = strings.TrimSpace(item)
				n := len([]rune(item))
				if n >= minRequirementLen && n < maxRequirementLen {
					out = append(out, item)
				}
			}
		}
	}
	if len(out) > maxRequirements {
		out = out[:maxRequirements]
	}
	return out
}
