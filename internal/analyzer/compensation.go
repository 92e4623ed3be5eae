package analyzer

import "regexp"

// compensationPatterns are tried in order; the first match wins and is
// returned verbatim — "$80,000-$120,000" stays a string, never a numeric
// range.
var compensationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\$[\d,]+k?(?:\s*-\s*\$[\d,]+k?)?(?:\s*\+\s*\w+)?`),
	regexp.MustCompile(`(?i)salary[:\s]*\$?[\d,]+k?(?:\s*-\s*\$?[\d,]+k?)?`),
	regexp.MustCompile(`(?i)budget[:\s]*\$?[\d,]+k?`),
	regexp.MustCompile(`(?i)pay[:\s]*\$?[\d,]+k?`),
}

// extractCompensation returns the first monetary or salary phrase found,
// or "" when the text carries none.
func extractCompensation(text string) string {
	for _, pat := range compensationPatterns {
		if m := pat.FindString(text); m != "" {
			return m
		}
	}
	return ""
}
