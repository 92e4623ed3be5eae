package analyzer

import "regexp"

var (
	// local-part@domain with a 2+ letter TLD. Shape only — nothing is
	// verified to resolve.
	emailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	// North-American 3-3-4 digit shape, optional - or . separators.
	phoneRe = regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`)
	// http/https through the first whitespace.
	urlRe = regexp.MustCompile(`https?://[^\s]+`)
)

// extractContacts pulls emails, phone numbers and URLs as literal matched
// substrings. Repeats are deduplicated in first-occurrence order.
func extractContacts(text string) ContactInfo {
	return ContactInfo{
		Emails:   dedupe(emailRe.FindAllString(text, -1)),
		Phones:   dedupe(phoneRe.FindAllString(text, -1)),
		Websites: dedupe(urlRe.FindAllString(text, -1)),
	}
}

func dedupe(in []string) []string {
	if len(in) == 0 {
		return in
	}
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
