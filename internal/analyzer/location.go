package analyzer

import (
	"regexp"
	"strings"
)

// Canonical location markers.
const (
	LocationRemote = "Remote"
	LocationOnsite = "On-site"
)

var (
	remoteRe   = regexp.MustCompile(`(?i)\bremote\b`)
	wfhRe      = regexp.MustCompile(`(?i)work from home`)
	onsiteRe   = regexp.MustCompile(`(?i)\bon-?site\b`)
	locLabelRe = regexp.MustCompile(`(?i)(?:location|based in)[:\s]+([^.!\n]+)`)
	// Capitalized phrase after "in": "in San Francisco", "in New York City".
	inCityRe = regexp.MustCompile(`\bin\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`)
)

// extractLocation applies rules in fixed order — remote markers, onsite
// markers, labeled lead-ins, then the capitalized-phrase-after-"in"
// heuristic. First hit wins; no hit means no location.
func extractLocation(text string) string {
	if remoteRe.MatchString(text) || wfhRe.MatchString(text) {
		return LocationRemote
	}
	if onsiteRe.MatchString(text) {
		return LocationOnsite
	}
	if m := locLabelRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := inCityRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}
