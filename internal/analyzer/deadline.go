package analyzer

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// deadlinePatterns are tried in priority order: labeled lead-ins first,
// bare date-shaped tokens last. A match whose captured text fails date
// parsing is not a hit — the next pattern gets its turn.
var deadlinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)deadline[:\s]+([^.!\n]+)`),
	regexp.MustCompile(`(?i)due[:\s]+([^.!\n]+)`),
	regexp.MustCompile(`(?i)apply by[:\s]+([^.!\n]+)`),
	regexp.MustCompile(`(?i)closes[:\s]+([^.!\n]+)`),
	regexp.MustCompile(`(?i)expires[:\s]+([^.!\n]+)`),
	regexp.MustCompile(`(?i)\b(?:january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{1,2},?\s+\d{4}`),
	regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{4}\b`),
	regexp.MustCompile(`\b\d{4}-\d{1,2}-\d{1,2}\b`),
}

// monthNames is ordered so lookup stays deterministic when a phrase somehow
// mentions more than one month.
var monthNames = []struct {
	name  string
	month time.Month
}{
	{"january", time.January}, {"february", time.February}, {"march", time.March},
	{"april", time.April}, {"may", time.May}, {"june", time.June},
	{"july", time.July}, {"august", time.August}, {"september", time.September},
	{"october", time.October}, {"november", time.November}, {"december", time.December},
}

var (
	mdySlashRe = regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})`)
	ymdDashRe  = regexp.MustCompile(`(\d{4})-(\d{1,2})-(\d{1,2})`)
	mdyDashRe  = regexp.MustCompile(`(\d{1,2})-(\d{1,2})-(\d{4})`)
	dayRe      = regexp.MustCompile(`\b(\d{1,2})\b`)
	yearRe     = regexp.MustCompile(`\b(20\d{2})\b`)
)

// extractDeadline locates a date-bearing phrase and normalizes it to a
// calendar date. Returns false when nothing parseable is found.
func extractDeadline(text string, now time.Time) (time.Time, bool) {
	for _, pat := range deadlinePatterns {
		m := pat.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		captured := m[0]
		if len(m) > 1 {
			captured = m[1]
		}
		if d, ok := parseDate(captured, now); ok {
			return d, true
		}
	}
	return time.Time{}, false
}

// parseDate handles "Month DD, YYYY", MM/DD/YYYY, YYYY-MM-DD, MM-DD-YYYY and
// the relative terms "tomorrow" (+1d), "next week" (+7d), "next month" (+30d,
// a fixed approximation). The first numeric group of a slashed or dashed date
// is always the month. Unconstructible dates (month 13, Feb 30) fail.
func parseDate(s string, now time.Time) (time.Time, bool) {
	s = strings.ToLower(strings.TrimSpace(s))

	for _, mn := range monthNames {
		if !strings.Contains(s, mn.name) {
			continue
		}
		rest := strings.Replace(s, mn.name, " ", 1)
		dayM := dayRe.FindStringSubmatch(rest)
		yearM := yearRe.FindStringSubmatch(rest)
		if dayM == nil || yearM == nil {
			break
		}
		day, _ := strconv.Atoi(dayM[1])
		year, _ := strconv.Atoi(yearM[1])
		return makeDate(year, int(mn.month), day)
	}

	if m := mdySlashRe.FindStringSubmatch(s); m != nil {
		return makeDateStrings(m[3], m[1], m[2])
	}
	if m := ymdDashRe.FindStringSubmatch(s); m != nil {
		return makeDateStrings(m[1], m[2], m[3])
	}
	if m := mdyDashRe.FindStringSubmatch(s); m != nil {
		return makeDateStrings(m[3], m[1], m[2])
	}

	switch {
	case strings.Contains(s, "tomorrow"):
		return dateOnly(now.AddDate(0, 0, 1)), true
	case strings.Contains(s, "next week"):
		return dateOnly(now.AddDate(0, 0, 7)), true
	case strings.Contains(s, "next month"):
		return dateOnly(now.AddDate(0, 0, 30)), true
	}

	return time.Time{}, false
}

func makeDateStrings(year, month, day string) (time.Time, bool) {
	y, _ := strconv.Atoi(year)
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	return makeDate(y, m, d)
}

// makeDate builds a UTC date and rejects values time.Date would silently
// normalize, like month 13 or February 30.
func makeDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || int(d.Month()) != month || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

// dateOnly truncates a timestamp to midnight UTC.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
