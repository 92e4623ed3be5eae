package analyzer

import (
	"math"
	"regexp"
	"strings"
	"time"
)

// Scoring table. Each bonus applies at most once no matter how many of its
// keywords occur.
const (
	baseScore       = 5.0
	urgencyBonus    = 2.0
	seniorityBonus  = 1.5
	sixFigureBonus  = 1.0
	equityBonus     = 0.5
	deadlineSoon    = 2.0 // <= 3 days out
	deadlineNear    = 1.0 // <= 7 days out
	deadlineVisible = 0.5 // <= 30 days out

	minScore = 1.0
	maxScore = 10.0
)

var (
	urgencyKeywords   = []string{"urgent", "asap", "immediate", "rush", "priority"}
	seniorityKeywords = []string{"senior", "lead", "manager", "director", "competitive", "cto"}

	// Six-figure marker: 100k-999k with or without the k suffix.
	sixFigureRe = regexp.MustCompile(`(?i)[1-9]\d{2}(?:k\b|,000)`)
)

// scorePriority combines urgency, seniority, compensation and deadline
// proximity into a score clamped to [minScore, maxScore].
func scorePriority(lower string, deadline time.Time, hasDeadline bool, compensation string, now time.Time) float64 {
	score := baseScore

	if containsAny(lower, urgencyKeywords) {
		score += urgencyBonus
	}
	if containsAny(lower, seniorityKeywords) {
		score += seniorityBonus
	}

	if compensation != "" {
		if sixFigureRe.MatchString(compensation) {
			score += sixFigureBonus
		}
		if strings.Contains(strings.ToLower(compensation), "equity") {
			score += equityBonus
		}
	}

	if hasDeadline {
		days := daysUntil(deadline, now)
		switch {
		case days <= 3:
			score += deadlineSoon
		case days <= 7:
			score += deadlineNear
		case days <= 30:
			score += deadlineVisible
		}
	}

	return math.Min(maxScore, math.Max(minScore, score))
}

// daysUntil computes whole days from now to deadline, negative for past
// deadlines. A deadline already behind still lands in the "soon" tier.
func daysUntil(deadline, now time.Time) int {
	return int(math.Floor(deadline.Sub(now).Hours() / 24))
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
