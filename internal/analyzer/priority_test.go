package analyzer

import (
	"testing"
	"time"
)

func TestScorePriority(t *testing.T) {
	now := time.Date(2025, 2, 25, 0, 0, 0, 0, time.UTC)
	day := func(d int) time.Time { return now.AddDate(0, 0, d) }

	tests := []struct {
		name         string
		lower        string
		deadline     time.Time
		hasDeadline  bool
		compensation string
		want         float64
	}{
		{"base only", "plain text", time.Time{}, false, "", 5.0},
		{"single urgency keyword", "urgent opening", time.Time{}, false, "", 7.0},
		{"urgency applies once", "urgent asap immediate rush priority", time.Time{}, false, "", 7.0},
		{"seniority applies once", "senior lead director cto", time.Time{}, false, "", 6.5},
		{"urgency plus seniority", "urgent senior role", time.Time{}, false, "", 8.5},
		{"six figure compensation", "text", time.Time{}, false, "$150k", 6.0},
		{"five figure compensation", "text", time.Time{}, false, "$80k", 5.0},
		{"equity bonus", "text", time.Time{}, false, "$90k + equity", 5.5},
		{"six figures and equity", "text", time.Time{}, false, "$150,000 + equity", 6.5},
		{"deadline in 2 days", "text", day(2), true, "", 7.0},
		{"deadline in 3 days", "text", day(3), true, "", 7.0},
		{"deadline in 7 days", "text", day(7), true, "", 6.0},
		{"deadline in 30 days", "text", day(30), true, "", 5.5},
		{"deadline in 60 days", "text", day(60), true, "", 5.0},
		{"past deadline counts as soon", "text", day(-2), true, "", 7.0},
		{"everything stacks then clamps", "urgent senior", day(1), true, "$200k + equity", 10.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorePriority(tt.lower, tt.deadline, tt.hasDeadline, tt.compensation, now)
			if got != tt.want {
				t.Errorf("scorePriority(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestScorePriority_Clamped(t *testing.T) {
	now := time.Date(2025, 2, 25, 0, 0, 0, 0, time.UTC)
	got := scorePriority("urgent asap senior lead cto director", now.AddDate(0, 0, 1), true, "$999k + equity", now)
	if got != 10.0 {
		t.Errorf("stacked bonuses must clamp to 10.0, got %v", got)
	}
}
