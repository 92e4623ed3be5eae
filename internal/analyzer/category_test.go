package analyzer

import (
	"strings"
	"testing"
)

func TestDetectCategory(t *testing.T) {
	tests := []struct {
		text string
		want Category
	}{
		{"we are hiring a backend developer for a full-time position", CategoryJob},
		{"freelance gig, short contract for an independent consultant", CategoryFreelance},
		{"startup seeking investment for a new venture", CategoryBusiness},
		{"research grant and fellowship funding available", CategoryGrant},
		{"hackathon challenge, win the contest", CategoryCompetition},
		{"summer internship for students, paid trainee placement", CategoryInternship},
		{"nothing relevant whatsoever", CategoryOther},
		{"", CategoryOther},
		// "job" alone vs "grant funding scholarship": grant wins on count.
		{"job grant funding scholarship", CategoryGrant},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := detectCategory(strings.ToLower(tt.text)); got != tt.want {
				t.Errorf("detectCategory(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

// Equal scores resolve to the category declared first in the table.
func TestDetectCategory_TieBreak(t *testing.T) {
	// "hiring" (job) and "freelance" (freelance) score 1 each; job is
	// declared first.
	if got := detectCategory("hiring freelance"); got != CategoryJob {
		t.Errorf("tie should go to first-declared category, got %q", got)
	}
}

// Substring matching is the documented behavior, not an accident.
func TestDetectCategory_SubstringMatch(t *testing.T) {
	// "gig" inside "gigabyte" still counts for freelance.
	if got := detectCategory("a gigabyte of data"); got != CategoryFreelance {
		t.Errorf("substring match expected: got %q", got)
	}
}
