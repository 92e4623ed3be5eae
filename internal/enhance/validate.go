package enhance

import (
	"fmt"
	"strings"
	"time"

	"github.com/oppbot/oppbot/internal/analyzer"
)

// candidate is the JSON shape expected back from the model.
type candidate struct {
	Title         string               `json:"title"`
	Category      string               `json:"category"`
	Deadline      string               `json:"deadline"`
	Requirements  []string             `json:"requirements"`
	ContactInfo   analyzer.ContactInfo `json:"contact_info"`
	PriorityScore float64              `json:"priority_score"`
	Compensation  string               `json:"compensation"`
	Location      string               `json:"location"`
}

// validate checks every field of a model candidate against the analysis
// schema. Strict by design: one bad field rejects the whole candidate, so a
// hallucinated date can never ride in on an otherwise plausible response.
func validate(c candidate) (analyzer.Analysis, error) {
	var zero analyzer.Analysis

	title := strings.TrimSpace(c.Title)
	if title == "" {
		return zero, fmt.Errorf("validate: empty title")
	}
	if n := len([]rune(title)); n > 100 {
		return zero, fmt.Errorf("validate: title length %d exceeds 100", n)
	}

	cat := analyzer.Category(strings.ToLower(strings.TrimSpace(c.Category)))
	if !cat.Valid() {
		return zero, fmt.Errorf("validate: unknown category %q", c.Category)
	}

	deadline := strings.TrimSpace(c.Deadline)
	if deadline != "" {
		d, err := time.Parse(analyzer.DateLayout, deadline)
		if err != nil {
			return zero, fmt.Errorf("validate: deadline %q: %w", c.Deadline, err)
		}
		deadline = d.Format(analyzer.DateLayout)
	}

	if c.PriorityScore < 1.0 || c.PriorityScore > 10.0 {
		return zero, fmt.Errorf("validate: priority score %v outside [1,10]", c.PriorityScore)
	}

	if len(c.Requirements) > 5 {
		return zero, fmt.Errorf("validate: %d requirements, max 5", len(c.Requirements))
	}
	reqs := make([]string, 0, len(c.Requirements))
	for _, r := range c.Requirements {
		r = strings.TrimSpace(r)
		if n := len([]rune(r)); n < 4 || n >= 50 {
			return zero, fmt.Errorf("validate: requirement %q length outside [4,50)", r)
		}
		reqs = append(reqs, r)
	}

	return analyzer.Analysis{
		Title:         title,
		Category:      cat,
		Deadline:      deadline,
		Requirements:  reqs,
		ContactInfo:   c.ContactInfo,
		PriorityScore: c.PriorityScore,
		Compensation:  strings.TrimSpace(c.Compensation),
		Location:      strings.TrimSpace(c.Location),
	}, nil
}
