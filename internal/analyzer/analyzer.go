// Package analyzer converts free-form opportunity text (job postings,
// freelance gigs, grants) into a structured record: title, category,
// deadline, requirements, contacts, compensation, location and a
// priority score.
//
// Everything here is pure pattern extraction over the input string plus an
// injected timestamp. No I/O, no clock reads, no shared state — Analyze is
// safe to call concurrently and returns identical output for identical
// (text, now) pairs.
package analyzer

import (
	"strings"
	"time"
)

// DateLayout is the canonical deadline format used across the service.
const DateLayout = "2006-01-02"

// Category classifies an opportunity.
type Category string

const (
	CategoryJob         Category = "job"
	CategoryFreelance   Category = "freelance"
	CategoryBusiness    Category = "business"
	CategoryGrant       Category = "grant"
	CategoryCompetition Category = "competition"
	CategoryInternship  Category = "internship"
	CategoryOther       Category = "other"
)

// Categories lists every valid category value.
var Categories = []Category{
	CategoryJob, CategoryFreelance, CategoryBusiness, CategoryGrant,
	CategoryCompetition, CategoryInternship, CategoryOther,
}

// Valid reports whether c is one of the enumerated categories.
func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// ContactInfo holds contact details pulled verbatim from the text.
// Values are the literal matched substrings, deduplicated in first-occurrence
// order; nothing is validated for reachability.
type ContactInfo struct {
	Emails   []string `json:"emails"`
	Phones   []string `json:"phones"`
	Websites []string `json:"websites"`
}

// Analysis is the structured result of analyzing one opportunity text.
type Analysis struct {
	Title         string      `json:"title"`
	Category      Category    `json:"category"`
	Deadline      string      `json:"deadline,omitempty"` // YYYY-MM-DD, empty if none found
	Requirements  []string    `json:"requirements"`
	ContactInfo   ContactInfo `json:"contact_info"`
	PriorityScore float64     `json:"priority_score"`
	Compensation  string      `json:"compensation,omitempty"`
	Location      string      `json:"location,omitempty"`
}

// DeadlineDate returns the parsed deadline, if any.
func (a Analysis) DeadlineDate() (time.Time, bool) {
	if a.Deadline == "" {
		return time.Time{}, false
	}
	d, err := time.Parse(DateLayout, a.Deadline)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// Analyze runs every extractor over text and assembles the result.
// Total function: any string input, including empty, yields a fully
// populated Analysis. now is injected so deadline-relative scoring
// stays deterministic in tests.
func Analyze(text string, now time.Time) Analysis {
	lower := strings.ToLower(text)

	deadline, hasDeadline := extractDeadline(text, now)
	compensation := extractCompensation(text)

	a := Analysis{
		Title:         deriveTitle(text),
		Category:      detectCategory(lower),
		Requirements:  extractRequirements(text),
		ContactInfo:   extractContacts(text),
		Compensation:  compensation,
		Location:      extractLocation(text),
		PriorityScore: scorePriority(lower, deadline, hasDeadline, compensation, now),
	}
	if hasDeadline {
		a.Deadline = deadline.Format(DateLayout)
	}
	if a.Requirements == nil {
		a.Requirements = []string{}
	}
	return a
}
