package analyzer

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

// testNow is the injected clock for deterministic scoring.
var testNow = time.Date(2025, 2, 25, 12, 0, 0, 0, time.UTC)

func TestAnalyze_FullPosting(t *testing.T) {
	text := "Urgent: Senior Backend Engineer needed. Deadline: 2025-03-01. Requirements: Go, Kubernetes, 5 years experience. Contact: jobs@acme.com. Salary: $150k-$180k. Remote."

	a := Analyze(text, testNow)

	if a.Category != CategoryJob {
		t.Errorf("category = %q, want %q", a.Category, CategoryJob)
	}
	if a.Deadline != "2025-03-01" {
		t.Errorf("deadline = %q, want 2025-03-01", a.Deadline)
	}
	if a.Compensation == "" || !strings.Contains(a.Compensation, "$150k") {
		t.Errorf("compensation = %q, want it to contain $150k", a.Compensation)
	}
	if a.Location != LocationRemote {
		t.Errorf("location = %q, want %q", a.Location, LocationRemote)
	}
	if len(a.ContactInfo.Emails) != 1 || a.ContactInfo.Emails[0] != "jobs@acme.com" {
		t.Errorf("emails = %v, want [jobs@acme.com]", a.ContactInfo.Emails)
	}
	// Urgency + seniority + six-figure compensation + near deadline all stack.
	if a.PriorityScore <= 8.0 {
		t.Errorf("priority score = %v, want > 8.0", a.PriorityScore)
	}
}

func TestAnalyze_EmptyInput(t *testing.T) {
	a := Analyze("", testNow)

	if a.Title == "" {
		t.Error("title must never be empty")
	}
	if a.Category != CategoryOther {
		t.Errorf("category = %q, want other", a.Category)
	}
	if a.Deadline != "" {
		t.Errorf("deadline = %q, want absent", a.Deadline)
	}
	if len(a.Requirements) != 0 {
		t.Errorf("requirements = %v, want empty", a.Requirements)
	}
	if a.PriorityScore != 5.0 {
		t.Errorf("priority score = %v, want exactly 5.0 (pure base)", a.PriorityScore)
	}
}

func TestAnalyze_NoSignals(t *testing.T) {
	a := Analyze("zzz qqq xyzzy plugh", testNow)

	if a.Category != CategoryOther {
		t.Errorf("category = %q, want other", a.Category)
	}
	if a.Deadline != "" || a.Compensation != "" || a.Location != "" {
		t.Errorf("optional fields should be absent: deadline=%q comp=%q loc=%q",
			a.Deadline, a.Compensation, a.Location)
	}
	if len(a.ContactInfo.Emails)+len(a.ContactInfo.Phones)+len(a.ContactInfo.Websites) != 0 {
		t.Errorf("contact info should be empty: %+v", a.ContactInfo)
	}
	if a.PriorityScore != 5.0 {
		t.Errorf("priority score = %v, want 5.0", a.PriorityScore)
	}
}

func TestAnalyze_Idempotent(t *testing.T) {
	text := "Urgent freelance gig. Deadline: tomorrow. Budget: $5,000. Contact me@dev.io"

	first := Analyze(text, testNow)
	second := Analyze(text, testNow)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("same input and clock produced different results:\n%+v\n%+v", first, second)
	}
}

// Invariants that must hold for every input string.
func TestAnalyze_Invariants(t *testing.T) {
	inputs := []string{
		"",
		" ",
		"\n\n\n",
		"Urgent urgent URGENT asap rush priority senior lead director cto, $500k + equity, deadline: tomorrow",
		"Requirements: a, bb, ccc, dddd, eeeee, ffffff, ggggggg, hhhhhhhh, iiiiiiiii",
		"deadline: 99/99/9999 due: month 13",
		string([]byte{0xff, 0xfe, 0x00, 'a'}), // not valid UTF-8, still a string
		"Deadline: February 30, 2025. Deadline means nothing here.",
	}

	for _, in := range inputs {
		a := Analyze(in, testNow)
		if a.PriorityScore < 1.0 || a.PriorityScore > 10.0 {
			t.Errorf("input %q: score %v outside [1,10]", in, a.PriorityScore)
		}
		if !a.Category.Valid() {
			t.Errorf("input %q: invalid category %q", in, a.Category)
		}
		if a.Title == "" {
			t.Errorf("input %q: empty title", in)
		}
		if len(a.Requirements) > 5 {
			t.Errorf("input %q: %d requirements, max 5", in, len(a.Requirements))
		}
		for _, r := range a.Requirements {
			if n := len([]rune(r)); n < 4 || n >= 50 {
				t.Errorf("input %q: requirement %q length %d outside [4,50)", in, r, n)
			}
		}
		if a.Deadline != "" {
			if _, ok := a.DeadlineDate(); !ok {
				t.Errorf("input %q: deadline %q is not a valid date", in, a.Deadline)
			}
		}
	}
}
