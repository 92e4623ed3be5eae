package analyzer

import (
	"reflect"
	"strings"
	"testing"
)

func TestExtractRequirements(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			"comma separated",
			"Requirements: Python, Django, REST APIs.",
			[]string{"Python", "Django", "REST APIs"},
		},
		{
			"short items dropped",
			"Requirements: Go, Kubernetes, 5 years experience.",
			[]string{"Kubernetes", "5 years experience"},
		},
		{
			"split on the word and",
			"Must have: Docker and Kubernetes and Terraform.",
			[]string{"Docker", "Kubernetes", "Terraform"},
		},
		{
			"semicolons and bullets",
			"Qualifications: strong SQL; data modeling • cloud platforms.",
			[]string{"strong SQL", "data modeling", "cloud platforms"},
		},
		{
			"need someone with",
			"We need someone with React experience, TypeScript knowledge.",
			[]string{"React experience", "TypeScript knowledge"},
		},
		{
			"no lead-in",
			"Just a plain description without any lists.",
			nil,
		},
		{
			"empty input",
			"",
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractRequirements(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("extractRequirements(%q)\n got %#v\nwant %#v", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractRequirements_LengthBoundaries(t *testing.T) {
	tests := []struct {
		length int
		kept   bool
	}{
		{3, false},
		{4, true},
		{49, true},
		{50, false},
	}
	for _, tt := range tests {
		item := strings.Repeat("x", tt.length)
		got := extractRequirements("Requirements: " + item + ", filler item")
		found := false
		for _, r := range got {
			if r == item {
				found = true
			}
		}
		if found != tt.kept {
			t.Errorf("item of length %d: kept=%v, want %v", tt.length, found, tt.kept)
		}
	}
}

func TestExtractRequirements_CapsAtFive(t *testing.T) {
	text := "Requirements: alpha, bravo, charlie, delta, echoes, foxtrot, golfer"
	got := extractRequirements(text)
	if len(got) != 5 {
		t.Fatalf("got %d items, want 5", len(got))
	}
	if got[0] != "alpha" || got[4] != "echoes" {
		t.Errorf("expected first five accepted items in order, got %v", got)
	}
}
