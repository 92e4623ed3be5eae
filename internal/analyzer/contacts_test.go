package analyzer

import (
	"reflect"
	"testing"
)

func TestExtractContacts(t *testing.T) {
	tests := []struct {
		name string
		text string
		want ContactInfo
	}{
		{
			"all three kinds",
			"Email jobs@acme.com or call 555-123-4567, details at https://acme.com/careers",
			ContactInfo{
				Emails:   []string{"jobs@acme.com"},
				Phones:   []string{"555-123-4567"},
				Websites: []string{"https://acme.com/careers"},
			},
		},
		{
			"phone separator variants",
			"Call 5551234567 or 555.123.4567",
			ContactInfo{Phones: []string{"5551234567", "555.123.4567"}},
		},
		{
			"nothing",
			"no contact details in this text",
			ContactInfo{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractContacts(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("extractContacts(%q)\n got %+v\nwant %+v", tt.text, got, tt.want)
			}
		})
	}
}

// Repeated mentions collapse to one entry, first occurrence order preserved.
// This is a deliberate implementation choice; the matched substrings
// themselves stay verbatim.
func TestExtractContacts_Deduplicates(t *testing.T) {
	text := "Write to hr@co.io, again hr@co.io, or ceo@co.io and then hr@co.io"
	got := extractContacts(text)
	want := []string{"hr@co.io", "ceo@co.io"}
	if !reflect.DeepEqual(got.Emails, want) {
		t.Errorf("emails = %v, want %v", got.Emails, want)
	}
}

func TestExtractContacts_ShapeOnly(t *testing.T) {
	// Shape matches are accepted even when plainly unreachable.
	got := extractContacts("ping nobody@invalid.zz or 000-000-0000")
	if len(got.Emails) != 1 || len(got.Phones) != 1 {
		t.Errorf("shape-only matching expected: %+v", got)
	}
}
