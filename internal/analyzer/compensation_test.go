package analyzer

import "testing"

func TestExtractCompensation(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"range with k suffix", "Salary: $150k-$180k. Remote.", "$150k-$180k"},
		{"full range", "We offer $80,000-$120,000 per year", "$80,000-$120,000"},
		{"single amount", "One-time payment of $5,000 on delivery", "$5,000"},
		{"plus equity", "Comp is $160k + equity for this role", "$160k + equity"},
		{"labeled salary without dollar", "salary: 95k DOE", "salary: 95k"},
		{"labeled budget", "Budget: $3,000 for the whole project", "$3,000"},
		{"pay lead-in", "pay: 2,500 upon completion", "pay: 2,500"},
		{"nothing", "unpaid volunteer position", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractCompensation(tt.text); got != tt.want {
				t.Errorf("extractCompensation(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
