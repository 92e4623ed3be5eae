package analyzer

import "strings"

// categoryKeywords pairs a category with its keyword set. Declared as a slice
// so ties resolve to the first-declared category, which a map would not
// guarantee.
type categoryKeywords struct {
	category Category
	keywords []string
}

var categoryTable = []categoryKeywords{
	{CategoryJob, []string{"job", "position", "role", "hiring", "employment", "career", "work", "developer", "engineer", "manager"}},
	{CategoryFreelance, []string{"freelance", "contract", "gig", "project", "consultant", "independent"}},
	{CategoryBusiness, []string{"business", "partnership", "investment", "startup", "entrepreneur", "venture"}},
	{CategoryGrant, []string{"grant", "funding", "scholarship", "award", "fellowship", "sponsorship"}},
	{CategoryCompetition, []string{"competition", "contest", "hackathon", "challenge", "tournament"}},
	{CategoryInternship, []string{"internship", "intern", "trainee", "graduate program", "placement"}},
}

// detectCategory scores lower against each keyword set: one point per
// distinct keyword found as a substring. Highest score wins, first-declared
// category wins ties, zero everywhere means "other". Matching is substring
// level, so "gig" also matches inside "gigabyte".
func detectCategory(lower string) Category {
	best := CategoryOther
	bestScore := 0
	for _, ck := range categoryTable {
		score := 0
		for _, kw := range ck.keywords {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best = ck.category
		}
	}
	return best
}
