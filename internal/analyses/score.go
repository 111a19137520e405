package analyses

import (
	"math"
	"strings"
)

// MatchResult is the derived comparison between a job's required skills and
// a resume's technical skills. Percentage is an integer in [0,100].
type MatchResult struct {
	Matched       []string `json:"matched"`
	MatchedCount  int      `json:"matchedCount"`
	TotalRequired int      `json:"totalRequired"`
	Percentage    int      `json:"percentage"`
}

// MatchSkills compares the job's required-skill list against the resume's
// four technical-skill categories. Matching is exact case-insensitive set
// membership; no stemming, synonyms or partial credit. An empty job skill
// list scores zero.
func MatchSkills(jobSkills []string, skills TechnicalSkills) MatchResult {
	have := make(map[string]struct{})
	for _, group := range [][]string{skills.Languages, skills.Frameworks, skills.Tools, skills.IDEs} {
		for _, s := range group {
			if trimmed := strings.ToLower(strings.TrimSpace(s)); trimmed != "" {
				have[trimmed] = struct{}{}
			}
		}
	}

	result := MatchResult{
		Matched:       []string{},
		TotalRequired: len(jobSkills),
	}
	for _, skill := range jobSkills {
		normalized := strings.ToLower(strings.TrimSpace(skill))
		if _, ok := have[normalized]; ok {
			result.Matched = append(result.Matched, normalized)
		}
	}
	result.MatchedCount = len(result.Matched)

	if result.TotalRequired > 0 {
		result.Percentage = int(math.Round(float64(result.MatchedCount) / float64(result.TotalRequired) * 100))
	}
	return result
}
