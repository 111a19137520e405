package uploads

import "strings"

// Fixed vocabularies scanned for as a cheap signal independent of the LLM.
var (
	skillVocabulary = []string{
		"python", "java", "sql", "aws", "javascript", "react", "node",
		"leadership", "communication", "problem-solving",
	}
	sectionVocabulary = []string{"summary", "experience", "education", "skills"}
)

// SectionCheck reports whether one expected resume section was found.
type SectionCheck struct {
	Section string `json:"section"`
	Present bool   `json:"present"`
}

// ScanSkills returns the subset of the skill vocabulary present in text as a
// case-insensitive substring, in vocabulary order.
func ScanSkills(text string) []string {
	return scan(text, skillVocabulary)
}

// ScanSections returns the subset of the section vocabulary present in text.
func ScanSections(text string) []string {
	return scan(text, sectionVocabulary)
}

// SectionCompleteness reports presence for every expected section.
func SectionCompleteness(text string) []SectionCheck {
	lower := strings.ToLower(text)
	checks := make([]SectionCheck, 0, len(sectionVocabulary))
	for _, section := range sectionVocabulary {
		checks = append(checks, SectionCheck{
			Section: section,
			Present: strings.Contains(lower, section),
		})
	}
	return checks
}

func scan(text string, vocabulary []string) []string {
	lower := strings.ToLower(text)
	found := []string{}
	for _, term := range vocabulary {
		if strings.Contains(lower, term) {
			found = append(found, term)
		}
	}
	return found
}
