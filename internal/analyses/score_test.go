package analyses

import (
	"reflect"
	"testing"
)

func TestMatchSkillsScenario(t *testing.T) {
	skills := TechnicalSkills{
		Languages:  []string{"JavaScript"},
		Frameworks: []string{"React"},
		Tools:      []string{},
		IDEs:       []string{},
	}
	got := MatchSkills([]string{"react", "sql"}, skills)

	if !reflect.DeepEqual(got.Matched, []string{"react"}) {
		t.Fatalf("Matched = %v, want [react]", got.Matched)
	}
	if got.Percentage != 50 {
		t.Fatalf("Percentage = %d, want 50", got.Percentage)
	}
	if got.MatchedCount != 1 || got.TotalRequired != 2 {
		t.Fatalf("counts = %d/%d, want 1/2", got.MatchedCount, got.TotalRequired)
	}
}

func TestMatchSkillsEmptyJobListScoresZero(t *testing.T) {
	skills := TechnicalSkills{Languages: []string{"Go"}}
	got := MatchSkills(nil, skills)
	if got.Percentage != 0 {
		t.Fatalf("Percentage = %d, want 0", got.Percentage)
	}
	if got.TotalRequired != 0 || got.MatchedCount != 0 {
		t.Fatalf("counts = %d/%d, want 0/0", got.MatchedCount, got.TotalRequired)
	}
}

func TestMatchSkillsCaseInsensitive(t *testing.T) {
	skills := TechnicalSkills{
		Languages: []string{"PYTHON", "Java"},
		Tools:     []string{" Docker "},
	}
	got := MatchSkills([]string{"Python", "docker", "Rust"}, skills)
	if !reflect.DeepEqual(got.Matched, []string{"python", "docker"}) {
		t.Fatalf("Matched = %v", got.Matched)
	}
	if got.Percentage != 67 {
		t.Fatalf("Percentage = %d, want 67", got.Percentage)
	}
}

func TestMatchSkillsPercentageBounds(t *testing.T) {
	skills := TechnicalSkills{Languages: []string{"go", "sql", "python"}}
	cases := [][]string{
		nil,
		{"go"},
		{"go", "sql"},
		{"rust", "zig"},
		{"go", "sql", "python", "rust", "zig", "c"},
	}
	for _, jobSkills := range cases {
		got := MatchSkills(jobSkills, skills)
		if got.Percentage < 0 || got.Percentage > 100 {
			t.Fatalf("Percentage out of range for %v: %d", jobSkills, got.Percentage)
		}
	}
}

func TestMatchSkillsRounding(t *testing.T) {
	skills := TechnicalSkills{Languages: []string{"a"}}
	got := MatchSkills([]string{"a", "b", "c"}, skills)
	if got.Percentage != 33 {
		t.Fatalf("Percentage = %d, want 33", got.Percentage)
	}
	skills = TechnicalSkills{Languages: []string{"a", "b"}}
	got = MatchSkills([]string{"a", "b", "c"}, skills)
	if got.Percentage != 67 {
		t.Fatalf("Percentage = %d, want 67", got.Percentage)
	}
}
