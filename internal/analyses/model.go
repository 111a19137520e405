package analyses

// PersonalInformation is the contact block extracted from a resume.
type PersonalInformation struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Github   string `json:"github"`
	Linkedin string `json:"linkedin"`
}

// EducationEntry is one education row from a resume.
type EducationEntry struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Location    string `json:"location"`
	Duration    string `json:"duration"`
	Grade       string `json:"grade"`
}

// ProjectEntry is one project with its ordered bullets.
type ProjectEntry struct {
	Title     string   `json:"title"`
	TechStack string   `json:"techStack"`
	Duration  string   `json:"duration"`
	Bullets   []string `json:"bullets"`
}

// ExperienceEntry is one work-experience row with its ordered bullets.
type ExperienceEntry struct {
	Company  string   `json:"company"`
	Role     string   `json:"role"`
	Location string   `json:"location"`
	Duration string   `json:"duration"`
	Bullets  []string `json:"bullets"`
}

// TechnicalSkills groups skills into the four fixed categories.
type TechnicalSkills struct {
	Languages  []string `json:"languages"`
	Frameworks []string `json:"frameworks"`
	Tools      []string `json:"tools"`
	IDEs       []string `json:"ides"`
}

// ResumeAnalysis is the structured form of one resume. Every field is
// absent-capable: the model reply may omit any of them, and an all-empty
// value is a valid, if degenerate, outcome.
type ResumeAnalysis struct {
	PersonalInformation *PersonalInformation `json:"personalInformation,omitempty"`
	ProfessionalSummary string               `json:"professionalSummary,omitempty"`
	Education           []EducationEntry     `json:"education,omitempty"`
	Projects            []ProjectEntry       `json:"projects,omitempty"`
	Experience          []ExperienceEntry    `json:"experience,omitempty"`
	TechnicalSkills     TechnicalSkills      `json:"technicalSkills"`
	Coursework          []string             `json:"coursework,omitempty"`
	Certifications      []string             `json:"certifications,omitempty"`
}

// StructureOutcome is the result of structuring resume text. Degenerate is
// set when the model replied but no JSON object could be parsed out of the
// reply; callers can then distinguish "nothing parseable" from an upstream
// failure, which is reported as an error instead.
type StructureOutcome struct {
	Analysis   ResumeAnalysis
	Degenerate bool
}
