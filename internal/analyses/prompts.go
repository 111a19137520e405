package analyses

import _ "embed"

var (
	//go:embed prompts/resume.txt
	resumePromptTemplate string
	//go:embed prompts/job.txt
	jobPromptTemplate string
)

// Response-token budgets: the resume schema is rich, the job reply is only a
// comma-separated list.
const (
	resumeMaxTokens = 1800
	jobMaxTokens    = 200
)

func resumePrompt(text string) string {
	return resumePromptTemplate + "\nResume:\n" + text
}

func jobPrompt(text string) string {
	return jobPromptTemplate + "\n" + text
}
