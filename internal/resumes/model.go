package resumes

import (
	"time"

	"skillmatch-backend/internal/analyses"
)

// AnalysisResult is the full payload persisted for one analysis run: the
// structured resume plus the job context and the score computed against it.
type AnalysisResult struct {
	analyses.ResumeAnalysis

	ATSScore        int      `json:"atsScore"`
	JobSkills       []string `json:"jobSkills,omitempty"`
	JobDescription  string   `json:"jobDescription,omitempty"`
	MatchPercentage int      `json:"matchPercentage"`
}

// ResumeSummary is one row of a user's resume listing, carrying the match
// percentage of the most recent analysis run.
type ResumeSummary struct {
	ResumeID              int64     `json:"resumeId"`
	FileName              string    `json:"fileName"`
	ATSScore              int       `json:"atsScore"`
	UploadDate            time.Time `json:"uploadDate"`
	LatestMatchPercentage int       `json:"latestMatchPercentage"`
}

// HistoryEntry is one analysis-history row for a resume.
type HistoryEntry struct {
	ID              int64     `json:"id"`
	ResumeID        int64     `json:"resumeId"`
	JobDescription  string    `json:"jobDescription"`
	MatchPercentage int       `json:"matchPercentage"`
	AnalysisDate    time.Time `json:"analysisDate"`
}
