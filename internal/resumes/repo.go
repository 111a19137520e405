package resumes

import (
	"context"
	"errors"
)

// ErrDuplicate reports that a resume with the same (user, file name) pair
// is already stored.
var ErrDuplicate = errors.New("resume already stored")

// ErrNotFound reports that no resume matches the given id.
var ErrNotFound = errors.New("resume not found")

// ResumesRepo defines persistence operations for stored resume analyses.
type ResumesRepo interface {
	// StoreAnalysis persists one analysis run as a single transaction and
	// returns the new resume id.
	StoreAnalysis(ctx context.Context, userID int64, fileName string, result AnalysisResult) (int64, error)
	// CheckResumeExists reports whether the user already stored a resume
	// under this file name, and if so its id.
	CheckResumeExists(ctx context.Context, userID int64, fileName string) (int64, bool, error)
	// GetUserResumes lists a user's resumes newest-first, each with the
	// match percentage of its most recent analysis run.
	GetUserResumes(ctx context.Context, userID int64) ([]ResumeSummary, error)
	// GetResumeHistory returns a resume's analysis runs, most recent first.
	GetResumeHistory(ctx context.Context, resumeID int64) ([]HistoryEntry, error)
	// DeleteResume removes the resume and every child row transactionally.
	DeleteResume(ctx context.Context, resumeID int64) error
}
