package resumes

import (
	"context"
	"sort"
	"sync"
	"time"
)

type storedResume struct {
	resumeID   int64
	userID     int64
	fileName   string
	atsScore   int
	uploadDate time.Time
	result     AnalysisResult
	history    []HistoryEntry
}

// MemoryRepo is an in-memory implementation of ResumesRepo.
type MemoryRepo struct {
	mu            sync.RWMutex
	data          map[int64]*storedResume // resumeId -> resume
	nextResumeID  int64
	nextHistoryID int64
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[int64]*storedResume),
	}
}

// StoreAnalysis persists one analysis run in memory.
func (r *MemoryRepo) StoreAnalysis(ctx context.Context, userID int64, fileName string, result AnalysisResult) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, stored := range r.data {
		if stored.userID == userID && stored.fileName == fileName {
			return 0, ErrDuplicate
		}
	}

	r.nextResumeID++
	r.nextHistoryID++
	stored := &storedResume{
		resumeID:   r.nextResumeID,
		userID:     userID,
		fileName:   fileName,
		atsScore:   result.ATSScore,
		uploadDate: time.Now(),
		result:     result,
		history: []HistoryEntry{{
			ID:              r.nextHistoryID,
			ResumeID:        r.nextResumeID,
			JobDescription:  result.JobDescription,
			MatchPercentage: result.MatchPercentage,
			AnalysisDate:    time.Now(),
		}},
	}
	r.data[stored.resumeID] = stored
	return stored.resumeID, nil
}

// CheckResumeExists looks up a resume by (user, file name).
func (r *MemoryRepo) CheckResumeExists(ctx context.Context, userID int64, fileName string) (int64, bool, error) {
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, stored := range r.data {
		if stored.userID == userID && stored.fileName == fileName {
			return stored.resumeID, true, nil
		}
	}
	return 0, false, nil
}

// GetUserResumes lists a user's resumes newest-first.
func (r *MemoryRepo) GetUserResumes(ctx context.Context, userID int64) ([]ResumeSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []ResumeSummary{}
	for _, stored := range r.data {
		if stored.userID != userID {
			continue
		}
		latest := 0
		if len(stored.history) > 0 {
			latest = stored.history[len(stored.history)-1].MatchPercentage
		}
		out = append(out, ResumeSummary{
			ResumeID:              stored.resumeID,
			FileName:              stored.fileName,
			ATSScore:              stored.atsScore,
			UploadDate:            stored.uploadDate,
			LatestMatchPercentage: latest,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ResumeID > out[j].ResumeID
	})
	return out, nil
}

// GetResumeHistory returns a resume's analysis runs, most recent first.
func (r *MemoryRepo) GetResumeHistory(ctx context.Context, resumeID int64) ([]HistoryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.data[resumeID]
	if !ok {
		return []HistoryEntry{}, nil
	}
	out := make([]HistoryEntry, 0, len(stored.history))
	for i := len(stored.history) - 1; i >= 0; i-- {
		out = append(out, stored.history[i])
	}
	return out, nil
}

// DeleteResume removes the resume and its history.
func (r *MemoryRepo) DeleteResume(ctx context.Context, resumeID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[resumeID]; !ok {
		return ErrNotFound
	}
	delete(r.data, resumeID)
	return nil
}

var _ ResumesRepo = (*MemoryRepo)(nil)
