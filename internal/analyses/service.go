package analyses

import (
	"context"
	"encoding/json"
	"strings"

	"skillmatch-backend/internal/llm"
	"skillmatch-backend/internal/shared/metrics"
	"skillmatch-backend/internal/shared/telemetry"
)

// Service turns free text into structured results via the LLM client.
type Service struct {
	LLM llm.Client
}

// NewService constructs a Service.
func NewService(client llm.Client) *Service {
	return &Service{LLM: client}
}

// StructureResume structures raw resume text into a ResumeAnalysis.
// Upstream failures propagate as errors; a reply with no parseable JSON
// degrades to an empty analysis with Degenerate set rather than failing.
func (s *Service) StructureResume(ctx context.Context, text string) (StructureOutcome, error) {
	reply, err := s.LLM.Complete(ctx, resumePrompt(text), resumeMaxTokens)
	if err != nil {
		return StructureOutcome{}, err
	}

	block, found := locateJSONObject(reply)
	if !found {
		return s.degenerate("no JSON object in reply"), nil
	}

	var analysis ResumeAnalysis
	if err := json.Unmarshal([]byte(block), &analysis); err != nil {
		return s.degenerate("reply JSON did not parse"), nil
	}
	return StructureOutcome{Analysis: analysis}, nil
}

func (s *Service) degenerate(reason string) StructureOutcome {
	metrics.IncLLMDegenerate()
	telemetry.Warn("analysis.degenerate", map[string]any{"reason": reason})
	return StructureOutcome{Degenerate: true}
}

// ExtractJobSkills extracts an ordered skill list from job-description text.
// The model is told to reply with a bare comma-separated list; if it prefixes
// the list anyway ("Skills: ..."), only the part after the first colon is kept.
func (s *Service) ExtractJobSkills(ctx context.Context, text string) ([]string, error) {
	reply, err := s.LLM.Complete(ctx, jobPrompt(text), jobMaxTokens)
	if err != nil {
		return nil, err
	}

	if idx := strings.Index(reply, ":"); idx >= 0 {
		reply = strings.TrimSpace(reply[idx+1:])
	}

	skills := []string{}
	for _, token := range strings.Split(reply, ",") {
		if trimmed := strings.TrimSpace(token); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	return skills, nil
}
