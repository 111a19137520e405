package analyses

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"skillmatch-backend/internal/llm"
)

func setupExtractRouter(t *testing.T, client llm.Client) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(NewService(client)).RegisterRoutes(r.Group(""))
	return r
}

func postExtract(t *testing.T, r *gin.Engine, payload map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/extract", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestExtractMissingFields(t *testing.T) {
	r := setupExtractRouter(t, &stubClient{})

	for _, payload := range []map[string]string{
		{},
		{"text": "hello"},
		{"type": "resume"},
	} {
		resp := postExtract(t, r, payload)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("payload %v: expected 400, got %d", payload, resp.Code)
		}
	}
}

func TestExtractInvalidType(t *testing.T) {
	r := setupExtractRouter(t, &stubClient{})

	resp := postExtract(t, r, map[string]string{"text": "hello", "type": "cover-letter"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestExtractJobMode(t *testing.T) {
	r := setupExtractRouter(t, &stubClient{reply: "Skills: React, Node, SQL."})

	resp := postExtract(t, r, map[string]string{"text": "Looking for React, Node, and SQL skills", "type": "job"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		Skills []string `json:"skills"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Skills) != 3 || body.Skills[0] != "React" || body.Skills[2] != "SQL." {
		t.Fatalf("skills = %v", body.Skills)
	}
}

func TestExtractResumeMode(t *testing.T) {
	reply := `{"professionalSummary":"Engineer.","technicalSkills":{"languages":["Go"],"frameworks":[],"tools":[],"ides":[]}}`
	r := setupExtractRouter(t, &stubClient{reply: reply})

	resp := postExtract(t, r, map[string]string{"text": "a resume", "type": "resume"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var analysis ResumeAnalysis
	if err := json.NewDecoder(resp.Body).Decode(&analysis); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if analysis.ProfessionalSummary != "Engineer." {
		t.Fatalf("unexpected summary: %q", analysis.ProfessionalSummary)
	}
}

func TestExtractResumeModeParseFailureYieldsEmptyAnalysis(t *testing.T) {
	r := setupExtractRouter(t, &stubClient{reply: "no json here"})

	resp := postExtract(t, r, map[string]string{"text": "a resume", "type": "resume"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for degraded outcome, got %d", resp.Code)
	}

	var analysis ResumeAnalysis
	if err := json.NewDecoder(resp.Body).Decode(&analysis); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if analysis.PersonalInformation != nil || analysis.ProfessionalSummary != "" {
		t.Fatalf("expected empty analysis, got %+v", analysis)
	}
}

func TestExtractUpstreamFailure(t *testing.T) {
	r := setupExtractRouter(t, &stubClient{err: fmt.Errorf("%w: down", llm.ErrUpstream)})

	resp := postExtract(t, r, map[string]string{"text": "a resume", "type": "resume"})
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}

	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Error == "" {
		t.Fatal("expected error message in body")
	}
}
