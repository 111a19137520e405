package uploads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"skillmatch-backend/internal/extract"
	"skillmatch-backend/internal/shared/storage/object/local"
)

type failingStore struct{}

func (failingStore) Save(ctx context.Context, userID, fileName string, r io.Reader) (string, int64, string, error) {
	return "", 0, "", fmt.Errorf("disk full")
}

func (failingStore) Open(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	return nil, fmt.Errorf("disk full")
}

func setupUploadRouter(t *testing.T, h *Handler) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h.RegisterRoutes(r.Group("/"))
	return r
}

func multipartBody(t *testing.T, fieldName, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(fieldName, fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestUploadMissingFile(t *testing.T) {
	r := setupUploadRouter(t, NewHandler(local.New(t.TempDir())))

	body, contentType := multipartBody(t, "document", "resume.pdf", []byte("not the right field"))
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp["error"] != "Upload failed" {
		t.Fatalf("error = %q, want %q", resp["error"], "Upload failed")
	}
}

func TestUploadSuccess(t *testing.T) {
	orig := extractText
	extractText = func(ctx context.Context, data []byte, mimeType string) (string, error) {
		return "Experienced Python and SQL developer. Education: BS. Skills: leadership.", nil
	}
	defer func() { extractText = orig }()

	r := setupUploadRouter(t, NewHandler(local.New(t.TempDir())))

	body, contentType := multipartBody(t, "resume", "resume.pdf", []byte("%PDF-1.4 fake"))
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Message             string         `json:"message"`
		Skills              []string       `json:"skills"`
		Sections            []string       `json:"sections"`
		SectionCompleteness []SectionCheck `json:"sectionCompleteness"`
		Text                string         `json:"text"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Message != "File uploaded and analyzed successfully" {
		t.Fatalf("message = %q", resp.Message)
	}
	wantSkills := []string{"python", "sql", "leadership"}
	if len(resp.Skills) != len(wantSkills) {
		t.Fatalf("skills = %v, want %v", resp.Skills, wantSkills)
	}
	for i, s := range wantSkills {
		if resp.Skills[i] != s {
			t.Fatalf("skills[%d] = %q, want %q", i, resp.Skills[i], s)
		}
	}
	present := map[string]bool{}
	for _, check := range resp.SectionCompleteness {
		present[check.Section] = check.Present
	}
	if !present["education"] || !present["experience"] {
		t.Fatalf("expected education and experience present: %v", resp.SectionCompleteness)
	}
	if present["summary"] {
		t.Fatalf("did not expect summary present: %v", resp.SectionCompleteness)
	}
	if resp.Text == "" {
		t.Fatal("expected extracted text in response")
	}
}

func TestUploadExtractionFailure(t *testing.T) {
	orig := extractText
	extractText = func(ctx context.Context, data []byte, mimeType string) (string, error) {
		return "", fmt.Errorf("%w: corrupt file", extract.ErrExtraction)
	}
	defer func() { extractText = orig }()

	r := setupUploadRouter(t, NewHandler(local.New(t.TempDir())))

	body, contentType := multipartBody(t, "resume", "resume.pdf", []byte("garbage"))
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp["error"] != "Failed to extract text from resume." {
		t.Fatalf("error = %q", resp["error"])
	}
}

func TestUploadStoreFailure(t *testing.T) {
	r := setupUploadRouter(t, NewHandler(failingStore{}))

	body, contentType := multipartBody(t, "resume", "resume.pdf", []byte("%PDF-1.4"))
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp["error"] != "Upload failed" {
		t.Fatalf("error = %q, want %q", resp["error"], "Upload failed")
	}
}

func TestResolveMimeType(t *testing.T) {
	cases := []struct {
		name     string
		declared string
		sniffed  string
		fileName string
		want     string
	}{
		{"declared pdf", "application/pdf", "", "resume.pdf", "application/pdf"},
		{"declared with params", "application/pdf; charset=binary", "", "x.pdf", "application/pdf"},
		{"zip sniff docx extension", "application/zip", "application/zip", "resume.docx",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
		{"octet stream pdf extension", "application/octet-stream", "application/pdf", "resume.pdf", "application/pdf"},
		{"doc extension", "", "application/msword", "resume.doc", "application/msword"},
		{"falls back to sniffed", "", "text/plain; charset=utf-8", "notes.unknown", "text/plain"},
		{"unknown extension keeps declared", "application/zip", "application/zip", "archive.bin", "application/zip"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := resolveMimeType(tc.declared, tc.sniffed, tc.fileName); got != tc.want {
				t.Fatalf("resolveMimeType(%q, %q, %q) = %q, want %q",
					tc.declared, tc.sniffed, tc.fileName, got, tc.want)
			}
		})
	}
}
