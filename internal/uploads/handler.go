package uploads

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"skillmatch-backend/internal/extract"
	"skillmatch-backend/internal/shared/metrics"
	"skillmatch-backend/internal/shared/server/middleware"
	"skillmatch-backend/internal/shared/server/respond"
	"skillmatch-backend/internal/shared/storage/object"
	"skillmatch-backend/internal/shared/telemetry"
)

const maxUploadBytes = 5 << 20

var extractText = extract.Text

// Handler accepts resume uploads, stores the binary and returns extracted
// text alongside the keyword-scan signals.
type Handler struct {
	Store object.ObjectStore
}

// NewHandler constructs a Handler.
func NewHandler(store object.ObjectStore) *Handler {
	return &Handler{Store: store}
}

// RegisterRoutes attaches upload routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/upload", h.upload)
}

func (h *Handler) upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("resume")
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "Upload failed")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "Unexpected server error.")
		return
	}
	if len(data) > maxUploadBytes {
		respond.Error(c, http.StatusInternalServerError, "File too large.")
		return
	}

	userID := c.Query("userId")
	if userID == "" {
		userID = "anonymous"
	}

	metrics.IncUpload()
	storageKey, size, sniffedMime, err := h.Store.Save(c.Request.Context(), userID, header.Filename, bytes.NewReader(data))
	if err != nil {
		telemetry.Error("upload.store_failed", map[string]any{
			"request_id": middleware.RequestIDFromContext(c),
			"file_name":  header.Filename,
			"error":      err.Error(),
		})
		respond.Error(c, http.StatusInternalServerError, "Upload failed")
		return
	}

	mimeType := resolveMimeType(header.Header.Get("Content-Type"), sniffedMime, header.Filename)
	text, err := extractText(c.Request.Context(), data, mimeType)
	if err != nil {
		metrics.IncExtractionFailed()
		if errors.Is(err, extract.ErrExtraction) {
			respond.Error(c, http.StatusInternalServerError, "Failed to extract text from resume.")
			return
		}
		respond.Error(c, http.StatusInternalServerError, "Unexpected server error.")
		return
	}

	telemetry.Info("upload.complete", map[string]any{
		"request_id":  middleware.RequestIDFromContext(c),
		"file_name":   header.Filename,
		"storage_key": storageKey,
		"size_bytes":  size,
		"mime_type":   mimeType,
		"text_chars":  len(text),
	})

	respond.OK(c, gin.H{
		"message":             "File uploaded and analyzed successfully",
		"skills":              ScanSkills(text),
		"sections":            ScanSections(text),
		"sectionCompleteness": SectionCompleteness(text),
		"text":                text,
	})
}

// resolveMimeType prefers the declared content type, falling back to the
// sniffed type and the file extension. DOCX sniffs as application/zip.
func resolveMimeType(declared, sniffed, fileName string) string {
	declared = strings.ToLower(strings.TrimSpace(strings.Split(declared, ";")[0]))
	if declared != "" && declared != "application/octet-stream" && declared != "application/zip" {
		return declared
	}

	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".doc":
		return "application/msword"
	}

	if declared != "" {
		return declared
	}
	return strings.ToLower(strings.TrimSpace(strings.Split(sniffed, ";")[0]))
}
