package resumes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"skillmatch-backend/internal/shared/metrics"
	"skillmatch-backend/internal/shared/server/middleware"
	"skillmatch-backend/internal/shared/server/respond"
	"skillmatch-backend/internal/shared/telemetry"
)

// Handler exposes the stored-analysis HTTP surface.
type Handler struct {
	Repo ResumesRepo
}

// NewHandler constructs a Handler.
func NewHandler(repo ResumesRepo) *Handler {
	return &Handler{Repo: repo}
}

// RegisterRoutes attaches resume persistence routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/storeAnalysis", h.storeAnalysis)
	rg.GET("/resumes", h.listResumes)
	rg.DELETE("/resumes", h.deleteResume)
	rg.GET("/resumeHistory", h.resumeHistory)
}

type storeAnalysisRequest struct {
	UserID         *int64          `json:"userId"`
	FileName       string          `json:"fileName"`
	AnalysisResult *AnalysisResult `json:"analysisResult"`
}

func (h *Handler) storeAnalysis(c *gin.Context) {
	var req storeAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "Missing required fields")
		return
	}
	if req.UserID == nil || req.FileName == "" || req.AnalysisResult == nil {
		respond.Error(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	ctx := c.Request.Context()
	userID := *req.UserID

	existingID, exists, err := h.Repo.CheckResumeExists(ctx, userID, req.FileName)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "Failed to store analysis.")
		return
	}
	if exists {
		metrics.IncAnalysisDuplicate()
		respond.OK(c, gin.H{
			"success":        true,
			"resumeId":       existingID,
			"isDuplicate":    true,
			"analysisResult": req.AnalysisResult,
		})
		return
	}

	resumeID, err := h.Repo.StoreAnalysis(ctx, userID, req.FileName, *req.AnalysisResult)
	if errors.Is(err, ErrDuplicate) {
		// Lost the race with a concurrent store for the same file name.
		// The unique constraint kept a single parent row; return it.
		existingID, exists, lookupErr := h.Repo.CheckResumeExists(ctx, userID, req.FileName)
		if lookupErr != nil || !exists {
			respond.Error(c, http.StatusInternalServerError, "Failed to store analysis.")
			return
		}
		metrics.IncAnalysisDuplicate()
		respond.OK(c, gin.H{
			"success":        true,
			"resumeId":       existingID,
			"isDuplicate":    true,
			"analysisResult": req.AnalysisResult,
		})
		return
	}
	if err != nil {
		telemetry.Error("resumes.store_failed", map[string]any{
			"request_id": middleware.RequestIDFromContext(c),
			"user_id":    userID,
			"file_name":  req.FileName,
			"error":      err.Error(),
		})
		respond.Error(c, http.StatusInternalServerError, "Failed to store analysis.")
		return
	}

	metrics.IncAnalysisStored()
	respond.OK(c, gin.H{
		"success":        true,
		"resumeId":       resumeID,
		"isDuplicate":    false,
		"analysisResult": req.AnalysisResult,
	})
}

func (h *Handler) listResumes(c *gin.Context) {
	userID, ok := queryID(c, "userId")
	if !ok {
		return
	}

	summaries, err := h.Repo.GetUserResumes(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "Failed to fetch resumes.")
		return
	}
	respond.OK(c, gin.H{"resumes": summaries})
}

func (h *Handler) deleteResume(c *gin.Context) {
	resumeID, ok := queryID(c, "resumeId")
	if !ok {
		return
	}

	err := h.Repo.DeleteResume(c.Request.Context(), resumeID)
	if errors.Is(err, ErrNotFound) {
		respond.Error(c, http.StatusNotFound, "Resume not found.")
		return
	}
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "Failed to delete resume.")
		return
	}
	respond.OK(c, gin.H{"success": true})
}

func (h *Handler) resumeHistory(c *gin.Context) {
	resumeID, ok := queryID(c, "resumeId")
	if !ok {
		return
	}

	history, err := h.Repo.GetResumeHistory(c.Request.Context(), resumeID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "Failed to fetch resume history.")
		return
	}
	respond.OK(c, gin.H{"history": history})
}

// queryID parses a required numeric query parameter, responding 400 itself
// when the parameter is missing or malformed.
func queryID(c *gin.Context, name string) (int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		respond.Error(c, http.StatusBadRequest, "Missing "+name+" parameter")
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "Invalid "+name+" parameter")
		return 0, false
	}
	return id, true
}
