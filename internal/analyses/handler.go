package analyses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"skillmatch-backend/internal/llm"
	"skillmatch-backend/internal/shared/server/respond"
)

// Handler wires the text-structuring endpoint to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches structuring routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/extract", h.extract)
}

type extractRequest struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

func (h *Handler) extract(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" || req.Type == "" {
		respond.Error(c, http.StatusBadRequest, "No text or type provided")
		return
	}

	switch req.Type {
	case "resume":
		outcome, err := h.Svc.StructureResume(c.Request.Context(), req.Text)
		if err != nil {
			h.upstreamError(c, err)
			return
		}
		respond.OK(c, outcome.Analysis)
	case "job":
		skills, err := h.Svc.ExtractJobSkills(c.Request.Context(), req.Text)
		if err != nil {
			h.upstreamError(c, err)
			return
		}
		respond.OK(c, gin.H{"skills": skills})
	default:
		respond.Error(c, http.StatusBadRequest, "Invalid type")
	}
}

func (h *Handler) upstreamError(c *gin.Context, err error) {
	if errors.Is(err, llm.ErrUpstream) || errors.Is(err, llm.ErrNotConfigured) {
		respond.Error(c, http.StatusInternalServerError, "Failed to analyze text.")
		return
	}
	respond.Error(c, http.StatusInternalServerError, "Unexpected server error.")
}
