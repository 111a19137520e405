package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"skillmatch-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/signup", h.signup)
	rg.POST("/signin", h.signin)
}

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "Missing required fields")
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		respond.Error(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	user, err := h.Svc.Signup(c.Request.Context(), req.Username, req.Email, req.Password)
	if errors.Is(err, ErrEmailTaken) {
		respond.Error(c, http.StatusBadRequest, "User already exists.")
		return
	}
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "Failed to create user.")
		return
	}

	respond.OK(c, gin.H{
		"message":  "User registered successfully.",
		"userId":   user.UserID,
		"username": user.Username,
	})
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) signin(c *gin.Context) {
	var req signinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusUnauthorized, "Invalid email or password.")
		return
	}

	user, err := h.Svc.Signin(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		respond.Error(c, http.StatusUnauthorized, "Invalid email or password.")
		return
	}
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "Failed to sign in.")
		return
	}

	respond.OK(c, gin.H{
		"message":  "Sign in successful.",
		"userId":   user.UserID,
		"username": user.Username,
	})
}
