package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"skillmatch-backend/internal/users"
)

func TestStateStoreConsumeIsOneShot(t *testing.T) {
	store := newStateStore()
	store.put("abc", time.Now().Add(time.Minute))

	if !store.consume("abc") {
		t.Fatal("expected first consume to succeed")
	}
	if store.consume("abc") {
		t.Fatal("expected second consume to fail")
	}
	if store.consume("never-stored") {
		t.Fatal("expected unknown state to fail")
	}
}

func TestStateStoreRejectsExpired(t *testing.T) {
	store := newStateStore()
	store.put("old", time.Now().Add(-time.Second))

	if store.consume("old") {
		t.Fatal("expected expired state to fail")
	}
}

func TestAppendUserParams(t *testing.T) {
	got, err := appendUserParams("https://app.example.com/oauth?tab=signin", users.User{UserID: 7, Username: "ada"})
	if err != nil {
		t.Fatalf("appendUserParams: %v", err)
	}
	if !strings.Contains(got, "userId=7") || !strings.Contains(got, "username=ada") || !strings.Contains(got, "tab=signin") {
		t.Fatalf("unexpected redirect url: %q", got)
	}

	if _, err := appendUserParams("", users.User{}); err == nil {
		t.Fatal("expected error for empty redirect url")
	}
}

func TestStartFailsWhenNotConfigured(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	svc := NewGoogleService("", "", "", "", users.NewService(users.NewMemoryRepo()))
	svc.RegisterRoutes(r.Group("/"))

	req := httptest.NewRequest(http.MethodGet, "/auth/google/start", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestCallbackValidatesStateAndCode(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	svc := NewGoogleService("id", "secret", "https://api.example.com/auth/google/callback",
		"https://app.example.com", users.NewService(users.NewMemoryRepo()))
	svc.RegisterRoutes(r.Group("/"))

	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing params status = %d, want 400", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/auth/google/callback?state=bogus&code=abc", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bogus state status = %d, want 400", rec.Code)
	}
}
