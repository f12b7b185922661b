package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/CircuitOps/CM-Backend/internal/middleware"
	"github.com/CircuitOps/CM-Backend/internal/utils"
)

// mockFetcher implements middleware.SessionFetcher without any database dependency.
type mockFetcher struct {
	session utils.SessionData
	err     error
}

func (m mockFetcher) FindSessionByID(id string) (utils.SessionData, error) {
	return m.session, m.err
}

// callWithCookie wraps a simple 200-OK inner handler in the provided middleware,
// optionally setting one cookie on the request, and returns the recorded response.
func callWithCookie(t *testing.T, mw func(http.Handler) http.Handler, cookieName, cookieValue string) *httptest.ResponseRecorder {
	t.Helper()

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := mw(inner)
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if cookieName != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: cookieValue})
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestSessionMiddleware_MissingCookie(t *testing.T) {
	fetcher := mockFetcher{}
	mw := middleware.SessionMiddleware(fetcher)

	rec := callWithCookie(t, mw, "", "")

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestSessionMiddleware_ExpiredSession(t *testing.T) {
	fetcher := mockFetcher{
		session: utils.SessionData{
			UserID:    "some-user",
			ExpiresAt: time.Now().Add(-1 * time.Hour),
		},
	}
	mw := middleware.SessionMiddleware(fetcher)

	rec := callWithCookie(t, mw, "session_id", "expired-session-id")

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Session expired") {
		t.Errorf("expected body to contain %q, got: %q", "Session expired", rec.Body.String())
	}
}

func TestSessionMiddleware_FetcherError(t *testing.T) {
	fetcher := mockFetcher{err: errors.New("session not found")}
	mw := middleware.SessionMiddleware(fetcher)

	rec := callWithCookie(t, mw, "session_id", "nonexistent-session-id")

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestSessionMiddleware_ValidSession(t *testing.T) {
	const wantUserID = "test-user-123"

	fetcher := mockFetcher{
		session: utils.SessionData{
			UserID:    wantUserID,
			ExpiresAt: time.Now().Add(1 * time.Hour),
		},
	}

	// inner handler reads and echoes the userID from context
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, ok := utils.GetUserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "userID not in context", http.StatusInternalServerError)
			return
		}
		if gotUserID != wantUserID {
			http.Error(w, "wrong userID in context: "+gotUserID, http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	handler := middleware.SessionMiddleware(fetcher)(inner)
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "valid-session"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAdminMiddleware_NonAdminForbidden(t *testing.T) {
	fetcher := mockFetcher{
		session: utils.SessionData{
			UserID:    "regular-user",
			Role:      "user",
			ExpiresAt: time.Now().Add(1 * time.Hour),
		},
	}
	mw := middleware.AdminMiddleware(fetcher)

	rec := callWithCookie(t, mw, "session_id", "valid-session")

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
}

func TestAdminMiddleware_AdminAllowed(t *testing.T) {
	fetcher := mockFetcher{
		session: utils.SessionData{
			UserID:    "admin-user",
			Role:      "admin",
			ExpiresAt: time.Now().Add(1 * time.Hour),
		},
	}
	mw := middleware.AdminMiddleware(fetcher)

	rec := callWithCookie(t, mw, "session_id", "valid-session")

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestCORSMiddleware_AllowedOrigin(t *testing.T) {
	mw := middleware.CORSMiddleware([]string{"https://inventory.example.com"})
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Origin", "https://inventory.example.com")
	rec := httptest.NewRecorder()
	mw(inner).ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://inventory.example.com" {
		t.Errorf("expected origin echoed back, got %q", got)
	}
}

func TestCORSMiddleware_UnknownOrigin(t *testing.T) {
	mw := middleware.CORSMiddleware([]string{"https://inventory.example.com"})
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec := httptest.NewRecorder()
	mw(inner).ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected no CORS header for unknown origin, got %q", got)
	}
}
