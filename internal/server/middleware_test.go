package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestChainAppliesInOrder(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	handler := Chain(okHandler(), mw("first"), mw("second"))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, []string{"first", "second"}, order)
}

func TestRecoveryMiddleware(t *testing.T) {
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	RecoveryMiddleware(panicking).ServeHTTP(rec, httptest.NewRequest("GET", "/api/analyses", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCORSMiddlewareHandlesPreflight(t *testing.T) {
	rec := httptest.NewRecorder()
	CORSMiddleware(okHandler()).ServeHTTP(rec, httptest.NewRequest("OPTIONS", "/api/jobs", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestContentTypeMiddleware(t *testing.T) {
	rec := httptest.NewRecorder()
	ContentTypeMiddleware(okHandler()).ServeHTTP(rec, httptest.NewRequest("GET", "/api/jobs", nil))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	rec = httptest.NewRecorder()
	ContentTypeMiddleware(okHandler()).ServeHTTP(rec, httptest.NewRequest("GET", "/static/app.js", nil))
	assert.Empty(t, rec.Header().Get("Content-Type"))
}

func TestSecurityMiddleware(t *testing.T) {
	rec := httptest.NewRecorder()
	SecurityMiddleware(okHandler()).ServeHTTP(rec, httptest.NewRequest("GET", "/api/health", nil))

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}
