package routing_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/km-arc/go-genius/framework/routing"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func do(t *testing.T, router *routing.Router, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

// ── routes ───────────────────────────────────────────────────────────────────

func TestRouter_Verbs(t *testing.T) {
	r := routing.New(zap.NewNop())
	r.Get("/hello", okHandler)
	r.Post("/users", okHandler)

	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/hello").Code)
	assert.Equal(t, http.StatusOK, do(t, r, http.MethodPost, "/users").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(t, r, http.MethodPost, "/hello").Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/missing").Code)
}

func TestRouter_PrefixAndParam(t *testing.T) {
	r := routing.New(zap.NewNop())
	r.Prefix("/api", func(api *routing.Router) {
		api.Get("/users/{id}", func(w http.ResponseWriter, req *http.Request) {
			_, _ = w.Write([]byte(routing.Param(req, "id")))
		})
	})

	rr := do(t, r, http.MethodGet, "/api/users/42")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "42", rr.Body.String())
}

func TestRouter_GroupMiddleware(t *testing.T) {
	r := routing.New(zap.NewNop())
	r.Group(func(g *routing.Router) {
		g.Middleware(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				w.Header().Set("X-Group", "yes")
				next.ServeHTTP(w, req)
			})
		})
		g.Get("/inside", okHandler)
	})
	r.Get("/outside", okHandler)

	assert.Equal(t, "yes", do(t, r, http.MethodGet, "/inside").Header().Get("X-Group"))
	assert.Empty(t, do(t, r, http.MethodGet, "/outside").Header().Get("X-Group"))
}

func TestRouter_RecoversPanics(t *testing.T) {
	r := routing.New(zap.NewNop())
	r.Get("/panic", func(http.ResponseWriter, *http.Request) { panic("boom") })

	assert.Equal(t, http.StatusInternalServerError, do(t, r, http.MethodGet, "/panic").Code)
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := routing.New(zap.New(core))
	r.Get("/hello", okHandler)

	do(t, r, http.MethodGet, "/hello")

	entries := logs.FilterMessage("request").All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "/hello", fields["path"])
		assert.EqualValues(t, http.StatusOK, fields["status"])
		assert.NotEmpty(t, fields["request_id"])
	}
}
