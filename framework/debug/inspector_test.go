package debug_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-genius/framework/container"
	"github.com/km-arc/go-genius/framework/debug"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func newContainer() *container.Container {
	return container.New(map[string]*container.Definition{
		"mailer": {Factory: func([]any) (any, error) { return "mailer", nil }},
		"cache":  {Factory: func([]any) (any, error) { return "cache", nil }},
	}, container.Parameters{
		"mailer": map[string]any{"host": "smtp.local", "port": 25},
	})
}

func get(t *testing.T, h http.Handler, path string) (int, map[string]any) {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), "body: %s", rr.Body.String())
	return rr.Code, body
}

// ── endpoints ────────────────────────────────────────────────────────────────

func TestInspector_Services(t *testing.T) {
	c := newContainer()
	_, err := c.Get("mailer")
	require.NoError(t, err)

	code, body := get(t, debug.NewInspector(c).Handler(), "/_container/services")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []any{
		map[string]any{"name": "cache", "resolved": false},
		map[string]any{"name": "mailer", "resolved": true},
		map[string]any{"name": container.SelfName, "resolved": false},
	}, body["data"])
}

func TestInspector_Services_FilterResolved(t *testing.T) {
	c := newContainer()
	_, err := c.Get("cache")
	require.NoError(t, err)
	h := debug.NewInspector(c).Handler()

	code, body := get(t, h, "/_container/services?resolved=true")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []any{map[string]any{"name": "cache", "resolved": true}}, body["data"])

	code, body = get(t, h, "/_container/services?resolved=false")
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, body["data"], 2)

	code, body = get(t, h, "/_container/services?resolved=maybe")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, `query resolved must be a boolean, got "maybe"`, body["message"])
}

func TestInspector_Service(t *testing.T) {
	c := newContainer()
	h := debug.NewInspector(c).Handler()

	code, body := get(t, h, "/_container/services/cache")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]any{"name": "cache", "resolved": false}, body["data"])
	assert.False(t, c.Resolved("cache"), "inspecting must not build")

	code, body = get(t, h, "/_container/services/ghost")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "service not found: ghost", body["message"])
}

func TestInspector_Parameters(t *testing.T) {
	h := debug.NewInspector(newContainer()).Handler()

	code, body := get(t, h, "/_container/parameters")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]any{"mailer": map[string]any{"host": "smtp.local", "port": float64(25)}}, body["data"])

	code, body = get(t, h, "/_container/parameters/mailer.port")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]any{"path": "mailer.port", "value": float64(25)}, body["data"])

	code, body = get(t, h, "/_container/parameters/mailer.user")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "parameter not found: mailer.user", body["message"])
}

func TestInspector_Parameters_UnencodableValue(t *testing.T) {
	c := container.New(nil, container.Parameters{"ports": map[any]any{80: "http"}})

	code, body := get(t, debug.NewInspector(c).Handler(), "/_container/parameters")

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Contains(t, body["message"], "unsupported type")
}
