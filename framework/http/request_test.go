package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gohttp "github.com/km-arc/go-genius/framework/http"
)

func TestRequest_Query(t *testing.T) {
	req := gohttp.NewRequest(httptest.NewRequest(http.MethodGet, "/x?name=mailer&empty=", nil))

	assert.Equal(t, "mailer", req.Query("name"))
	assert.Equal(t, "fallback", req.Query("empty", "fallback"))
	assert.Equal(t, "", req.Query("missing"))
	assert.True(t, req.Has("name"))
	assert.False(t, req.Has("empty"))
	assert.Equal(t, http.MethodGet, req.Method())
	assert.Equal(t, "/x", req.Path())
}

func TestRequest_QueryBool(t *testing.T) {
	tests := []struct {
		url     string
		value   bool
		ok      bool
		wantErr bool
	}{
		{"/?resolved=true", true, true, false},
		{"/?resolved=0", false, true, false},
		{"/", false, false, false},
		{"/?resolved=", false, false, false},
		{"/?resolved=maybe", false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			req := gohttp.NewRequest(httptest.NewRequest(http.MethodGet, tt.url, nil))
			value, ok, err := req.QueryBool("resolved")
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.value, value)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestRequest_RouteParamAndHeader(t *testing.T) {
	var got *gohttp.Request
	r := chi.NewRouter()
	r.Get("/services/{name}", func(w http.ResponseWriter, req *http.Request) {
		got = gohttp.NewRequest(req)
	})

	raw := httptest.NewRequest(http.MethodGet, "/services/mailer", nil)
	raw.Header.Set("X-Request-Id", "abc")
	r.ServeHTTP(httptest.NewRecorder(), raw)

	require.NotNil(t, got)
	assert.Equal(t, "mailer", got.RouteParam("name"))
	assert.Equal(t, "abc", got.Header("X-Request-Id"))
	assert.Same(t, got.Raw(), got.Raw())
}
