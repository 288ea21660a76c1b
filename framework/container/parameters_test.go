package container_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-genius/framework/container"
)

func TestParameters_Get(t *testing.T) {
	params := container.Parameters{
		"a": map[string]any{
			"b": map[string]any{"c": 42},
			"e": map[string]any{},
		},
		"nested": container.Parameters{"inner": "ok"},
		"leaf":   "value",
		"null":   nil,
	}

	tests := []struct {
		path string
		want any
		ok   bool
	}{
		{"a.b.c", 42, true},
		{"a.b", map[string]any{"c": 42}, true},
		{"leaf", "value", true},
		{"nested.inner", "ok", true},
		{"a.e.c", nil, false},
		{"a.x.c", nil, false},
		{"leaf.deeper", nil, false},
		{"null", nil, false},
		{"", nil, false},
		{"a..b", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := params.Get(tt.path)
			if !tt.ok {
				require.Error(t, err)
				assert.ErrorIs(t, err, container.ErrParameterNotFound)
				assert.Equal(t, "parameter not found: "+tt.path, err.Error())
				assert.False(t, params.Has(tt.path))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, params.Has(tt.path))
		})
	}
}

func TestContainer_GetParameter_NestedPath(t *testing.T) {
	found := container.New(nil, container.Parameters{"a": map[string]any{"b": map[string]any{"c": 42}}})
	missing := container.New(nil, container.Parameters{"a": map[string]any{"b": map[string]any{}}})

	v, err := found.GetParameter("a.b.c")
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.True(t, found.HasParameter("a.b.c"))

	_, err = missing.GetParameter("a.b.c")
	var nf *container.ParameterNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "a.b.c", nf.Path)
	assert.False(t, missing.HasParameter("a.b.c"))
}

func TestContainer_HasParameter_NeverPanics(t *testing.T) {
	c := container.New(nil, nil)
	for _, path := range []string{"", ".", "a", "a.b.c", "..."} {
		assert.NotPanics(t, func() { assert.False(t, c.HasParameter(path)) })
	}
}

func TestParameters_Set(t *testing.T) {
	params := container.Parameters{"leaf": "x"}

	params.Set("a.b.c", 1)
	params.Set("a.b.d", 2)
	params.Set("leaf.child", 3)

	v, err := params.Get("a.b.c")
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	v, err = params.Get("a.b.d")
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	v, err = params.Get("leaf.child")
	require.NoError(t, err)
	assert.Equal(t, 3, v)
}

func TestParameters_Merge(t *testing.T) {
	params := container.Parameters{
		"db": map[string]any{"host": "localhost", "port": 3306},
	}

	params.Merge(map[string]any{
		"db":  map[string]any{"port": 5432, "name": "app"},
		"app": map[string]any{"env": "testing"},
	})

	assert.Equal(t, container.Parameters{
		"db":  map[string]any{"host": "localhost", "port": 5432, "name": "app"},
		"app": map[string]any{"env": "testing"},
	}, params)
}
