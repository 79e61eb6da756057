package statics

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", path, nil))
	return rr
}

func TestServeStatics_Embedded(t *testing.T) {
	h := ServeStatics("", "/produk/")

	for _, path := range []string{"/", "/index.html"} {
		rr := get(h, path)
		assert.Equal(t, http.StatusOK, rr.Code, path)
		assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
		assert.Contains(t, rr.Body.String(), `data-resource="produk"`, path)
		assert.NotContains(t, rr.Body.String(), "{{", path)
	}

	rr := get(h, "/script.js")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "document.body.dataset.resource")

	assert.Equal(t, http.StatusNotFound, get(h, "/missing.js").Code)
}

func TestServeStatics_Dir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"),
		[]byte(`<body data-resource="{{.Resource}}"></body>`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte(`console.log(1)`), 0o644))

	h := ServeStatics(dir, "items")

	assert.Equal(t, `<body data-resource="items"></body>`, get(h, "/").Body.String())
	assert.Equal(t, `console.log(1)`, get(h, "/app.js").Body.String())
}

func TestServeStatics_DirWithoutIndex(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte(`console.log(1)`), 0o644))

	h := ServeStatics(dir, "items")

	assert.Equal(t, http.StatusOK, get(h, "/app.js").Code)
}
