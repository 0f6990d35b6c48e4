package app

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/platform/clock"
	"library-backend/internal/platform/config"
	"library-backend/internal/platform/db/dbtest"
)

func newTestApp(t *testing.T, mutate func(*config.Config)) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}
	a := New(cfg, dbtest.Open(t), clock.Fixed{T: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)})
	t.Cleanup(a.Close)
	return a
}

func do(h http.Handler, method, target, body string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func jsonField(t *testing.T, body, key string) string {
	t.Helper()
	v := jsoniter.Get([]byte(body), key).ToString()
	require.NotEmpty(t, v, body)
	return v
}

func Test_Routes(t *testing.T) {
	a := newTestApp(t, nil)

	w := do(a.Engine, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	for _, path := range []string{"/api-books", "/api-members", "/api-borrowings", "/api-dashboard"} {
		w = do(a.Engine, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w = do(a.Engine, http.MethodGet, "/swagger/doc.json", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"/api-borrowings"`)
}

func Test_Fallbacks(t *testing.T) {
	a := newTestApp(t, nil)

	w := do(a.Engine, http.MethodPatch, "/api-books?id=1", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.JSONEq(t, `{"error":"Method not allowed","code":"METHOD_NOT_ALLOWED"}`, w.Body.String())

	w = do(a.Engine, http.MethodGet, "/api-unknown", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"NOT_FOUND"`)

	w = do(a.Engine, http.MethodGet, "/some/page", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func Test_RequestIDEchoed(t *testing.T) {
	a := newTestApp(t, nil)

	w := do(a.Engine, http.MethodGet, "/api-books", "", "X-Request-ID", "req-1")

	assert.Equal(t, "req-1", w.Header().Get("X-Request-ID"))
}

func Test_CORS(t *testing.T) {
	a := newTestApp(t, nil)

	w := do(a.Engine, http.MethodOptions, "/api-books", "",
		"Origin", "http://localhost:3000",
		"Access-Control-Request-Method", "POST",
		"Access-Control-Request-Headers", "authorization,x-client-info,apikey,content-type")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	r := newTestApp(t, func(c *config.Config) { c.CORS.AllowOrigins = []string{"https://library.example"} })
	w = do(r.Engine, http.MethodGet, "/api-books", "", "Origin", "https://evil.example")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func Test_BorrowFlowThroughEngine(t *testing.T) {
	a := newTestApp(t, nil)

	w := do(a.Engine, http.MethodPost, "/api-books", `{"title":"Dune","author":"Herbert","isbn":"1","quantity":1}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	bookID := jsonField(t, w.Body.String(), "id")
	w = do(a.Engine, http.MethodPost, "/api-members", `{"name":"Ada","email":"ada@example.com"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	memberID := jsonField(t, w.Body.String(), "id")

	w = do(a.Engine, http.MethodGet, "/api-dashboard", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"activeLoans":0`)

	w = do(a.Engine, http.MethodPost, "/api-borrowings",
		`{"book_id":"`+bookID+`","member_id":"`+memberID+`","due_date":"2024-01-10"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// the borrow event clears the memoized dashboard
	w = do(a.Engine, http.MethodGet, "/api-dashboard", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"activeLoans":1`)
}

func Test_StaticUI(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>ui</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o644))
	a := newTestApp(t, func(c *config.Config) { c.Server.StaticDir = dir })

	w := do(a.Engine, http.MethodGet, "/app.js", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "console.log(1)", w.Body.String())
	assert.NotEmpty(t, w.Header().Get("Cache-Control"))

	w = do(a.Engine, http.MethodGet, "/borrowings/123", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ui")

	w = do(a.Engine, http.MethodGet, "/api-nothing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
