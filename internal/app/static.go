package app

import (
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"library-backend/internal/platform/httpx"
)

// serveSPA returns the requested UI asset, or index.html for client-side routes.
func serveSPA(c *gin.Context, fsys http.FileSystem) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		httpx.NotFound(c)
		return
	}

	reqPath := strings.TrimPrefix(path.Clean("/"+c.Request.URL.Path), "/")
	if reqPath == "" {
		reqPath = "index.html"
	}

	// 実ファイルがあるならそれを返す（Content-Type を推測、キャッシュ付与）
	if serveFile(c, fsys, reqPath) {
		return
	}
	// なければ index.html にフォールバック
	if serveFile(c, fsys, "index.html") {
		return
	}
	httpx.NotFound(c)
}

func serveFile(c *gin.Context, fsys http.FileSystem, name string) bool {
	f, err := fsys.Open("/" + name)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		return false
	}
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		c.Header("Content-Type", ct)
	}
	// index.html 以外はキャッシュ（SPAの基本運用）
	if name != "index.html" {
		c.Header("Cache-Control", "public, max-age=86400, immutable")
	}
	http.ServeContent(c.Writer, c.Request, name, info.ModTime(), f)
	return true
}
