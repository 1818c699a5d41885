// Package assets serves the embedded browser UI (component H) with
// ETag/If-None-Match support, generalizing the teacher's bare
// e.Static("/", "static") call into the conditional-GET semantics spec §6
// requires.
package assets

import (
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/labstack/echo/v4"
)

//go:embed static
var embedded embed.FS

// Register mounts GET /frontend/* against the embedded static assets,
// computing an ETag per file and honouring If-None-Match with a 304.
func Register(e *echo.Echo) {
	root, err := fs.Sub(embedded, "static")
	if err != nil {
		panic(err)
	}
	e.GET("/frontend/*", handler(root))
}

func handler(root fs.FS) echo.HandlerFunc {
	return func(c echo.Context) error {
		name := strings.TrimPrefix(c.Param("*"), "/")
		if name == "" {
			name = "index.html"
		}

		data, err := fs.ReadFile(root, name)
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "asset not found")
		}

		sum := sha256.Sum256(data)
		etag := `"` + hex.EncodeToString(sum[:]) + `"`

		if match := c.Request().Header.Get("If-None-Match"); match == etag {
			return c.NoContent(http.StatusNotModified)
		}

		c.Response().Header().Set("ETag", etag)
		contentType := mime.TypeByExtension(path.Ext(name))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		return c.Blob(http.StatusOK, contentType, data)
	}
}
