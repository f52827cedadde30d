// Package httpui holds the embedded balance page: one server-rendered
// template plus the static assets it polls the API with.
package httpui

import (
	"embed"
	"html/template"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/landvote/balance-register/internal/view"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

var pageTmpl = template.Must(template.New("index.html").ParseFS(templatesFS, "templates/index.html"))

func init() {
	// Some systems miss these.
	_ = mime.AddExtensionType(".js", "application/javascript; charset=utf-8")
	_ = mime.AddExtensionType(".css", "text/css; charset=utf-8")
	_ = mime.AddExtensionType(".svg", "image/svg+xml")
}

// Render writes the page for p.
func Render(w io.Writer, p view.Page) error {
	return pageTmpl.Execute(w, p)
}

// StaticHandler serves the embedded assets below prefix. Unknown files are
// 404s; there is no index fallback.
func StaticHandler(prefix string) http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	fileServer := http.StripPrefix(prefix, http.FileServer(http.FS(sub)))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		p := path.Clean("/" + strings.TrimPrefix(r.URL.Path, prefix))
		name := strings.TrimPrefix(p, "/")
		if name == "" || !exists(sub, name) {
			http.NotFound(w, r)
			return
		}

		setCacheHeaders(w, name)
		fileServer.ServeHTTP(w, r)
	})
}

func exists(fsys fs.FS, name string) bool {
	info, err := fs.Stat(fsys, name)
	return err == nil && !info.IsDir()
}

func setCacheHeaders(w http.ResponseWriter, name string) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".css", ".js", ".svg", ".ico", ".png":
		// not fingerprinted, so keep it short
		w.Header().Set("Cache-Control", "public, max-age=300")
	default:
		w.Header().Set("Cache-Control", "no-cache")
	}
	w.Header().Set("X-Content-Type-Options", "nosniff")
}
