package httpx

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/comicdl/comicd/internal/observability/metrics"
	"github.com/comicdl/comicd/internal/service"
)

// RouterServices carries the dependencies the router hands to handlers.
type RouterServices struct {
	Jobs  *service.JobService
	Files *service.FileService

	// Metrics is optional; when set, /metrics exposes Prometheus text format.
	Metrics *metrics.JobMetrics

	// StaticFS serves the bundled front-end. Nil disables static routes.
	StaticFS fs.FS

	Logger *slog.Logger
}

// NewRouter builds the comicd route table.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("HEAD /healthz", handleHealth)

	download := &DownloadHandlers{Jobs: services.Jobs}
	tasks := &TaskHandlers{Jobs: services.Jobs}
	files := &FileHandlers{Files: services.Files, Logger: logger}

	mux.HandleFunc("POST /api/download", download.Submit)
	mux.HandleFunc("GET /api/tasks", tasks.List)
	mux.HandleFunc("GET /api/tasks/{id}", tasks.Get)
	mux.HandleFunc("GET /api/downloads", files.ListRoot)
	mux.HandleFunc("GET /api/downloads/{path...}", files.Serve)

	if services.Metrics != nil {
		mux.Handle("GET /metrics", services.Metrics.Handler())
	}

	if services.StaticFS != nil {
		registerStaticRoutes(mux, services.StaticFS, logger)
	}

	return mux
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// registerStaticRoutes wires the fixed set of front-end assets. Anything
// else under / stays a 404; the front-end is deliberately tiny.
func registerStaticRoutes(mux *http.ServeMux, fsys fs.FS, logger *slog.Logger) {
	assets := []struct {
		pattern     string
		file        string
		contentType string
	}{
		{"GET /{$}", "index.html", "text/html; charset=utf-8"},
		{"GET /style.css", "style.css", "text/css; charset=utf-8"},
		{"GET /script.js", "script.js", "application/javascript; charset=utf-8"},
	}

	for _, asset := range assets {
		mux.Handle(asset.pattern, serveAsset(fsys, asset.file, asset.contentType, logger))
	}
}

func serveAsset(fsys fs.FS, name, contentType string, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			logger.ErrorContext(r.Context(), "static asset missing", "asset", name, "error", err)
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write(raw)
	})
}
