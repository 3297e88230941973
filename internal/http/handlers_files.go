package httpx

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	apperrors "github.com/comicdl/comicd/internal/errors"
	"github.com/comicdl/comicd/internal/service"
)

// FileHandlers serve listings and downloads from the download root.
type FileHandlers struct {
	Files  *service.FileService
	Logger *slog.Logger
}

// ListRoot handles GET /api/downloads: the landing view of everything
// fetched so far. An empty root yields an empty array, not an error.
func (h *FileHandlers) ListRoot(w http.ResponseWriter, _ *http.Request) {
	entries, err := h.Files.List("")
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, entries)
}

// Serve handles GET /api/downloads/{path...}. Files stream as attachments;
// directories render as JSON listings. Escaping the root is a 403, a missing
// path a 404 — the two must stay distinguishable.
func (h *FileHandlers) Serve(w http.ResponseWriter, r *http.Request) {
	rel := r.PathValue("path")

	content, err := h.Files.Read(rel)
	if apperrors.IsIsDirectory(err) {
		h.serveListing(w, rel)
		return
	}
	if err != nil {
		h.logDenied(r, rel, err)
		WriteAppError(w, err)
		return
	}
	defer content.Reader.Close()

	w.Header().Set("Content-Type", content.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(content.Size, 10))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", content.Name))
	if _, err := io.Copy(w, content.Reader); err != nil {
		// Headers are gone; all we can do is note the broken transfer.
		h.Logger.ErrorContext(r.Context(), "download stream interrupted",
			"path", rel, "error", err)
	}
}

func (h *FileHandlers) serveListing(w http.ResponseWriter, rel string) {
	entries, err := h.Files.List(rel)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, entries)
}

func (h *FileHandlers) logDenied(r *http.Request, rel string, err error) {
	if apperrors.IsPathEscape(err) {
		h.Logger.WarnContext(r.Context(), "path escape rejected",
			"path", rel, "remote", r.RemoteAddr)
	}
}
