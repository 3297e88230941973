package httpx

import (
	"net/http"

	apperrors "github.com/comicdl/comicd/internal/errors"
	"github.com/comicdl/comicd/internal/service"
)

// TaskHandlers expose the job registry for polling clients.
type TaskHandlers struct {
	Jobs *service.JobService
}

// List handles GET /api/tasks. Jobs are returned newest first.
func (h *TaskHandlers) List(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.Jobs.ListAll(r.Context()))
}

// Get handles GET /api/tasks/{id}. Stale or never-issued ids are a plain 404.
func (h *TaskHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteAppError(w, apperrors.Validation("task id is required"))
		return
	}

	job, err := h.Jobs.Get(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, job)
}
