// Package httpx provides the HTTP surface of the comicd download gateway.
package httpx

import (
	"fmt"
	"net/http"

	apperrors "github.com/comicdl/comicd/internal/errors"
	"github.com/comicdl/comicd/internal/service"
)

// DownloadHandlers accepts fetch submissions.
type DownloadHandlers struct {
	Jobs *service.JobService
}

// submitResponse is the 202 body returned to the front-end.
type submitResponse struct {
	Status  string `json:"status"`
	TaskID  string `json:"task_id"`
	Message string `json:"message"`
}

// Submit handles POST /api/download. It accepts a form-encoded comic_id,
// registers a background fetch, and answers 202 immediately: the contract
// is "request accepted", not "request fulfilled".
func (h *DownloadHandlers) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		WriteAppError(w, apperrors.Wrap(err, apperrors.ErrCodeValidation, "malformed form body"))
		return
	}

	job, err := h.Jobs.Submit(r.Context(), r.PostFormValue("comic_id"))
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusAccepted, submitResponse{
		Status: "accepted",
		TaskID: job.ID,
		Message: fmt.Sprintf("download of comic %s accepted; poll /api/tasks/%s for progress",
			job.ComicID, job.ID),
	})
}
