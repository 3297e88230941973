package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comicdl/comicd/internal/domain/model"
)

func TestListTasksEmpty(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/api/tasks", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestListTasksNewestFirst(t *testing.T) {
	env := newTestEnv(t, nil)

	var taskIDs []string
	for _, comicID := range []string{"1", "2", "3"} {
		rec := env.do(postForm("/api/download", url.Values{"comic_id": {comicID}}))
		require.Equal(t, http.StatusAccepted, rec.Code)
		var body submitResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		taskIDs = append(taskIDs, body.TaskID)
	}

	rec := env.do(httptest.NewRequest(http.MethodGet, "/api/tasks", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var jobs []model.Job
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &jobs))
	require.Len(t, jobs, 3)
	assert.Equal(t, taskIDs[2], jobs[0].ID)
	assert.Equal(t, taskIDs[0], jobs[2].ID)
}

func TestGetTaskByID(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(postForm("/api/download", url.Values{"comic_id": {"555"}}))
	require.Equal(t, http.StatusAccepted, rec.Code)
	var submitted submitResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &submitted))

	rec = env.do(httptest.NewRequest(http.MethodGet, "/api/tasks/"+submitted.TaskID, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var job model.Job
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &job))
	assert.Equal(t, "555", job.ComicID)
	assert.True(t, job.Status.Valid())
}

func TestGetTaskUnknownID(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/api/tasks/deadbeef", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not_found", body["error"])
}
