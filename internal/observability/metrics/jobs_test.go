package metrics

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobLifecycleCounters(t *testing.T) {
	m := NewJobMetrics()

	m.JobSubmitted()
	m.JobSubmitted()
	m.SubmissionRejected()

	m.FetchStarted()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.inFlight))
	m.FetchCompleted(250 * time.Millisecond)

	m.FetchStarted()
	m.FetchFailed(time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.submitted))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rejected))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.completed))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.failed))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.inFlight))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := NewJobMetrics()
	m.JobSubmitted()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "comicd_jobs_submitted_total 1")
}
