package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordHTTPRequest(t *testing.T) {
	m := New()

	m.RecordHTTPRequest("GET", "/todoList/{id}", 200, 5*time.Millisecond, 120)
	m.RecordHTTPRequest("GET", "/todoList/{id}", 200, 7*time.Millisecond, 80)
	m.RecordHTTPRequest("GET", "/todoList/{id}", 404, time.Millisecond, 20)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/todoList/{id}", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/todoList/{id}", "404")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.HTTPRequestDuration))
}

func TestRecordAuthFailure(t *testing.T) {
	m := New()
	m.RecordAuthFailure("invalid_token")
	m.RecordAuthFailure("invalid_token")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.AuthFailuresTotal.WithLabelValues("invalid_token")))
}

func TestHandler_ExposesCollectors(t *testing.T) {
	m := New()
	m.RecordHTTPRequest("POST", "/login", 401, time.Millisecond, 10)

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, m.WatchDB(db, "todokeeper"))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `todokeeper_http_requests_total{method="POST",route="/login",status="401"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
	assert.Contains(t, string(body), `go_sql_open_connections{db_name="todokeeper"}`)
}

func TestNew_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New()
		New()
	})
}
