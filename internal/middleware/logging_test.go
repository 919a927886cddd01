// internal/middleware/logging_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogMiddlewareRecordsStatus(t *testing.T) {
	logger, hook := test.NewNullLogger()

	handler := LogMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/play", nil))

	require.Len(t, hook.Entries, 1)
	entry := hook.LastEntry()
	assert.Equal(t, "request served", entry.Message)
	assert.Equal(t, http.MethodPost, entry.Data["method"])
	assert.Equal(t, "/play", entry.Data["path"])
	assert.Equal(t, http.StatusBadRequest, entry.Data["status"])
}

func TestLogMiddlewareDefaultsTo200(t *testing.T) {
	logger, hook := test.NewNullLogger()

	handler := LogMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok")) // implicit 200, no WriteHeader call
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Len(t, hook.Entries, 1)
	assert.Equal(t, http.StatusOK, hook.LastEntry().Data["status"])
}

func TestWebSocketLogsCarryGameID(t *testing.T) {
	logger, hook := test.NewNullLogger()

	LogWebSocketConnect(logger, "g1", "127.0.0.1:5000")
	LogWebSocketDisconnect(logger, "g1", "127.0.0.1:5000", assert.AnError)

	require.Len(t, hook.Entries, 2)
	assert.Equal(t, "g1", hook.Entries[0].Data["game"])
	assert.Equal(t, assert.AnError, hook.Entries[1].Data["error"])
}
