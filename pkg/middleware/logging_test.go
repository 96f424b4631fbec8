package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func loggingHandler(buf *bytes.Buffer) http.Handler {
	l := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	return RequestLogging(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestRequestLogging_PageRequestsAtInfo(t *testing.T) {
	var buf bytes.Buffer
	h := loggingHandler(&buf)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/games/1", nil))

	assert.Contains(t, buf.String(), `"path":"/games/1"`)
	assert.Contains(t, buf.String(), `"status":200`)
}

func TestRequestLogging_AssetAndProbeTrafficAtDebug(t *testing.T) {
	var buf bytes.Buffer
	h := loggingHandler(&buf)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/static/app.css", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/health/live", nil))

	assert.Empty(t, buf.String(), "successful asset and probe requests stay below info")
}

func TestRequestLogging_EchoesCorrelationID(t *testing.T) {
	var buf bytes.Buffer
	h := loggingHandler(&buf)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Correlation-ID", "corr-7")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "corr-7", rec.Header().Get("X-Correlation-ID"))
	assert.Contains(t, buf.String(), `"correlation_id":"corr-7"`)
}
