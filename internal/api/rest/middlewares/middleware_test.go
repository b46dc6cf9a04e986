package middlewares

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLogger captures log messages and levels for testing
type testLogger struct {
	messages []string
	levels   []slog.Level
	buffer   *bytes.Buffer
}

func newTestLogger() *testLogger {
	return &testLogger{buffer: &bytes.Buffer{}}
}

func (tl *testLogger) getLogger() *slog.Logger {
	return slog.New(&captureHandler{
		testLogger: tl,
		handler:    slog.NewTextHandler(tl.buffer, &slog.HandlerOptions{Level: slog.LevelDebug}),
	})
}

// captureHandler wraps the text handler to capture log data
type captureHandler struct {
	testLogger *testLogger
	handler    slog.Handler
}

func (ch *captureHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return ch.handler.Enabled(ctx, level)
}

func (ch *captureHandler) Handle(ctx context.Context, record slog.Record) error { //nolint:gocritic // slog.Handler interface
	ch.testLogger.messages = append(ch.testLogger.messages, record.Message)
	ch.testLogger.levels = append(ch.testLogger.levels, record.Level)
	return ch.handler.Handle(ctx, record)
}

func (ch *captureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &captureHandler{testLogger: ch.testLogger, handler: ch.handler.WithAttrs(attrs)}
}

func (ch *captureHandler) WithGroup(name string) slog.Handler {
	return &captureHandler{testLogger: ch.testLogger, handler: ch.handler.WithGroup(name)}
}

func newTestMux(status int) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/orders/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
	})
	return mux
}

func TestRequestLogger_Handle(t *testing.T) {
	testCases := map[string]struct {
		path          string
		status        int
		expectedLevel slog.Level
		expectedRoute string
	}{
		"should log successful request at info": {
			path:          "/api/v1/orders/o1",
			status:        http.StatusOK,
			expectedLevel: slog.LevelInfo,
			expectedRoute: "route=\"GET /api/v1/orders/{id}\"",
		},
		"should log server error at error": {
			path:          "/api/v1/orders/o1",
			status:        http.StatusInternalServerError,
			expectedLevel: slog.LevelError,
			expectedRoute: "route=\"GET /api/v1/orders/{id}\"",
		},
		"should log unmatched route": {
			path:          "/unknown",
			status:        http.StatusOK,
			expectedLevel: slog.LevelInfo,
			expectedRoute: "route=unmatched",
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			tl := newTestLogger()
			handler := Chain(newTestMux(tc.status), NewRequestLogger(tl.getLogger()))

			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tc.path, http.NoBody))

			require.Len(t, tl.messages, 1)
			assert.Equal(t, "http_request", tl.messages[0])
			assert.Equal(t, tc.expectedLevel, tl.levels[0])
			assert.Contains(t, tl.buffer.String(), tc.expectedRoute)
		})
	}
}

func TestMetrics_Handle(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := NewMetrics(reg)
	require.NoError(t, err)

	handler := Chain(newTestMux(http.StatusNotFound), metrics)
	for range 3 {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/orders/o1", http.NoBody))
	}

	assert.InDelta(t, 3, testutil.ToFloat64(metrics.requests.WithLabelValues(http.MethodGet, "GET /api/v1/orders/{id}", "404")), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.duration))

	_, err = NewMetrics(reg)
	assert.Error(t, err)
}

type headerMiddleware string

func (m headerMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("X-Chain", string(m))
		next.ServeHTTP(w, r)
	})
}

func TestChain(t *testing.T) {
	rr := httptest.NewRecorder()
	Chain(newTestMux(http.StatusOK), headerMiddleware("first"), headerMiddleware("second")).
		ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/orders/o1", http.NoBody))

	assert.Equal(t, []string{"first", "second"}, rr.Header().Values("X-Chain"))
}
