package observability

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/harun/articuno/internal/tracing"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAPIRequest(t *testing.T) {
	m := getMetrics()
	before := testutil.ToFloat64(m.apiRequestsTotal.WithLabelValues("list", OutcomeAPI))

	RecordAPIRequest("list", OutcomeAPI, 15*time.Millisecond)

	after := testutil.ToFloat64(m.apiRequestsTotal.WithLabelValues("list", OutcomeAPI))
	assert.Equal(t, before+1, after)
}

func TestRenderGauges(t *testing.T) {
	m := getMetrics()

	RecordSidebarRender(4)
	RecordHistoryRender(12)

	assert.Equal(t, 4.0, testutil.ToFloat64(m.sessionsListed))
	assert.Equal(t, 12.0, testutil.ToFloat64(m.messagesRendered))
}

func TestMetricsHandler(t *testing.T) {
	RecordStorageOp("memory", "get", time.Millisecond)

	rec := httptest.NewRecorder()
	MetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "articuno_storage_op_duration_seconds")
}

func TestAuditLogger(t *testing.T) {
	t.Run("record writes json line", func(t *testing.T) {
		var buf bytes.Buffer
		a := NewAuditLogger(zerolog.New(&buf))

		a.Record(context.Background(), SessionEvent{
			Action:    "delete",
			SessionID: "sess-1",
			Bot:       "GPT-4o",
			Status:    AuditSuccess,
			Metadata:  map[string]interface{}{"was_current": true},
		})

		out := buf.String()
		assert.Contains(t, out, `"action":"session.delete"`)
		assert.Contains(t, out, `"session_id":"sess-1"`)
		assert.Contains(t, out, `"bot":"GPT-4o"`)
		assert.Contains(t, out, `"was_current":true`)
	})

	t.Run("bot and ids come from the context", func(t *testing.T) {
		var buf bytes.Buffer
		a := NewAuditLogger(zerolog.New(&buf))
		ctx := tracing.WithBot(tracing.WithRequestID(tracing.WithTraceID(context.Background(), "trace-1"), "req-1"), "Grok-3")

		a.Record(ctx, SessionEvent{Action: "create", SessionID: "sess-3", Status: AuditFailure})

		out := buf.String()
		assert.Contains(t, out, `"bot":"Grok-3"`)
		assert.Contains(t, out, `"trace_id":"trace-1"`)
		assert.Contains(t, out, `"request_id":"req-1"`)
		assert.Contains(t, out, `"status":"failure"`)
		assert.NotContains(t, out, "metadata")
	})

	t.Run("init audit logger writes to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "audit", "audit.log")
		require.NoError(t, InitAuditLogger(path, 1))
		defer SetAuditLogger(nil)

		RecordSessionAudit(context.Background(), "create", "sess-2", AuditSuccess, nil)
		require.NoError(t, GetAuditLogger().Close())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"session_id":"sess-2"`)
		assert.Contains(t, string(data), `"action":"session.create"`)
	})

	t.Run("init fails on unusable path", func(t *testing.T) {
		blocker := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(blocker, nil, 0600))

		assert.Error(t, InitAuditLogger(filepath.Join(blocker, "audit.log"), 1))
	})

	t.Run("default logger discards", func(t *testing.T) {
		SetAuditLogger(nil)
		assert.NotPanics(t, func() {
			RecordSessionAudit(context.Background(), "activate", "x", AuditSuccess, nil)
		})
	})
}
