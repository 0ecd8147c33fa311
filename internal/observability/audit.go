package observability

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/harun/articuno/internal/tracing"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Audit statuses.
const (
	AuditSuccess = "success"
	AuditFailure = "failure"
)

// SessionEvent is one session change written to the audit log.
type SessionEvent struct {
	Action    string // create, activate, delete
	SessionID string
	Bot       string
	Status    string
	Metadata  map[string]interface{}
	Time      time.Time
}

// AuditLogger records session events as JSON lines
type AuditLogger struct {
	logger zerolog.Logger
	mu     sync.Mutex
	closer io.Closer
}

var (
	auditMu   sync.Mutex
	auditInst *AuditLogger
)

// GetAuditLogger returns the global audit logger, discarding events until
// InitAuditLogger or SetAuditLogger is called.
func GetAuditLogger() *AuditLogger {
	auditMu.Lock()
	defer auditMu.Unlock()
	if auditInst == nil {
		auditInst = &AuditLogger{logger: zerolog.Nop()}
	}
	return auditInst
}

// InitAuditLogger points the global audit logger at path, rotated at
// maxSizeMB (10 when <= 0).
func InitAuditLogger(path string, maxSizeMB int) error {
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	file := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: 5,
	}
	// Open eagerly so a bad path is reported now, not on the first event.
	if _, err := file.Write(nil); err != nil {
		return err
	}

	SetAuditLogger(&AuditLogger{
		logger: zerolog.New(file),
		closer: file,
	})
	return nil
}

// SetAuditLogger replaces the global audit logger
func SetAuditLogger(a *AuditLogger) {
	auditMu.Lock()
	defer auditMu.Unlock()
	auditInst = a
}

// NewAuditLogger creates an audit logger writing to logger
func NewAuditLogger(logger zerolog.Logger) *AuditLogger {
	return &AuditLogger{logger: logger}
}

// Record writes ev with the trace and request ids of ctx and adds it as
// an event to the active span. An empty Bot is taken from ctx.
func (a *AuditLogger) Record(ctx context.Context, ev SessionEvent) {
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}
	if ev.Bot == "" {
		ev.Bot = tracing.GetBot(ctx)
	}

	traceID := tracing.GetTraceID(ctx)
	span := trace.SpanFromContext(ctx)
	if sc := span.SpanContext(); sc.IsValid() {
		traceID = sc.TraceID().String()
		span.AddEvent("audit.session."+ev.Action, trace.WithAttributes(
			attribute.String("session_id", ev.SessionID),
			attribute.String("status", ev.Status),
		))
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	entry := a.logger.Log().
		Time(zerolog.TimestampFieldName, ev.Time).
		Str("action", "session."+ev.Action).
		Str("session_id", ev.SessionID).
		Str("status", ev.Status)
	if ev.Bot != "" {
		entry.Str("bot", ev.Bot)
	}
	if traceID != "" {
		entry.Str("trace_id", traceID)
	}
	if requestID := tracing.GetRequestID(ctx); requestID != "" {
		entry.Str("request_id", requestID)
	}
	if len(ev.Metadata) > 0 {
		entry.Interface("metadata", ev.Metadata)
	}
	entry.Msg("")
}

// Close closes the audit file, if any
func (a *AuditLogger) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closer != nil {
		return a.closer.Close()
	}
	return nil
}

// RecordSessionAudit records a session change and counts it when it
// succeeded.
func RecordSessionAudit(ctx context.Context, action, sessionID, status string, metadata map[string]interface{}) {
	if status == AuditSuccess {
		RecordStateChange(action)
	}
	GetAuditLogger().Record(ctx, SessionEvent{
		Action:    action,
		SessionID: sessionID,
		Status:    status,
		Metadata:  metadata,
	})
}
