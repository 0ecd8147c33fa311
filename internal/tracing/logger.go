package tracing

import (
	"context"

	"github.com/rs/zerolog"
)

// LoggerFromContext adds tracing context to a zerolog logger
func LoggerFromContext(ctx context.Context, logger zerolog.Logger) zerolog.Logger {
	tc := FromContext(ctx)

	if tc.TraceID == "" && tc.RequestID == "" && tc.SessionID == "" && tc.Bot == "" {
		return logger
	}

	lc := logger.With()
	if tc.TraceID != "" {
		lc = lc.Str("trace_id", tc.TraceID)
	}
	if tc.RequestID != "" {
		lc = lc.Str("request_id", tc.RequestID)
	}
	if tc.SessionID != "" {
		lc = lc.Str("session_id", tc.SessionID)
	}
	if tc.Bot != "" {
		lc = lc.Str("bot", tc.Bot)
	}
	return lc.Logger()
}
