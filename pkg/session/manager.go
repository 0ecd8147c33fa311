package session

import (
	"context"
	"errors"
	"time"

	"github.com/harun/articuno/internal/observability"
	"github.com/harun/articuno/internal/tracing"
	"github.com/harun/articuno/pkg/sessionapi"
	"github.com/harun/articuno/pkg/state"
	"github.com/harun/articuno/pkg/ui"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
)

const tracerName = "articuno.session"

// Default page sizes used when a caller passes a limit <= 0.
const (
	DefaultHistoryLimit = 50
	DefaultListLimit    = 10
	DefaultSearchLimit  = 20
)

// API is the session endpoint surface the Manager depends on.
// *sessionapi.Client implements it.
type API interface {
	CreateSession(ctx context.Context, bot string) (string, error)
	History(ctx context.Context, sessionID string, limit int) ([]sessionapi.Message, error)
	ListSessions(ctx context.Context, limit int) ([]sessionapi.SessionSummary, error)
	Stats(ctx context.Context, sessionID string) (sessionapi.Stats, error)
	DeleteSession(ctx context.Context, sessionID string) error
	Search(ctx context.Context, q sessionapi.SearchQuery) ([]sessionapi.Message, error)
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

// Confirm calls f.
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

// AlwaysConfirm accepts every prompt.
var AlwaysConfirm Confirmer = ConfirmFunc(func(context.Context, string) bool { return true })

// NeverConfirm declines every prompt.
var NeverConfirm Confirmer = ConfirmFunc(func(context.Context, string) bool { return false })

// Manager coordinates the session API, the client state and the page.
type Manager struct {
	api     API
	state   *state.State
	logger  zerolog.Logger
	confirm Confirmer
	now     func() time.Time

	historyLimit int
	listLimit    int
	searchLimit  int
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for failures.
func WithLogger(logger zerolog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithConfirmer sets the confirmer guarding sidebar deletes. Without one,
// deletes from the sidebar are declined.
func WithConfirmer(c Confirmer) Option {
	return func(m *Manager) {
		if c != nil {
			m.confirm = c
		}
	}
}

// WithClock overrides the clock used for relative times.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithLimits overrides the default page sizes. Values <= 0 keep the
// built-in defaults.
func WithLimits(history, list, search int) Option {
	return func(m *Manager) {
		if history > 0 {
			m.historyLimit = history
		}
		if list > 0 {
			m.listLimit = list
		}
		if search > 0 {
			m.searchLimit = search
		}
	}
}

// New creates a Manager.
func New(api API, st *state.State, opts ...Option) *Manager {
	observability.EnsureRegistered()

	m := &Manager{
		api:          api,
		state:        st,
		logger:       log.Logger,
		confirm:      NeverConfirm,
		now:          time.Now,
		historyLimit: DefaultHistoryLimit,
		listLimit:    DefaultListLimit,
		searchLimit:  DefaultSearchLimit,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns the client state.
func (m *Manager) State() *state.State {
	return m.state
}

// CreateSession starts a new session with bot and makes it current. An
// empty bot means the default bot. It returns "" on failure, leaving the
// current session unchanged.
func (m *Manager) CreateSession(ctx context.Context, bot string) string {
	if bot == "" {
		bot = state.DefaultBot
	}
	ctx = tracing.WithBot(ctx, bot)
	ctx, span := tracing.StartSpan(ctx, tracerName, "session.create", attribute.String("bot", bot))
	defer span.End()
	logger := tracing.LoggerFromContext(ctx, m.logger)

	id, err := m.api.CreateSession(ctx, bot)
	if err != nil {
		tracing.FailSpan(span, err)
		m.logFailure(logger, err, "create").Msg("Error creating session")
		observability.RecordSessionAudit(ctx, "create", "", observability.AuditFailure, nil)
		return ""
	}

	if err := m.state.Activate(ctx, id, bot); err != nil {
		logger.Warn().Err(err).Str("session_id", id).Msg("Session created but not persisted")
	}
	span.SetAttributes(attribute.String("session_id", id))
	observability.RecordSessionAudit(ctx, "create", id, observability.AuditSuccess, nil)
	logger.Info().Str("session_id", id).Msg("New session created")

	return id
}

// CurrentSessionID returns the current session, restoring it from storage
// when unset. It returns "" when there is none.
func (m *Manager) CurrentSessionID(ctx context.Context) string {
	return m.state.SessionID(ctx)
}

// CurrentBot returns the current bot, restoring it from storage when unset.
func (m *Manager) CurrentBot(ctx context.Context) string {
	return m.state.Bot(ctx)
}

// LoadSessionHistory returns up to limit messages of a session, oldest
// first. A limit <= 0 means the default of 50. Failures return nil.
func (m *Manager) LoadSessionHistory(ctx context.Context, sessionID string, limit int) []sessionapi.Message {
	if limit <= 0 {
		limit = m.historyLimit
	}
	ctx = tracing.WithSessionID(ctx, sessionID)
	ctx, span := tracing.StartSpan(ctx, tracerName, "session.history",
		attribute.String("session_id", sessionID),
		attribute.Int("limit", limit),
	)
	defer span.End()

	history, err := m.api.History(ctx, sessionID, limit)
	if err != nil {
		tracing.FailSpan(span, err)
		m.logFailure(tracing.LoggerFromContext(ctx, m.logger), err, "history").Msg("Error loading session history")
		return nil
	}
	return history
}

// ListSessions returns the user's most recent sessions. A limit <= 0 means
// the default of 10. Failures return nil.
func (m *Manager) ListSessions(ctx context.Context, limit int) []sessionapi.SessionSummary {
	if limit <= 0 {
		limit = m.listLimit
	}
	ctx, span := tracing.StartSpan(ctx, tracerName, "session.list", attribute.Int("limit", limit))
	defer span.End()

	sessions, err := m.api.ListSessions(ctx, limit)
	if err != nil {
		tracing.FailSpan(span, err)
		m.logFailure(tracing.LoggerFromContext(ctx, m.logger), err, "list").Msg("Error listing sessions")
		return nil
	}
	return sessions
}

// SessionStats returns the aggregate stats of a session, or zero Stats on
// failure.
func (m *Manager) SessionStats(ctx context.Context, sessionID string) sessionapi.Stats {
	ctx = tracing.WithSessionID(ctx, sessionID)
	ctx, span := tracing.StartSpan(ctx, tracerName, "session.stats", attribute.String("session_id", sessionID))
	defer span.End()

	stats, err := m.api.Stats(ctx, sessionID)
	if err != nil {
		tracing.FailSpan(span, err)
		m.logFailure(tracing.LoggerFromContext(ctx, m.logger), err, "stats").Msg("Error getting session stats")
		return sessionapi.Stats{}
	}
	return stats
}

// DeleteSession deletes a session on the server. When it was the current
// session, the current id is cleared in memory and storage; the bot is
// kept. It reports whether the server accepted the delete.
func (m *Manager) DeleteSession(ctx context.Context, sessionID string) bool {
	ctx = tracing.WithSessionID(ctx, sessionID)
	ctx, span := tracing.StartSpan(ctx, tracerName, "session.delete", attribute.String("session_id", sessionID))
	defer span.End()
	logger := tracing.LoggerFromContext(ctx, m.logger)

	if err := m.api.DeleteSession(ctx, sessionID); err != nil {
		tracing.FailSpan(span, err)
		m.logFailure(logger, err, "delete").Msg("Error deleting session")
		observability.RecordSessionAudit(ctx, "delete", sessionID, observability.AuditFailure, nil)
		return false
	}

	cleared, err := m.state.ClearIfCurrent(ctx, sessionID)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to clear stored session")
	}
	observability.RecordSessionAudit(ctx, "delete", sessionID, observability.AuditSuccess, map[string]interface{}{"was_current": cleared})
	logger.Info().Bool("was_current", cleared).Msg("Session deleted")

	return true
}

// SearchMessages searches message text. An empty sessionID searches all of
// the user's sessions; a limit <= 0 means the default of 20. Failures
// return nil.
func (m *Manager) SearchMessages(ctx context.Context, query, sessionID string, limit int) []sessionapi.Message {
	if limit <= 0 {
		limit = m.searchLimit
	}
	if sessionID != "" {
		ctx = tracing.WithSessionID(ctx, sessionID)
	}
	ctx, span := tracing.StartSpan(ctx, tracerName, "session.search",
		attribute.String("session_id", sessionID),
		attribute.Int("limit", limit),
	)
	defer span.End()

	results, err := m.api.Search(ctx, sessionapi.SearchQuery{Query: query, SessionID: sessionID, Limit: limit})
	if err != nil {
		tracing.FailSpan(span, err)
		m.logFailure(tracing.LoggerFromContext(ctx, m.logger), err, "search").Msg("Error searching messages")
		return nil
	}
	return results
}

// SwitchBot starts a new session with bot. It returns the new session id,
// or "" on failure.
func (m *Manager) SwitchBot(ctx context.Context, bot string) string {
	logger := tracing.LoggerFromContext(ctx, m.logger)
	logger.Info().Str("bot", bot).Msg("Switching bot, creating new session")
	return m.CreateSession(ctx, bot)
}

// TimeAgo formats t relative to the manager's clock.
func (m *Manager) TimeAgo(t time.Time) string {
	return ui.TimeAgo(m.now(), t)
}

// logFailure starts an error event classified by failure kind.
func (m *Manager) logFailure(logger zerolog.Logger, err error, op string) *zerolog.Event {
	return logger.Error().Err(err).Str("op", op).Str("kind", failureKind(err))
}

func failureKind(err error) string {
	switch {
	case errors.Is(err, sessionapi.ErrTransport):
		return observability.OutcomeTransport
	case errors.Is(err, sessionapi.ErrAPI):
		return observability.OutcomeAPI
	case errors.Is(err, sessionapi.ErrDecode):
		return observability.OutcomeDecode
	default:
		return "unknown"
	}
}
