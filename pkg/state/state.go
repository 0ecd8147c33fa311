package state

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultBot is the bot assumed before any session has been chosen.
const DefaultBot = "Articuno.AI"

// State is the client's current session and bot.
type State struct {
	mu         sync.RWMutex
	store      Store
	sessionID  string
	bot        string
	defaultBot string
	logger     zerolog.Logger
}

// Option configures a State.
type Option func(*State)

// WithDefaultBot overrides the bot returned when none is stored.
func WithDefaultBot(bot string) Option {
	return func(s *State) {
		if bot != "" {
			s.defaultBot = bot
		}
	}
}

// WithLogger sets the logger used for storage failures.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *State) {
		s.logger = logger
	}
}

// New creates a State backed by store. Nothing is read from store until a
// value is first requested.
func New(store Store, opts ...Option) *State {
	s := &State{
		store:      store,
		defaultBot: DefaultBot,
		logger:     log.Logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the backing store.
func (s *State) Store() Store {
	return s.store
}

// SessionID returns the current session ID, restoring it from storage when
// memory is empty. It returns "" when there is no current session.
func (s *State) SessionID(ctx context.Context) string {
	s.mu.RLock()
	id := s.sessionID
	s.mu.RUnlock()
	if id != "" {
		return id
	}

	stored, ok, err := s.store.Get(ctx, KeyCurrentSessionID)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to restore current session from storage")
		return ""
	}
	if !ok {
		return ""
	}

	s.mu.Lock()
	if s.sessionID == "" {
		s.sessionID = stored
	}
	id = s.sessionID
	s.mu.Unlock()
	return id
}

// Bot returns the current bot, restoring it from storage when memory is
// empty and falling back to the default bot.
func (s *State) Bot(ctx context.Context) string {
	s.mu.RLock()
	bot := s.bot
	s.mu.RUnlock()
	if bot != "" {
		return bot
	}

	stored, ok, err := s.store.Get(ctx, KeyCurrentBot)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to restore current bot from storage")
	}
	if err != nil || !ok || stored == "" {
		return s.defaultBot
	}

	s.mu.Lock()
	if s.bot == "" {
		s.bot = stored
	}
	bot = s.bot
	s.mu.Unlock()
	return bot
}

// HasSession reports whether a session is current.
func (s *State) HasSession(ctx context.Context) bool {
	return s.SessionID(ctx) != ""
}

// Activate makes sessionID with bot current, in memory and in storage. The
// in-memory values are updated even if persisting fails.
func (s *State) Activate(ctx context.Context, sessionID, bot string) error {
	s.mu.Lock()
	s.sessionID = sessionID
	s.bot = bot
	s.mu.Unlock()

	if err := s.store.Set(ctx, KeyCurrentSessionID, sessionID); err != nil {
		return fmt.Errorf("failed to persist current session: %w", err)
	}
	if err := s.store.Set(ctx, KeyCurrentBot, bot); err != nil {
		return fmt.Errorf("failed to persist current bot: %w", err)
	}
	return nil
}

// ClearSession forgets the current session. The bot is kept.
func (s *State) ClearSession(ctx context.Context) error {
	s.mu.Lock()
	s.sessionID = ""
	s.mu.Unlock()

	if err := s.store.Delete(ctx, KeyCurrentSessionID); err != nil {
		return fmt.Errorf("failed to clear current session: %w", err)
	}
	return nil
}

// ClearIfCurrent clears the current session when it equals sessionID and
// reports whether it did. Only the in-memory value is compared.
func (s *State) ClearIfCurrent(ctx context.Context, sessionID string) (bool, error) {
	s.mu.RLock()
	current := s.sessionID
	s.mu.RUnlock()

	if current == "" || current != sessionID {
		return false, nil
	}
	return true, s.ClearSession(ctx)
}

// Reload replaces the in-memory values with what storage holds, e.g. after
// another process changed it.
func (s *State) Reload(ctx context.Context) error {
	id, _, err := s.store.Get(ctx, KeyCurrentSessionID)
	if err != nil {
		return fmt.Errorf("failed to reload current session: %w", err)
	}
	bot, _, err := s.store.Get(ctx, KeyCurrentBot)
	if err != nil {
		return fmt.Errorf("failed to reload current bot: %w", err)
	}

	s.mu.Lock()
	s.sessionID = id
	s.bot = bot
	s.mu.Unlock()
	return nil
}

// Snapshot returns the in-memory values without consulting storage.
func (s *State) Snapshot() (sessionID, bot string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionID, s.bot
}
