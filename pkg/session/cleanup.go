package session

import (
	"context"
	"time"

	"github.com/harun/articuno/pkg/sessionapi"
)

// DefaultCleanupAge is how long a session may stay idle before Cleanup
// considers it stale.
const DefaultCleanupAge = 30 * 24 * time.Hour

// Cleanup deletes sessions that have been idle for too long.
type Cleanup struct {
	manager    *Manager
	cleanupAge time.Duration
}

// NewCleanup creates a cleanup for sessions idle longer than cleanupAge
// (DefaultCleanupAge when zero).
func NewCleanup(manager *Manager, cleanupAge time.Duration) *Cleanup {
	if cleanupAge <= 0 {
		cleanupAge = DefaultCleanupAge
	}
	return &Cleanup{manager: manager, cleanupAge: cleanupAge}
}

// CleanupAge returns the idle threshold.
func (c *Cleanup) CleanupAge() time.Duration {
	return c.cleanupAge
}

// Stale returns the listed sessions whose last activity is older than the
// threshold. Sessions without a last activity are kept.
func (c *Cleanup) Stale(ctx context.Context, limit int) []sessionapi.SessionSummary {
	cutoff := c.manager.now().Add(-c.cleanupAge)

	var stale []sessionapi.SessionSummary
	for _, s := range c.manager.ListSessions(ctx, limit) {
		if s.LastActivity.IsZero() || !s.LastActivity.Before(cutoff) {
			continue
		}
		stale = append(stale, s)
	}
	return stale
}

// Run deletes the stale sessions among the listed ones and returns the ids
// it deleted. With dryRun nothing is deleted and the stale ids are
// returned.
func (c *Cleanup) Run(ctx context.Context, limit int, dryRun bool) []string {
	var ids []string
	for _, s := range c.Stale(ctx, limit) {
		if dryRun {
			ids = append(ids, s.SessionID)
			continue
		}
		if c.manager.DeleteSession(ctx, s.SessionID) {
			ids = append(ids, s.SessionID)
		}
	}

	if len(ids) > 0 {
		c.manager.logger.Info().
			Int("sessions", len(ids)).
			Bool("dry_run", dryRun).
			Dur("cleanup_age", c.cleanupAge).
			Msg("Cleaned up idle sessions")
	}
	return ids
}
