package refresh

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/harun/articuno/internal/tracing"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ParseSchedule parses a 5-field cron expression or a descriptor such as
// "@hourly" or "@every 30s".
func ParseSchedule(spec string) (cron.Schedule, error) {
	if spec == "" {
		return nil, fmt.Errorf("schedule cannot be empty")
	}
	sched, err := parser.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	return sched, nil
}

// NextRun returns the first activation of spec after from.
func NextRun(spec string, from time.Time) (time.Time, error) {
	sched, err := ParseSchedule(spec)
	if err != nil {
		return time.Time{}, err
	}
	return sched.Next(from), nil
}

// Job is a scheduled unit of work. Each run gets its own trace context.
type Job func(ctx context.Context)

// Scheduler runs jobs on cron schedules. A run is skipped while the
// previous run of the same job is still going, and panics are recovered.
type Scheduler struct {
	cron    *cron.Cron
	logger  zerolog.Logger
	ctx     context.Context
	cancel  context.CancelFunc
	mu      sync.Mutex
	running bool
}

// NewScheduler creates a stopped scheduler.
func NewScheduler(logger zerolog.Logger) *Scheduler {
	cl := cronLogger{logger: logger}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(
			cron.WithParser(parser),
			cron.WithLogger(cl),
			// Recover runs inside the skip guard so a panicking run still
			// releases its slot.
			cron.WithChain(cron.SkipIfStillRunning(cl), cron.Recover(cl)),
		),
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Add registers job under spec.
func (s *Scheduler) Add(spec string, job Job) (cron.EntryID, error) {
	if _, err := ParseSchedule(spec); err != nil {
		return 0, err
	}
	id, err := s.cron.AddFunc(spec, func() {
		job(tracing.NewCommandContext(s.ctx))
	})
	if err != nil {
		return 0, fmt.Errorf("failed to schedule job: %w", err)
	}
	s.logger.Debug().Str("schedule", spec).Int("entry", int(id)).Msg("Job scheduled")
	return id, nil
}

// Remove unregisters a job.
func (s *Scheduler) Remove(id cron.EntryID) {
	s.cron.Remove(id)
}

// Len returns the number of registered jobs.
func (s *Scheduler) Len() int {
	return len(s.cron.Entries())
}

// Next returns the next activation of a job, zero if unknown or stopped.
func (s *Scheduler) Next(id cron.EntryID) time.Time {
	return s.cron.Entry(id).Next
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler is already running")
	}
	s.running = true
	s.cron.Start()
	s.logger.Info().Int("jobs", s.Len()).Msg("Scheduler started")
	return nil
}

// Stop stops scheduling, cancels the context handed to jobs and waits for
// running jobs or ctx, whichever comes first.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return fmt.Errorf("scheduler is not running")
	}
	s.running = false
	s.mu.Unlock()

	done := s.cron.Stop()
	s.cancel()

	select {
	case <-done.Done():
		s.logger.Info().Msg("Scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IsRunning reports whether the scheduler is running.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct {
	logger zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
