package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/harun/articuno/internal/observability"
	"github.com/harun/articuno/internal/tracing"
	"github.com/harun/articuno/pkg/refresh"
	"github.com/harun/articuno/pkg/state"
	"github.com/spf13/cobra"
)

var watchOnce bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep a rendered sidebar up to date",
	Long: `Render the session sidebar to the configured output file, then re-render it
on the configured schedule and whenever the local storage file changes.
With --metrics-addr, prometheus metrics are served on /metrics meanwhile.`,
	Args: cobra.NoArgs,
	RunE: runWithApp(nil, runWatch),
}

func init() {
	watchCmd.Flags().BoolVar(&watchOnce, "once", false, "render once and exit")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string, a *app) error {
	logger := a.log.Component("watch")
	output := a.cfg.Watch.Output

	var mu sync.Mutex
	render := func(ctx context.Context) {
		mu.Lock()
		defer mu.Unlock()

		html, err := renderSidebar(ctx, a)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to render sidebar")
			return
		}
		if err := writeFileAtomic(output, []byte(html+"\n")); err != nil {
			logger.Error().Err(err).Msg("Failed to write sidebar")
			return
		}
		logger.Debug().Str("output", output).Msg("Sidebar rendered")
	}

	render(commandContext(cmd))
	if watchOnce {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sched := refresh.NewScheduler(logger)
	entry, err := sched.Add(a.cfg.Watch.Schedule, render)
	if err != nil {
		return err
	}
	if err := sched.Start(); err != nil {
		return err
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := sched.Stop(stopCtx); err != nil {
			logger.Warn().Err(err).Msg("Scheduler did not stop cleanly")
		}
	}()

	if state.StoreType(a.cfg.Storage.Driver) == state.StoreTypeFile {
		w, err := refresh.NewWatcher(a.cfg.Storage.Path, logger, func() {
			rctx := tracing.NewCommandContext(ctx)
			if err := a.state.Reload(rctx); err != nil {
				logger.Warn().Err(err).Msg("Failed to reload state")
			}
			render(rctx)
		})
		if err != nil {
			return err
		}
		defer w.Stop()
	}

	if a.cfg.Metrics.Addr != "" {
		srv := serveMetrics(a.cfg.Metrics.Addr, a)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	logger.Info().
		Str("output", output).
		Str("schedule", a.cfg.Watch.Schedule).
		Time("next_run", sched.Next(entry)).
		Msg("Watching sessions")

	<-ctx.Done()
	logger.Info().Msg("Watch stopped")
	return nil
}

func serveMetrics(addr string, a *app) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", observability.MetricsHandler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error().Err(err).Str("addr", addr).Msg("Metrics server failed")
		}
	}()
	return srv
}
