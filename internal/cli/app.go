package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/harun/articuno/internal/config"
	"github.com/harun/articuno/internal/logger"
	"github.com/harun/articuno/internal/observability"
	"github.com/harun/articuno/internal/tracing"
	"github.com/harun/articuno/pkg/session"
	"github.com/harun/articuno/pkg/sessionapi"
	"github.com/harun/articuno/pkg/state"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const serviceName = "articuno"

// app holds what a session command needs, built from config and flags.
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	store   state.Store
	state   *state.State
	client  *sessionapi.Client
	manager *session.Manager
}

// loadConfig loads the config file and applies the global flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.NewLoader(cfgFile).Load()
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("log-level") || cfg.Logging.Level == "" {
		cfg.Logging.Level = logLevel
	}
	if serverURL != "" {
		cfg.Server.BaseURL = serverURL
	}
	if metricsAddr != "" {
		cfg.Metrics.Addr = metricsAddr
	}

	if errs := config.NewValidator().ValidateConfig(cfg); len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return cfg, nil
}

// newApp wires config, logging, storage, the API client and the manager.
// confirm guards destructive sidebar actions.
func newApp(cmd *cobra.Command, confirm session.Confirmer) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	lg, err := logger.New(logger.Config{
		Service:   serviceName,
		Version:   version,
		Level:     cfg.Logging.Level,
		File:      cfg.Logging.File,
		Console:   true,
		Pretty:    true,
		Redaction: cfg.Logging.Redaction,
		MaxSize:   cfg.Logging.MaxSize,
		MaxAge:    cfg.Logging.MaxAge,
		Compress:  cfg.Logging.Compress,

		RedactPatterns: cfg.Logging.RedactPatterns,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	zl := lg.GetZerolog()

	if cfg.Logging.AuditFile != "" {
		if err := observability.InitAuditLogger(cfg.Logging.AuditFile, cfg.Logging.MaxSize); err != nil {
			zl.Warn().Err(err).Str("path", cfg.Logging.AuditFile).Msg("Audit log disabled")
		}
	}
	traceOpts := []tracing.ProviderOption{tracing.WithServiceVersion(version)}
	if cfg.Logging.TraceFile != "" {
		traceOpts = append(traceOpts, tracing.WithTraceFile(cfg.Logging.TraceFile, cfg.Logging.MaxSize))
	}
	if err := tracing.InitOpenTelemetry(serviceName, traceOpts...); err != nil {
		zl.Warn().Err(err).Msg("Tracing disabled")
	}

	store, err := openStore(cfg)
	if err != nil {
		lg.Close()
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Driver, err)
	}

	opts := []sessionapi.Option{
		sessionapi.WithTimeout(time.Duration(cfg.Server.Timeout) * time.Second),
		sessionapi.WithSchemaValidation(cfg.Server.ValidateResponses),
		sessionapi.WithLogger(lg.Component("sessionapi")),
	}
	for k, v := range cfg.Server.Headers {
		opts = append(opts, sessionapi.WithHeader(k, v))
	}
	client, err := sessionapi.New(cfg.Server.BaseURL, opts...)
	if err != nil {
		store.Close()
		lg.Close()
		return nil, err
	}

	st := state.New(store, state.WithDefaultBot(cfg.Defaults.Bot), state.WithLogger(lg.Component("state")))
	// Restore the current session so deletes can recognise it.
	st.SessionID(commandContext(cmd))

	mgr := session.New(client, st,
		session.WithLogger(lg.Component("session")),
		session.WithConfirmer(confirm),
		session.WithLimits(cfg.Defaults.HistoryLimit, cfg.Defaults.ListLimit, cfg.Defaults.SearchLimit),
	)

	return &app{
		cfg:     cfg,
		log:     lg,
		store:   store,
		state:   st,
		client:  client,
		manager: mgr,
	}, nil
}

func openStore(cfg *config.Config) (state.Store, error) {
	driver := state.StoreType(cfg.Storage.Driver)
	switch driver {
	case state.StoreTypeRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Storage.RedisAddr,
			Password: cfg.Storage.RedisPassword,
			DB:       cfg.Storage.RedisDB,
		})
		opts := []state.StoreOption{
			state.WithRedisClient(client),
			state.WithRedisTTL(time.Duration(cfg.Storage.RedisTTL) * time.Second),
		}
		if cfg.Storage.RedisPrefix != "" {
			opts = append(opts, state.WithKeyPrefix(cfg.Storage.RedisPrefix))
		}
		return state.NewStore(driver, opts...)
	case state.StoreTypeFile, state.StoreTypeSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.Storage.Path), 0700); err != nil {
			return nil, fmt.Errorf("failed to create storage directory: %w", err)
		}
		return state.NewStore(driver, state.WithPath(cfg.Storage.Path))
	default:
		return state.NewStore(driver)
	}
}

// Close releases storage, tracing and log files.
func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn().Err(err).Msg("Failed to close storage")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := tracing.ShutdownOpenTelemetry(ctx); err != nil {
		a.log.Debug().Err(err).Msg("Tracing shutdown failed")
	}
	if err := observability.GetAuditLogger().Close(); err != nil {
		a.log.Debug().Err(err).Msg("Audit log close failed")
	}
	observability.SetAuditLogger(observability.NewAuditLogger(zerolog.Nop()))
	a.log.Close()
}

// commandContext returns the traced context of one invocation.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return tracing.NewCommandContext(ctx)
}

// runWithApp adapts a command body that needs an app.
func runWithApp(confirm func(cmd *cobra.Command) session.Confirmer, fn func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		var c session.Confirmer = session.NeverConfirm
		if confirm != nil {
			c = confirm(cmd)
		}
		a, err := newApp(cmd, c)
		if err != nil {
			return err
		}
		defer a.Close()
		return fn(cmd, args, a)
	}
}
