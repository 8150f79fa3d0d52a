package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"scout-data-service/internal/cache"
	"scout-data-service/internal/config"
	"scout-data-service/internal/jobs"
	"scout-data-service/internal/logging"
	"scout-data-service/internal/metrics"
	"scout-data-service/internal/ratelimit"
	"scout-data-service/internal/reconcile"
	"scout-data-service/internal/sources"
	"scout-data-service/internal/sources/balldontlie"
	"scout-data-service/internal/sources/llm"
	"scout-data-service/internal/sources/nbastats"
	"scout-data-service/internal/sources/sportsblaze"
	"scout-data-service/internal/store"
	"scout-data-service/internal/timeutil"
)

// Server wires configuration into the sync worker: sources, reconciliation
// engine, cron scheduler, and the metrics listener.
type Server struct {
	cfg         config.Config
	logger      *slog.Logger
	recorder    *metrics.Recorder
	store       *store.Store
	roster      *balldontlie.Client
	engine      *reconcile.Engine
	runner      *jobs.Runner
	scheduler   *jobs.Scheduler
	loc         *time.Location
	metricsSrv  *http.Server
	metricsStop func(context.Context) error
	redisClient *redis.Client
}

// New assembles the worker. It fails fast on anything unusable at startup:
// a bad database URL, an unknown timezone, a broken metrics exporter.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	recorder, metricsHandler, metricsStop, err := metrics.Setup(ctx, metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	})
	if err != nil {
		return nil, fmt.Errorf("metrics setup: %w", err)
	}

	loc, err := time.LoadLocation(cfg.Sync.CronTimezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Sync.CronTimezone, err)
	}

	db, err := store.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	st := store.New(db)

	var redisClient *redis.Client
	var sharedCache cache.Cache
	var window ratelimit.Window
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		sharedCache = cache.NewRedis(redisClient)
		window = ratelimit.NewRedisWindow(redisClient, "balldontlie", cfg.BallDontLie.RateLimit, time.Minute)
	} else {
		sharedCache = cache.NewMemory()
		window = ratelimit.NewMemoryWindow(cfg.BallDontLie.RateLimit, time.Minute)
	}
	limiter := ratelimit.NewLimiter(window, "balldontlie", logger)

	roster := balldontlie.NewClient(balldontlie.Config{
		BaseURL:  cfg.BallDontLie.BaseURL,
		APIKey:   cfg.BallDontLie.APIKey,
		MaxPages: cfg.BallDontLie.MaxPages,
		Limiter:  limiter,
		Recorder: recorder,
		Logger:   logger,
	})
	alternate := sportsblaze.NewClient(sportsblaze.Config{
		BaseURL: cfg.SportsBlaze.BaseURL,
		APIKey:  cfg.SportsBlaze.APIKey,
	})
	stats := nbastats.NewClient(nbastats.Config{
		BaseURL: cfg.NBAStats.BaseURL,
	})
	extraction := llm.NewSource(
		buildLLMBackend(cfg.LLM),
		func(ctx context.Context) ([]string, error) { return st.Abbreviations(ctx) },
		sharedCache,
		cfg.Sync.CacheTTL,
		logger,
	)

	chain := sources.NewChain([]sources.GameSource{
		decorate(roster, cfg, logger, recorder),
		decorate(alternate, cfg, logger, recorder),
		// The generative fallback is expensive; it gets one attempt.
		sources.NewInstrumentedSource(extraction, logger, recorder),
	}, sharedCache, cfg.Sync.CacheTTL, logger)

	engine := reconcile.NewEngine(reconcile.Config{
		Chain:    chain,
		Roster:   roster,
		Stats:    stats,
		Store:    st,
		Cache:    sharedCache,
		Recorder: recorder,
		Logger:   logger,
	})

	runner := jobs.NewRunner(logger, cfg.Sync.MaxAttempts, cfg.Sync.RetryBackoff)
	scheduler := jobs.NewScheduler(runner, loc, logger)

	var metricsSrv *http.Server
	if metricsHandler != nil {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metricsHandler)
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		metricsSrv = &http.Server{
			Addr:         ":" + cfg.Metrics.Port,
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
		}
	}

	return &Server{
		cfg:         cfg,
		logger:      logger,
		recorder:    recorder,
		store:       st,
		roster:      roster,
		engine:      engine,
		runner:      runner,
		scheduler:   scheduler,
		loc:         loc,
		metricsSrv:  metricsSrv,
		metricsStop: metricsStop,
		redisClient: redisClient,
	}, nil
}

func decorate(src sources.GameSource, cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) sources.GameSource {
	instrumented := sources.NewInstrumentedSource(src, logger, recorder)
	return sources.NewRetryingSource(instrumented, logger, cfg.Sync.MaxAttempts, 0)
}

func buildLLMBackend(cfg config.LLMConfig) llm.TextBackend {
	if cfg.PollBaseURL != "" {
		return llm.NewPollingBackend(llm.PollingConfig{
			BaseURL:   cfg.PollBaseURL,
			APIKey:    cfg.APIKey,
			Model:     cfg.Model,
			MaxTokens: cfg.MaxTokens,
			Interval:  cfg.PollInterval,
			MaxPolls:  cfg.PollMax,
		})
	}
	if cfg.APIKey != "" {
		return llm.NewAnthropicBackend(cfg.APIKey, cfg.Model, cfg.MaxTokens)
	}
	return nil
}

// Run starts the scheduler and metrics listener, then blocks until the
// context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.startMetrics()

	if err := s.seedTeams(ctx); err != nil {
		logging.Warn(s.logger, "team catalog seed failed, games may be skipped",
			slog.String("err", err.Error()),
		)
	}

	scheduleJob := jobs.ScheduleJob(s.engine, s.cfg.Sync.ScheduleDays, s.cfg.Sync.LLMTimeout, s.loc, false)
	playersJob := jobs.PlayersJob(s.engine, s.cfg.Sync.APITimeout)

	if err := s.scheduler.Add(s.cfg.Sync.ScheduleCron, scheduleJob); err != nil {
		return fmt.Errorf("register schedule job: %w", err)
	}
	if err := s.scheduler.Add(s.cfg.Sync.PlayersCron, playersJob); err != nil {
		return fmt.Errorf("register players job: %w", err)
	}

	s.scheduler.Start()
	logging.Info(s.logger, "sync worker started",
		slog.String("schedule_cron", s.cfg.Sync.ScheduleCron),
		slog.String("players_cron", s.cfg.Sync.PlayersCron),
	)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")
	s.shutdown()
	return nil
}

// RunOnce executes a single sync pass and exits: the schedule for the given
// dates, then the rosters.
func (s *Server) RunOnce(ctx context.Context, from string, days int, force bool) error {
	if err := s.seedTeams(ctx); err != nil {
		return err
	}

	start := time.Now().In(s.loc)
	if from != "" {
		parsed, err := timeutil.ParseDate(from)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", from, err)
		}
		start = parsed
	}
	if days <= 0 {
		days = 1
	}

	var failures []error
	for _, date := range timeutil.DateRange(start, days) {
		summary, err := s.engine.SyncSchedule(ctx, date, force)
		if err != nil {
			failures = append(failures, fmt.Errorf("%s: %w", date, err))
			continue
		}
		logging.Info(s.logger, "schedule synced",
			slog.String(logging.FieldDate, date),
			slog.Int("created", summary.Created),
			slog.Int("updated", summary.Updated),
			slog.Int("skipped", summary.Skipped),
		)
	}

	if _, err := s.engine.SyncPlayers(ctx); err != nil {
		failures = append(failures, fmt.Errorf("players: %w", err))
	}

	if len(failures) > 0 {
		return errors.Join(failures...)
	}
	return nil
}

// seedTeams populates the team catalog on first boot. Subsequent boots are a
// no-op unless the catalog is empty.
func (s *Server) seedTeams(ctx context.Context) error {
	catalog, err := s.store.TeamCatalog(ctx)
	if err != nil {
		return err
	}
	if len(catalog) > 0 {
		return nil
	}

	records, err := s.roster.FetchTeams(ctx)
	if err != nil {
		return fmt.Errorf("fetch teams: %w", err)
	}
	if err := s.store.SeedTeams(ctx, records); err != nil {
		return err
	}
	logging.Info(s.logger, "team catalog seeded", slog.Int(logging.FieldCount, len(records)))
	return nil
}

func (s *Server) startMetrics() {
	if s.metricsSrv == nil {
		return
	}
	go func() {
		logging.Info(s.logger, "metrics listener starting", slog.String("addr", s.metricsSrv.Addr))
		if err := s.metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error(s.logger, "metrics listener failed", err)
		}
	}()
}

func (s *Server) shutdown() {
	s.scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.metricsSrv != nil {
		if err := s.metricsSrv.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics listener shutdown failed", slog.String("err", err.Error()))
		}
	}
	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics exporter shutdown failed", slog.String("err", err.Error()))
		}
	}
	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			logging.Warn(s.logger, "redis close failed", slog.String("err", err.Error()))
		}
	}
}
