package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sourcegraph/conc"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/Tejas544/gully-scorer/internal/config"
	"github.com/Tejas544/gully-scorer/internal/domain/ball"
	"github.com/Tejas544/gully-scorer/internal/domain/innings"
	"github.com/Tejas544/gully-scorer/internal/domain/match"
	"github.com/Tejas544/gully-scorer/internal/domain/player"
	"github.com/Tejas544/gully-scorer/internal/domain/playerstats"
	"github.com/Tejas544/gully-scorer/internal/domain/season"
	"github.com/Tejas544/gully-scorer/internal/domain/standing"
	"github.com/Tejas544/gully-scorer/internal/domain/team"
	"github.com/Tejas544/gully-scorer/internal/infrastructure/eventbus"
	repocache "github.com/Tejas544/gully-scorer/internal/infrastructure/repository/cache"
	"github.com/Tejas544/gully-scorer/internal/infrastructure/repository/memory"
	"github.com/Tejas544/gully-scorer/internal/infrastructure/repository/postgres"
	"github.com/Tejas544/gully-scorer/internal/interfaces/httpapi"
	"github.com/Tejas544/gully-scorer/internal/observability"
	"github.com/Tejas544/gully-scorer/internal/platform/cache"
	"github.com/Tejas544/gully-scorer/internal/platform/dburl"
	idgen "github.com/Tejas544/gully-scorer/internal/platform/id"
	"github.com/Tejas544/gully-scorer/internal/platform/logging"
	"github.com/Tejas544/gully-scorer/internal/platform/resilience"
	"github.com/Tejas544/gully-scorer/internal/usecase"
)

const dbPingTimeout = 5 * time.Second

// App owns the HTTP server and the background workers of one API process.
type App struct {
	cfg     config.Config
	logger  *logging.Logger
	server  *http.Server
	bus     *eventbus.Bus
	sweeper *usecase.ProgressionSweeper
	seasons *usecase.SeasonService
	db      *sqlx.DB
}

type repositories struct {
	seasons season.Repository
	teams   team.Repository
	players player.Repository
	matches match.Repository
	innings innings.Repository
	balls   ball.Repository
	stats   playerstats.Repository
}

// New wires the store, services, event consumers and router described by cfg.
func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, db, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	application, err := build(ctx, cfg, repos, logger)
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return nil, err
	}
	application.db = db
	return application, nil
}

func build(ctx context.Context, cfg config.Config, repos repositories, logger *logging.Logger) (*App, error) {
	breaker := resilience.NewBreaker("store", resilience.BreakerConfig{
		Enabled:          cfg.StoreCircuitEnabled,
		FailureThreshold: cfg.StoreCircuitFailureCount,
		OpenTimeout:      cfg.StoreCircuitOpenTimeout,
		HalfOpenMaxReq:   cfg.StoreCircuitHalfOpenReq,
	})

	busCfg := eventbus.Config{Buffer: cfg.EventBuffer, MaxRetries: cfg.EventMaxRetries}
	var (
		scoringMetrics usecase.ScoringMetrics
		metricsHandler http.Handler
	)
	if cfg.MetricsEnabled {
		registry := observability.NewRegistry()
		collectors := observability.NewScoringMetrics(registry)
		collectors.TrackBreaker(breaker)
		scoringMetrics = collectors
		busCfg.Registry = registry
		metricsHandler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
	}

	bus, err := eventbus.New(busCfg, logger.Named("eventbus"))
	if err != nil {
		return nil, crerr.Wrap(err, "build event bus")
	}

	var standingsCache *cache.Store[standing.Table]
	if cfg.CacheEnabled {
		standingsCache = cache.NewStore[standing.Table](cfg.CacheTTL)
	}

	ids := idgen.NewUUIDGenerator()
	scoringSvc := usecase.NewScoringService(usecase.ScoringRepositories{
		Matches: repos.matches,
		Innings: repos.innings,
		Balls:   repos.balls,
		Players: repos.players,
		Stats:   repos.stats,
	}, ids, bus, breaker, scoringMetrics, logger)
	standingsSvc := usecase.NewStandingsService(repos.seasons, repos.teams, repos.matches, repos.innings, standingsCache, logger)
	seasonSvc := usecase.NewSeasonService(repos.seasons, repos.teams, repos.players, repos.matches, ids, scoringSvc, standingsSvc, logger)
	progressionSvc := usecase.NewProgressionService(repos.seasons, repos.teams, repos.matches, repos.innings, ids, scoringSvc, standingsSvc, bus, logger)
	careerSvc := usecase.NewCareerService(repos.players, repos.stats, repos.matches, repos.teams, logger)

	eventbus.RegisterConsumers(bus, progressionSvc, standingsSvc, logger.Named("consumers"))

	if cfg.SeedDemo {
		if err := seedDemo(ctx, seasonSvc, logger); err != nil {
			_ = bus.Close()
			return nil, err
		}
	}

	handler := httpapi.NewHandler(httpapi.Services{
		Seasons:     seasonSvc,
		Standings:   standingsSvc,
		Progression: progressionSvc,
		Scoring:     scoringSvc,
		Careers:     careerSvc,
	}, logger)
	router := httpapi.NewRouter(handler, httpapi.RouterConfig{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		AdminToken:         cfg.AdminToken,
		RateLimitRPS:       cfg.RateLimitRPS,
		RateLimitBurst:     cfg.RateLimitBurst,
		Metrics:            metricsHandler,
	}, logger)

	return &App{
		cfg:    cfg,
		logger: logger,
		server: &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           router,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
		},
		bus:     bus,
		seasons: seasonSvc,
		sweeper: usecase.NewProgressionSweeper(repos.seasons, progressionSvc, cfg.ProgressionWorkers, logger.Named("sweeper")),
	}, nil
}

func openRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, *sqlx.DB, error) {
	var repos repositories
	var db *sqlx.DB

	switch cfg.StoreDriver {
	case config.StorePostgres:
		var err error
		db, err = openPostgres(ctx, cfg)
		if err != nil {
			return repositories{}, nil, err
		}
		logger.Info("store ready", "driver", config.StorePostgres, "db_url", dburl.Redact(cfg.DBURL))
		repos = repositories{
			seasons: postgres.NewSeasonRepository(db),
			teams:   postgres.NewTeamRepository(db),
			players: postgres.NewPlayerRepository(db),
			matches: postgres.NewMatchRepository(db),
			innings: postgres.NewInningsRepository(db),
			balls:   postgres.NewBallRepository(db),
			stats:   postgres.NewPlayerStatsRepository(db),
		}
	default:
		store := memory.NewStore()
		logger.Info("store ready", "driver", config.StoreMemory)
		repos = repositories{
			seasons: memory.NewSeasonRepository(store),
			teams:   memory.NewTeamRepository(store),
			players: memory.NewPlayerRepository(store),
			matches: memory.NewMatchRepository(store),
			innings: memory.NewInningsRepository(store),
			balls:   memory.NewBallRepository(store),
			stats:   memory.NewPlayerStatsRepository(store),
		}
	}

	if cfg.CacheEnabled {
		shared := cache.NewStore[any](cfg.CacheTTL)
		repos.seasons = repocache.NewSeasonRepository(repos.seasons, shared)
		repos.teams = repocache.NewTeamRepository(repos.teams, shared)
		repos.players = repocache.NewPlayerRepository(repos.players, shared)
	}

	return repos, db, nil
}

func openPostgres(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Open("postgres", dburl.Normalize(cfg.DBURL, cfg.DBDisablePreparedBinary),
		otelsql.WithDBName(dburl.Name(cfg.DBURL)),
		otelsql.WithQueryFormatter(traceQuery),
	)
	if err != nil {
		return nil, crerr.Wrap(err, "open postgres")
	}

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, crerr.Wrap(err, "ping postgres")
	}
	return db, nil
}

// seedDemo creates the demo season unless one with the same name exists.
func seedDemo(ctx context.Context, seasons *usecase.SeasonService, logger *logging.Logger) error {
	existing, err := seasons.List(ctx)
	if err != nil {
		return crerr.Wrap(err, "list seasons for demo seed")
	}
	for _, item := range existing {
		if item.Name == memory.DemoSeasonName {
			return nil
		}
	}

	detail, err := seasons.Create(ctx, usecase.CreateSeasonInput{
		Name:      memory.DemoSeasonName,
		TeamNames: memory.DemoTeamNames(),
	})
	if err != nil {
		return crerr.Wrap(err, "seed demo season")
	}
	logger.Info("demo season seeded", "season_id", detail.Season.ID, "matches", len(detail.Matches))
	return nil
}

// Run serves HTTP and runs the event router and progression sweeper until ctx is done,
// then drains them within shutdownTimeout.
func (a *App) Run(ctx context.Context, shutdownTimeout time.Duration) error {
	runCtx, stop := context.WithCancel(ctx)
	defer stop()

	var wg conc.WaitGroup
	serveErr := make(chan error, 1)

	wg.Go(func() {
		if err := a.bus.Run(runCtx); err != nil {
			a.logger.Error("event bus stopped", "error", err)
		}
	})
	wg.Go(func() {
		a.sweeper.Run(runCtx, a.cfg.ProgressionSweepInterval)
	})
	wg.Go(func() {
		a.logger.Info("http server starting", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	})

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-serveErr:
		a.logger.Error("http server failed", "error", runErr)
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		runErr = errors.Join(runErr, crerr.Wrap(err, "shutdown http server"))
	}
	if err := a.bus.Close(); err != nil {
		runErr = errors.Join(runErr, crerr.Wrap(err, "close event bus"))
	}
	wg.Wait()

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			runErr = errors.Join(runErr, crerr.Wrap(err, "close postgres"))
		}
	}
	a.logger.Info("http server stopped")
	return runErr
}

// Handler exposes the router, mainly for tests.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}
