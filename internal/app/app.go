package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/cyklop/vb-liga-manager-sub000/internal/config"
	"github.com/cyklop/vb-liga-manager-sub000/internal/domain/fixture"
	"github.com/cyklop/vb-liga-manager-sub000/internal/domain/league"
	"github.com/cyklop/vb-liga-manager-sub000/internal/domain/leaguestanding"
	"github.com/cyklop/vb-liga-manager-sub000/internal/domain/team"
	"github.com/cyklop/vb-liga-manager-sub000/internal/infrastructure/repository/memory"
	"github.com/cyklop/vb-liga-manager-sub000/internal/infrastructure/repository/postgres"
	"github.com/cyklop/vb-liga-manager-sub000/internal/interfaces/httpapi"
	"github.com/cyklop/vb-liga-manager-sub000/internal/platform/cache"
	idgen "github.com/cyklop/vb-liga-manager-sub000/internal/platform/id"
	"github.com/cyklop/vb-liga-manager-sub000/internal/platform/logging"
	"github.com/cyklop/vb-liga-manager-sub000/internal/platform/resilience"
	"github.com/cyklop/vb-liga-manager-sub000/internal/usecase"
)

type repositories struct {
	leagues  league.Repository
	teams    team.Repository
	fixtures fixture.Repository
	close    func() error
}

// NewHTTPServer wires repositories, usecases and the router. The returned cleanup releases the
// database pool and must run after the server has shut down.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	tables := cache.Disabled[[]leaguestanding.Standing]()
	if cfg.CacheEnabled {
		tables = cache.New[[]leaguestanding.Standing](cfg.CacheTTL)
	}

	standingSvc := usecase.NewLeagueStandingService(
		repos.leagues,
		repos.teams,
		repos.fixtures,
		tables,
		cfg.StandingsOverviewWorkers,
		logger.Named("standings"),
	)
	leagueSvc := usecase.NewLeagueService(repos.leagues, repos.teams)
	fixtureSvc := usecase.NewFixtureService(repos.leagues, repos.teams, repos.fixtures, standingSvc, logger.Named("fixtures"))
	resultSvc := usecase.NewResultService(repos.leagues, repos.fixtures, standingSvc, cfg.ResultImportWorkers, logger.Named("results"))

	handler := httpapi.NewHandler(leagueSvc, fixtureSvc, resultSvc, standingSvc, logger)
	router := httpapi.NewRouter(handler, logger.Named("http"), cfg.CORSAllowedOrigins, cfg.AdminToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		_ = repos.close()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, repos.close, nil
}

func loadSeed(cfg config.Config) (memory.Seed, error) {
	if cfg.SeedFile == "" {
		return memory.DefaultSeed(), nil
	}
	return memory.LoadSeed(cfg.SeedFile)
}

func openRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	seed, err := loadSeed(cfg)
	if err != nil {
		return repositories{}, err
	}

	ids := idgen.NewUUIDGenerator()
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openDB(ctx, cfg)
		if err != nil {
			return repositories{}, err
		}
		if err := postgres.BootstrapSeed(ctx, db, seed); err != nil {
			_ = db.Close()
			return repositories{}, err
		}
		breaker := dbCircuitBreaker(cfg, logger)
		logger.Info("storage ready",
			"driver", cfg.StorageDriver,
			"db_name", dbNameFromURL(cfg.DBURL),
			"circuit_breaker", breaker != nil,
		)
		return repositories{
			leagues:  postgres.NewLeagueRepository(db, breaker),
			teams:    postgres.NewTeamRepository(db, breaker),
			fixtures: postgres.NewFixtureRepository(db, ids, breaker),
			close:    db.Close,
		}, nil
	default:
		logger.Info("storage ready",
			"driver", config.StorageMemory,
			"leagues", len(seed.Leagues),
			"teams", len(seed.Teams),
			"seed_file", cfg.SeedFile,
		)
		return repositories{
			leagues:  memory.NewLeagueRepository(seed.Leagues),
			teams:    memory.NewTeamRepository(seed.Teams),
			fixtures: memory.NewFixtureRepository(ids, nil),
			close:    func() error { return nil },
		}, nil
	}
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(strings.TrimSpace(cfg.DBURL), cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxOpenConns)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

func dbCircuitBreaker(cfg config.Config, logger *logging.Logger) *resilience.CircuitBreaker {
	breaker := resilience.CircuitBreakerConfig{
		Enabled:          cfg.DBCircuitEnabled,
		FailureThreshold: cfg.DBCircuitFailureCount,
		OpenTimeout:      cfg.DBCircuitOpenTimeout,
		HalfOpenMaxReq:   cfg.DBCircuitHalfOpenMaxReq,
	}.Build("postgres")
	if breaker == nil {
		return nil
	}

	breaker.OnStateChange(func(name string, from, to resilience.CircuitState) {
		if to == resilience.CircuitStateOpen {
			logger.Warn("circuit breaker opened", "dependency", name, "from", from)
			return
		}
		logger.Info("circuit breaker state changed", "dependency", name, "from", from, "to", to)
	})
	return breaker
}
