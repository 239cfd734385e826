package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/draftday/draftroom/external/playerdata"
	"github.com/draftday/draftroom/internal/config"
	"github.com/draftday/draftroom/internal/domain/draft"
	"github.com/draftday/draftroom/internal/domain/league"
	"github.com/draftday/draftroom/internal/infrastructure/account/passport"
	cacherepo "github.com/draftday/draftroom/internal/infrastructure/repository/cache"
	"github.com/draftday/draftroom/internal/infrastructure/repository/memory"
	"github.com/draftday/draftroom/internal/infrastructure/repository/postgres"
	"github.com/draftday/draftroom/internal/interfaces/httpapi"
	basecache "github.com/draftday/draftroom/internal/platform/cache"
	idgen "github.com/draftday/draftroom/internal/platform/id"
	"github.com/draftday/draftroom/internal/platform/logging"
	"github.com/draftday/draftroom/internal/platform/resilience"
	"github.com/draftday/draftroom/internal/usecase"
)

// Application bundles the HTTP server with the background workers and
// connections it owns.
type Application struct {
	Server   *http.Server
	Autopick *usecase.AutopickService

	db *sqlx.DB
}

func NewApplication(cfg config.Config, logger *logging.Logger) (*Application, error) {
	if logger == nil {
		logger = logging.Default()
	}

	app := &Application{}

	leagueRepo, draftRepo, err := buildRepositories(cfg, app)
	if err != nil {
		return nil, err
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		leagueRepo = cacherepo.NewLeagueRepository(leagueRepo, store)
		draftRepo = cacherepo.NewDraftRepository(draftRepo, store, store)
	}

	generator := idgen.NewRandomGenerator()
	leagueSvc := usecase.NewLeagueService(leagueRepo, draftRepo, generator, logger, cfg.DraftDefaultTotalRounds)
	draftSvc := usecase.NewDraftService(leagueRepo, draftRepo, generator, logger)

	if cfg.AutopickEnabled {
		catalog := playerdata.NewClient(playerdata.ClientConfig{
			BaseURL:    cfg.PlayerDataBaseURL,
			Token:      cfg.PlayerDataToken,
			Timeout:    cfg.PlayerDataTimeout,
			MaxRetries: cfg.PlayerDataMaxRetries,
			Logger:     logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.PlayerDataCircuitEnabled,
				FailureThreshold: cfg.PlayerDataCircuitFailureCount,
				OpenTimeout:      cfg.PlayerDataCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.PlayerDataCircuitHalfOpenMaxReq,
			},
		})
		app.Autopick = usecase.NewAutopickService(
			draftSvc,
			leagueRepo,
			draftRepo,
			catalog,
			logger,
			cfg.AutopickIdleAfter,
			cfg.AutopickInterval,
			cfg.AutopickMaxWorkers,
		)
	}

	verifier := passport.NewClient(
		&http.Client{Timeout: cfg.PassportTimeout},
		cfg.PassportBaseURL,
		cfg.PassportIntrospectPath,
		logger,
	)

	handler := httpapi.NewHandler(leagueSvc, draftSvc, logger)
	router := httpapi.NewRouter(handler, verifier, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	app.Server = server
	return app, nil
}

// Close releases connections owned by the application. The HTTP server is
// shut down separately by the caller.
func (a *Application) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func buildRepositories(cfg config.Config, app *Application) (league.Repository, draft.Repository, error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openDB(cfg)
		if err != nil {
			return nil, nil, err
		}
		app.db = db
		return postgres.NewLeagueRepository(db), postgres.NewDraftRepository(db), nil
	case config.StorageMemory:
		leagueRepo := memory.NewLeagueRepository(memory.SeedLeagues(), memory.SeedMembers())
		return leagueRepo, memory.NewDraftRepository(leagueRepo), nil
	default:
		return nil, nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}
