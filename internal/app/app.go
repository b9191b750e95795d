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

	"github.com/oconaill/fantasy-gaa/external/statsfeed"
	"github.com/oconaill/fantasy-gaa/internal/config"
	"github.com/oconaill/fantasy-gaa/internal/domain/gameweek"
	"github.com/oconaill/fantasy-gaa/internal/domain/match"
	"github.com/oconaill/fantasy-gaa/internal/domain/outbox"
	"github.com/oconaill/fantasy-gaa/internal/domain/player"
	"github.com/oconaill/fantasy-gaa/internal/domain/scoring"
	"github.com/oconaill/fantasy-gaa/internal/domain/team"
	"github.com/oconaill/fantasy-gaa/internal/infrastructure/account/gatekeeper"
	"github.com/oconaill/fantasy-gaa/internal/infrastructure/jobqueue"
	"github.com/oconaill/fantasy-gaa/internal/infrastructure/repository/memory"
	"github.com/oconaill/fantasy-gaa/internal/infrastructure/repository/postgres"
	"github.com/oconaill/fantasy-gaa/internal/interfaces/httpapi"
	"github.com/oconaill/fantasy-gaa/internal/platform/cache"
	idgen "github.com/oconaill/fantasy-gaa/internal/platform/id"
	"github.com/oconaill/fantasy-gaa/internal/platform/logging"
	"github.com/oconaill/fantasy-gaa/internal/platform/resilience"
	"github.com/oconaill/fantasy-gaa/internal/usecase"
)

// Application bundles the HTTP server with the background workers and the
// resources they share.
type Application struct {
	Server *http.Server

	// Dispatcher is nil when webhook delivery is disabled; the outbox then
	// only drains through the internal job endpoint.
	Dispatcher *jobqueue.Dispatcher

	db *sqlx.DB
}

type repositories struct {
	players   player.Repository
	matches   match.Repository
	teams     team.Repository
	gameweeks gameweek.Repository
	outbox    outbox.Repository
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Application, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, db, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	var listCache *cache.Store
	if cfg.CacheEnabled {
		listCache = cache.NewStore(cfg.CacheTTL)
	}

	rules := team.Rules{
		RosterSize:          cfg.RosterSize,
		BudgetCap:           cfg.BudgetCap,
		MaxPlayersPerCounty: cfg.MaxPlayersPerCounty,
	}
	idGen := idgen.NewRandomGenerator()
	rubric := scoring.DefaultRubric()

	playerSvc := usecase.NewPlayerService(repos.players, listCache)
	teamSvc := usecase.NewTeamService(repos.teams, repos.players, rules, idGen)
	transferSvc := usecase.NewTransferService(repos.teams, repos.players, rules, logger)
	matchSvc := usecase.NewMatchService(repos.matches, repos.gameweeks, idGen)
	gameweekSvc := usecase.NewGameweekService(repos.gameweeks)
	settlementSvc := usecase.NewSettlementService(
		repos.matches,
		repos.players,
		repos.teams,
		repos.outbox,
		rubric,
		idGen,
		logger,
	)
	recomputeSvc := usecase.NewRecomputeService(
		repos.matches,
		repos.players,
		repos.teams,
		repos.gameweeks,
		logger,
	)

	var ingestionSvc *usecase.IngestionService
	if cfg.StatsFeedEnabled {
		feed := statsfeed.NewClient(statsfeed.ClientConfig{
			BaseURL:    cfg.StatsFeedBaseURL,
			Token:      cfg.StatsFeedToken,
			Timeout:    cfg.StatsFeedTimeout,
			MaxRetries: cfg.StatsFeedMaxRetries,
			Logger:     logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.StatsFeedCircuitEnabled,
				FailureThreshold: cfg.StatsFeedCircuitFailureCount,
				OpenTimeout:      cfg.StatsFeedCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.StatsFeedCircuitHalfOpenReq,
			},
		})
		ingestionSvc = usecase.NewIngestionService(
			feed,
			repos.matches,
			repos.gameweeks,
			repos.players,
			settlementSvc,
			logger,
		)
	} else {
		logger.Info("stats feed ingestion disabled", "reason", "STATSFEED_ENABLED=false")
	}

	var dispatcher *jobqueue.Dispatcher
	var drainer httpapi.OutboxDrainer
	if cfg.WebhookEnabled {
		publisher := jobqueue.NewWebhookPublisher(jobqueue.WebhookPublisherConfig{
			URL:        cfg.WebhookURL,
			AuthToken:  cfg.WebhookAuthToken,
			Timeout:    cfg.WebhookTimeout,
			MaxRetries: cfg.WebhookMaxRetries,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.WebhookCircuitEnabled,
				FailureThreshold: cfg.WebhookCircuitFailureCount,
				OpenTimeout:      cfg.WebhookCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.WebhookCircuitHalfOpenReq,
			},
		}, logger)
		dispatcher = jobqueue.NewDispatcher(repos.outbox, publisher, jobqueue.DispatcherConfig{
			BatchSize:   cfg.OutboxBatchSize,
			Workers:     cfg.OutboxWorkers,
			Interval:    cfg.OutboxDrainInterval,
			MaxAttempts: cfg.OutboxMaxAttempts,
		}, logger)
		drainer = dispatcher
	} else {
		logger.Info("webhook delivery disabled", "reason", "WEBHOOK_ENABLED=false")
	}

	verifier := gatekeeper.NewClient(
		&http.Client{Timeout: cfg.GatekeeperTimeout},
		cfg.GatekeeperBaseURL,
		cfg.GatekeeperIntrospectPath,
		cfg.GatekeeperAdminKey,
		resilience.CircuitBreakerConfig{
			Enabled:          cfg.GatekeeperCircuitEnabled,
			FailureThreshold: cfg.GatekeeperCircuitFailureCount,
			OpenTimeout:      cfg.GatekeeperCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.GatekeeperCircuitHalfOpenReq,
		},
		logger,
	)

	handler := httpapi.NewHandler(
		playerSvc,
		teamSvc,
		transferSvc,
		matchSvc,
		gameweekSvc,
		settlementSvc,
		recomputeSvc,
		ingestionSvc,
		drainer,
		logger,
	)
	router := httpapi.NewRouter(handler, verifier, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &Application{
		Server:     server,
		Dispatcher: dispatcher,
		db:         db,
	}, nil
}

func (a *Application) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, *sqlx.DB, error) {
	if cfg.DBURL == "" {
		logger.Info("using in-memory repositories", "reason", "DB_URL empty")
		return repositories{
			players:   memory.NewPlayerRepository(memory.SeedPlayers()),
			matches:   memory.NewMatchRepository(memory.SeedMatches()),
			teams:     memory.NewTeamRepository(nil),
			gameweeks: memory.NewGameweekRepository(memory.SeedGameweeks()),
			outbox:    memory.NewOutboxRepository(),
		}, nil, nil
	}

	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.ConnectContext(ctx, "postgres", dbURL,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dbURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return repositories{}, nil, fmt.Errorf("connect database: %w", err)
	}

	db.SetMaxOpenConns(16)
	db.SetMaxIdleConns(8)
	db.SetConnMaxLifetime(30 * time.Minute)

	logger.Info("using postgres repositories", "database", dbNameFromURL(dbURL))

	return repositories{
		players:   postgres.NewPlayerRepository(db),
		matches:   postgres.NewMatchRepository(db),
		teams:     postgres.NewTeamRepository(db),
		gameweeks: postgres.NewGameweekRepository(db),
		outbox:    postgres.NewOutboxRepository(db),
	}, db, nil
}
