package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/mbarese/transfer-sim/internal/config"
	"github.com/mbarese/transfer-sim/internal/domain/player"
	"github.com/mbarese/transfer-sim/internal/domain/rating"
	"github.com/mbarese/transfer-sim/internal/domain/simulation"
	"github.com/mbarese/transfer-sim/internal/infrastructure/repository/cache"
	"github.com/mbarese/transfer-sim/internal/infrastructure/repository/memory"
	"github.com/mbarese/transfer-sim/internal/infrastructure/repository/postgres"
	"github.com/mbarese/transfer-sim/internal/interfaces/httpapi"
	basecache "github.com/mbarese/transfer-sim/internal/platform/cache"
	idgen "github.com/mbarese/transfer-sim/internal/platform/id"
	"github.com/mbarese/transfer-sim/internal/platform/logging"
	"github.com/mbarese/transfer-sim/internal/usecase"
)

type repositories struct {
	players       player.Repository
	teamRatings   rating.TeamRepository
	leagueRatings rating.LeagueRepository
	invalidators  []usecase.CacheInvalidator
}

// NewHTTPServer wires repositories, services, and the HTTP router into a
// ready-to-run server. An empty DBURL selects the embedded in-memory
// reference dataset instead of Postgres.
func NewHTTPServer(cfg config.Config, logger *slog.Logger) (*http.Server, error) {
	repos, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, err
	}

	params := simulation.Params{
		Sensitivity:    cfg.RatingSensitivity,
		PositionWeight: cfg.PositionWeight,
		MultiplierMin:  cfg.MultiplierMin,
		MultiplierMax:  cfg.MultiplierMax,
	}

	ratingSvc := usecase.NewRatingService(repos.teamRatings, repos.leagueRatings, cfg.DefaultRating)
	cohortSvc := usecase.NewCohortService(repos.players)
	simulationSvc := usecase.NewSimulationService(
		repos.players,
		ratingSvc,
		cohortSvc,
		cfg.CurrentSeason,
		params,
		cfg.SimulationPoolSize,
		cfg.BatchMaxItems,
	)
	playerSvc := usecase.NewPlayerService(repos.players, cfg.CurrentSeason)
	referenceSvc := usecase.NewReferenceService(
		repos.players,
		repos.teamRatings,
		repos.leagueRatings,
		repos.invalidators,
		idgen.NewRandomGenerator(),
		cfg.CurrentSeason,
		logging.Default(),
	)

	// League ratings are derived, not stored as source data, so every boot
	// rebuilds them before the first request.
	if _, err := referenceSvc.Reload(context.Background()); err != nil {
		return nil, fmt.Errorf("initial reference reload: %w", err)
	}

	handler := httpapi.NewHandler(simulationSvc, playerSvc, ratingSvc, referenceSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

func buildRepositories(cfg config.Config, logger *slog.Logger) (repositories, error) {
	repos, err := buildBaseRepositories(cfg, logger)
	if err != nil {
		return repositories{}, err
	}
	if !cfg.CacheEnabled {
		return repos, nil
	}

	store := basecache.NewStore(cfg.CacheTTL)

	players := cache.NewPlayerRepository(repos.players, store)
	teamRatings := cache.NewTeamRatingRepository(repos.teamRatings, store)
	leagueRatings := cache.NewLeagueRatingRepository(repos.leagueRatings, store)

	repos.players = players
	repos.teamRatings = teamRatings
	repos.leagueRatings = leagueRatings
	repos.invalidators = []usecase.CacheInvalidator{players, teamRatings, leagueRatings}

	return repos, nil
}

func buildBaseRepositories(cfg config.Config, logger *slog.Logger) (repositories, error) {
	if cfg.DBURL == "" {
		logger.Info("using in-memory reference dataset", "reason", "DB_URL is empty")
		return repositories{
			players:       memory.NewPlayerRepository(memory.SeedPlayers()),
			teamRatings:   memory.NewTeamRatingRepository(memory.SeedTeamRatings()),
			leagueRatings: memory.NewLeagueRatingRepository(nil),
		}, nil
	}

	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Connect("postgres", dbURL,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dbURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return repositories{}, fmt.Errorf("connect postgres: %w", err)
	}

	if err := postgres.BootstrapSeed(context.Background(), db); err != nil {
		return repositories{}, fmt.Errorf("bootstrap seed: %w", err)
	}

	return repositories{
		players:       postgres.NewPlayerRepository(db),
		teamRatings:   postgres.NewTeamRatingRepository(db),
		leagueRatings: postgres.NewLeagueRatingRepository(db),
	}, nil
}
