package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/prediction-verifier/internal/config"
	"github.com/riskibarqy/prediction-verifier/internal/domain/fixture"
	"github.com/riskibarqy/prediction-verifier/internal/domain/participant"
	"github.com/riskibarqy/prediction-verifier/internal/domain/prediction"
	"github.com/riskibarqy/prediction-verifier/internal/domain/team"
	"github.com/riskibarqy/prediction-verifier/internal/domain/verification"
	"github.com/riskibarqy/prediction-verifier/internal/infrastructure/export"
	"github.com/riskibarqy/prediction-verifier/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/prediction-verifier/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/prediction-verifier/internal/infrastructure/source"
	idgen "github.com/riskibarqy/prediction-verifier/internal/platform/id"
	"github.com/riskibarqy/prediction-verifier/internal/platform/logging"
	"github.com/riskibarqy/prediction-verifier/internal/usecase"
)

// App holds the wired verifier for one CLI invocation.
type App struct {
	Verification *usecase.VerificationService

	db *sqlx.DB
}

type repositories struct {
	teams       team.Repository
	fixtures    fixture.Repository
	aliases     participant.Repository
	predictions prediction.Repository
	records     verification.Repository
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	out := &App{}
	var repos repositories
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		repos = memoryRepositories(cfg.SeedOnStart)
		logger.Info("using in-memory store", "seeded", cfg.SeedOnStart)
	case config.StoreDriverPostgres:
		db, err := openDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		out.db = db
		if cfg.SeedOnStart {
			if err := postgres.BootstrapSeed(ctx, db); err != nil {
				_ = db.Close()
				return nil, fmt.Errorf("bootstrap seed: %w", err)
			}
		}
		repos = postgresRepositories(db)
		logger.Info("using postgres store", "db_name", newPostgresTarget(cfg).DBName)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}

	loader := source.NewLoader(source.LoaderConfig{
		Dir:             cfg.SourcesDir,
		Workers:         cfg.SourceWorkers,
		DefaultGameweek: cfg.DefaultGameweek,
	}, logger)

	out.Verification = usecase.NewVerificationService(
		repos.teams,
		repos.fixtures,
		repos.aliases,
		repos.predictions,
		repos.records,
		loader,
		export.NewExporter(cfg.BackupDir),
		idgen.NewUUIDGenerator(),
		usecase.VerificationConfig{
			AnnouncementSenders: cfg.AnnouncementSenders,
			Location:            cfg.SourceLocation,
		},
		logger,
	)

	return out, nil
}

// Close releases the database pool when one was opened.
func (a *App) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}

func memoryRepositories(seed bool) repositories {
	if !seed {
		return repositories{
			teams:       memory.NewTeamRepository(nil),
			fixtures:    memory.NewFixtureRepository(nil),
			aliases:     memory.NewParticipantAliasRepository(nil),
			predictions: memory.NewPredictionRepository(nil),
			records:     memory.NewVerificationRepository(),
		}
	}
	return repositories{
		teams:       memory.NewTeamRepository(memory.SeedTeams()),
		fixtures:    memory.NewFixtureRepository(memory.SeedFixtures()),
		aliases:     memory.NewParticipantAliasRepository(memory.SeedParticipantAliases()),
		predictions: memory.NewPredictionRepository(memory.SeedPredictions()),
		records:     memory.NewVerificationRepository(),
	}
}

func postgresRepositories(db *sqlx.DB) repositories {
	return repositories{
		teams:       postgres.NewTeamRepository(db),
		fixtures:    postgres.NewFixtureRepository(db),
		aliases:     postgres.NewParticipantAliasRepository(db),
		predictions: postgres.NewPredictionRepository(db),
		records:     postgres.NewVerificationRepository(db),
	}
}
