package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/prediction-verifier/internal/domain/fixture"
	"github.com/riskibarqy/prediction-verifier/internal/domain/message"
	"github.com/riskibarqy/prediction-verifier/internal/domain/participant"
	"github.com/riskibarqy/prediction-verifier/internal/domain/prediction"
	"github.com/riskibarqy/prediction-verifier/internal/domain/team"
	"github.com/riskibarqy/prediction-verifier/internal/domain/verification"
	"github.com/riskibarqy/prediction-verifier/internal/platform/id"
	"github.com/riskibarqy/prediction-verifier/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"
)

type VerificationConfig struct {
	AnnouncementSenders []string
	// Location applies to source timestamps that carry no zone.
	Location *time.Location
}

type RunInput struct {
	LeagueID       string `validate:"required,max=64"`
	Gameweek       int    `validate:"gte=0,lte=99"`
	ParticipantKey string `validate:"omitempty,max=64"`
}

type RunResult struct {
	Summary *verification.Summary `json:"summary"`
	Records []verification.Record `json:"records"`
}

type RecordQuery struct {
	LeagueID       string `validate:"required,max=64"`
	Gameweek       int    `validate:"gte=0,lte=99"`
	ParticipantKey string `validate:"omitempty,max=64"`
	Category       string `validate:"omitempty,max=32"`
}

type VerificationService struct {
	teamRepo       team.Repository
	fixtureRepo    fixture.Repository
	aliasRepo      participant.Repository
	predictionRepo prediction.Repository
	recordRepo     verification.Repository
	sources        SourceProvider
	exporter       BackupExporter
	idGen          id.Generator
	cfg            VerificationConfig
	logger         *logging.Logger
	validator      *validator.Validate
	now            func() time.Time
}

func NewVerificationService(
	teamRepo team.Repository,
	fixtureRepo fixture.Repository,
	aliasRepo participant.Repository,
	predictionRepo prediction.Repository,
	recordRepo verification.Repository,
	sources SourceProvider,
	exporter BackupExporter,
	idGen id.Generator,
	cfg VerificationConfig,
	logger *logging.Logger,
) *VerificationService {
	if exporter == nil {
		exporter = NewNoopBackupExporter()
	}
	if idGen == nil {
		idGen = id.NewUUIDGenerator()
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &VerificationService{
		teamRepo:       teamRepo,
		fixtureRepo:    fixtureRepo,
		aliasRepo:      aliasRepo,
		predictionRepo: predictionRepo,
		recordRepo:     recordRepo,
		sources:        sources,
		exporter:       exporter,
		idGen:          idGen,
		cfg:            cfg,
		logger:         logger,
		validator:      validator.New(),
		now:            time.Now,
	}
}

type runInputs struct {
	teams     []team.Team
	fixtures  []fixture.Fixture
	aliases   []participant.AliasEntry
	stored    []prediction.StoredPrediction
	documents []message.Document
	skipped   []verification.Dropped
}

// Run reconciles message predictions against the stored ones for one scope.
// Routine extraction failures become summary drops. Load or persist failures
// abort with ErrDependencyUnavailable and leave the stored records as they were.
func (s *VerificationService) Run(ctx context.Context, input RunInput) (RunResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.VerificationService.Run")
	defer span.End()

	input.LeagueID = strings.TrimSpace(input.LeagueID)
	input.ParticipantKey = strings.TrimSpace(input.ParticipantKey)
	if err := s.validator.StructCtx(ctx, input); err != nil {
		return RunResult{}, fmt.Errorf("%w: validation failed: %v", ErrInvalidInput, err)
	}
	if s.sources == nil || s.recordRepo == nil {
		return RunResult{}, fmt.Errorf("%w: verification is not fully configured", ErrDependencyUnavailable)
	}

	scope := prediction.Scope{
		LeagueID:       input.LeagueID,
		Gameweek:       input.Gameweek,
		ParticipantKey: input.ParticipantKey,
	}
	runID, err := s.idGen.NewID()
	if err != nil {
		return RunResult{}, fmt.Errorf("create run id: %w", err)
	}
	summary := verification.NewSummary(runID, scope, s.now().UTC())
	logger := s.logger.With("run_id", runID, "league_id", scope.LeagueID)
	span.SetAttributes(
		attribute.String("verification.run_id", runID),
		attribute.String("verification.league_id", scope.LeagueID),
		attribute.Int("verification.gameweek", scope.Gameweek),
	)

	inputs, err := s.loadInputs(ctx, scope)
	if err != nil {
		return RunResult{}, err
	}
	summary.Documents = len(inputs.documents)
	summary.Stored = len(inputs.stored)
	for _, skipped := range inputs.skipped {
		summary.AddDrop(skipped)
	}

	parser, resolver, err := buildLookups(inputs, s.cfg)
	if err != nil {
		return RunResult{}, err
	}

	resolved, err := s.extract(ctx, logger, parser, resolver, inputs.documents, scope, summary)
	if err != nil {
		return RunResult{}, err
	}

	survivors := verification.Reduce(resolved)
	summary.Survivors = len(survivors)

	records := verification.Compare(survivors, inputs.stored)
	createdAt := s.now().UTC()
	for i := range records {
		records[i].RunID = runID
		records[i].LeagueID = scope.LeagueID
		records[i].CreatedAt = createdAt
	}
	summary.Tally(records)

	replaceErr := s.recordRepo.ReplaceScope(ctx, scope, records)
	summary.FinishedAt = s.now().UTC()
	s.writeBackup(ctx, logger, summary, records)

	result := RunResult{Summary: summary, Records: records}
	if replaceErr != nil {
		logger.ErrorContext(ctx, "replace verification records failed", "error", replaceErr)
		return result, fmt.Errorf("%w: replace verification records: %v", ErrDependencyUnavailable, replaceErr)
	}

	logger.InfoContext(ctx, "verification run completed",
		"gameweek", scope.Gameweek,
		"participant_key", scope.ParticipantKey,
		"documents", summary.Documents,
		"parsed", summary.Parsed,
		"resolved", summary.Resolved,
		"survivors", summary.Survivors,
		"dropped", summary.TotalDropped(),
		"match", summary.Categories[verification.CategoryMatch],
		"score_mismatch", summary.Categories[verification.CategoryScoreMismatch],
		"message_only", summary.Categories[verification.CategoryMessageOnly],
		"database_only", summary.Categories[verification.CategoryDatabaseOnly],
		"backup_path", summary.BackupPath,
	)
	return result, nil
}

// ListRecords returns persisted verification records for a scope.
func (s *VerificationService) ListRecords(ctx context.Context, query RecordQuery) ([]verification.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.VerificationService.ListRecords")
	defer span.End()

	query.LeagueID = strings.TrimSpace(query.LeagueID)
	if err := s.validator.StructCtx(ctx, query); err != nil {
		return nil, fmt.Errorf("%w: validation failed: %v", ErrInvalidInput, err)
	}
	category, err := verification.ParseCategory(query.Category)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	records, err := s.recordRepo.ListByScope(ctx, prediction.Scope{
		LeagueID:       query.LeagueID,
		Gameweek:       query.Gameweek,
		ParticipantKey: strings.TrimSpace(query.ParticipantKey),
	}, category)
	if err != nil {
		return nil, fmt.Errorf("list verification records: %w", err)
	}
	return records, nil
}

// loadInputs fetches reference data, stored predictions and documents
// concurrently. Any failure is fatal for the run.
func (s *VerificationService) loadInputs(ctx context.Context, scope prediction.Scope) (runInputs, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.VerificationService.loadInputs",
		attribute.String("verification.league_id", scope.LeagueID),
		attribute.Int("verification.gameweek", scope.Gameweek),
	)
	defer span.End()

	var out runInputs
	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		items, err := s.teamRepo.ListByLeague(ctx, scope.LeagueID)
		if err != nil {
			return fmt.Errorf("list teams: %w", err)
		}
		out.teams = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.fixtureRepo.ListByLeague(ctx, scope.LeagueID)
		if err != nil {
			return fmt.Errorf("list fixtures: %w", err)
		}
		out.fixtures = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.aliasRepo.ListAliases(ctx, scope.LeagueID)
		if err != nil {
			return fmt.Errorf("list participant aliases: %w", err)
		}
		out.aliases = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.predictionRepo.ListByScope(ctx, scope)
		if err != nil {
			return fmt.Errorf("list stored predictions: %w", err)
		}
		out.stored = filterStored(items, scope)
		return nil
	})
	p.Go(func(ctx context.Context) error {
		docs, skipped, err := s.sources.LoadDocuments(ctx, scope)
		if err != nil {
			return fmt.Errorf("load source documents: %w", err)
		}
		out.documents = docs
		out.skipped = skipped
		return nil
	})

	if err := p.Wait(); err != nil {
		return runInputs{}, fmt.Errorf("%w: %v", ErrDependencyUnavailable, err)
	}
	if len(out.teams) == 0 {
		return runInputs{}, fmt.Errorf("%w: league=%s has no teams", ErrNotFound, scope.LeagueID)
	}
	return out, nil
}

func buildLookups(inputs runInputs, cfg VerificationConfig) (*message.Parser, *verification.CandidateResolver, error) {
	directory, err := team.NewDirectory(inputs.teams)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: build team directory: %v", ErrInconsistentData, err)
	}
	aliases, err := participant.NewAliasTable(inputs.aliases)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: build alias table: %v", ErrInconsistentData, err)
	}
	locator := fixture.NewLocator(inputs.fixtures)

	parser := message.NewParser(directory, cfg.Location)
	resolver := verification.NewCandidateResolver(aliases, locator, cfg.AnnouncementSenders)
	return parser, resolver, nil
}

func (s *VerificationService) extract(
	ctx context.Context,
	logger *logging.Logger,
	parser *message.Parser,
	resolver *verification.CandidateResolver,
	documents []message.Document,
	scope prediction.Scope,
	summary *verification.Summary,
) ([]verification.ResolvedCandidate, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.VerificationService.extract",
		attribute.Int("verification.documents", len(documents)),
	)
	defer span.End()

	drop := func(pc message.ParsedCandidate, err error) error {
		reason, ok := verification.ReasonOf(err)
		if !ok {
			return fmt.Errorf("source %s line %d: %w", pc.SourceID, pc.Line, err)
		}
		summary.AddDrop(verification.DroppedFrom(pc, reason, err))
		logger.DebugContext(ctx, "candidate dropped",
			"reason", reason,
			"source_id", pc.SourceID,
			"line", pc.Line,
			"raw_participant", pc.RawParticipant,
			"error", err,
		)
		return nil
	}

	var resolved []verification.ResolvedCandidate
	for _, doc := range documents {
		for pc, err := range parser.Parse(doc) {
			if err != nil {
				if dropErr := drop(pc, err); dropErr != nil {
					return nil, dropErr
				}
				continue
			}
			summary.Parsed++

			rc, err := resolver.Resolve(pc)
			if err != nil {
				if dropErr := drop(pc, err); dropErr != nil {
					return nil, dropErr
				}
				continue
			}
			if !scope.IncludesGameweek(rc.Fixture.Gameweek) || !scope.IncludesParticipant(rc.ParticipantKey) {
				summary.OutOfScope++
				continue
			}
			summary.Resolved++
			resolved = append(resolved, rc)
		}
	}
	return resolved, nil
}

func (s *VerificationService) writeBackup(ctx context.Context, logger *logging.Logger, summary *verification.Summary, records []verification.Record) {
	ctx, span := startUsecaseSpan(ctx, "usecase.VerificationService.writeBackup")
	defer span.End()

	path, err := s.exporter.WriteBackup(ctx, summary, records)
	if err != nil {
		summary.BackupError = err.Error()
		logger.WarnContext(ctx, "write verification backup failed", "error", err)
	} else {
		summary.BackupPath = path
	}

	if _, err := s.exporter.WriteSummary(ctx, summary); err != nil {
		logger.WarnContext(ctx, "write run summary failed", "error", err)
	}
}

func filterStored(items []prediction.StoredPrediction, scope prediction.Scope) []prediction.StoredPrediction {
	out := items[:0:0]
	for _, item := range items {
		if scope.Includes(item) {
			out = append(out, item)
		}
	}
	return out
}
