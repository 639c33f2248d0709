package usecase

import (
	"context"

	"github.com/riskibarqy/prediction-verifier/internal/domain/message"
	"github.com/riskibarqy/prediction-verifier/internal/domain/prediction"
	"github.com/riskibarqy/prediction-verifier/internal/domain/verification"
)

// SourceProvider supplies raw documents that are already available locally.
// Documents whose round cannot be derived come back as skipped entries.
type SourceProvider interface {
	LoadDocuments(ctx context.Context, scope prediction.Scope) ([]message.Document, []verification.Dropped, error)
}

// BackupExporter writes the per-run audit snapshot. Files are never overwritten.
type BackupExporter interface {
	WriteBackup(ctx context.Context, summary *verification.Summary, records []verification.Record) (string, error)
	WriteSummary(ctx context.Context, summary *verification.Summary) (string, error)
}

type noopBackupExporter struct{}

func (noopBackupExporter) WriteBackup(_ context.Context, _ *verification.Summary, _ []verification.Record) (string, error) {
	return "", nil
}

func (noopBackupExporter) WriteSummary(_ context.Context, _ *verification.Summary) (string, error) {
	return "", nil
}

func NewNoopBackupExporter() BackupExporter {
	return noopBackupExporter{}
}
