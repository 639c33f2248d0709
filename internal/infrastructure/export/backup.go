// Package export writes the per-run audit files: a CSV snapshot of the
// verification records and a JSON run summary. Files are created exclusively
// and never overwritten.
package export

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/prediction-verifier/internal/domain/verification"
	"github.com/valyala/bytebufferpool"
)

const fileTimeLayout = "20060102T150405Z"

var backupHeader = []string{
	"category",
	"participant",
	"fixture",
	"gameweek",
	"home_team",
	"away_team",
	"stored_score",
	"message_score",
}

// createExclusive fails when path already exists.
var createExclusive = func(path string) (io.WriteCloser, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
}

type Exporter struct {
	dir string
}

func NewExporter(dir string) *Exporter {
	return &Exporter{dir: strings.TrimSpace(dir)}
}

// WriteBackup writes verification_<time>_<run>.csv and returns its path.
func (e *Exporter) WriteBackup(ctx context.Context, summary *verification.Summary, records []verification.Record) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if summary == nil {
		return "", crerr.New("run summary is required")
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	w := csv.NewWriter(buf)
	if err := w.Write(backupHeader); err != nil {
		return "", crerr.Wrap(err, "encode backup header")
	}
	for _, rec := range records {
		row := []string{
			string(rec.Category),
			rec.ParticipantKey,
			rec.FixtureID,
			strconv.Itoa(rec.Gameweek),
			rec.HomeTeam,
			rec.AwayTeam,
			rec.StoredScore(),
			rec.MessageScore(),
		}
		if err := w.Write(row); err != nil {
			return "", crerr.Wrapf(err, "encode backup row participant=%s fixture=%s", rec.ParticipantKey, rec.FixtureID)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", crerr.Wrap(err, "flush backup")
	}

	return e.writeExclusive("verification_"+fileSuffix(summary)+".csv", buf.B)
}

// WriteSummary writes summary_<time>_<run>.json next to the backup.
func (e *Exporter) WriteSummary(ctx context.Context, summary *verification.Summary) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if summary == nil {
		return "", crerr.New("run summary is required")
	}

	body, err := sonic.ConfigStd.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", crerr.Wrap(err, "marshal run summary")
	}
	body = append(body, '\n')

	return e.writeExclusive("summary_"+fileSuffix(summary)+".json", body)
}

func (e *Exporter) writeExclusive(name string, body []byte) (string, error) {
	if e.dir == "" {
		return "", crerr.New("backup directory is not configured")
	}
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", crerr.Wrapf(err, "create backup directory %s", e.dir)
	}

	path := filepath.Join(e.dir, name)
	f, err := createExclusive(path)
	if err != nil {
		return "", crerr.Wrapf(err, "create %s", path)
	}
	// A partial file would block the name forever, so failed writes are removed.
	if _, err := f.Write(body); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", crerr.Wrapf(err, "write %s", path)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", crerr.Wrapf(err, "close %s", path)
	}
	return path, nil
}

func fileSuffix(summary *verification.Summary) string {
	runID := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, summary.RunID)
	return summary.StartedAt.UTC().Format(fileTimeLayout) + "_" + runID
}
