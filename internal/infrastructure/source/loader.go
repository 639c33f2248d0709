// Package source reads prediction documents from a local directory tree.
//
// Layout: <dir>/<gameweek>/<file>. Files outside a numeric directory take the
// run's gameweek, then the configured default. Recognised files are .txt and
// .md (plain), .zip archives holding a .txt transcript and *.chat.txt
// transcripts (chat export).
package source

import (
	"archive/zip"
	"context"
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	crerr "github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/prediction-verifier/internal/domain/message"
	"github.com/riskibarqy/prediction-verifier/internal/domain/prediction"
	"github.com/riskibarqy/prediction-verifier/internal/domain/verification"
	"github.com/riskibarqy/prediction-verifier/internal/platform/logging"
)

const (
	maxDocumentBytes = 32 << 20
	maxGameweek      = 99
)

var errNoTranscript = stderrors.New("archive has no transcript")

type LoaderConfig struct {
	Dir             string
	Workers         int
	DefaultGameweek int
}

type Loader struct {
	dir             string
	workers         int
	defaultGameweek int
	logger          *logging.Logger
}

func NewLoader(cfg LoaderConfig, logger *logging.Logger) *Loader {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 4
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Loader{
		dir:             strings.TrimSpace(cfg.Dir),
		workers:         workers,
		defaultGameweek: cfg.DefaultGameweek,
		logger:          logger,
	}
}

type pendingDocument struct {
	path string
	doc  message.Document
}

// LoadDocuments returns documents sorted by ID. Files whose round cannot be
// derived, and archives without a transcript, are reported as skipped.
func (l *Loader) LoadDocuments(ctx context.Context, scope prediction.Scope) ([]message.Document, []verification.Dropped, error) {
	if l.dir == "" {
		return nil, nil, crerr.New("sources directory is not configured")
	}
	info, err := os.Stat(l.dir)
	if err != nil {
		return nil, nil, crerr.Wrapf(err, "stat sources directory %s", l.dir)
	}
	if !info.IsDir() {
		return nil, nil, crerr.Newf("sources path %s is not a directory", l.dir)
	}

	pending, skipped, err := l.discover(scope)
	if err != nil {
		return nil, nil, err
	}
	if len(pending) == 0 {
		return nil, skipped, nil
	}

	bodies := make([]string, len(pending))
	readErrs := make([]error, len(pending))

	workers := min(l.workers, len(pending))
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, nil, crerr.Wrap(err, "create source worker pool")
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i := range pending {
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				readErrs[i] = err
				return
			}
			bodies[i], readErrs[i] = readDocument(pending[i].path, pending[i].doc.Kind)
		}); err != nil {
			wg.Done()
			wg.Wait()
			return nil, nil, crerr.Wrap(err, "submit source read")
		}
	}
	wg.Wait()

	docs := make([]message.Document, 0, len(pending))
	for i, item := range pending {
		if err := readErrs[i]; err != nil {
			if stderrors.Is(err, errNoTranscript) {
				skipped = append(skipped, verification.Dropped{
					Reason:   verification.DropUnsupportedSource,
					SourceID: item.doc.ID,
					Detail:   err.Error(),
				})
				continue
			}
			return nil, nil, crerr.Wrapf(err, "read source %s", item.doc.ID)
		}
		doc := item.doc
		doc.Body = bodies[i]
		docs = append(docs, doc)
	}

	l.logger.DebugContext(ctx, "source documents loaded", "dir", l.dir, "documents", len(docs), "skipped", len(skipped))
	return docs, skipped, nil
}

func (l *Loader) discover(scope prediction.Scope) ([]pendingDocument, []verification.Dropped, error) {
	var pending []pendingDocument
	var skipped []verification.Dropped

	err := filepath.WalkDir(l.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if path != l.dir && strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		kind, ok := kindOf(name)
		if !ok {
			return nil
		}
		rel, err := filepath.Rel(l.dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		gameweek, detail := l.gameweekFor(rel, scope)
		if gameweek <= 0 {
			skipped = append(skipped, verification.Dropped{
				Reason:   verification.DropUnknownRound,
				SourceID: rel,
				Detail:   detail,
			})
			return nil
		}
		if !scope.IncludesGameweek(gameweek) {
			return nil
		}

		pending = append(pending, pendingDocument{
			path: path,
			doc:  message.Document{ID: rel, Kind: kind, Gameweek: gameweek},
		})
		return nil
	})
	if err != nil {
		return nil, nil, crerr.Wrapf(err, "walk sources directory %s", l.dir)
	}

	sort.Slice(pending, func(i, j int) bool {
		return pending[i].doc.ID < pending[j].doc.ID
	})
	return pending, skipped, nil
}

// gameweekFor returns 0 and the reason when rel has no usable round. A
// numeric top-level directory outside 1..maxGameweek is rejected rather than
// falling back, since it names a round that cannot exist.
func (l *Loader) gameweekFor(rel string, scope prediction.Scope) (int, string) {
	if head, _, found := strings.Cut(rel, "/"); found {
		if gw, err := strconv.Atoi(strings.TrimPrefix(strings.ToLower(head), "gw")); err == nil {
			if gw < 1 || gw > maxGameweek {
				return 0, "directory " + head + " is not a gameweek between 1 and 99"
			}
			return gw, ""
		}
	}
	if scope.Gameweek > 0 {
		return scope.Gameweek, ""
	}
	if l.defaultGameweek > 0 {
		return l.defaultGameweek, ""
	}
	return 0, "no gameweek directory, run gameweek or default gameweek"
}

func kindOf(name string) (message.Kind, bool) {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".zip"), strings.HasSuffix(lower, ".chat.txt"):
		return message.KindChatExport, true
	case strings.HasSuffix(lower, ".txt"), strings.HasSuffix(lower, ".md"):
		return message.KindPlain, true
	default:
		return "", false
	}
}

func readDocument(path string, kind message.Kind) (string, error) {
	if kind == message.KindChatExport && strings.HasSuffix(strings.ToLower(path), ".zip") {
		return readArchive(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", crerr.Wrap(err, "open document")
	}
	defer f.Close()

	return readLimited(f)
}

// readArchive concatenates every .txt entry in name order.
func readArchive(path string) (string, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return "", crerr.Wrap(err, "open archive")
	}
	defer archive.Close()

	var entries []*zip.File
	for _, file := range archive.File {
		if file.FileInfo().IsDir() || !strings.HasSuffix(strings.ToLower(file.Name), ".txt") {
			continue
		}
		entries = append(entries, file)
	}
	if len(entries) == 0 {
		return "", errNoTranscript
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})

	var b strings.Builder
	for _, entry := range entries {
		rc, err := entry.Open()
		if err != nil {
			return "", crerr.Wrapf(err, "open archive entry %s", entry.Name)
		}
		body, err := readLimited(rc)
		_ = rc.Close()
		if err != nil {
			return "", crerr.Wrapf(err, "read archive entry %s", entry.Name)
		}
		b.WriteString(body)
		if !strings.HasSuffix(body, "\n") {
			b.WriteByte('\n')
		}
	}
	return b.String(), nil
}

func readLimited(r io.Reader) (string, error) {
	raw, err := io.ReadAll(io.LimitReader(r, maxDocumentBytes+1))
	if err != nil {
		return "", err
	}
	if len(raw) > maxDocumentBytes {
		return "", crerr.Newf("document exceeds %d bytes", maxDocumentBytes)
	}
	return strings.TrimPrefix(string(raw), "\ufeff"), nil
}
