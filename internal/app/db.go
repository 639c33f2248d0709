package app

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/prediction-verifier/internal/config"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"
)

// tracedQueryLimit caps the statement text attached to db spans.
const tracedQueryLimit = 512

// postgresTarget is what openDB dials and what its spans report.
type postgresTarget struct {
	DSN    string
	DBName string
}

func newPostgresTarget(cfg config.Config) postgresTarget {
	dsn := strings.TrimSpace(cfg.DBURL)
	if cfg.DBDisablePreparedBinary {
		dsn = withoutPreparedBinaryResults(dsn)
	}
	return postgresTarget{DSN: dsn, DBName: databaseName(dsn)}
}

// withoutPreparedBinaryResults asks lib/pq for text results so the verifier
// works behind transaction-pooling proxies. An explicit setting in the URL wins.
func withoutPreparedBinaryResults(dsn string) string {
	parsed, err := url.Parse(dsn)
	if err != nil || parsed.Scheme == "" {
		return dsn
	}

	query := parsed.Query()
	if query.Get("disable_prepared_binary_result") != "" {
		return dsn
	}
	query.Set("disable_prepared_binary_result", "yes")
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

// databaseName reads the database from URL or key=value connection strings.
func databaseName(dsn string) string {
	if parsed, err := url.Parse(dsn); err == nil && parsed.Scheme != "" {
		return strings.TrimPrefix(parsed.Path, "/")
	}
	for _, field := range strings.Fields(dsn) {
		if name, ok := strings.CutPrefix(field, "dbname="); ok {
			return strings.Trim(name, `"'`)
		}
	}
	return ""
}

// traceQuery collapses whitespace so multi-line statements read as one line in traces.
func traceQuery(query string) string {
	compact := strings.Join(strings.Fields(query), " ")
	if len(compact) <= tracedQueryLimit {
		return compact
	}
	return compact[:tracedQueryLimit] + "..."
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	target := newPostgresTarget(cfg)
	db, err := otelsqlx.Open("postgres", target.DSN,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(target.DBName),
		otelsql.WithQueryFormatter(traceQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(8)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}
