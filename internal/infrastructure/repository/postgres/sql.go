package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"
)

// maxInsertRows keeps multi-row inserts well under the 65535 bind parameter limit.
const maxInsertRows = 500

// isUnnamedPreparedStatementMissing matches the error transaction-pooling
// proxies return when the unnamed statement was parsed on another backend.
func isUnnamedPreparedStatementMissing(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unnamed prepared statement does not exist") ||
		(strings.Contains(msg, "prepared statement") && strings.Contains(msg, "26000"))
}

func isBindParameterMismatch(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "bind message supplies") && strings.Contains(msg, "prepared statement")
}

// selectWithRetry runs SelectContext once more when the pooled connection lost
// its unnamed statement. Reads are idempotent so the retry is safe.
func selectWithRetry(ctx context.Context, db *sqlx.DB, dest any, query string, args ...any) error {
	err := db.SelectContext(ctx, dest, query, args...)
	if isUnnamedPreparedStatementMissing(err) || isBindParameterMismatch(err) {
		err = db.SelectContext(ctx, dest, query, args...)
	}
	return err
}

func nullInt64ToIntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	out := int(v.Int64)
	return &out
}

func intPtrToNullInt64(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func chunk[T any](items []T, size int) [][]T {
	if size <= 0 || len(items) <= size {
		if len(items) == 0 {
			return nil
		}
		return [][]T{items}
	}
	out := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		out = append(out, items[start:end])
	}
	return out
}
