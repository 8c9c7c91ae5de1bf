package postgres

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
)

// DB is the subset of pgxpool.Pool the repositories need. pgxmock pools
// satisfy it as well.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Request is one captured request row. Headers holds the JSON object text
// exactly as stored.
type Request struct {
	ID      int64     `db:"id"`
	Date    time.Time `db:"date"`
	Headers string    `db:"headers"`
	Count   int64     `db:"count"`
}

// RequestRepo reads the request table.
type RequestRepo struct {
	db DB
}

func NewRequestRepo(db DB) *RequestRepo {
	return &RequestRepo{db: db}
}

func selectRequestsBuilder() squirrel.SelectBuilder {
	return squirrel.
		Select("headers", "date", "count", "id").
		Distinct().
		From("request").
		OrderBy("date DESC", "count DESC", "id DESC").
		PlaceholderFormat(squirrel.Dollar)
}

// Stream yields every distinct request, newest first, scanning one row at a
// time off the cursor. A failed statement or row is yielded as the last
// element.
func (r *RequestRepo) Stream(ctx context.Context) iter.Seq2[*Request, error] {
	return func(yield func(*Request, error) bool) {
		query, args, err := selectRequestsBuilder().ToSql()
		if err != nil {
			yield(nil, fmt.Errorf("failed to build request query: %w", err))
			return
		}
		rows, err := r.db.Query(ctx, query, args...)
		if err != nil {
			yield(nil, fmt.Errorf("failed to query requests: %w", err))
			return
		}
		defer rows.Close()
		scanner := pgxscan.NewRowScanner(rows)
		for rows.Next() {
			var req Request
			if err := scanner.Scan(&req); err != nil {
				yield(nil, fmt.Errorf("failed to scan request: %w", err))
				return
			}
			if !yield(&req, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(nil, fmt.Errorf("failed to iterate requests: %w", err))
		}
	}
}
