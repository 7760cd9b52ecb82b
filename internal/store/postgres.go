package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresJournal struct {
	pool *pgxpool.Pool
}

func NewPostgresJournal(ctx context.Context, databaseURL string) (*PostgresJournal, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresJournal{pool: pool}, nil
}

func (s *PostgresJournal) Close() error {
	s.pool.Close()
	return nil
}

var schema = []string{`
CREATE TABLE IF NOT EXISTS matrix_journal (
	entry_id      UUID PRIMARY KEY,
	kind          TEXT NOT NULL,
	criterion_id  INTEGER NOT NULL DEFAULT 0,
	option_id     TEXT NOT NULL DEFAULT '',
	name          TEXT NOT NULL DEFAULT '',
	value         INTEGER NOT NULL DEFAULT 0,
	best_option   TEXT NOT NULL DEFAULT '',
	best_score    INTEGER NOT NULL DEFAULT 0,
	total_weight  INTEGER NOT NULL DEFAULT 0,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE INDEX IF NOT EXISTS matrix_journal_created_at_idx ON matrix_journal (created_at DESC)`,
}

// EnsureSchema creates the journal table if it does not exist.
func (s *PostgresJournal) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

const entryColumns = `entry_id, kind, criterion_id, option_id, name, value,
	best_option, best_score, total_weight, created_at`

func (s *PostgresJournal) Append(ctx context.Context, e *Entry) error {
	prepare(e, time.Now().UTC())
	_, err := s.pool.Exec(ctx, `
		INSERT INTO matrix_journal (`+entryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		e.ID, string(e.Kind), e.CriterionID, e.Option, e.Name, e.Value,
		e.BestOption, e.BestScore, e.TotalWeight, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append journal entry: %w", err)
	}
	return nil
}

func (s *PostgresJournal) List(ctx context.Context, f Filter) ([]*Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM matrix_journal WHERE 1=1`
	args := []interface{}{}
	n := 0

	if f.Kind != nil {
		n++
		query += fmt.Sprintf(" AND kind = $%d", n)
		args = append(args, string(*f.Kind))
	}

	query += " ORDER BY created_at DESC"
	n++
	query += fmt.Sprintf(" LIMIT $%d", n)
	args = append(args, f.limit())

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

func scanEntries(rows pgx.Rows) ([]*Entry, error) {
	var out []*Entry
	for rows.Next() {
		e := &Entry{}
		var kind string
		if err := rows.Scan(
			&e.ID, &kind, &e.CriterionID, &e.Option, &e.Name, &e.Value,
			&e.BestOption, &e.BestScore, &e.TotalWeight, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		e.Kind = EntryKind(kind)
		out = append(out, e)
	}
	return out, rows.Err()
}
