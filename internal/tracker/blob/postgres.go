package blob

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
)

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Postgres stores the blob in a two-column key-value table.
type Postgres struct {
	db    *sql.DB
	table string
	key   string
}

func NewPostgres(db *sql.DB, table, key string) (*Postgres, error) {
	if !identPattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &Postgres{db: db, table: table, key: key}, nil
}

// EnsureTable creates the key-value table when it does not exist.
func (p *Postgres) EnsureTable(ctx context.Context) error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`, p.table)
	if _, err := p.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create table %s: %w", p.table, err)
	}
	return nil
}

func (p *Postgres) Read(ctx context.Context) ([]byte, error) {
	query := fmt.Sprintf(`SELECT value FROM %s WHERE key = $1`, p.table)

	var value string
	err := p.db.QueryRowContext(ctx, query, p.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", p.key, err)
	}
	return []byte(value), nil
}

func (p *Postgres) Write(ctx context.Context, data []byte) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`, p.table)

	if _, err := p.db.ExecContext(ctx, query, p.key, string(data)); err != nil {
		return fmt.Errorf("upsert %s: %w", p.key, err)
	}
	return nil
}

func (p *Postgres) Backend() string { return "postgres" }
