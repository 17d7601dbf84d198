package license

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"licensure/internal/domain"
)

// PostgresStore persists license records via database/sql. The natural key
// is deliberately not a unique constraint: the UNKNOWN sentinel makes
// legitimate duplicates of the key possible upstream, so the upsert does a
// select-then-write inside one transaction instead.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the licenses table when missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS licenses (
	id               SERIAL PRIMARY KEY,
	full_name        TEXT NOT NULL,
	state            TEXT NOT NULL,
	license_number   TEXT NOT NULL,
	status           TEXT,
	issue_date       DATE,
	expiry_date      DATE,
	source_uri       TEXT,
	last_verified_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS licenses_natural_key_idx ON licenses (state, license_number);`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensure licenses schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Upsert(ctx context.Context, record domain.LicenseRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var id int64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM licenses WHERE state = $1 AND license_number = $2 LIMIT 1`,
		record.State, record.LicenseNumber,
	).Scan(&id)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.ExecContext(ctx,
			`INSERT INTO licenses
				(full_name, state, license_number, status, issue_date, expiry_date, source_uri, last_verified_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			record.FullName, record.State, record.LicenseNumber,
			nullString(record.Status), nullTime(record.IssueDate), nullTime(record.ExpiryDate),
			record.SourceURI, record.LastVerifiedAt,
		)
		if err != nil {
			return fmt.Errorf("insert license: %w", err)
		}
	case err != nil:
		return fmt.Errorf("find license by natural key: %w", err)
	default:
		_, err = tx.ExecContext(ctx,
			`UPDATE licenses
			 SET full_name = $1, status = $2, issue_date = $3, expiry_date = $4,
			     source_uri = $5, last_verified_at = $6
			 WHERE id = $7`,
			record.FullName, nullString(record.Status),
			nullTime(record.IssueDate), nullTime(record.ExpiryDate),
			record.SourceURI, record.LastVerifiedAt, id,
		)
		if err != nil {
			return fmt.Errorf("update license: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context, filter Filter) ([]domain.LicenseRecord, error) {
	query := `SELECT full_name, state, license_number, status, issue_date, expiry_date, source_uri, last_verified_at
	          FROM licenses`
	var (
		where []string
		args  []any
	)
	if filter.Provider != "" {
		args = append(args, "%"+filter.Provider+"%")
		where = append(where, fmt.Sprintf("full_name ILIKE $%d", len(args)))
	}
	if filter.State != "" {
		args = append(args, strings.ToUpper(filter.State))
		where = append(where, fmt.Sprintf("state = $%d", len(args)))
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY state, license_number"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list licenses: %w", err)
	}
	defer rows.Close()

	out := []domain.LicenseRecord{}
	for rows.Next() {
		var (
			record domain.LicenseRecord
			status sql.NullString
			issue  sql.NullTime
			expiry sql.NullTime
		)
		if err := rows.Scan(
			&record.FullName, &record.State, &record.LicenseNumber,
			&status, &issue, &expiry, &record.SourceURI, &record.LastVerifiedAt,
		); err != nil {
			return nil, fmt.Errorf("scan license row: %w", err)
		}
		record.Status = status.String
		if issue.Valid {
			t := issue.Time
			record.IssueDate = &t
		}
		if expiry.Valid {
			t := expiry.Time
			record.ExpiryDate = &t
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
