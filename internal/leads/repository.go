package leads

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrDuplicateSubmission = errors.New("DUPLICATE_SUBMISSION")
	ErrSubmissionNotFound  = errors.New("SUBMISSION_NOT_FOUND")
	ErrDatabaseInsert      = errors.New("DATABASE_INSERT_FAILED")
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 500
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS contact_submissions (
	id             UUID PRIMARY KEY,
	name           TEXT NOT NULL,
	email          TEXT NOT NULL,
	company        TEXT NOT NULL,
	role           TEXT NOT NULL DEFAULT '',
	phone          TEXT NOT NULL DEFAULT '',
	message        TEXT NOT NULL DEFAULT '',
	source         TEXT NOT NULL,
	maturity_level TEXT NOT NULL DEFAULT '',
	percentage     DOUBLE PRECISION,
	priority       TEXT NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL,
	created_day    DATE NOT NULL
);
ALTER TABLE contact_submissions ADD COLUMN IF NOT EXISTS created_day DATE;
UPDATE contact_submissions SET created_day = (created_at AT TIME ZONE 'UTC')::date WHERE created_day IS NULL;
ALTER TABLE contact_submissions ALTER COLUMN created_day SET NOT NULL;
DROP INDEX IF EXISTS contact_submissions_email_source_idx;
CREATE INDEX IF NOT EXISTS contact_submissions_created_at_idx ON contact_submissions (created_at DESC);
CREATE UNIQUE INDEX IF NOT EXISTS contact_submissions_email_source_day_key
	ON contact_submissions (lower(email), source, created_day);
`

// dayLayout formats created_day; the day is the UTC calendar day.
const dayLayout = "2006-01-02"

const selectColumns = `id, name, email, company, role, phone, message, source, maturity_level, percentage, priority, created_at`

// Repository persists contact submissions in PostgreSQL.
type Repository struct {
	db  *sql.DB
	now func() time.Time
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schemaDDL); err != nil {
		return fmt.Errorf("ensure contact_submissions schema: %w", err)
	}
	return nil
}

// Create inserts the submission. A second submission from the same email
// and source on the same UTC day violates a unique index and is rejected
// with ErrDuplicateSubmission.
//
// A caller that sets s.ID (see SubmissionID) makes the insert idempotent:
// when a row with that ID already exists, s is filled from it and no error
// is returned.
func (r *Repository) Create(ctx context.Context, s *ContactSubmission) error {
	createdAt := r.now()
	id := s.ID
	keyed := id != ""
	if !keyed {
		id = uuid.New().String()
	}

	var pct sql.NullFloat64
	if s.Percentage != nil {
		pct = sql.NullFloat64{Float64: *s.Percentage, Valid: true}
	}

	var inserted string
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO contact_submissions (
			id, name, email, company, role, phone, message,
			source, maturity_level, percentage, priority, created_at, created_day
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT DO NOTHING
		RETURNING id`,
		id, s.Name, s.Email, s.Company, s.Role, s.Phone, s.Message,
		s.Source, s.MaturityLevel, pct, s.Priority, createdAt, createdAt.UTC().Format(dayLayout),
	).Scan(&inserted)
	if err == nil {
		s.ID = inserted
		s.CreatedAt = createdAt
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", ErrDatabaseInsert, err)
	}

	if keyed {
		existing, err := r.Get(ctx, id)
		switch {
		case err == nil:
			*s = *existing
			return nil
		case !errors.Is(err, ErrSubmissionNotFound):
			return fmt.Errorf("%w: load existing submission: %v", ErrDatabaseInsert, err)
		}
	}
	return fmt.Errorf("%w: %s already submitted via %s today", ErrDuplicateSubmission, s.Email, s.Source)
}

// List returns the newest submissions first.
func (r *Repository) List(ctx context.Context, limit int) ([]ContactSubmission, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	limit = min(limit, MaxListLimit)
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+selectColumns+` FROM contact_submissions ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	out := make([]ContactSubmission, 0)
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return out, nil
}

func (r *Repository) Get(ctx context.Context, id string) (*ContactSubmission, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+selectColumns+` FROM contact_submissions WHERE id = $1`, id)
	s, err := scanSubmission(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSubmissionNotFound
	}
	return s, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSubmission(row rowScanner) (*ContactSubmission, error) {
	var (
		s   ContactSubmission
		pct sql.NullFloat64
	)
	err := row.Scan(&s.ID, &s.Name, &s.Email, &s.Company, &s.Role, &s.Phone, &s.Message,
		&s.Source, &s.MaturityLevel, &pct, &s.Priority, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan submission: %w", err)
	}
	if pct.Valid {
		v := pct.Float64
		s.Percentage = &v
	}
	return &s, nil
}
