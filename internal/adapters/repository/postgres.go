package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/slotwise/slotwise/internal/domain/model"
)

// Default connection pool tuning.
const (
	defaultMaxOpenConns    = 25
	defaultMaxIdleConns    = 10
	defaultConnMaxLifetime = 5 * time.Minute
)

// PostgresStore implements Store on PostgreSQL.
//
// Roster rows fan out through the interest/expertise join tables, matching
// the raw-row contract of Store; ReplaceSchedule runs delete+insert in a
// single transaction for full-overwrite semantics.
type PostgresStore struct {
	db *sql.DB

	maxOpenConns    int
	maxIdleConns    int
	connMaxLifetime time.Duration
}

// NewPostgresStore opens a connection pool, verifies it, and ensures the
// schema exists.
func NewPostgresStore(ctx context.Context, dsn string, opts ...PostgresOption) (*PostgresStore, error) {
	s := &PostgresStore{
		maxOpenConns:    defaultMaxOpenConns,
		maxIdleConns:    defaultMaxIdleConns,
		connMaxLifetime: defaultConnMaxLifetime,
	}

	for _, opt := range opts {
		opt(s)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenStore, err)
	}
	db.SetMaxOpenConns(s.maxOpenConns)
	db.SetMaxIdleConns(s.maxIdleConns)
	db.SetConnMaxLifetime(s.connMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %w", ErrOpenStore, err)
	}
	s.db = db

	if err := s.ensureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	return nil
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS candidates (
			seq SERIAL,
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS candidate_interests (
			id SERIAL PRIMARY KEY,
			candidate_id TEXT NOT NULL REFERENCES candidates(id),
			field TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS experts (
			seq SERIAL,
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS expert_expertise (
			id SERIAL PRIMARY KEY,
			expert_id TEXT NOT NULL REFERENCES experts(id),
			field TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS interview_schedule (
			id SERIAL PRIMARY KEY,
			expert_id TEXT NOT NULL,
			candidate_id TEXT NOT NULL,
			date TEXT NOT NULL,
			start_time TEXT NOT NULL,
			end_time TEXT NOT NULL,
			expert_email TEXT NOT NULL DEFAULT '',
			candidate_email TEXT NOT NULL DEFAULT ''
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%w: %w", ErrOpenStore, err)
		}
	}
	return nil
}

// ListCandidates returns raw candidate rows, one per declared interest.
// Ordered by first registration, matching the in-memory store: candidate
// order decides slot priority under contention.
func (s *PostgresStore) ListCandidates(ctx context.Context) ([]model.Candidate, error) {
	const query = `
		SELECT c.id, COALESCE(ci.field, ''), c.email
		FROM candidates c
		LEFT JOIN candidate_interests ci ON ci.candidate_id = c.id
		ORDER BY c.seq, ci.id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrListRoster, err)
	}
	defer rows.Close()

	var out []model.Candidate
	for rows.Next() {
		var c model.Candidate
		if err := rows.Scan(&c.ID, &c.CoreField, &c.Email); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrListRoster, err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrListRoster, err)
	}
	return out, nil
}

// ListExperts returns raw expert rows, one per declared expertise field,
// ordered by first registration like ListCandidates.
func (s *PostgresStore) ListExperts(ctx context.Context) ([]model.Expert, error) {
	const query = `
		SELECT e.id, COALESCE(ee.field, ''), e.email
		FROM experts e
		LEFT JOIN expert_expertise ee ON ee.expert_id = e.id
		ORDER BY e.seq, ee.id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrListRoster, err)
	}
	defer rows.Close()

	var out []model.Expert
	for rows.Next() {
		var e model.Expert
		if err := rows.Scan(&e.ID, &e.FieldOfExpertise, &e.Email); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrListRoster, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrListRoster, err)
	}
	return out, nil
}

// ListSkills returns the union of interest and expertise rows.
func (s *PostgresStore) ListSkills(ctx context.Context) ([]model.SkillRow, error) {
	const query = `
		SELECT candidate_id, field FROM candidate_interests
		UNION ALL
		SELECT expert_id, field FROM expert_expertise`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrListRoster, err)
	}
	defer rows.Close()

	var out []model.SkillRow
	for rows.Next() {
		var r model.SkillRow
		if err := rows.Scan(&r.EntityID, &r.Skill); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrListRoster, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrListRoster, err)
	}
	return out, nil
}

// AddCandidate upserts the candidate row and appends its interest.
func (s *PostgresStore) AddCandidate(ctx context.Context, c model.Candidate) error {
	const upsert = `
		INSERT INTO candidates (id, email) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET email = EXCLUDED.email`
	if _, err := s.db.ExecContext(ctx, upsert, c.ID, c.Email); err != nil {
		return fmt.Errorf("%w: %w", ErrAddRoster, err)
	}
	if c.CoreField == "" {
		return nil
	}
	const interest = `INSERT INTO candidate_interests (candidate_id, field) VALUES ($1, $2)`
	if _, err := s.db.ExecContext(ctx, interest, c.ID, c.CoreField); err != nil {
		return fmt.Errorf("%w: %w", ErrAddRoster, err)
	}
	return nil
}

// AddExpert upserts the expert row and appends its expertise field.
func (s *PostgresStore) AddExpert(ctx context.Context, e model.Expert) error {
	const upsert = `
		INSERT INTO experts (id, email) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET email = EXCLUDED.email`
	if _, err := s.db.ExecContext(ctx, upsert, e.ID, e.Email); err != nil {
		return fmt.Errorf("%w: %w", ErrAddRoster, err)
	}
	if e.FieldOfExpertise == "" {
		return nil
	}
	const expertise = `INSERT INTO expert_expertise (expert_id, field) VALUES ($1, $2)`
	if _, err := s.db.ExecContext(ctx, expertise, e.ID, e.FieldOfExpertise); err != nil {
		return fmt.Errorf("%w: %w", ErrAddRoster, err)
	}
	return nil
}

// ReplaceSchedule deletes the stored schedule and inserts rows in one
// transaction.
func (s *PostgresStore) ReplaceSchedule(ctx context.Context, rows []model.ScheduledInterview) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReplaceSchedule, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM interview_schedule`); err != nil {
		return fmt.Errorf("%w: %w", ErrReplaceSchedule, err)
	}
	const insert = `
		INSERT INTO interview_schedule
			(expert_id, candidate_id, date, start_time, end_time, expert_email, candidate_email)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, r := range rows {
		if _, err := tx.ExecContext(ctx, insert,
			r.ExpertID, r.CandidateID, r.Date, r.StartTime, r.EndTime, r.ExpertEmail, r.CandidateEmail,
		); err != nil {
			return fmt.Errorf("%w: %w", ErrReplaceSchedule, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrReplaceSchedule, err)
	}
	return nil
}

// Schedule returns the persisted schedule in insertion order.
func (s *PostgresStore) Schedule(ctx context.Context) ([]model.ScheduledInterview, error) {
	const query = `
		SELECT expert_id, candidate_id, date, start_time, end_time, expert_email, candidate_email
		FROM interview_schedule
		ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadSchedule, err)
	}
	defer rows.Close()

	var out []model.ScheduledInterview
	for rows.Next() {
		var r model.ScheduledInterview
		if err := rows.Scan(&r.ExpertID, &r.CandidateID, &r.Date, &r.StartTime, &r.EndTime, &r.ExpertEmail, &r.CandidateEmail); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReadSchedule, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadSchedule, err)
	}
	return out, nil
}
