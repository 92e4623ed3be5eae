package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLite is the default zero-configuration Store.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the opportunity database at path, creating
// parent directories as needed.
func OpenSQLite(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("sqlite: mkdir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: init schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

const sqliteSchema = `CREATE TABLE IF NOT EXISTS opportunities (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	title          TEXT NOT NULL,
	content        TEXT NOT NULL,
	category       TEXT NOT NULL DEFAULT 'other',
	deadline       TEXT,
	requirements   TEXT NOT NULL DEFAULT '[]',
	contact_info   TEXT NOT NULL DEFAULT '{}',
	priority_score REAL NOT NULL DEFAULT 5.0,
	compensation   TEXT,
	location       TEXT,
	status         TEXT NOT NULL DEFAULT 'new',
	source         TEXT NOT NULL DEFAULT 'api',
	created_at     TEXT NOT NULL,
	updated_at     TEXT NOT NULL
)`

const sqliteColumns = `id, title, content, category, deadline, requirements, contact_info,
	priority_score, compensation, location, status, source, created_at, updated_at`

func (s *SQLite) Close() error { return s.db.Close() }

func (s *SQLite) Save(ctx context.Context, opp Opportunity) (int64, error) {
	status, err := normalizeStatus(string(opp.Status))
	if err != nil {
		return 0, fmt.Errorf("save: %w", err)
	}
	reqs, contacts, err := marshalFields(opp)
	if err != nil {
		return 0, fmt.Errorf("save: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO opportunities (title, content, category, deadline, requirements, contact_info,
		 priority_score, compensation, location, status, source, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		opp.Title, opp.Content, string(opp.Category), nullable(opp.Deadline), reqs, contacts,
		opp.PriorityScore, nullable(opp.Compensation), nullable(opp.Location),
		string(status), opp.Source, now, now,
	)
	if err != nil {
		return 0, fmt.Errorf("save: insert: %w", err)
	}
	id, _ := res.LastInsertId()
	return id, nil
}

func (s *SQLite) Get(ctx context.Context, id int64) (Opportunity, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+sqliteColumns+` FROM opportunities WHERE id = ?`, id)
	opp, err := scanOpportunity(row)
	if err == sql.ErrNoRows {
		return Opportunity{}, ErrNotFound
	}
	if err != nil {
		return Opportunity{}, fmt.Errorf("get: %w", err)
	}
	return opp, nil
}

func (s *SQLite) List(ctx context.Context, f ListFilter) ([]Opportunity, error) {
	limit := clampLimit(f.Limit)

	var rows *sql.Rows
	var err error
	if f.Status != "" {
		status, nerr := normalizeStatus(f.Status)
		if nerr != nil {
			return nil, fmt.Errorf("list: %w", nerr)
		}
		rows, err = s.db.QueryContext(ctx,
			`SELECT `+sqliteColumns+` FROM opportunities WHERE status = ?
			 ORDER BY priority_score DESC, created_at DESC LIMIT ?`, string(status), limit)
	} else {
		rows, err = s.db.QueryContext(ctx,
			`SELECT `+sqliteColumns+` FROM opportunities
			 ORDER BY priority_score DESC, created_at DESC LIMIT ?`, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("list: query: %w", err)
	}
	defer rows.Close()

	var out []Opportunity
	for rows.Next() {
		opp, err := scanOpportunity(rows)
		if err != nil {
			return nil, fmt.Errorf("list: scan: %w", err)
		}
		out = append(out, opp)
	}
	return out, rows.Err()
}

func (s *SQLite) UpdateStatus(ctx context.Context, id int64, status Status) error {
	st, err := normalizeStatus(string(status))
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.ExecContext(ctx,
		`UPDATE opportunities SET status = ?, updated_at = ? WHERE id = ?`, string(st), now, id)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLite) UpdateScore(ctx context.Context, id int64, score float64) error {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.ExecContext(ctx,
		`UPDATE opportunities SET priority_score = ?, updated_at = ? WHERE id = ?`, score, now, id)
	if err != nil {
		return fmt.Errorf("update score: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLite) Stats(ctx context.Context, now time.Time) (Stats, error) {
	stats := Stats{ByCategory: map[string]int{}, ByStatus: map[string]int{}}

	rows, err := s.db.QueryContext(ctx, `SELECT category, status, deadline FROM opportunities`)
	if err != nil {
		return stats, fmt.Errorf("stats: %w", err)
	}
	defer rows.Close()

	horizon := now.UTC().AddDate(0, 0, 7).Format("2006-01-02")
	today := now.UTC().Format("2006-01-02")
	for rows.Next() {
		var category, status string
		var deadline sql.NullString
		if err := rows.Scan(&category, &status, &deadline); err != nil {
			return stats, fmt.Errorf("stats: scan: %w", err)
		}
		stats.Total++
		stats.ByCategory[category]++
		stats.ByStatus[status]++
		if deadline.Valid && deadline.String >= today && deadline.String <= horizon {
			stats.UpcomingDeadlines++
		}
	}
	return stats, rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanOpportunity(row scanner) (Opportunity, error) {
	var opp Opportunity
	var deadline, compensation, location sql.NullString
	var reqs, contacts []byte

	err := row.Scan(&opp.ID, &opp.Title, &opp.Content, &opp.Category, &deadline, &reqs, &contacts,
		&opp.PriorityScore, &compensation, &location, &opp.Status, &opp.Source,
		&opp.CreatedAt, &opp.UpdatedAt)
	if err != nil {
		return opp, err
	}
	opp.Deadline = deadline.String
	opp.Compensation = compensation.String
	opp.Location = location.String
	if err := json.Unmarshal(reqs, &opp.Requirements); err != nil {
		return opp, fmt.Errorf("requirements column: %w", err)
	}
	if err := json.Unmarshal(contacts, &opp.ContactInfo); err != nil {
		return opp, fmt.Errorf("contact_info column: %w", err)
	}
	return opp, nil
}

func marshalFields(opp Opportunity) (reqs, contacts []byte, err error) {
	if opp.Requirements == nil {
		opp.Requirements = []string{}
	}
	reqs, err = json.Marshal(opp.Requirements)
	if err != nil {
		return nil, nil, err
	}
	contacts, err = json.Marshal(opp.ContactInfo)
	if err != nil {
		return nil, nil, err
	}
	return reqs, contacts, nil
}

// nullable maps "" to NULL so optional fields stay NULL in the schema.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
