package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres is the pgx-backed Store for shared deployments.
type Postgres struct {
	pool *pgxpool.Pool
}

// OpenPostgres creates a pgx pool, verifies connectivity and bootstraps the
// schema.
func OpenPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse DATABASE_URL: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: init schema: %w", err)
	}

	slog.Info("postgres connected", slog.String("host", cfg.ConnConfig.Host))
	return &Postgres{pool: pool}, nil
}

const postgresSchema = `CREATE TABLE IF NOT EXISTS opportunities (
	id             BIGSERIAL PRIMARY KEY,
	title          TEXT NOT NULL,
	content        TEXT NOT NULL,
	category       TEXT NOT NULL DEFAULT 'other',
	deadline       DATE,
	requirements   JSONB NOT NULL DEFAULT '[]',
	contact_info   JSONB NOT NULL DEFAULT '{}',
	priority_score DOUBLE PRECISION NOT NULL DEFAULT 5.0,
	compensation   TEXT,
	location       TEXT,
	status         TEXT NOT NULL DEFAULT 'new',
	source         TEXT NOT NULL DEFAULT 'api',
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const postgresColumns = `id, title, content, category,
	to_char(deadline, 'YYYY-MM-DD'), requirements, contact_info,
	priority_score, compensation, location, status, source,
	to_char(created_at, 'YYYY-MM-DD"T"HH24:MI:SS"Z"'),
	to_char(updated_at, 'YYYY-MM-DD"T"HH24:MI:SS"Z"')`

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

func (p *Postgres) Save(ctx context.Context, opp Opportunity) (int64, error) {
	status, err := normalizeStatus(string(opp.Status))
	if err != nil {
		return 0, fmt.Errorf("save: %w", err)
	}
	reqs, contacts, err := marshalFields(opp)
	if err != nil {
		return 0, fmt.Errorf("save: %w", err)
	}

	var id int64
	err = p.pool.QueryRow(ctx,
		`INSERT INTO opportunities (title, content, category, deadline, requirements, contact_info,
		 priority_score, compensation, location, status, source)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id`,
		opp.Title, opp.Content, string(opp.Category), nullable(opp.Deadline), reqs, contacts,
		opp.PriorityScore, nullable(opp.Compensation), nullable(opp.Location),
		string(status), opp.Source,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("save: insert: %w", err)
	}
	return id, nil
}

func (p *Postgres) Get(ctx context.Context, id int64) (Opportunity, error) {
	row := p.pool.QueryRow(ctx,
		`SELECT `+postgresColumns+` FROM opportunities WHERE id = $1`, id)
	opp, err := scanPgOpportunity(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Opportunity{}, ErrNotFound
	}
	if err != nil {
		return Opportunity{}, fmt.Errorf("get: %w", err)
	}
	return opp, nil
}

func (p *Postgres) List(ctx context.Context, f ListFilter) ([]Opportunity, error) {
	limit := clampLimit(f.Limit)

	var rows pgx.Rows
	var err error
	if f.Status != "" {
		status, nerr := normalizeStatus(f.Status)
		if nerr != nil {
			return nil, fmt.Errorf("list: %w", nerr)
		}
		rows, err = p.pool.Query(ctx,
			`SELECT `+postgresColumns+` FROM opportunities WHERE status = $1
			 ORDER BY priority_score DESC, created_at DESC LIMIT $2`, string(status), limit)
	} else {
		rows, err = p.pool.Query(ctx,
			`SELECT `+postgresColumns+` FROM opportunities
			 ORDER BY priority_score DESC, created_at DESC LIMIT $1`, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("list: query: %w", err)
	}
	defer rows.Close()

	var out []Opportunity
	for rows.Next() {
		opp, err := scanPgOpportunity(rows)
		if err != nil {
			return nil, fmt.Errorf("list: scan: %w", err)
		}
		out = append(out, opp)
	}
	return out, rows.Err()
}

func (p *Postgres) UpdateStatus(ctx context.Context, id int64, status Status) error {
	st, err := normalizeStatus(string(status))
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	tag, err := p.pool.Exec(ctx,
		`UPDATE opportunities SET status = $1, updated_at = now() WHERE id = $2`, string(st), id)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) UpdateScore(ctx context.Context, id int64, score float64) error {
	tag, err := p.pool.Exec(ctx,
		`UPDATE opportunities SET priority_score = $1, updated_at = now() WHERE id = $2`, score, id)
	if err != nil {
		return fmt.Errorf("update score: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) Stats(ctx context.Context, now time.Time) (Stats, error) {
	stats := Stats{ByCategory: map[string]int{}, ByStatus: map[string]int{}}

	rows, err := p.pool.Query(ctx,
		`SELECT category, status, to_char(deadline, 'YYYY-MM-DD') FROM opportunities`)
	if err != nil {
		return stats, fmt.Errorf("stats: %w", err)
	}
	defer rows.Close()

	horizon := now.UTC().AddDate(0, 0, 7).Format("2006-01-02")
	today := now.UTC().Format("2006-01-02")
	for rows.Next() {
		var category, status string
		var deadline *string
		if err := rows.Scan(&category, &status, &deadline); err != nil {
			return stats, fmt.Errorf("stats: scan: %w", err)
		}
		stats.Total++
		stats.ByCategory[category]++
		stats.ByStatus[status]++
		if deadline != nil && *deadline >= today && *deadline <= horizon {
			stats.UpcomingDeadlines++
		}
	}
	return stats, rows.Err()
}

func scanPgOpportunity(row pgx.Row) (Opportunity, error) {
	var opp Opportunity
	var deadline, compensation, location *string
	var reqs, contacts []byte

	err := row.Scan(&opp.ID, &opp.Title, &opp.Content, &opp.Category, &deadline, &reqs, &contacts,
		&opp.PriorityScore, &compensation, &location, &opp.Status, &opp.Source,
		&opp.CreatedAt, &opp.UpdatedAt)
	if err != nil {
		return opp, err
	}
	if deadline != nil {
		opp.Deadline = *deadline
	}
	if compensation != nil {
		opp.Compensation = *compensation
	}
	if location != nil {
		opp.Location = *location
	}
	if err := json.Unmarshal(reqs, &opp.Requirements); err != nil {
		return opp, fmt.Errorf("requirements column: %w", err)
	}
	if err := json.Unmarshal(contacts, &opp.ContactInfo); err != nil {
		return opp, fmt.Errorf("contact_info column: %w", err)
	}
	return opp, nil
}
