package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"jobradar-engine/internal/domain"
)

// Run is one recorded search run. The core stays ephemeral per
// invocation; recording happens after the result is handed back.
type Run struct {
	ID         int64     `json:"id"`
	RanAt      time.Time `json:"ranAt"`
	Keywords   string    `json:"keywords"`
	Location   string    `json:"location"`
	Sources    []string  `json:"sources"`
	Results    int       `json:"results"`
	Scored     int       `json:"scored"`
	DurationMS int64     `json:"durationMs"`
}

func RecordRun(ctx context.Context, db *sql.DB, run Run, listings []domain.ScoredListing) (int64, error) {
	srcB, _ := json.Marshal(run.Sources)

	res, err := db.ExecContext(ctx, `
INSERT INTO runs(ran_at, keywords, location, sources, results, scored, duration_ms)
VALUES(?,?,?,?,?,?,?);`,
		run.RanAt.Format(time.RFC3339),
		run.Keywords,
		run.Location,
		string(srcB),
		run.Results,
		run.Scored,
		run.DurationMS,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for i, l := range listings {
		missingB, _ := json.Marshal(l.Missing)
		var score any
		if l.Score != nil {
			score = *l.Score
		}
		_, err := db.ExecContext(ctx, `
INSERT INTO run_listings(run_id, position, title, company, location, salary, url, source, scraped_at, score, match_reason, missing)
VALUES(?,?,?,?,?,?,?,?,?,?,?,?);`,
			id, i,
			l.Title, l.Company, l.Location, l.Salary, l.URL, l.Source,
			l.ScrapedAt.Format(time.RFC3339),
			score, l.MatchReason, string(missingB),
		)
		if err != nil {
			return id, err
		}
	}
	return id, nil
}

func ListRuns(ctx context.Context, db *sql.DB, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.QueryContext(ctx, `
SELECT id, ran_at, keywords, location, sources, results, scored, duration_ms
FROM runs
ORDER BY id DESC
LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var ranAt, sources string
		if err := rows.Scan(&r.ID, &ranAt, &r.Keywords, &r.Location, &sources, &r.Results, &r.Scored, &r.DurationMS); err != nil {
			return nil, err
		}
		r.RanAt, _ = time.Parse(time.RFC3339, ranAt)
		_ = json.Unmarshal([]byte(sources), &r.Sources)
		out = append(out, r)
	}
	return out, rows.Err()
}

func RunListings(ctx context.Context, db *sql.DB, runID int64) ([]domain.ScoredListing, error) {
	rows, err := db.QueryContext(ctx, `
SELECT title, company, location, salary, url, source, scraped_at, score, match_reason, missing
FROM run_listings
WHERE run_id = ?
ORDER BY position;`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ScoredListing
	for rows.Next() {
		var l domain.ScoredListing
		var scrapedAt, missing string
		var score sql.NullInt64
		if err := rows.Scan(&l.Title, &l.Company, &l.Location, &l.Salary, &l.URL, &l.Source, &scrapedAt, &score, &l.MatchReason, &missing); err != nil {
			return nil, err
		}
		l.ScrapedAt, _ = time.Parse(time.RFC3339, scrapedAt)
		if score.Valid {
			v := int(score.Int64)
			l.Score = &v
		}
		_ = json.Unmarshal([]byte(missing), &l.Missing)
		out = append(out, l)
	}
	return out, rows.Err()
}

// PruneRuns keeps the newest keep runs and drops the rest along with
// their snapshots. keep <= 0 disables pruning.
func PruneRuns(ctx context.Context, db *sql.DB, keep int) error {
	if keep <= 0 {
		return nil
	}
	_, err := db.ExecContext(ctx, `
DELETE FROM run_listings WHERE run_id NOT IN (SELECT id FROM runs ORDER BY id DESC LIMIT ?);`, keep)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
DELETE FROM runs WHERE id NOT IN (SELECT id FROM runs ORDER BY id DESC LIMIT ?);`, keep)
	return err
}
