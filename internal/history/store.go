// Package history persists analysis runs to sqlite so staleness can be
// tracked over time.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/oklog/ulid/v2"

	"github.com/amplifier-docs/docsync/internal/domain"
)

// Run is one recorded analysis pass.
type Run struct {
	ID          string
	StartedAt   time.Time
	Analyzed    int
	StaleDocs   int
	MissingDocs int
	HealthPct   float64
	Status      string
}

// DocScore is one document's state at a recorded run.
type DocScore struct {
	RunID     string
	Doc       string
	Score     int
	IsStale   bool
	Priority  string
	StartedAt time.Time
}

// Trend is a document's score movement between the oldest and newest
// recorded runs.
type Trend struct {
	Doc       string
	First     int
	Last      int
	Delta     int
	Runs      int
	LastStale bool
}

// Store wraps the sqlite database holding run history.
type Store struct {
	db   *sql.DB
	path string
}

// Open creates the data dir if needed, opens the database, and applies
// the schema.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "docsync.db")
	db, err := sql.Open("sqlite3", dbPath+"?_journal=WAL&_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db, path: dbPath}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at DATETIME NOT NULL,
		analyzed_docs INTEGER NOT NULL,
		stale_docs INTEGER NOT NULL,
		missing_docs INTEGER NOT NULL,
		health_pct REAL NOT NULL,
		status TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at DESC);

	CREATE TABLE IF NOT EXISTS doc_scores (
		run_id TEXT NOT NULL,
		doc TEXT NOT NULL,
		score INTEGER NOT NULL,
		is_stale INTEGER NOT NULL,
		priority TEXT NOT NULL,
		PRIMARY KEY (run_id, doc),
		FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_doc_scores_doc ON doc_scores(doc);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores an analysis result as a new run and returns its id.
func (s *Store) Record(ctx context.Context, result *domain.AnalysisResult, startedAt time.Time) (string, error) {
	id := ulid.MustNew(ulid.Timestamp(startedAt), rand.New(rand.NewSource(startedAt.UnixNano()))).String()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	summary := result.Summary
	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, analyzed_docs, stale_docs, missing_docs, health_pct, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, startedAt, summary.Analyzed, summary.Stale, summary.MissingDoc,
		summary.HealthPct(), string(summary.Status()))
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	insert := func(doc domain.DocResult) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO doc_scores (run_id, doc, score, is_stale, priority)
			VALUES (?, ?, ?, ?, ?)`,
			id, doc.DocPath, doc.Comparison.StalenessScore, doc.IsStale, string(doc.Priority))
		return err
	}
	for _, doc := range result.StaleDocs {
		if err := insert(doc); err != nil {
			return "", fmt.Errorf("insert score for %s: %w", doc.DocPath, err)
		}
	}
	for _, doc := range result.HealthyDocs {
		if err := insert(doc); err != nil {
			return "", fmt.Errorf("insert score for %s: %w", doc.DocPath, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, analyzed_docs, stale_docs, missing_docs, health_pct, status
		FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.Analyzed, &r.StaleDocs,
			&r.MissingDocs, &r.HealthPct, &r.Status); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// DocHistory returns a document's score across recorded runs, oldest
// first.
func (s *Store) DocHistory(ctx context.Context, doc string, limit int) ([]DocScore, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT d.run_id, d.doc, d.score, d.is_stale, d.priority, r.started_at
		FROM doc_scores d JOIN runs r ON r.id = d.run_id
		WHERE d.doc = ?
		ORDER BY r.started_at ASC LIMIT ?`, doc, limit)
	if err != nil {
		return nil, fmt.Errorf("query doc history: %w", err)
	}
	defer rows.Close()

	var scores []DocScore
	for rows.Next() {
		var ds DocScore
		if err := rows.Scan(&ds.RunID, &ds.Doc, &ds.Score, &ds.IsStale,
			&ds.Priority, &ds.StartedAt); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		scores = append(scores, ds)
	}
	return scores, rows.Err()
}

// Trends compares each document's oldest and newest scores. A positive
// delta means the document is getting worse.
func (s *Store) Trends(ctx context.Context) ([]Trend, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT d.doc, d.score, d.is_stale, r.started_at
		FROM doc_scores d JOIN runs r ON r.id = d.run_id
		ORDER BY d.doc, r.started_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("query trends: %w", err)
	}
	defer rows.Close()

	var trends []Trend
	var cur *Trend
	for rows.Next() {
		var doc string
		var score int
		var stale bool
		var started time.Time
		if err := rows.Scan(&doc, &score, &stale, &started); err != nil {
			return nil, fmt.Errorf("scan trend row: %w", err)
		}
		if cur == nil || cur.Doc != doc {
			if cur != nil {
				cur.Delta = cur.Last - cur.First
				trends = append(trends, *cur)
			}
			cur = &Trend{Doc: doc, First: score}
		}
		cur.Last = score
		cur.LastStale = stale
		cur.Runs++
	}
	if cur != nil {
		cur.Delta = cur.Last - cur.First
		trends = append(trends, *cur)
	}
	return trends, rows.Err()
}
