package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore keeps every run with its render parameters and an explicit
// thread count per point, so runs with different thread limits stay
// comparable.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the database at path and applies migrations.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at INTEGER NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		max_iterations INTEGER NOT NULL,
		power INTEGER NOT NULL,
		min_real REAL NOT NULL,
		max_real REAL NOT NULL,
		min_imaginary REAL NOT NULL,
		max_imaginary REAL NOT NULL,
		baseline_seconds REAL NOT NULL
	);
	CREATE TABLE IF NOT EXISTS run_points (
		run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		threads INTEGER NOT NULL,
		speedup REAL NOT NULL,
		efficiency REAL NOT NULL,
		PRIMARY KEY (run_id, threads)
	);
	`
	_, err := s.db.Exec(query)
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Persist stores rec and its points in one transaction.
func (s *SQLiteStore) Persist(ctx context.Context, rec Record) error {
	if err := rec.validate(); err != nil {
		return err
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs (created_at, width, height, max_iterations, power,
			min_real, max_real, min_imaginary, max_imaginary, baseline_seconds)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.CreatedAt.UnixNano(),
		rec.Config.Width, rec.Config.Height, rec.Config.MaxIterations, rec.Config.Power,
		rec.Viewport.MinReal, rec.Viewport.MaxReal, rec.Viewport.MinImaginary, rec.Viewport.MaxImaginary,
		rec.Baseline.Seconds(),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("run id: %w", err)
	}

	for i := range rec.Speedup {
		threads := i + 1
		if i < len(rec.Threads) {
			threads = rec.Threads[i]
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO run_points (run_id, threads, speedup, efficiency) VALUES (?, ?, ?, ?)`,
			runID, threads, rec.Speedup[i], rec.Efficiency[i])
		if err != nil {
			return fmt.Errorf("insert point %d: %w", threads, err)
		}
	}

	return tx.Commit()
}

// ReloadAll returns every run ordered by insertion.
func (s *SQLiteStore) ReloadAll(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, width, height, max_iterations, power,
			min_real, max_real, min_imaginary, max_imaginary, baseline_seconds
		FROM runs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var records []Record
	index := make(map[int64]int)
	for rows.Next() {
		var (
			rec      Record
			created  int64
			baseline float64
		)
		err := rows.Scan(&rec.ID, &created,
			&rec.Config.Width, &rec.Config.Height, &rec.Config.MaxIterations, &rec.Config.Power,
			&rec.Viewport.MinReal, &rec.Viewport.MaxReal, &rec.Viewport.MinImaginary, &rec.Viewport.MaxImaginary,
			&baseline)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		rec.CreatedAt = time.Unix(0, created)
		rec.Baseline = time.Duration(baseline * float64(time.Second))

		index[rec.ID] = len(records)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	points, err := s.db.QueryContext(ctx,
		`SELECT run_id, threads, speedup, efficiency FROM run_points ORDER BY run_id, threads`)
	if err != nil {
		return nil, fmt.Errorf("query points: %w", err)
	}
	defer points.Close()

	for points.Next() {
		var (
			runID               int64
			threads             int
			speedup, efficiency float64
		)
		if err := points.Scan(&runID, &threads, &speedup, &efficiency); err != nil {
			return nil, fmt.Errorf("scan point: %w", err)
		}
		i, ok := index[runID]
		if !ok {
			continue
		}
		records[i].Threads = append(records[i].Threads, threads)
		records[i].Speedup = append(records[i].Speedup, speedup)
		records[i].Efficiency = append(records[i].Efficiency, efficiency)
	}

	return records, points.Err()
}
