// Package store persists analysis runs to a local SQLite database so
// health and complexity can be compared across runs. Report payloads
// are zstd-compressed; scores stay in columns for cheap listing.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite"

	"cda/internal/analysis"
	"cda/internal/errors"
	"cda/internal/logging"
	"cda/internal/output"
)

// RunSummary is one row of the run history listing
type RunSummary struct {
	ID              string    `json:"id"`
	StartedAt       time.Time `json:"startedAt"`
	ElapsedMs       int64     `json:"elapsedMs"`
	Success         bool      `json:"success"`
	TotalComponents int       `json:"totalComponents"`
	CycleCount      int       `json:"cycleCount"`
	HealthScore     float64   `json:"healthScore"`
	ComplexityScore float64   `json:"complexityScore"`
}

// Store provides persistence for analysis runs
type Store struct {
	conn   *sql.DB
	logger *logging.Logger
	dbPath string
}

// Open opens or creates the run database at <dir>/cda.db
func Open(dir string, logger *logging.Logger) (*Store, error) {
	if logger == nil {
		logger = logging.NewDiscard()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.New(errors.StoreUnavailable, "cannot create data directory", err)
	}

	dbPath := filepath.Join(dir, "cda.db")
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.New(errors.StoreUnavailable, "cannot open run database", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, errors.New(errors.StoreUnavailable, "cannot configure run database", err)
		}
	}

	s := &Store{
		conn:   conn,
		logger: logger,
		dbPath: dbPath,
	}
	if err := s.initializeSchema(); err != nil {
		_ = conn.Close()
		return nil, errors.New(errors.StoreUnavailable, "cannot initialize run schema", err)
	}

	return s, nil
}

func (s *Store) initializeSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			elapsed_ms INTEGER NOT NULL,
			success INTEGER NOT NULL,
			total_components INTEGER NOT NULL,
			cycle_count INTEGER NOT NULL,
			health_score REAL NOT NULL,
			complexity_score REAL NOT NULL,
			report BLOB
		);
		CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at DESC);

		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);
		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`

	_, err := s.conn.Exec(schema)
	return err
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// SaveRun persists one analysis result
func (s *Store) SaveRun(result *analysis.Result) error {
	report, err := compressReport(result)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	health := 0.0
	complexity := 0.0
	cycleCount := 0
	if result.Metrics != nil {
		health = result.Metrics.HealthScore
		complexity = result.Metrics.ComplexityScore
		cycleCount = result.Metrics.CycleCount
	}

	query := `
		INSERT INTO runs (id, started_at, elapsed_ms, success, total_components, cycle_count, health_score, complexity_score, report)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = s.conn.Exec(query,
		result.RunID,
		result.StartedAt.Format(time.RFC3339),
		result.ElapsedMs,
		boolToInt(result.Success),
		result.TotalComponents,
		cycleCount,
		health,
		complexity,
		report,
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	s.logger.Debug("Saved run", map[string]interface{}{
		"runId":  result.RunID,
		"cycles": cycleCount,
	})
	return nil
}

// ListRuns returns the most recent runs, newest first
func (s *Store) ListRuns(limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, started_at, elapsed_ms, success, total_components, cycle_count, health_score, complexity_score
		FROM runs ORDER BY started_at DESC LIMIT ?
	`
	rows, err := s.conn.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var summaries []RunSummary
	for rows.Next() {
		var rs RunSummary
		var startedAt string
		var success int
		if err := rows.Scan(&rs.ID, &startedAt, &rs.ElapsedMs, &success,
			&rs.TotalComponents, &rs.CycleCount, &rs.HealthScore, &rs.ComplexityScore); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		rs.Success = success != 0
		if t, err := time.Parse(time.RFC3339, startedAt); err == nil {
			rs.StartedAt = t
		}
		summaries = append(summaries, rs)
	}

	return summaries, rows.Err()
}

// GetReport retrieves and decompresses a stored report by run id
func (s *Store) GetReport(id string) ([]byte, error) {
	var report []byte
	err := s.conn.QueryRow(`SELECT report FROM runs WHERE id = ?`, id).Scan(&report)
	if err == sql.ErrNoRows {
		return nil, errors.New(errors.RunNotFound, fmt.Sprintf("run %s not found", id), nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run: %w", err)
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create decompressor: %w", err)
	}
	defer dec.Close()

	return dec.DecodeAll(report, nil)
}

// compressReport encodes the result deterministically and compresses it
func compressReport(result *analysis.Result) ([]byte, error) {
	data, err := output.DeterministicEncode(result)
	if err != nil {
		return nil, err
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = enc.Close() }()

	return enc.EncodeAll(data, nil), nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
