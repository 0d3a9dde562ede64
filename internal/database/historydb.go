package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/htmlmend/internal/model"
)

// FileName is the name of the database file inside the database directory.
const FileName = "htmlmend.db"

// HistoryDB provides SQLite-based storage for pair reports.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB in dbDir.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (run 'htmlmend pairs --save' first)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a new file, mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Path returns the database file path.
func (hdb *HistoryDB) Path() string {
	return hdb.dbPath
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS pair_reports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		file TEXT NOT NULL,
		generated_at DATETIME NOT NULL,
		distinct_pairs INTEGER NOT NULL,
		total_windows INTEGER NOT NULL,
		report_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_pair_reports_file ON pair_reports(file);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// SavePairReport stores report and returns its ID.
// Reports are keyed by the absolute path of their file so that runs from
// different working directories share history.
func (hdb *HistoryDB) SavePairReport(ctx context.Context, report *model.PairReport) (int64, error) {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize report: %w", err)
	}

	query := `
	INSERT INTO pair_reports (file, generated_at, distinct_pairs, total_windows, report_json)
	VALUES (?, ?, ?, ?, ?)
	`

	result, err := hdb.db.ExecContext(ctx, query,
		HistoryKey(report.File),
		report.GeneratedAt.UTC().Format(time.RFC3339Nano),
		report.Distinct,
		report.Total,
		string(reportJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save pair report: %w", err)
	}

	return result.LastInsertId()
}

// ReportMetadata contains summary information about a stored report.
type ReportMetadata struct {
	// ID is the unique identifier of the report in the database.
	ID int64

	// File is the history key of the reported document.
	File string

	// GeneratedAt is when the report was produced.
	GeneratedAt time.Time

	// Distinct is the number of distinct pairs.
	Distinct int

	// Total is the number of windows tallied.
	Total int
}

// GetHistory returns metadata for every report of file, newest first.
func (hdb *HistoryDB) GetHistory(ctx context.Context, file string) ([]ReportMetadata, error) {
	query := `
	SELECT id, file, generated_at, distinct_pairs, total_windows
	FROM pair_reports
	WHERE file = ?
	ORDER BY id DESC
	`

	rows, err := hdb.db.QueryContext(ctx, query, HistoryKey(file))
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}
	defer rows.Close()

	var results []ReportMetadata
	for rows.Next() {
		var meta ReportMetadata
		var generatedAt string
		if err := rows.Scan(&meta.ID, &meta.File, &generatedAt, &meta.Distinct, &meta.Total); err != nil {
			return nil, fmt.Errorf("failed to scan metadata: %w", err)
		}
		meta.GeneratedAt = parseTimestamp(generatedAt)
		results = append(results, meta)
	}

	return results, rows.Err()
}

// GetLatestPairReports returns up to limit reports of file, newest first.
func (hdb *HistoryDB) GetLatestPairReports(ctx context.Context, file string, limit int) ([]*model.PairReport, error) {
	query := `
	SELECT report_json FROM pair_reports
	WHERE file = ?
	ORDER BY id DESC
	LIMIT ?
	`

	rows, err := hdb.db.QueryContext(ctx, query, HistoryKey(file), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get pair reports: %w", err)
	}
	defer rows.Close()

	var reports []*model.PairReport
	for rows.Next() {
		var reportJSON string
		if err := rows.Scan(&reportJSON); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}

		var report model.PairReport
		if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
			continue // Skip malformed reports
		}
		reports = append(reports, &report)
	}

	return reports, rows.Err()
}

// GetPairReportByID retrieves a report by its database ID.
// It returns nil without error when no such report exists.
func (hdb *HistoryDB) GetPairReportByID(ctx context.Context, id int64) (*model.PairReport, error) {
	query := `SELECT report_json FROM pair_reports WHERE id = ?`

	var reportJSON string
	err := hdb.db.QueryRowContext(ctx, query, id).Scan(&reportJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pair report: %w", err)
	}

	var report model.PairReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}

	return &report, nil
}

// ReportKey returns the history key of the report with id.
// It returns "" without error when no such report exists.
func (hdb *HistoryDB) ReportKey(ctx context.Context, id int64) (string, error) {
	var key string
	err := hdb.db.QueryRowContext(ctx, `SELECT file FROM pair_reports WHERE id = ?`, id).Scan(&key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get report key: %w", err)
	}
	return key, nil
}

// ListFiles returns every file that has stored reports.
func (hdb *HistoryDB) ListFiles(ctx context.Context) ([]string, error) {
	rows, err := hdb.db.QueryContext(ctx, `SELECT DISTINCT file FROM pair_reports ORDER BY file`)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	defer rows.Close()

	var files []string
	for rows.Next() {
		var file string
		if err := rows.Scan(&file); err != nil {
			return nil, fmt.Errorf("failed to scan file: %w", err)
		}
		files = append(files, file)
	}

	return files, rows.Err()
}

// HistoryKey returns the key under which reports of file are stored.
// It is the absolute path when one can be determined.
func HistoryKey(file string) string {
	if abs, err := filepath.Abs(file); err == nil {
		return abs
	}
	return file
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
