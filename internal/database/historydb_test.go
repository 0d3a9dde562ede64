package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nao1215/htmlmend/internal/model"
)

// setupTestDB creates a temporary database for testing.
func setupTestDB(t *testing.T) *HistoryDB {
	t.Helper()

	db, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return db
}

// newReport creates a pair report for file with a single entry.
func newReport(file string, count int) *model.PairReport {
	report := model.NewPairReport(file)
	report.Distinct = 1
	report.Total = count
	report.Entries = []model.PairEntry{{Pair: "Ã©", Escaped: `\xc3\xa9`, Count: count, Repair: "é"}}
	return report
}

// TestOpen tests database opening and creation.
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database in new directory", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "newdir", "subdir")
		db, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if _, err := os.Stat(filepath.Join(dbDir, FileName)); os.IsNotExist(err) {
			t.Error("database file was not created")
		}
		if db.Path() != filepath.Join(dbDir, FileName) {
			t.Errorf("unexpected path %q", db.Path())
		}
	})

	t.Run("CreateIfNotExists=false fails for missing database", func(t *testing.T) {
		t.Parallel()

		_, err := Open(t.TempDir(), Options{CreateIfNotExists: false})
		if err == nil {
			t.Error("expected error for missing database")
		}
	})

	t.Run("reopens existing database", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		db, err := Open(dir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		if _, err := db.SavePairReport(context.Background(), newReport("index.html", 3)); err != nil {
			t.Fatalf("failed to save report: %v", err)
		}
		_ = db.Close()

		db, err = Open(dir, Options{CreateIfNotExists: false})
		if err != nil {
			t.Fatalf("failed to reopen database: %v", err)
		}
		defer db.Close()

		history, err := db.GetHistory(context.Background(), "index.html")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(history) != 1 {
			t.Errorf("expected 1 stored report, got %d", len(history))
		}
	})
}

// TestPairReports tests storing and retrieving pair reports.
func TestPairReports(t *testing.T) {
	t.Parallel()

	t.Run("latest reports come newest first", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()

		for _, count := range []int{10, 6, 2} {
			if _, err := db.SavePairReport(ctx, newReport("index.html", count)); err != nil {
				t.Fatalf("failed to save report: %v", err)
			}
		}

		reports, err := db.GetLatestPairReports(ctx, "index.html", 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(reports) != 2 {
			t.Fatalf("expected 2 reports, got %d", len(reports))
		}
		if reports[0].Total != 2 || reports[1].Total != 6 {
			t.Errorf("expected totals 2 then 6, got %d then %d", reports[0].Total, reports[1].Total)
		}
		if reports[0].Entries[0].Repair != "é" {
			t.Errorf("expected entries to survive storage, got %+v", reports[0].Entries)
		}
	})

	t.Run("history metadata", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()

		report := newReport("index.html", 4)
		report.GeneratedAt = time.Date(2025, 10, 29, 12, 0, 0, 0, time.UTC)
		id, err := db.SavePairReport(ctx, report)
		if err != nil {
			t.Fatalf("failed to save report: %v", err)
		}

		history, err := db.GetHistory(ctx, "index.html")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(history) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(history))
		}
		meta := history[0]
		if meta.ID != id || meta.Distinct != 1 || meta.Total != 4 {
			t.Errorf("unexpected metadata %+v", meta)
		}
		if !meta.GeneratedAt.Equal(report.GeneratedAt) {
			t.Errorf("expected timestamp %v, got %v", report.GeneratedAt, meta.GeneratedAt)
		}
	})

	t.Run("get by id", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()

		id, err := db.SavePairReport(ctx, newReport("index.html", 7))
		if err != nil {
			t.Fatalf("failed to save report: %v", err)
		}

		report, err := db.GetPairReportByID(ctx, id)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report == nil || report.Total != 7 {
			t.Fatalf("unexpected report %+v", report)
		}

		missing, err := db.GetPairReportByID(ctx, id+100)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if missing != nil {
			t.Error("expected nil for unknown id")
		}
	})

	t.Run("report key is the absolute path", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()

		id, err := db.SavePairReport(ctx, newReport("a.html", 1))
		if err != nil {
			t.Fatalf("failed to save report: %v", err)
		}

		key, err := db.ReportKey(ctx, id)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if key != HistoryKey("a.html") {
			t.Errorf("expected key %q, got %q", HistoryKey("a.html"), key)
		}

		missing, err := db.ReportKey(ctx, id+100)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if missing != "" {
			t.Errorf("expected empty key for unknown id, got %q", missing)
		}
	})

	t.Run("files are kept apart", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()

		if _, err := db.SavePairReport(ctx, newReport("a.html", 1)); err != nil {
			t.Fatalf("failed to save report: %v", err)
		}
		if _, err := db.SavePairReport(ctx, newReport("b.html", 1)); err != nil {
			t.Fatalf("failed to save report: %v", err)
		}

		files, err := db.ListFiles(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(files) != 2 {
			t.Errorf("expected 2 files, got %v", files)
		}

		reports, err := db.GetLatestPairReports(ctx, "a.html", 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(reports) != 1 {
			t.Errorf("expected 1 report for a.html, got %d", len(reports))
		}
	})
}

// TestHistoryKey tests that relative and absolute paths share a key.
func TestHistoryKey(t *testing.T) {
	t.Parallel()

	abs, err := filepath.Abs("index.html")
	if err != nil {
		t.Fatalf("failed to resolve path: %v", err)
	}
	if HistoryKey("index.html") != abs {
		t.Errorf("expected %q, got %q", abs, HistoryKey("index.html"))
	}
	if HistoryKey(abs) != abs {
		t.Error("expected absolute path to be kept")
	}
}
