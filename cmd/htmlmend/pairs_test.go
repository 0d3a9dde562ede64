package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/htmlmend/internal/config"
	"github.com/nao1215/htmlmend/internal/model"
)

// TestRunPairsCmd tests the pairs command execution.
func TestRunPairsCmd(t *testing.T) {
	t.Parallel()

	t.Run("prints distinct count and top pairs", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, sampleHTML)
		stdout, _, err := env.run(t, "pairs", env.doc)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
		if lines[0] != "9" {
			t.Errorf("expected 9 distinct pairs, got %q", lines[0])
		}
		if len(lines) != 10 {
			t.Errorf("expected 9 pair lines, got %d", len(lines)-1)
		}
		if lines[1] != `\xc3\xa9 2` {
			t.Errorf("expected most frequent pair first, got %q", lines[1])
		}
	})

	t.Run("ascii document reports zero", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "<html><body>plain</body></html>\n")
		stdout, _, err := env.run(t, "pairs", env.doc)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stdout != "0\n" {
			t.Errorf("expected %q, got %q", "0\n", stdout)
		}
	})

	t.Run("counts a repeated pair", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "é! x é! y é!")
		stdout, _, err := env.run(t, "pairs", env.doc)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stdout != "1\n\\xe9! 3\n" {
			t.Errorf("unexpected output %q", stdout)
		}
	})

	t.Run("crlf document counts newline pairs", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "x\u00e9\r\ny")
		stdout, _, err := env.run(t, "pairs", env.doc)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stdout != "1\n\\xe9\\n 1\n" {
			t.Errorf("unexpected output %q", stdout)
		}
	})

	t.Run("top limits entries", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, sampleHTML)
		stdout, _, err := env.run(t, "pairs", "--top", "2", env.doc)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n := strings.Count(stdout, "\n"); n != 3 {
			t.Errorf("expected 3 lines, got %d: %q", n, stdout)
		}
	})

	t.Run("verbose shows repair hints", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, sampleHTML)
		stdout, _, err := env.run(t, "-v", "pairs", env.doc)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, `\xc3\xa9 2 (likely "é")`) {
			t.Errorf("expected repair hint, got %q", stdout)
		}
	})

	t.Run("json output", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, sampleHTML)
		stdout, _, err := env.run(t, "pairs", "--json", env.doc)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var report model.PairReport
		if err := json.Unmarshal([]byte(stdout), &report); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if report.Distinct != 9 {
			t.Errorf("expected 9 distinct pairs, got %d", report.Distinct)
		}
	})

	t.Run("markdown output", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, sampleHTML)
		stdout, _, err := env.run(t, "pairs", "--markdown", env.doc)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "# Non-ASCII Pair Report") {
			t.Errorf("expected markdown header, got %q", stdout)
		}
	})

	t.Run("tee prints plain text next to the report file", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, sampleHTML)
		reportPath := filepath.Join(env.dir, "pairs.json")
		stdout, _, err := env.run(t, "pairs", "--json", "-o", reportPath, "--tee", env.doc)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(stdout, "9\n") {
			t.Errorf("expected plain text on stdout, got %q", stdout)
		}

		data, err := os.ReadFile(reportPath)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}
		var report model.PairReport
		if err := json.Unmarshal(data, &report); err != nil {
			t.Fatalf("report file is not valid JSON: %v", err)
		}
		if report.Distinct != 9 {
			t.Errorf("expected 9 distinct pairs, got %d", report.Distinct)
		}
	})

	t.Run("tee without output is rejected", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, sampleHTML)
		if _, _, err := env.run(t, "pairs", "--tee", env.doc); !errors.Is(err, config.ErrTeeWithoutOutput) {
			t.Errorf("expected ErrTeeWithoutOutput, got %v", err)
		}
	})

	t.Run("json log format", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, sampleHTML)
		_, stderr, err := env.run(t, "--log-format", "json", "-v", "pairs", env.doc)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		lines := strings.Split(strings.TrimSpace(stderr), "\n")
		var record map[string]any
		if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
			t.Fatalf("log line is not JSON: %q", lines[0])
		}
		if record["msg"] != "loaded document" {
			t.Errorf("unexpected first log record %v", record)
		}
	})

	t.Run("unknown log format is rejected", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, sampleHTML)
		if _, _, err := env.run(t, "--log-format", "xml", "pairs", env.doc); !errors.Is(err, config.ErrInvalidLogFormat) {
			t.Errorf("expected ErrInvalidLogFormat, got %v", err)
		}
	})

	t.Run("negative top is rejected", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, sampleHTML)
		if _, _, err := env.run(t, "pairs", "--top=-1", env.doc); err == nil {
			t.Error("expected error for negative top")
		}
	})
}
