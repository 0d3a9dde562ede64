package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

const (
	sampleStart = "function marquerLivraisonReussie() {\n  ouvrirModalLivraisonEncaissement();\n}\n"
	sampleEnd   = "async function marquerLivraisonEchouee()"
)

// sampleHTML is a document containing both default markers and some mojibake.
var sampleHTML = "<html>\n<body>\n<p>CafÃ© au lait, crÃ¨me brÃ»lÃ©e</p>\n<script>\n" +
	sampleStart +
	"function helperObsolete() {\n  return 'Ôö';\n}\n" +
	sampleEnd + " {\n  await save();\n}\n</script>\n</body>\n</html>\n"

// testEnv holds an isolated working directory for one command run.
type testEnv struct {
	dir    string
	doc    string
	config string
	dbDir  string
}

// newTestEnv writes sampleHTML and an empty config file to a temp directory.
func newTestEnv(t *testing.T, content string) *testEnv {
	t.Helper()

	dir := t.TempDir()
	env := &testEnv{
		dir:    dir,
		doc:    filepath.Join(dir, "index.html"),
		config: filepath.Join(dir, "htmlmend.yaml"),
		dbDir:  filepath.Join(dir, "db"),
	}
	if err := os.WriteFile(env.doc, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write document: %v", err)
	}
	if err := os.WriteFile(env.config, []byte("{}\n"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return env
}

// run executes the root command with args and returns stdout and stderr.
func (e *testEnv) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", e.config}, args...))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// read returns the current document content.
func (e *testEnv) read(t *testing.T) string {
	t.Helper()

	data, err := os.ReadFile(e.doc)
	if err != nil {
		t.Fatalf("failed to read document: %v", err)
	}
	return string(data)
}
