package document

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Decoding selects how malformed UTF-8 in the document is treated.
type Decoding int

const (
	// DecodeStrict rejects documents that are not valid UTF-8.
	DecodeStrict Decoding = iota
	// DecodeLenient silently drops malformed byte sequences.
	DecodeLenient
)

// String returns the decoding name used in logs.
func (d Decoding) String() string {
	switch d {
	case DecodeStrict:
		return "strict"
	case DecodeLenient:
		return "lenient"
	default:
		return "unknown"
	}
}

// ErrInvalidUTF8 is returned by Load in strict mode for malformed input.
var ErrInvalidUTF8 = errors.New("document is not valid UTF-8")

// Document is the text content of a single file.
type Document struct {
	// Path is the file the document was loaded from.
	Path string

	// Text is the decoded content.
	Text string

	// Mode is the permission of the original file, reused on save.
	Mode fs.FileMode

	// Dropped is the number of bytes removed by lenient decoding.
	Dropped int
}

// Load reads the whole file at path.
func Load(path string, decoding Decoding) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	data, err := os.ReadFile(path) //nolint:gosec // User-provided document path is intentional
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Path: path,
		Mode: info.Mode().Perm(),
	}

	if utf8.Valid(data) {
		doc.Text = string(data)
		return doc, nil
	}

	if decoding == DecodeStrict {
		return nil, fmt.Errorf("%s: %w at byte %d", path, ErrInvalidUTF8, firstInvalid(data))
	}

	doc.Text = strings.ToValidUTF8(string(data), "")
	doc.Dropped = len(data) - len(doc.Text)
	return doc, nil
}

// NormalizeNewlines converts "\r\n" and lone "\r" line endings to "\n".
// The pair and sequence reports work on normalized text; strip keeps the
// raw bytes.
func NormalizeNewlines(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// firstInvalid returns the offset of the first malformed sequence in data.
func firstInvalid(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}

// Save replaces the file at doc.Path with text.
// The original permission bits are preserved.
func Save(doc *Document, text string) error {
	dir := filepath.Dir(doc.Path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(doc.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()

	// Remove the temporary file on any failure below.
	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.WriteString(text); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	mode := doc.Mode
	if mode == 0 {
		mode = 0o644
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("failed to set file mode: %w", err)
	}

	if err := os.Rename(tmpPath, doc.Path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", doc.Path, err)
	}

	success = true
	doc.Text = text
	return nil
}
