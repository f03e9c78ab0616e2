// Package store reads and writes the tracked markdown document. Load
// and save are one-shot operations with no retry logic; a failed save
// leaves the previous file untouched.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var headingPattern = regexp.MustCompile(`(?m)^#\s+(.+)$`)

// Load reads the document at path.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// Save atomically writes the document: the text goes to a temp file in
// the same directory which is then renamed over the target, so a crash
// mid-write never leaves a half-written document behind.
func Save(path, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directories for %s: %w", path, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// ExportName derives the export filename from the document's top-level
// heading, falling back to the given name and then to "project".
func ExportName(text, fallback string) string {
	name := fallback
	if m := headingPattern.FindStringSubmatch(text); m != nil {
		if t := strings.TrimSpace(m[1]); t != "" {
			name = t
		}
	}
	if name == "" {
		name = "project"
	}
	return name + ".md"
}
