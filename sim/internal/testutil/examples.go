// Package testutil provides shared test infrastructure for the simulator.
// It locates the bundled machine definitions and writes ad-hoc ones for
// tests under sim/.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"testing"
)

// ExamplesDir returns the absolute path of the repository's examples/ directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → examples/.
func ExamplesDir(t *testing.T) string {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	return filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "examples")
}

// ExamplePath returns the path of one bundled definition and fails the test
// if it does not exist.
func ExamplePath(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(ExamplesDir(t), name)
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Example definition %s not found: %v", name, err)
	}
	return path
}

// ExampleFiles lists the bundled definitions (.json, .yaml, .yml) in name order.
func ExampleFiles(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(ExamplesDir(t))
	if err != nil {
		t.Fatalf("Failed to read examples directory: %v", err)
	}
	var out []string
	for _, e := range entries {
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".json", ".yaml", ".yml":
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out
}

// WriteDefinition writes content to name inside a fresh temp directory and
// returns the file path.
func WriteDefinition(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}
