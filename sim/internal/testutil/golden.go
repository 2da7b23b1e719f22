// Package testutil provides shared test infrastructure for the terminal
// simulator packages under sim/.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// GoldenPath returns the path of testdata/<name> at the repository root.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func GoldenPath(t *testing.T, name string) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	return filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", name)
}

// AssertGoldenLines compares got, one entry per line, with testdata/<name>.
// Set UPDATE_GOLDEN=1 to rewrite the file from got instead.
func AssertGoldenLines(t *testing.T, name string, got []string) {
	t.Helper()
	path := GoldenPath(t, name)
	content := strings.Join(got, "\n") + "\n"
	if os.Getenv("UPDATE_GOLDEN") != "" {
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "writing golden file")
		return
	}
	want, err := os.ReadFile(path)
	require.NoError(t, err, "reading golden file %s", path)
	assert.Equal(t, strings.Split(strings.TrimRight(string(want), "\n"), "\n"), got, "golden file %s", name)
}
