package testutil

import (
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// GenerateTestNumberFile writes numLines pseudo-random integers, one per
// line, with a blank line every 100 lines, to a file that is removed when
// the test ends. The sequence is the same on every call.
func GenerateTestNumberFile(t *testing.T, numLines int) string {
	t.Helper()

	rng := rand.New(rand.NewSource(1))
	var content strings.Builder
	for i := 0; i < numLines; i++ {
		if i > 0 && i%100 == 0 {
			content.WriteString("\n")
		}
		content.WriteString(strconv.Itoa(rng.Intn(2_000_000) - 1_000_000))
		content.WriteString("\n")
	}

	path := filepath.Join(t.TempDir(), "numbers.txt")
	if err := os.WriteFile(path, []byte(content.String()), 0o644); err != nil {
		t.Fatalf("Failed to write test number file: %v", err)
	}
	return path
}

// TempFilePath returns a cross-platform temporary file path
// with the given pattern. Does not create the file.
func TempFilePath(t *testing.T, pattern string) string {
	t.Helper()

	tmpFile, err := os.CreateTemp("", pattern)
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}

	path := tmpFile.Name()
	tmpFile.Close()
	os.Remove(path) // Remove immediately, just need the path

	return path
}
