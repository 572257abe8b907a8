package envsynth

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile persists the dotenv rendering of vars to path atomically.
func WriteFile(path string, vars Vars) error {
	return WriteString(path, vars.Dotenv())
}

// WriteString persists rendered content to path atomically. It writes
// to a temporary file first, syncs via fsync, and then renames it to
// the destination.
func WriteString(path, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to ensure output directory: %w", err)
	}

	// Same directory as the destination so the rename stays on one
	// filesystem (required for atomic rename).
	tmpFile, err := os.CreateTemp(dir, "tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		_ = tmpFile.Close()    // Ensure closed
		_ = os.Remove(tmpPath) // Remove if still exists (not renamed)
	}()

	if _, err := tmpFile.WriteString(content); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}

	// Close before rename (cannot rename an open file on Windows).
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// On Windows, os.Rename fails if the destination exists. The
	// delete+rename window is acceptable for CLI usage compared to a
	// partial file from a plain overwrite.
	if _, err := os.Stat(path); err == nil {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to remove existing env file for overwrite: %w", err)
		}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file to env file: %w", err)
	}

	return nil
}
