package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// CheckHealth verifies the base directory exists (creating it when needed)
// and is writable, via a probe file. nil means healthy.
func (s *CsvSink) CheckHealth() error {
	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return fmt.Errorf("cannot create data directory: %w", err)
	}

	probe := filepath.Join(s.baseDir, ".health_check")
	if err := os.WriteFile(probe, []byte("health check"), 0o644); err != nil {
		return fmt.Errorf("cannot write to data directory: %w", err)
	}
	_ = os.Remove(probe)

	return nil
}
