package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ittyan/family-outings/internal/domain"
)

// FileSnapshot writes the deduped records of a run to Path as an indented
// JSON array, for audit and debugging. Non-ASCII text is written as-is so
// the file stays diffable.
type FileSnapshot struct {
	Path string
}

// WriteSnapshot implements SnapshotWriter. The file is written to a
// temporary sibling and renamed into place, so readers never see a partial
// snapshot.
func (s FileSnapshot) WriteSnapshot(records []domain.SpotRecord) error {
	if records == nil {
		records = []domain.SpotRecord{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("ingest.FileSnapshot.WriteSnapshot: encode: %w", err)
	}

	if dir := filepath.Dir(s.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ingest.FileSnapshot.WriteSnapshot: %w", err)
		}
	}
	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("ingest.FileSnapshot.WriteSnapshot: %w", err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		return fmt.Errorf("ingest.FileSnapshot.WriteSnapshot: %w", err)
	}
	return nil
}
