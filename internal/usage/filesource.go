package usage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// FileSource reads samples from a JSON export produced by an external
// collector. The file is a JSON array of Sample objects; the source
// filters it to the requested window on every query, so the file can be
// rewritten between passes.
type FileSource struct {
	path string
}

// NewFileSource creates a source backed by the given file.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Query reads the export and returns the samples whose first-seen time
// falls inside [start, end).
func (s *FileSource) Query(ctx context.Context, start, end time.Time) ([]Sample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read sample export: %w", err)
	}

	var all []Sample
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("parse sample export: %w", err)
	}

	var out []Sample
	for _, sample := range all {
		if sample.FirstSeen.Before(start) || !sample.FirstSeen.Before(end) {
			continue
		}
		out = append(out, sample)
	}
	return out, nil
}
