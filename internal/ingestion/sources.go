package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// ResultSource provides a batch of raw results from the scraping
// collaborator.
type ResultSource interface {
	// Fetch returns all raw results the source currently holds.
	Fetch(ctx context.Context) ([]RawResult, error)
}

// FileSource reads a JSON dump of raw results, the format the scraper writes
// when it is run in batch mode.
type FileSource struct {
	Path string
}

// NewFileSource creates a source backed by a JSON file.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Verify interface compliance at compile time.
var _ ResultSource = (*FileSource)(nil)

// Fetch loads and decodes the file. The dump is either a flat array of
// records or an array of monthly arrays (the scraper emits one array per
// scraped month).
func (s *FileSource) Fetch(_ context.Context) ([]RawResult, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}

	var flat []RawResult
	if err := json.Unmarshal(data, &flat); err == nil {
		return flat, nil
	}

	var monthly [][]RawResult
	if err := json.Unmarshal(data, &monthly); err != nil {
		return nil, fmt.Errorf("decode results file %s: %w", s.Path, err)
	}

	var out []RawResult
	for _, month := range monthly {
		out = append(out, month...)
	}
	return out, nil
}
