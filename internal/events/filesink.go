package events

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

// FileSink writes TrialRecords to a JSONL file.
// It is safe for concurrent use from multiple goroutines.
type FileSink struct {
	path   string
	file   *os.File
	writer *bufio.Writer
	mu     sync.Mutex
}

// DefaultFilename is the name of the trials file inside the events dir.
const DefaultFilename = "trials.jsonl"

// NewFileSink creates a new FileSink that writes to the specified directory.
// The file will be created at dir/trials.jsonl; dir is created if missing.
// If the file already exists, new records will be appended.
func NewFileSink(dir string) (*FileSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create events dir: %w", err)
	}
	path := filepath.Join(dir, DefaultFilename)

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open trials file: %w", err)
	}

	return &FileSink{
		path:   path,
		file:   file,
		writer: bufio.NewWriter(file),
	}, nil
}

// Write appends a batch of records, one JSON line each, and flushes it so
// that a finished batch survives an interrupted run.
func (s *FileSink) Write(records []TrialRecord) error {
	if len(records) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return fmt.Errorf("trials file %s is closed", s.path)
	}

	for _, record := range records {
		data, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("failed to marshal record: %w", err)
		}

		if _, err := s.writer.Write(data); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
		if err := s.writer.WriteByte('\n'); err != nil {
			return fmt.Errorf("failed to write newline: %w", err)
		}
	}

	if err := s.writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush records: %w", err)
	}
	return nil
}

// Close flushes any remaining data and closes the file.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return nil
	}

	// Flush any remaining buffered data
	if err := s.writer.Flush(); err != nil {
		// Still try to close the file even if flush fails
		_ = s.file.Close()
		s.file = nil
		return fmt.Errorf("failed to flush before close: %w", err)
	}

	if err := s.file.Close(); err != nil {
		s.file = nil
		return fmt.Errorf("failed to close trials file: %w", err)
	}

	s.file = nil
	return nil
}

// Path returns the path to the trials file.
func (s *FileSink) Path() string {
	return s.path
}

// Filter selects trial records. The zero value selects every record.
type Filter struct {
	// Configurations limits the records to these catalogue entries.
	Configurations []string

	// UnsoundOnly keeps only premature declarations.
	UnsoundOnly bool
}

// Match reports whether r passes the filter.
func (f Filter) Match(r TrialRecord) bool {
	if f.UnsoundOnly && r.Sound {
		return false
	}
	return len(f.Configurations) == 0 || slices.Contains(f.Configurations, r.Configuration)
}

// ReadRecords decodes the trials file at path and returns the records that
// pass f, in file order.
func ReadRecords(path string, f Filter) ([]TrialRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trials file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var records []TrialRecord
	dec := json.NewDecoder(bufio.NewReader(file))
	for n := 1; ; n++ {
		var record TrialRecord
		if err := dec.Decode(&record); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to decode record %d of %s: %w", n, path, err)
		}
		if f.Match(record) {
			records = append(records, record)
		}
	}
	return records, nil
}
