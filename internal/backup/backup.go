// Package backup persists pre-mutation metadata snapshots so an update
// run can be reversed exactly.
package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/vietdv277/cirrus/pkg/types"
)

// DefaultDir is where update runs drop backup files unless overridden.
const DefaultDir = ".cirrus-backups"

// Record is one object's pre-mutation snapshot. The metadata fields are
// embedded so the file serializes flat: {key, cache_control, ...}.
type Record struct {
	Key string `json:"key"`
	types.ObjectMeta
}

// File is a complete backup: the run header plus every record, in the
// order the records were collected. Immutable once written.
type File struct {
	Bucket       string    `json:"bucket"`
	CacheControl string    `json:"cache_control"`
	CreatedAt    time.Time `json:"created_at"`
	Records      []Record  `json:"records"`
}

// Path returns the timestamped backup file path for a bucket.
func Path(dir, bucket string, now time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("%s_update_%s.json", bucket, now.Format("20060102_150405")))
}

// Save writes the backup file, creating the directory if needed.
func (f *File) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal backup: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}

	return nil
}

// Load reads and validates a backup file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("backup file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read backup file: %w", err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("invalid backup file %s: %w", path, err)
	}
	if f.Bucket == "" {
		return nil, fmt.Errorf("invalid backup file %s: missing bucket", path)
	}

	return &f, nil
}

// Sink collects records from concurrent workers. A nil *Sink is a valid
// no-op sink (backups disabled for the run).
type Sink struct {
	mu      sync.Mutex
	records []Record
}

// NewSink returns an empty Sink.
func NewSink() *Sink {
	return &Sink{}
}

// Append adds a record. Safe for concurrent use; no-op on a nil sink.
func (s *Sink) Append(r Record) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.records = append(s.records, r)
	s.mu.Unlock()
}

// Len returns the number of collected records.
func (s *Sink) Len() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// File snapshots the collected records into a backup file for the run.
func (s *Sink) File(bucket, cacheControl string, now time.Time) *File {
	s.mu.Lock()
	records := make([]Record, len(s.records))
	copy(records, s.records)
	s.mu.Unlock()

	return &File{
		Bucket:       bucket,
		CacheControl: cacheControl,
		CreatedAt:    now,
		Records:      records,
	}
}

// SaveSink writes the sink's contents and logs where they went.
func SaveSink(logger zerolog.Logger, s *Sink, bucket, cacheControl, path string) (*File, error) {
	f := s.File(bucket, cacheControl, time.Now().UTC())
	if err := f.Save(path); err != nil {
		return nil, err
	}
	logger.Info().Str("path", path).Int("records", len(f.Records)).Msg("backup saved")
	return f, nil
}
