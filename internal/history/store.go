// Package history persists an append-only log of completed downloads to a
// single JSON file.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// File settings
const (
	DefaultFileName = "download_history.json"

	filePermissions = 0644
	dirPermissions  = 0755
)

// ErrCorrupt indicates the backing file could not be parsed
var ErrCorrupt = errors.New("history: backing file is not valid JSON")

// Record describes one completed download. Records are immutable once
// appended; the log is ordered, insertion order = chronological order.
type Record struct {
	Title        string    `json:"title"`
	URL          string    `json:"url"`
	FileType     string    `json:"file_type"` // "mp4" or "mp3"
	DownloadPath string    `json:"download_path"`
	Timestamp    time.Time `json:"timestamp"`
}

// Store is a file-backed history log. Every load reads the whole file and
// every append rewrites it; the mutex serializes the read-modify-write cycle
// so concurrent appends cannot lose records.
type Store struct {
	path string
	mu   sync.Mutex

	now func() time.Time // injectable clock for tests
}

// NewStore creates a history store backed by the file at path. The file is
// created lazily on first append.
func NewStore(path string) *Store {
	return &Store{
		path: path,
		now:  time.Now,
	}
}

// Path returns the backing file location
func (s *Store) Path() string {
	return s.path
}

// Load reads the full record sequence from the backing file. A missing file
// is the empty-log case, not an error.
func (s *Store) Load() ([]Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Record{}, nil
		}
		return nil, fmt.Errorf("history: read %s: %w", s.path, err)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
	}
	return records, nil
}

// Save overwrites the backing file with the full record sequence, serialized
// as indented human-readable JSON.
func (s *Store) Save(records []Record) error {
	if records == nil {
		records = []Record{}
	}

	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("history: marshal records: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return fmt.Errorf("history: create directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(s.path, data, filePermissions); err != nil {
		return fmt.Errorf("history: write %s: %w", s.path, err)
	}
	return nil
}

// Append loads the current sequence, stamps a new record with the current
// time, and saves the extended sequence. The whole cycle runs under the
// store mutex.
func (s *Store) Append(title, url, fileType, downloadPath string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.Load()
	if err != nil {
		return Record{}, err
	}

	record := Record{
		Title:        title,
		URL:          url,
		FileType:     fileType,
		DownloadPath: downloadPath,
		Timestamp:    s.now(),
	}
	records = append(records, record)

	if err := s.Save(records); err != nil {
		return Record{}, err
	}
	return record, nil
}
