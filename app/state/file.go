package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

var _ Store = (*FileStore)(nil)

// FileStore keeps the watermark in a small local JSON file with a single
// key. Writes go through a temp file and rename so a crash mid-write
// cannot leave a truncated watermark behind.
type FileStore struct {
	path string
}

type fileRecord struct {
	LastSeenID string `json:"last_seen_id"`
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read watermark file: %w", err)
	}

	var record fileRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return "", fmt.Errorf("failed to parse watermark file: %w", err)
	}

	return record.LastSeenID, nil
}

func (s *FileStore) Save(id string) error {
	data, err := json.Marshal(fileRecord{LastSeenID: id})
	if err != nil {
		return fmt.Errorf("failed to encode watermark: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".watermark-*")
	if err != nil {
		return fmt.Errorf("failed to create temp watermark file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write watermark: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp watermark file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace watermark file: %w", err)
	}

	return nil
}
