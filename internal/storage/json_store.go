package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sgrier/stacker/internal/models"
)

type jsonFile struct {
	Version  int                     `json:"version"`
	Routines []models.Routine        `json:"routines"`
	Library  []models.Stack          `json:"library"`
	Ledger   models.CompletionLedger `json:"ledger"`
}

type JSONStore struct {
	path string
	file *jsonFile
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{
		path: path,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.file = &jsonFile{
		Version:  1,
		Routines: []models.Routine{},
		Library:  []models.Stack{},
		Ledger:   models.CompletionLedger{},
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'stacker init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.file = &jsonFile{}
	if err := json.Unmarshal(data, s.file); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	// Ensure collections are initialized
	if s.file.Routines == nil {
		s.file.Routines = []models.Routine{}
	}
	if s.file.Library == nil {
		s.file.Library = []models.Stack{}
	}
	if s.file.Ledger == nil {
		s.file.Ledger = models.CompletionLedger{}
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) ReadSnapshot() (models.Snapshot, error) {
	if s.file == nil {
		return models.Snapshot{}, fmt.Errorf("storage not loaded")
	}

	snap := models.Snapshot{
		Routines: s.file.Routines,
		Library:  s.file.Library,
		Ledger:   s.file.Ledger,
	}
	snap.Normalize()
	return snap.Clone(), nil
}

func (s *JSONStore) WriteSnapshot(snap models.Snapshot) error {
	if s.file == nil {
		return fmt.Errorf("storage not loaded")
	}

	clone := snap.Clone()
	clone.Normalize()
	s.file.Routines = clone.Routines
	s.file.Library = clone.Library
	s.file.Ledger = clone.Ledger
	return s.save()
}

func (s *JSONStore) Path() string {
	return s.path
}
