package seenfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store persists seen-sets as one JSON file per staff identity under
// a state directory, so the set survives process restarts.
type Store struct {
	dir string
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path(staffKey string) string {
	return filepath.Join(s.dir, fmt.Sprintf("seen_%s.json", staffKey))
}

func (s *Store) Load(staffKey string) ([]string, error) {
	data, err := os.ReadFile(s.path(staffKey))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read seen-set: %w", err)
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("failed to parse seen-set: %w", err)
	}
	return ids, nil
}

func (s *Store) Save(staffKey string, ids []string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create state dir: %w", err)
	}

	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to encode seen-set: %w", err)
	}

	if err := os.WriteFile(s.path(staffKey), data, 0o644); err != nil {
		return fmt.Errorf("failed to write seen-set: %w", err)
	}
	return nil
}
