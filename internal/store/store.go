package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"GroveKeeper/internal/model"
)

// FileStore persists the participant set as a single JSON document,
// keyed by participant ID. Writes go through a temp file and an atomic
// rename so a crash mid-write cannot corrupt the store.
type FileStore struct {
	path string
}

// New creates a FileStore at the given path. The file is created on
// first save.
func New(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads all participant records. A missing file yields an empty
// set. A malformed entry is skipped with a warning; the rest of the
// file still loads. Only a completely unreadable document is an error,
// and callers are expected to fall back to an empty set.
func (f *FileStore) Load() (map[string]*model.Participant, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]*model.Participant{}, nil
		}
		return nil, fmt.Errorf("read store: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse store: %w", err)
	}

	participants := make(map[string]*model.Participant, len(raw))
	for id, entry := range raw {
		p := &model.Participant{}
		if err := json.Unmarshal(entry, p); err != nil {
			log.Printf("[WARN] skipping malformed participant record %s: %v", id, err)
			continue
		}
		p.ID = id
		participants[id] = p
	}
	return participants, nil
}

// Save writes all participant records via write-replace.
func (f *FileStore) Save(participants map[string]*model.Participant) error {
	data, err := json.MarshalIndent(participants, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}

	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create store dir: %w", err)
		}
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write store temp: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace store: %w", err)
	}
	return nil
}
