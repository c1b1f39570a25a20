package state

import (
	"encoding/json"
	"os"

	log "github.com/sirupsen/logrus"
)

// FileStore keeps the state as one canonical JSON object on disk: top-level
// keys are source URLs, values sorted signature arrays. The file is written
// normalized so external tooling can diff it.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (f *FileStore) Load() (State, error) {
	raw, err := os.ReadFile(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return State{}, nil
		}
		return State{}, err
	}

	var s State
	if err := json.Unmarshal(raw, &s); err != nil {
		log.Printf("⚠️ State file is invalid JSON, starting fresh: %v", err)
		return State{}, nil
	}
	return s, nil
}

func (f *FileStore) Save(s State) error {
	data, err := json.MarshalIndent(Normalize(s), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.Path, data, 0o644)
}
