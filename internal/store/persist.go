package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"tribex/internal/models"
)

// stateFileName matches the namespaced storage key of the web client.
const stateFileName = "tribox-storage.json"

// persistedState is the explicit persistence boundary: only this struct is
// ever written to disk.
type persistedState struct {
	AppSettings models.AppSettings `json:"appSettings"`
}

type stateFile struct {
	path string
}

func newStateFile(dir string) *stateFile {
	if dir == "" {
		dir = "."
	}
	return &stateFile{path: filepath.Join(dir, stateFileName)}
}

// load reads the persisted slice, returning defaults when no file exists.
func (f *stateFile) load() (persistedState, error) {
	st := persistedState{AppSettings: models.DefaultAppSettings()}

	b, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return st, nil
		}
		return st, err
	}
	if err := json.Unmarshal(b, &st); err != nil {
		return persistedState{AppSettings: models.DefaultAppSettings()}, err
	}
	return st, nil
}

// save writes the persisted slice synchronously.
func (f *stateFile) save(st persistedState) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, b, 0o644)
}
