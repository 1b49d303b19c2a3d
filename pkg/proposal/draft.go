package proposal

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SaveDraft writes the state to a YAML file, creating parent
// directories as needed.
func SaveDraft(path string, state State) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create draft directory: %w", err)
	}

	data, err := yaml.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write draft file: %w", err)
	}
	return nil
}

// LoadDraft reads a saved draft. A missing file returns an empty state
// so a fresh session starts cleanly.
func LoadDraft(path string) (State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return State{}, nil
		}
		return State{}, fmt.Errorf("read draft file: %w", err)
	}

	var state State
	if err := yaml.Unmarshal(data, &state); err != nil {
		return State{}, fmt.Errorf("parse draft file: %w", err)
	}
	return state, nil
}

// DraftExists reports whether a non-empty draft file is present.
func DraftExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir() && info.Size() > 0
}
