package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/renameio/v2"
	"github.com/stylegen-labs/stylegen/internal/branding"
	"go.yaml.in/yaml/v3"
)

// stateKey is the top-level key holding the style record in the state file.
const stateKey = "codestyle"

// StyleRecord is the subset of answers saved in the project for future runs.
type StyleRecord struct {
	Indent IndentStyle `yaml:"indent"`
	Semi   bool        `yaml:"semi"`
	Quotes QuoteStyle  `yaml:"quotes"`
}

// MarshalYAML writes space counts as integers and "tab" as a string.
func (s IndentStyle) MarshalYAML() (interface{}, error) {
	if n, err := strconv.Atoi(string(s)); err == nil {
		return n, nil
	}
	return string(s), nil
}

// UnmarshalYAML accepts "tab", 2, 4, "2" or "4".
func (s *IndentStyle) UnmarshalYAML(value *yaml.Node) error {
	v := IndentStyle(value.Value)
	if !v.Valid() {
		return fmt.Errorf("invalid indent style %q", value.Value)
	}
	*s = v
	return nil
}

// StatePath returns the state file location for a project directory.
func StatePath(projectDir string) string {
	return filepath.Join(projectDir, branding.StateFile())
}

// SaveStyleRecord writes rec under the codestyle key of the project state
// file, keeping any other keys already stored there.
func SaveStyleRecord(projectDir string, rec StyleRecord) error {
	path := StatePath(projectDir)

	state, err := readState(path)
	if err != nil {
		return err
	}
	state[stateKey] = rec

	data, err := yaml.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshaling state: %w", err)
	}
	if err := renameio.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing state file %s: %w", path, err)
	}
	return nil
}

// LoadStyleRecord reads the persisted style record. It returns nil, nil when
// no record has been saved yet.
func LoadStyleRecord(projectDir string) (*StyleRecord, error) {
	data, err := os.ReadFile(StatePath(projectDir))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading state file: %w", err)
	}

	var state struct {
		Codestyle *StyleRecord `yaml:"codestyle"`
	}
	if err := yaml.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parsing state file: %w", err)
	}
	return state.Codestyle, nil
}

func readState(path string) (map[string]interface{}, error) {
	state := make(map[string]interface{})
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return state, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading state file: %w", err)
	}
	if err := yaml.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parsing state file %s: %w", path, err)
	}
	if state == nil {
		state = make(map[string]interface{})
	}
	return state, nil
}
