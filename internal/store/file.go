// Package store persists the profile locally as a JSON file and, optionally,
// records import sessions in PostgreSQL.
package store

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Sof1ane/aipply/internal/profile"
	"github.com/Sof1ane/aipply/internal/schemas"
)

// DefaultPath is the profile file written next to where the tool runs.
const DefaultPath = "profile_structure.json"

//go:embed profile_schema.json
var profileSchema string

// LoadError represents a failure reading or parsing the profile file.
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("profile load error (%s): %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("profile load error (%s): %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// FileStore reads and writes the profile file.
type FileStore struct {
	path string
}

// NewFileStore returns a store for the given path, falling back to
// DefaultPath when empty.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultPath
	}
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Exists reports whether a profile file is already present.
func (s *FileStore) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load reads the profile file. Files written by older releases (nested
// identity object, French or Spanish key sets) are migrated to the canonical
// schema and re-saved in place.
func (s *FileStore) Load() (*profile.Profile, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		return nil, &LoadError{Path: s.path, Message: "failed to read file", Cause: err}
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, &LoadError{Path: s.path, Message: "failed to parse JSON", Cause: err}
	}

	if isLegacy(raw) {
		prof, err := migrateLegacy(content)
		if err != nil {
			return nil, &LoadError{Path: s.path, Message: "failed to migrate legacy profile", Cause: err}
		}
		if err := s.Save(prof); err != nil {
			return nil, err
		}
		return prof, nil
	}

	var prof profile.Profile
	if err := json.Unmarshal(content, &prof); err != nil {
		return nil, &LoadError{Path: s.path, Message: "failed to unmarshal profile", Cause: err}
	}
	return &prof, nil
}

// Save schema-validates the profile and writes it atomically-ish (temp file
// plus rename) so a crash mid-write never corrupts the previous profile.
func (s *FileStore) Save(prof *profile.Profile) error {
	content, err := json.MarshalIndent(prof, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	if err := schemas.ValidateJSONString(profileSchema, string(content)); err != nil {
		return fmt.Errorf("profile does not match schema: %w", err)
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create profile directory: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, content, 0o644); err != nil {
		return fmt.Errorf("failed to write profile file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace profile file: %w", err)
	}
	return nil
}
