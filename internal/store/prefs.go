package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

type prefsFile struct {
	Theme string `json:"theme"`
}

// PrefsStore persists the user's display preferences to a local JSON
// file. The theme is the only preference this backend keeps.
type PrefsStore struct {
	mu    sync.Mutex
	path  string
	theme string
}

// NewPrefsStore loads preferences from path, defaulting to the light
// theme when the file does not exist yet.
func NewPrefsStore(path string) (*PrefsStore, error) {
	s := &PrefsStore{path: path, theme: ThemeLight}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}

	var prefs prefsFile
	if err := json.Unmarshal(data, &prefs); err != nil {
		return nil, err
	}
	if prefs.Theme == ThemeDark {
		s.theme = ThemeDark
	}
	return s, nil
}

// Theme returns the current theme preference
func (s *PrefsStore) Theme() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.theme
}

// SetTheme stores the theme preference and writes it through to disk.
// Values other than "dark" normalize to "light".
func (s *PrefsStore) SetTheme(theme string) error {
	if theme != ThemeDark {
		theme = ThemeLight
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.theme = theme

	data, err := json.Marshal(prefsFile{Theme: theme})
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, data, 0o644)
}
