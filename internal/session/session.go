// Package session manages the operator's local session: the login gate and
// the small settings blob behind it. The store only ever holds settings;
// records always live on the backend, never on disk.
package session

import (
	"fmt"
	"os"

	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/core/pkg/zstore"
)

const settingsKey = "operator"

// Settings are the operator's saved preferences.
type Settings struct {
	// Email identifies the operator. Authentication is local only; the
	// backend has no user accounts.
	Email string `json:"email"`

	// APIBase overrides the configured backend root when non-empty.
	APIBase string `json:"api_base"`

	// PageSize overrides the configured list page size when positive.
	PageSize int `json:"page_size"`
}

// Store is the encrypted local session store.
type Store struct {
	store    *zstore.Store
	settings *zstore.Collection[Settings]
}

// DataDir returns the default data directory for backoffice.
func DataDir() string {
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return d + "/backoffice"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".backoffice"
	}
	return home + "/.local/share/backoffice"
}

// IsFirstRun checks whether the session store has been initialized.
func IsFirstRun(dir string) bool {
	_, err := os.Stat(dir + "/salt")
	return err != nil
}

// Open opens or initializes the session store with the login password.
// On first run the password becomes the store password; afterwards a wrong
// password fails here.
func Open(dir, password string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	fsys := zfilesystem.NewOSFileSystem(dir)
	s, err := zstore.Open(fsys, []byte(password))
	if err != nil {
		return nil, err
	}

	col, err := zstore.NewCollection[Settings](s, "settings")
	if err != nil {
		s.Close()
		return nil, err
	}

	return &Store{store: s, settings: col}, nil
}

// Settings returns the saved settings, or the zero value when none exist.
func (s *Store) Settings() Settings {
	v, err := s.settings.Get(settingsKey)
	if err != nil {
		return Settings{}
	}
	return v
}

// SaveSettings persists the operator settings.
func (s *Store) SaveSettings(v Settings) error {
	if err := s.settings.Put(settingsKey, v); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Close releases the store.
func (s *Store) Close() error {
	return s.store.Close()
}
