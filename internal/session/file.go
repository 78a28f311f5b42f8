// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/olegiv/blogadmin/internal/model"
)

// fileData is the on-disk layout of a FileStore.
type fileData struct {
	AdminID   int64  `yaml:"admin_id"`
	AdminName string `yaml:"admin_username,omitempty"`
}

// FileStore keeps the command-line session in a YAML file readable only by
// its owner.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a store at path. The file is created on first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultFilePath returns the session file under the user config directory.
func DefaultFilePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return filepath.Join(dir, "blogadmin", "session.yaml"), nil
}

// Path returns the file location.
func (f *FileStore) Path() string {
	return f.path
}

// Load reads the session. A missing, unreadable or malformed file means no
// session.
func (f *FileStore) Load(context.Context) (model.Session, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, err := os.ReadFile(f.path)
	if err != nil {
		return model.Session{}, false
	}

	var d fileData
	if err := yaml.Unmarshal(b, &d); err != nil || d.AdminID <= 0 {
		return model.Session{}, false
	}
	if d.AdminName == "" {
		d.AdminName = model.DefaultAdminName
	}
	return model.Session{AdminID: d.AdminID, AdminName: d.AdminName}, true
}

// Save writes the session atomically with mode 0600.
func (f *FileStore) Save(_ context.Context, s model.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, err := yaml.Marshal(fileData{AdminID: s.AdminID, AdminName: s.AdminName})
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*.yaml")
	if err != nil {
		return fmt.Errorf("creating session file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("setting session file mode: %w", err)
	}
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing session file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("replacing session file: %w", err)
	}
	return nil
}

// Clear removes the file. A missing file is not an error.
func (f *FileStore) Clear(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}
