package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

const (
	appDir     = "connwatch"
	configFile = "config.json"
)

// FileStore keeps the config as indented JSON.
type FileStore struct {
	path string
	mu   sync.RWMutex
}

// NewFileStore creates a JSON store at path.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}
	return &FileStore{path: path}, nil
}

func getConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	default: // linux, darwin and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return ""
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, appDir, configFile)
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) exists() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := os.Stat(s.path)
	return err == nil
}

// Load reads the stored config. Fields missing from the file keep their
// defaults, and a missing file yields the defaults.
func (s *FileStore) Load() (*Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cfg := Default()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}

	return cfg, nil
}

func (s *FileStore) Save(cfg *Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}
