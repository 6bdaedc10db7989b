// Package config loads and persists the user's monitor defaults.
package config

import (
	"fmt"

	"github.com/productdevbook/connwatch/internal/view"
)

const (
	DefaultInterval = 2
	DefaultFilter   = "ESTABLISHED"
	DefaultSort     = "process"
)

// Config holds the startup defaults for the live view.
type Config struct {
	Interval   int    `json:"interval" plist:"refreshInterval"`
	Filter     string `json:"filter" plist:"filter"`
	Sort       string `json:"sort" plist:"sortColumn"`
	ResolveDNS bool   `json:"resolveDNS" plist:"resolveDNS"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Interval:   DefaultInterval,
		Filter:     DefaultFilter,
		Sort:       DefaultSort,
		ResolveDNS: true,
	}
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	if c.Interval < 1 {
		return fmt.Errorf("interval must be at least 1 second, got %d", c.Interval)
	}
	if _, err := view.New(c.Filter, c.Sort); err != nil {
		return err
	}
	return nil
}

// ViewState returns the initial view state described by c.
func (c *Config) ViewState() (view.State, error) {
	return view.New(c.Filter, c.Sort)
}

// Store interface for config persistence
type Store interface {
	Load() (*Config, error)
	Save(cfg *Config) error
	// Path is where the store keeps its data, empty when it keeps none.
	Path() string
}

// NewStore returns the config store for this user
func NewStore() Store {
	store, err := NewFileStore(getConfigPath())
	if err != nil {
		// Fallback: return a store that always yields the defaults
		return &fallbackStore{}
	}

	// Migrate the old preferences file if nothing has been saved yet
	if !store.exists() {
		if plistCfg := loadFromPlist(); plistCfg != nil {
			store.Save(plistCfg)
		}
	}

	return store
}

type fallbackStore struct{}

func (f *fallbackStore) Load() (*Config, error) {
	return Default(), nil
}

func (f *fallbackStore) Save(cfg *Config) error {
	return nil
}

func (f *fallbackStore) Path() string {
	return ""
}
