//go:build darwin

package config

import (
	"os"
	"path/filepath"

	"howett.net/plist"
)

const plistPath = "Library/Preferences/dev.connwatch.plist"

// plistConfig mirrors the old preferences domain. Pointers tell absent
// keys apart from zero values.
type plistConfig struct {
	RefreshInterval *int    `plist:"refreshInterval"`
	Filter          *string `plist:"filter"`
	SortColumn      *string `plist:"sortColumn"`
	ResolveDNS      *bool   `plist:"resolveDNS"`
}

// loadFromPlist reads the old preferences file for migration
func loadFromPlist() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}

	data, err := os.ReadFile(filepath.Join(home, plistPath))
	if err != nil {
		return nil
	}
	return parsePlist(data)
}

func parsePlist(data []byte) *Config {
	var pc plistConfig
	if _, err := plist.Unmarshal(data, &pc); err != nil {
		return nil
	}

	cfg := Default()
	if pc.RefreshInterval != nil && *pc.RefreshInterval > 0 {
		cfg.Interval = *pc.RefreshInterval
	}
	if pc.Filter != nil && *pc.Filter != "" {
		cfg.Filter = *pc.Filter
	}
	if pc.SortColumn != nil && *pc.SortColumn != "" {
		cfg.Sort = *pc.SortColumn
	}
	if pc.ResolveDNS != nil {
		cfg.ResolveDNS = *pc.ResolveDNS
	}

	// Keep the defaults rather than migrating names the view rejects
	if cfg.Validate() != nil {
		return nil
	}
	return cfg
}
