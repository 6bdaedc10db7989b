//go:build windows

package services

import (
	"os"
	"path/filepath"
)

func databasePath() string {
	root := os.Getenv("SystemRoot")
	if root == "" {
		root = `C:\Windows`
	}
	return filepath.Join(root, "System32", "drivers", "etc", "services")
}
