//go:build !windows

package services

func databasePath() string {
	return "/etc/services"
}
