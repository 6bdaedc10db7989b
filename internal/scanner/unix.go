//go:build !windows

package scanner

func newPlatformScanner() Scanner {
	return &psutilScanner{}
}

// ElevationHint tells the user how to rerun with enough privileges.
func ElevationHint() string {
	return `This program requires root privileges to view process information.

Please rerun it with elevated privileges, for example:
  sudo connwatch`
}
