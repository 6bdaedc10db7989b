//go:build windows

package scanner

func newPlatformScanner() Scanner {
	return &psutilScanner{}
}

// ElevationHint tells the user how to rerun with enough privileges.
func ElevationHint() string {
	return `This program requires administrator privileges to view process information.

On Windows, please:
  1. Open Command Prompt as Administrator
  2. Navigate to this directory
  3. Run: connwatch`
}
