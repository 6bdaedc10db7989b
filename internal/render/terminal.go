package render

import (
	"os"

	"github.com/moby/term"
)

// FallbackLines is used when the terminal height cannot be queried.
const FallbackLines = 40

// Terminal reports how many lines are visible.
type Terminal interface {
	Lines() int
}

type fileTerminal struct {
	fd uintptr
}

// NewTerminal measures the terminal attached to f.
func NewTerminal(f *os.File) Terminal {
	fd, _ := term.GetFdInfo(f)
	return fileTerminal{fd: fd}
}

func (t fileTerminal) Lines() int {
	ws, err := term.GetWinsize(t.fd)
	if err != nil || ws == nil || ws.Height == 0 {
		return FallbackLines
	}
	return int(ws.Height)
}

// FixedLines is a Terminal with a constant height.
type FixedLines int

func (n FixedLines) Lines() int {
	if n <= 0 {
		return FallbackLines
	}
	return int(n)
}
