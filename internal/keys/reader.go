package keys

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

// Reader is a non-blocking source of key events.
type Reader interface {
	// PollKey returns the next pending key, or false if none is waiting.
	PollKey() (tea.Key, bool)
	// Raw reports whether the terminal is in raw mode, in which case
	// output must use CRLF line endings.
	Raw() bool
	// Close restores the terminal.
	Close() error
}

// Open puts f into raw mode and returns a platform reader for it. When f
// is not a terminal the returned reader never yields keys.
func Open(f *os.File) (Reader, error) {
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return Nop{}, nil
	}
	return newPlatformReader(f)
}

// Nop is a Reader with no input.
type Nop struct{}

func (Nop) PollKey() (tea.Key, bool) { return tea.Key{}, false }
func (Nop) Raw() bool                { return false }
func (Nop) Close() error             { return nil }

// Scripted replays a fixed list of keys, one per poll. Useful for tests
// and for driving the monitor without a terminal.
type Scripted struct {
	keys []tea.Key
}

func NewScripted(keys ...tea.Key) *Scripted {
	return &Scripted{keys: keys}
}

func (s *Scripted) PollKey() (tea.Key, bool) {
	if len(s.keys) == 0 {
		return tea.Key{}, false
	}
	k := s.keys[0]
	s.keys = s.keys[1:]
	return k, true
}

func (s *Scripted) Raw() bool    { return false }
func (s *Scripted) Close() error { return nil }
