//go:build windows

package keys

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/erikgeiser/coninput"
	"github.com/moby/term"
	"golang.org/x/sys/windows"
)

type windowsReader struct {
	fd     uintptr
	handle windows.Handle
	state  *term.State
}

func newPlatformReader(f *os.File) (Reader, error) {
	// StdStreams switches stdout to VT processing so ANSI styling and
	// screen clearing work in the classic console.
	term.StdStreams()

	fd, _ := term.GetFdInfo(f)
	st, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}

	// Key events must arrive as virtual key codes, not VT sequences.
	h := windows.Handle(fd)
	var mode uint32
	if err := windows.GetConsoleMode(h, &mode); err == nil {
		_ = windows.SetConsoleMode(h, mode&^windows.ENABLE_VIRTUAL_TERMINAL_INPUT)
	}

	return &windowsReader{fd: fd, handle: h, state: st}, nil
}

func (r *windowsReader) PollKey() (tea.Key, bool) {
	for {
		n, err := coninput.GetNumberOfConsoleInputEvents(r.handle)
		if err != nil || n == 0 {
			return tea.Key{}, false
		}
		records, err := coninput.ReadNConsoleInputs(r.handle, 1)
		if err != nil || len(records) == 0 {
			return tea.Key{}, false
		}
		ev, ok := records[0].Unwrap().(coninput.KeyEventRecord)
		if !ok || !ev.KeyDown {
			continue
		}
		if k, ok := translate(ev); ok {
			return k, true
		}
	}
}

func translate(ev coninput.KeyEventRecord) (tea.Key, bool) {
	switch ev.VirtualKeyCode {
	case coninput.VK_UP:
		return tea.Key{Type: tea.KeyUp}, true
	case coninput.VK_DOWN:
		return tea.Key{Type: tea.KeyDown}, true
	case coninput.VK_PRIOR:
		return tea.Key{Type: tea.KeyPgUp}, true
	case coninput.VK_NEXT:
		return tea.Key{Type: tea.KeyPgDown}, true
	}
	if ev.Char == 0 {
		return tea.Key{}, false
	}
	k, _, ok := Decode([]byte(string(ev.Char)))
	return k, ok
}

func (r *windowsReader) Raw() bool { return false }

func (r *windowsReader) Close() error {
	if r.state == nil {
		return nil
	}
	err := term.RestoreTerminal(r.fd, r.state)
	r.state = nil
	return err
}
