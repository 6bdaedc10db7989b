//go:build !windows

package keys

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/moby/term"
	"golang.org/x/sys/unix"
)

type unixReader struct {
	fd      uintptr
	state   *term.State
	pending []byte
	buf     [64]byte
}

func newPlatformReader(f *os.File) (Reader, error) {
	fd, _ := term.GetFdInfo(f)
	st, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return &unixReader{fd: fd, state: st}, nil
}

func (r *unixReader) PollKey() (tea.Key, bool) {
	for {
		if len(r.pending) == 0 && !r.fill() {
			return tea.Key{}, false
		}
		k, n, ok := Decode(r.pending)
		r.pending = r.pending[n:]
		if ok {
			return k, true
		}
	}
}

// fill reads whatever is available on the fd without blocking.
func (r *unixReader) fill() bool {
	fds := []unix.PollFd{{Fd: int32(r.fd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, 0)
	if err != nil || n == 0 || fds[0].Revents&unix.POLLIN == 0 {
		return false
	}
	read, err := unix.Read(int(r.fd), r.buf[:])
	if err != nil || read <= 0 {
		return false
	}
	r.pending = append(r.pending[:0], r.buf[:read]...)
	return true
}

func (r *unixReader) Raw() bool { return true }

func (r *unixReader) Close() error {
	if r.state == nil {
		return nil
	}
	err := term.RestoreTerminal(r.fd, r.state)
	r.state = nil
	return err
}
