package scanner

import (
	"context"
	"errors"
	"fmt"
)

//go:generate mockgen -destination mocks/mock_scanner.go -package mocks github.com/productdevbook/connwatch/internal/scanner Scanner

const (
	// NotAvailable is shown in place of an endpoint the OS did not report.
	NotAvailable = "N/A"
	// SystemProcess names sockets that have no owning pid.
	SystemProcess = "System"
	// UnknownProcess names sockets whose process is gone or inaccessible.
	UnknownProcess = "Unknown"
)

// ErrPermission is returned by Scan when the OS refuses to enumerate
// connections for the current user.
var ErrPermission = errors.New("permission denied listing TCP connections")

// Connection represents one TCP socket and its owning process
type Connection struct {
	LocalIP    string `json:"localIp"`
	LocalPort  int    `json:"localPort"`
	RemoteIP   string `json:"remoteIp,omitempty"`
	RemotePort int    `json:"remotePort,omitempty"`
	Status     string `json:"status"`
	PID        int    `json:"pid"`
}

// Local returns the local endpoint as ip:port.
func (c Connection) Local() string {
	if c.LocalIP == "" {
		return NotAvailable
	}
	return fmt.Sprintf("%s:%d", c.LocalIP, c.LocalPort)
}

// HasRemote reports whether the socket has a peer.
func (c Connection) HasRemote() bool {
	return c.RemoteIP != "" && c.RemotePort != 0
}

// Remote returns the remote endpoint as ip:port, or NotAvailable.
func (c Connection) Remote() string {
	if !c.HasRemote() {
		return NotAvailable
	}
	return fmt.Sprintf("%s:%d", c.RemoteIP, c.RemotePort)
}

// Scanner interface for platform-specific implementations
type Scanner interface {
	// Scan returns every live TCP connection.
	Scan(ctx context.Context) ([]Connection, error)
	// ProcessName returns the display name of pid, SystemProcess for pid 0
	// and UnknownProcess when the process cannot be inspected.
	ProcessName(ctx context.Context, pid int) string
}

// New returns a platform-specific scanner
func New() Scanner {
	return newPlatformScanner()
}

// ProcessNames looks up each distinct pid in conns once.
func ProcessNames(ctx context.Context, s Scanner, conns []Connection) map[int]string {
	names := make(map[int]string)
	for _, c := range conns {
		if _, ok := names[c.PID]; ok {
			continue
		}
		names[c.PID] = s.ProcessName(ctx, c.PID)
	}
	return names
}
