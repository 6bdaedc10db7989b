package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	psnet "github.com/shirou/gopsutil/v3/net"
	psproc "github.com/shirou/gopsutil/v3/process"
)

type psutilScanner struct{}

func (s *psutilScanner) Scan(ctx context.Context) ([]Connection, error) {
	stats, err := psnet.ConnectionsWithContext(ctx, "tcp")
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("%w: %v", ErrPermission, err)
		}
		return nil, fmt.Errorf("list tcp connections: %w", err)
	}

	conns := make([]Connection, 0, len(stats))
	for _, st := range stats {
		conns = append(conns, fromStat(st))
	}
	return conns, nil
}

func fromStat(st psnet.ConnectionStat) Connection {
	c := Connection{
		LocalIP:   st.Laddr.IP,
		LocalPort: int(st.Laddr.Port),
		Status:    st.Status,
		PID:       int(st.Pid),
	}
	// Listening sockets report 0.0.0.0:0 or an empty peer
	if st.Raddr.IP != "" && st.Raddr.Port != 0 {
		c.RemoteIP = st.Raddr.IP
		c.RemotePort = int(st.Raddr.Port)
	}
	return c
}

func (s *psutilScanner) ProcessName(ctx context.Context, pid int) string {
	if pid <= 0 {
		return SystemProcess
	}

	p, err := psproc.NewProcessWithContext(ctx, int32(pid))
	if err != nil {
		return UnknownProcess
	}
	name, err := p.NameWithContext(ctx)
	if err != nil || strings.TrimSpace(name) == "" {
		return UnknownProcess
	}
	return name
}
