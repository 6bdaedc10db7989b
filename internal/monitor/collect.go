package monitor

import (
	"context"
	"strconv"

	"github.com/productdevbook/connwatch/internal/scanner"
	"github.com/productdevbook/connwatch/internal/services"
	"github.com/productdevbook/connwatch/internal/tracker"
)

// Hostnames turns an address into display text without blocking.
type Hostnames interface {
	Lookup(ip string) string
}

// Literal is a Hostnames that never resolves anything.
type Literal struct{}

func (Literal) Lookup(ip string) string { return ip }

// Collector turns a scanner snapshot into display records.
type Collector struct {
	Scanner   scanner.Scanner
	Hostnames Hostnames
	Services  services.Lookup
}

// Collect polls the scanner once.
func (c *Collector) Collect(ctx context.Context) ([]tracker.Record, error) {
	conns, err := c.Scanner.Scan(ctx)
	if err != nil {
		return nil, err
	}
	names := scanner.ProcessNames(ctx, c.Scanner, conns)

	records := make([]tracker.Record, 0, len(conns))
	for _, conn := range conns {
		records = append(records, tracker.Record{
			Local:         conn.Local(),
			Remote:        conn.Remote(),
			RemoteDisplay: c.remoteDisplay(conn),
			Status:        conn.Status,
			PID:           conn.PID,
			Process:       names[conn.PID],
		})
	}
	return records, nil
}

// remoteDisplay renders host:port plus an optional " (service)" suffix.
func (c *Collector) remoteDisplay(conn scanner.Connection) string {
	if !conn.HasRemote() {
		return scanner.NotAvailable
	}
	display := c.Hostnames.Lookup(conn.RemoteIP) + ":" + strconv.Itoa(conn.RemotePort)
	if c.Services != nil {
		if name, ok := c.Services.Name(conn.RemotePort); ok {
			display += " (" + name + ")"
		}
	}
	return display
}
