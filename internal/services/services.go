// Package services maps TCP port numbers to well-known service names.
package services

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
)

// EphemeralPort is the first port never annotated with a service name.
const EphemeralPort = 32767

// Lookup resolves a port to its service name.
type Lookup interface {
	Name(port int) (string, bool)
}

// Table is a read-only port -> name map loaded once at startup.
type Table struct {
	names map[int]string
}

// Load reads the system services database, falling back to a small
// built-in table when it is missing or empty.
func Load() *Table {
	f, err := os.Open(databasePath())
	if err != nil {
		return &Table{names: builtin()}
	}
	defer f.Close()

	names := Parse(f)
	if len(names) == 0 {
		names = builtin()
	}
	return &Table{names: names}
}

// NewTable wraps an existing port -> name map.
func NewTable(names map[int]string) *Table {
	return &Table{names: names}
}

// Name returns the service registered for port. Ephemeral ports never
// resolve.
func (t *Table) Name(port int) (string, bool) {
	if port <= 0 || port >= EphemeralPort {
		return "", false
	}
	name, ok := t.names[port]
	return name, ok
}

// Parse reads services(5) formatted data and returns the tcp entries.
// The first name listed for a port wins.
func Parse(r io.Reader) map[int]string {
	names := make(map[int]string)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}

		// name port/proto [aliases...]
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		portProto := strings.SplitN(fields[1], "/", 2)
		if len(portProto) != 2 || !strings.EqualFold(portProto[1], "tcp") {
			continue
		}
		port, err := strconv.Atoi(portProto[0])
		if err != nil || port <= 0 || port > 65535 {
			continue
		}
		if _, seen := names[port]; seen {
			continue
		}
		names[port] = fields[0]
	}

	return names
}

func builtin() map[int]string {
	return map[int]string{
		20:    "ftp-data",
		21:    "ftp",
		22:    "ssh",
		23:    "telnet",
		25:    "smtp",
		53:    "domain",
		80:    "http",
		110:   "pop3",
		123:   "ntp",
		135:   "epmap",
		139:   "netbios-ssn",
		143:   "imap",
		389:   "ldap",
		443:   "https",
		445:   "microsoft-ds",
		465:   "submissions",
		587:   "submission",
		631:   "ipp",
		636:   "ldaps",
		993:   "imaps",
		995:   "pop3s",
		1433:  "ms-sql-s",
		1521:  "ncube-lm",
		3306:  "mysql",
		3389:  "ms-wbt-server",
		5432:  "postgresql",
		5900:  "rfb",
		6379:  "redis",
		8080:  "http-alt",
		27017: "mongodb",
	}
}
