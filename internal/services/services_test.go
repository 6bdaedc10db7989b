package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const sample = `# Network services, Internet style
tcpmux		1/tcp				# TCP port service multiplexer
ssh		22/tcp				# SSH Remote Login Protocol
domain		53/udp
domain		53/tcp
http		80/tcp		www		# WorldWideWeb HTTP
www-alt		80/tcp
https		443/tcp
broken		notaport/tcp
high		40000/tcp
`

func TestParse(t *testing.T) {
	names := Parse(strings.NewReader(sample))

	assert.Equal(t, "ssh", names[22])
	assert.Equal(t, "domain", names[53])
	assert.Equal(t, "http", names[80], "first entry for a port wins")
	assert.Equal(t, "https", names[443])
	assert.Equal(t, "high", names[40000])
	assert.Len(t, names, 6)
}

func TestTableName(t *testing.T) {
	table := NewTable(Parse(strings.NewReader(sample)))

	name, ok := table.Name(443)
	assert.True(t, ok)
	assert.Equal(t, "https", name)

	_, ok = table.Name(40000)
	assert.False(t, ok, "ephemeral ports are never annotated")

	_, ok = table.Name(EphemeralPort)
	assert.False(t, ok)

	_, ok = table.Name(9999)
	assert.False(t, ok)
}

func TestLoadAlwaysHasEntries(t *testing.T) {
	table := Load()
	_, ok := table.Name(443)
	assert.True(t, ok)
}
