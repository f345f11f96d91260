package conf

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	c, err := load(strings.NewReader(`
[server]
port = 1234
max-clients = 10
websocket = false

[database]
file = "games.db"

[web]
enabled = true
port = 9999
`))
	require.NoError(t, err)

	assert.Equal(t, uint16(1234), c.TCPPort)
	assert.Equal(t, uint(10), c.MaxClients)
	assert.False(t, c.WebSocket)
	assert.Equal(t, "games.db", c.Database)
	assert.True(t, c.WebInterface)
	assert.Equal(t, uint16(9999), c.WebPort)
	assert.NotNil(t, c.Players)
}

func TestLoadSparse(t *testing.T) {
	// Leaving the ports out of the file must not zero them.
	c, err := load(strings.NewReader(`
[server]
websocket = true
`))
	require.NoError(t, err)
	assert.Equal(t, uint16(4000), c.TCPPort)
	assert.Equal(t, uint16(8080), c.WebPort)
}

func TestLoadInvalid(t *testing.T) {
	_, err := load(strings.NewReader(`server = "not a table"
[server]`))
	assert.Error(t, err)
}

func TestDumpRoundTrip(t *testing.T) {
	c := *Default()
	c.TCPPort = 4321
	c.Database = "archive.db"

	var buf bytes.Buffer
	require.NoError(t, c.Dump(&buf))

	d, err := load(&buf)
	require.NoError(t, err)
	assert.Equal(t, c.TCPPort, d.TCPPort)
	assert.Equal(t, c.MaxClients, d.MaxClients)
	assert.Equal(t, c.Database, d.Database)
	assert.Equal(t, c.WebPort, d.WebPort)
}
