package jeux

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayersRegister(t *testing.T) {
	ps := NewPlayers()

	p := ps.Register("alice")
	require.NotNil(t, p)
	assert.Equal(t, "alice", p.Name())
	assert.Equal(t, InitialRating, p.Rating())

	// A second registration under the same name yields the same
	// record, rating included.
	PostResult(p, ps.Register("bob"), Player1Won)
	assert.Same(t, p, ps.Register("alice"))
	assert.Equal(t, 1516, ps.Register("alice").Rating())
}

func TestPlayersCaseSensitive(t *testing.T) {
	ps := NewPlayers()
	assert.NotSame(t, ps.Register("alice"), ps.Register("Alice"))
}

func TestPlayersLookup(t *testing.T) {
	ps := NewPlayers()
	assert.Nil(t, ps.Lookup("alice"))
	p := ps.Register("alice")
	assert.Same(t, p, ps.Lookup("alice"))
}
