package db

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"go-jeux"
	"go-jeux/conf"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testArchive opens a private in-memory archive.
func testArchive(t *testing.T, name string) conf.Recorder {
	t.Helper()
	c := &conf.Conf{
		Log:      log.New(io.Discard, "", 0),
		Debug:    log.New(io.Discard, "", 0),
		Database: "file:" + name + "?mode=memory&cache=shared",
	}
	Prepare(c)
	require.NotNil(t, c.DB)
	t.Cleanup(c.DB.Shutdown)
	return c.DB
}

func TestRecordAndQuery(t *testing.T) {
	archive := testArchive(t, "record-and-query")
	ctx := context.Background()

	first := jeux.GameRecord{
		X: "alice", O: "bob",
		Winner: jeux.RoleX, Moves: 5,
		Finished: time.Now().Add(-time.Minute),
	}
	second := jeux.GameRecord{
		X: "carol", O: "alice",
		Winner: jeux.NoRole, Moves: 9,
		Finished: time.Now(),
	}
	require.NoError(t, archive.RecordGame(ctx, first))
	require.NoError(t, archive.RecordGame(ctx, second))

	games, err := archive.RecentGames(ctx, 10)
	require.NoError(t, err)
	require.Len(t, games, 2)

	// Most recent first.
	assert.Equal(t, "carol", games[0].X)
	assert.Equal(t, jeux.NoRole, games[0].Winner)
	assert.Equal(t, 9, games[0].Moves)

	assert.Equal(t, "alice", games[1].X)
	assert.Equal(t, "bob", games[1].O)
	assert.Equal(t, jeux.RoleX, games[1].Winner)
	assert.Equal(t, 5, games[1].Moves)
	assert.WithinDuration(t, first.Finished, games[1].Finished, time.Second)
}

func TestRecentGamesLimit(t *testing.T) {
	archive := testArchive(t, "recent-games-limit")
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, archive.RecordGame(ctx, jeux.GameRecord{
			X: "alice", O: "bob",
			Winner:   jeux.RoleO,
			Moves:    6,
			Finished: time.Now(),
		}))
	}

	games, err := archive.RecentGames(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, games, 3)
}

func TestRecentGamesEmpty(t *testing.T) {
	archive := testArchive(t, "recent-games-empty")

	games, err := archive.RecentGames(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, games)
}
