package proto

import (
	"testing"

	"go-jeux"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInvitation() *Invitation {
	src := &Client{id: 1}
	tgt := &Client{id: 2}
	iv := newInvitation(src, tgt, jeux.RoleX)
	src.slots[0] = iv
	tgt.slots[0] = iv
	return iv
}

func TestInvitationRoles(t *testing.T) {
	iv := testInvitation()
	assert.Equal(t, jeux.RoleO, iv.roleOf(iv.source))
	assert.Equal(t, jeux.RoleX, iv.roleOf(iv.target))

	peer, role, slot := iv.peerOf(iv.source)
	assert.Same(t, iv.target, peer)
	assert.Equal(t, jeux.RoleX, role)
	assert.Equal(t, uint8(0), slot)
}

func TestInvitationAccept(t *testing.T) {
	iv := testInvitation()
	assert.Nil(t, iv.Game())

	game, err := iv.accept()
	require.NoError(t, err)
	require.NotNil(t, game)
	assert.Same(t, game, iv.Game())

	_, err = iv.accept()
	assert.ErrorIs(t, err, ErrInviteState)
}

func TestInvitationCloseOpen(t *testing.T) {
	iv := testInvitation()
	require.NoError(t, iv.closeOpen())
	assert.ErrorIs(t, iv.closeOpen(), ErrInviteClosed)

	// An accepted invitation can no longer be revoked or declined.
	iv = testInvitation()
	_, err := iv.accept()
	require.NoError(t, err)
	assert.ErrorIs(t, iv.closeOpen(), ErrInviteState)
}

func TestInvitationCloseResigns(t *testing.T) {
	iv := testInvitation()
	game, err := iv.accept()
	require.NoError(t, err)

	prev, err := iv.close(jeux.RoleX)
	require.NoError(t, err)
	assert.Equal(t, inviteAccepted, prev)
	assert.True(t, game.Over())
	assert.Equal(t, jeux.RoleO, game.Winner())

	// Only one closer wins.
	_, err = iv.close(jeux.RoleO)
	assert.ErrorIs(t, err, ErrInviteClosed)
}

func TestInvitationCloseNeedsRole(t *testing.T) {
	iv := testInvitation()
	_, err := iv.accept()
	require.NoError(t, err)

	// A live game cannot be closed without someone to resign it.
	_, err = iv.close(jeux.NoRole)
	assert.ErrorIs(t, err, ErrInviteState)
}

func TestInvitationUnlink(t *testing.T) {
	iv := testInvitation()
	_, err := iv.close(jeux.NoRole)
	require.NoError(t, err)

	iv.unlink()
	assert.Nil(t, iv.source.slots[0])
	assert.Nil(t, iv.target.slots[0])
}
