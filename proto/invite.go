// Invitation state machine
//
// Copyright (c) 2026
//
// This file is part of go-jeux.
//
// go-jeux is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License,
// version 3, as published by the Free Software Foundation.
//
// go-jeux is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the GNU
// Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public
// License, version 3, along with go-jeux. If not, see
// <http://www.gnu.org/licenses/>

package proto

import (
	"errors"
	"sync"

	"go-jeux"
)

var (
	// ErrInviteClosed is returned by any action on a closed invitation.
	ErrInviteClosed = errors.New("invitation is closed")
	// ErrInviteState is returned for an action the invitation's
	// current state does not admit.
	ErrInviteState = errors.New("invitation in wrong state")
)

type inviteState uint8

const (
	inviteOpen inviteState = iota
	inviteAccepted
	inviteClosed
)

// Invitation ties two clients together, first as a pending offer and
// after acceptance as a running game.  Each side refers to it through
// a slot in its own slot table; both slots point at the same
// Invitation until it is closed and unlinked from both.
type Invitation struct {
	mu      sync.Mutex
	source  *Client
	target  *Client
	srcRole jeux.Role
	tgtRole jeux.Role
	srcSlot uint8
	tgtSlot uint8
	state   inviteState
	game    *jeux.Game

	// Player records are captured up front so a result can still be
	// posted when one side has logged out by the time the game ends.
	srcPlayer *jeux.Player
	tgtPlayer *jeux.Player
}

// newInvitation pairs source and target, with tgtRole naming the role
// offered to the target.
func newInvitation(source, target *Client, tgtRole jeux.Role) *Invitation {
	if source == target {
		panic("self-invitation")
	}
	if tgtRole != jeux.RoleX && tgtRole != jeux.RoleO {
		panic("invitation without a role")
	}
	return &Invitation{
		source:  source,
		target:  target,
		srcRole: tgtRole.Opponent(),
		tgtRole: tgtRole,
	}
}

// roleOf returns the role c plays under this invitation.
func (iv *Invitation) roleOf(c *Client) jeux.Role {
	if c == iv.source {
		return iv.srcRole
	}
	return iv.tgtRole
}

// peerOf returns the other party, its role and its slot index.
func (iv *Invitation) peerOf(c *Client) (*Client, jeux.Role, uint8) {
	if c == iv.source {
		return iv.target, iv.tgtRole, iv.tgtSlot
	}
	return iv.source, iv.srcRole, iv.srcSlot
}

// Game returns the game attached to an accepted invitation, nil
// before acceptance.
func (iv *Invitation) Game() *jeux.Game {
	iv.mu.Lock()
	defer iv.mu.Unlock()
	return iv.game
}

// accept moves an open invitation to the accepted state and attaches
// a fresh game to it.
func (iv *Invitation) accept() (*jeux.Game, error) {
	iv.mu.Lock()
	defer iv.mu.Unlock()

	switch iv.state {
	case inviteClosed:
		return nil, ErrInviteClosed
	case inviteAccepted:
		return nil, ErrInviteState
	}
	iv.state = inviteAccepted
	iv.game = jeux.NewGame()
	return iv.game, nil
}

// closeOpen closes an invitation that must still be pending, as a
// revocation or declination demands.
func (iv *Invitation) closeOpen() error {
	iv.mu.Lock()
	defer iv.mu.Unlock()

	switch iv.state {
	case inviteClosed:
		return ErrInviteClosed
	case inviteAccepted:
		return ErrInviteState
	}
	iv.state = inviteClosed
	return nil
}

// unlink removes the invitation from both parties' slot tables.  The
// caller must hold neither client lock.
func (iv *Invitation) unlink() {
	lockPair(iv.source, iv.target)
	defer unlockPair(iv.source, iv.target)

	if iv.source.slots[iv.srcSlot] == iv {
		iv.source.slots[iv.srcSlot] = nil
	}
	if iv.target.slots[iv.tgtSlot] == iv {
		iv.target.slots[iv.tgtSlot] = nil
	}
}

// close moves the invitation to the closed state.  If a game is still
// in progress it is resigned on behalf of the given role, which must
// then not be NoRole.  Exactly one caller observes a nil error per
// invitation; the previous state tells that caller what cleanup the
// closing entails.
func (iv *Invitation) close(r jeux.Role) (inviteState, error) {
	iv.mu.Lock()
	defer iv.mu.Unlock()

	prev := iv.state
	switch prev {
	case inviteClosed:
		return prev, ErrInviteClosed
	case inviteAccepted:
		if !iv.game.Over() {
			if r == jeux.NoRole {
				return prev, ErrInviteState
			}
			iv.game.Resign(r)
		}
	}
	iv.state = inviteClosed
	return prev, nil
}
