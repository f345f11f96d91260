// Client sessions
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
	"io"
	"sync"
	"time"

	"go-jeux"
)

var (
	// ErrNotLoggedIn rejects any request before a successful LOGIN.
	ErrNotLoggedIn = errors.New("not logged in")
	// ErrLoggedIn rejects a second LOGIN on the same session.
	ErrLoggedIn = errors.New("already logged in")
	// ErrNoSuchUser rejects an invitation to an unknown username.
	ErrNoSuchUser = errors.New("no such user")
	// ErrSelfInvite rejects an invitation to oneself.
	ErrSelfInvite = errors.New("cannot invite yourself")
	// ErrNoFreeSlot signals an exhausted slot table on either side.
	ErrNoFreeSlot = errors.New("no free invitation slot")
	// ErrBadSlot rejects a request naming an empty slot.
	ErrBadSlot = errors.New("no invitation in slot")
	// ErrNotSource rejects a revocation by the invitation's target.
	ErrNotSource = errors.New("not the source of this invitation")
	// ErrNotTarget rejects an accept or decline by the source.
	ErrNotTarget = errors.New("not the target of this invitation")
	// ErrNoGame rejects a move or resignation before acceptance.
	ErrNoGame = errors.New("no game in progress")
)

// slotCount bounds the number of concurrent invitations per session;
// slot indices must fit the header's id byte.
const slotCount = 256

// Client is one connected session.  The slot table maps the id bytes
// of the wire protocol to invitations; a slot is occupied from the
// moment an invitation is made until it is closed and unlinked.
type Client struct {
	id   uint64
	conn io.ReadWriteCloser
	reg  *Registry

	sendMu sync.Mutex // serialises writes to conn

	mu     sync.Mutex // guards player and slots
	player *jeux.Player
	slots  [slotCount]*Invitation
}

// lockPair acquires both client locks in ascending id order.
func lockPair(a, b *Client) {
	if a.id > b.id {
		a, b = b, a
	}
	a.mu.Lock()
	b.mu.Lock()
}

func unlockPair(a, b *Client) {
	a.mu.Unlock()
	b.mu.Unlock()
}

// Player returns the player logged in on this session, or nil.
func (c *Client) Player() *jeux.Player {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.player
}

// send writes one packet to the session's own connection.  The
// session ends when this fails, which the service loop enforces.
func (c *Client) send(p *Packet) error {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	return Send(c.conn, p)
}

// push sends a packet on behalf of someone else's action.  A failure
// here is that session's problem, not the acting one's, so it is
// logged and dropped.
func (c *Client) push(p *Packet) {
	if err := c.send(p); err != nil {
		jeux.Debug.Printf("client %d: dropped %s push: %s", c.id, p.Type, err)
	}
}

// invitation fetches the invitation in a slot, or nil.
func (c *Client) invitation(slot uint8) *Invitation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.slots[slot]
}

// freeSlot returns the lowest unoccupied slot index.  The caller must
// hold c.mu.
func (c *Client) freeSlot() (uint8, bool) {
	for i := 0; i < slotCount; i++ {
		if c.slots[i] == nil {
			return uint8(i), true
		}
	}
	return 0, false
}

// MakeInvitation offers tgtRole to target and installs the resulting
// invitation in both slot tables.  It returns the source's slot; the
// target learns its own slot from the INVITED push.
func (c *Client) MakeInvitation(target *Client, tgtRole jeux.Role) (uint8, error) {
	if target == c {
		return 0, ErrSelfInvite
	}

	lockPair(c, target)
	if c.player == nil {
		unlockPair(c, target)
		return 0, ErrNotLoggedIn
	}
	if target.player == nil {
		// The target logged out between lookup and now.
		unlockPair(c, target)
		return 0, ErrNoSuchUser
	}
	srcSlot, ok := c.freeSlot()
	tgtSlot, ok2 := target.freeSlot()
	if !ok || !ok2 {
		unlockPair(c, target)
		return 0, ErrNoFreeSlot
	}
	iv := newInvitation(c, target, tgtRole)
	iv.srcSlot, iv.tgtSlot = srcSlot, tgtSlot
	iv.srcPlayer, iv.tgtPlayer = c.player, target.player
	c.slots[srcSlot] = iv
	target.slots[tgtSlot] = iv
	name := c.player.Name()
	unlockPair(c, target)

	target.push(&Packet{Type: INVITED, ID: tgtSlot, Role: tgtRole,
		Payload: []byte(name)})
	return srcSlot, nil
}

// RevokeInvitation withdraws a still-pending invitation made by this
// session.
func (c *Client) RevokeInvitation(slot uint8) error {
	iv := c.invitation(slot)
	if iv == nil {
		return ErrBadSlot
	}
	if iv.source != c {
		return ErrNotSource
	}
	if err := iv.closeOpen(); err != nil {
		return err
	}

	peer, _, peerSlot := iv.peerOf(c)
	peer.push(&Packet{Type: REVOKED, ID: peerSlot})
	iv.unlink()
	return nil
}

// DeclineInvitation refuses a still-pending invitation made to this
// session.
func (c *Client) DeclineInvitation(slot uint8) error {
	iv := c.invitation(slot)
	if iv == nil {
		return ErrBadSlot
	}
	if iv.target != c {
		return ErrNotTarget
	}
	if err := iv.closeOpen(); err != nil {
		return err
	}

	peer, _, peerSlot := iv.peerOf(c)
	peer.push(&Packet{Type: DECLINED, ID: peerSlot})
	iv.unlink()
	return nil
}

// AcceptInvitation starts the game attached to a pending invitation
// made to this session.  The initial board state is returned for the
// ACK if this session plays X, and travels with the ACCEPTED push if
// the source does.
func (c *Client) AcceptInvitation(slot uint8) ([]byte, error) {
	iv := c.invitation(slot)
	if iv == nil {
		return nil, ErrBadSlot
	}
	if iv.target != c {
		return nil, ErrNotTarget
	}
	game, err := iv.accept()
	if err != nil {
		return nil, err
	}

	state := []byte(game.State())
	var ack, accepted []byte
	if iv.tgtRole == jeux.RoleX {
		ack = state
	} else {
		accepted = state
	}
	iv.source.push(&Packet{Type: ACCEPTED, ID: iv.srcSlot, Payload: accepted})
	return ack, nil
}

// MakeMove applies a move in the game behind a slot and notifies the
// peer.  When the move terminates the game, the peer also receives
// ENDED and the result is settled; the caller follows its ACK with an
// ENDED of its own using the returned winner.
func (c *Client) MakeMove(slot uint8, payload []byte) (bool, jeux.Role, error) {
	iv := c.invitation(slot)
	if iv == nil {
		return false, jeux.NoRole, ErrBadSlot
	}
	game := iv.Game()
	if game == nil {
		return false, jeux.NoRole, ErrNoGame
	}

	m, err := jeux.ParseMove(iv.roleOf(c), string(payload))
	if err != nil {
		return false, jeux.NoRole, err
	}
	if err := game.ApplyMove(m); err != nil {
		return false, jeux.NoRole, err
	}

	peer, _, peerSlot := iv.peerOf(c)
	peer.push(&Packet{Type: MOVED, ID: peerSlot, Payload: []byte(game.State())})

	if !game.Over() {
		return false, jeux.NoRole, nil
	}
	winner := game.Winner()
	if _, err := iv.close(jeux.NoRole); err == nil {
		// This call won the race to close, so cleanup is ours.
		c.settle(iv)
		peer.push(&Packet{Type: ENDED, ID: peerSlot, Role: winner})
		iv.unlink()
	}
	return true, winner, nil
}

// ResignGame forfeits the game behind a slot on behalf of this
// session.  The peer receives ENDED; the caller follows its ACK with
// an ENDED of its own using the returned winner.
func (c *Client) ResignGame(slot uint8) (jeux.Role, error) {
	iv := c.invitation(slot)
	if iv == nil {
		return jeux.NoRole, ErrBadSlot
	}
	game := iv.Game()
	if game == nil {
		return jeux.NoRole, ErrNoGame
	}
	if _, err := iv.close(iv.roleOf(c)); err != nil {
		return jeux.NoRole, err
	}

	winner := game.Winner()
	c.settle(iv)
	peer, _, peerSlot := iv.peerOf(c)
	peer.push(&Packet{Type: ENDED, ID: peerSlot, Role: winner})
	iv.unlink()
	return winner, nil
}

// Logout ends the session's login: every pending invitation is
// revoked or declined and every running game is resigned, with the
// peers notified as if the client had done so explicitly.
func (c *Client) Logout() {
	c.mu.Lock()
	if c.player == nil {
		c.mu.Unlock()
		return
	}
	name := c.player.Name()
	c.player = nil
	var ivs []*Invitation
	for _, iv := range c.slots {
		if iv != nil {
			ivs = append(ivs, iv)
		}
	}
	c.mu.Unlock()
	c.reg.dropName(name, c)

	jeux.Debug.Printf("client %d: %s logged out", c.id, name)
	for _, iv := range ivs {
		prev, err := iv.close(iv.roleOf(c))
		if err != nil {
			// Someone else closed it first and owns the cleanup.
			continue
		}
		peer, _, peerSlot := iv.peerOf(c)
		switch prev {
		case inviteOpen:
			if iv.source == c {
				peer.push(&Packet{Type: REVOKED, ID: peerSlot})
			} else {
				peer.push(&Packet{Type: DECLINED, ID: peerSlot})
			}
		case inviteAccepted:
			c.settle(iv)
			peer.push(&Packet{Type: ENDED, ID: peerSlot,
				Role: iv.Game().Winner()})
		}
		iv.unlink()
	}
}

// settle posts the rating adjustment for a finished game and hands a
// record of it to the archive.
func (c *Client) settle(iv *Invitation) {
	game := iv.Game()
	winner := game.Winner()

	var res jeux.Result
	switch winner {
	case iv.srcRole:
		res = jeux.Player1Won
	case iv.tgtRole:
		res = jeux.Player2Won
	default:
		res = jeux.Draw
	}
	jeux.PostResult(iv.srcPlayer, iv.tgtPlayer, res)

	rec := jeux.GameRecord{
		Winner:   winner,
		Moves:    game.Moves(),
		Finished: time.Now(),
	}
	if iv.srcRole == jeux.RoleX {
		rec.X, rec.O = iv.srcPlayer.Name(), iv.tgtPlayer.Name()
	} else {
		rec.X, rec.O = iv.tgtPlayer.Name(), iv.srcPlayer.Name()
	}
	c.reg.record(rec)
}
