// Request dispatch
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
	"fmt"
	"io"

	"go-jeux"
)

// Serve runs the session behind conn until the peer disconnects, the
// connection fails or the registry refuses the session.  It is the
// whole lifetime of one client: admission, request loop, logout.
func Serve(reg *Registry, conn io.ReadWriteCloser) {
	c, err := reg.register(conn)
	if err != nil {
		jeux.Debug.Printf("rejected connection: %s", err)
		conn.Close()
		return
	}
	defer conn.Close()
	defer reg.unregister(c)
	defer c.Logout()

	jeux.Debug.Printf("client %d: connected", c.id)
	for {
		p, err := Recv(conn)
		if err != nil {
			if err != io.EOF {
				jeux.Debug.Printf("client %d: %s", c.id, err)
			}
			return
		}
		if !c.handle(p) {
			return
		}
	}
}

// handle answers one request.  Any rejected request is answered with
// a NACK echoing its id.  It reports whether the session can go on,
// which it cannot once a write to its own socket has failed.
func (c *Client) handle(p *Packet) bool {
	ack, post, err := c.dispatch(p)
	if err != nil {
		jeux.Debug.Printf("client %d: %s rejected: %s", c.id, p.Type, err)
		return c.send(&Packet{Type: NACK, ID: p.ID}) == nil
	}
	if c.send(ack) != nil {
		return false
	}
	if post != nil && c.send(post) != nil {
		return false
	}
	return true
}

// dispatch executes one request and produces the ACK for it, plus a
// trailing packet when the request ended a game.  LOGIN is the only
// request allowed before a login, and the only one not allowed after.
func (c *Client) dispatch(p *Packet) (ack, post *Packet, err error) {
	if p.Type == LOGIN {
		if err := c.reg.Login(c, string(p.Payload)); err != nil {
			return nil, nil, err
		}
		return &Packet{Type: ACK}, nil, nil
	}
	if c.Player() == nil {
		return nil, nil, ErrNotLoggedIn
	}

	switch p.Type {
	case USERS:
		return &Packet{Type: ACK, Payload: c.reg.Users()}, nil, nil

	case INVITE:
		target := c.reg.Lookup(string(p.Payload))
		if target == nil {
			return nil, nil, ErrNoSuchUser
		}
		// The role byte names the role offered to the target.
		tgtRole := jeux.RoleO
		if p.Role == jeux.RoleX {
			tgtRole = jeux.RoleX
		}
		slot, err := c.MakeInvitation(target, tgtRole)
		if err != nil {
			return nil, nil, err
		}
		return &Packet{Type: ACK, ID: slot}, nil, nil

	case REVOKE:
		if err := c.RevokeInvitation(p.ID); err != nil {
			return nil, nil, err
		}
		return &Packet{Type: ACK, ID: p.ID}, nil, nil

	case DECLINE:
		if err := c.DeclineInvitation(p.ID); err != nil {
			return nil, nil, err
		}
		return &Packet{Type: ACK, ID: p.ID}, nil, nil

	case ACCEPT:
		state, err := c.AcceptInvitation(p.ID)
		if err != nil {
			return nil, nil, err
		}
		return &Packet{Type: ACK, ID: p.ID, Payload: state}, nil, nil

	case MOVE:
		over, winner, err := c.MakeMove(p.ID, p.Payload)
		if err != nil {
			return nil, nil, err
		}
		ack := &Packet{Type: ACK, ID: p.ID}
		if over {
			post = &Packet{Type: ENDED, ID: p.ID, Role: winner}
		}
		return ack, post, nil

	case RESIGN:
		winner, err := c.ResignGame(p.ID)
		if err != nil {
			return nil, nil, err
		}
		return &Packet{Type: ACK, ID: p.ID},
			&Packet{Type: ENDED, ID: p.ID, Role: winner}, nil

	default:
		return nil, nil, fmt.Errorf("unexpected packet type %s", p.Type)
	}
}
