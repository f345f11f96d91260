// Game state
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

package jeux

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrNotYourTurn is returned for a move by the role not to move.
	ErrNotYourTurn = errors.New("not your turn")
	// ErrCellTaken is returned for a move to an occupied cell.
	ErrCellTaken = errors.New("cell already occupied")
	// ErrGameOver is returned for any action on a terminated game.
	ErrGameOver = errors.New("game is over")
	// ErrBadMove is returned when a move string cannot be parsed.
	ErrBadMove = errors.New("malformed move")
)

// Move is a validated move: a role placing its mark on a cell.
type Move struct {
	Role Role
	Cell int // 1 to 9
}

// String unparses a move back into its single-digit wire form.
func (m Move) String() string {
	return string(rune('0' + m.Cell))
}

// Game is the state of one match between two roles.  All methods are
// safe for concurrent use.
type Game struct {
	mu         sync.Mutex
	board      Board
	toMove     Role
	terminated bool
	winner     Role
	moves      int
}

// NewGame returns a fresh game.  X always moves first.
func NewGame() *Game {
	return &Game{toMove: RoleX}
}

// ParseMove interprets a payload as a move by the given role.  Only a
// single character between '1' and '9' is accepted.  The role check
// is deferred to ApplyMove, so a syntactically valid move by the
// wrong role parses fine but fails to apply.
func ParseMove(role Role, payload string) (Move, error) {
	if len(payload) != 1 || payload[0] < '1' || payload[0] > '9' {
		return Move{}, fmt.Errorf("%w: %q", ErrBadMove, payload)
	}
	return Move{Role: role, Cell: int(payload[0] - '0')}, nil
}

// ApplyMove validates and applies a move, flips the turn and checks
// for termination.
func (g *Game) ApplyMove(m Move) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.terminated {
		return ErrGameOver
	}
	if m.Role != g.toMove {
		return ErrNotYourTurn
	}
	if !g.board.Put(m.Cell, m.Role) {
		return fmt.Errorf("%w: %d", ErrCellTaken, m.Cell)
	}
	g.moves++

	if w := g.board.Winner(); w != NoRole {
		g.terminated = true
		g.winner = w
		g.toMove = NoRole
	} else if g.board.Full() {
		g.terminated = true
		g.winner = NoRole
		g.toMove = NoRole
	} else {
		g.toMove = g.toMove.Opponent()
	}
	return nil
}

// Resign terminates the game in favour of the opponent of the
// resigning role.
func (g *Game) Resign(r Role) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.terminated {
		return ErrGameOver
	}
	g.terminated = true
	g.winner = r.Opponent()
	g.toMove = NoRole
	return nil
}

// Over reports whether the game has terminated.
func (g *Game) Over() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.terminated
}

// Winner returns the winning role of a terminated game, NoRole for a
// draw or a game still in progress.
func (g *Game) Winner() Role {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.winner
}

// Moves returns the number of moves applied so far.
func (g *Game) Moves() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.moves
}

// State renders the board followed by a turn indicator, or just the
// board once the game has terminated.
func (g *Game) State() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := g.board.String()
	if !g.terminated {
		s += g.toMove.String() + " to move"
	}
	return s
}
