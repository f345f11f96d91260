// Common types and constants
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
	"fmt"
	"io"
	"log"
	"time"
)

// Debug is the shared debug logger.  It discards everything unless
// debug output has been requested (see conf).
var Debug = log.New(io.Discard, "[debug] ", log.Ltime|log.Lshortfile|log.Lmicroseconds)

// Role identifies one of the two player positions in a game.  The
// numeric values are also the wire representation: RoleX moves first.
type Role uint8

const (
	NoRole Role = iota
	RoleX
	RoleO
)

func (r Role) String() string {
	switch r {
	case NoRole:
		return "none"
	case RoleX:
		return "X"
	case RoleO:
		return "O"
	default:
		panic(fmt.Sprintf("illegal role: %d", uint8(r)))
	}
}

// Opponent returns the complementary role.  The opponent of NoRole is
// NoRole.
func (r Role) Opponent() Role {
	switch r {
	case RoleX:
		return RoleO
	case RoleO:
		return RoleX
	default:
		return NoRole
	}
}

// Result describes the outcome of a completed game between two
// players, from the perspective of the argument order of PostResult.
type Result uint8

const (
	Draw Result = iota
	Player1Won
	Player2Won
)

func (r Result) String() string {
	switch r {
	case Draw:
		return "draw"
	case Player1Won:
		return "player 1 won"
	case Player2Won:
		return "player 2 won"
	default:
		panic(fmt.Sprintf("illegal result: %d", uint8(r)))
	}
}

// GameRecord is the archival record of a finished game.
type GameRecord struct {
	X        string    // username of the player of X
	O        string    // username of the player of O
	Winner   Role      // NoRole for a draw
	Moves    int       // number of moves applied before termination
	Finished time.Time // completion timestamp
}
