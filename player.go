// Player ratings
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
	"math"
	"sync"
)

// InitialRating is the rating assigned to every new player.
const InitialRating = 1500

// kFactor scales rating adjustments.
const kFactor = 32.0

// Player couples a username with an integer rating.  A player exists
// from the first login under its name until the server finalizes,
// regardless of how many sessions come and go.
type Player struct {
	mu     sync.Mutex
	name   string
	rating int
}

// Name returns the player's username.
func (p *Player) Name() string {
	return p.name
}

// Rating returns the player's current rating.
func (p *Player) Rating() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rating
}

// expect is the Elo expected score of a player rated r against an
// opponent rated q.
func expect(r, q int) float64 {
	return 1 / (1 + math.Pow(10, float64(q-r)/400))
}

// PostResult adjusts both ratings for one completed game.  Both locks
// are held for the whole update so the two adjustments are atomic
// with respect to readers; they are acquired in a fixed order to
// avoid deadlock with a concurrent posting of the reverse pairing.
func PostResult(p1, p2 *Player, res Result) {
	a, b := p1, p2
	if a.name > b.name {
		a, b = b, a
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a != b {
		b.mu.Lock()
		defer b.mu.Unlock()
	}

	var s1, s2 float64
	switch res {
	case Player1Won:
		s1, s2 = 1, 0
	case Player2Won:
		s1, s2 = 0, 1
	case Draw:
		s1, s2 = 0.5, 0.5
	}

	e1 := expect(p1.rating, p2.rating)
	e2 := expect(p2.rating, p1.rating)

	// int() truncates toward zero, so a loss and the matching win
	// shift by the same magnitude.
	p1.rating += int(kFactor * (s1 - e1))
	p2.rating += int(kFactor * (s2 - e2))
}
