// Player registry
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

import "sync"

// Players maps usernames to their Player records.  Names are
// case-sensitive.  Records accumulate for the lifetime of the
// process; ratings outlive the sessions that earned them.
type Players struct {
	mu sync.Mutex
	m  map[string]*Player
}

// NewPlayers returns an empty player registry.
func NewPlayers() *Players {
	return &Players{m: make(map[string]*Player)}
}

// Register returns the player registered under name, creating it
// with the initial rating on first use.
func (ps *Players) Register(name string) *Player {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	p, ok := ps.m[name]
	if !ok {
		p = &Player{name: name, rating: InitialRating}
		ps.m[name] = p
	}
	return p
}

// Lookup returns the player registered under name, or nil.
func (ps *Players) Lookup(name string) *Player {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.m[name]
}
