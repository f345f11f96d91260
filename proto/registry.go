// Client registry
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
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"go-jeux"
	"go-jeux/conf"
)

var (
	// ErrFull rejects connections beyond the session capacity.
	ErrFull = errors.New("server is full")
	// ErrNameTaken rejects a login under a name already in use.
	ErrNameTaken = errors.New("username already logged in")
	// ErrEmptyName rejects a login without a username.
	ErrEmptyName = errors.New("empty username")
)

// Registry tracks every connected session.  It hands out client ids,
// enforces the session capacity, keeps logins unique and lets a
// shutdown wait for the session count to drain to zero.
type Registry struct {
	conf *conf.Conf

	mu      sync.Mutex
	empty   *sync.Cond
	clients map[uint64]*Client
	byName  map[string]*Client
	nextID  uint64
}

func NewRegistry(c *conf.Conf) *Registry {
	r := &Registry{
		conf:    c,
		clients: make(map[uint64]*Client),
		byName:  make(map[string]*Client),
	}
	r.empty = sync.NewCond(&r.mu)
	return r
}

// register admits a connection as a new session.
func (r *Registry) register(conn io.ReadWriteCloser) (*Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if max := r.conf.MaxClients; max > 0 && uint(len(r.clients)) >= max {
		return nil, ErrFull
	}
	r.nextID++
	c := &Client{id: r.nextID, conn: conn, reg: r}
	r.clients[c.id] = c
	return c, nil
}

// unregister retires a session.  Whoever empties the registry wakes
// every WaitEmpty caller.
func (r *Registry) unregister(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.clients, c.id)
	if len(r.clients) == 0 {
		r.empty.Broadcast()
	}
}

// Login binds a username to a session.  The uniqueness check and the
// binding are one critical section, so two sessions racing for a name
// cannot both win.
func (r *Registry) Login(c *Client, name string) error {
	if name == "" {
		return ErrEmptyName
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byName[name]; taken {
		return ErrNameTaken
	}
	c.mu.Lock()
	if c.player != nil {
		c.mu.Unlock()
		return ErrLoggedIn
	}
	c.player = r.conf.Players.Register(name)
	c.mu.Unlock()
	r.byName[name] = c
	return nil
}

// dropName releases a username binding after a logout.
func (r *Registry) dropName(name string, c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byName[name] == c {
		delete(r.byName, name)
	}
}

// Lookup finds the session logged in under name, or nil.
func (r *Registry) Lookup(name string) *Client {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byName[name]
}

// Players snapshots the players of all logged-in sessions.
func (r *Registry) Players() []*jeux.Player {
	r.mu.Lock()
	ps := make([]*jeux.Player, 0, len(r.byName))
	for _, c := range r.byName {
		ps = append(ps, c.Player())
	}
	r.mu.Unlock()

	sort.Slice(ps, func(i, j int) bool {
		return ps[i].Name() < ps[j].Name()
	})
	return ps
}

// Users renders the USERS payload: one tab-separated name and rating
// per logged-in player, sorted by name.
func (r *Registry) Users() []byte {
	var buf bytes.Buffer
	for _, p := range r.Players() {
		fmt.Fprintf(&buf, "%s\t%d\n", p.Name(), p.Rating())
	}
	return buf.Bytes()
}

// record archives a finished game, if an archive is configured.
func (r *Registry) record(rec jeux.GameRecord) {
	db := r.conf.DB
	if db == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.RecordGame(ctx, rec); err != nil {
		r.conf.Log.Printf("failed to archive game: %s", err)
	}
}

// WaitEmpty blocks until no sessions remain.  All concurrent callers
// are released together.
func (r *Registry) WaitEmpty() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for len(r.clients) != 0 {
		r.empty.Wait()
	}
}

// Shutdown half-closes every live connection so each service loop
// observes a clean EOF and winds its session down.  Connections that
// cannot shut down just their read side are closed outright.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.clients {
		if cr, ok := c.conn.(interface{ CloseRead() error }); ok {
			if err := cr.CloseRead(); err == nil {
				continue
			}
		}
		c.conn.Close()
	}
}
