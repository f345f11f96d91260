// Configuration Management
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

package conf

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-jeux"

	"golang.org/x/sync/errgroup"
)

// A Manager is a subsystem with a service lifetime.  Start blocks
// until the manager stops serving and returns nil on an orderly stop.
type Manager interface {
	fmt.Stringer
	Start() error
	Shutdown()
}

// A Recorder archives completed games.
type Recorder interface {
	Manager

	RecordGame(context.Context, jeux.GameRecord) error
	RecentGames(context.Context, int) ([]jeux.GameRecord, error)
}

// Register adds a manager to the system.  Managers are started in
// registration order and shut down in reverse.
func (c *Conf) Register(m Manager) {
	if c.run {
		panic(fmt.Sprintf("Late register: %#v", m))
	}

	if r, ok := m.(Recorder); ok {
		c.DB = r
	}

	c.man = append(c.man, m)
}

// Start runs all registered managers and blocks until a termination
// signal arrives or a manager fails.  SIGHUP requests the same
// orderly shutdown as an interrupt.
func (c *Conf) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	for _, m := range c.man {
		c.Debug.Printf("Starting %s", m)
		g.Go(m.Start)
	}
	c.run = true

	// A manager failure cancels gctx just like a signal does, so a
	// single wait covers both.
	<-gctx.Done()
	stop()

	c.Debug.Println("Waiting for managers to shut down...")
	for i := len(c.man) - 1; i >= 0; i-- {
		m := c.man[i]
		c.Debug.Printf("Shutting %s down", m)
		m.Shutdown()
	}
	c.Debug.Println("Shutting down")
	return g.Wait()
}
