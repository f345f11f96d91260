// TCP interface
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
	"fmt"
	"net"
	"strconv"
	"strings"

	"go-jeux/conf"
)

type Listener struct {
	conf *conf.Conf
	reg  *Registry
	conn net.Listener
	port uint16
}

func (*Listener) String() string {
	return "TCP Handler"
}

func NewListener(conf *conf.Conf, reg *Registry) *Listener {
	return &Listener{conf: conf, reg: reg, port: conf.TCPPort}
}

// Initialise the listener, unless it has already been initialised
func (t *Listener) init() error {
	if t.conn != nil {
		return nil
	}

	var err error
	tcp := fmt.Sprintf(":%d", t.port)
	t.conn, err = net.Listen("tcp", tcp)
	if err != nil {
		return err
	}
	if t.port == 0 {
		// Extract the port number the operating system bound the
		// listener to, since port 0 is redirected to a "random"
		// open port
		addr := t.conn.Addr().String()
		i := strings.LastIndexByte(addr, ':')
		if i == -1 || i+1 == len(addr) {
			return fmt.Errorf("invalid listener address %q", addr)
		}
		port, err := strconv.ParseUint(addr[i+1:], 10, 16)
		if err != nil {
			return err
		}
		t.port = uint16(port)
	}
	return nil
}

func (t *Listener) Start() error {
	if err := t.init(); err != nil {
		return err
	}

	t.conf.Debug.Printf("Accepting connections on :%d", t.port)
	for {
		conn, err := t.conn.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}
		go Serve(t.reg, conn)
	}
}

func (t *Listener) Port() uint16 {
	return t.port
}

// Shutdown stops accepting, asks every live session to wind down and
// waits until the last one has.
func (t *Listener) Shutdown() {
	if t.conn != nil {
		if err := t.conn.Close(); err != nil {
			t.conf.Log.Print(err)
		}
	}
	t.reg.Shutdown()
	t.reg.WaitEmpty()
}

func Prepare(conf *conf.Conf, reg *Registry) {
	conf.Register(NewListener(conf, reg))
}
