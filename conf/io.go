// Configuration loading and dumping
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
	"io"
	"os"

	"go-jeux"

	"github.com/BurntSushi/toml"
)

// Parse a configuration from R
func load(r io.Reader) (*Conf, error) {
	// Load configuration data
	var data conf
	_, err := toml.NewDecoder(r).Decode(&data)
	if err != nil {
		return nil, err
	}

	// Create a configuration object
	c := defaultConfig
	c.Players = jeux.NewPlayers()

	// Apply configuration requests
	if data.Debug {
		c.EnableDebug()
	}
	// A config file that leaves a port out keeps the default.
	if data.Server.Port != 0 {
		c.TCPPort = uint16(data.Server.Port)
	}
	c.MaxClients = data.Server.MaxClients
	c.WebSocket = data.Server.Websocket
	c.Database = data.Database.File
	c.WebInterface = data.Web.Enabled
	if data.Web.Port != 0 {
		c.WebPort = uint16(data.Web.Port)
	}

	return &c, nil
}

// Open a configuration file and return it
func Open(name string) (*Conf, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return load(file)
}

// Return a reference to the default configuration
func Default() *Conf {
	conf := &defaultConfig
	if conf.Players == nil {
		conf.Players = jeux.NewPlayers()
	}
	return conf
}

// EnableDebug directs the debug loggers to standard error
func (c *Conf) EnableDebug() {
	c.Debug = jeux.Debug
	jeux.Debug.SetOutput(os.Stderr)
}

// Serialise the configuration into a writer
func (c *Conf) Dump(wr io.Writer) error {
	var data conf

	data.Server.Port = uint(c.TCPPort)
	data.Server.MaxClients = c.MaxClients
	data.Server.Websocket = c.WebSocket
	data.Database.File = c.Database
	data.Web.Enabled = c.WebInterface
	data.Web.Port = uint(c.WebPort)

	return toml.NewEncoder(wr).Encode(data)
}
