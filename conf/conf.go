// Configuration Specification and Management
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
	"log"

	"go-jeux"
)

// Internal representation
type conf struct {
	Debug  bool `toml:"debug"`
	Server struct {
		Port       uint `toml:"port"`
		MaxClients uint `toml:"max-clients"`
		Websocket  bool `toml:"websocket"`
	} `toml:"server"`
	Database struct {
		File string `toml:"file"`
	} `toml:"database"`
	Web struct {
		Enabled bool `toml:"enabled"`
		Port    uint `toml:"port"`
	} `toml:"web"`
}

// Public configuration
type Conf struct {
	Log   *log.Logger
	Debug *log.Logger

	// Server configuration
	TCPPort    uint16 // Port for accepting connections
	MaxClients uint   // Maximal number of concurrent sessions
	WebSocket  bool   // Are WebSocket connections enabled

	// Database configuration
	Database string // File to store the game archive in

	// Website configuration
	WebInterface bool   // Has the web interface been enabled?
	WebPort      uint16 // Port that the web server listens on

	// Shared state
	Players *jeux.Players // Rating records, by username
	DB      Recorder      // Game archive, if any

	// Internal state
	man []Manager // List of system managers
	run bool      // Running flag
}

// Configuration object used by default
var defaultConfig = Conf{
	Log:   log.Default(),
	Debug: log.New(io.Discard, "", 0),

	// Server configuration
	TCPPort:    4000,
	MaxClients: 64,
	WebSocket:  true,

	// Database configuration
	Database: ":memory:",

	// Website configuration
	WebInterface: true,
	WebPort:      8080,
}
