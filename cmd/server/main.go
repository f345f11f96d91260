// Entry point
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

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"go-jeux/conf"
	"go-jeux/db"
	"go-jeux/proto"
	"go-jeux/web"
)

// Default file name for the configuration file
const defconf = "jeux.toml"

func main() {
	var (
		confFile = flag.String("conf", defconf, "Name of configuration file")
		dumpConf = flag.Bool("dump-config", false, "Dump default configuration")
		port     = flag.Uint("p", 0, "Port to accept connections on (overrides the configuration)")
		debug    = flag.Bool("debug", false, "Enable debug logging")
	)

	flag.Parse()
	if flag.NArg() != 0 {
		fmt.Fprintf(flag.CommandLine.Output(),
			"Too many arguments passed to %s.\nUsage:\n",
			os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Load the configuration from disk (if available)
	config, err := conf.Open(*confFile)
	if err != nil {
		if !os.IsNotExist(err) || *confFile != defconf {
			log.Fatal(err)
		}
		config = conf.Default()
	}
	if *debug {
		config.EnableDebug()
	}
	if *port != 0 {
		config.TCPPort = uint16(*port)
	}
	if config.TCPPort == 0 {
		log.Fatal("No TCP port configured, pass -p or set server.port")
	}
	config.Debug.Println("Debug logging has been enabled")

	// Dump the configuration onto the disk if requested
	if *dumpConf {
		err = config.Dump(os.Stdout)
		if err != nil {
			log.Fatalln("Failed to dump default configuration:", err)
		}
		os.Exit(0)
	}

	// Enable the game archive
	db.Prepare(config)

	// Allow TCP connections
	reg := proto.NewRegistry(config)
	proto.Prepare(config, reg)

	// Enable the web interface
	web.Prepare(config, reg)

	// Launch the server
	if err := config.Start(); err != nil {
		log.Fatal(err)
	}
}
