// Database management
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

// Package db archives completed games in a SQLite database.  The SQL
// statements live in embedded .sql files next to this one: create-*
// files are executed at startup, select-* files are prepared on the
// read connection, everything else on the write connection.
package db

import (
	"context"
	"database/sql"
	"embed"
	"io/fs"
	"path"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"go-jeux"
	"go-jeux/conf"
)

//go:embed *.sql
var sql_dir embed.FS

type db struct {
	conf *conf.Conf

	// The database connections
	read  *sql.DB
	write *sql.DB

	// QUERIES are the statements handled by READ, and COMMANDS are
	// the statements handled by WRITE.
	queries  map[string]*sql.Stmt
	commands map[string]*sql.Stmt

	done chan struct{}
}

func (*db) String() string { return "Database Manager" }

// RecordGame archives one finished game.
func (db *db) RecordGame(ctx context.Context, rec jeux.GameRecord) error {
	_, err := db.commands["insert-game"].ExecContext(ctx,
		rec.X, rec.O, int(rec.Winner), rec.Moves, rec.Finished)
	return err
}

// RecentGames returns up to n archived games, most recent first.
func (db *db) RecentGames(ctx context.Context, n int) ([]jeux.GameRecord, error) {
	res, err := db.queries["select-recent-games"].QueryContext(ctx, n)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	var games []jeux.GameRecord
	for res.Next() {
		var (
			rec    jeux.GameRecord
			winner int
		)
		err = res.Scan(&rec.X, &rec.O, &winner, &rec.Moves, &rec.Finished)
		if err != nil {
			return nil, err
		}
		rec.Winner = jeux.Role(winner)
		games = append(games, rec)
	}
	return games, res.Err()
}

// Start runs periodic maintenance until shutdown.
func (db *db) Start() error {
	tick := time.NewTicker(24 * time.Hour)
	defer tick.Stop()
	for {
		select {
		case <-tick.C:
			// https://www.sqlite.org/pragma.html#pragma_optimize
			if _, err := db.write.Exec("PRAGMA optimize;"); err != nil {
				db.conf.Log.Print(err)
			}
		case <-db.done:
			return nil
		}
	}
}

func (db *db) Shutdown() {
	close(db.done)

	// https://www.sqlite.org/pragma.html#pragma_optimize
	if _, err := db.write.Exec("PRAGMA optimize;"); err != nil {
		db.conf.Log.Print(err)
	}
	if err := db.write.Close(); err != nil {
		db.conf.Log.Print(err)
	}
	if err := db.read.Close(); err != nil {
		db.conf.Log.Print(err)
	}
}

// Initialise the database and register the archive manager
func Prepare(c *conf.Conf) {
	dsn := c.Database
	if dsn == ":memory:" {
		// Separate read and write handles must still observe one
		// in-memory database.
		dsn = "file::memory:?cache=shared"
	}

	read, err := sql.Open("sqlite3", dsn)
	if err != nil {
		c.Log.Fatal(err, ": ", c.Database)
	}
	read.SetConnMaxLifetime(0)
	read.SetMaxIdleConns(1)

	write, err := sql.Open("sqlite3", dsn)
	if err != nil {
		c.Log.Fatal(err, ": ", c.Database)
	}
	write.SetConnMaxLifetime(0)
	write.SetMaxIdleConns(1)
	write.SetMaxOpenConns(1)

	db := &db{
		conf:     c,
		queries:  make(map[string]*sql.Stmt),
		commands: make(map[string]*sql.Stmt),
		write:    write,
		read:     read,
		done:     make(chan struct{}),
	}

	for _, pragma := range []string{
		// https://www.sqlite.org/pragma.html#pragma_journal_mode
		"journal_mode = WAL",
		// https://www.sqlite.org/pragma.html#pragma_synchronous
		"synchronous = normal",
		// https://www.sqlite.org/pragma.html#pragma_temp_store
		"temp_store = memory",
	} {
		jeux.Debug.Printf("Run PRAGMA %v", pragma)
		_, err = db.write.Exec("PRAGMA " + pragma + ";")
		if err != nil {
			c.Log.Fatal(err)
		}
	}

	entries, err := sql_dir.ReadDir(".")
	if err != nil {
		c.Log.Fatal(err)
	}
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}

		base := path.Base(entry.Name())
		data, err := fs.ReadFile(sql_dir, entry.Name())
		if err != nil {
			c.Log.Fatal(err)
		}

		if strings.HasPrefix(base, "create-") {
			_, err = db.write.Exec(string(data))
			jeux.Debug.Printf("Executed query %v", base)
		} else {
			query := strings.TrimSuffix(base, ".sql")
			if strings.HasPrefix(query, "select-") {
				db.queries[query], err = db.read.Prepare(string(data))
				jeux.Debug.Printf("Registered query %v", query)
			} else {
				db.commands[query], err = db.write.Prepare(string(data))
				jeux.Debug.Printf("Registered command %v", query)
			}
		}
		if err != nil {
			c.Log.Fatal(entry.Name(), ": ", err)
		}
	}

	c.Register(conf.Recorder(db))
}
