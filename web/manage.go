// Web interface manager
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

package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"go-jeux"
	"go-jeux/conf"
	"go-jeux/proto"
)

type web struct {
	conf *conf.Conf
	reg  *proto.Registry
	srv  *http.Server
}

func (*web) String() string { return "Web Server" }

// index serves the statistics page: who is logged in and what games
// finished recently.
func (s *web) index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	var games []jeux.GameRecord
	if s.conf.DB != nil {
		var err error
		games, err = s.conf.DB.RecentGames(r.Context(), 50)
		if err != nil {
			s.conf.Log.Printf("failed to query recent games: %s", err)
		}
	}

	data := struct {
		Players []*jeux.Player
		Games   []jeux.GameRecord
	}{s.reg.Players(), games}
	if err := tmpl.ExecuteTemplate(w, "stats.tmpl", data); err != nil {
		s.conf.Log.Print(err)
	}
}

func (s *web) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.index)
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "User-agent: *\nDisallow: /")
	})

	// Install the WebSocket handler
	if s.conf.WebSocket {
		s.conf.Debug.Print("Accepting websocket connections on /socket")
		mux.HandleFunc("/socket", upgrader(s.reg))
	}

	// Parse templates
	tmpl = template.Must(template.New("").Funcs(funcs).ParseFS(html, "*.tmpl"))

	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.conf.WebPort),
		Handler: mux,
	}
	s.conf.Debug.Printf("Listening via HTTP on %s", s.srv.Addr)
	err := s.srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *web) Shutdown() {
	if s.srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(ctx); err != nil {
		s.conf.Log.Print(err)
	}
}

func Prepare(conf *conf.Conf, reg *proto.Registry) {
	if !conf.WebInterface {
		return
	}

	conf.Register(&web{conf: conf, reg: reg})
}
