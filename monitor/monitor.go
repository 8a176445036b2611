// Copyright 2022 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package monitor serves driver diagnostics and a remote control
// surface over HTTP.
package monitor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/rich1111/pru485"
)

// History lists recent transfer records; *recording.Writer satisfies
// it.
type History interface {
	RecentTransfers(n int) ([]pru485.TransferRecord, error)
	RecentCommands(n int) ([]pru485.CommandRecord, error)
}

// A Server exposes one device over HTTP. Requests that need the device
// open their own short-lived session, so they contend for the device
// lock like any other client.
type Server struct {
	dev     *pru485.Device
	history History
	router  *mux.Router
}

// New builds the server around dev. history may be nil, which disables
// the record endpoints.
func New(dev *pru485.Device, history History) *Server {
	s := &Server{dev: dev, history: history}
	r := mux.NewRouter()
	r.HandleFunc("/api/status", s.status).Methods("GET")
	r.HandleFunc("/api/send", s.send).Methods("POST")
	r.HandleFunc("/api/receive", s.receive).Methods("POST")
	r.HandleFunc("/api/command/{name}", s.command).Methods("POST")
	r.HandleFunc("/api/transfers", s.transfers).Methods("GET")
	r.HandleFunc("/api/commands", s.commands).Methods("GET")
	s.router = r
	return s
}

// Handler returns the HTTP handler, for embedding and for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe blocks serving on addr.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	st, err := s.dev.State()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, st)
}

func (s *Server) send(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	sess, err := s.dev.Open()
	if err != nil {
		writeError(w, err)
		return
	}
	defer sess.Close()
	n, err := sess.Send(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]int{"sent": n})
}

func (s *Server) receive(w http.ResponseWriter, r *http.Request) {
	sess, err := s.dev.Open()
	if err != nil {
		writeError(w, err)
		return
	}
	defer sess.Close()
	payload, err := sess.Receive(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Write(payload)
}

func (s *Server) command(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	cmd, ok := commandByName(name)
	if !ok {
		http.Error(w, "unknown command "+name, http.StatusNotFound)
		return
	}
	var arg uint64
	if v := r.URL.Query().Get("arg"); v != "" {
		var err error
		arg, err = strconv.ParseUint(v, 0, 32)
		if err != nil {
			http.Error(w, "bad arg: "+err.Error(), http.StatusBadRequest)
			return
		}
	}
	sess, err := s.dev.Open()
	if err != nil {
		writeError(w, err)
		return
	}
	defer sess.Close()
	if err := sess.Control(cmd, uint32(arg)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) transfers(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		http.Error(w, "recording not enabled", http.StatusNotFound)
		return
	}
	rows, err := s.history.RecentTransfers(limit(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, rows)
}

func (s *Server) commands(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		http.Error(w, "recording not enabled", http.StatusNotFound)
		return
	}
	rows, err := s.history.RecentCommands(limit(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, rows)
}

func limit(r *http.Request) int {
	if v := r.URL.Query().Get("n"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return 50
}

func commandByName(name string) (pru485.Command, bool) {
	for c := pru485.CmdCleanMemory; c <= pru485.CmdSetTimeout; c++ {
		if c.String() == name {
			return c, true
		}
	}
	return 0, false
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// writeError maps driver sentinels onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, pru485.ErrBusy):
		code = http.StatusConflict
	case errors.Is(err, pru485.ErrInvalidArgument),
		errors.Is(err, pru485.ErrInvalidRate):
		code = http.StatusBadRequest
	case errors.Is(err, pru485.ErrInvalidCommand):
		code = http.StatusNotFound
	case errors.Is(err, pru485.ErrNoMessage):
		code = http.StatusNotFound
	case errors.Is(err, pru485.ErrTimeout):
		code = http.StatusGatewayTimeout
	case errors.Is(err, pru485.ErrUnavailable), errors.Is(err, pru485.ErrFault):
		code = http.StatusServiceUnavailable
	}
	http.Error(w, err.Error(), code)
}
