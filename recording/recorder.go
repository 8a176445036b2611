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

// Package recording persists transfer and command records to SQLite
// for offline diagnostics.
package recording

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"

	"github.com/rich1111/pru485"
)

const defaultBatch = 64

// A Writer buffers records and flushes them to SQLite in batches. It
// implements pru485.Recorder and is safe for concurrent use.
type Writer struct {
	db   *sql.DB
	path string

	mu        sync.Mutex
	transfers []pru485.TransferRecord
	commands  []pru485.CommandRecord
	batch     int
}

// New opens, creating if needed, the database at path. An empty path
// picks a fresh pru485_trace_<id>.sqlite3 in the working directory.
// Buffered records are flushed when a batch fills, on Close, and at
// process exit.
func New(path string) (*Writer, error) {
	if path == "" {
		path = fmt.Sprintf("pru485_trace_%s.sqlite3", xid.New().String())
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	w := &Writer{db: db, path: path, batch: defaultBatch}
	if err := w.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init %s: %w", path, err)
	}
	atexit.Register(func() { w.Flush() })
	return w, nil
}

func (w *Writer) createTables() error {
	_, err := w.db.Exec(`
CREATE TABLE IF NOT EXISTS transfers (
	id      INTEGER PRIMARY KEY AUTOINCREMENT,
	session TEXT,
	dir     TEXT,
	bytes   INTEGER,
	status  INTEGER,
	took_us INTEGER,
	err     TEXT,
	at      TIMESTAMP
);
CREATE TABLE IF NOT EXISTS commands (
	id      INTEGER PRIMARY KEY AUTOINCREMENT,
	session TEXT,
	command TEXT,
	arg     INTEGER,
	err     TEXT,
	at      TIMESTAMP
);`)
	return err
}

// Path returns the database file backing the writer.
func (w *Writer) Path() string {
	return w.path
}

// Transfer implements pru485.Recorder.
func (w *Writer) Transfer(r pru485.TransferRecord) {
	w.mu.Lock()
	w.transfers = append(w.transfers, r)
	full := len(w.transfers) >= w.batch
	w.mu.Unlock()
	if full {
		w.Flush()
	}
}

// Command implements pru485.Recorder.
func (w *Writer) Command(r pru485.CommandRecord) {
	w.mu.Lock()
	w.commands = append(w.commands, r)
	full := len(w.commands) >= w.batch
	w.mu.Unlock()
	if full {
		w.Flush()
	}
}

// Flush writes all buffered records in one transaction.
func (w *Writer) Flush() error {
	w.mu.Lock()
	transfers := w.transfers
	commands := w.commands
	w.transfers = nil
	w.commands = nil
	w.mu.Unlock()
	if len(transfers) == 0 && len(commands) == 0 {
		return nil
	}
	tx, err := w.db.Begin()
	if err != nil {
		return err
	}
	for _, r := range transfers {
		_, err := tx.Exec(
			`INSERT INTO transfers (session, dir, bytes, status, took_us, err, at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			r.Session, r.Dir, r.Bytes, r.Status, r.Took.Microseconds(), r.Err, r.At)
		if err != nil {
			tx.Rollback()
			return err
		}
	}
	for _, r := range commands {
		_, err := tx.Exec(
			`INSERT INTO commands (session, command, arg, err, at)
			 VALUES (?, ?, ?, ?, ?)`,
			r.Session, r.Command, r.Arg, r.Err, r.At)
		if err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Close flushes and closes the database.
func (w *Writer) Close() error {
	flushErr := w.Flush()
	if err := w.db.Close(); err != nil {
		return err
	}
	return flushErr
}

// RecentTransfers returns up to n transfer records, newest first.
func (w *Writer) RecentTransfers(n int) ([]pru485.TransferRecord, error) {
	if err := w.Flush(); err != nil {
		return nil, err
	}
	rows, err := w.db.Query(
		`SELECT session, dir, bytes, status, took_us, err, at
		 FROM transfers ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []pru485.TransferRecord
	for rows.Next() {
		var r pru485.TransferRecord
		var us int64
		if err := rows.Scan(&r.Session, &r.Dir, &r.Bytes, &r.Status, &us, &r.Err, &r.At); err != nil {
			return nil, err
		}
		r.Took = time.Duration(us) * time.Microsecond
		out = append(out, r)
	}
	return out, rows.Err()
}

// RecentCommands returns up to n command records, newest first.
func (w *Writer) RecentCommands(n int) ([]pru485.CommandRecord, error) {
	if err := w.Flush(); err != nil {
		return nil, err
	}
	rows, err := w.db.Query(
		`SELECT session, command, arg, err, at
		 FROM commands ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []pru485.CommandRecord
	for rows.Next() {
		var r pru485.CommandRecord
		if err := rows.Scan(&r.Session, &r.Command, &r.Arg, &r.Err, &r.At); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
