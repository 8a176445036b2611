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

package pru485

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/xid"
)

// A Session is the exclusive front end to an attached Device. Open
// hands out at most one at a time; transfers and control commands run
// through it.
type Session struct {
	dev    *Device
	id     string
	dirty  bool
	closed atomic.Bool
}

// Open claims the device. The claim never blocks: a second Open while a
// session is live fails with ErrBusy and does not disturb the
// completion state. A fresh session starts with the completion armed
// and reports, once, whether the previous session abandoned a transfer
// midway.
func (d *Device) Open() (*Session, error) {
	if err := d.alive(); err != nil {
		return nil, err
	}
	if !d.locked.CompareAndSwap(false, true) {
		return nil, fmt.Errorf("open: held by another session: %w", ErrBusy)
	}
	d.comp.Arm()
	s := &Session{
		dev:   d,
		id:    xid.New().String(),
		dirty: d.dirty.Swap(false),
	}
	d.log.Debug("session opened", "session", s.id, "dirty", s.dirty)
	return s, nil
}

// Close releases the device. Further calls are no-ops.
func (s *Session) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	s.dev.locked.Store(false)
	s.dev.log.Debug("session closed", "session", s.id)
	return nil
}

// ID identifies the session in logs and records.
func (s *Session) ID() string {
	return s.id
}

// Dirty reports whether the previous session abandoned a transfer,
// leaving the mailbox and firmware out of step until a clean cycle.
func (s *Session) Dirty() bool {
	return s.dirty
}

// guard rejects operations on a closed session or a detached device.
func (s *Session) guard() error {
	if s.closed.Load() {
		return fmt.Errorf("session %s: %w", s.id, ErrClosed)
	}
	return s.dev.alive()
}

func (s *Session) recordTransfer(dir string, n int, took time.Duration, opErr error) {
	if s.dev.rec == nil {
		return
	}
	rec := TransferRecord{
		Session: s.id,
		Dir:     dir,
		Bytes:   n,
		Took:    took,
		At:      time.Now(),
	}
	if !s.dev.detached.Load() {
		rec.Status, _ = s.dev.shared.Read8(StatusOffset)
	}
	if opErr != nil {
		rec.Err = opErr.Error()
	}
	s.dev.rec.Transfer(rec)
}

func (s *Session) recordCommand(name string, arg uint32, opErr error) {
	if s.dev.rec == nil {
		return
	}
	rec := CommandRecord{
		Session: s.id,
		Command: name,
		Arg:     arg,
		At:      time.Now(),
	}
	if opErr != nil {
		rec.Err = opErr.Error()
	}
	s.dev.rec.Command(rec)
}
