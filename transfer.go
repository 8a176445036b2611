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
	"context"
	"fmt"
	"time"
)

// Send stages payload in the write mailbox, hands it to the firmware
// and waits for the transfer cycle to complete. It returns the number
// of payload bytes handed over.
//
// The order on the wire is: length header, payload, then the handshake
// byte, so the firmware never sees a half-staged frame. The completion
// wait is the one blocking point, bounded by WaitTimeout and
// cancellable through ctx. A wait that does not finish cleanly leaves
// the cycle in flight: the device is marked dirty for the next session
// and the interrupt line stays disabled until a later cycle re-enables
// it. In master mode Send also polls, bounded, for the handshake byte
// to return to idle.
func (s *Session) Send(ctx context.Context, payload []byte) (n int, err error) {
	start := time.Now()
	defer func() { s.recordTransfer("send", n, time.Since(start), err) }()
	if err := s.guard(); err != nil {
		return 0, err
	}
	if len(payload) > MailboxCapacity {
		return 0, fmt.Errorf("payload of %d bytes in a %d byte mailbox: %w",
			len(payload), MailboxCapacity, ErrInvalidArgument)
	}
	d := s.dev
	if err := d.shared.Write32(MailboxWriteOffset, uint32(len(payload))); err != nil {
		return 0, err
	}
	if err := d.shared.WriteBytes(MailboxWriteOffset+4, payload); err != nil {
		return 0, err
	}
	d.comp.Arm()
	if err := d.shared.Write8(StatusOffset, ToSend); err != nil {
		return 0, err
	}
	if err := d.comp.Wait(ctx, d.waitTimeout); err != nil {
		d.dirty.Store(true)
		d.log.Warn("send abandoned mid-cycle", "session", s.id, "err", err)
		return 0, fmt.Errorf("send: %w", err)
	}
	// Hand the line back: clear the system event, then re-enable the
	// host interrupt the handler disabled.
	if err := d.intc.Write32(SECR1, 1<<ArmSysEvent); err != nil {
		return 0, err
	}
	if err := d.intc.Write32(HIEISR, 1<<EvtOut); err != nil {
		return 0, err
	}
	mode, err := d.shared.Read8(ModeOffset)
	if err != nil {
		return 0, err
	}
	if mode == Master {
		if err := d.pollStatus(ctx, func(st byte) bool { return st == OldMessage }); err != nil {
			d.dirty.Store(true)
			return 0, fmt.Errorf("send: cycle did not return to idle: %w", err)
		}
	}
	return len(payload), nil
}

// Receive decodes the frame in the read mailbox into a fresh buffer.
// A master polls, bounded, until the cycle delivers a message; a slave
// fails with ErrNoMessage unless one is already waiting.
func (s *Session) Receive(ctx context.Context) (p []byte, err error) {
	start := time.Now()
	defer func() { s.recordTransfer("recv", len(p), time.Since(start), err) }()
	if err := s.guard(); err != nil {
		return nil, err
	}
	d := s.dev
	mode, err := d.shared.Read8(ModeOffset)
	if err != nil {
		return nil, err
	}
	switch mode {
	case Master:
		if err := d.pollStatus(ctx, func(st byte) bool { return st == NewReceived }); err != nil {
			return nil, fmt.Errorf("receive: %w", err)
		}
	case Slave:
		st, err := d.shared.Read8(StatusOffset)
		if err != nil {
			return nil, err
		}
		if st != NewReceived {
			return nil, fmt.Errorf("receive: status %#02x: %w", st, ErrNoMessage)
		}
	default:
		return nil, fmt.Errorf("receive: mode %#02x is neither master nor slave: %w",
			mode, ErrInvalidArgument)
	}
	length, err := d.shared.Read32(MailboxReadOffset)
	if err != nil {
		return nil, err
	}
	if length > MailboxCapacity-4 {
		return nil, fmt.Errorf("frame of %d bytes in a %d byte mailbox: %w",
			length, MailboxCapacity-4, ErrInvalidArgument)
	}
	return d.shared.ReadBytes(MailboxReadOffset+4, int(length))
}

// pollStatus samples the handshake byte every PollInterval until done
// says stop, the context is cancelled, or SpinTimeout expires.
func (d *Device) pollStatus(ctx context.Context, done func(byte) bool) error {
	deadline := time.Now().Add(d.spinTimeout)
	tick := time.NewTicker(d.pollInterval)
	defer tick.Stop()
	for {
		st, err := d.shared.Read8(StatusOffset)
		if err != nil {
			return err
		}
		if done(st) {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("status stuck at %#02x after %v: %w", st, d.spinTimeout, ErrTimeout)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
		}
	}
}
