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

// Package sim provides an in-memory PRU subsystem: the mapped region,
// the interrupt controller, the firmware and the address switch, enough
// to run the whole transfer protocol without hardware. Tests, examples
// and bench rigs use it in place of the uio backend.
package sim

import (
	"fmt"
	"sync"
	"time"

	"github.com/rich1111/pru485"
)

// Region geometry. The windows sit at nonzero offsets so that mixing
// up region-relative and window-relative addresses shows up fast.
const (
	SharedBase = 0x1000
	IntcBase   = 0x6000
	regionSize = 0x8000

	BaseIRQ = 20
	IRQ     = BaseIRQ + pru485.EvtOut - 2
)

const defaultReplyDelay = time.Millisecond

// A Pruss is the simulated subsystem. One value implements both the
// resource and the interrupt-source interfaces, so it backs a whole
// Device. All region access goes through pru485.Window, which keeps the
// firmware goroutine and the host race-free.
//
// The interrupt controller is plain memory: disable writes land in the
// register file but nothing recomputes the enable mask, which is as
// much as the protocol inspects.
type Pruss struct {
	mem    []byte
	shared *pru485.Window
	intc   *pru485.Window

	replyDelay time.Duration

	mu      sync.Mutex
	handler func(irq int) pru485.IntResult
	reply   func([]byte) []byte
	auto    bool
	closed  bool
	done    chan struct{}
	wg      sync.WaitGroup
	inbox   [][]byte
}

// An Option adjusts the simulated subsystem.
type Option func(*Pruss)

// WithReply installs the firmware's reply function. The default echoes
// the consumed payload back.
func WithReply(f func(payload []byte) []byte) Option {
	return func(p *Pruss) { p.reply = f }
}

// WithoutFirmware disables the background firmware. Tests then drive
// cycles by hand with StepCycle, Deliver and Fire.
func WithoutFirmware() Option {
	return func(p *Pruss) { p.auto = false }
}

// WithReplyDelay sets how long a master-mode reply stays in flight
// after the cycle completes.
func WithReplyDelay(d time.Duration) Option {
	return func(p *Pruss) { p.replyDelay = d }
}

// New builds a powered-up subsystem with an idle mailbox.
func New(opts ...Option) *Pruss {
	p := &Pruss{
		mem:        make([]byte, regionSize),
		auto:       true,
		replyDelay: defaultReplyDelay,
		done:       make(chan struct{}),
	}
	p.shared = pru485.NewWindow(p.mem[SharedBase:IntcBase])
	p.intc = pru485.NewWindow(p.mem[IntcBase:])
	for _, o := range opts {
		o(p)
	}
	p.shared.Write8(pru485.StatusOffset, pru485.OldMessage)
	return p
}

// Mem implements pru485.Resources.
func (p *Pruss) Mem() []byte { return p.mem }

// SharedBase implements pru485.Resources.
func (p *Pruss) SharedBase() int { return SharedBase }

// IntcBase implements pru485.Resources.
func (p *Pruss) IntcBase() int { return IntcBase }

// IRQ implements pru485.Resources.
func (p *Pruss) IRQ() int { return IRQ }

// BaseIRQ implements pru485.Resources.
func (p *Pruss) BaseIRQ() int { return BaseIRQ }

// Shared exposes the simulated shared RAM for test setup and checks.
func (p *Pruss) Shared() *pru485.Window { return p.shared }

// Intc exposes the simulated interrupt controller registers.
func (p *Pruss) Intc() *pru485.Window { return p.intc }

// Start implements pru485.IntSource. With the background firmware
// enabled it also starts consuming staged messages.
func (p *Pruss) Start(handler func(irq int) pru485.IntResult) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return fmt.Errorf("simulator closed")
	}
	if p.handler != nil {
		return fmt.Errorf("handler already installed")
	}
	p.handler = handler
	if p.auto {
		p.wg.Add(1)
		go p.firmware()
	}
	return nil
}

// Close stops the firmware and drops the handler. Idempotent, so one
// Pruss safely serves as both the resource and the interrupt source of
// a Device.
func (p *Pruss) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.done)
	p.mu.Unlock()
	p.wg.Wait()
	return nil
}

// Inbox lists the payloads the firmware has consumed, oldest first.
func (p *Pruss) Inbox() [][]byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([][]byte, len(p.inbox))
	copy(out, p.inbox)
	return out
}

// firmware plays the PRU side: poll the handshake byte and consume
// every staged frame.
func (p *Pruss) firmware() {
	defer p.wg.Done()
	tick := time.NewTicker(200 * time.Microsecond)
	defer tick.Stop()
	for {
		select {
		case <-p.done:
			return
		case <-tick.C:
		}
		st, err := p.shared.Read8(pru485.StatusOffset)
		if err != nil || st != pru485.ToSend {
			continue
		}
		p.StepCycle()
	}
}

// StepCycle consumes the staged frame and completes the transfer the
// way the firmware would. In slave mode the reply lands in the read
// mailbox within the same cycle; in master mode the cycle first
// returns the handshake byte to idle and the reply arrives a reply
// delay later, like an answer on the bus. Tests running without the
// background firmware call it by hand.
func (p *Pruss) StepCycle() error {
	length, err := p.shared.Read32(pru485.MailboxWriteOffset)
	if err != nil {
		return err
	}
	payload, err := p.shared.ReadBytes(pru485.MailboxWriteOffset+4, int(length))
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.inbox = append(p.inbox, payload)
	replyFn := p.reply
	p.mu.Unlock()
	reply := payload
	if replyFn != nil {
		reply = replyFn(payload)
	}

	mode, err := p.shared.Read8(pru485.ModeOffset)
	if err != nil {
		return err
	}
	if mode == pru485.Master {
		if err := p.shared.Write8(pru485.StatusOffset, pru485.OldMessage); err != nil {
			return err
		}
		if _, err := p.Fire(pru485.EvtOut); err != nil {
			return err
		}
		p.scheduleReply(reply)
		return nil
	}
	if err := p.stage(reply); err != nil {
		return err
	}
	_, err = p.Fire(pru485.EvtOut)
	return err
}

// Deliver places an unsolicited inbound frame, as if a peer had sent
// one on the bus, and flags it in the handshake byte.
func (p *Pruss) Deliver(payload []byte) error {
	return p.stage(payload)
}

func (p *Pruss) stage(payload []byte) error {
	if err := p.shared.Write32(pru485.MailboxReadOffset, uint32(len(payload))); err != nil {
		return err
	}
	if err := p.shared.WriteBytes(pru485.MailboxReadOffset+4, payload); err != nil {
		return err
	}
	return p.shared.Write8(pru485.StatusOffset, pru485.NewReceived)
}

func (p *Pruss) scheduleReply(reply []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		select {
		case <-p.done:
			return
		case <-time.After(p.replyDelay):
		}
		p.stage(reply)
	}()
}

// Fire asserts host interrupt bit and delivers it: the enable bit and
// the pending register are set the way the controller would, then the
// installed handler runs with the matching line number.
func (p *Pruss) Fire(bit int) (pru485.IntResult, error) {
	p.mu.Lock()
	handler := p.handler
	p.mu.Unlock()
	if handler == nil {
		return pru485.IntNone, fmt.Errorf("no handler installed")
	}
	mask, err := p.intc.Read32(pru485.HIER)
	if err != nil {
		return pru485.IntNone, err
	}
	if err := p.intc.Write32(pru485.HIER, mask|1<<uint(bit)); err != nil {
		return pru485.IntNone, err
	}
	if err := p.intc.Write32(pru485.HIPIR+bit<<2, 0); err != nil {
		return pru485.IntNone, err
	}
	return handler(BaseIRQ + bit - 2), nil
}
