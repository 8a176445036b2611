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
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Default bounds for the blocking points of a transfer.
const (
	DefaultWaitTimeout  = 2 * time.Second
	DefaultSpinTimeout  = 2 * time.Second
	DefaultPollInterval = 100 * time.Microsecond
)

// Config assembles the collaborators and bounds for one Device.
type Config struct {
	// Resources supplies the mapped region and the interrupt numbers.
	// Required.
	Resources Resources
	// Ints delivers platform interrupts to the device. Optional; with
	// no source, transfer waits can only expire.
	Ints IntSource
	// Lines carries the hardware address switch. Optional; without it
	// the hardware address command fails.
	Lines Lines
	// Recorder, when set, receives one record per transfer and per
	// control command.
	Recorder Recorder
	// Logger overrides the package default logger.
	Logger *slog.Logger

	// WaitTimeout bounds the completion wait inside Send. Zero selects
	// DefaultWaitTimeout.
	WaitTimeout time.Duration
	// SpinTimeout bounds master-mode status polls. Zero selects
	// DefaultSpinTimeout.
	SpinTimeout time.Duration
	// PollInterval is the period of status polls. Zero selects
	// DefaultPollInterval.
	PollInterval time.Duration
}

// A Device is one attached PRUSS messaging engine. All driver state
// hangs off it; the package keeps no global device state. At most one
// Session is open at a time.
type Device struct {
	res   Resources
	ints  IntSource
	lines Lines
	rec   Recorder
	log   *slog.Logger

	shared *Window
	intc   *Window

	irq     int
	baseIRQ int

	comp *Completion

	waitTimeout  time.Duration
	spinTimeout  time.Duration
	pollInterval time.Duration

	locked   atomic.Bool // one session at a time
	dirty    atomic.Bool // an aborted transfer left the mailbox undefined
	detached atomic.Bool

	appliedRate atomic.Uint32 // last rate SetBaudRate accepted

	detachOnce sync.Once
	detachErr  error
}

// Attach borrows the platform resources in cfg and brings up a Device.
// It validates the mapping, builds the shared RAM and interrupt
// controller views, and starts interrupt delivery, in that order. Any
// failure gives back what was already acquired, in reverse order, and
// reports ErrUnavailable.
func Attach(cfg Config) (*Device, error) {
	if cfg.Resources == nil {
		return nil, fmt.Errorf("attach: no resources: %w", ErrUnavailable)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = getLogger()
	}
	mem := cfg.Resources.Mem()
	sharedBase := cfg.Resources.SharedBase()
	intcBase := cfg.Resources.IntcBase()
	if err := checkRegion(len(mem), sharedBase, intcBase); err != nil {
		cfg.Resources.Close()
		return nil, fmt.Errorf("attach: %v: %w", err, ErrUnavailable)
	}
	d := &Device{
		res:          cfg.Resources,
		ints:         cfg.Ints,
		lines:        cfg.Lines,
		rec:          cfg.Recorder,
		log:          logger,
		shared:       NewWindow(mem[sharedBase : sharedBase+minSharedLen]),
		intc:         NewWindow(mem[intcBase : intcBase+minIntcLen]),
		irq:          cfg.Resources.IRQ(),
		baseIRQ:      cfg.Resources.BaseIRQ(),
		comp:         NewCompletion(),
		waitTimeout:  orDefault(cfg.WaitTimeout, DefaultWaitTimeout),
		spinTimeout:  orDefault(cfg.SpinTimeout, DefaultSpinTimeout),
		pollInterval: orDefault(cfg.PollInterval, DefaultPollInterval),
	}
	if d.ints != nil {
		if err := d.ints.Start(d.service); err != nil {
			cfg.Resources.Close()
			return nil, fmt.Errorf("attach: interrupt source: %v: %w", err, ErrUnavailable)
		}
	}
	d.log.Info("attached", "irq", d.irq, "baseIRQ", d.baseIRQ, "mapped", len(mem))
	return d, nil
}

func checkRegion(n, sharedBase, intcBase int) error {
	if sharedBase < 0 || n-sharedBase < minSharedLen {
		return fmt.Errorf("shared RAM at %#x needs %#x bytes, region has %#x",
			sharedBase, minSharedLen, n)
	}
	if intcBase < 0 || n-intcBase < minIntcLen {
		return fmt.Errorf("interrupt controller at %#x needs %#x bytes, region has %#x",
			intcBase, minIntcLen, n)
	}
	return nil
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}

// Detach stops interrupt delivery and releases the mapping, in reverse
// of the acquisition order. It is idempotent; operations on a detached
// device fail with ErrFault.
func (d *Device) Detach() error {
	d.detachOnce.Do(func() {
		d.detached.Store(true)
		if d.ints != nil {
			if err := d.ints.Close(); err != nil {
				d.detachErr = fmt.Errorf("stop interrupt source: %w", err)
			}
		}
		if err := d.res.Close(); err != nil && d.detachErr == nil {
			d.detachErr = fmt.Errorf("release mapping: %w", err)
		}
		d.log.Info("detached")
	})
	return d.detachErr
}

func (d *Device) alive() error {
	if d.detached.Load() {
		return fmt.Errorf("device: %w", ErrFault)
	}
	return nil
}

// SharedRam exposes the shared data RAM window for raw inspection by
// firmware tooling. The transfer path never hands it out.
func (d *Device) SharedRam() *Window {
	return d.shared
}

// State is a point-in-time snapshot of the device for diagnostics.
type State struct {
	Mode    byte   `json:"mode"`
	Status  byte   `json:"status"`
	HwAddr  byte   `json:"hwAddr"`
	Counter uint16 `json:"counter"`
	Rate    uint32 `json:"rate"`
	Dirty   bool   `json:"dirty"`
	Busy    bool   `json:"busy"`
}

// State samples the diagnostic snapshot. It needs no session; reads do
// not disturb a transfer in flight.
func (d *Device) State() (State, error) {
	if err := d.alive(); err != nil {
		return State{}, err
	}
	st := State{
		Rate:  d.appliedRate.Load(),
		Dirty: d.dirty.Load(),
		Busy:  d.locked.Load(),
	}
	var err error
	if st.Mode, err = d.shared.Read8(ModeOffset); err != nil {
		return State{}, err
	}
	if st.Status, err = d.shared.Read8(StatusOffset); err != nil {
		return State{}, err
	}
	if st.HwAddr, err = d.shared.Read8(HardwareAddrOffset); err != nil {
		return State{}, err
	}
	if st.Counter, err = d.shared.Read16(CounterOffset); err != nil {
		return State{}, err
	}
	return st, nil
}
