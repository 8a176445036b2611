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

//go:build linux

// Package uio maps the PRU subsystem on Linux and feeds its host
// interrupts to the driver. It implements the pru485 resource,
// interrupt-source and line interfaces on top of the UIO driver model,
// with a /dev/mem fallback for kernels without the PRUSS UIO device.
// It also drives the RemoteProc framework to load and run firmware.
package uio

import (
	"encoding/binary"
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/sys/unix"

	"github.com/rich1111/pru485"
)

// AM3xx
// Memory values. One I/O region covers the unit data RAMs, the shared
// RAM and the interrupt controller.
const (
	am3xxAddress = 0x4A300000
	am3xxSize    = 0x80000

	am3xxSharedRam = 0x00010000
	am3xxIntc      = 0x00020000
)

// Interrupt numbering on the AM3xx. The eight PRUSS host lines are
// contiguous; the transfer completion event rides the line whose event
// bit is pru485.EvtOut.
const (
	am3xxBaseIRQ = 20
	am3xxIRQ     = am3xxBaseIRQ + pru485.EvtOut - 2
)

const (
	defaultDevice = "/dev/uio1"

	waitTimeout = 2 * time.Second
)

// Config selects device files and numbering for Open. The zero value
// fits a stock Beaglebone.
type Config struct {
	// Device is the UIO event device carrying the completion line.
	Device string
	// MemBase and MemLen describe the physical I/O region, used by the
	// /dev/mem fallback.
	MemBase int64
	MemLen  int
	// SharedBase and IntcBase locate the shared RAM and the interrupt
	// controller inside the region.
	SharedBase int
	IntcBase   int
	// IRQ and BaseIRQ name the completion line and the first host
	// interrupt line.
	IRQ     int
	BaseIRQ int
	// ForceDevMem skips the UIO device and maps /dev/mem directly.
	ForceDevMem bool
}

func (c *Config) setDefaults() {
	if c.Device == "" {
		c.Device = defaultDevice
	}
	if c.MemBase == 0 {
		c.MemBase = am3xxAddress
	}
	if c.MemLen == 0 {
		c.MemLen = am3xxSize
	}
	if c.SharedBase == 0 {
		c.SharedBase = am3xxSharedRam
	}
	if c.IntcBase == 0 {
		c.IntcBase = am3xxIntc
	}
	if c.IRQ == 0 {
		c.IRQ = am3xxIRQ
	}
	if c.BaseIRQ == 0 {
		c.BaseIRQ = am3xxBaseIRQ
	}
}

// A Handle is one mapped PRU subsystem. It serves as both the resource
// and the interrupt source of a pru485 Device.
type Handle struct {
	cfg  Config
	uio  *os.File // event device; nil on the /dev/mem fallback
	memf *os.File // /dev/mem; fallback only
	mem  []byte

	mu      sync.Mutex
	started bool
	closed  bool
	wg      sync.WaitGroup
}

// Open maps the PRU subsystem. The UIO device is tried first: its map 0
// is the whole I/O region and its file carries the interrupt events.
// Without it, /dev/mem is mapped at the physical address, which needs
// CAP_SYS_RAWIO and delivers no interrupts.
func Open(cfg Config) (*Handle, error) {
	cfg.setDefaults()
	h := &Handle{cfg: cfg}
	if !cfg.ForceDevMem {
		f, err := waitForPermission(cfg.Device)
		if err == nil {
			mem, merr := unix.Mmap(int(f.Fd()), 0, cfg.MemLen,
				unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
			if merr == nil {
				h.uio = f
				h.mem = mem
				return h, nil
			}
			f.Close()
			return nil, fmt.Errorf("map %s: %v: %w", cfg.Device, merr, pru485.ErrUnavailable)
		}
	}
	memf, mem, err := mapDevMem(cfg)
	if err != nil {
		return nil, err
	}
	h.memf = memf
	h.mem = mem
	return h, nil
}

// HasEvents reports whether the handle can deliver interrupts. The
// /dev/mem fallback cannot.
func (h *Handle) HasEvents() bool { return h.uio != nil }

// Mem implements pru485.Resources.
func (h *Handle) Mem() []byte { return h.mem }

// SharedBase implements pru485.Resources.
func (h *Handle) SharedBase() int { return h.cfg.SharedBase }

// IntcBase implements pru485.Resources.
func (h *Handle) IntcBase() int { return h.cfg.IntcBase }

// IRQ implements pru485.Resources.
func (h *Handle) IRQ() int { return h.cfg.IRQ }

// BaseIRQ implements pru485.Resources.
func (h *Handle) BaseIRQ() int { return h.cfg.BaseIRQ }

// Start begins interrupt delivery: a goroutine blocks reading the event
// device and forwards each event to the handler. On the /dev/mem
// fallback there is nothing to read and Start fails.
func (h *Handle) Start(handler func(irq int) pru485.IntResult) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return fmt.Errorf("handle closed: %w", pru485.ErrUnavailable)
	}
	if h.uio == nil {
		return fmt.Errorf("no event device on the /dev/mem fallback: %w", pru485.ErrUnavailable)
	}
	if h.started {
		return fmt.Errorf("event loop already running")
	}
	h.started = true
	h.wg.Add(1)
	go h.eventLoop(handler)
	return nil
}

func (h *Handle) eventLoop(handler func(irq int) pru485.IntResult) {
	defer h.wg.Done()
	var buf [4]byte
	for {
		// Unmask at the UIO layer. Drivers without irqcontrol reject
		// the write; the interrupt controller handles re-enabling for
		// those.
		binary.LittleEndian.PutUint32(buf[:], 1)
		h.uio.Write(buf[:])
		if _, err := h.uio.Read(buf[:]); err != nil {
			return
		}
		handler(h.cfg.IRQ)
	}
}

// Close stops delivery and releases the mapping. It is idempotent, so
// one Handle can safely serve as both the resource and the interrupt
// source of a Device.
func (h *Handle) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	h.mu.Unlock()
	if h.uio != nil {
		h.uio.Close()
	}
	h.wg.Wait()
	var err error
	if h.mem != nil {
		err = unix.Munmap(h.mem)
		h.mem = nil
	}
	if h.memf != nil {
		h.memf.Close()
		h.memf = nil
	}
	return err
}

// After firmware start or a driver reload there is a short time before
// device permissions get set correctly, so wait for the device to
// become accessible.
func waitForPermission(name string) (*os.File, error) {
	var tout time.Duration
	var err error
	var f *os.File
	sl := time.Millisecond
	for tout = 0; tout < waitTimeout; tout += sl {
		f, err = os.OpenFile(name, os.O_RDWR|os.O_SYNC, 0660)
		if err == nil || !os.IsPermission(err) {
			break
		}
		time.Sleep(sl)
	}
	return f, err
}
