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

// Resources supplies the mapped platform region a Device runs on. The
// uio package implements it for real hardware, the sim package for
// everything else. Attach borrows the region; Detach gives it back by
// calling Close.
type Resources interface {
	// Mem is the mapped PRU subsystem region.
	Mem() []byte
	// SharedBase is the offset of the shared data RAM within Mem.
	SharedBase() int
	// IntcBase is the offset of the interrupt controller within Mem.
	IntcBase() int
	// IRQ is the interrupt line carrying transfer completions.
	IRQ() int
	// BaseIRQ is the first of the subsystem's host interrupt lines.
	BaseIRQ() int
	// Close releases the region. The Device calls it once, last.
	Close() error
}

// IntResult is what the interrupt handler tells its delivery source.
type IntResult int

const (
	IntNone    IntResult = iota // not ours, leave the line alone
	IntHandled                  // consumed
)

// An IntSource delivers platform interrupts. Start installs the handler
// and begins delivery; Close stops delivery and releases the source.
// The handler is called with the interrupt line number and must not
// block.
type IntSource interface {
	Start(handler func(irq int) IntResult) error
	Close() error
}

// Lines grants access to the discrete inputs that carry the hardware
// address switch.
type Lines interface {
	// Request claims one line under the given consumer label.
	Request(line uint, label string) (Line, error)
}

// A Line is one claimed discrete input.
type Line interface {
	// Input configures the line as an input.
	Input() error
	// Value samples the line.
	Value() (bool, error)
	// Close releases the line.
	Close() error
}
