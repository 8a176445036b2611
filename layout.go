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

// Layout of the shared RAM window. The firmware fixes these offsets, so
// they are not configurable. All multi-byte fields are little-endian.
const (
	StatusOffset       = 1  // transfer handshake byte
	BrgConfigOffset    = 2  // baud rate generator configuration
	DivisorLSBOffset   = 3  // baud divisor, low byte
	DivisorMSBOffset   = 4  // baud divisor, high byte
	SyncStopOffset     = 5  // cleared to stop a running sync cycle
	TimeoutOffset      = 6  // receive timeout, 4 bytes
	HardwareAddrOffset = 24 // node address sampled from the DIP switch
	ModeOffset         = 25 // 'M' or 'S'
	CharTimeOffset     = 26 // time of one character on the wire, 3 bytes
	SyncStepOffset     = 50 // sync preamble, 7 bytes
	CounterOffset      = 80 // sync cycle counter, 2 bytes

	MailboxWriteOffset = 0x64   // outbound frame: 4-byte length, then payload
	MailboxReadOffset  = 0x1800 // inbound frame: 4-byte length, then payload
)

// MailboxCapacity is the largest payload the outbound mailbox carries in
// one transfer. The inbound mailbox spends four of its bytes on the
// length header.
const MailboxCapacity = 12 * 1024

// Values of the handshake byte at StatusOffset, shared with the firmware.
const (
	NewReceived = 0x00 // inbound message waiting in the read mailbox
	OldMessage  = 0x55 // mailbox idle, previous message consumed
	ToSend      = 0xFF // outbound message staged in the write mailbox
)

// Operating modes. A master drives the bus cycle, a slave answers.
const (
	Master = 'M'
	Slave  = 'S'
)

// Interrupt controller registers, as offsets into the INTC window.
// Names follow the AM335x reference manual.
const (
	HIEISR = 0x0034 // host interrupt enable, takes an index
	HIDISR = 0x0038 // host interrupt disable, takes an index
	SECR1  = 0x0280 // system event clear, events 0..31
	HIPIR  = 0x0900 // per-host pending, 4-byte stride
	HIER   = 0x1500 // host interrupt enable mask

	// HIPIRNoPend is set in a HIPIR register while no interrupt is
	// pending on that host line.
	HIPIRNoPend = 0x80000000
)

// Interrupt routing, fixed by the firmware image.
const (
	// EvtOut is the host interrupt bit that reports a completed
	// transfer cycle.
	EvtOut = 3
	// ArmSysEvent is the system event cleared when the host hands the
	// line back to the firmware.
	ArmSysEvent = 20
)

// syncStepSeq is the preamble written by the sync-step command.
var syncStepSeq = [7]byte{0x06, 0xff, 0x50, 0x00, 0x01, 0x0c, 0xa4}

const (
	// timeoutScale converts timeout units to the value stored in the
	// shared window.
	timeoutScale = 66600
	// cleanSpan is how many leading shared bytes the clean command
	// zeroes.
	cleanSpan = 100
)

// Smallest windows Attach accepts. The shared view must reach past the
// inbound mailbox, the INTC view past the enable mask.
const (
	minSharedLen = MailboxReadOffset + MailboxCapacity
	minIntcLen   = HIER + 4
)
