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

import "fmt"

// Command numbers the control plane accepts. The numbering is part of
// the external interface and is kept stable.
type Command uint32

const (
	CmdCleanMemory Command = iota + 10
	CmdSetMode
	CmdSyncStep
	CmdSetCounter
	CmdHardwareAddress
	CmdSetBaudRate
	CmdSetTimeout
)

// String names the command for logs and records.
func (c Command) String() string {
	switch c {
	case CmdCleanMemory:
		return "clean"
	case CmdSetMode:
		return "set-mode"
	case CmdSyncStep:
		return "sync-step"
	case CmdSetCounter:
		return "set-counter"
	case CmdHardwareAddress:
		return "hw-address"
	case CmdSetBaudRate:
		return "set-baud"
	case CmdSetTimeout:
		return "set-timeout"
	default:
		return fmt.Sprintf("command(%d)", uint32(c))
	}
}

// Control dispatches one numbered command with its raw argument. The
// typed methods below map 1:1 and are the same operations; unknown
// numbers report ErrInvalidCommand.
func (s *Session) Control(cmd Command, arg uint32) error {
	switch cmd {
	case CmdCleanMemory:
		return s.CleanMemory()
	case CmdSetMode:
		return s.SetMode(byte(arg))
	case CmdSyncStep:
		return s.SyncStep()
	case CmdSetCounter:
		return s.SetCounter(uint16(arg))
	case CmdHardwareAddress:
		_, err := s.HardwareAddress()
		return err
	case CmdSetBaudRate:
		return s.SetBaudRate(arg)
	case CmdSetTimeout:
		return s.SetTimeout(arg)
	default:
		return fmt.Errorf("command %d: %w", uint32(cmd), ErrInvalidCommand)
	}
}

// SetMode selects master or slave operation. Anything else is rejected
// before the window is touched. Entering master mode stops a running
// sync cycle; a new slave instead resets the handshake byte so its
// first receive sees an idle mailbox.
func (s *Session) SetMode(mode byte) (err error) {
	defer func() { s.recordCommand(CmdSetMode.String(), uint32(mode), err) }()
	if err := s.guard(); err != nil {
		return err
	}
	if mode != Master && mode != Slave {
		return fmt.Errorf("mode %#02x: %w", mode, ErrInvalidArgument)
	}
	d := s.dev
	if err := d.shared.Write8(ModeOffset, mode); err != nil {
		return err
	}
	d.syncStop()
	if mode == Slave {
		if err := d.shared.Write8(StatusOffset, OldMessage); err != nil {
			return err
		}
	}
	return nil
}

// syncStop clears the sync flag. Only a master runs sync cycles, so in
// any other mode this reports ErrInvalidArgument and writes nothing;
// SetMode calls it on every mode change and ignores the result.
func (d *Device) syncStop() error {
	mode, err := d.shared.Read8(ModeOffset)
	if err != nil {
		return err
	}
	if mode != Master {
		return fmt.Errorf("sync stop in mode %#02x: %w", mode, ErrInvalidArgument)
	}
	return d.shared.Write8(SyncStopOffset, 0)
}

// CleanMemory zeroes the leading scratch area of the shared window,
// handshake and configuration bytes included.
func (s *Session) CleanMemory() (err error) {
	defer func() { s.recordCommand(CmdCleanMemory.String(), 0, err) }()
	if err := s.guard(); err != nil {
		return err
	}
	return s.dev.shared.Fill(0, cleanSpan, 0)
}

// SyncStep writes the sync preamble the firmware replays on the bus.
func (s *Session) SyncStep() (err error) {
	defer func() { s.recordCommand(CmdSyncStep.String(), 0, err) }()
	if err := s.guard(); err != nil {
		return err
	}
	return s.dev.shared.WriteBytes(SyncStepOffset, syncStepSeq[:])
}

// SetCounter programs the sync cycle counter.
func (s *Session) SetCounter(count uint16) (err error) {
	defer func() { s.recordCommand(CmdSetCounter.String(), uint32(count), err) }()
	if err := s.guard(); err != nil {
		return err
	}
	return s.dev.shared.Write16(CounterOffset, count)
}

// HardwareAddress samples the DIP switch through the line facility,
// publishes the result in the window and returns it.
func (s *Session) HardwareAddress() (addr byte, err error) {
	defer func() { s.recordCommand(CmdHardwareAddress.String(), 0, err) }()
	if err := s.guard(); err != nil {
		return 0, err
	}
	addr, err = readHardwareAddress(s.dev.lines)
	if err != nil {
		return 0, err
	}
	if err := s.dev.shared.Write8(HardwareAddrOffset, addr); err != nil {
		return 0, err
	}
	return addr, nil
}

// SetBaudRate looks up rate and programs the generator. The applied
// rate is kept on the device for diagnostics.
func (s *Session) SetBaudRate(rate uint32) (err error) {
	defer func() { s.recordCommand(CmdSetBaudRate.String(), rate, err) }()
	if err := s.guard(); err != nil {
		return err
	}
	e, err := baudConfig(rate)
	if err != nil {
		return err
	}
	if err := e.apply(s.dev.shared); err != nil {
		return err
	}
	s.dev.appliedRate.Store(rate)
	return nil
}

// SetTimeout programs the receive timeout, in units of the firmware
// tick. The scaled value is stored one byte at a time, low to high.
func (s *Session) SetTimeout(units uint32) (err error) {
	defer func() { s.recordCommand(CmdSetTimeout.String(), units, err) }()
	if err := s.guard(); err != nil {
		return err
	}
	v := units * timeoutScale
	for i := 0; i < 4; i++ {
		if err := s.dev.shared.Write8(TimeoutOffset+i, byte(v>>(uint(i)*8))); err != nil {
			return err
		}
	}
	return nil
}
