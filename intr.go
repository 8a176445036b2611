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

// service is the interrupt handler. The delivery source calls it with
// the interrupt line number; it never blocks.
//
// The event bit is the line's position among the subsystem's host
// interrupts, offset by the controller's two reserved lines. A line
// that is neither enabled nor pending belongs to another device on a
// shared interrupt. A handled event is disabled until the transfer path
// re-enables it; the EvtOut bit additionally completes the transfer in
// flight.
func (d *Device) service(irq int) IntResult {
	bit := irq - d.baseIRQ + 2
	if bit < 0 {
		return IntNone
	}
	mask := uint32(1) << uint(bit)
	enabled, err := d.intc.Read32(HIER)
	if err != nil {
		return IntNone
	}
	pending, err := d.intc.Read32(HIPIR + bit<<2)
	if err != nil {
		return IntNone
	}
	if enabled&mask == 0 && pending&HIPIRNoPend != 0 {
		return IntNone
	}
	if err := d.intc.Write32(HIDISR, uint32(bit)); err != nil {
		return IntNone
	}
	if bit == EvtOut {
		d.comp.Signal()
	}
	return IntHandled
}
