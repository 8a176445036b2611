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

// baudEntry holds the generator settings for one supported rate. The
// firmware reads them back from the window, so the values are written
// verbatim.
type baudEntry struct {
	brgConfig byte
	divLSB    byte
	divMSB    byte
	charTime  uint32 // duration of one character, 3 bytes on the wire
}

// baudTable mirrors the firmware's generator tables. The three lowest
// rates drive commissioning sync cycles; 19200 shares 14400's character
// time.
var baudTable = map[uint32]baudEntry{
	6:      {brgConfig: 0x28, divLSB: 0x02, divMSB: 0x00, charTime: 1667},
	10:     {brgConfig: 0x28, divLSB: 0x01, divMSB: 0x00, charTime: 1000},
	12:     {brgConfig: 0x24, divLSB: 0x01, divMSB: 0x00, charTime: 833},
	9600:   {brgConfig: 0x0a, divLSB: 0x86, divMSB: 0x01, charTime: 1041666},
	14400:  {brgConfig: 0x07, divLSB: 0x04, divMSB: 0x01, charTime: 694444},
	19200:  {brgConfig: 0x05, divLSB: 0xc3, divMSB: 0x00, charTime: 694444},
	38400:  {brgConfig: 0x15, divLSB: 0xc3, divMSB: 0x00, charTime: 260416},
	57600:  {brgConfig: 0x27, divLSB: 0x04, divMSB: 0x01, charTime: 173611},
	115200: {brgConfig: 0x09, divLSB: 0x20, divMSB: 0x00, charTime: 86805},
}

// baudConfig returns the settings for rate. Unknown rates report
// ErrInvalidRate and cause no writes anywhere.
func baudConfig(rate uint32) (baudEntry, error) {
	e, ok := baudTable[rate]
	if !ok {
		return baudEntry{}, fmt.Errorf("baud rate %d: %w", rate, ErrInvalidRate)
	}
	return e, nil
}

// apply stores the entry in the shared window: the three generator
// bytes, then the character time.
func (e baudEntry) apply(w *Window) error {
	if err := w.Write8(BrgConfigOffset, e.brgConfig); err != nil {
		return err
	}
	if err := w.Write8(DivisorLSBOffset, e.divLSB); err != nil {
		return err
	}
	if err := w.Write8(DivisorMSBOffset, e.divMSB); err != nil {
		return err
	}
	for i := 0; i < 3; i++ {
		if err := w.Write8(CharTimeOffset+i, byte(e.charTime>>(uint(i)*8))); err != nil {
			return err
		}
	}
	return nil
}
