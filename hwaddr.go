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

// addressLines maps the bits of the DIP switch to platform line
// numbers, in P8_31..P8_35 header pin order.
var addressLines = [5]struct {
	line  uint
	label string
}{
	{10, "gpio10"},
	{11, "gpio11"},
	{9, "gpio9"},
	{81, "gpio81"},
	{8, "gpio8"},
}

// readHardwareAddress samples the five switch lines and packs them into
// a node address in [0,31]. Each line is claimed, read and released
// before the next one; a failure releases the claimed line and stops
// the scan with nothing left held.
func readHardwareAddress(lines Lines) (byte, error) {
	if lines == nil {
		return 0, fmt.Errorf("no address lines configured: %w", ErrUnavailable)
	}
	var addr byte
	for bit, al := range addressLines {
		high, err := sampleLine(lines, al.line, al.label)
		if err != nil {
			return 0, fmt.Errorf("address line %s: %v: %w", al.label, err, ErrUnavailable)
		}
		if high {
			addr |= 1 << bit
		}
	}
	return addr, nil
}

// sampleLine claims a line just long enough for one read.
func sampleLine(lines Lines, n uint, label string) (bool, error) {
	l, err := lines.Request(n, label)
	if err != nil {
		return false, fmt.Errorf("request: %w", err)
	}
	defer l.Close()
	if err := l.Input(); err != nil {
		return false, fmt.Errorf("direction: %w", err)
	}
	v, err := l.Value()
	if err != nil {
		return false, fmt.Errorf("sample: %w", err)
	}
	return v, nil
}
