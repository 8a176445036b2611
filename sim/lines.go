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

package sim

import (
	"fmt"
	"sync"

	"github.com/rich1111/pru485"
)

// addressPins are the header lines carrying the address switch, in
// P8_31..P8_35 order, lowest bit first.
var addressPins = [5]uint{10, 11, 9, 81, 8}

// Lines is a programmable bank of discrete inputs implementing
// pru485.Lines. Every line starts low. Claims and releases are
// counted, and failures can be injected per line.
type Lines struct {
	mu          sync.Mutex
	levels      map[uint]bool
	claims      int
	releases    int
	failRequest map[uint]error
	failValue   map[uint]error
}

// NewLines returns an idle bank.
func NewLines() *Lines {
	return &Lines{
		levels:      make(map[uint]bool),
		failRequest: make(map[uint]error),
		failValue:   make(map[uint]error),
	}
}

// Set drives one line high or low.
func (b *Lines) Set(line uint, high bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.levels[line] = high
}

// SetAddress drives the five switch lines so the bank spells addr.
func (b *Lines) SetAddress(addr byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for bit, pin := range addressPins {
		b.levels[pin] = addr&(1<<bit) != 0
	}
}

// FailRequest makes claiming line fail with err.
func (b *Lines) FailRequest(line uint, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failRequest[line] = err
}

// FailValue makes sampling line fail with err.
func (b *Lines) FailValue(line uint, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failValue[line] = err
}

// Claims counts successful Request calls.
func (b *Lines) Claims() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.claims
}

// Outstanding counts lines claimed and not yet released.
func (b *Lines) Outstanding() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.claims - b.releases
}

// Request implements pru485.Lines.
func (b *Lines) Request(line uint, label string) (pru485.Line, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.failRequest[line]; err != nil {
		return nil, fmt.Errorf("line %d (%s): %w", line, label, err)
	}
	b.claims++
	return &simLine{bank: b, n: line}, nil
}

type simLine struct {
	bank   *Lines
	n      uint
	closed bool
}

func (l *simLine) Input() error {
	return nil
}

func (l *simLine) Value() (bool, error) {
	l.bank.mu.Lock()
	defer l.bank.mu.Unlock()
	if err := l.bank.failValue[l.n]; err != nil {
		return false, fmt.Errorf("line %d: %w", l.n, err)
	}
	return l.bank.levels[l.n], nil
}

func (l *simLine) Close() error {
	l.bank.mu.Lock()
	defer l.bank.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	l.bank.releases++
	return nil
}
