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
	"encoding/binary"
	"fmt"
	"sync/atomic"
	"unsafe"
)

// Order is the byte order of all multi-byte fields in the shared window.
// The PRU and every supported host are little-endian.
var Order = binary.LittleEndian

// A Window is a bounds-checked view of a piece of the mapped region.
// Every access goes through aligned 32-bit atomic operations, so the
// firmware, the interrupt goroutine and callers all observe whole words.
// Writes of aligned 32-bit fields are single stores, which the interrupt
// controller registers require.
type Window struct {
	mem []byte
}

// NewWindow wraps mem. The view is truncated to a whole number of words;
// mmap and make both hand out aligned slices.
func NewWindow(mem []byte) *Window {
	return &Window{mem: mem[:len(mem)&^3]}
}

// Len returns the size of the window in bytes.
func (w *Window) Len() int {
	return len(w.mem)
}

func (w *Window) check(off, n int) error {
	if off < 0 || n < 0 || off > len(w.mem)-n {
		return fmt.Errorf("access of %d bytes at %#x in window of %#x bytes: %w",
			n, off, len(w.mem), ErrOutOfRange)
	}
	return nil
}

// word returns the aligned cell holding the byte at off.
func (w *Window) word(off int) *uint32 {
	return (*uint32)(unsafe.Pointer(&w.mem[off&^3]))
}

func (w *Window) loadByte(off int) byte {
	shift := uint(off&3) * 8
	return byte(atomic.LoadUint32(w.word(off)) >> shift)
}

func (w *Window) storeByte(off int, v byte) {
	p := w.word(off)
	shift := uint(off&3) * 8
	mask := uint32(0xff) << shift
	for {
		old := atomic.LoadUint32(p)
		merged := old&^mask | uint32(v)<<shift
		if atomic.CompareAndSwapUint32(p, old, merged) {
			return
		}
	}
}

// Read8 returns the byte at off.
func (w *Window) Read8(off int) (byte, error) {
	if err := w.check(off, 1); err != nil {
		return 0, err
	}
	return w.loadByte(off), nil
}

// Write8 stores v at off without disturbing the rest of the word.
func (w *Window) Write8(off int, v byte) error {
	if err := w.check(off, 1); err != nil {
		return err
	}
	w.storeByte(off, v)
	return nil
}

// Read16 returns the 16-bit field at off.
func (w *Window) Read16(off int) (uint16, error) {
	if err := w.check(off, 2); err != nil {
		return 0, err
	}
	return uint16(w.loadByte(off)) | uint16(w.loadByte(off+1))<<8, nil
}

// Write16 stores v at off.
func (w *Window) Write16(off int, v uint16) error {
	if err := w.check(off, 2); err != nil {
		return err
	}
	w.storeByte(off, byte(v))
	w.storeByte(off+1, byte(v>>8))
	return nil
}

// Read32 returns the 32-bit field at off. An aligned field is read with
// a single load.
func (w *Window) Read32(off int) (uint32, error) {
	if err := w.check(off, 4); err != nil {
		return 0, err
	}
	if off&3 == 0 {
		return atomic.LoadUint32(w.word(off)), nil
	}
	return uint32(w.loadByte(off)) |
		uint32(w.loadByte(off+1))<<8 |
		uint32(w.loadByte(off+2))<<16 |
		uint32(w.loadByte(off+3))<<24, nil
}

// Write32 stores v at off. An aligned field is written with a single
// store.
func (w *Window) Write32(off int, v uint32) error {
	if err := w.check(off, 4); err != nil {
		return err
	}
	if off&3 == 0 {
		atomic.StoreUint32(w.word(off), v)
		return nil
	}
	for i := 0; i < 4; i++ {
		w.storeByte(off+i, byte(v>>(uint(i)*8)))
	}
	return nil
}

// ReadBytes copies n bytes starting at off into a fresh slice.
func (w *Window) ReadBytes(off, n int) ([]byte, error) {
	if err := w.check(off, n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	for i := range out {
		out[i] = w.loadByte(off + i)
	}
	return out, nil
}

// WriteBytes copies p into the window at off. Nothing is written when
// the range does not fit.
func (w *Window) WriteBytes(off int, p []byte) error {
	if err := w.check(off, len(p)); err != nil {
		return err
	}
	for i, b := range p {
		w.storeByte(off+i, b)
	}
	return nil
}

// Fill stores v into each of the n bytes starting at off.
func (w *Window) Fill(off, n int, v byte) error {
	if err := w.check(off, n); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		w.storeByte(off+i, v)
	}
	return nil
}
