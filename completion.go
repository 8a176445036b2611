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
	"context"
	"fmt"
	"time"
)

// A Completion is a single-slot, re-armable event in the style of a
// kernel completion. Signal never blocks, so it is safe from the
// interrupt handler; Wait consumes one signal; Arm discards a stale
// signal so a new cycle starts clean.
type Completion struct {
	ch chan struct{}
}

// NewCompletion returns an armed completion with no pending signal.
func NewCompletion() *Completion {
	return &Completion{ch: make(chan struct{}, 1)}
}

// Arm discards a pending signal, if any.
func (c *Completion) Arm() {
	select {
	case <-c.ch:
	default:
	}
}

// Signal records the event. Signals coalesce: signalling twice wakes one
// waiter once.
func (c *Completion) Signal() {
	select {
	case c.ch <- struct{}{}:
	default:
	}
}

// Pending reports whether a signal is waiting to be consumed.
func (c *Completion) Pending() bool {
	return len(c.ch) > 0
}

// Wait blocks until the completion is signalled, ctx is cancelled, or d
// elapses. Expiry reports ErrTimeout; cancellation reports the context's
// error.
func (c *Completion) Wait(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-c.ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return fmt.Errorf("no completion within %v: %w", d, ErrTimeout)
	}
}
