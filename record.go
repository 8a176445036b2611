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

import "time"

// A TransferRecord describes one send or receive attempt.
type TransferRecord struct {
	Session string
	Dir     string // "send" or "recv"
	Bytes   int
	Status  byte // handshake byte when the transfer finished
	Took    time.Duration
	Err     string // empty on success
	At      time.Time
}

// A CommandRecord describes one control command.
type CommandRecord struct {
	Session string
	Command string
	Arg     uint32
	Err     string // empty on success
	At      time.Time
}

// A Recorder persists transfer and command records for diagnostics.
// Implementations must be safe for concurrent use; package recording
// provides one backed by SQLite.
type Recorder interface {
	Transfer(TransferRecord)
	Command(CommandRecord)
}
