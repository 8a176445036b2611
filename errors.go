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

import "errors"

// Sentinel errors returned by this package. They are wrapped with
// context, so match them with errors.Is.
var (
	// ErrUnavailable means the platform resources are missing or could
	// not be acquired.
	ErrUnavailable = errors.New("device unavailable")

	// ErrBusy means another session already holds the device.
	ErrBusy = errors.New("device busy")

	// ErrInvalidArgument means a mode, size or value was rejected
	// before anything was written.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidRate means the baud rate has no table entry.
	ErrInvalidRate = errors.New("unsupported baud rate")

	// ErrInvalidCommand means the control command number is unknown.
	ErrInvalidCommand = errors.New("unknown command")

	// ErrFault means the device went away underneath an operation.
	ErrFault = errors.New("device detached")

	// ErrTimeout means a bounded wait or poll expired.
	ErrTimeout = errors.New("timed out")

	// ErrOutOfRange means an access fell outside the mapped window.
	ErrOutOfRange = errors.New("offset out of range")

	// ErrNoMessage means the read mailbox holds no new message.
	ErrNoMessage = errors.New("no message pending")

	// ErrClosed means the session has been closed.
	ErrClosed = errors.New("session closed")
)
