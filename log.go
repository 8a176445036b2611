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
	"log/slog"
	"os"
	"sync"
)

var (
	logLevel = new(slog.LevelVar)

	logMu sync.RWMutex
	// defaultLogger is used by devices whose Config carries no Logger.
	defaultLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
)

// SetLogLevel adjusts the verbosity of the default logger. It has no
// effect on devices configured with their own Logger.
func SetLogLevel(level slog.Level) {
	logLevel.Set(level)
}

// SetLogger replaces the default logger. Devices already attached keep
// the logger they were attached with.
func SetLogger(l *slog.Logger) {
	logMu.Lock()
	defer logMu.Unlock()
	defaultLogger = l
}

func getLogger() *slog.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	return defaultLogger
}
