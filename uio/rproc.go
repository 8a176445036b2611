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

//go:build linux

package uio

import (
	"fmt"
	"os"
	"strings"
)

// Device paths etc. PRU core n is remoteproc n+1.
const rprocRoot = "/sys/class/remoteproc"

const nUnits = 2

// An Rproc controls one PRU core through the RemoteProc framework.
type Rproc struct {
	unit    int
	root    string
	running bool
}

// NewRproc selects a PRU core (0 or 1).
func NewRproc(unit int) (*Rproc, error) {
	if unit < 0 || unit >= nUnits {
		return nil, fmt.Errorf("illegal unit")
	}
	return &Rproc{unit: unit, root: rprocRoot}, nil
}

// Load writes the name of the firmware to be loaded. This is a file
// that resides in /lib/firmware. If the PRU is currently running, it is
// stopped first.
func (r *Rproc) Load(name string) error {
	if r.running {
		r.Stop()
	}
	return r.write("firmware", name)
}

// Start writes the start command to the PRU.
func (r *Rproc) Start() error {
	err := r.write("state", "start")
	if err == nil {
		r.running = true
	}
	return err
}

// Stop writes the stop command to the PRU.
func (r *Rproc) Stop() error {
	err := r.write("state", "stop")
	if err == nil {
		r.running = false
	}
	return err
}

// State reads the core state as the kernel reports it, typically
// "offline" or "running".
func (r *Rproc) State() (string, error) {
	b, err := os.ReadFile(r.path("state"))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// write sends the string to the remoteproc filename
func (r *Rproc) write(name, command string) error {
	fd, err := os.OpenFile(r.path(name), os.O_RDWR, 0)
	if err != nil {
		return err
	}
	defer fd.Close()
	_, err = fd.WriteString(command)
	return err
}

func (r *Rproc) path(name string) string {
	return fmt.Sprintf("%s/remoteproc%d/%s", r.root, r.unit+1, name)
}
