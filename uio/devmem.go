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

	"golang.org/x/sys/unix"

	"github.com/rich1111/pru485"
)

const devMem = "/dev/mem"

// mapDevMem maps the PRUSS I/O region straight out of physical memory.
// The capability is probed first so a refusal reads as a permission
// problem rather than a bare EPERM from mmap.
func mapDevMem(cfg Config) (*os.File, []byte, error) {
	if !canRawIO() {
		return nil, nil, fmt.Errorf("mapping %s needs CAP_SYS_RAWIO: %w",
			devMem, pru485.ErrUnavailable)
	}
	f, err := os.OpenFile(devMem, os.O_RDWR|os.O_SYNC, 0660)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %v: %w", devMem, err, pru485.ErrUnavailable)
	}
	mem, err := unix.Mmap(int(f.Fd()), cfg.MemBase, cfg.MemLen,
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("map %s at %#x: %v: %w",
			devMem, cfg.MemBase, err, pru485.ErrUnavailable)
	}
	return f, mem, nil
}
