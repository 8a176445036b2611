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
	"strconv"
	"strings"

	"github.com/rich1111/pru485"
)

const gpioRoot = "/sys/class/gpio"

// NewLines returns the sysfs GPIO implementation of pru485.Lines. The
// address switch sits on ordinary header pins, which every kernel the
// board runs exposes through sysfs.
func NewLines() pru485.Lines {
	return &sysfsLines{root: gpioRoot}
}

type sysfsLines struct {
	root string
}

// Request exports the line if the kernel has not already, and hands
// back its sysfs directory.
func (g *sysfsLines) Request(line uint, label string) (pru485.Line, error) {
	l := &sysfsLine{
		root:  g.root,
		dir:   fmt.Sprintf("%s/gpio%d", g.root, line),
		n:     line,
		label: label,
	}
	if _, err := os.Stat(l.dir); err != nil {
		if err := writeAttr(g.root+"/export", strconv.Itoa(int(line))); err != nil {
			return nil, fmt.Errorf("export gpio%d (%s): %w", line, label, err)
		}
	}
	return l, nil
}

type sysfsLine struct {
	root  string
	dir   string
	n     uint
	label string
}

func (l *sysfsLine) Input() error {
	if err := writeAttr(l.dir+"/direction", "in"); err != nil {
		return fmt.Errorf("gpio%d direction: %w", l.n, err)
	}
	return nil
}

func (l *sysfsLine) Value() (bool, error) {
	b, err := os.ReadFile(l.dir + "/value")
	if err != nil {
		return false, fmt.Errorf("gpio%d value: %w", l.n, err)
	}
	return strings.TrimSpace(string(b)) != "0", nil
}

func (l *sysfsLine) Close() error {
	return writeAttr(l.root+"/unexport", strconv.Itoa(int(l.n)))
}

func writeAttr(path, value string) error {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(value)
	return err
}
