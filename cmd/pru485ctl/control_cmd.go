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

package main

import (
	"fmt"
	"log"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rich1111/pru485"
)

var modeCmd = &cobra.Command{
	Use:   "mode <M|S>",
	Short: "Select master or slave operation",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args[0]) != 1 {
			log.Fatalf("Error: mode must be a single character, got %q", args[0])
		}
		withSession(func(s *pru485.Session) error {
			return s.SetMode(args[0][0])
		})
	},
}

var baudCmd = &cobra.Command{
	Use:   "baud <rate>",
	Short: "Program the bus baud rate",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rate, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			log.Fatalf("Error: bad rate %q: %v", args[0], err)
		}
		withSession(func(s *pru485.Session) error {
			return s.SetBaudRate(uint32(rate))
		})
	},
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Zero the shared configuration area",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withSession(func(s *pru485.Session) error {
			return s.CleanMemory()
		})
	},
}

var counterCmd = &cobra.Command{
	Use:   "counter <n>",
	Short: "Program the sync cycle counter",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		n, err := strconv.ParseUint(args[0], 10, 16)
		if err != nil {
			log.Fatalf("Error: bad counter %q: %v", args[0], err)
		}
		withSession(func(s *pru485.Session) error {
			return s.SetCounter(uint16(n))
		})
	},
}

var timeoutCmd = &cobra.Command{
	Use:   "timeout <units>",
	Short: "Program the firmware receive timeout",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		units, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			log.Fatalf("Error: bad timeout %q: %v", args[0], err)
		}
		withSession(func(s *pru485.Session) error {
			return s.SetTimeout(uint32(units))
		})
	},
}

var syncStepCmd = &cobra.Command{
	Use:   "sync-step",
	Short: "Write the sync preamble for the firmware to replay",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withSession(func(s *pru485.Session) error {
			return s.SyncStep()
		})
	},
}

var hwaddrCmd = &cobra.Command{
	Use:   "hwaddr",
	Short: "Sample the hardware address switch",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withSession(func(s *pru485.Session) error {
			addr, err := s.HardwareAddress()
			if err != nil {
				return err
			}
			fmt.Printf("%d\n", addr)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(modeCmd)
	rootCmd.AddCommand(baudCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(counterCmd)
	rootCmd.AddCommand(timeoutCmd)
	rootCmd.AddCommand(syncStepCmd)
	rootCmd.AddCommand(hwaddrCmd)
}
