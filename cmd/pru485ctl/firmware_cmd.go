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

	"github.com/spf13/cobra"

	"github.com/rich1111/pru485/uio"
)

var firmwareUnit int

var firmwareCmd = &cobra.Command{
	Use:   "firmware",
	Short: "Control the PRU core through remoteproc",
}

var firmwareLoadCmd = &cobra.Command{
	Use:   "load <name>",
	Short: "Select a firmware image from /lib/firmware",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		r := openRproc()
		if err := r.Load(args[0]); err != nil {
			log.Fatalf("Error loading firmware: %v", err)
		}
	},
}

var firmwareStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the PRU core",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		r := openRproc()
		if err := r.Start(); err != nil {
			log.Fatalf("Error starting core: %v", err)
		}
	},
}

var firmwareStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the PRU core",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		r := openRproc()
		if err := r.Stop(); err != nil {
			log.Fatalf("Error stopping core: %v", err)
		}
	},
}

var firmwareStateCmd = &cobra.Command{
	Use:   "state",
	Short: "Print the PRU core state",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		r := openRproc()
		state, err := r.State()
		if err != nil {
			log.Fatalf("Error reading state: %v", err)
		}
		fmt.Println(state)
	},
}

func openRproc() *uio.Rproc {
	r, err := uio.NewRproc(firmwareUnit)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	return r
}

func init() {
	firmwareCmd.PersistentFlags().IntVar(&firmwareUnit, "unit", 1,
		"PRU core number (0 or 1)")
	firmwareCmd.AddCommand(firmwareLoadCmd)
	firmwareCmd.AddCommand(firmwareStartCmd)
	firmwareCmd.AddCommand(firmwareStopCmd)
	firmwareCmd.AddCommand(firmwareStateCmd)
	rootCmd.AddCommand(firmwareCmd)
}
