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
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rich1111/pru485"
	"github.com/rich1111/pru485/recording"
	"github.com/rich1111/pru485/sim"
	"github.com/rich1111/pru485/uio"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pru485ctl",
	Short: "Control the PRU RS-485 bridge",
	Long: `Pru485ctl configures and exercises the shared-memory mailbox of the ` +
		`PRU RS-485 bridge: mode and baud selection, message transfer, firmware ` +
		`control and a diagnostics server.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			pru485.SetLogLevel(slog.LevelDebug)
		}
	},
}

var (
	deviceFlag string
	devmemFlag bool
	simFlag    bool
	recordFlag bool
	dbFlag     string
	timeoutVal time.Duration
	verbose    bool
)

func init() {
	godotenv.Load()
	rootCmd.PersistentFlags().StringVar(&deviceFlag, "device",
		os.Getenv("PRU485_DEVICE"), "UIO event device (default /dev/uio1)")
	rootCmd.PersistentFlags().BoolVar(&devmemFlag, "devmem", false,
		"map the subsystem through /dev/mem instead of UIO")
	rootCmd.PersistentFlags().BoolVar(&simFlag, "sim", false,
		"use the in-memory subsystem instead of hardware")
	rootCmd.PersistentFlags().BoolVar(&recordFlag, "record", false,
		"journal transfers and commands to SQLite")
	rootCmd.PersistentFlags().StringVar(&dbFlag, "db",
		os.Getenv("PRU485_DB"), "journal file (default a generated name)")
	rootCmd.PersistentFlags().DurationVar(&timeoutVal, "timeout", 0,
		"bound on transfer waits (default 2s)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"log driver internals")
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// openDevice assembles the backend the flags select and attaches the
// driver to it. The returned cleanup detaches and closes the journal.
func openDevice() (*pru485.Device, *recording.Writer, func()) {
	cfg := pru485.Config{
		WaitTimeout: timeoutVal,
		SpinTimeout: timeoutVal,
	}

	if simFlag {
		p := sim.New()
		cfg.Resources = p
		cfg.Ints = p
		cfg.Lines = sim.NewLines()
	} else {
		h, err := uio.Open(uio.Config{
			Device:      deviceFlag,
			ForceDevMem: devmemFlag,
		})
		if err != nil {
			log.Fatalf("Error opening subsystem: %v", err)
		}
		cfg.Resources = h
		if h.HasEvents() {
			cfg.Ints = h
		} else {
			log.Printf("Warning: no event device, transfers cannot complete")
		}
		cfg.Lines = uio.NewLines()
	}

	var journal *recording.Writer
	if recordFlag || dbFlag != "" {
		var err error
		journal, err = recording.New(dbFlag)
		if err != nil {
			log.Fatalf("Error opening journal: %v", err)
		}
		cfg.Recorder = journal
	}

	dev, err := pru485.Attach(cfg)
	if err != nil {
		if journal != nil {
			journal.Close()
		}
		log.Fatalf("Error attaching device: %v", err)
	}
	cleanup := func() {
		dev.Detach()
		if journal != nil {
			journal.Close()
		}
	}
	return dev, journal, cleanup
}

// withSession runs f inside a freshly opened session.
func withSession(f func(s *pru485.Session) error) {
	dev, _, cleanup := openDevice()
	defer cleanup()
	sess, err := dev.Open()
	if err != nil {
		log.Fatalf("Error opening session: %v", err)
	}
	defer sess.Close()
	if sess.Dirty() {
		log.Printf("Warning: previous session left an unfinished transfer")
	}
	if err := f(sess); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
