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

	"github.com/spf13/cobra"

	"github.com/rich1111/pru485/monitor"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve device diagnostics and control over HTTP",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		dev, journal, cleanup := openDevice()
		defer cleanup()
		var history monitor.History
		if journal != nil {
			history = journal
		}
		srv := monitor.New(dev, history)
		log.Printf("serving on %s", serveAddr)
		if err := srv.ListenAndServe(serveAddr); err != nil {
			log.Fatalf("Error: %v", err)
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8485", "listen address")
	rootCmd.AddCommand(serveCmd)
}
