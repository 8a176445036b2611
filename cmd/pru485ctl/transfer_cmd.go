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
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/rich1111/pru485"
)

var hexFlag bool

var sendCmd = &cobra.Command{
	Use:   "send <payload>",
	Short: "Send one message through the mailbox",
	Long: `Send writes one framed message and waits for the firmware to take ` +
		`it. With --hex the payload is decoded from hex digits; "-" reads the ` +
		`payload from stdin.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		payload := []byte(args[0])
		if args[0] == "-" {
			var err error
			payload, err = os.ReadFile("/dev/stdin")
			if err != nil {
				log.Fatalf("Error reading stdin: %v", err)
			}
		} else if hexFlag {
			var err error
			payload, err = hex.DecodeString(args[0])
			if err != nil {
				log.Fatalf("Error: bad hex payload: %v", err)
			}
		}
		withSession(func(s *pru485.Session) error {
			n, err := s.Send(context.Background(), payload)
			if err != nil {
				return err
			}
			fmt.Printf("sent %d bytes\n", n)
			return nil
		})
	},
}

var recvCmd = &cobra.Command{
	Use:   "recv",
	Short: "Take one message from the mailbox",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withSession(func(s *pru485.Session) error {
			payload, err := s.Receive(context.Background())
			if err != nil {
				return err
			}
			if hexFlag {
				fmt.Println(hex.EncodeToString(payload))
			} else {
				os.Stdout.Write(payload)
			}
			return nil
		})
	},
}

func init() {
	sendCmd.Flags().BoolVar(&hexFlag, "hex", false, "payload is hex digits")
	recvCmd.Flags().BoolVar(&hexFlag, "hex", false, "print the payload as hex")
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(recvCmd)
}
