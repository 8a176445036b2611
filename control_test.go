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
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("Control", func() {
	var (
		d         *Device
		sharedMem []byte
		s         *Session
	)

	BeforeEach(func() {
		d, sharedMem, _ = newTransferDevice()
		var err error
		s, err = d.Open()
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		s.Close()
	})

	Describe("SetMode", func() {
		It("should select master mode", func() {
			Expect(s.SetMode(Master)).To(Succeed())
			Expect(sharedMem[ModeOffset]).To(Equal(byte(Master)))
			Expect(sharedMem[StatusOffset]).To(BeZero())
		})

		It("should select slave mode and reset the handshake", func() {
			Expect(s.SetMode(Slave)).To(Succeed())
			Expect(sharedMem[ModeOffset]).To(Equal(byte(Slave)))
			Expect(sharedMem[StatusOffset]).To(Equal(byte(OldMessage)))
		})

		It("should reject anything else untouched", func() {
			Expect(s.SetMode('X')).To(MatchError(ErrInvalidArgument))
			Expect(sharedMem[ModeOffset]).To(BeZero())
			Expect(sharedMem[StatusOffset]).To(BeZero())
		})

		It("should clear the sync flag when entering master mode", func() {
			Expect(d.shared.Write8(SyncStopOffset, 1)).To(Succeed())
			Expect(s.SetMode(Master)).To(Succeed())
			Expect(sharedMem[SyncStopOffset]).To(BeZero())
		})

		It("should leave the sync flag alone when entering slave mode", func() {
			Expect(d.shared.Write8(SyncStopOffset, 1)).To(Succeed())
			Expect(s.SetMode(Slave)).To(Succeed())
			Expect(sharedMem[SyncStopOffset]).To(Equal(byte(1)))
		})
	})

	Describe("SyncStep", func() {
		It("should write the preamble", func() {
			Expect(s.SyncStep()).To(Succeed())
			Expect(sharedMem[SyncStepOffset : SyncStepOffset+7]).To(Equal(
				[]byte{0x06, 0xff, 0x50, 0x00, 0x01, 0x0c, 0xa4}))
		})
	})

	Describe("SetCounter", func() {
		It("should store the count little-endian", func() {
			Expect(s.SetCounter(300)).To(Succeed())
			Expect(sharedMem[CounterOffset]).To(Equal(byte(0x2C)))
			Expect(sharedMem[CounterOffset+1]).To(Equal(byte(0x01)))
		})
	})

	Describe("SetTimeout", func() {
		It("should scale the units into firmware ticks", func() {
			// 1 unit = 66600 = 0x010428
			Expect(s.SetTimeout(1)).To(Succeed())
			Expect(sharedMem[TimeoutOffset : TimeoutOffset+4]).To(Equal(
				[]byte{0x28, 0x04, 0x01, 0x00}))
		})

		It("should store larger values byte by byte", func() {
			// 4 units = 266400 = 0x0410A0
			Expect(s.SetTimeout(4)).To(Succeed())
			Expect(sharedMem[TimeoutOffset : TimeoutOffset+4]).To(Equal(
				[]byte{0xA0, 0x10, 0x04, 0x00}))
		})
	})

	Describe("CleanMemory", func() {
		It("should zero only the leading scratch area", func() {
			for i := 0; i < 200; i++ {
				sharedMem[i] = 0xEE
			}
			Expect(s.CleanMemory()).To(Succeed())
			for i := 0; i < 100; i++ {
				Expect(sharedMem[i]).To(BeZero(), "offset %d", i)
			}
			Expect(sharedMem[100]).To(Equal(byte(0xEE)))
		})
	})

	Describe("SetBaudRate", func() {
		It("should program the generator and remember the rate", func() {
			Expect(s.SetBaudRate(115200)).To(Succeed())
			Expect(sharedMem[BrgConfigOffset]).To(Equal(byte(0x09)))
			Expect(sharedMem[DivisorLSBOffset]).To(Equal(byte(0x20)))
			Expect(sharedMem[DivisorMSBOffset]).To(Equal(byte(0x00)))
			// 86805 = 0x015315
			Expect(sharedMem[CharTimeOffset : CharTimeOffset+3]).To(Equal(
				[]byte{0x15, 0x53, 0x01}))

			st, err := d.State()
			Expect(err).ToNot(HaveOccurred())
			Expect(st.Rate).To(Equal(uint32(115200)))
		})

		It("should reject unknown rates untouched", func() {
			Expect(s.SetBaudRate(4800)).To(MatchError(ErrInvalidRate))
			Expect(sharedMem[BrgConfigOffset]).To(BeZero())
			st, err := d.State()
			Expect(err).ToNot(HaveOccurred())
			Expect(st.Rate).To(BeZero())
		})
	})

	Describe("HardwareAddress", func() {
		var (
			mockCtrl *gomock.Controller
			lines    *MockLines
		)

		BeforeEach(func() {
			mockCtrl = gomock.NewController(GinkgoT())
			lines = NewMockLines(mockCtrl)
			d.lines = lines
		})

		AfterEach(func() {
			mockCtrl.Finish()
		})

		It("should publish the sampled address in the window", func() {
			for _, al := range []struct {
				n     uint
				label string
				high  bool
			}{
				{10, "gpio10", true},
				{11, "gpio11", true},
				{9, "gpio9", false},
				{81, "gpio81", false},
				{8, "gpio8", false},
			} {
				l := NewMockLine(mockCtrl)
				lines.EXPECT().Request(al.n, al.label).Return(l, nil)
				l.EXPECT().Input().Return(nil)
				l.EXPECT().Value().Return(al.high, nil)
				l.EXPECT().Close().Return(nil)
			}

			addr, err := s.HardwareAddress()
			Expect(err).ToNot(HaveOccurred())
			Expect(addr).To(Equal(byte(3)))
			Expect(sharedMem[HardwareAddrOffset]).To(Equal(byte(3)))
		})

		It("should fail without a line facility", func() {
			d.lines = nil
			_, err := s.HardwareAddress()
			Expect(err).To(MatchError(ErrUnavailable))
			Expect(sharedMem[HardwareAddrOffset]).To(BeZero())
		})
	})

	Describe("Dispatch", func() {
		It("should route numbered commands to their operations", func() {
			Expect(s.Control(CmdSetMode, 'S')).To(Succeed())
			Expect(sharedMem[ModeOffset]).To(Equal(byte(Slave)))

			Expect(s.Control(CmdSetCounter, 300)).To(Succeed())
			Expect(sharedMem[CounterOffset]).To(Equal(byte(0x2C)))

			Expect(s.Control(CmdSetBaudRate, 9600)).To(Succeed())
			Expect(sharedMem[BrgConfigOffset]).To(Equal(byte(0x0a)))
		})

		It("should reject unknown command numbers", func() {
			Expect(s.Control(Command(9), 0)).To(MatchError(ErrInvalidCommand))
			Expect(s.Control(Command(17), 0)).To(MatchError(ErrInvalidCommand))
		})

		It("should name every command", func() {
			names := map[Command]string{
				CmdCleanMemory:     "clean",
				CmdSetMode:         "set-mode",
				CmdSyncStep:        "sync-step",
				CmdSetCounter:      "set-counter",
				CmdHardwareAddress: "hw-address",
				CmdSetBaudRate:     "set-baud",
				CmdSetTimeout:      "set-timeout",
			}
			for cmd, want := range names {
				Expect(cmd.String()).To(Equal(want))
			}
			Expect(Command(42).String()).To(Equal("command(42)"))
		})
	})

	Describe("Journalling", func() {
		var (
			mockCtrl *gomock.Controller
			rec      *MockRecorder
		)

		BeforeEach(func() {
			mockCtrl = gomock.NewController(GinkgoT())
			rec = NewMockRecorder(mockCtrl)
			d.rec = rec
		})

		AfterEach(func() {
			mockCtrl.Finish()
		})

		It("should journal commands with their argument", func() {
			var got CommandRecord
			rec.EXPECT().Command(gomock.Any()).Do(func(r CommandRecord) { got = r })

			Expect(s.SetBaudRate(9600)).To(Succeed())
			Expect(got.Session).To(Equal(s.ID()))
			Expect(got.Command).To(Equal("set-baud"))
			Expect(got.Arg).To(Equal(uint32(9600)))
			Expect(got.Err).To(BeEmpty())
		})

		It("should journal rejected commands", func() {
			var got CommandRecord
			rec.EXPECT().Command(gomock.Any()).Do(func(r CommandRecord) { got = r })

			Expect(s.SetBaudRate(4800)).To(MatchError(ErrInvalidRate))
			Expect(got.Command).To(Equal("set-baud"))
			Expect(got.Err).ToNot(BeEmpty())
		})
	})
})
