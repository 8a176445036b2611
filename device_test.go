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
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

// Region geometry used by the mock resource supply.
const (
	testIntcBase  = minSharedLen
	testRegionLen = testIntcBase + minIntcLen
)

var _ = Describe("Device", func() {
	var mockCtrl *gomock.Controller

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	// region wires a mock resource supply over a fresh slice of n bytes.
	region := func(n int) *MockResources {
		res := NewMockResources(mockCtrl)
		res.EXPECT().Mem().Return(make([]byte, n)).AnyTimes()
		res.EXPECT().SharedBase().Return(0).AnyTimes()
		res.EXPECT().IntcBase().Return(testIntcBase).AnyTimes()
		res.EXPECT().IRQ().Return(21).AnyTimes()
		res.EXPECT().BaseIRQ().Return(20).AnyTimes()
		return res
	}

	Describe("Attach", func() {
		It("should fail without a resource supply", func() {
			_, err := Attach(Config{})
			Expect(err).To(MatchError(ErrUnavailable))
		})

		It("should give the region back when it is too small", func() {
			res := region(0x1000)
			res.EXPECT().Close().Return(nil)
			_, err := Attach(Config{Resources: res})
			Expect(err).To(MatchError(ErrUnavailable))
		})

		It("should give the region back when the interrupt source fails", func() {
			res := region(testRegionLen)
			res.EXPECT().Close().Return(nil)
			ints := NewMockIntSource(mockCtrl)
			ints.EXPECT().Start(gomock.Any()).Return(errors.New("no uio device"))

			_, err := Attach(Config{Resources: res, Ints: ints})
			Expect(err).To(MatchError(ErrUnavailable))
		})

		It("should install the interrupt handler and stop delivery on detach", func() {
			res := region(testRegionLen)
			res.EXPECT().Close().Return(nil)
			ints := NewMockIntSource(mockCtrl)
			var handler func(int) IntResult
			ints.EXPECT().Start(gomock.Any()).DoAndReturn(func(h func(int) IntResult) error {
				handler = h
				return nil
			})
			ints.EXPECT().Close().Return(nil)

			dev, err := Attach(Config{Resources: res, Ints: ints})
			Expect(err).ToNot(HaveOccurred())
			Expect(handler).ToNot(BeNil())
			Expect(handler(17)).To(Equal(IntNone))
			Expect(dev.Detach()).To(Succeed())
		})
	})

	Describe("Sessions", func() {
		var (
			res *MockResources
			dev *Device
		)

		BeforeEach(func() {
			res = region(testRegionLen)
			res.EXPECT().Close().Return(nil)
			var err error
			dev, err = Attach(Config{Resources: res})
			Expect(err).ToNot(HaveOccurred())
		})

		AfterEach(func() {
			dev.Detach()
		})

		It("should hand out one session at a time", func() {
			s, err := dev.Open()
			Expect(err).ToNot(HaveOccurred())
			Expect(s.ID()).ToNot(BeEmpty())

			_, err = dev.Open()
			Expect(err).To(MatchError(ErrBusy))

			Expect(s.Close()).To(Succeed())
			s2, err := dev.Open()
			Expect(err).ToNot(HaveOccurred())
			Expect(s2.ID()).ToNot(Equal(s.ID()))
			Expect(s2.Close()).To(Succeed())
		})

		It("should tolerate closing a session twice", func() {
			s, err := dev.Open()
			Expect(err).ToNot(HaveOccurred())
			Expect(s.Close()).To(Succeed())
			Expect(s.Close()).To(Succeed())

			s2, err := dev.Open()
			Expect(err).ToNot(HaveOccurred())
			s2.Close()
		})

		It("should reject operations on a closed session", func() {
			s, err := dev.Open()
			Expect(err).ToNot(HaveOccurred())
			Expect(s.Close()).To(Succeed())
			Expect(s.CleanMemory()).To(MatchError(ErrClosed))
		})

		It("should surface an abandoned transfer to the next session only", func() {
			dev.dirty.Store(true)
			s, err := dev.Open()
			Expect(err).ToNot(HaveOccurred())
			Expect(s.Dirty()).To(BeTrue())
			s.Close()

			s2, err := dev.Open()
			Expect(err).ToNot(HaveOccurred())
			Expect(s2.Dirty()).To(BeFalse())
			s2.Close()
		})

		It("should snapshot the device state", func() {
			w := dev.SharedRam()
			Expect(w.Write8(ModeOffset, Slave)).To(Succeed())
			Expect(w.Write8(StatusOffset, OldMessage)).To(Succeed())
			Expect(w.Write8(HardwareAddrOffset, 7)).To(Succeed())
			Expect(w.Write16(CounterOffset, 300)).To(Succeed())

			st, err := dev.State()
			Expect(err).ToNot(HaveOccurred())
			Expect(st.Mode).To(Equal(byte(Slave)))
			Expect(st.Status).To(Equal(byte(OldMessage)))
			Expect(st.HwAddr).To(Equal(byte(7)))
			Expect(st.Counter).To(Equal(uint16(300)))
			Expect(st.Busy).To(BeFalse())

			s, err := dev.Open()
			Expect(err).ToNot(HaveOccurred())
			st, err = dev.State()
			Expect(err).ToNot(HaveOccurred())
			Expect(st.Busy).To(BeTrue())
			s.Close()
		})
	})

	Describe("Detach", func() {
		It("should fail later operations and release only once", func() {
			res := region(testRegionLen)
			res.EXPECT().Close().Return(nil)
			dev, err := Attach(Config{Resources: res})
			Expect(err).ToNot(HaveOccurred())

			Expect(dev.Detach()).To(Succeed())
			Expect(dev.Detach()).To(Succeed())

			_, err = dev.Open()
			Expect(err).To(MatchError(ErrFault))
			_, err = dev.State()
			Expect(err).To(MatchError(ErrFault))
		})
	})
})
