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

/*

Package pru485 drives the shared-memory messaging bridge between a Linux host
and the Programmable Real-time Units (PRU) of the TI AM335x
(https://www.ti.com/processors/sitara-arm/applications/industrial-communications.html),
as found on the Beaglebone Black (https://beagleboard.org/black) running an
RS-485 bridge firmware.

The firmware and the host share a fixed window of PRU data RAM: messages are
framed with a 4-byte length and handed over through mailboxes at fixed
offsets, synchronized by a handshake byte and a single host interrupt.
This package implements the host side of that protocol. Attach borrows the
mapped region from a backend (package uio on real hardware, package sim
everywhere else) and Open hands out the one live Session, which carries the
send, receive and control operations.

This package does not include any support for developing or building the PRU
firmware; for that, the standard TI PRU S/W support package should be used
(https://git.ti.com/cgit/pru-software-support-package). The uio package can
load a prebuilt image through the RemoteProc framework
(https://software-dl.ti.com/processor-sdk-linux/esd/docs/08_00_00_21/linux/Foundational_Components/PRU-ICSS/Linux_Drivers/RemoteProc.html).

*/
package pru485
