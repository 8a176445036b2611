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

import "kernel.org/pub/linux/libs/security/libcap/cap"

// canRawIO reports whether the process holds the capability that
// mapping physical memory requires.
func canRawIO() bool {
	ok, err := cap.GetProc().GetFlag(cap.Effective, cap.SYS_RAWIO)
	return err == nil && ok
}
