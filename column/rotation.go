// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package column

import "fmt"

// Rotation is a signed row offset applied relative to the "current row" when
// a gate queries a column.
type Rotation int32

// Cur is the zero rotation: the current row.
func Cur() Rotation { return 0 }

// Next is the rotation one row ahead.
func Next() Rotation { return 1 }

// Prev is the rotation one row behind.
func Prev() Rotation { return -1 }

// Of constructs an arbitrary rotation.
func Of(n int32) Rotation { return Rotation(n) }

// String renders a rotation as "rot(n)", used by query identifiers.
func (r Rotation) String() string {
	return fmt.Sprintf("rot(%d)", int32(r))
}
