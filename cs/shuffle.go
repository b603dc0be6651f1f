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

package cs

import "github.com/zkplonk/circuit/field"

// ShuffleArgument asserts that, across all rows, the tuple of Input
// expressions is a permutation of the tuple of Shuffled expressions
// (spec.md §3). Input and Shuffled must have equal length.
type ShuffleArgument[F field.Element[F]] struct {
	Name     string
	Input    []Expression[F]
	Shuffled []Expression[F]
}

// RequiredDegree is the minimum constraint-system degree this argument's
// grand-product needs: max(2+deg(input), 2+deg(shuffled)).
func (s ShuffleArgument[F]) RequiredDegree() int {
	inputDegree := maxDegree(s.Input)
	shuffleDegree := maxDegree(s.Shuffled)

	d := 2 + inputDegree
	if alt := 2 + shuffleDegree; alt > d {
		d = alt
	}

	return d
}
