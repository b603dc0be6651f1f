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

// LookupArgument asserts that, on every row, the tuple of Input expressions
// appears somewhere in the tuple of Table expressions (spec.md §3). Input and
// Table must have equal length.
type LookupArgument[F field.Element[F]] struct {
	Name  string
	Input []Expression[F]
	Table []Expression[F]
}

// RequiredDegree is the minimum constraint-system degree this argument's
// permutation-style product argument needs to be expressed soundly: the
// standard halo2 bound of max(4, 2 + deg(input) + deg(table)).
func (l LookupArgument[F]) RequiredDegree() int {
	inputDegree := maxDegree(l.Input)
	tableDegree := maxDegree(l.Table)

	d := 2 + inputDegree + tableDegree
	if d < 4 {
		return 4
	}

	return d
}

func maxDegree[F field.Element[F]](exprs []Expression[F]) int {
	max := 1
	for _, e := range exprs {
		if d := e.Degree(); d > max {
			max = d
		}
	}

	return max
}
