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

import "github.com/zkplonk/circuit/column"

// PermutationArgument is the set of columns on which equality constraints may
// be asserted (spec.md §3). A column must be added here -- "equality-enabled"
// -- before any cell in it can be linked to another via constrain_equal.
type PermutationArgument struct {
	columns []column.Column
}

// RequiredDegree is the standard halo2 permutation-argument degree bound.
func (p *PermutationArgument) RequiredDegree() int {
	if len(p.columns) == 0 {
		return 1
	}

	return 2
}

// Columns returns the equality-enabled columns, in the order they were
// enabled.
func (p *PermutationArgument) Columns() []column.Column {
	return p.columns
}

// Contains reports whether col is already equality-enabled.
func (p *PermutationArgument) Contains(col column.Column) bool {
	for _, c := range p.columns {
		if c.Equal(col) {
			return true
		}
	}

	return false
}

// Add equality-enables col, ignoring a column already present.
func (p *PermutationArgument) Add(col column.Column) {
	if p.Contains(col) {
		return
	}

	p.columns = append(p.columns, col)
}
