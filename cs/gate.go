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

import (
	"github.com/zkplonk/circuit/column"
	"github.com/zkplonk/circuit/field"
)

// Gate is a named bundle of polynomial identities, together with the
// selectors and virtual cells its polynomials query (spec.md §3). A gate
// must contain at least one constraint; CreateGate panics otherwise.
type Gate[F field.Element[F]] struct {
	Name             string
	ConstraintNames  []string
	Polys            []Expression[F]
	QueriedSelectors []column.Selector
	QueriedCells     []column.VirtualCell
}

// Degree returns the maximum degree among this gate's constraint
// polynomials.
func (g Gate[F]) Degree() int {
	max := 0
	for _, p := range g.Polys {
		if d := p.Degree(); d > max {
			max = d
		}
	}

	return max
}
