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

// Constraint names a single polynomial that must vanish on every row.
type Constraint[F field.Element[F]] struct {
	Name string
	Poly Expression[F]
}

// Constraints is a builder recovered from the original source
// (Constraints::with_selector): a gate closure may return a selector
// expression plus a list of (name, poly) pairs, and every constraint is
// rewritten to selector*poly automatically. It is sugar over the
// name-tagging already required by create_gate, not a new constraint kind.
type Constraints[F field.Element[F]] struct {
	selector Expression[F]
	items    []Constraint[F]
}

// WithSelector starts a Constraints builder that multiplies every constraint
// added to it by selector.
func WithSelector[F field.Element[F]](selector Expression[F]) Constraints[F] {
	return Constraints[F]{selector: selector}
}

// Add appends a (name, poly) pair; the stored constraint becomes
// selector*poly.
func (c Constraints[F]) Add(name string, poly Expression[F]) Constraints[F] {
	c.items = append(c.items, Constraint[F]{Name: name, Poly: c.selector.Mul(poly)})

	return c
}

// Build returns the accumulated constraints, ready to hand to CreateGate.
func (c Constraints[F]) Build() []Constraint[F] {
	return c.items
}
