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

// Package column defines the typed column, rotation, selector, challenge and
// cell identifiers shared by the constraint-system builder and the floor
// planner. It has no dependency on either, so both can depend on it without a
// cycle.
package column

import "cmp"

// Kind tags which of the three column families a Column belongs to. The
// numeric ordering below (Instance < Advice < Fixed) is consensus-critical:
// Column.Cmp and every ordered container keyed on columns depends on it.
type Kind uint8

const (
	// Instance columns hold public inputs.
	Instance Kind = iota
	// Advice columns hold prover-chosen witness values.
	Advice
	// Fixed columns hold circuit-author-chosen values fixed at setup.
	Fixed
)

// Cmp orders kinds Instance < Advice < Fixed.
func (k Kind) Cmp(o Kind) int {
	return cmp.Compare(k, o)
}

// String renders the kind the way query identifiers expect (lowercase).
func (k Kind) String() string {
	switch k {
	case Instance:
		return "instance"
	case Advice:
		return "advice"
	case Fixed:
		return "fixed"
	default:
		return "unknown"
	}
}
