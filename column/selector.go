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

// Selector is a per-row boolean toggle, eventually realized as a fixed column
// after selector compression. A Simple selector carries the additional
// algebraic restriction (enforced by the cs package, not here) that it may
// never be multiplied by an expression transitively containing another simple
// selector, and may never appear inside a lookup or shuffle expression.
type Selector struct {
	index  uint64
	simple bool
}

// NewSimple constructs a simple selector.
func NewSimple(index uint64) Selector {
	return Selector{index: index, simple: true}
}

// NewComplex constructs a complex (non-simple) selector.
func NewComplex(index uint64) Selector {
	return Selector{index: index}
}

// Index returns the selector's allocation index.
func (s Selector) Index() uint64 { return s.index }

// IsSimple reports whether this selector is subject to the simple-selector
// algebraic quarantine.
func (s Selector) IsSimple() bool { return s.simple }

// Equal reports whether two selectors refer to the same allocation.
func (s Selector) Equal(o Selector) bool {
	return s.index == o.index && s.simple == o.simple
}

// String renders a selector as "selector[i]", the form query identifiers use.
func (s Selector) String() string {
	return fmt.Sprintf("selector[%d]", s.index)
}
