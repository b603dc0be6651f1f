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

import (
	"cmp"
	"fmt"
)

// Column identifies a single column of the constraint system: its family
// (Kind) and its index within that family. Phase is meaningful only when Kind
// == Advice; it records which phase of the interactive protocol the column
// was allocated in.
//
// This ordering is consensus-critical! The floor planner and any backend
// serialization rely on a deterministic total order over columns, so Cmp (and
// anything built on top of it, such as sorted-set membership) must never be
// bypassed by map iteration.
type Column struct {
	index uint64
	kind  Kind
	phase uint8
}

// New constructs a Column of the given kind and index. Phase is set to 0;
// callers allocating advice columns in a later phase should use NewAdvice.
func New(kind Kind, index uint64) Column {
	return Column{index: index, kind: kind}
}

// NewAdvice constructs an Advice column tagged with its allocation phase.
func NewAdvice(index uint64, phase uint8) Column {
	return Column{index: index, kind: Advice, phase: phase}
}

// Index returns the column's position within its family.
func (c Column) Index() uint64 { return c.index }

// Kind returns the column's family.
func (c Column) Kind() Kind { return c.kind }

// Phase returns the advice phase this column was allocated in. Zero for
// non-advice columns.
func (c Column) Phase() uint8 { return c.phase }

// Cmp totally orders columns: first by Kind (Instance < Advice < Fixed), then
// by Index. Equality ignores Phase, matching the spec's column equality rule.
func (c Column) Cmp(o Column) int {
	if d := c.kind.Cmp(o.kind); d != 0 {
		return d
	}

	return cmp.Compare(c.index, o.index)
}

// Equal reports whether two columns denote the same (kind, index) pair.
func (c Column) Equal(o Column) bool {
	return c.kind == o.kind && c.index == o.index
}

// String renders a column as "kind[index]", the form query identifiers use.
func (c Column) String() string {
	return fmt.Sprintf("%s[%d]", c.kind, c.index)
}
