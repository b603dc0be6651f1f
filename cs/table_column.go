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

// TableColumn is a private wrapping of a fixed column, produced only by
// ConstraintSystem.LookupTableColumn (spec.md §3). The wrapping exists so a
// chip author cannot write into a table-backed fixed column through the
// ordinary assign-fixed path, which would skip the table layouter's
// default-filling and could cause soundness bugs: a table's unused rows must
// be filled with a declared default, not left to whatever the author's own
// assign_fixed calls happen to leave behind.
//
// Column is exposed only for the floor planner's table layouter, which is the
// sole caller allowed to turn a TableColumn back into a plain Column for
// writing. Treat it as package-internal despite being exported: ordinary
// circuit code should never call it.
type TableColumn struct {
	col column.Column
}

// Column returns the fixed column this TableColumn wraps. Reserved for the
// floor planner's table layouter.
func (t TableColumn) Column() column.Column {
	return t.col
}
