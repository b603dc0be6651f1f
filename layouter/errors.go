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

package layouter

import "errors"

// Sentinel errors for the planner's recoverable failure modes (spec.md §6
// error taxonomy, §7). Callers distinguish these with errors.Is; everything
// else here is a programmer-error panic, per spec.md §7.
var (
	// ErrNotEnoughColumnsForConstants is returned when fewer free fixed-column
	// rows exist than recorded constant-wiring requests.
	ErrNotEnoughColumnsForConstants = errors.New("layouter: not enough free fixed-column rows to wire every recorded constant")
	// ErrTableShapeMismatch is returned when a table's columns disagree on
	// their first-unused row, or a column is reused across tables.
	ErrTableShapeMismatch = errors.New("layouter: table shape mismatch")
	// ErrUnassignedTableCell is returned when a table column has a gap below
	// its first-unused row.
	ErrUnassignedTableCell = errors.New("layouter: unassigned table cell below first-unused row")
)
