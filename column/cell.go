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

// Cell identifies a grid slot by value: the region it was written in, its row
// offset relative to that region's (not yet known) start row, and the column
// written. Cells are compared by value, never by reference.
type Cell struct {
	RegionIndex uint64
	RowOffset   uint64
	Column      Column
}

// NewCell constructs a Cell.
func NewCell(regionIndex, rowOffset uint64, col Column) Cell {
	return Cell{RegionIndex: regionIndex, RowOffset: rowOffset, Column: col}
}

// String renders a cell for diagnostics.
func (c Cell) String() string {
	return fmt.Sprintf("region[%d]@%d:%s", c.RegionIndex, c.RowOffset, c.Column)
}

// VirtualCell is a (column, rotation) pair: the unit a gate or argument
// queries against the "current row" during evaluation, prior to any
// query-index interning.
type VirtualCell struct {
	Column   Column
	Rotation Rotation
}

// NewVirtualCell constructs a VirtualCell.
func NewVirtualCell(col Column, rot Rotation) VirtualCell {
	return VirtualCell{Column: col, Rotation: rot}
}

// String renders a virtual cell for diagnostics.
func (v VirtualCell) String() string {
	return fmt.Sprintf("%s@%s", v.Column, v.Rotation)
}
