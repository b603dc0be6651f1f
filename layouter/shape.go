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

// Package layouter implements the two-pass floor planner: measurement,
// first-fit column allocation, and assignment against a backend witness sink
// (spec.md §4.5-§4.9).
package layouter

import (
	"fmt"

	"github.com/zkplonk/circuit/column"
	"github.com/zkplonk/circuit/field"
)

// RegionStart is the absolute row the allocator assigned to a region.
type RegionStart uint64

// RegionShape is the bounding rectangle a region's assignment closure would
// touch: the set of columns it writes and the number of rows it spans
// (spec.md §3). Built write-only during the measurement pass.
type RegionShape struct {
	index    uint64
	columns  []column.Column
	rowCount uint64
}

// Index returns this shape's region index.
func (s RegionShape) Index() uint64 { return s.index }

// Columns returns the columns this region touches, in first-touch order.
func (s RegionShape) Columns() []column.Column { return s.columns }

// RowCount returns 1 + the largest row offset ever written in this region,
// or 0 if nothing was ever written.
func (s RegionShape) RowCount() uint64 { return s.rowCount }

func (s *RegionShape) touchRow(offset uint64) {
	if offset+1 > s.rowCount {
		s.rowCount = offset + 1
	}
}

func (s *RegionShape) touchCell(col column.Column, offset uint64) {
	s.touchRow(offset)

	for _, c := range s.columns {
		if c.Equal(col) {
			return
		}
	}

	s.columns = append(s.columns, col)
}

// measureRegion is the Region[F] implementation driven during measurement:
// every write only records the cell it would have touched (spec.md §4.5).
type measureRegion[F field.Element[F]] struct {
	shape *RegionShape
}

func (r *measureRegion[F]) EnableSelector(_ column.Selector, offset uint64) error {
	r.shape.touchRow(offset)
	return nil
}

func (r *measureRegion[F]) AssignAdvice(col column.Column, offset uint64, _ func() field.Value[F]) (column.Cell, error) {
	r.shape.touchCell(col, offset)
	return column.NewCell(r.shape.index, offset, col), nil
}

func (r *measureRegion[F]) AssignAdviceFromConstant(col column.Column, offset uint64, _ F) (column.Cell, error) {
	return r.AssignAdvice(col, offset, nil)
}

func (r *measureRegion[F]) AssignAdviceFromInstance(_ column.Column, _ uint64, adviceCol column.Column, offset uint64) (column.Cell, field.Value[F], error) {
	cell, err := r.AssignAdvice(adviceCol, offset, nil)
	return cell, field.Unknown[F](), err
}

func (r *measureRegion[F]) AssignFixed(col column.Column, offset uint64, _ func() field.Value[F]) (column.Cell, error) {
	r.shape.touchCell(col, offset)
	return column.NewCell(r.shape.index, offset, col), nil
}

func (r *measureRegion[F]) ConstrainConstant(_ column.Cell, _ F) error { return nil }

func (r *measureRegion[F]) ConstrainEqual(_, _ column.Cell) error { return nil }

func (r *measureRegion[F]) NameColumn(_ string, _ column.Column) {}

func (r *measureRegion[F]) InstanceValue(_ column.Column, _ uint64) (field.Value[F], error) {
	return field.Unknown[F](), nil
}

// MeasurementPass drives pass 1: every assigned region is measured into a
// fresh RegionShape, in region-index order (spec.md §4.5).
type MeasurementPass[F field.Element[F]] struct {
	regions []RegionShape
}

// NewMeasurementPass constructs an empty measurement pass.
func NewMeasurementPass[F field.Element[F]]() *MeasurementPass[F] {
	return &MeasurementPass[F]{}
}

// AssignRegion measures one region: assign is invoked against a write-only
// Region handle, and the resulting shape is appended.
func (m *MeasurementPass[F]) AssignRegion(assign func(Region[F]) error) error {
	idx := uint64(len(m.regions))
	shape := RegionShape{index: idx}

	if err := assign(&measureRegion[F]{shape: &shape}); err != nil {
		return fmt.Errorf("layouter: measuring region %d: %w", idx, err)
	}

	m.regions = append(m.regions, shape)

	return nil
}

// Regions returns the measured shapes, in region-index order.
func (m *MeasurementPass[F]) Regions() []RegionShape {
	return m.regions
}
