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

import (
	log "github.com/sirupsen/logrus"

	"github.com/zkplonk/circuit/column"
	"github.com/zkplonk/circuit/cs"
	"github.com/zkplonk/circuit/field"
)

// Circuit is a user's circuit description. Configure populates a
// ConstraintSystem and is expected to stash the column handles it allocates
// on the circuit's own fields (Go has no associated-type equivalent of the
// original's per-circuit Config type, so the circuit struct plays that role
// directly). WithoutWitnesses returns a copy suitable for the measurement
// pass: one that must reach the same region/column/row shape as the real
// pass without computing any witness values (spec.md §4.9).
type Circuit[F field.Element[F]] interface {
	Configure(csys *cs.ConstraintSystem[F])
	Synthesize(l Layouter[F]) error
	WithoutWitnesses() Circuit[F]
}

// FloorPlanner drives a Circuit's two synthesis passes against a backend
// Assignment sink (spec.md §1, §4.5-§4.9).
type FloorPlanner[F field.Element[F]] interface {
	Synthesize(backend Assignment[F], circuit Circuit[F], constants []column.Column) error
}

// V1 is the only floor planner this module implements: no column-reuse
// optimizations, regions measured as rectangles, placed by
// SlotInBiggestAdviceFirst (spec.md §9 "Dual-pass layouter").
type V1[F field.Element[F]] struct {
	log *log.Logger
}

// Option configures a V1 floor planner at construction.
type Option[F field.Element[F]] func(*V1[F])

// WithLogger overrides the default (standard, package-global) logger. A nil
// logger keeps the default.
func WithLogger[F field.Element[F]](l *log.Logger) Option[F] {
	return func(v *V1[F]) {
		if l != nil {
			v.log = l
		}
	}
}

// NewV1 constructs a V1 floor planner.
func NewV1[F field.Element[F]](opts ...Option[F]) *V1[F] {
	v := &V1[F]{log: log.StandardLogger()}
	for _, opt := range opts {
		opt(v)
	}

	return v
}

// Synthesize runs the measurement pass, allocates regions via
// SlotInBiggestAdviceFirst, runs the assignment pass against backend, and
// finally wires global constants into free fixed-column rows (spec.md §4.8).
func (v *V1[F]) Synthesize(backend Assignment[F], circuit Circuit[F], constants []column.Column) error {
	measure := NewMeasurementPass[F]()
	if err := circuit.WithoutWitnesses().Synthesize(&measurementLayouter[F]{pass: measure}); err != nil {
		return err
	}

	regionStarts, colAllocations := SlotInBiggestAdviceFirst(measure.Regions(), v.log)

	var firstUnassignedRow uint64
	for _, alloc := range colAllocations {
		if start := alloc.UnboundedIntervalStart(); start > firstUnassignedRow {
			firstUnassignedRow = start
		}
	}

	plan := &Plan[F]{backend: backend, regions: regionStarts, log: v.log}
	assign := &AssignmentPass[F]{plan: plan}

	if err := circuit.Synthesize(&assignmentLayouter[F]{pass: assign}); err != nil {
		return err
	}

	return wireConstants(plan, constants, colAllocations, firstUnassignedRow)
}

// wireConstants implements spec.md §4.8: stream (fixed_column, row)
// positions from the free intervals of the allowed constant columns, pair
// them in order with the recorded (constant, advice_cell) requests, and emit
// an assignment plus an equality copy for each pair.
func wireConstants[F field.Element[F]](plan *Plan[F], constants []column.Column, colAllocations map[column.Column]ColumnAllocation, firstUnassignedRow uint64) error {
	type position struct {
		col column.Column
		row uint64
	}

	var free []position

	for _, col := range constants {
		alloc := colAllocations[col]

		for _, iv := range alloc.FreeIntervals(0, firstUnassignedRow) {
			for r := iv.Start; r < iv.End; r++ {
				free = append(free, position{col, r})
			}
		}
	}

	if len(free) < len(plan.constants) {
		plan.log.WithField("needed", len(plan.constants)).WithField("available", len(free)).
			Warn("layouter: not enough free fixed-column rows to wire every recorded constant")

		return ErrNotEnoughColumnsForConstants
	}

	for i, entry := range plan.constants {
		pos := free[i]
		value := entry.value

		if err := plan.backend.AssignFixed("constant", pos.col, pos.row, func() field.Value[F] { return field.Known(value) }); err != nil {
			return err
		}

		if err := plan.backend.Copy(pos.col, pos.row, entry.cell.Column, plan.absolute(entry.cell)); err != nil {
			return err
		}
	}

	return nil
}
