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
	"github.com/zkplonk/circuit/column"
	"github.com/zkplonk/circuit/cs"
	"github.com/zkplonk/circuit/field"
)

// Region is the handle a region's assignment closure operates against. Every
// write takes a row offset relative to the region's (not yet known) start row
// (spec.md §4.7). The measurement pass and the assignment pass each provide a
// distinct implementation.
type Region[F field.Element[F]] interface {
	EnableSelector(sel column.Selector, offset uint64) error
	AssignAdvice(col column.Column, offset uint64, value func() field.Value[F]) (column.Cell, error)
	AssignAdviceFromConstant(col column.Column, offset uint64, constant F) (column.Cell, error)
	AssignAdviceFromInstance(instanceCol column.Column, row uint64, adviceCol column.Column, offset uint64) (column.Cell, field.Value[F], error)
	AssignFixed(col column.Column, offset uint64, value func() field.Value[F]) (column.Cell, error)
	ConstrainConstant(cell column.Cell, constant F) error
	ConstrainEqual(left, right column.Cell) error
	NameColumn(annotation string, col column.Column)
	InstanceValue(instanceCol column.Column, row uint64) (field.Value[F], error)
}

// Table is the handle a table-assignment closure operates against: cells are
// written at absolute rows within the table's own column range, not through a
// region offset (spec.md §4.7).
type Table[F field.Element[F]] interface {
	AssignCell(table cs.TableColumn, offset uint64, value func() field.Value[F]) error
}

// Layouter is what a Circuit's Synthesize method drives: region and table
// assignment, instance-equality constraints, challenge lookup, and debug
// namespacing (spec.md §4.9). MeasurementPass and AssignmentPass each back a
// distinct Layouter implementation, selected by the floor planner.
type Layouter[F field.Element[F]] interface {
	AssignRegion(name string, assign func(Region[F]) error) error
	AssignTable(name string, assign func(Table[F]) error) error
	ConstrainInstance(cell column.Cell, instanceCol column.Column, row uint64) error
	GetChallenge(c column.Challenge) field.Value[F]
	PushNamespace(name string)
	PopNamespace(name string)
}

// Assignment is the backend witness sink the planner drives (spec.md §6).
// Implementations may fail any operation that returns an error; region
// bracketing, column annotation, challenge lookup and namespace calls cannot
// fail.
type Assignment[F field.Element[F]] interface {
	EnterRegion(name string)
	ExitRegion()
	AnnotateColumn(name string, col column.Column)
	EnableSelector(name string, sel column.Selector, row uint64) error
	QueryInstance(col column.Column, row uint64) (field.Value[F], error)
	AssignAdvice(name string, col column.Column, row uint64, value func() field.Value[F]) error
	AssignFixed(name string, col column.Column, row uint64, value func() field.Value[F]) error
	Copy(leftCol column.Column, leftRow uint64, rightCol column.Column, rightRow uint64) error
	FillFromRow(col column.Column, startRow uint64, value F) error
	GetChallenge(c column.Challenge) field.Value[F]
	PushNamespace(name string)
	PopNamespace(name string)
}

// measurementLayouter adapts a MeasurementPass to Layouter: only AssignRegion
// is active, matching spec.md §4.5/§4.9.
type measurementLayouter[F field.Element[F]] struct {
	pass *MeasurementPass[F]
}

func (m *measurementLayouter[F]) AssignRegion(_ string, assign func(Region[F]) error) error {
	return m.pass.AssignRegion(assign)
}

func (m *measurementLayouter[F]) AssignTable(_ string, _ func(Table[F]) error) error { return nil }

func (m *measurementLayouter[F]) ConstrainInstance(_ column.Cell, _ column.Column, _ uint64) error {
	return nil
}

func (m *measurementLayouter[F]) GetChallenge(_ column.Challenge) field.Value[F] {
	return field.Unknown[F]()
}

func (m *measurementLayouter[F]) PushNamespace(_ string) {}
func (m *measurementLayouter[F]) PopNamespace(_ string)  {}
