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
	"github.com/zkplonk/circuit/field"
)

// constantEntry records one constrain_constant call: a value recorded during
// assignment, deferred until the post-assignment constant-wiring step
// (spec.md §4.7-§4.8).
type constantEntry[F field.Element[F]] struct {
	value F
	cell  column.Cell
}

// Plan is the state shared by every region and table assigned during pass 2:
// the chosen region starts, the backend sink, and the deferred constants and
// table-column bookkeeping (spec.md §4.7, mirroring the original's V1Plan).
type Plan[F field.Element[F]] struct {
	backend      Assignment[F]
	regions      []RegionStart
	constants    []constantEntry[F]
	tableColumns []column.Column
	log          *log.Logger
}

func (p *Plan[F]) absolute(cell column.Cell) uint64 {
	return uint64(p.regions[cell.RegionIndex]) + cell.RowOffset
}

// AssignmentPass drives pass 2: each AssignRegion call advances a counter
// that must stay in exact parity with the region index the same closure
// received during measurement (spec.md §4.9).
type AssignmentPass[F field.Element[F]] struct {
	plan        *Plan[F]
	regionIndex uint64
}

// AssignRegion brackets the closure with EnterRegion/ExitRegion and hands it
// an assignRegion bound to the next region index in sequence. ExitRegion is
// only called once assign succeeds: the original's assign_region propagates a
// failure with `?` before ever reaching its own exit_region() call, leaving a
// failed region's backend bracket deliberately unclosed, and this mirrors
// that (v1.rs:274-288).
func (p *AssignmentPass[F]) AssignRegion(name string, assign func(Region[F]) error) error {
	idx := p.regionIndex
	p.regionIndex++

	p.plan.backend.EnterRegion(name)

	if err := assign(&assignRegion[F]{plan: p.plan, regionIndex: idx}); err != nil {
		return err
	}

	p.plan.backend.ExitRegion()

	return nil
}

// ConstrainInstance emits an equality copy between cell's absolute address
// and the instance cell.
func (p *AssignmentPass[F]) ConstrainInstance(cell column.Cell, instanceCol column.Column, row uint64) error {
	return p.plan.backend.Copy(cell.Column, p.plan.absolute(cell), instanceCol, row)
}

// assignRegion is the Region[F] implementation active during pass 2: every
// relative write is translated to an absolute row before reaching the
// backend (spec.md §4.7).
type assignRegion[F field.Element[F]] struct {
	plan        *Plan[F]
	regionIndex uint64
}

func (r *assignRegion[F]) absoluteRow(offset uint64) uint64 {
	return uint64(r.plan.regions[r.regionIndex]) + offset
}

func (r *assignRegion[F]) EnableSelector(sel column.Selector, offset uint64) error {
	return r.plan.backend.EnableSelector("selector", sel, r.absoluteRow(offset))
}

func (r *assignRegion[F]) AssignAdvice(col column.Column, offset uint64, value func() field.Value[F]) (column.Cell, error) {
	if err := r.plan.backend.AssignAdvice("advice", col, r.absoluteRow(offset), value); err != nil {
		return column.Cell{}, err
	}

	return column.NewCell(r.regionIndex, offset, col), nil
}

func (r *assignRegion[F]) AssignAdviceFromConstant(col column.Column, offset uint64, constant F) (column.Cell, error) {
	cell, err := r.AssignAdvice(col, offset, func() field.Value[F] { return field.Known(constant) })
	if err != nil {
		return cell, err
	}

	return cell, r.ConstrainConstant(cell, constant)
}

func (r *assignRegion[F]) AssignAdviceFromInstance(instanceCol column.Column, row uint64, adviceCol column.Column, offset uint64) (column.Cell, field.Value[F], error) {
	value, err := r.plan.backend.QueryInstance(instanceCol, row)
	if err != nil {
		return column.Cell{}, field.Unknown[F](), err
	}

	cell, err := r.AssignAdvice(adviceCol, offset, func() field.Value[F] { return value })
	if err != nil {
		return cell, value, err
	}

	if err := r.plan.backend.Copy(cell.Column, r.plan.absolute(cell), instanceCol, row); err != nil {
		return cell, value, err
	}

	return cell, value, nil
}

func (r *assignRegion[F]) InstanceValue(instanceCol column.Column, row uint64) (field.Value[F], error) {
	return r.plan.backend.QueryInstance(instanceCol, row)
}

func (r *assignRegion[F]) AssignFixed(col column.Column, offset uint64, value func() field.Value[F]) (column.Cell, error) {
	if err := r.plan.backend.AssignFixed("fixed", col, r.absoluteRow(offset), value); err != nil {
		return column.Cell{}, err
	}

	return column.NewCell(r.regionIndex, offset, col), nil
}

func (r *assignRegion[F]) ConstrainConstant(cell column.Cell, constant F) error {
	r.plan.constants = append(r.plan.constants, constantEntry[F]{value: constant, cell: cell})
	return nil
}

func (r *assignRegion[F]) ConstrainEqual(left, right column.Cell) error {
	return r.plan.backend.Copy(left.Column, r.plan.absolute(left), right.Column, r.plan.absolute(right))
}

func (r *assignRegion[F]) NameColumn(annotation string, col column.Column) {
	r.plan.backend.AnnotateColumn(annotation, col)
}

// assignmentLayouter adapts an AssignmentPass to Layouter, forwarding table
// assignment, instance constraints, challenges and namespaces to the plan's
// backend.
type assignmentLayouter[F field.Element[F]] struct {
	pass *AssignmentPass[F]
}

func (a *assignmentLayouter[F]) AssignRegion(name string, assign func(Region[F]) error) error {
	return a.pass.AssignRegion(name, assign)
}

func (a *assignmentLayouter[F]) AssignTable(name string, assign func(Table[F]) error) error {
	return a.pass.plan.AssignTable(name, assign)
}

func (a *assignmentLayouter[F]) ConstrainInstance(cell column.Cell, instanceCol column.Column, row uint64) error {
	return a.pass.ConstrainInstance(cell, instanceCol, row)
}

func (a *assignmentLayouter[F]) GetChallenge(c column.Challenge) field.Value[F] {
	return a.pass.plan.backend.GetChallenge(c)
}

func (a *assignmentLayouter[F]) PushNamespace(name string) { a.pass.plan.backend.PushNamespace(name) }
func (a *assignmentLayouter[F]) PopNamespace(name string)  { a.pass.plan.backend.PopNamespace(name) }
