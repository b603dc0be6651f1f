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
	"fmt"

	"github.com/zkplonk/circuit/column"
	"github.com/zkplonk/circuit/cs"
	"github.com/zkplonk/circuit/field"
)

// tableColumnState tracks one table column's writes during a single
// assign_table closure: which rows have been assigned, and the value to use
// as the default fill (the first value ever assigned to this column).
type tableColumnState[F field.Element[F]] struct {
	defaultVal  field.Value[F]
	haveDefault bool
	assigned    map[uint64]bool
}

// simpleTableLayouter is the Table[F] implementation bound to one
// assign_table call (spec.md §4.7, "Maintenance hazard" design note §9:
// table-assignment logic lives only here, not duplicated elsewhere).
type simpleTableLayouter[F field.Element[F]] struct {
	backend Assignment[F]
	used    []column.Column
	order   []column.Column
	states  map[column.Column]*tableColumnState[F]
}

func newSimpleTableLayouter[F field.Element[F]](backend Assignment[F], used []column.Column) *simpleTableLayouter[F] {
	return &simpleTableLayouter[F]{
		backend: backend,
		used:    used,
		states:  make(map[column.Column]*tableColumnState[F]),
	}
}

func (t *simpleTableLayouter[F]) AssignCell(table cs.TableColumn, offset uint64, value func() field.Value[F]) error {
	col := table.Column()

	for _, u := range t.used {
		if u.Equal(col) {
			return fmt.Errorf("%w: table column %s was already filled by an earlier table", ErrTableShapeMismatch, col)
		}
	}

	state, ok := t.states[col]
	if !ok {
		state = &tableColumnState[F]{assigned: make(map[uint64]bool)}
		t.states[col] = state
		t.order = append(t.order, col)
	}

	v := value()
	if !state.haveDefault {
		state.defaultVal = v
		state.haveDefault = true
	}

	state.assigned[offset] = true

	return t.backend.AssignFixed("table", col, offset, func() field.Value[F] { return v })
}

// computeTableLengths verifies every column in order has the same
// first-unused row and no gaps below it (spec.md §4.7 step 4, Testable
// Property 10).
func computeTableLengths[F field.Element[F]](order []column.Column, states map[column.Column]*tableColumnState[F]) (uint64, error) {
	var (
		length uint64
		first  = true
	)

	for _, col := range order {
		state := states[col]
		l := uint64(len(state.assigned))

		for i := uint64(0); i < l; i++ {
			if !state.assigned[i] {
				return 0, fmt.Errorf("%w: column %s row %d below first-unused row %d", ErrUnassignedTableCell, col, i, l)
			}
		}

		if first {
			length = l
			first = false
		} else if l != length {
			return 0, fmt.Errorf("%w: table columns have mismatched first-unused rows (%d vs %d)", ErrTableShapeMismatch, length, l)
		}
	}

	return length, nil
}

// AssignTable runs one table-assignment closure, verifies uniform column
// length, appends its columns to the plan's used-table-columns list, and
// fills rows [firstUnused, totalRows) with each column's recorded default
// (spec.md §4.7 step 1-6). totalRows is determined by the caller's own
// fill_from_row contract: the backend is responsible for knowing the
// circuit's total row count and filling up to it.
func (p *Plan[F]) AssignTable(name string, assign func(Table[F]) error) error {
	p.backend.EnterRegion(name)
	t := newSimpleTableLayouter[F](p.backend, p.tableColumns)
	err := assign(t)
	p.backend.ExitRegion()

	if err != nil {
		return err
	}

	firstUnused, err := computeTableLengths(t.order, t.states)
	if err != nil {
		return err
	}

	p.tableColumns = append(p.tableColumns, t.order...)

	for _, col := range t.order {
		state := t.states[col]

		if err := p.backend.FillFromRow(col, firstUnused, state.defaultVal.Unwrap()); err != nil {
			return err
		}
	}

	return nil
}
