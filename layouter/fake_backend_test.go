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
	"github.com/zkplonk/circuit/field"
)

// copyEntry records one backend Copy call, for test assertions.
type copyEntry struct {
	leftCol  column.Column
	leftRow  uint64
	rightCol column.Column
	rightRow uint64
}

// fakeBackend is a minimal in-memory Assignment[F] sink used only by this
// package's tests: it records every call instead of building a real proving
// witness. totalRows bounds FillFromRow, standing in for a real backend's
// knowledge of the circuit's overall height.
type fakeBackend[F field.Element[F]] struct {
	totalRows uint64

	advice map[column.Column]map[uint64]F
	fixed  map[column.Column]map[uint64]F

	selectors map[uint64]map[uint64]bool
	instance  map[column.Column]map[uint64]F
	copies    []copyEntry

	fixedAssignCount int
	regionDepth      int
	namespaceDepth   int
}

func newFakeBackend[F field.Element[F]](totalRows uint64) *fakeBackend[F] {
	return &fakeBackend[F]{
		totalRows: totalRows,
		advice:    make(map[column.Column]map[uint64]F),
		fixed:     make(map[column.Column]map[uint64]F),
		selectors: make(map[uint64]map[uint64]bool),
		instance:  make(map[column.Column]map[uint64]F),
	}
}

func (b *fakeBackend[F]) EnterRegion(string) { b.regionDepth++ }
func (b *fakeBackend[F]) ExitRegion()        { b.regionDepth-- }

func (b *fakeBackend[F]) AnnotateColumn(string, column.Column) {}

func (b *fakeBackend[F]) EnableSelector(_ string, sel column.Selector, row uint64) error {
	rows, ok := b.selectors[sel.Index()]
	if !ok {
		rows = make(map[uint64]bool)
		b.selectors[sel.Index()] = rows
	}

	rows[row] = true

	return nil
}

func (b *fakeBackend[F]) QueryInstance(col column.Column, row uint64) (field.Value[F], error) {
	rows, ok := b.instance[col]
	if !ok {
		return field.Unknown[F](), nil
	}

	v, ok := rows[row]
	if !ok {
		return field.Unknown[F](), nil
	}

	return field.Known(v), nil
}

func (b *fakeBackend[F]) setInstance(col column.Column, row uint64, v F) {
	rows, ok := b.instance[col]
	if !ok {
		rows = make(map[uint64]F)
		b.instance[col] = rows
	}

	rows[row] = v
}

func (b *fakeBackend[F]) AssignAdvice(_ string, col column.Column, row uint64, value func() field.Value[F]) error {
	rows, ok := b.advice[col]
	if !ok {
		rows = make(map[uint64]F)
		b.advice[col] = rows
	}

	v := value()
	if v.IsKnown() {
		rows[row] = v.Unwrap()
	}

	return nil
}

func (b *fakeBackend[F]) AssignFixed(_ string, col column.Column, row uint64, value func() field.Value[F]) error {
	rows, ok := b.fixed[col]
	if !ok {
		rows = make(map[uint64]F)
		b.fixed[col] = rows
	}

	v := value()
	if v.IsKnown() {
		rows[row] = v.Unwrap()
	}

	b.fixedAssignCount++

	return nil
}

func (b *fakeBackend[F]) Copy(leftCol column.Column, leftRow uint64, rightCol column.Column, rightRow uint64) error {
	b.copies = append(b.copies, copyEntry{leftCol, leftRow, rightCol, rightRow})
	return nil
}

func (b *fakeBackend[F]) FillFromRow(col column.Column, startRow uint64, value F) error {
	rows, ok := b.fixed[col]
	if !ok {
		rows = make(map[uint64]F)
		b.fixed[col] = rows
	}

	for r := startRow; r < b.totalRows; r++ {
		rows[r] = value
		b.fixedAssignCount++
	}

	return nil
}

func (b *fakeBackend[F]) GetChallenge(column.Challenge) field.Value[F] {
	return field.Unknown[F]()
}

func (b *fakeBackend[F]) PushNamespace(string) { b.namespaceDepth++ }
func (b *fakeBackend[F]) PopNamespace(string)  { b.namespaceDepth-- }
