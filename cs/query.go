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

import (
	"github.com/zkplonk/circuit/column"
	"github.com/zkplonk/circuit/field"
)

// VirtualCells is the handle passed into a gate/lookup/shuffle closure: every
// query it builds is interned into the owning ConstraintSystem immediately,
// and every selector/cell referenced is recorded for the resulting Gate
// (spec.md §3-4.2).
type VirtualCells[F field.Element[F]] struct {
	cs               *ConstraintSystem[F]
	queriedSelectors []column.Selector
	queriedCells     []column.VirtualCell
}

func newVirtualCells[F field.Element[F]](cs *ConstraintSystem[F]) *VirtualCells[F] {
	return &VirtualCells[F]{cs: cs}
}

// QuerySelector records a reference to s and returns its Expression.
func (vc *VirtualCells[F]) QuerySelector(s column.Selector) Expression[F] {
	vc.queriedSelectors = append(vc.queriedSelectors, s)

	return newSelector[F](s)
}

// QueryFixed interns (col, rot) and returns the fixed-query Expression.
func (vc *VirtualCells[F]) QueryFixed(col column.Column, rot column.Rotation) Expression[F] {
	idx := vc.cs.QueryFixedIndex(col, rot)
	vc.queriedCells = append(vc.queriedCells, column.NewVirtualCell(col, rot))

	return newFixedQuery[F](FixedQueryInfo{Index: idx, ColumnIndex: col.Index(), Rotation: rot})
}

// QueryAdvice interns (col, rot) and returns the advice-query Expression.
func (vc *VirtualCells[F]) QueryAdvice(col column.Column, rot column.Rotation) Expression[F] {
	idx := vc.cs.QueryAdviceIndex(col, rot)
	vc.queriedCells = append(vc.queriedCells, column.NewVirtualCell(col, rot))

	return newAdviceQuery[F](AdviceQueryInfo{Index: idx, ColumnIndex: col.Index(), Rotation: rot, Phase: col.Phase()})
}

// QueryInstance interns (col, rot) and returns the instance-query
// Expression.
func (vc *VirtualCells[F]) QueryInstance(col column.Column, rot column.Rotation) Expression[F] {
	idx := vc.cs.QueryInstanceIndex(col, rot)
	vc.queriedCells = append(vc.queriedCells, column.NewVirtualCell(col, rot))

	return newInstanceQuery[F](InstanceQueryInfo{Index: idx, ColumnIndex: col.Index(), Rotation: rot})
}

// QueryAny dispatches to QueryFixed/QueryAdvice/QueryInstance by col.Kind().
func (vc *VirtualCells[F]) QueryAny(col column.Column, rot column.Rotation) Expression[F] {
	switch col.Kind() {
	case column.Fixed:
		return vc.QueryFixed(col, rot)
	case column.Advice:
		return vc.QueryAdvice(col, rot)
	case column.Instance:
		return vc.QueryInstance(col, rot)
	default:
		panic("cs: unreachable column kind")
	}
}

// QueryChallenge returns an Expression referencing c. Challenges are not
// column-backed, so there is nothing to intern.
func (vc *VirtualCells[F]) QueryChallenge(c column.Challenge) Expression[F] {
	return newChallenge[F](c)
}
