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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zkplonk/circuit/column"
	"github.com/zkplonk/circuit/field/bls12377"
)

// TestSelectorCompressionMergesDisjointSelectors reproduces spec.md §8's
// literal "selector compression" scenario: two simple selectors with disjoint
// activations across 8 rows, both used only in degree-2 gates, max system
// degree 3. Expect them merged into one shared fixed column.
func TestSelectorCompressionMergesDisjointSelectors(t *testing.T) {
	csys := New[bls12377.Element]()
	a := csys.AdviceColumn()
	s0 := csys.Selector()
	s1 := csys.Selector()

	csys.CreateGate("g0", func(vc *VirtualCells[bls12377.Element]) []Constraint[bls12377.Element] {
		sExpr := vc.QuerySelector(s0)
		aExpr := vc.QueryAdvice(a, column.Cur())

		return []Constraint[bls12377.Element]{{Name: "g0", Poly: sExpr.Mul(aExpr)}}
	})
	csys.CreateGate("g1", func(vc *VirtualCells[bls12377.Element]) []Constraint[bls12377.Element] {
		sExpr := vc.QuerySelector(s1)
		aExpr := vc.QueryAdvice(a, column.Cur())

		return []Constraint[bls12377.Element]{{Name: "g1", Poly: sExpr.Mul(aExpr)}}
	})
	csys.SetMinimumDegree(3)

	act0 := []bool{true, false, true, false, true, false, true, false}
	act1 := []bool{false, true, false, true, false, true, false, true}

	before := csys.Degree()

	assignments := csys.CompressSelectors([][]bool{act0, act1})

	require.Len(t, assignments, 2)
	assert.Equal(t, assignments[0].ColumnIndex, assignments[1].ColumnIndex,
		"disjoint selectors with room in the degree budget should merge into one column")
	assert.Equal(t, before, csys.Degree(), "compression must not change the system's overall degree")

	vals, ok := csys.CompressedColumnValues(assignments[0].ColumnIndex)
	require.True(t, ok)
	require.Len(t, vals, 8)
}

func TestSelectorCompressionRefusesToMergeOverlapping(t *testing.T) {
	csys := New[bls12377.Element]()
	a := csys.AdviceColumn()
	s0 := csys.Selector()
	s1 := csys.Selector()

	csys.CreateGate("g0", func(vc *VirtualCells[bls12377.Element]) []Constraint[bls12377.Element] {
		sExpr := vc.QuerySelector(s0)
		aExpr := vc.QueryAdvice(a, column.Cur())

		return []Constraint[bls12377.Element]{{Name: "g0", Poly: sExpr.Mul(aExpr)}}
	})
	csys.CreateGate("g1", func(vc *VirtualCells[bls12377.Element]) []Constraint[bls12377.Element] {
		sExpr := vc.QuerySelector(s1)
		aExpr := vc.QueryAdvice(a, column.Cur())

		return []Constraint[bls12377.Element]{{Name: "g1", Poly: sExpr.Mul(aExpr)}}
	})

	act0 := []bool{true, true}
	act1 := []bool{true, false}

	assignments := csys.CompressSelectors([][]bool{act0, act1})

	require.Len(t, assignments, 2)
	assert.NotEqual(t, assignments[0].ColumnIndex, assignments[1].ColumnIndex,
		"overlapping activations must never share a column")
}

func TestDirectlyConvertSelectorsToFixedResetsCount(t *testing.T) {
	csys := New[bls12377.Element]()
	csys.AdviceColumn()
	csys.Selector()
	csys.Selector()

	assignments := csys.DirectlyConvertSelectorsToFixed([][]bool{
		{true, false},
		{false, true},
	})

	require.Len(t, assignments, 2)
	assert.NotEqual(t, assignments[0].ColumnIndex, assignments[1].ColumnIndex)
	assert.Equal(t, uint64(0), csys.NumSelectors())
}
