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

package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zkplonk/circuit/column"
	"github.com/zkplonk/circuit/cs"
	"github.com/zkplonk/circuit/field/bls12377"
)

// buildDemo configures a small circuit exercising every construct this
// package must flatten or reconstruct: a gate with two named constraints, a
// lookup, a shuffle, an equality-enabled column and a constant-eligible one.
func buildDemo() *cs.ConstraintSystem[bls12377.Element] {
	csys := cs.New[bls12377.Element]()

	a := csys.AdviceColumn()
	b := csys.AdviceColumn()
	fixedConst := csys.FixedColumn()
	table := csys.LookupTableColumn()
	csys.AnnotateColumn(a, "a")

	csys.CreateGate("arith", func(vc *cs.VirtualCells[bls12377.Element]) []cs.Constraint[bls12377.Element] {
		aExpr := vc.QueryAdvice(a, column.Cur())
		bExpr := vc.QueryAdvice(b, column.Cur())

		return []cs.Constraint[bls12377.Element]{
			{Name: "sum", Poly: aExpr.Add(bExpr)},
			{Name: "", Poly: aExpr.Sub(bExpr)},
		}
	})

	csys.Lookup("a in table", func(vc *cs.VirtualCells[bls12377.Element]) []cs.LookupTablePair[bls12377.Element] {
		return []cs.LookupTablePair[bls12377.Element]{{Input: vc.QueryAdvice(a, column.Cur()), Table: table}}
	})

	csys.Shuffle("a shuffled into b", func(vc *cs.VirtualCells[bls12377.Element]) []cs.ShufflePair[bls12377.Element] {
		return []cs.ShufflePair[bls12377.Element]{{
			Input:    vc.QueryAdvice(a, column.Cur()),
			Shuffled: vc.QueryAdvice(b, column.Cur()),
		}}
	})

	csys.EnableEquality(b)
	csys.EnableConstant(fixedConst)

	return csys
}

func TestFromConstraintSystemFlattensMultiPolyGate(t *testing.T) {
	csys := buildDemo()
	sys := FromConstraintSystem(csys)

	require.Len(t, sys.Gates, 2)
	assert.Equal(t, "arith:sum", sys.Gates[0].Name)
	assert.Equal(t, "arith", sys.Gates[1].Name, "empty constraint name leaves the gate name unmerged")

	require.Len(t, sys.Lookups, 1)
	require.Len(t, sys.Shuffles, 1)
	require.Len(t, sys.Constants, 1)
	assert.Len(t, sys.PermutationColumns, 2, "both the plain equality column and the constant column are equality-enabled")
}

func TestRoundTripPreservesShapeAndDegree(t *testing.T) {
	original := buildDemo()
	sys := FromConstraintSystem(original)
	rebuilt := ToConstraintSystem(sys)

	assert.Equal(t, original.NumFixedColumns(), rebuilt.NumFixedColumns())
	assert.Equal(t, original.NumAdviceColumns(), rebuilt.NumAdviceColumns())
	assert.Equal(t, original.NumInstanceColumns(), rebuilt.NumInstanceColumns())
	assert.Equal(t, original.Degree(), rebuilt.Degree())
	assert.Equal(t, original.BlindingFactors(), rebuilt.BlindingFactors())
	assert.Equal(t, len(original.Lookups()), len(rebuilt.Lookups()))
	assert.Equal(t, len(original.Shuffles()), len(rebuilt.Shuffles()))
	assert.Equal(t, len(original.Permutation().Columns()), len(rebuilt.Permutation().Columns()))
	assert.ElementsMatch(t, original.Constants(), rebuilt.Constants())
}
