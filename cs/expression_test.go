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

type E = Expression[bls12377.Element]

func c(n uint64) E {
	return NewConstant(bls12377.New(n))
}

func TestSumProductNeutralsAndAssociation(t *testing.T) {
	// Testable Property 1.
	assert.Equal(t, c(0).Identifier(), Sum[bls12377.Element]().Identifier())
	assert.Equal(t, c(1).Identifier(), Product[bls12377.Element]().Identifier())

	sum := Sum(c(1), c(2), c(3))
	assert.Equal(t, "((1+2)+3)", collapseTrivialAdd(sum))

	product := Product(c(1), c(2), c(3))
	assert.Equal(t, "1*2*3", collapseTrivialMul(product))
}

// collapseTrivialAdd/collapseTrivialMul render the tree shape in a
// human-checkable form from each constant's own String() rendering: sums are
// parenthesised, products are joined with "*" without parentheses.
func collapseTrivialAdd(e E) string {
	return shapeOf(e)
}

func collapseTrivialMul(e E) string {
	return shapeOf(e)
}

func shapeOf(e E) string {
	switch e.kind {
	case kConstant:
		return e.constant.String()
	case kSum:
		return "(" + shapeOf(*e.left) + "+" + shapeOf(*e.right) + ")"
	case kProduct:
		return shapeOf(*e.left) + "*" + shapeOf(*e.right)
	default:
		return "?"
	}
}

func TestDegreeAlgebra(t *testing.T) {
	// Testable Property 2.
	a := c(3)

	csys := New[bls12377.Element]()
	col := csys.AdviceColumn()
	vc := newVirtualCells[bls12377.Element](csys)
	x := vc.QueryAdvice(col, column.Cur())
	y := vc.QueryAdvice(col, column.Next())

	assert.Equal(t, max(x.Degree(), y.Degree()), x.Add(y).Degree())
	assert.Equal(t, x.Degree()+y.Degree(), x.Mul(y).Degree())
	assert.Equal(t, x.Degree(), x.Neg().Degree())

	scaled := x.Scale(bls12377.New(7))
	assert.Equal(t, x.Degree(), scaled.Degree())

	assert.Equal(t, 0, a.Degree())
}

func max(a, b int) int {
	if a > b {
		return a
	}

	return b
}

func TestIdentifierEqualityImpliesValueEquality(t *testing.T) {
	// Testable Property 3 (one direction only; the reverse need not hold).
	a := Sum(c(1), c(2))
	b := Sum(c(1), c(2))

	assert.Equal(t, a.Identifier(), b.Identifier())
}

func TestSimpleSelectorQuarantine(t *testing.T) {
	// Testable Property 4.
	csys := New[bls12377.Element]()
	s := newSelector[bls12377.Element](csys.Selector())
	sPrime := newSelector[bls12377.Element](csys.Selector())
	x := c(5)

	assert.Panics(t, func() { s.Add(x) })
	assert.Panics(t, func() { x.Sub(s) })
	assert.Panics(t, func() { s.Mul(sPrime) })
	assert.NotPanics(t, func() { s.Mul(x) })
}

func TestQueryDedupAndAdviceCounters(t *testing.T) {
	// Testable Property 5.
	csys := New[bls12377.Element]()
	col := csys.AdviceColumn()

	i1 := csys.QueryAdviceIndex(col, column.Cur())
	i2 := csys.QueryAdviceIndex(col, column.Cur())
	i3 := csys.QueryAdviceIndex(col, column.Next())

	assert.Equal(t, i1, i2)
	assert.NotEqual(t, i1, i3)
	assert.Equal(t, 2, csys.NumAdviceQueries(col.Index()))
}

func TestPhaseOrdering(t *testing.T) {
	// Testable Property 6.
	csys := New[bls12377.Element]()

	assert.Panics(t, func() { csys.AdviceColumnInPhase(1) })

	csys.AdviceColumnInPhase(0)
	assert.NotPanics(t, func() { csys.AdviceColumnInPhase(1) })
}

func TestExtractSimpleSelectorPanicsOnTwoDistinct(t *testing.T) {
	csys := New[bls12377.Element]()
	s1 := newSelector[bls12377.Element](csys.Selector())
	s2 := newSelector[bls12377.Element](csys.Selector())

	combined := Expression[bls12377.Element]{kind: kSum, left: &s1, right: &s2}

	assert.Panics(t, func() { combined.ExtractSimpleSelector() })
}

func TestEvaluateLazyShortCircuitsOnZero(t *testing.T) {
	csys := New[bls12377.Element]()
	_ = csys

	zero := c(0)
	one := c(1)
	product := zero.Mul(one)

	ev := Evaluator[bls12377.Element, bls12377.Element]{
		Constant: func(v bls12377.Element) bls12377.Element { return v },
		Selector: func(column.Selector) bls12377.Element { return bls12377.Element{} },
		Fixed:    func(FixedQueryInfo) bls12377.Element { return bls12377.Element{} },
		Advice:   func(AdviceQueryInfo) bls12377.Element { return bls12377.Element{} },
		Instance: func(InstanceQueryInfo) bls12377.Element { return bls12377.Element{} },
		Challenge: func(column.Challenge) bls12377.Element { return bls12377.Element{} },
		Negated:  func(a bls12377.Element) bls12377.Element { return a.Neg() },
		Sum:      func(a, b bls12377.Element) bls12377.Element { return a.Add(b) },
		Product:  func(a, b bls12377.Element) bls12377.Element { return a.Mul(b) },
		Scaled:   func(a bls12377.Element, k bls12377.Element) bls12377.Element { return a.Mul(k) },
	}

	zeroVal := bls12377.Element{}
	result := EvaluateLazy(product, ev, zeroVal, func(a, b bls12377.Element) bool { return a.Equal(b) })

	require.True(t, result.IsZero())
}
