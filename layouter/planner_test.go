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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zkplonk/circuit/column"
	"github.com/zkplonk/circuit/cs"
	"github.com/zkplonk/circuit/field"
	"github.com/zkplonk/circuit/field/bls12377"
)

// booleanCircuit reproduces spec.md §8's literal "single-gate boolean"
// scenario: advice a, selector s, gate "bool" = s*(a*(1-a)), synthesized
// with a=1 and s enabled at row 0.
type booleanCircuit struct {
	a column.Column
	s column.Selector

	aValue bls12377.Element
}

func (c *booleanCircuit) Configure(csys *cs.ConstraintSystem[bls12377.Element]) {
	c.a = csys.AdviceColumn()
	c.s = csys.Selector()

	csys.CreateGate("bool", func(vc *cs.VirtualCells[bls12377.Element]) []cs.Constraint[bls12377.Element] {
		sExpr := vc.QuerySelector(c.s)
		aExpr := vc.QueryAdvice(c.a, column.Cur())
		one := cs.NewConstant(bls12377.New(1))

		return []cs.Constraint[bls12377.Element]{{Name: "bool", Poly: sExpr.Mul(aExpr.Mul(one.Sub(aExpr)))}}
	})
}

func (c *booleanCircuit) Synthesize(l Layouter[bls12377.Element]) error {
	return l.AssignRegion("bool row", func(r Region[bls12377.Element]) error {
		if err := r.EnableSelector(c.s, 0); err != nil {
			return err
		}

		_, err := r.AssignAdvice(c.a, 0, func() field.Value[bls12377.Element] { return field.Known(c.aValue) })

		return err
	})
}

func (c *booleanCircuit) WithoutWitnesses() Circuit[bls12377.Element] {
	cp := *c
	return &cp
}

func TestSingleGateBooleanEndToEnd(t *testing.T) {
	csys := cs.New[bls12377.Element]()
	circuit := &booleanCircuit{aValue: bls12377.New(1)}
	circuit.Configure(csys)

	backend := newFakeBackend[bls12377.Element](1)
	err := NewV1[bls12377.Element]().Synthesize(backend, circuit, csys.Constants())
	require.NoError(t, err)

	assert.True(t, backend.selectors[circuit.s.Index()][0])
	assert.True(t, backend.advice[circuit.a][0].Equal(bls12377.New(1)))
	assert.GreaterOrEqual(t, csys.BlindingFactors(), 4)
	assert.GreaterOrEqual(t, csys.Degree(), 3)
}

// constantCircuit reproduces spec.md §8's literal "constant wiring"
// scenario: two fixed columns enabled as constants, three advice cells
// assigned via assign_advice_from_constant(0), (1), (42).
type constantCircuit struct {
	fixed0, fixed1 column.Column
	advice         column.Column
}

func (c *constantCircuit) Configure(csys *cs.ConstraintSystem[bls12377.Element]) {
	c.fixed0 = csys.FixedColumn()
	c.fixed1 = csys.FixedColumn()
	c.advice = csys.AdviceColumn()

	csys.EnableConstant(c.fixed0)
	csys.EnableConstant(c.fixed1)
}

func (c *constantCircuit) Synthesize(l Layouter[bls12377.Element]) error {
	return l.AssignRegion("constants", func(r Region[bls12377.Element]) error {
		for i, v := range []uint64{0, 1, 42} {
			if _, err := r.AssignAdviceFromConstant(c.advice, uint64(i), bls12377.New(v)); err != nil {
				return err
			}
		}

		return nil
	})
}

func (c *constantCircuit) WithoutWitnesses() Circuit[bls12377.Element] {
	cp := *c
	return &cp
}

func TestConstantWiringConsumesFirstFreePositionsInColumnOrder(t *testing.T) {
	csys := cs.New[bls12377.Element]()
	circuit := &constantCircuit{}
	circuit.Configure(csys)

	backend := newFakeBackend[bls12377.Element](3)
	err := NewV1[bls12377.Element]().Synthesize(backend, circuit, csys.Constants())
	require.NoError(t, err)

	require.Len(t, backend.copies, 3)

	for i, want := range []uint64{0, 1, 42} {
		copyEntry := backend.copies[i]
		assert.True(t, copyEntry.leftCol.Equal(circuit.fixed0), "constant %d should land in the first enabled column", i)
		assert.Equal(t, uint64(i), copyEntry.leftRow)
		assert.True(t, copyEntry.rightCol.Equal(circuit.advice))
		assert.Equal(t, uint64(i), copyEntry.rightRow)
		assert.True(t, backend.fixed[circuit.fixed0][uint64(i)].Equal(bls12377.New(want)))
	}
}

// notEnoughConstantsCircuit reproduces spec.md §8's literal "not enough
// constants" scenario: 5 recorded constants against a single fixed column
// with only 3 free rows.
type notEnoughConstantsCircuit struct {
	fixed0 column.Column
	advice column.Column
}

func (c *notEnoughConstantsCircuit) Configure(csys *cs.ConstraintSystem[bls12377.Element]) {
	c.fixed0 = csys.FixedColumn()
	c.advice = csys.AdviceColumn()

	csys.EnableConstant(c.fixed0)
}

func (c *notEnoughConstantsCircuit) Synthesize(l Layouter[bls12377.Element]) error {
	return l.AssignRegion("five", func(r Region[bls12377.Element]) error {
		for i := uint64(0); i < 5; i++ {
			if _, err := r.AssignAdviceFromConstant(c.advice, i%3, bls12377.New(i)); err != nil {
				return err
			}
		}

		return nil
	})
}

func (c *notEnoughConstantsCircuit) WithoutWitnesses() Circuit[bls12377.Element] {
	cp := *c
	return &cp
}

func TestNotEnoughColumnsForConstants(t *testing.T) {
	csys := cs.New[bls12377.Element]()
	circuit := &notEnoughConstantsCircuit{}
	circuit.Configure(csys)

	backend := newFakeBackend[bls12377.Element](3)
	err := NewV1[bls12377.Element]().Synthesize(backend, circuit, csys.Constants())

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotEnoughColumnsForConstants))
	assert.Empty(t, backend.copies, "no constants should be assigned once wiring fails")
}
