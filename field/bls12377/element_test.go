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

package bls12377

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zkplonk/circuit/field"
)

// confirm Element satisfies field.Element[Element] at compile time.
var _ field.Element[Element] = Element{}

func TestZeroValueIsAdditiveIdentity(t *testing.T) {
	var zero Element

	assert.True(t, zero.IsZero())
	assert.True(t, zero.Equal(zero.Zero()))
}

func TestAddSubRoundtrip(t *testing.T) {
	a, b := New(7), New(11)

	sum := a.Add(b)
	assert.True(t, sum.Sub(b).Equal(a))
}

func TestMulByOneIsIdentity(t *testing.T) {
	a := New(42)

	assert.True(t, a.Mul(a.One()).Equal(a))
}

func TestNegCancels(t *testing.T) {
	a := New(5)

	assert.True(t, a.Add(a.Neg()).IsZero())
}

func TestIsOne(t *testing.T) {
	assert.True(t, New(1).IsOne())
	assert.False(t, New(2).IsOne())
}

func TestStringDeterministic(t *testing.T) {
	a, b := New(123), New(123)
	assert.Equal(t, a.String(), b.String())
}

func TestEqualDistinguishesValues(t *testing.T) {
	assert.False(t, New(1).Equal(New(2)))
}

func TestInverseRoundtrips(t *testing.T) {
	a := New(9)
	assert.True(t, a.Mul(a.Inverse()).IsOne())
}

func TestInverseOfZeroPanics(t *testing.T) {
	var zero Element
	assert.Panics(t, func() { zero.Inverse() })
}
