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

// Package bls12377 wraps gnark-crypto's bls12-377 scalar field so it conforms to
// field.Element[F]. Unlike a pointer-based wrapper, Element holds the
// gnark-crypto element by value: fr.Element's zero Go value already represents
// the field's additive identity (Montgomery(0) == 0), so Element's zero value is
// a valid field element without any constructor call.
package bls12377

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
)

// Element wraps fr.Element to conform to field.Element[Element].
type Element struct {
	v fr.Element
}

// New constructs an Element from a uint64.
func New(x uint64) Element {
	var e Element
	e.v.SetUint64(x)

	return e
}

// NewFromBigInt constructs an Element by reducing a big.Int modulo the field
// order.
func NewFromBigInt(x *big.Int) Element {
	var e Element
	e.v.SetBigInt(x)

	return e
}

// Add x + y.
func (x Element) Add(y Element) Element {
	var z Element
	z.v.Add(&x.v, &y.v)

	return z
}

// Sub x - y.
func (x Element) Sub(y Element) Element {
	var z Element
	z.v.Sub(&x.v, &y.v)

	return z
}

// Mul x * y.
func (x Element) Mul(y Element) Element {
	var z Element
	z.v.Mul(&x.v, &y.v)

	return z
}

// Neg -x.
func (x Element) Neg() Element {
	var z Element
	z.v.Neg(&x.v)

	return z
}

// Inverse returns x^-1, panicking if x is zero (unlike fr.Element, which
// returns zero on a zero input; this wrapper treats that input as a caller
// error since a silent zero would mask the bug downstream).
func (x Element) Inverse() Element {
	if x.v.IsZero() {
		panic("bls12377: Inverse called on zero")
	}

	var z Element
	z.v.Inverse(&x.v)

	return z
}

// Zero returns the additive identity.
func (x Element) Zero() Element {
	return Element{}
}

// One returns the multiplicative identity.
func (x Element) One() Element {
	var z Element
	z.v.SetOne()

	return z
}

// IsZero reports whether x is the additive identity.
func (x Element) IsZero() bool {
	return x.v.IsZero()
}

// IsOne reports whether x is the multiplicative identity.
func (x Element) IsOne() bool {
	return x.v.IsOne()
}

// Equal reports whether x and y represent the same field element.
func (x Element) Equal(y Element) bool {
	return x.v.Equal(&y.v)
}

// String renders x in decimal, matching fr.Element's own Debug/Display form.
func (x Element) String() string {
	return x.v.String()
}
