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

// Package field defines the field-element contract that the circuit-building
// core is generic over. Every concrete field backend (currently bls12377.Element)
// implements Element[F] so that expressions, gates and witness assignments can be
// written once and instantiated over whichever curve's scalar field the backend
// prover actually uses.
package field

// Element is a prime-field element. F is the concrete implementing type itself
// (a self-referential constraint, mirroring how this pack's other constraint
// systems parameterise their own field backends).
type Element[F any] interface {
	Add(F) F
	Sub(F) F
	Mul(F) F
	Neg() F
	// Zero returns the additive identity. Defined as a method (rather than a
	// package-level constant) so generic code can obtain it from any value of F,
	// including one it does not otherwise trust the contents of.
	Zero() F
	// One returns the multiplicative identity.
	One() F
	IsZero() bool
	IsOne() bool
	Equal(F) bool
	// Inverse returns the multiplicative inverse. Used by selector compression
	// to build Lagrange-style indicator polynomials over merged selector
	// columns; panics (per the underlying field backend) if called on zero.
	Inverse() F
	// String renders the element the way the field's own Debug/Display would;
	// used verbatim by Expression.identifier() for the Constant case.
	String() string
}

// Value represents a value that may or may not be known during circuit
// synthesis: known during proving, unknown during key generation and
// verification. Mirrors halo2's Value<F>.
type Value[F any] struct {
	known bool
	inner F
}

// Known constructs a Value holding a known field element.
func Known[F any](v F) Value[F] {
	return Value[F]{known: true, inner: v}
}

// Unknown constructs a Value with no known content.
func Unknown[F any]() Value[F] {
	return Value[F]{}
}

// IsKnown reports whether this value carries content.
func (v Value[F]) IsKnown() bool {
	return v.known
}

// Unwrap returns the inner value, panicking if it is unknown. Intended for use
// only where the caller has already established (e.g. by checking IsKnown, or
// because it is running in a context known to be the prover) that a value must
// be present.
func (v Value[F]) Unwrap() F {
	if !v.known {
		panic("field: Unwrap called on an unknown Value")
	}

	return v.inner
}

// Map transforms the inner value if known, and propagates Unknown otherwise.
func Map[F, G any](v Value[F], f func(F) G) Value[G] {
	if !v.known {
		return Value[G]{}
	}

	return Value[G]{known: true, inner: f(v.inner)}
}
