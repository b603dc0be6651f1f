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

package main

import (
	"sort"

	"github.com/zkplonk/circuit/column"
	"github.com/zkplonk/circuit/cs"
	"github.com/zkplonk/circuit/field/bls12377"
)

// registry holds the small set of demo circuits this diagnostic CLI can
// configure and report on. Each entry only runs Configure: circuitstat prints
// ConstraintSystem shape, not a witness.
var registry = map[string]func() *cs.ConstraintSystem[bls12377.Element]{
	"boolean": configureBoolean,
	"lookup":  configureLookup,
	"permute": configurePermute,
}

// names returns the registry keys, sorted for stable --help/usage output.
func names() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}

	sort.Strings(out)

	return out
}

// configureBoolean builds a single advice column, a simple selector, and the
// gate s*(a*(1-a)) enforcing a is 0 or 1.
func configureBoolean() *cs.ConstraintSystem[bls12377.Element] {
	csys := cs.New[bls12377.Element]()

	a := csys.AdviceColumn()
	s := csys.Selector()
	csys.AnnotateColumn(a, "a")

	csys.CreateGate("bool", func(vc *cs.VirtualCells[bls12377.Element]) []cs.Constraint[bls12377.Element] {
		sExpr := vc.QuerySelector(s)
		aExpr := vc.QueryAdvice(a, column.Cur())
		one := cs.NewConstant(bls12377.New(1))

		return []cs.Constraint[bls12377.Element]{{Name: "bool", Poly: sExpr.Mul(aExpr.Mul(one.Sub(aExpr)))}}
	})

	return csys
}

// configureLookup builds an advice column constrained to appear in a
// declared lookup table column.
func configureLookup() *cs.ConstraintSystem[bls12377.Element] {
	csys := cs.New[bls12377.Element]()

	a := csys.AdviceColumn()
	table := csys.LookupTableColumn()
	csys.AnnotateColumn(a, "a")

	csys.Lookup("a in table", func(vc *cs.VirtualCells[bls12377.Element]) []cs.LookupTablePair[bls12377.Element] {
		return []cs.LookupTablePair[bls12377.Element]{{
			Input: vc.QueryAdvice(a, column.Cur()),
			Table: table,
		}}
	})

	return csys
}

// configurePermute builds two equality-enabled advice columns with no gates,
// exercising the permutation argument's degree contribution on its own.
func configurePermute() *cs.ConstraintSystem[bls12377.Element] {
	csys := cs.New[bls12377.Element]()

	left := csys.AdviceColumn()
	right := csys.AdviceColumn()
	csys.AnnotateColumn(left, "left")
	csys.AnnotateColumn(right, "right")

	csys.EnableEquality(left)
	csys.EnableEquality(right)

	return csys
}
