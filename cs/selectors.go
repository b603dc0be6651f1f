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
	"fmt"

	"github.com/zkplonk/circuit/column"
	"github.com/zkplonk/circuit/field"
)

// SelectorAssignment records, for one user-allocated selector, which shared
// fixed column absorbed it and the expression that now stands in its place
// inside every gate polynomial (spec.md §4.3).
type SelectorAssignment[F field.Element[F]] struct {
	SelectorIndex uint64
	ColumnIndex   uint64
	Expression    Expression[F]
}

// compressedColumn is one fixed column produced by selector compression: its
// per-row values, ready for the backend to treat as already-fixed (selector
// columns are populated directly from this table, not through the floor
// planner's region writes).
type compressedColumn[F field.Element[F]] struct {
	columnIndex uint64
	values      []F
}

// CompressedColumnValues returns the per-row values of the fixed column at
// columnIndex, as produced by the most recent CompressSelectors or
// DirectlyConvertSelectorsToFixed call.
func (cs *ConstraintSystem[F]) CompressedColumnValues(columnIndex uint64) ([]F, bool) {
	for _, c := range cs.compressed {
		if c.columnIndex == columnIndex {
			return c.values, true
		}
	}

	return nil, false
}

// maxEffectiveDegree returns the largest degree among gate polynomials that
// contain selector i as a simple selector, or 0 if i is never used.
func (cs *ConstraintSystem[F]) maxEffectiveDegree(selectorIndex uint64) int {
	max := 0

	for _, g := range cs.gates {
		used := false

		for _, s := range g.QueriedSelectors {
			if s.Index() == selectorIndex && s.IsSimple() {
				used = true
				break
			}
		}

		if !used {
			continue
		}

		if d := g.Degree(); d > max {
			max = d
		}
	}

	return max
}

func fieldFromInt[F field.Element[F]](n int) F {
	var zero F

	v := zero.Zero()
	one := zero.One()

	for i := 0; i < n; i++ {
		v = v.Add(one)
	}

	return v
}

func disjoint(a, b []bool) bool {
	n := a
	m := b

	if len(m) < len(n) {
		n, m = m, n
	}

	for i, v := range n {
		if v && m[i] {
			return false
		}
	}

	return true
}

// CompressSelectors merges the user's simple selectors into as few shared
// fixed columns as their disjoint activation patterns and the system's
// current degree budget allow (spec.md §4.3). Complex selectors are never
// merged: each gets its own dedicated fixed column. activations must have one
// entry per allocated selector (index-aligned with allocation order), every
// entry the same length (one bool per row).
//
// After compression every simple-selector occurrence inside every gate is
// rewritten to its replacement expression. Lookup and shuffle expressions may
// only ever have contained non-simple selectors in the first place (enforced
// at construction), so they need no rewriting pass.
func (cs *ConstraintSystem[F]) CompressSelectors(activations [][]bool) []SelectorAssignment[F] {
	if uint64(len(activations)) != cs.numSelectors {
		panic(fmt.Sprintf("cs: expected %d selector activation vectors, got %d", cs.numSelectors, len(activations)))
	}

	budget := cs.Degree()

	type group struct {
		members []uint64 // selector indices, in join order
		acts    [][]bool
	}

	var groups []*group

	assignment := make([]int, cs.numSelectors) // selector index -> group index

	for i := uint64(0); i < cs.numSelectors; i++ {
		if !cs.SelectorIsSimple(i) {
			groups = append(groups, &group{members: []uint64{i}, acts: [][]bool{activations[i]}})
			assignment[i] = len(groups) - 1

			continue
		}

		eff := cs.maxEffectiveDegree(i)
		placed := false

		for gi, g := range groups {
			if !cs.SelectorIsSimple(g.members[0]) {
				continue // never merge into a complex selector's dedicated column
			}

			ok := true
			for _, a := range g.acts {
				if !disjoint(a, activations[i]) {
					ok = false
					break
				}
			}

			if !ok {
				continue
			}

			newSize := len(g.members) + 1
			fits := eff-1+newSize <= budget

			for _, m := range g.members {
				if cs.maxEffectiveDegree(m)-1+newSize > budget {
					fits = false
					break
				}
			}

			if fits {
				g.members = append(g.members, i)
				g.acts = append(g.acts, activations[i])
				assignment[i] = gi
				placed = true

				break
			}
		}

		if !placed {
			groups = append(groups, &group{members: []uint64{i}, acts: [][]bool{activations[i]}})
			assignment[i] = len(groups) - 1
		}
	}

	var (
		result      []SelectorAssignment[F]
		replacement = make(map[uint64]Expression[F])
	)

	cs.compressed = nil

	for _, g := range groups {
		col := cs.FixedColumn()

		rows := 0
		if len(g.acts) > 0 {
			rows = len(g.acts[0])
		}

		values := make([]F, rows)

		labels := make(map[uint64]F, len(g.members))
		for gi, m := range g.members {
			labels[m] = fieldFromInt[F](gi + 1)
		}

		for row := 0; row < rows; row++ {
			for _, m := range g.members {
				if g.acts[memberPos(g.members, m)][row] {
					values[row] = labels[m]
					break
				}
			}
		}

		cs.compressed = append(cs.compressed, compressedColumn[F]{columnIndex: col.Index(), values: values})

		excluded := make([]F, 0, len(g.members))
		var zero F
		excluded = append(excluded, zero.Zero())

		for _, m := range g.members {
			excluded = append(excluded, labels[m])
		}

		for _, m := range g.members {
			fq := newFixedQuery[F](FixedQueryInfo{ColumnIndex: col.Index(), Rotation: column.Cur()})
			label := labels[m]

			expr := buildIndicator(fq, label, excluded)
			replacement[m] = expr

			result = append(result, SelectorAssignment[F]{SelectorIndex: m, ColumnIndex: col.Index(), Expression: expr})
		}
	}

	cs.selectorMap = make([]Expression[F], cs.numSelectors)
	for i := uint64(0); i < cs.numSelectors; i++ {
		cs.selectorMap[i] = replacement[i]
	}

	cs.replaceSelectorsInGates(replacement)

	cs.log.WithField("groups", len(groups)).WithField("selectors", cs.numSelectors).
		Info("cs: selector compression merged user selectors into shared fixed columns")

	return result
}

func memberPos(members []uint64, m uint64) int {
	for i, x := range members {
		if x == m {
			return i
		}
	}

	panic("cs: selector not found in its own group")
}

// buildIndicator returns the Lagrange-style polynomial over fq that equals 1
// when fq's value is label and 0 at every other value in excluded (excluded
// always includes 0, the column's "no selector active" value).
func buildIndicator[F field.Element[F]](fq Expression[F], label F, excluded []F) Expression[F] {
	var one F

	one = one.One()

	numerDenom := one
	result := NewConstant(one)

	var haveFactor bool

	for _, v := range excluded {
		if v.Equal(label) {
			continue
		}

		diff := label.Sub(v)
		numerDenom = numerDenom.Mul(diff)

		factor := fq.Sub(NewConstant(v))
		if !haveFactor {
			result = factor
			haveFactor = true
		} else {
			result = result.Mul(factor)
		}
	}

	if !haveFactor {
		// Only one possible value besides itself cannot happen: excluded
		// always has at least {0}; if label == 0 this selector is
		// degenerate (never active), fixed query alone suffices.
		return fq
	}

	return result.Scale(numerDenom.Inverse())
}

// replaceSelectorsInGates rewrites every gate polynomial, substituting each
// selector for its compression replacement. Every allocated selector -- simple
// or complex -- receives an entry in replacement once compression has run; a
// selector with no entry (compression never invoked) is left as a bare
// Selector node.
func (cs *ConstraintSystem[F]) replaceSelectorsInGates(replacement map[uint64]Expression[F]) {
	for gi, g := range cs.gates {
		for pi, poly := range g.Polys {
			cs.gates[gi].Polys[pi] = substituteSelectors(poly, replacement)
		}
	}
}

func substituteSelectors[F field.Element[F]](e Expression[F], replacement map[uint64]Expression[F]) Expression[F] {
	return Evaluate(e, Evaluator[F, Expression[F]]{
		Constant: func(v F) Expression[F] { return NewConstant(v) },
		Selector: func(s column.Selector) Expression[F] {
			if repl, ok := replacement[s.Index()]; ok {
				return repl
			}

			return newSelector[F](s)
		},
		Fixed:     func(q FixedQueryInfo) Expression[F] { return newFixedQuery[F](q) },
		Advice:    func(q AdviceQueryInfo) Expression[F] { return newAdviceQuery[F](q) },
		Instance:  func(q InstanceQueryInfo) Expression[F] { return newInstanceQuery[F](q) },
		Challenge: func(c column.Challenge) Expression[F] { return newChallenge[F](c) },
		Negated:   func(a Expression[F]) Expression[F] { return a.Neg() },
		Sum:       func(a, b Expression[F]) Expression[F] { return a.Add(b) },
		Product:   func(a, b Expression[F]) Expression[F] { return a.Mul(b) },
		Scaled:    func(a Expression[F], k F) Expression[F] { return a.Scale(k) },
	})
}

// DirectlyConvertSelectorsToFixed is the degenerate compression mode that
// skips merging entirely: every selector becomes its own fixed column with
// activations copied as 0/1 field values, and NumSelectors is reset to 0
// (spec.md §4.3).
func (cs *ConstraintSystem[F]) DirectlyConvertSelectorsToFixed(activations [][]bool) []SelectorAssignment[F] {
	if uint64(len(activations)) != cs.numSelectors {
		panic(fmt.Sprintf("cs: expected %d selector activation vectors, got %d", cs.numSelectors, len(activations)))
	}

	var (
		result      []SelectorAssignment[F]
		replacement = make(map[uint64]Expression[F])
	)

	cs.compressed = nil

	var zero F

	one := zero.One()

	for i := uint64(0); i < cs.numSelectors; i++ {
		col := cs.FixedColumn()
		values := make([]F, len(activations[i]))

		for row, on := range activations[i] {
			if on {
				values[row] = one
			}
		}

		cs.compressed = append(cs.compressed, compressedColumn[F]{columnIndex: col.Index(), values: values})

		expr := newFixedQuery[F](FixedQueryInfo{ColumnIndex: col.Index(), Rotation: column.Cur()})
		replacement[i] = expr

		result = append(result, SelectorAssignment[F]{SelectorIndex: i, ColumnIndex: col.Index(), Expression: expr})
	}

	cs.selectorMap = make([]Expression[F], cs.numSelectors)
	for i := uint64(0); i < cs.numSelectors; i++ {
		cs.selectorMap[i] = replacement[i]
	}

	cs.replaceSelectorsInGates(replacement)
	cs.numSelectors = 0

	return result
}
