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

// Package backend converts a ConstraintSystem to and from the "V2 backend"
// view spec.md §6 describes: a flattened representation with one gate per
// constraint polynomial instead of one gate per multi-poly bundle, scalar
// counts in place of a live builder, and no query-interning state of its own.
// Neither direction touches assignment; this package only reshapes the
// configured schema.
package backend

import (
	"github.com/zkplonk/circuit/column"
	"github.com/zkplonk/circuit/cs"
	"github.com/zkplonk/circuit/field"
)

// Gate is one flattened backend gate. create_gate closures may bundle several
// constraint polynomials under one name, sharing one selector/cell query set;
// a backend has no notion of bundling, so each polynomial becomes its own
// Gate, its name merged as "gate:constraint" (or left as "gate" when the
// constraint carries no name of its own).
type Gate[F field.Element[F]] struct {
	Name             string
	Poly             cs.Expression[F]
	QueriedSelectors []column.Selector
	QueriedCells     []column.VirtualCell
}

// System is the V2 backend view of a ConstraintSystem (spec.md §6): scalar
// counts, per-column phases, flattened gates, lookups, shuffles, permutation
// columns, constant-eligible columns and debug annotations.
type System[F field.Element[F]] struct {
	NumFixed    uint64
	NumAdvice   uint64
	NumInstance uint64

	AdvicePhases    []uint8
	ChallengePhases []uint8

	NumSelectors   uint64
	SelectorSimple []bool

	Gates    []Gate[F]
	Lookups  []cs.LookupArgument[F]
	Shuffles []cs.ShuffleArgument[F]

	PermutationColumns []column.Column
	Constants          []column.Column
	Annotations        []cs.ColumnAnnotation
}

// FromConstraintSystem flattens csys into its backend view.
func FromConstraintSystem[F field.Element[F]](csys *cs.ConstraintSystem[F]) *System[F] {
	sys := &System[F]{
		NumFixed:           csys.NumFixedColumns(),
		NumAdvice:          csys.NumAdviceColumns(),
		NumInstance:        csys.NumInstanceColumns(),
		AdvicePhases:       append([]uint8(nil), csys.AdvicePhases()...),
		ChallengePhases:    append([]uint8(nil), csys.ChallengePhases()...),
		NumSelectors:       csys.NumSelectors(),
		Lookups:            csys.Lookups(),
		Shuffles:           csys.Shuffles(),
		PermutationColumns: csys.Permutation().Columns(),
		Constants:          csys.Constants(),
		Annotations:        csys.Annotations(),
	}

	for i := uint64(0); i < csys.NumSelectors(); i++ {
		sys.SelectorSimple = append(sys.SelectorSimple, csys.SelectorIsSimple(i))
	}

	for _, g := range csys.Gates() {
		for i, poly := range g.Polys {
			name := g.Name
			if cname := g.ConstraintNames[i]; cname != "" {
				name = g.Name + ":" + cname
			}

			sys.Gates = append(sys.Gates, Gate[F]{
				Name:             name,
				Poly:             poly,
				QueriedSelectors: g.QueriedSelectors,
				QueriedCells:     g.QueriedCells,
			})
		}
	}

	return sys
}

// ToConstraintSystem rebuilds a ConstraintSystem from its backend view:
// columns, selectors, challenges and phases are re-allocated in their
// original order, then every gate/lookup/shuffle expression is walked to
// re-intern its (column, rotation) queries and the gate or argument is
// recorded again. Each flattened backend gate becomes a gate of its own with
// one unnamed constraint under the merged name; the rebuilt gates carry no
// queried-selector or queried-cell lists. QueryFixedIndex/QueryAdviceIndex/
// QueryInstanceIndex dedup strictly by first-occurrence order, so replaying
// the walk in the same order the original Configure call used reproduces the
// same distinct-query set and per-column query counts. Gates are processed
// before lookups and shuffles; a circuit whose Configure interleaves
// CreateGate with Lookup/Shuffle calls may see different (but still
// internally consistent) index numbers than the original.
func ToConstraintSystem[F field.Element[F]](sys *System[F], opts ...cs.Option[F]) *cs.ConstraintSystem[F] {
	csys := cs.New[F](opts...)

	for i := uint64(0); i < sys.NumFixed; i++ {
		csys.FixedColumn()
	}

	for _, phase := range sys.AdvicePhases {
		csys.AdviceColumnInPhase(phase)
	}

	for i := uint64(0); i < sys.NumInstance; i++ {
		csys.InstanceColumn()
	}

	for _, phase := range sys.ChallengePhases {
		csys.ChallengeUsableAfter(phase)
	}

	for _, simple := range sys.SelectorSimple {
		if simple {
			csys.Selector()
		} else {
			csys.ComplexSelector()
		}
	}

	for _, g := range sys.Gates {
		internQueries(csys, g.Poly)
		csys.CreateGate(g.Name, func(*cs.VirtualCells[F]) []cs.Constraint[F] {
			return []cs.Constraint[F]{{Poly: g.Poly}}
		})
	}

	for _, l := range sys.Lookups {
		internAll(csys, l.Input)
		internAll(csys, l.Table)

		pairs := make([]cs.LookupPair[F], len(l.Input))
		for i := range pairs {
			pairs[i] = cs.LookupPair[F]{Input: l.Input[i], Table: l.Table[i]}
		}
		csys.LookupAny(l.Name, func(*cs.VirtualCells[F]) []cs.LookupPair[F] { return pairs })
	}

	for _, s := range sys.Shuffles {
		internAll(csys, s.Input)
		internAll(csys, s.Shuffled)

		pairs := make([]cs.ShufflePair[F], len(s.Input))
		for i := range pairs {
			pairs[i] = cs.ShufflePair[F]{Input: s.Input[i], Shuffled: s.Shuffled[i]}
		}
		csys.Shuffle(s.Name, func(*cs.VirtualCells[F]) []cs.ShufflePair[F] { return pairs })
	}

	isConstant := make(map[column.Column]bool, len(sys.Constants))
	for _, col := range sys.Constants {
		isConstant[col] = true
		csys.EnableConstant(col)
	}

	for _, col := range sys.PermutationColumns {
		if !isConstant[col] {
			csys.EnableEquality(col)
		}
	}

	for _, a := range sys.Annotations {
		csys.AnnotateColumn(a.Column, a.Name)
	}

	return csys
}

func internAll[F field.Element[F]](csys *cs.ConstraintSystem[F], exprs []cs.Expression[F]) {
	for _, e := range exprs {
		internQueries(csys, e)
	}
}

// internQueries walks e, re-interning every fixed/advice/instance query it
// references into csys's query tables. Selectors, constants and challenges
// need no interning: only column-backed queries populate a query table.
func internQueries[F field.Element[F]](csys *cs.ConstraintSystem[F], e cs.Expression[F]) {
	cs.Evaluate(e, cs.Evaluator[F, struct{}]{
		Constant: func(F) struct{} { return struct{}{} },
		Selector: func(column.Selector) struct{} { return struct{}{} },
		Fixed: func(q cs.FixedQueryInfo) struct{} {
			csys.QueryFixedIndex(column.New(column.Fixed, q.ColumnIndex), q.Rotation)
			return struct{}{}
		},
		Advice: func(q cs.AdviceQueryInfo) struct{} {
			csys.QueryAdviceIndex(column.NewAdvice(q.ColumnIndex, q.Phase), q.Rotation)
			return struct{}{}
		},
		Instance: func(q cs.InstanceQueryInfo) struct{} {
			csys.QueryInstanceIndex(column.New(column.Instance, q.ColumnIndex), q.Rotation)
			return struct{}{}
		},
		Challenge: func(column.Challenge) struct{} { return struct{}{} },
		Negated:   func(struct{}) struct{} { return struct{}{} },
		Sum:       func(struct{}, struct{}) struct{} { return struct{}{} },
		Product:   func(struct{}, struct{}) struct{} { return struct{}{} },
		Scaled:    func(struct{}, F) struct{} { return struct{}{} },
	})
}
