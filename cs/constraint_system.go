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

	log "github.com/sirupsen/logrus"

	"github.com/zkplonk/circuit/column"
	"github.com/zkplonk/circuit/field"
)

// annotation pairs a column with its debug name, kept in insertion order
// rather than a map so backend output stays deterministic (spec.md §9).
type annotation struct {
	col  column.Column
	name string
}

// ConstraintSystem is the mutable registry a Circuit populates during
// Configure: it allocates columns, selectors and challenges; records gates,
// lookups, shuffles and the permutation argument; and, after
// CompressSelectors, holds the fixed-column replacement for every simple
// selector. It is exclusively owned by the builder during configuration, then
// read-only for the remainder of synthesis (spec.md §3, §5).
type ConstraintSystem[F field.Element[F]] struct {
	numFixed    uint64
	numAdvice   uint64
	numInstance uint64

	advicePhase     []uint8
	numAdviceQuery  []int
	unblindedAdvice []uint64

	numSelectors  uint64
	selectorSimple []bool
	selectorMap   []Expression[F]
	compressed    []compressedColumn[F]

	numChallenges  uint64
	challengePhase []uint8

	fixedQueries    []FixedQueryInfo
	adviceQueries   []AdviceQueryInfo
	instanceQueries []InstanceQueryInfo

	gates      []Gate[F]
	lookups    []LookupArgument[F]
	shuffles   []ShuffleArgument[F]
	permutation PermutationArgument

	constants   []column.Column
	annotations []annotation

	minimumDegree *int

	log *log.Logger
}

// Option configures a ConstraintSystem at construction time.
type Option[F field.Element[F]] func(*ConstraintSystem[F])

// WithLogger overrides the default (standard, package-global) logger. A nil
// logger keeps the default.
func WithLogger[F field.Element[F]](l *log.Logger) Option[F] {
	return func(cs *ConstraintSystem[F]) {
		if l != nil {
			cs.log = l
		}
	}
}

// New constructs an empty ConstraintSystem, ready for Configure to populate.
func New[F field.Element[F]](opts ...Option[F]) *ConstraintSystem[F] {
	cs := &ConstraintSystem[F]{log: log.StandardLogger()}
	for _, opt := range opts {
		opt(cs)
	}

	return cs
}

// FixedColumn allocates a fresh fixed column.
func (cs *ConstraintSystem[F]) FixedColumn() column.Column {
	col := column.New(column.Fixed, cs.numFixed)
	cs.numFixed++

	return col
}

// InstanceColumn allocates a fresh instance column.
func (cs *ConstraintSystem[F]) InstanceColumn() column.Column {
	col := column.New(column.Instance, cs.numInstance)
	cs.numInstance++

	return col
}

// AdviceColumn allocates a fresh phase-0 advice column.
func (cs *ConstraintSystem[F]) AdviceColumn() column.Column {
	return cs.AdviceColumnInPhase(0)
}

// assertPhaseExists panics unless some advice column already exists in
// phase-1 (phases cannot be skipped; spec.md §3 invariant (b), §8 Testable
// Property 6).
func (cs *ConstraintSystem[F]) assertPhaseExists(phase uint8, what string) {
	if phase == 0 {
		return
	}

	for _, p := range cs.advicePhase {
		if p == phase-1 {
			return
		}
	}

	panic(fmt.Sprintf("cs: cannot allocate %s in phase %d: no advice column exists in phase %d", what, phase, phase-1))
}

// AdviceColumnInPhase allocates a fresh advice column in the given phase,
// panicking if phase > 0 and no advice column exists in phase-1.
func (cs *ConstraintSystem[F]) AdviceColumnInPhase(phase uint8) column.Column {
	cs.assertPhaseExists(phase, "advice column")

	col := column.NewAdvice(cs.numAdvice, phase)
	cs.numAdvice++
	cs.advicePhase = append(cs.advicePhase, phase)
	cs.numAdviceQuery = append(cs.numAdviceQuery, 0)

	return col
}

// UnblindedAdviceColumnInPhase allocates an advice column exempt from
// blinding-factor padding, recording its index for the backend.
func (cs *ConstraintSystem[F]) UnblindedAdviceColumnInPhase(phase uint8) column.Column {
	col := cs.AdviceColumnInPhase(phase)
	cs.unblindedAdvice = append(cs.unblindedAdvice, col.Index())

	return col
}

// Selector allocates a fresh simple selector.
func (cs *ConstraintSystem[F]) Selector() column.Selector {
	s := column.NewSimple(cs.numSelectors)
	cs.numSelectors++
	cs.selectorSimple = append(cs.selectorSimple, true)

	return s
}

// ComplexSelector allocates a fresh complex selector.
func (cs *ConstraintSystem[F]) ComplexSelector() column.Selector {
	s := column.NewComplex(cs.numSelectors)
	cs.numSelectors++
	cs.selectorSimple = append(cs.selectorSimple, false)

	return s
}

// ChallengeUsableAfter allocates a challenge revealed once every advice
// column of the given phase has been committed, panicking if no advice
// column exists in that phase.
func (cs *ConstraintSystem[F]) ChallengeUsableAfter(phase uint8) column.Challenge {
	found := false

	for _, p := range cs.advicePhase {
		if p == phase {
			found = true
			break
		}
	}

	if !found {
		panic(fmt.Sprintf("cs: cannot allocate challenge usable after phase %d: no advice column exists in that phase", phase))
	}

	c := column.NewChallenge(cs.numChallenges, phase)
	cs.numChallenges++
	cs.challengePhase = append(cs.challengePhase, phase)

	return c
}

// LookupTableColumn allocates a fresh fixed column wrapped as a TableColumn,
// so it can only be written to through the table layouter.
func (cs *ConstraintSystem[F]) LookupTableColumn() TableColumn {
	return TableColumn{col: cs.FixedColumn()}
}

// EnableEquality interns a rotation-0 query against col (so it participates
// in the query set) and adds it to the permutation argument.
func (cs *ConstraintSystem[F]) EnableEquality(col column.Column) {
	cs.QueryAnyIndex(col, column.Cur())
	cs.permutation.Add(col)
}

// EnableConstant marks fixedCol as eligible to receive globally-wired
// constants, equality-enabling it as a side effect. A no-op if already
// enabled.
func (cs *ConstraintSystem[F]) EnableConstant(fixedCol column.Column) {
	for _, c := range cs.constants {
		if c.Equal(fixedCol) {
			return
		}
	}

	cs.constants = append(cs.constants, fixedCol)
	cs.EnableEquality(fixedCol)
}

// Constants returns the fixed columns eligible for constant wiring, in the
// order they were enabled.
func (cs *ConstraintSystem[F]) Constants() []column.Column {
	return cs.constants
}

// AnnotateColumn records a debug name for col.
func (cs *ConstraintSystem[F]) AnnotateColumn(col column.Column, name string) {
	cs.annotations = append(cs.annotations, annotation{col: col, name: name})
}

// SetMinimumDegree sets a floor under Degree()'s result.
func (cs *ConstraintSystem[F]) SetMinimumDegree(d int) {
	cs.minimumDegree = &d
}

// Phases returns the distinct advice phases in use, in ascending order.
func (cs *ConstraintSystem[F]) Phases() []uint8 {
	seen := make(map[uint8]bool)

	var phases []uint8

	for _, p := range cs.advicePhase {
		if !seen[p] {
			seen[p] = true
			phases = append(phases, p)
		}
	}

	for i := 0; i < len(phases); i++ {
		for j := i + 1; j < len(phases); j++ {
			if phases[j] < phases[i] {
				phases[i], phases[j] = phases[j], phases[i]
			}
		}
	}

	return phases
}

// CreateGate runs build against a fresh VirtualCells to produce the gate's
// constraints, interning every query and selector reference along the way,
// then stores the resulting Gate. Panics if build returns no constraints.
func (cs *ConstraintSystem[F]) CreateGate(name string, build func(vc *VirtualCells[F]) []Constraint[F]) {
	vc := newVirtualCells(cs)
	constraints := build(vc)

	if len(constraints) == 0 {
		panic(fmt.Sprintf("cs: gate %q must contain at least one constraint", name))
	}

	g := Gate[F]{
		Name:             name,
		QueriedSelectors: vc.queriedSelectors,
		QueriedCells:     vc.queriedCells,
	}

	for _, c := range constraints {
		g.ConstraintNames = append(g.ConstraintNames, c.Name)
		g.Polys = append(g.Polys, c.Poly)
	}

	cs.gates = append(cs.gates, g)
}

// Gates returns the recorded gates, in creation order.
func (cs *ConstraintSystem[F]) Gates() []Gate[F] {
	return cs.gates
}

func mustNotContainSimpleSelector[F field.Element[F]](exprs []Expression[F], context string) {
	for _, e := range exprs {
		if e.ContainsSimpleSelector() {
			panic(fmt.Sprintf("cs: simple selectors are not allowed inside %s expressions", context))
		}
	}
}

// LookupPair is one (input, table) row of a lookup_any argument.
type LookupPair[F field.Element[F]] struct {
	Input Expression[F]
	Table Expression[F]
}

// LookupTablePair is one (input, table column) row of a lookup argument built
// against a declared table column.
type LookupTablePair[F field.Element[F]] struct {
	Input Expression[F]
	Table TableColumn
}

// Lookup records a lookup argument whose table side is restricted to
// previously-declared TableColumns, queried at rotation 0. Panics if any
// input expression contains a simple selector.
func (cs *ConstraintSystem[F]) Lookup(name string, build func(vc *VirtualCells[F]) []LookupTablePair[F]) int {
	vc := newVirtualCells(cs)
	pairs := build(vc)

	arg := LookupArgument[F]{Name: name}

	for _, p := range pairs {
		arg.Input = append(arg.Input, p.Input)
		arg.Table = append(arg.Table, vc.QueryFixed(p.Table.Column(), column.Cur()))
	}

	mustNotContainSimpleSelector(arg.Input, "lookup")
	mustNotContainSimpleSelector(arg.Table, "lookup")

	cs.lookups = append(cs.lookups, arg)

	return len(cs.lookups) - 1
}

// LookupAny records a lookup argument whose table side is an arbitrary
// expression vector. Panics if any input or table expression contains a
// simple selector.
func (cs *ConstraintSystem[F]) LookupAny(name string, build func(vc *VirtualCells[F]) []LookupPair[F]) int {
	vc := newVirtualCells(cs)
	pairs := build(vc)

	arg := LookupArgument[F]{Name: name}

	for _, p := range pairs {
		arg.Input = append(arg.Input, p.Input)
		arg.Table = append(arg.Table, p.Table)
	}

	mustNotContainSimpleSelector(arg.Input, "lookup")
	mustNotContainSimpleSelector(arg.Table, "lookup")

	cs.lookups = append(cs.lookups, arg)

	return len(cs.lookups) - 1
}

// Lookups returns the recorded lookup arguments, in creation order.
func (cs *ConstraintSystem[F]) Lookups() []LookupArgument[F] {
	return cs.lookups
}

// ShufflePair is one (input, shuffled) row of a shuffle argument.
type ShufflePair[F field.Element[F]] struct {
	Input    Expression[F]
	Shuffled Expression[F]
}

// Shuffle records a shuffle argument. Simple selectors may not appear in
// either side (complex selectors are allowed).
func (cs *ConstraintSystem[F]) Shuffle(name string, build func(vc *VirtualCells[F]) []ShufflePair[F]) int {
	vc := newVirtualCells(cs)
	pairs := build(vc)

	arg := ShuffleArgument[F]{Name: name}

	for _, p := range pairs {
		arg.Input = append(arg.Input, p.Input)
		arg.Shuffled = append(arg.Shuffled, p.Shuffled)
	}

	mustNotContainSimpleSelector(arg.Input, "shuffle")
	mustNotContainSimpleSelector(arg.Shuffled, "shuffle")

	cs.shuffles = append(cs.shuffles, arg)

	return len(cs.shuffles) - 1
}

// Shuffles returns the recorded shuffle arguments, in creation order.
func (cs *ConstraintSystem[F]) Shuffles() []ShuffleArgument[F] {
	return cs.shuffles
}

// Permutation returns the equality-enabled column set.
func (cs *ConstraintSystem[F]) Permutation() *PermutationArgument {
	return &cs.permutation
}

// QueryFixedIndex interns (col, rot) into the fixed query table, returning
// its index; a repeat of the same pair returns the same index (spec.md §8
// Testable Property 5).
func (cs *ConstraintSystem[F]) QueryFixedIndex(col column.Column, rot column.Rotation) int {
	for i, q := range cs.fixedQueries {
		if q.ColumnIndex == col.Index() && q.Rotation == rot {
			return i
		}
	}

	cs.fixedQueries = append(cs.fixedQueries, FixedQueryInfo{
		Index:       len(cs.fixedQueries),
		ColumnIndex: col.Index(),
		Rotation:    rot,
	})

	return len(cs.fixedQueries) - 1
}

// QueryAdviceIndex interns (col, rot) into the advice query table, bumping
// that column's distinct-query counter on first sight.
func (cs *ConstraintSystem[F]) QueryAdviceIndex(col column.Column, rot column.Rotation) int {
	for i, q := range cs.adviceQueries {
		if q.ColumnIndex == col.Index() && q.Rotation == rot {
			return i
		}
	}

	cs.adviceQueries = append(cs.adviceQueries, AdviceQueryInfo{
		Index:       len(cs.adviceQueries),
		ColumnIndex: col.Index(),
		Rotation:    rot,
		Phase:       col.Phase(),
	})
	cs.numAdviceQuery[col.Index()]++

	return len(cs.adviceQueries) - 1
}

// QueryInstanceIndex interns (col, rot) into the instance query table.
func (cs *ConstraintSystem[F]) QueryInstanceIndex(col column.Column, rot column.Rotation) int {
	for i, q := range cs.instanceQueries {
		if q.ColumnIndex == col.Index() && q.Rotation == rot {
			return i
		}
	}

	cs.instanceQueries = append(cs.instanceQueries, InstanceQueryInfo{
		Index:       len(cs.instanceQueries),
		ColumnIndex: col.Index(),
		Rotation:    rot,
	})

	return len(cs.instanceQueries) - 1
}

// QueryAnyIndex dispatches to the query table matching col's kind.
func (cs *ConstraintSystem[F]) QueryAnyIndex(col column.Column, rot column.Rotation) int {
	switch col.Kind() {
	case column.Fixed:
		return cs.QueryFixedIndex(col, rot)
	case column.Advice:
		return cs.QueryAdviceIndex(col, rot)
	case column.Instance:
		return cs.QueryInstanceIndex(col, rot)
	default:
		panic("cs: unreachable column kind")
	}
}

// NumAdviceQueries returns the number of distinct (column, rotation) queries
// interned against the advice column at the given index.
func (cs *ConstraintSystem[F]) NumAdviceQueries(colIndex uint64) int {
	return cs.numAdviceQuery[colIndex]
}

// Degree returns max(permutation, lookups, shuffles, gates, minimumDegree-or-1)
// (spec.md §4.4).
func (cs *ConstraintSystem[F]) Degree() int {
	d := cs.permutation.RequiredDegree()

	for _, l := range cs.lookups {
		if rd := l.RequiredDegree(); rd > d {
			d = rd
		}
	}

	for _, s := range cs.shuffles {
		if rd := s.RequiredDegree(); rd > d {
			d = rd
		}
	}

	for _, g := range cs.gates {
		if gd := g.Degree(); gd > d {
			d = gd
		}
	}

	floor := 1
	if cs.minimumDegree != nil {
		floor = *cs.minimumDegree
	}

	if floor > d {
		d = floor
	}

	return d
}

// BlindingFactors returns max(3, max distinct advice queries) + 1 + 1: the
// extra +1/+1 cover a multiopen evaluation and an off-by-one margin
// (spec.md §4.4).
func (cs *ConstraintSystem[F]) BlindingFactors() int {
	maxQueries := 3

	for _, n := range cs.numAdviceQuery {
		if n > maxQueries {
			maxQueries = n
		}
	}

	return maxQueries + 1 + 1
}

// MinimumRows returns BlindingFactors() + 3: a last-row sentinel, a
// first-row sentinel, and at least one real row (spec.md §4.4).
func (cs *ConstraintSystem[F]) MinimumRows() int {
	return cs.BlindingFactors() + 3
}

// NumFixedColumns returns the count of allocated fixed columns.
func (cs *ConstraintSystem[F]) NumFixedColumns() uint64 { return cs.numFixed }

// NumAdviceColumns returns the count of allocated advice columns.
func (cs *ConstraintSystem[F]) NumAdviceColumns() uint64 { return cs.numAdvice }

// NumInstanceColumns returns the count of allocated instance columns.
func (cs *ConstraintSystem[F]) NumInstanceColumns() uint64 { return cs.numInstance }

// NumSelectors returns the count of allocated selectors (prior to
// compression collapsing them into fixed columns).
func (cs *ConstraintSystem[F]) NumSelectors() uint64 { return cs.numSelectors }

// SelectorIsSimple reports whether the selector at index i was allocated via
// Selector (true) rather than ComplexSelector (false).
func (cs *ConstraintSystem[F]) SelectorIsSimple(i uint64) bool {
	return cs.selectorSimple[i]
}

// SelectorReplacement returns the expression CompressSelectors chose to
// replace selector i with, or the zero Expression and false if compression
// has not run yet.
func (cs *ConstraintSystem[F]) SelectorReplacement(i uint64) (Expression[F], bool) {
	if int(i) >= len(cs.selectorMap) {
		return Expression[F]{}, false
	}

	return cs.selectorMap[i], true
}

// Logger returns the logger this constraint system reports diagnostics to.
func (cs *ConstraintSystem[F]) Logger() *log.Logger { return cs.log }

// FixedQueries returns the interned fixed-column queries, in intern order.
func (cs *ConstraintSystem[F]) FixedQueries() []FixedQueryInfo { return cs.fixedQueries }

// AdviceQueries returns the interned advice-column queries, in intern order.
func (cs *ConstraintSystem[F]) AdviceQueries() []AdviceQueryInfo { return cs.adviceQueries }

// InstanceQueries returns the interned instance-column queries, in intern
// order.
func (cs *ConstraintSystem[F]) InstanceQueries() []InstanceQueryInfo { return cs.instanceQueries }

// AdvicePhases returns the allocation phase of every advice column, indexed
// by column index.
func (cs *ConstraintSystem[F]) AdvicePhases() []uint8 { return cs.advicePhase }

// ChallengePhases returns the phase each challenge becomes usable after,
// indexed by challenge index.
func (cs *ConstraintSystem[F]) ChallengePhases() []uint8 { return cs.challengePhase }

// ColumnAnnotation pairs a column with the debug name AnnotateColumn recorded
// for it.
type ColumnAnnotation struct {
	Column column.Column
	Name   string
}

// Annotations returns every recorded column annotation, in the order
// AnnotateColumn was called.
func (cs *ConstraintSystem[F]) Annotations() []ColumnAnnotation {
	out := make([]ColumnAnnotation, len(cs.annotations))
	for i, a := range cs.annotations {
		out[i] = ColumnAnnotation{Column: a.col, Name: a.name}
	}

	return out
}
