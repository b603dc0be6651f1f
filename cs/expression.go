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

// Package cs holds the polynomial expression algebra and the constraint-system
// builder together. Expression's query variants are produced only through a
// ConstraintSystem's VirtualCells, which interns their (column, rotation) pair
// as they are built; keeping both in one package (mirroring the original
// single-file circuit.rs) avoids manufacturing an import cycle between "the
// tree" and "the registry that assigns its query indices".
package cs

import (
	"fmt"
	"strings"

	"github.com/zkplonk/circuit/column"
	"github.com/zkplonk/circuit/field"
)

// kind tags which variant an Expression node holds. Using a tag plus a flat
// struct (rather than an interface implemented by ten node types) keeps
// evaluation a switch-based fold instead of a virtual call per node -- this
// tree is walked millions of times per proof.
type kind uint8

const (
	kConstant kind = iota
	kSelector
	kFixed
	kAdvice
	kInstance
	kChallenge
	kNegated
	kSum
	kProduct
	kScaled
)

// FixedQueryInfo describes a fixed-column query once interned.
type FixedQueryInfo struct {
	Index       int
	ColumnIndex uint64
	Rotation    column.Rotation
}

// AdviceQueryInfo describes an advice-column query once interned.
type AdviceQueryInfo struct {
	Index       int
	ColumnIndex uint64
	Rotation    column.Rotation
	Phase       uint8
}

// InstanceQueryInfo describes an instance-column query once interned.
type InstanceQueryInfo struct {
	Index       int
	ColumnIndex uint64
	Rotation    column.Rotation
}

// Expression is an immutable polynomial syntax tree over a field F, as
// described in spec.md §3-4.1. Query-variant nodes are only ever produced by
// a VirtualCells, which interns their (column, rotation) pair into the owning
// ConstraintSystem as the node is built.
type Expression[F field.Element[F]] struct {
	kind     kind
	constant F
	selector column.Selector
	fixed    FixedQueryInfo
	advice   AdviceQueryInfo
	instance InstanceQueryInfo
	chall    column.Challenge
	left     *Expression[F]
	right    *Expression[F]
	scalar   F
}

// NewConstant builds a Constant(F) leaf.
func NewConstant[F field.Element[F]](v F) Expression[F] {
	return Expression[F]{kind: kConstant, constant: v}
}

// newSelector builds a Selector leaf. Unexported: callers obtain selector
// expressions only through VirtualCells.QuerySelector, which is the sole
// legitimate way to reference a selector inside a polynomial.
func newSelector[F field.Element[F]](s column.Selector) Expression[F] {
	return Expression[F]{kind: kSelector, selector: s}
}

func newFixedQuery[F field.Element[F]](q FixedQueryInfo) Expression[F] {
	return Expression[F]{kind: kFixed, fixed: q}
}

func newAdviceQuery[F field.Element[F]](q AdviceQueryInfo) Expression[F] {
	return Expression[F]{kind: kAdvice, advice: q}
}

func newInstanceQuery[F field.Element[F]](q InstanceQueryInfo) Expression[F] {
	return Expression[F]{kind: kInstance, instance: q}
}

func newChallenge[F field.Element[F]](c column.Challenge) Expression[F] {
	return Expression[F]{kind: kChallenge, chall: c}
}

// Neg returns -e. Unlike Add/Sub/Mul, negation carries no simple-selector
// restriction.
func (e Expression[F]) Neg() Expression[F] {
	return Expression[F]{kind: kNegated, left: &e}
}

// Add returns e + o, panicking if either operand transitively contains a
// simple selector (spec.md §4.1, Testable Property 4).
func (e Expression[F]) Add(o Expression[F]) Expression[F] {
	if e.ContainsSimpleSelector() || o.ContainsSimpleSelector() {
		panic("cs: cannot add expressions containing simple selectors")
	}

	return Expression[F]{kind: kSum, left: &e, right: &o}
}

// Sub returns e - o, panicking if either operand transitively contains a
// simple selector.
func (e Expression[F]) Sub(o Expression[F]) Expression[F] {
	if e.ContainsSimpleSelector() || o.ContainsSimpleSelector() {
		panic("cs: cannot subtract expressions containing simple selectors")
	}

	neg := o.Neg()

	return Expression[F]{kind: kSum, left: &e, right: &neg}
}

// Mul returns e * o, panicking only if BOTH operands transitively contain a
// simple selector.
func (e Expression[F]) Mul(o Expression[F]) Expression[F] {
	if e.ContainsSimpleSelector() && o.ContainsSimpleSelector() {
		panic("cs: cannot multiply two expressions that both contain simple selectors")
	}

	return Expression[F]{kind: kProduct, left: &e, right: &o}
}

// Scale returns e * k for a scalar field element k. Always legal, regardless
// of simple-selector content.
func (e Expression[F]) Scale(k F) Expression[F] {
	return Expression[F]{kind: kScaled, left: &e, scalar: k}
}

// Sum reduces exprs left-to-right with neutral element Constant(0), producing
// the left-associated tree ((a+b)+c) and Constant(0) for an empty input
// (spec.md §8 Testable Property 1).
func Sum[F field.Element[F]](exprs ...Expression[F]) Expression[F] {
	if len(exprs) == 0 {
		var zero F
		return NewConstant(zero.Zero())
	}

	acc := exprs[0]
	for _, e := range exprs[1:] {
		acc = acc.Add(e)
	}

	return acc
}

// Product reduces exprs left-to-right with neutral element Constant(1),
// producing the left-associated tree ((a*b)*c) and Constant(1) for an empty
// input.
func Product[F field.Element[F]](exprs ...Expression[F]) Expression[F] {
	if len(exprs) == 0 {
		var zero F
		return NewConstant(zero.One())
	}

	acc := exprs[0]
	for _, e := range exprs[1:] {
		acc = acc.Mul(e)
	}

	return acc
}

// Degree computes the polynomial degree (spec.md §3/§8 Testable Property 2).
func (e Expression[F]) Degree() int {
	switch e.kind {
	case kConstant, kChallenge:
		return 0
	case kSelector, kFixed, kAdvice, kInstance:
		return 1
	case kNegated:
		return e.left.Degree()
	case kSum:
		l, r := e.left.Degree(), e.right.Degree()
		if l > r {
			return l
		}

		return r
	case kProduct:
		return e.left.Degree() + e.right.Degree()
	case kScaled:
		return e.left.Degree()
	default:
		panic("cs: unreachable expression kind")
	}
}

// Complexity is the lazy-evaluation cost heuristic from spec.md §4.1: used to
// decide which side of a Product to evaluate first.
func (e Expression[F]) Complexity() int {
	switch e.kind {
	case kConstant:
		return 0
	case kSelector, kFixed, kAdvice, kInstance, kChallenge:
		return 1
	case kNegated:
		return e.left.Complexity() + 5
	case kSum:
		return e.left.Complexity() + e.right.Complexity() + 15
	case kProduct:
		return e.left.Complexity() + e.right.Complexity() + 30
	case kScaled:
		return e.left.Complexity() + 30
	default:
		panic("cs: unreachable expression kind")
	}
}

// ContainsSimpleSelector reports whether e transitively references a simple
// selector.
func (e Expression[F]) ContainsSimpleSelector() bool {
	return Evaluate(e, Evaluator[F, bool]{
		Constant: func(F) bool { return false },
		Selector: func(s column.Selector) bool { return s.IsSimple() },
		Fixed:    func(FixedQueryInfo) bool { return false },
		Advice:   func(AdviceQueryInfo) bool { return false },
		Instance: func(InstanceQueryInfo) bool { return false },
		Challenge: func(column.Challenge) bool { return false },
		Negated:  func(a bool) bool { return a },
		Sum:      func(a, b bool) bool { return a || b },
		Product:  func(a, b bool) bool { return a || b },
		Scaled:   func(a bool, _ F) bool { return a },
	})
}

// ExtractSimpleSelector returns the lone simple selector referenced by e, if
// any, panicking if two distinct simple selectors appear in the same
// expression (a construction that Add/Sub/Mul should already have rejected).
func (e Expression[F]) ExtractSimpleSelector() (column.Selector, bool) {
	type found struct {
		sel column.Selector
		ok  bool
	}

	merge := func(a, b found) found {
		switch {
		case a.ok && b.ok:
			if a.sel.Index() != b.sel.Index() {
				panic("cs: expression contains two distinct simple selectors")
			}

			return a
		case a.ok:
			return a
		default:
			return b
		}
	}

	r := Evaluate(e, Evaluator[F, found]{
		Constant: func(F) found { return found{} },
		Selector: func(s column.Selector) found {
			if s.IsSimple() {
				return found{sel: s, ok: true}
			}

			return found{}
		},
		Fixed:     func(FixedQueryInfo) found { return found{} },
		Advice:    func(AdviceQueryInfo) found { return found{} },
		Instance:  func(InstanceQueryInfo) found { return found{} },
		Challenge: func(column.Challenge) found { return found{} },
		Negated:   func(a found) found { return a },
		Sum:       merge,
		Product:   merge,
		Scaled:    func(a found, _ F) found { return a },
	})

	return r.sel, r.ok
}

// Evaluator bundles the ten callables evaluate/evaluate_lazy fold over
// (spec.md §4.1): one per Expression variant.
type Evaluator[F field.Element[F], T any] struct {
	Constant  func(F) T
	Selector  func(column.Selector) T
	Fixed     func(FixedQueryInfo) T
	Advice    func(AdviceQueryInfo) T
	Instance  func(InstanceQueryInfo) T
	Challenge func(column.Challenge) T
	Negated   func(T) T
	Sum       func(T, T) T
	Product   func(T, T) T
	Scaled    func(T, F) T
}

// Evaluate folds ev over e, recursing eagerly over both sides of Sum/Product.
func Evaluate[F field.Element[F], T any](e Expression[F], ev Evaluator[F, T]) T {
	switch e.kind {
	case kConstant:
		return ev.Constant(e.constant)
	case kSelector:
		return ev.Selector(e.selector)
	case kFixed:
		return ev.Fixed(e.fixed)
	case kAdvice:
		return ev.Advice(e.advice)
	case kInstance:
		return ev.Instance(e.instance)
	case kChallenge:
		return ev.Challenge(e.chall)
	case kNegated:
		return ev.Negated(Evaluate(*e.left, ev))
	case kSum:
		return ev.Sum(Evaluate(*e.left, ev), Evaluate(*e.right, ev))
	case kProduct:
		return ev.Product(Evaluate(*e.left, ev), Evaluate(*e.right, ev))
	case kScaled:
		return ev.Scaled(Evaluate(*e.left, ev), e.scalar)
	default:
		panic("cs: unreachable expression kind")
	}
}

// EvaluateLazy is identical to Evaluate except for Product: it evaluates the
// lower-complexity operand first, and returns immediately without evaluating
// the other operand if that result equals zero (spec.md §4.1).
func EvaluateLazy[F field.Element[F], T any](e Expression[F], ev Evaluator[F, T], zero T, equal func(T, T) bool) T {
	switch e.kind {
	case kProduct:
		first, second := e.left, e.right
		if second.Complexity() < first.Complexity() {
			first, second = second, first
		}

		firstVal := EvaluateLazy(*first, ev, zero, equal)
		if equal(firstVal, zero) {
			return zero
		}

		secondVal := EvaluateLazy(*second, ev, zero, equal)

		return ev.Product(firstVal, secondVal)
	case kConstant:
		return ev.Constant(e.constant)
	case kSelector:
		return ev.Selector(e.selector)
	case kFixed:
		return ev.Fixed(e.fixed)
	case kAdvice:
		return ev.Advice(e.advice)
	case kInstance:
		return ev.Instance(e.instance)
	case kChallenge:
		return ev.Challenge(e.chall)
	case kNegated:
		return ev.Negated(EvaluateLazy(*e.left, ev, zero, equal))
	case kSum:
		return ev.Sum(EvaluateLazy(*e.left, ev, zero, equal), EvaluateLazy(*e.right, ev, zero, equal))
	case kScaled:
		return ev.Scaled(EvaluateLazy(*e.left, ev, zero, equal), e.scalar)
	default:
		panic("cs: unreachable expression kind")
	}
}

// writeIdentifier renders e's canonical textual form into sb (spec.md §4.1):
// constants use the field's own string form; queries render as
// "kind[col][rot]"; selectors as "selector[i]"; challenges as "challenge[i]";
// Negated wraps "(-e)"; Sum as "(a+b)"; Product as "(a*b)"; Scaled as
// "a*scalar". Two expressions computing the same value under the rewriting
// rules this form encodes may still coincide even across commutative
// reorderings; the reverse implication does not hold (Testable Property 3).
func (e Expression[F]) writeIdentifier(sb *strings.Builder) {
	switch e.kind {
	case kConstant:
		sb.WriteString(e.constant.String())
	case kSelector:
		sb.WriteString(e.selector.String())
	case kFixed:
		fmt.Fprintf(sb, "fixed[%d][%d]", e.fixed.ColumnIndex, e.fixed.Rotation)
	case kAdvice:
		fmt.Fprintf(sb, "advice[%d][%d]", e.advice.ColumnIndex, e.advice.Rotation)
	case kInstance:
		fmt.Fprintf(sb, "instance[%d][%d]", e.instance.ColumnIndex, e.instance.Rotation)
	case kChallenge:
		sb.WriteString(e.chall.String())
	case kNegated:
		sb.WriteString("(-")
		e.left.writeIdentifier(sb)
		sb.WriteString(")")
	case kSum:
		sb.WriteString("(")
		e.left.writeIdentifier(sb)
		sb.WriteString("+")
		e.right.writeIdentifier(sb)
		sb.WriteString(")")
	case kProduct:
		sb.WriteString("(")
		e.left.writeIdentifier(sb)
		sb.WriteString("*")
		e.right.writeIdentifier(sb)
		sb.WriteString(")")
	case kScaled:
		e.left.writeIdentifier(sb)
		fmt.Fprintf(sb, "*%s", e.scalar.String())
	default:
		panic("cs: unreachable expression kind")
	}
}

// Identifier returns e's canonical textual form (spec.md §4.1).
func (e Expression[F]) Identifier() string {
	var sb strings.Builder

	e.writeIdentifier(&sb)

	return sb.String()
}

// String renders e for diagnostics, mirroring the original's Debug impl:
// queries show their interned index, and an advice query's phase is
// suppressed when it is the default (phase 0). Never used for Identifier.
func (e Expression[F]) String() string {
	switch e.kind {
	case kConstant:
		return fmt.Sprintf("Constant(%s)", e.constant.String())
	case kSelector:
		return fmt.Sprintf("Selector(%d)", e.selector.Index())
	case kFixed:
		return fmt.Sprintf("Fixed(query_index:%d, column_index:%d, rotation:%d)",
			e.fixed.Index, e.fixed.ColumnIndex, e.fixed.Rotation)
	case kAdvice:
		if e.advice.Phase == 0 {
			return fmt.Sprintf("Advice(query_index:%d, column_index:%d, rotation:%d)",
				e.advice.Index, e.advice.ColumnIndex, e.advice.Rotation)
		}

		return fmt.Sprintf("Advice(query_index:%d, column_index:%d, rotation:%d, phase:%d)",
			e.advice.Index, e.advice.ColumnIndex, e.advice.Rotation, e.advice.Phase)
	case kInstance:
		return fmt.Sprintf("Instance(query_index:%d, column_index:%d, rotation:%d)",
			e.instance.Index, e.instance.ColumnIndex, e.instance.Rotation)
	case kChallenge:
		return fmt.Sprintf("Challenge(%d)", e.chall.Index())
	case kNegated:
		return fmt.Sprintf("Negated(%s)", e.left.String())
	case kSum:
		return fmt.Sprintf("Sum(%s, %s)", e.left.String(), e.right.String())
	case kProduct:
		return fmt.Sprintf("Product(%s, %s)", e.left.String(), e.right.String())
	case kScaled:
		return fmt.Sprintf("Scaled(%s, %s)", e.left.String(), e.scalar.String())
	default:
		panic("cs: unreachable expression kind")
	}
}
