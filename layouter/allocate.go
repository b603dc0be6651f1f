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
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/zkplonk/circuit/column"
)

// Interval is a half-open row range [Start, End) occupied within one column.
type Interval struct {
	Start, End uint64
}

// ColumnAllocation is the set of row-intervals a single column has committed
// to region placements, sorted and non-overlapping.
type ColumnAllocation struct {
	intervals []Interval
}

// FreeIntervals returns the sub-intervals of [from, to) not occupied by any
// committed interval, in ascending order.
func (a ColumnAllocation) FreeIntervals(from, to uint64) []Interval {
	var free []Interval

	cursor := from

	for _, iv := range a.intervals {
		if iv.End <= from || iv.Start >= to || cursor >= to {
			continue
		}

		if iv.Start > cursor {
			end := iv.Start
			if end > to {
				end = to
			}

			if cursor < end {
				free = append(free, Interval{cursor, end})
			}
		}

		if iv.End > cursor {
			cursor = iv.End
		}
	}

	if cursor < to {
		free = append(free, Interval{cursor, to})
	}

	return free
}

// UnboundedIntervalStart returns the row at which this column's committed
// intervals end (0 if the column was never touched) — the smallest row
// guaranteed free for the rest of time.
func (a ColumnAllocation) UnboundedIntervalStart() uint64 {
	var end uint64

	for _, iv := range a.intervals {
		if iv.End > end {
			end = iv.End
		}
	}

	return end
}

func (a *ColumnAllocation) insert(iv Interval) {
	idx := sort.Search(len(a.intervals), func(i int) bool { return a.intervals[i].Start >= iv.Start })
	a.intervals = append(a.intervals, Interval{})
	copy(a.intervals[idx+1:], a.intervals[idx:])
	a.intervals[idx] = iv
}

func adviceArea(s RegionShape) uint64 {
	n := uint64(0)

	for _, c := range s.Columns() {
		if c.Kind() == column.Advice {
			n++
		}
	}

	return n * s.RowCount()
}

// SlotInBiggestAdviceFirst places measured region shapes into absolute rows
// via greedy first-fit, after sorting by descending advice area with a
// stable insertion-order tiebreak (spec.md §4.6, Testable Property 7). The
// returned RegionStart slice is indexed by region index, not placement order.
// logger may be nil, in which case the standard logger is used; the chosen
// start row for each region is logged at Debug level.
func SlotInBiggestAdviceFirst(shapes []RegionShape, logger *log.Logger) ([]RegionStart, map[column.Column]ColumnAllocation) {
	if logger == nil {
		logger = log.StandardLogger()
	}

	order := make([]int, len(shapes))
	for i := range shapes {
		order[i] = i
	}

	sort.SliceStable(order, func(i, j int) bool {
		return adviceArea(shapes[order[i]]) > adviceArea(shapes[order[j]])
	})

	allocations := make(map[column.Column]*ColumnAllocation)

	get := func(col column.Column) *ColumnAllocation {
		a, ok := allocations[col]
		if !ok {
			a = &ColumnAllocation{}
			allocations[col] = a
		}

		return a
	}

	starts := make([]RegionStart, len(shapes))

	for _, idx := range order {
		shape := shapes[idx]
		starts[idx] = RegionStart(reserve(get, shape.Columns(), shape.RowCount()))

		logger.WithField("region", idx).WithField("start", uint64(starts[idx])).Debug("layouter: placed region")
	}

	result := make(map[column.Column]ColumnAllocation, len(allocations))
	for col, a := range allocations {
		result[col] = ColumnAllocation{intervals: append([]Interval(nil), a.intervals...)}
	}

	return starts, result
}

// reserve finds the smallest row r such that [r, r+length) is free across
// every column in cols, reserves that interval in each, and returns r.
func reserve(get func(column.Column) *ColumnAllocation, cols []column.Column, length uint64) uint64 {
	if length == 0 || len(cols) == 0 {
		return 0
	}

	allocs := make([]*ColumnAllocation, len(cols))
	for i, c := range cols {
		allocs[i] = get(c)
	}

	candidates := map[uint64]bool{0: true}
	for _, a := range allocs {
		for _, iv := range a.intervals {
			candidates[iv.Start] = true
			candidates[iv.End] = true
		}
	}

	sorted := make([]uint64, 0, len(candidates))
	for r := range candidates {
		sorted = append(sorted, r)
	}

	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	for _, r := range sorted {
		if freeForAll(allocs, r, length) {
			for _, a := range allocs {
				a.insert(Interval{r, r + length})
			}

			return r
		}
	}

	panic("layouter: no free start found for region placement (unreachable)")
}

func freeForAll(allocs []*ColumnAllocation, r, length uint64) bool {
	end := r + length

	for _, a := range allocs {
		for _, iv := range a.intervals {
			if r < iv.End && iv.Start < end {
				return false
			}
		}
	}

	return true
}
