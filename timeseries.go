/*
Copyright © 2018 the txblend authors.
This file is part of txblend.

txblend is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

txblend is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with txblend.  If not, see <http://www.gnu.org/licenses/>.
*/

package txblend

import (
	"fmt"
	"sort"
	"time"
)

// Series is a single-column time series. After assembly the index is
// strictly increasing with no duplicate timestamps. Spacing may be
// irregular when the source records are irregular.
type Series struct {
	// Name is the semantic name of the value column, for example
	// "inflow_cfs" or "salinity".
	Name string

	Times  []time.Time
	Values []float64
}

// Len returns the number of rows.
func (s *Series) Len() int { return len(s.Times) }

func (s *Series) add(t time.Time, v float64) {
	s.Times = append(s.Times, t)
	s.Values = append(s.Values, v)
}

func (s *Series) sortByTime() {
	idx := sortedOrder(s.Times)
	times := make([]time.Time, len(s.Times))
	vals := make([]float64, len(s.Values))
	for i, j := range idx {
		times[i] = s.Times[j]
		vals[i] = s.Values[j]
	}
	s.Times = times
	s.Values = vals
}

// checkMonotonic returns an error if the index is not strictly increasing.
func (s *Series) checkMonotonic(name string) error {
	return checkMonotonic(name, s.Times)
}

// Frame is a time-indexed table with one or more named columns.
// Row i holds the values for Times[i], one per column; cells with no
// observation are NaN.
type Frame struct {
	Columns []string
	Times   []time.Time
	Rows    [][]float64
}

// Len returns the number of rows.
func (f *Frame) Len() int { return len(f.Times) }

func (f *Frame) add(t time.Time, row []float64) {
	f.Times = append(f.Times, t)
	f.Rows = append(f.Rows, row)
}

// Col returns the values of the named column, or an error if the frame has
// no such column.
func (f *Frame) Col(name string) ([]float64, error) {
	for j, c := range f.Columns {
		if c != name {
			continue
		}
		out := make([]float64, len(f.Rows))
		for i, row := range f.Rows {
			out[i] = row[j]
		}
		return out, nil
	}
	return nil, fmt.Errorf("txblend: no column '%s' (have %v)", name, f.Columns)
}

func (f *Frame) sortByTime() {
	idx := sortedOrder(f.Times)
	times := make([]time.Time, len(f.Times))
	rows := make([][]float64, len(f.Rows))
	for i, j := range idx {
		times[i] = f.Times[j]
		rows[i] = f.Rows[j]
	}
	f.Times = times
	f.Rows = rows
}

func (f *Frame) checkMonotonic(name string) error {
	return checkMonotonic(name, f.Times)
}

// Outflow holds the hourly model output at each check node. Nodes are
// listed in order of their first appearance in the file, and every node
// shares the same six-column hourly schema.
type Outflow struct {
	Nodes  []string
	Tables map[string]*Frame
}

// sortedOrder returns the permutation that puts times in ascending order,
// keeping equal stamps in input order.
func sortedOrder(times []time.Time) []int {
	idx := make([]int, len(times))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return times[idx[a]].Before(times[idx[b]])
	})
	return idx
}

func checkMonotonic(name string, times []time.Time) error {
	for i := 1; i < len(times); i++ {
		if !times[i-1].Before(times[i]) {
			return fmt.Errorf("txblend: %s: duplicate timestamp %v in assembled series",
				name, times[i])
		}
	}
	return nil
}
