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

import "math"

// slotKind identifies how a record's time slots map onto the calendar.
type slotKind int

const (
	// slotDaily slots are days of the record's month (slot 0 = day 1).
	slotDaily slotKind = iota
	// slotHourly slots are hours of the record's day (slot 0 = 00:00).
	slotHourly
	// slotBiHourly slots are two-hour steps of the record's day
	// (slot 0 = 00:00, slot 11 = 22:00).
	slotBiHourly
)

// formatSpec declares the slot layout and missing-value policy of one
// TxBLEND text format. Keeping the sentinels and date policies here, rather
// than inline in the readers, is what makes the asymmetries between formats
// visible: wind is the only format whose invalid slot dates are dropped
// instead of rejected, and only wind and pcp have explicit sentinels.
type formatSpec struct {
	name   string // format name used in errors and progress output
	column string // semantic name of the value column
	slots  int    // fixed number of time slots per record
	kind   slotKind

	// sentinel is the format's "no observation" literal; NaN when the
	// format marks missing observations only by absence.
	sentinel float64

	// coerceDates makes invalid slot dates drop their rows instead of
	// failing the read.
	coerceDates bool
}

// missing reports whether v is absent or equals the format's sentinel.
func (fs formatSpec) missing(v float64) bool {
	return math.IsNaN(v) || v == fs.sentinel
}

var (
	inflowFormat = formatSpec{name: "inflow", column: "inflow_cfs",
		slots: 31, kind: slotDaily, sentinel: math.NaN()}
	precipFormat = formatSpec{name: "precip", column: "precip_inches",
		slots: 31, kind: slotDaily, sentinel: math.NaN()}
	pcpFormat = formatSpec{name: "pcp", column: "pcp",
		slots: 31, kind: slotDaily, sentinel: -9999.00}
	windFormat = formatSpec{name: "wind",
		slots: 24, kind: slotHourly, sentinel: -9, coerceDates: true}
	gensalFormat = formatSpec{name: "gensal", column: "salinity",
		slots: 12, kind: slotBiHourly, sentinel: math.NaN()}
	tideFormat = formatSpec{name: "tide", column: "tide",
		slots: 12, kind: slotBiHourly, sentinel: math.NaN()}
)
