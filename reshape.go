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
	"time"
)

// validDate reports whether year-month-day is a real calendar date.
// time.Date normalizes out-of-range components (February 30 becomes
// March 1 or 2), so the check is whether the composition round-trips.
func validDate(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Year() == year && int(t.Month()) == month && t.Day() == day
}

// slotTime composes the timestamp for slot i of rec under the format's
// slot kind. ok is false when the composition is not a valid calendar
// date or time.
func slotTime(rec record, spec formatSpec, i int) (t time.Time, ok bool) {
	switch spec.kind {
	case slotDaily:
		day := i + 1
		if !validDate(rec.year, rec.month, day) {
			return time.Time{}, false
		}
		return time.Date(rec.year, time.Month(rec.month), day, 0, 0, 0, 0, time.UTC), true
	case slotHourly:
		if !validDate(rec.year, rec.month, rec.day) {
			return time.Time{}, false
		}
		return time.Date(rec.year, time.Month(rec.month), rec.day, i, 0, 0, 0, time.UTC), true
	case slotBiHourly:
		if !validDate(rec.year, rec.month, rec.day) {
			return time.Time{}, false
		}
		return time.Date(rec.year, time.Month(rec.month), rec.day, 2*i, 0, 0, 0, time.UTC), true
	}
	panic("unknown slot kind")
}

// melt reshapes records wide to long: one (timestamp, value) row per
// populated, non-sentinel slot. Slot values beyond the format's slot count
// are a malformed record; slots the record never populated simply produce
// no row, which is how short months avoid invalid-date errors in the
// daily formats.
func melt(recs []record, spec formatSpec, name string) (*Series, error) {
	s := &Series{Name: spec.column}
	for _, rec := range recs {
		if len(rec.values) > spec.slots {
			return nil, fmt.Errorf("txblend: %s: record %d-%02d carries %d values for %d slots",
				name, rec.year, rec.month, len(rec.values), spec.slots)
		}
		for i, v := range rec.values {
			if spec.missing(v) {
				continue
			}
			t, ok := slotTime(rec, spec, i)
			if !ok {
				if spec.coerceDates {
					continue
				}
				return nil, fmt.Errorf("txblend: %s: slot %d of record %d-%02d-%02d is not a valid date",
					name, i, rec.year, rec.month, rec.day)
			}
			s.add(t, v)
		}
	}
	return s, nil
}

// assemble sorts the melted rows chronologically and enforces the
// strictly-increasing index invariant.
func assemble(s *Series, name string) (*Series, error) {
	s.sortByTime()
	if err := s.checkMonotonic(name); err != nil {
		return nil, err
	}
	return s, nil
}
