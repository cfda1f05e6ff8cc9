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
	"bufio"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// WriteGensal writes a TxBLEND boundary salinity concentration input file.
// s must be a continuous two-hourly series; each output line holds one
// whole day of 12 values, and trailing rows that do not fill a whole day
// are discarded. loc labels where the salinity data was collected, for
// example "OffGalves".
func WriteGensal(s *Series, path, loc string) error {
	return writeBiHourly(s, path, fmt.Sprintf("%8s", loc))
}

// WriteTide writes a TxBLEND tide input file from a continuous two-hourly
// series. The series name becomes the trailing location label. As with
// WriteGensal, trailing rows beyond the last whole day are discarded.
func WriteTide(s *Series, path string) error {
	return writeBiHourly(s, path, fmt.Sprintf("%-8s", s.Name))
}

// writeBiHourly emits one fixed-column line per whole group of 12
// two-hourly rows: month and day in 3-character fields, twelve values in
// 6-character fields with 2 decimals, the year in a 6-character field, and
// the already-padded label.
func writeBiHourly(s *Series, path, label string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("txblend: creating %s: %w", path, err)
	}
	defer f.Close()
	Log.WithFields(logrus.Fields{"file": path, "rows": s.Len()}).Info("writing bi-hourly file")

	w := bufio.NewWriter(f)
	for i := 0; i+12 <= s.Len(); i += 12 {
		t := s.Times[i]
		fmt.Fprintf(w, "%3d%3d", int(t.Month()), t.Day())
		for j := 0; j < 12; j++ {
			fmt.Fprintf(w, "%6.2f", s.Values[i+j])
		}
		fmt.Fprintf(w, "%6d %s\n", t.Year(), label)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("txblend: writing %s: %w", path, err)
	}
	return nil
}
