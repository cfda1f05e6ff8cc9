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
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

// Inflow reads a TxBLEND freshwater inflow input file and returns the
// daily inflow series in cubic feet per second.
func Inflow(path string) (*Series, error) {
	return readDailySeries(path, inflowFormat, inflowPayload)
}

// Precip reads a TxBLEND precipitation input file and returns the daily
// precipitation series in inches.
func Precip(path string) (*Series, error) {
	return readDailySeries(path, precipFormat, precipPayload)
}

// readDailySeries handles the inflow/precip family: reassemble the
// month-per-record lines, melt the day slots, and assemble the series.
func readDailySeries(path string, spec formatSpec, payload payloadFunc) (*Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("txblend: opening %s file: %w", spec.name, err)
	}
	defer f.Close()
	Log.WithFields(logrus.Fields{"file": path}).Infof("reading %s file", spec.name)

	recs, err := readMonthlyRecords(f, path, payload)
	if err != nil {
		return nil, err
	}
	s, err := melt(recs, spec, path)
	if err != nil {
		return nil, err
	}
	Log.WithFields(logrus.Fields{"file": path, "records": len(recs), "rows": s.Len()}).
		Infof("read %s file", spec.name)
	return assemble(s, path)
}

// Pcp reads a TxRR *.pcp watershed precipitation file (the inputs from
// which the TxBLEND precip files are built). The returned series is named
// "<watershed>_pcp" after the watershed code in the file.
func Pcp(path string) (*Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("txblend: opening pcp file: %w", err)
	}
	defer f.Close()
	Log.WithFields(logrus.Fields{"file": path}).Info("reading pcp file")

	recs, ws, err := readPcpRecords(f, path)
	if err != nil {
		return nil, err
	}
	s, err := melt(recs, pcpFormat, path)
	if err != nil {
		return nil, err
	}
	s.Name = ws + "_pcp"
	Log.WithFields(logrus.Fields{"file": path, "watershed": ws, "rows": s.Len()}).
		Info("read pcp file")
	return assemble(s, path)
}

// Gensal reads a TxBLEND generated-salinity input file and returns the
// two-hourly salinity series.
func Gensal(path string) (*Series, error) {
	return readBiHourlySeries(path, gensalFormat)
}

// Tide reads a TxBLEND tide input file and returns the two-hourly tide
// elevation series.
func Tide(path string) (*Series, error) {
	return readBiHourlySeries(path, tideFormat)
}

// readBiHourlySeries handles the gensal/tide family: one day per line as
// month, day, twelve two-hour values, year, and a location label.
func readBiHourlySeries(path string, spec formatSpec) (*Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("txblend: opening %s file: %w", spec.name, err)
	}
	defer f.Close()
	Log.WithFields(logrus.Fields{"file": path}).Infof("reading %s file", spec.name)

	var recs []record
	scan := bufio.NewScanner(f)
	lineno := 0
	for scan.Scan() {
		lineno++
		ln := scan.Text()
		if skippable(ln) {
			continue
		}
		fields := strings.Fields(ln)
		// month, day, 12 values, year, and an optional trailing label.
		if len(fields) != 15 && len(fields) != 16 {
			return nil, fmt.Errorf("txblend: %s: line %d: expected 15 or 16 fields, got %d",
				path, lineno, len(fields))
		}
		month, err1 := strconv.Atoi(fields[0])
		day, err2 := strconv.Atoi(fields[1])
		year, err3 := strconv.Atoi(fields[14])
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, fmt.Errorf("txblend: %s: line %d: bad date fields", path, lineno)
		}
		vals, err := parseTokens(fields[2:14])
		if err != nil {
			return nil, fmt.Errorf("txblend: %s: line %d: %v", path, lineno, err)
		}
		recs = append(recs, record{year: year, month: month, day: day, values: vals})
	}
	if err := scan.Err(); err != nil {
		return nil, fmt.Errorf("txblend: reading %s: %w", path, err)
	}

	s, err := melt(recs, spec, path)
	if err != nil {
		return nil, err
	}
	Log.WithFields(logrus.Fields{"file": path, "rows": s.Len()}).Infof("read %s file", spec.name)
	return assemble(s, path)
}

// Wind reads a TxBLEND wind input file and returns a frame with columns
// "dir" (wind direction in degrees from north) and "spd" (wind speed in
// miles per hour). The source format stores direction in tens of degrees;
// the returned values are scaled to degrees. The sentinel -9 marks missing
// observations, and rows whose date fields do not form a valid date are
// dropped rather than rejected; wind is the only format with that
// tolerance.
func Wind(path string) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("txblend: opening wind file: %w", err)
	}
	defer f.Close()
	Log.WithFields(logrus.Fields{"file": path}).Info("reading wind file")

	type obs struct {
		t time.Time
		v float64
	}
	perCode := make(map[int][]obs)
	var codes []int

	scan := bufio.NewScanner(f)
	lineno := 0
	for scan.Scan() {
		lineno++
		ln := scan.Text()
		if skippable(ln) {
			continue
		}
		fields := strings.Fields(ln)
		if len(fields) != 5+windFormat.slots {
			return nil, fmt.Errorf("txblend: %s: line %d: expected %d fields, got %d",
				path, lineno, 5+windFormat.slots, len(fields))
		}
		year, err1 := strconv.Atoi(fields[0])
		month, err2 := strconv.Atoi(fields[1])
		day, err3 := strconv.Atoi(fields[2])
		code, err4 := strconv.Atoi(fields[4])
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			return nil, fmt.Errorf("txblend: %s: line %d: bad date or variable-code field", path, lineno)
		}
		vals, err := parseTokens(fields[5:])
		if err != nil {
			return nil, fmt.Errorf("txblend: %s: line %d: %v", path, lineno, err)
		}
		if _, ok := perCode[code]; !ok {
			codes = append(codes, code)
		}
		rec := record{year: year, month: month, day: day, values: vals}
		for i, v := range vals {
			if windFormat.missing(v) {
				continue
			}
			t, ok := slotTime(rec, windFormat, i)
			if !ok { // invalid date: coerce to null, then drop
				continue
			}
			perCode[code] = append(perCode[code], obs{t, v})
		}
		if _, ok := perCode[code]; !ok {
			perCode[code] = nil
		}
	}
	if err := scan.Err(); err != nil {
		return nil, fmt.Errorf("txblend: reading %s: %w", path, err)
	}

	// Pivot the two measured variables into their own columns. The lower
	// variable code is direction, the higher is speed.
	if len(codes) != 2 {
		return nil, fmt.Errorf("txblend: %s: expected 2 wind variable codes, got %d", path, len(codes))
	}
	sort.Ints(codes)
	cells := make(map[time.Time][]float64)
	var times []time.Time
	for j, code := range codes {
		for _, o := range perCode[code] {
			row, ok := cells[o.t]
			if !ok {
				row = []float64{math.NaN(), math.NaN()}
				cells[o.t] = row
				times = append(times, o.t)
			}
			row[j] = o.v
		}
	}
	sort.Slice(times, func(a, b int) bool { return times[a].Before(times[b]) })

	wind := &Frame{Columns: []string{"dir", "spd"}}
	for _, t := range times {
		wind.add(t, cells[t])
	}
	if err := wind.checkMonotonic(path); err != nil {
		return nil, err
	}

	// The file stores direction in tens of degrees.
	dir, err := wind.Col("dir")
	if err != nil {
		return nil, err
	}
	floats.Scale(10, dir)
	for i := range wind.Rows {
		wind.Rows[i][0] = dir[i]
	}

	Log.WithFields(logrus.Fields{"file": path, "rows": wind.Len()}).Info("read wind file")
	return wind, nil
}

// Vel reads a velx or vely file written during a TxBLEND run: daily
// average velocities, one "Average"-tagged block per day. Columns are
// numbered "1".."N" in file order.
func Vel(path string) (*Frame, error) {
	return readAverageFrame(path, "vel")
}

// AvesalD reads the avesalD.w daily average salinity file written during a
// TxBLEND run. (avesal.w holds monthly averages and is a different
// format.) Columns are numbered "1".."N" in file order.
func AvesalD(path string) (*Frame, error) {
	return readAverageFrame(path, "avesalD")
}

func readAverageFrame(path, kind string) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("txblend: opening %s file: %w", kind, err)
	}
	defer f.Close()
	Log.WithFields(logrus.Fields{"file": path}).Infof("reading %s file", kind)

	recs, err := readAverageBlocks(f, path)
	if err != nil {
		return nil, err
	}
	ncol := len(recs[0].values)
	fr := &Frame{}
	for i := 1; i <= ncol; i++ {
		fr.Columns = append(fr.Columns, strconv.Itoa(i))
	}
	for _, rec := range recs {
		if len(rec.values) != ncol {
			return nil, fmt.Errorf("txblend: %s: record %d-%02d-%02d carries %d values, want %d",
				path, rec.year, rec.month, rec.day, len(rec.values), ncol)
		}
		fr.add(time.Date(rec.year, time.Month(rec.month), rec.day, 0, 0, 0, 0, time.UTC), rec.values)
	}
	fr.sortByTime()
	if err := fr.checkMonotonic(path); err != nil {
		return nil, err
	}
	Log.WithFields(logrus.Fields{"file": path, "rows": fr.Len(), "columns": ncol}).
		Infof("read %s file", kind)
	return fr, nil
}
