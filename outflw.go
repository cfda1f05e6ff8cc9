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
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// outflowColumns is the fixed schema of an outflw1 check-node table.
var outflowColumns = []string{"tide", "elevation", "depth", "velocity", "direction", "salinity"}

// Outflw1 reads the outflw1 file written by a TxBLEND run, which holds
// hourly output at the check nodes named in the run's input file. The old
// outflw1 format carries no year: the starting year comes from the
// "starting date of simulation" line of the companion input file in the
// same directory, and the year is advanced whenever a blank line follows a
// record dated December 31 23:00.
func Outflw1(dir string) (*Outflow, error) {
	year, err := simulationStartYear(filepath.Join(dir, "input"))
	if err != nil {
		return nil, err
	}

	path := filepath.Join(dir, "outflw1")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("txblend: opening outflw1 file: %w", err)
	}
	defer f.Close()
	Log.WithFields(logrus.Fields{"file": path, "year": year}).Info("reading outflw1 file")

	scan := bufio.NewScanner(f)
	lineno := 0
	for i := 0; i < 5; i++ { // banner lines
		if !scan.Scan() {
			return nil, fmt.Errorf("txblend: %s: file ends inside the 5-line header", path)
		}
		lineno++
	}

	out := &Outflow{Tables: make(map[string]*Frame)}
	var last []string
	for scan.Scan() {
		lineno++
		ln := scan.Text()
		if strings.TrimSpace(ln) == "" {
			// A blank line closes an hour block; rolling past the last
			// hour of December 31 starts the next year.
			if len(last) >= 3 && last[0] == "12" && last[1] == "31" && last[2] == "23.0" {
				year++
			}
			continue
		}
		fields := strings.Fields(ln)
		if len(fields) != 10 && len(fields) != 11 {
			return nil, fmt.Errorf("txblend: %s: line %d: expected 10 or 11 fields, got %d",
				path, lineno, len(fields))
		}
		month, err1 := strconv.Atoi(fields[0])
		day, err2 := strconv.Atoi(fields[1])
		hour, err3 := strconv.Atoi(strings.SplitN(fields[2], ".", 2)[0])
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, fmt.Errorf("txblend: %s: line %d: bad date fields", path, lineno)
		}
		if !validDate(year, month, day) || hour < 0 || hour > 23 {
			return nil, fmt.Errorf("txblend: %s: line %d: invalid date %d-%02d-%02d %d:00",
				path, lineno, year, month, day, hour)
		}
		node := fields[3]

		// tide, elevation, depth, velocity, then direction and salinity.
		// In 10-field lines the two-character flow-direction code is fused
		// to the front of the direction value; in 11-field lines it stands
		// alone as field 8.
		raw := append([]string{}, fields[4:8]...)
		switch len(fields) {
		case 11:
			raw = append(raw, fields[9], fields[10])
		case 10:
			if len(fields[8]) <= 2 {
				return nil, fmt.Errorf("txblend: %s: line %d: direction field '%s' too short",
					path, lineno, fields[8])
			}
			raw = append(raw, fields[8][2:], fields[9])
		}
		row, err := parseTokens(raw)
		if err != nil {
			return nil, fmt.Errorf("txblend: %s: line %d: %v", path, lineno, err)
		}

		table, ok := out.Tables[node]
		if !ok { // first sighting of this check node
			table = &Frame{Columns: outflowColumns}
			out.Tables[node] = table
			out.Nodes = append(out.Nodes, node)
		}
		table.add(time.Date(year, time.Month(month), day, hour, 0, 0, 0, time.UTC), row)
		last = fields
	}
	if err := scan.Err(); err != nil {
		return nil, fmt.Errorf("txblend: reading %s: %w", path, err)
	}

	for _, node := range out.Nodes {
		table := out.Tables[node]
		table.sortByTime()
		if err := table.checkMonotonic(path + " node " + node); err != nil {
			return nil, err
		}
	}
	Log.WithFields(logrus.Fields{"file": path, "nodes": len(out.Nodes)}).Info("read outflw1 file")
	return out, nil
}

// simulationStartYear extracts the starting year from the "starting date
// of simulation" line of a TxBLEND input file.
func simulationStartYear(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("txblend: opening input file: %w", err)
	}
	defer f.Close()

	scan := bufio.NewScanner(f)
	for scan.Scan() {
		ln := scan.Text()
		if !strings.Contains(ln, "starting date of simulation") {
			continue
		}
		parts := strings.Split(strings.ReplaceAll(ln, " ", ""), ",")
		if len(parts) < 3 || len(parts[2]) < 4 {
			return 0, fmt.Errorf("txblend: %s: malformed starting date line '%s'", path, ln)
		}
		year, err := strconv.Atoi(parts[2][:4])
		if err != nil {
			return 0, fmt.Errorf("txblend: %s: bad starting year in '%s'", path, ln)
		}
		return year, nil
	}
	if err := scan.Err(); err != nil {
		return 0, fmt.Errorf("txblend: reading %s: %w", path, err)
	}
	return 0, fmt.Errorf("txblend: %s: no 'starting date of simulation' line before end of file", path)
}

// StartEnd reads the start and end dates of a TxBLEND run from the output
// file in dir. The start falls on hour 0 of the first day and the end on
// hour 23 of the last.
func StartEnd(dir string) (start, end time.Time, err error) {
	path := filepath.Join(dir, "output")
	f, err := os.Open(path)
	if err != nil {
		return start, end, fmt.Errorf("txblend: opening output file: %w", err)
	}
	defer f.Close()

	scan := bufio.NewScanner(f)
	for scan.Scan() {
		fields := strings.Fields(strings.ReplaceAll(scan.Text(), "=", " "))
		if len(fields) == 0 || fields[0] != "MNTH1" {
			continue
		}
		start, err = dateFields(path, fields)
		if err != nil {
			return start, end, err
		}
		if !scan.Scan() {
			return start, end, fmt.Errorf("txblend: %s: file ends before the ending date line", path)
		}
		fields = strings.Fields(strings.ReplaceAll(scan.Text(), "=", " "))
		end, err = dateFields(path, fields)
		if err != nil {
			return start, end, err
		}
		end = end.Add(23 * time.Hour)
		return start, end, nil
	}
	if err := scan.Err(); err != nil {
		return start, end, fmt.Errorf("txblend: reading %s: %w", path, err)
	}
	return start, end, fmt.Errorf("txblend: %s: no 'MNTH1' line before end of file", path)
}

// dateFields picks the month, day, and year out of an
// "MNTH1= 1 IDAY1= 1 IYR1= 2001" style line split on blanks and '='.
func dateFields(path string, f []string) (time.Time, error) {
	if len(f) < 6 {
		return time.Time{}, fmt.Errorf("txblend: %s: malformed simulation date line %v", path, f)
	}
	month, err1 := strconv.Atoi(f[1])
	day, err2 := strconv.Atoi(f[3])
	year, err3 := strconv.Atoi(f[5])
	if err1 != nil || err2 != nil || err3 != nil || !validDate(year, month, day) {
		return time.Time{}, fmt.Errorf("txblend: %s: bad simulation date in %v", path, f)
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}

// Outflw2 reads the outflw2* files in dir (hourly flow through passes,
// possibly split across several files carrying different passes) and
// returns one frame with a column per pass, indexed hourly from the run's
// start date. A run that spills one hour past its end date contributes one
// surplus row, which is dropped; any other length mismatch is an error.
func Outflw2(dir string) (*Frame, error) {
	start, end, err := StartEnd(dir)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("txblend: listing %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), "outflw2") {
			files = append(files, e.Name())
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("txblend: no outflw2 files in %s", dir)
	}

	var columns []string
	var rows [][]float64
	for _, name := range files {
		path := filepath.Join(dir, name)
		cols, vals, err := readOutflw2File(path)
		if err != nil {
			return nil, err
		}
		if rows == nil {
			columns, rows = cols, vals
			continue
		}
		if len(vals) != len(rows) {
			return nil, fmt.Errorf("txblend: %s carries %d rows, but %s carried %d",
				path, len(vals), files[0], len(rows))
		}
		columns = append(columns, cols...)
		for i := range rows {
			rows[i] = append(rows[i], vals[i]...)
		}
	}

	// The model sometimes runs one hour past its end date; the surplus
	// row is dropped. Anything else is a real mismatch.
	hours := int(end.Sub(start).Hours()) + 1
	switch {
	case len(rows) == hours:
	case len(rows) == hours+1:
		rows = rows[:hours]
	default:
		return nil, fmt.Errorf("txblend: model dates do not match contents of outflw2 files: have %d rows, want %d",
			len(rows), hours)
	}

	fr := &Frame{Columns: columns}
	for i, row := range rows {
		fr.add(start.Add(time.Duration(i)*time.Hour), row)
	}
	Log.WithFields(logrus.Fields{"dir": dir, "files": len(files), "rows": fr.Len()}).
		Info("read outflw2 files")
	return fr, nil
}

// readOutflw2File reads one outflw2 file: a 6-line banner, a header line
// naming Mnth, Day, Time, and the passes, then whitespace-delimited rows.
// The date columns are dropped; only the pass columns are returned.
func readOutflw2File(path string) (columns []string, rows [][]float64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("txblend: opening outflw2 file: %w", err)
	}
	defer f.Close()

	scan := bufio.NewScanner(f)
	lineno := 0
	for i := 0; i < 6; i++ {
		if !scan.Scan() {
			return nil, nil, fmt.Errorf("txblend: %s: file ends inside the 6-line banner", path)
		}
		lineno++
	}

	var header []string
	for scan.Scan() {
		lineno++
		ln := scan.Text()
		if strings.TrimSpace(ln) == "" {
			continue
		}
		fields := strings.Fields(ln)
		if header == nil {
			if len(fields) < 4 {
				return nil, nil, fmt.Errorf("txblend: %s: line %d: short header line", path, lineno)
			}
			header = fields
			columns = fields[3:]
			continue
		}
		if len(fields) != len(header) {
			return nil, nil, fmt.Errorf("txblend: %s: line %d: expected %d fields, got %d",
				path, lineno, len(header), len(fields))
		}
		vals, err := parseTokens(fields[3:])
		if err != nil {
			return nil, nil, fmt.Errorf("txblend: %s: line %d: %v", path, lineno, err)
		}
		rows = append(rows, vals)
	}
	if err := scan.Err(); err != nil {
		return nil, nil, fmt.Errorf("txblend: reading %s: %w", path, err)
	}
	if header == nil {
		return nil, nil, fmt.Errorf("txblend: %s: no header line after the banner", path)
	}
	return columns, rows, nil
}
