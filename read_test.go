package txblend

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestInflow(t *testing.T) {
	content := strings.Join([]string{
		"# Trinity River gauged inflow",
		"1990,1,TRINITY",
		monthlyLine(1990, 1, 1, seqVals(1, 11)),
		monthlyLine(1990, 1, 2, seqVals(12, 11)),
		monthlyLine(1990, 1, 3, seqVals(23, 9)),
		"1990,2,TRINITY",
		monthlyLine(1990, 2, 1, seqVals(101, 11)),
		monthlyLine(1990, 2, 2, seqVals(112, 11)),
		monthlyLine(1990, 2, 3, seqVals(123, 6)),
	}, "\n") + "\n"

	s, err := Inflow(writeTestFile(t, "inflow", content))
	if err != nil {
		t.Fatal(err)
	}
	if s.Name != "inflow_cfs" {
		t.Errorf("have column '%s', want 'inflow_cfs'", s.Name)
	}
	if s.Len() != 31+28 {
		t.Fatalf("have %d rows, want %d", s.Len(), 31+28)
	}
	if want := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC); !s.Times[0].Equal(want) {
		t.Errorf("have first time %v, want %v", s.Times[0], want)
	}
	if want := time.Date(1990, 2, 28, 0, 0, 0, 0, time.UTC); !s.Times[s.Len()-1].Equal(want) {
		t.Errorf("have last time %v, want %v", s.Times[s.Len()-1], want)
	}
	if s.Values[0] != 1 || s.Values[30] != 31 || s.Values[31] != 101 {
		t.Errorf("have values %g, %g, %g; want 1, 31, 101",
			s.Values[0], s.Values[30], s.Values[31])
	}
	if err := s.checkMonotonic("inflow"); err != nil {
		t.Error(err)
	}
}

// A populated slot that does not form a real calendar date is a hard
// error for the daily formats.
func TestInflowInvalidDate(t *testing.T) {
	content := strings.Join([]string{
		"1990,2,TRINITY",
		monthlyLine(1990, 2, 1, seqVals(1, 11)),
		monthlyLine(1990, 2, 2, seqVals(12, 11)),
		monthlyLine(1990, 2, 3, seqVals(23, 8)), // 30 values: day 30 of February
	}, "\n")

	_, err := Inflow(writeTestFile(t, "inflow", content))
	if err == nil {
		t.Fatal("want an invalid-date error for day 30 of February")
	}
	if !strings.Contains(err.Error(), "not a valid date") {
		t.Errorf("have error %v, want an invalid-date error", err)
	}
}

// precipLine builds a precip continuation line: same 13-byte prefix as
// inflow, but the values are read as whitespace tokens.
func precipLine(year, month, seq int, vals []float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%4d%4d%5d", year, month, seq)
	for _, v := range vals {
		fmt.Fprintf(&b, " %5.2f", v)
	}
	return b.String()
}

func TestPrecip(t *testing.T) {
	content := strings.Join([]string{
		"1995,6,LAVACA",
		precipLine(1995, 6, 1, seqVals(0.5, 11)),
		precipLine(1995, 6, 2, seqVals(11.5, 11)),
		precipLine(1995, 6, 3, seqVals(22.5, 8)),
	}, "\n")

	s, err := Precip(writeTestFile(t, "precip", content))
	if err != nil {
		t.Fatal(err)
	}
	if s.Name != "precip_inches" {
		t.Errorf("have column '%s', want 'precip_inches'", s.Name)
	}
	if s.Len() != 30 {
		t.Fatalf("have %d rows, want 30", s.Len())
	}
	if s.Values[0] != 0.5 {
		t.Errorf("have %g, want 0.5", s.Values[0])
	}
}

func TestPcp(t *testing.T) {
	content := strings.Join([]string{
		"1000  CC11990 1  " + pcpChunks([]float64{1.25, -9999.00, 3.25, 4.25}),
		"2" + pcpChunks(seqVals(5, 4)),
		"3" + pcpChunks(seqVals(9, 4)),
		"4" + pcpChunks([]float64{13, 14}) + "    META    META",
	}, "\n")

	s, err := Pcp(writeTestFile(t, "cc1.pcp", content))
	if err != nil {
		t.Fatal(err)
	}
	if s.Name != "CC1_pcp" {
		t.Errorf("have column '%s', want 'CC1_pcp'", s.Name)
	}
	// 14 slots populated, one of them the -9999.00 sentinel.
	if s.Len() != 13 {
		t.Fatalf("have %d rows, want 13", s.Len())
	}
	// Day 2 carried the sentinel and must be absent.
	for _, tm := range s.Times {
		if tm.Day() == 2 {
			t.Errorf("sentinel slot for day 2 appears in the output")
		}
	}
	if s.Values[0] != 1.25 || s.Values[1] != 3.25 {
		t.Errorf("have %g, %g; want 1.25, 3.25", s.Values[0], s.Values[1])
	}
}

func windLine(year, month, day, site, code int, vals []float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%4d %2d %2d %3d %1d", year, month, day, site, code)
	for _, v := range vals {
		fmt.Fprintf(&b, " %3.0f", v)
	}
	return b.String()
}

func TestWind(t *testing.T) {
	dir := seqVals(1, 24)
	dir[0] = 9
	dir[1] = -9 // missing
	spd := seqVals(31, 24)
	content := strings.Join([]string{
		windLine(2001, 1, 1, 100, 1, dir),
		windLine(2001, 1, 1, 100, 2, spd),
		// April 31 does not exist; this row must be dropped, not rejected.
		windLine(2001, 4, 31, 100, 1, seqVals(1, 24)),
		windLine(2001, 4, 31, 100, 2, seqVals(1, 24)),
	}, "\n")

	w, err := Wind(writeTestFile(t, "wind", content))
	if err != nil {
		t.Fatal(err)
	}
	if len(w.Columns) != 2 || w.Columns[0] != "dir" || w.Columns[1] != "spd" {
		t.Fatalf("have columns %v, want [dir spd]", w.Columns)
	}
	if w.Len() != 24 {
		t.Fatalf("have %d rows, want 24", w.Len())
	}
	for _, tm := range w.Times {
		if tm.Month() != time.January {
			t.Errorf("row %v from the invalid April 31 record was not dropped", tm)
		}
	}
	// Direction is stored in tens of degrees: raw 9 comes back as 90.
	if w.Rows[0][0] != 90 {
		t.Errorf("have direction %g, want 90", w.Rows[0][0])
	}
	// Hour 1 direction was the -9 sentinel: the cell is empty but the
	// speed observation keeps the row.
	if !math.IsNaN(w.Rows[1][0]) {
		t.Errorf("have direction %g for a sentinel slot, want NaN", w.Rows[1][0])
	}
	if w.Rows[1][1] != 32 {
		t.Errorf("have speed %g, want 32", w.Rows[1][1])
	}
}

func biHourlyLine(month, day int, vals []float64, year int, label string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%3d%3d", month, day)
	for _, v := range vals {
		fmt.Fprintf(&b, "%6.2f", v)
	}
	fmt.Fprintf(&b, "%6d %-8s", year, label)
	return b.String()
}

func TestGensal(t *testing.T) {
	content := strings.Join([]string{
		biHourlyLine(1, 1, seqVals(10, 12), 2001, "OffGalves"),
		biHourlyLine(1, 2, seqVals(22, 12), 2001, "OffGalves"),
	}, "\n") + "\n"

	s, err := Gensal(writeTestFile(t, "gensal", content))
	if err != nil {
		t.Fatal(err)
	}
	if s.Name != "salinity" {
		t.Errorf("have column '%s', want 'salinity'", s.Name)
	}
	if s.Len() != 24 {
		t.Fatalf("have %d rows, want 24", s.Len())
	}
	if want := time.Date(2001, 1, 1, 22, 0, 0, 0, time.UTC); !s.Times[11].Equal(want) {
		t.Errorf("have %v, want %v", s.Times[11], want)
	}
	if s.Values[11] != 21 {
		t.Errorf("have %g, want 21", s.Values[11])
	}
}

func TestTide(t *testing.T) {
	content := biHourlyLine(3, 15, seqVals(0, 12), 1999, "pier21") + "\n"
	s, err := Tide(writeTestFile(t, "tide", content))
	if err != nil {
		t.Fatal(err)
	}
	if s.Name != "tide" {
		t.Errorf("have column '%s', want 'tide'", s.Name)
	}
	if s.Len() != 12 {
		t.Fatalf("have %d rows, want 12", s.Len())
	}
	if want := time.Date(1999, 3, 15, 0, 0, 0, 0, time.UTC); !s.Times[0].Equal(want) {
		t.Errorf("have %v, want %v", s.Times[0], want)
	}
}

func TestVelFlushAtEOF(t *testing.T) {
	content := strings.Join([]string{
		" Average velocity for year 2001 month 1 day 2",
		"   n1   n2",
		"  0.10  0.20",
		" Average velocity for year 2001 month 1 day 1",
		"  0.30  0.40",
	}, "\n")

	f, err := Vel(writeTestFile(t, "velx", content))
	if err != nil {
		t.Fatal(err)
	}
	if f.Len() != 2 {
		t.Fatalf("have %d rows, want 2", f.Len())
	}
	if len(f.Columns) != 2 || f.Columns[0] != "1" {
		t.Errorf("have columns %v, want [1 2]", f.Columns)
	}
	// Rows come back sorted even though the file was out of order.
	if !f.Times[0].Before(f.Times[1]) {
		t.Errorf("rows are not sorted: %v, %v", f.Times[0], f.Times[1])
	}
	if f.Rows[0][0] != 0.3 {
		t.Errorf("have %g, want 0.3", f.Rows[0][0])
	}
}

func TestAvesalDInconsistentColumns(t *testing.T) {
	content := strings.Join([]string{
		" Average salinity for year 2001 month 1 day 1",
		"  0.10  0.20",
		" Average salinity for year 2001 month 1 day 2",
		"  0.30",
	}, "\n")
	_, err := AvesalD(writeTestFile(t, "avesalD.w", content))
	if err == nil {
		t.Fatal("want an error for records with differing value counts")
	}
}
