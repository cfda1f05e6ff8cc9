package txblendutil

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeGensalFile(t *testing.T, days int) string {
	t.Helper()
	var b strings.Builder
	for d := 1; d <= days; d++ {
		fmt.Fprintf(&b, "%3d%3d", 1, d)
		for j := 0; j < 12; j++ {
			fmt.Fprintf(&b, "%6.2f", 10+float64(j))
		}
		fmt.Fprintf(&b, "%6d %8s\n", 2001, "OffGalves")
	}
	path := filepath.Join(t.TempDir(), "gensal")
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestConvertGensal(t *testing.T) {
	in := writeGensalFile(t, 2)
	out := filepath.Join(t.TempDir(), "gensal.csv")
	if err := Convert("gensal", in, out); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1+2*12 {
		t.Fatalf("have %d CSV rows, want %d", len(rows), 1+2*12)
	}
	if rows[0][0] != "Date" || rows[0][1] != "salinity" {
		t.Errorf("have header %v, want [Date salinity]", rows[0])
	}
	if rows[1][0] != "2001-01-01 00:00:00" {
		t.Errorf("have first timestamp '%s', want '2001-01-01 00:00:00'", rows[1][0])
	}
	if rows[1][1] != "10" {
		t.Errorf("have first value '%s', want '10'", rows[1][1])
	}
}

func TestConvertBadFormat(t *testing.T) {
	err := Convert("notaformat", "in", "out")
	if err == nil {
		t.Fatal("want an error for an unknown format")
	}
	if !strings.Contains(err.Error(), "invalid format") {
		t.Errorf("have error %v, want an invalid-format error", err)
	}
}
