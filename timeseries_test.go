package txblend

import (
	"reflect"
	"testing"
	"time"
)

func TestSeriesSortByTime(t *testing.T) {
	d := func(day int) time.Time { return time.Date(2001, 1, day, 0, 0, 0, 0, time.UTC) }
	s := &Series{Name: "x"}
	s.add(d(3), 3)
	s.add(d(1), 1)
	s.add(d(2), 2)
	s.sortByTime()
	if !reflect.DeepEqual(s.Values, []float64{1, 2, 3}) {
		t.Errorf("have %v, want [1 2 3]", s.Values)
	}
	if err := s.checkMonotonic("x"); err != nil {
		t.Error(err)
	}
}

func TestCheckMonotonicDuplicate(t *testing.T) {
	d := time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)
	s := &Series{Name: "x"}
	s.add(d, 1)
	s.add(d, 2)
	s.sortByTime()
	if err := s.checkMonotonic("x"); err == nil {
		t.Error("want an error for duplicate timestamps")
	}
}

func TestFrameSortAndCol(t *testing.T) {
	d := func(day int) time.Time { return time.Date(2001, 1, day, 0, 0, 0, 0, time.UTC) }
	f := &Frame{Columns: []string{"a", "b"}}
	f.add(d(2), []float64{21, 22})
	f.add(d(1), []float64{11, 12})
	f.sortByTime()
	if err := f.checkMonotonic("f"); err != nil {
		t.Error(err)
	}
	b, err := f.Col("b")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(b, []float64{12, 22}) {
		t.Errorf("have %v, want [12 22]", b)
	}
	if _, err := f.Col("c"); err == nil {
		t.Error("want an error for a missing column")
	}
}
