package txblend

import (
	"strings"
	"testing"
)

const testCoordsInput = `TXBLEND INPUT FILE
 NN     NE     NHOUR
    3   1200     24
some other card
 NODAL COORDINATES
    1   650000.   3070000.
    2   651000.   3071000.
    3   652000.   3072000.
`

func TestCoords(t *testing.T) {
	c, err := Coords(writeTestFile(t, "input", testCoordsInput), 14)
	if err != nil {
		t.Fatal(err)
	}
	if c.Len() != 3 {
		t.Fatalf("have %d nodes, want 3", c.Len())
	}
	if c.Easting[0] != 650000 || c.Northing[2] != 3072000 {
		t.Errorf("have easting %g and northing %g, want 650000 and 3072000",
			c.Easting[0], c.Northing[2])
	}
	// UTM zone 14 coordinates on the Texas coast.
	for i := 0; i < c.Len(); i++ {
		if c.Lat[i] < 25 || c.Lat[i] > 31 {
			t.Errorf("node %d: latitude %g out of the Texas range", i+1, c.Lat[i])
		}
		if c.Lon[i] < -100 || c.Lon[i] > -94 {
			t.Errorf("node %d: longitude %g out of the Texas range", i+1, c.Lon[i])
		}
	}
	// Nodes further east project to larger longitudes.
	if c.Lon[1] <= c.Lon[0] {
		t.Errorf("have longitudes %g, %g; want them increasing with easting",
			c.Lon[0], c.Lon[1])
	}
}

func TestCoordsMissingMarker(t *testing.T) {
	input := strings.Replace(testCoordsInput, "NODAL", "NODES", 1)
	_, err := Coords(writeTestFile(t, "input", input), 14)
	if err == nil {
		t.Fatal("want a marker-not-found error for the missing NODAL card")
	}
	if !strings.Contains(err.Error(), "NODAL") {
		t.Errorf("have error %v, want it to name the missing marker", err)
	}
}

func TestCoordsShortNodalSection(t *testing.T) {
	input := strings.Join(strings.Split(testCoordsInput, "\n")[:7], "\n")
	_, err := Coords(writeTestFile(t, "input", input), 14)
	if err == nil {
		t.Fatal("want an error when the file ends inside the nodal rows")
	}
}
