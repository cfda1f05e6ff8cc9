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
	"strconv"
	"strings"

	"github.com/ctessum/geom/proj"
	"github.com/sirupsen/logrus"
)

// NodeCoords holds the mesh node locations from a TxBLEND input file, both
// as the file's UTM easting/northing and projected to geographic
// coordinates in decimal degrees. Slot i holds node i+1.
type NodeCoords struct {
	Easting, Northing []float64
	Lat, Lon          []float64
}

// Len returns the number of nodes.
func (c *NodeCoords) Len() int { return len(c.Easting) }

// Coords reads the node coordinates from a TxBLEND input file: the node
// count follows the "NN" marker line, and the easting/northing rows follow
// the "NODAL" marker line. zone is the UTM longitudinal zone; 14 covers
// most of the Texas coast, 15 the Galveston and Sabine areas.
func Coords(path string, zone int) (*NodeCoords, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("txblend: opening input file: %w", err)
	}
	defer f.Close()
	Log.WithFields(logrus.Fields{"file": path, "zone": zone}).Info("reading node coordinates")

	scan := bufio.NewScanner(f)
	lineno := 0
	if err := scanToMarker(scan, &lineno, "NN"); err != nil {
		return nil, fmt.Errorf("txblend: %s: %v", path, err)
	}
	if !scan.Scan() {
		return nil, fmt.Errorf("txblend: %s: file ends after the 'NN' marker", path)
	}
	lineno++
	ln := scan.Text()
	if len(ln) > 5 {
		ln = ln[:5]
	}
	nn, err := strconv.Atoi(strings.TrimSpace(ln))
	if err != nil || nn < 1 {
		return nil, fmt.Errorf("txblend: %s: line %d: bad node count '%s'", path, lineno, ln)
	}
	if err := scanToMarker(scan, &lineno, "NODAL"); err != nil {
		return nil, fmt.Errorf("txblend: %s: %v", path, err)
	}

	c := &NodeCoords{
		Easting:  make([]float64, nn),
		Northing: make([]float64, nn),
		Lat:      make([]float64, nn),
		Lon:      make([]float64, nn),
	}
	for i := 0; i < nn; i++ {
		if !scan.Scan() {
			return nil, fmt.Errorf("txblend: %s: file ends after %d of %d nodal rows", path, i, nn)
		}
		lineno++
		fields := strings.Fields(scan.Text())
		if len(fields) < 3 {
			return nil, fmt.Errorf("txblend: %s: line %d: expected node, easting, northing; got %d fields",
				path, lineno, len(fields))
		}
		x, err1 := strconv.ParseFloat(fields[1], 64)
		y, err2 := strconv.ParseFloat(fields[2], 64)
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("txblend: %s: line %d: bad coordinate fields", path, lineno)
		}
		c.Easting[i] = x
		c.Northing[i] = y
	}
	if err := scan.Err(); err != nil {
		return nil, fmt.Errorf("txblend: reading %s: %w", path, err)
	}

	utmSR, err := proj.Parse(fmt.Sprintf("+proj=utm +zone=%d +datum=WGS84", zone))
	if err != nil {
		return nil, fmt.Errorf("txblend: parsing UTM zone %d projection: %v", zone, err)
	}
	llSR, err := proj.Parse("+proj=longlat +datum=WGS84")
	if err != nil {
		return nil, fmt.Errorf("txblend: parsing longlat projection: %v", err)
	}
	trans, err := utmSR.NewTransform(llSR)
	if err != nil {
		return nil, fmt.Errorf("txblend: creating UTM transform: %v", err)
	}
	for i := 0; i < nn; i++ {
		lon, lat, err := trans(c.Easting[i], c.Northing[i])
		if err != nil {
			return nil, fmt.Errorf("txblend: projecting node %d (%g, %g): %v",
				i+1, c.Easting[i], c.Northing[i], err)
		}
		c.Lon[i] = lon
		c.Lat[i] = lat
	}
	Log.WithFields(logrus.Fields{"file": path, "nodes": nn}).Info("read node coordinates")
	return c, nil
}

// scanToMarker advances scan past the line whose first field is marker.
func scanToMarker(scan *bufio.Scanner, lineno *int, marker string) error {
	for scan.Scan() {
		*lineno++
		fields := strings.Fields(scan.Text())
		if len(fields) > 0 && fields[0] == marker {
			return nil
		}
	}
	if err := scan.Err(); err != nil {
		return err
	}
	return fmt.Errorf("no '%s' marker line before end of file", marker)
}
