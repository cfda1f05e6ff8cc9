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

package txblendutil

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"

	"github.com/twdb/txblend"
)

// timeLayout matches the index format the original pandas-based tooling
// wrote, so downstream scripts keep working.
const timeLayout = "2006-01-02 15:04:05"

// Convert reads one TxBLEND file in the named format and writes the
// assembled series to out as CSV.
func Convert(format, in, out string) error {
	switch format {
	case "inflow":
		s, err := txblend.Inflow(in)
		if err != nil {
			return err
		}
		return WriteSeriesCSV(s, out)
	case "precip":
		s, err := txblend.Precip(in)
		if err != nil {
			return err
		}
		return WriteSeriesCSV(s, out)
	case "pcp":
		s, err := txblend.Pcp(in)
		if err != nil {
			return err
		}
		return WriteSeriesCSV(s, out)
	case "gensal":
		s, err := txblend.Gensal(in)
		if err != nil {
			return err
		}
		return WriteSeriesCSV(s, out)
	case "tide":
		s, err := txblend.Tide(in)
		if err != nil {
			return err
		}
		return WriteSeriesCSV(s, out)
	case "wind":
		f, err := txblend.Wind(in)
		if err != nil {
			return err
		}
		return WriteFrameCSV(f, out)
	case "vel":
		f, err := txblend.Vel(in)
		if err != nil {
			return err
		}
		return WriteFrameCSV(f, out)
	case "avesald":
		f, err := txblend.AvesalD(in)
		if err != nil {
			return err
		}
		return WriteFrameCSV(f, out)
	}
	return fmt.Errorf("txblend: invalid format '%s'", format)
}

// OutflowCSV reads the outflw1 output from a TxBLEND run directory and
// writes one CSV file per check node to outdir, named node_<id>.csv.
func OutflowCSV(rundir, outdir string) error {
	o, err := txblend.Outflw1(rundir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outdir, os.ModePerm); err != nil {
		return fmt.Errorf("txblend: creating %s: %w", outdir, err)
	}
	for _, node := range o.Nodes {
		path := filepath.Join(outdir, "node_"+node+".csv")
		if err := WriteFrameCSV(o.Tables[node], path); err != nil {
			return err
		}
	}
	return nil
}

// WriteSeriesCSV writes s to path with a Date column and the series'
// value column.
func WriteSeriesCSV(s *txblend.Series, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("txblend: creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Date", s.Name}); err != nil {
		return fmt.Errorf("txblend: writing %s: %w", path, err)
	}
	for i, t := range s.Times {
		if err := w.Write([]string{t.Format(timeLayout), formatValue(s.Values[i])}); err != nil {
			return fmt.Errorf("txblend: writing %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("txblend: writing %s: %w", path, err)
	}
	return nil
}

// WriteFrameCSV writes fr to path with a Date column followed by the
// frame's columns. NaN cells are written empty.
func WriteFrameCSV(fr *txblend.Frame, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("txblend: creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(append([]string{"Date"}, fr.Columns...)); err != nil {
		return fmt.Errorf("txblend: writing %s: %w", path, err)
	}
	row := make([]string, len(fr.Columns)+1)
	for i, t := range fr.Times {
		row[0] = t.Format(timeLayout)
		for j, v := range fr.Rows[i] {
			row[j+1] = formatValue(v)
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("txblend: writing %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("txblend: writing %s: %w", path, err)
	}
	return nil
}

func formatValue(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteCoordsCSV writes the node coordinates to path with node number,
// easting, northing, latitude, and longitude columns.
func WriteCoordsCSV(c *txblend.NodeCoords, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("txblend: creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"node", "easting", "northing", "lat", "lon"}); err != nil {
		return fmt.Errorf("txblend: writing %s: %w", path, err)
	}
	for i := 0; i < c.Len(); i++ {
		row := []string{
			strconv.Itoa(i + 1),
			formatValue(c.Easting[i]),
			formatValue(c.Northing[i]),
			formatValue(c.Lat[i]),
			formatValue(c.Lon[i]),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("txblend: writing %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("txblend: writing %s: %w", path, err)
	}
	return nil
}

// nodePoint is the shapefile record layout for one mesh node.
type nodePoint struct {
	geom.Point
	Node     int
	Easting  float64
	Northing float64
}

// WriteCoordsShapefile writes the node coordinates to path as an ESRI
// point shapefile in geographic coordinates.
func WriteCoordsShapefile(c *txblend.NodeCoords, path string) error {
	e, err := shp.NewEncoder(path, nodePoint{})
	if err != nil {
		return fmt.Errorf("txblend: creating shapefile %s: %v", path, err)
	}
	defer e.Close()
	for i := 0; i < c.Len(); i++ {
		p := nodePoint{
			Point:    geom.Point{X: c.Lon[i], Y: c.Lat[i]},
			Node:     i + 1,
			Easting:  c.Easting[i],
			Northing: c.Northing[i],
		}
		if err := e.Encode(p); err != nil {
			return fmt.Errorf("txblend: writing shapefile %s: %v", path, err)
		}
	}
	return nil
}
