package spreader

import (
	"encoding/csv"
	"io"
	"strconv"
)

// WriteLandings streams the landed granules as CSV for downstream spread-pattern
// analysis: component, diameter, mass and the interpolated landing coordinates.
func WriteLandings(w io.Writer, granules []Granule) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"component", "diameter(m)", "mass(kg)", "x(m)", "y(m)"}); err != nil {
		return err
	}
	for _, g := range granules {
		rec := []string{
			g.Component,
			strconv.FormatFloat(g.Diameter, 'g', -1, 64),
			strconv.FormatFloat(g.Mass, 'g', -1, 64),
			strconv.FormatFloat(g.X, 'g', -1, 64),
			strconv.FormatFloat(g.Y, 'g', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
