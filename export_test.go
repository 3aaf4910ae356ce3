package spreader

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"testing"
)

func TestWriteLandings(t *testing.T) {
	g1 := testGranule()
	g1.X, g1.Y = 4.25, -1.5
	g2 := testGranule()
	g2.Diameter = 0.0025
	g2.X, g2.Y = 6.125, 0.75

	var buf bytes.Buffer
	if err := WriteLandings(&buf, []Granule{g1, g2}); err != nil {
		t.Fatalf("err %s", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("err %s", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d records", len(records))
	}
	if records[0][0] != "component" || records[0][3] != "x(m)" {
		t.Fatalf("unexpected header %v", records[0])
	}
	x, err := strconv.ParseFloat(records[1][3], 64)
	if err != nil || x != 4.25 {
		t.Fatalf("x round-trip failed: %v %v", records[1][3], err)
	}
	if records[2][0] != "KAS" {
		t.Fatalf("component column mangled: %v", records[2])
	}
}
