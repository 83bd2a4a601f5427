package tables

import (
	"image"
	"testing"

	"github.com/tsawler/tablescan/raster"
)

func TestAxisString(t *testing.T) {
	if Vertical.String() != "vertical" || Horizontal.String() != "horizontal" || Axis(7).String() != "unknown" {
		t.Error("unexpected axis names")
	}
}

func TestScanRuns(t *testing.T) {
	grid := dots(5, 6,
		image.Pt(1, 1), image.Pt(1, 2), image.Pt(1, 4),
		image.Pt(3, 3), image.Pt(3, 4), image.Pt(3, 5),
	)

	tests := []struct {
		name string
		axis Axis
		want []Run
	}{
		{
			name: "vertical",
			axis: Vertical,
			// column 3 runs into the bottom edge and is dropped
			want: []Run{{Index: 1, Start: 1, End: 3}, {Index: 1, Start: 4, End: 5}},
		},
		{
			name: "horizontal",
			axis: Horizontal,
			want: []Run{
				{Index: 1, Start: 1, End: 2},
				{Index: 2, Start: 1, End: 2},
				{Index: 3, Start: 3, End: 4},
				{Index: 4, Start: 1, End: 2},
				{Index: 4, Start: 3, End: 4},
				{Index: 5, Start: 3, End: 4},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScanRuns(grid, tt.axis, 200)
			if !equalRuns(got, tt.want) {
				t.Errorf("ScanRuns() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScanRunsEdges(t *testing.T) {
	row := func(values ...uint8) raster.Grid {
		return raster.Func{W: len(values), H: 1, F: func(x, _ int) uint8 { return values[x] }}
	}

	tests := []struct {
		name string
		grid raster.Grid
		want []Run
	}{
		{"starts at grid start", row(0, 0, 255, 255), []Run{{Index: 0, Start: 0, End: 2}}},
		{"fully dark line is dropped", row(0, 0, 0, 0), nil},
		{"open at grid end is dropped", row(255, 0, 255, 0), []Run{{Index: 0, Start: 1, End: 2}}},
		{"threshold is exclusive", row(200, 199, 200), []Run{{Index: 0, Start: 1, End: 2}}},
		{"all light", row(255, 255, 255), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScanRuns(tt.grid, Horizontal, 200)
			if !equalRuns(got, tt.want) {
				t.Errorf("ScanRuns() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScanRunsCustomThreshold(t *testing.T) {
	grid := raster.Func{W: 3, H: 1, F: func(x, _ int) uint8 { return []uint8{255, 120, 255}[x] }}

	if got := ScanRuns(grid, Horizontal, 100); len(got) != 0 {
		t.Errorf("threshold 100: got %v, want no runs", got)
	}
	if got := ScanRuns(grid, Horizontal, 128); len(got) != 1 {
		t.Errorf("threshold 128: got %v, want one run", got)
	}
}
