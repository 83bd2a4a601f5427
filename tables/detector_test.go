package tables

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/tsawler/tablescan/logging"
	"github.com/tsawler/tablescan/model"
	"github.com/tsawler/tablescan/raster"
)

// framedTable draws a 2x2 ruled table whose frame stops one pixel short of
// the right and bottom edges of a 100x60 image.
func framedTable() raster.Grid {
	img := newCanvas(100, 60)
	for _, x := range []int{0, 50, 98} {
		vline(img, x, 0, 58)
	}
	for _, y := range []int{0, 30, 58} {
		hline(img, y, 0, 98)
	}
	return raster.NewGray(img)
}

func TestDetectFramedTable(t *testing.T) {
	layout, err := Detect(framedTable(), DefaultConfig())
	if err != nil {
		t.Fatalf("Detect() error: %v", err)
	}

	if got := Positions(layout.Vertical); !equalInts(got, []int{0, 50, 50, 98}) {
		t.Errorf("vertical lines = %v", got)
	}
	if got := Positions(layout.Horizontal); !equalInts(got, []int{0, 30, 30, 58}) {
		t.Errorf("horizontal lines = %v", got)
	}
	if layout.VerticalCandidates != 3 || layout.HorizontalCandidates != 3 {
		t.Errorf("candidates = %d/%d, want 3/3", layout.VerticalCandidates, layout.HorizontalCandidates)
	}

	want := [][]model.Rect{
		{{X: 4, Y: 4, Width: 42, Height: 22}, {X: 54, Y: 4, Width: 40, Height: 22}},
		{{X: 4, Y: 34, Width: 42, Height: 20}, {X: 54, Y: 34, Width: 40, Height: 20}},
	}
	cells := layout.Cells()
	if len(cells) != len(want) {
		t.Fatalf("rows = %d, want %d", len(cells), len(want))
	}
	for i := range want {
		if len(cells[i]) != len(want[i]) {
			t.Fatalf("row %d has %d cells, want %d", i, len(cells[i]), len(want[i]))
		}
		for j := range want[i] {
			if cells[i][j] != want[i][j] {
				t.Errorf("cell (%d, %d) = %v, want %v", i, j, cells[i][j], want[i][j])
			}
		}
	}
}

func TestDetectFrameTouchingEdges(t *testing.T) {
	// borders on the last row and column run into the image edge and are
	// never committed, and the remaining borders are one pixel wide on the
	// cross axis, so no candidate survives the length filter
	img := newCanvas(100, 60)
	for _, x := range []int{0, 50, 99} {
		vline(img, x, 0, 59)
	}
	for _, y := range []int{0, 30, 59} {
		hline(img, y, 0, 99)
	}

	layout, err := Detect(raster.NewGray(img), DefaultConfig())
	if err != nil {
		t.Fatalf("Detect() error: %v", err)
	}
	if !layout.Empty() {
		t.Errorf("expected empty layout, got rows=%v cols=%v", layout.Rows, layout.Columns)
	}
	if layout.VerticalCandidates != 0 || layout.HorizontalCandidates != 0 {
		t.Errorf("candidates = %d/%d, want 0/0", layout.VerticalCandidates, layout.HorizontalCandidates)
	}
}

func TestDetectThickBorders(t *testing.T) {
	img := newCanvas(120, 80)
	for _, x0 := range []int{10, 60, 100} {
		for x := x0; x < x0+3; x++ {
			vline(img, x, 10, 70)
		}
	}
	for _, y0 := range []int{10, 40, 68} {
		for y := y0; y < y0+3; y++ {
			hline(img, y, 10, 102)
		}
	}

	layout, err := Detect(raster.NewGray(img), DefaultConfig())
	if err != nil {
		t.Fatalf("Detect() error: %v", err)
	}

	wantCols := []model.Interval{{12, 60}, {62, 100}}
	wantRows := []model.Interval{{12, 40}, {42, 68}}
	for i, iv := range wantCols {
		if i >= len(layout.Columns) || layout.Columns[i] != iv {
			t.Fatalf("columns = %v, want %v", layout.Columns, wantCols)
		}
	}
	for i, iv := range wantRows {
		if i >= len(layout.Rows) || layout.Rows[i] != iv {
			t.Fatalf("rows = %v, want %v", layout.Rows, wantRows)
		}
	}

	cells := layout.Cells()
	if cells[0][0] != (model.Rect{X: 16, Y: 16, Width: 40, Height: 20}) {
		t.Errorf("cell (0, 0) = %v", cells[0][0])
	}
	if cells[1][1] != (model.Rect{X: 66, Y: 46, Width: 30, Height: 18}) {
		t.Errorf("cell (1, 1) = %v", cells[1][1])
	}
}

func TestDetectShortRowBorderIgnored(t *testing.T) {
	img := newCanvas(100, 60)
	for _, x := range []int{0, 50, 98} {
		vline(img, x, 0, 58)
	}
	for _, y := range []int{0, 58} {
		hline(img, y, 0, 98)
	}
	// spans only half the width: below the 75% minimum
	hline(img, 30, 0, 50)

	layout, err := Detect(raster.NewGray(img), DefaultConfig())
	if err != nil {
		t.Fatalf("Detect() error: %v", err)
	}
	if got := Positions(layout.Horizontal); !equalInts(got, []int{0, 58}) {
		t.Errorf("horizontal lines = %v, want [0 58]", got)
	}
	if len(layout.Rows) != 1 || len(layout.Columns) != 2 {
		t.Errorf("shape = %dx%d, want 1x2", len(layout.Rows), len(layout.Columns))
	}
}

func TestDetectErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinSeparation = 0
	if _, err := Detect(framedTable(), cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}

	if _, err := Detect(nil, DefaultConfig()); !errors.Is(err, raster.ErrEmptyImage) {
		t.Errorf("expected ErrEmptyImage for nil grid, got %v", err)
	}

	empty := raster.Func{W: 0, H: 10, F: func(int, int) uint8 { return 255 }}
	if _, err := Detect(empty, DefaultConfig()); !errors.Is(err, raster.ErrEmptyImage) {
		t.Errorf("expected ErrEmptyImage for zero width, got %v", err)
	}
}

func TestDetectLogs(t *testing.T) {
	old := logging.Logger()
	defer logging.SetLogger(old)

	h := logging.NewCaptureHandler(slog.LevelDebug)
	logging.SetLogger(slog.New(h))

	if _, err := Detect(framedTable(), DefaultConfig()); err != nil {
		t.Fatal(err)
	}
	if !h.Contains("grid detected") || !h.Contains("rows=2") {
		t.Errorf("expected detection log, got %v", h.Lines())
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig() invalid: %v", err)
	}

	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"negative merge gap", func(c *Config) { c.MergeGap = -1 }},
		{"vertical fraction above 1", func(c *Config) { c.VerticalMinFraction = 1.5 }},
		{"negative horizontal fraction", func(c *Config) { c.HorizontalMinFraction = -0.1 }},
		{"negative tolerance", func(c *Config) { c.PositionTolerance = -1 }},
		{"zero separation", func(c *Config) { c.MinSeparation = 0 }},
		{"negative inset", func(c *Config) { c.CellInset = -2 }},
		{"unknown dedup mode", func(c *Config) { c.Dedup = DedupMode(5) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestDetectorRegistry(t *testing.T) {
	detector := GetDetector("ruled")
	if detector == nil {
		t.Fatal("ruled detector not registered")
	}
	if detector.Name() != "ruled" {
		t.Errorf("Name() = %q", detector.Name())
	}

	found := false
	for _, name := range ListDetectors() {
		if name == "ruled" {
			found = true
		}
	}
	if !found {
		t.Errorf("ListDetectors() = %v, missing ruled", ListDetectors())
	}

	if GetDetector("nonexistent") != nil {
		t.Error("expected nil for unknown detector")
	}

	defer func() {
		if recover() == nil {
			t.Error("MustGetDetector should panic for unknown names")
		}
	}()
	MustGetDetector("nonexistent")
}

func TestRuledDetector(t *testing.T) {
	d := NewRuledDetector()

	bad := DefaultConfig()
	bad.CellInset = -1
	if err := d.Configure(bad); err == nil {
		t.Error("expected Configure to reject invalid config")
	}
	if d.Config().CellInset != 4 {
		t.Error("invalid config should not be stored")
	}

	cfg := DefaultConfig()
	cfg.CellInset = 2
	if err := d.Configure(cfg); err != nil {
		t.Fatalf("Configure() error: %v", err)
	}

	layout, err := d.Detect(framedTable())
	if err != nil {
		t.Fatalf("Detect() error: %v", err)
	}
	if got := layout.Cells()[0][0]; got != (model.Rect{X: 2, Y: 2, Width: 46, Height: 26}) {
		t.Errorf("cell (0, 0) with inset 2 = %v", got)
	}
}

func TestRegistryIsolation(t *testing.T) {
	r := NewRegistry()
	if len(r.List()) != 0 {
		t.Error("new registry should be empty")
	}
	r.Register(NewRuledDetector())
	if r.Get("ruled") == nil {
		t.Error("registered detector not found")
	}
}
