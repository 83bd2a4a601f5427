package tables

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/tsawler/tablescan/logging"
	"github.com/tsawler/tablescan/raster"
)

// Detector is the interface for grid detection algorithms
type Detector interface {
	// Detect finds the table grid in a raster
	Detect(grid raster.Grid) (*Layout, error)

	// Name returns the detector name
	Name() string

	// Configure sets detector parameters
	Configure(config Config) error
}

// Detect runs the full pipeline on grid with the given configuration.
func Detect(grid raster.Grid, cfg Config) (*Layout, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if grid == nil || grid.Width() <= 0 || grid.Height() <= 0 {
		return nil, raster.ErrEmptyImage
	}

	log := logging.Component("tables")
	w, h := grid.Width(), grid.Height()

	layout := &Layout{Width: w, Height: h, Inset: cfg.CellInset}

	vertical := Candidates(ScanRuns(grid, Vertical, cfg.DarkThreshold),
		Vertical, cfg.MergeGap, cfg.MinLength(Vertical, w, h))
	horizontal := Candidates(ScanRuns(grid, Horizontal, cfg.DarkThreshold),
		Horizontal, cfg.MergeGap, cfg.MinLength(Horizontal, w, h))
	layout.VerticalCandidates = len(vertical)
	layout.HorizontalCandidates = len(horizontal)

	layout.Vertical = Deduplicate(vertical, cfg.PositionTolerance, cfg.MinSeparation, cfg.Dedup)
	layout.Horizontal = Deduplicate(horizontal, cfg.PositionTolerance, cfg.MinSeparation, cfg.Dedup)

	layout.Columns, layout.UnpairedVertical = Pair(Positions(layout.Vertical))
	layout.Rows, layout.UnpairedHorizontal = Pair(Positions(layout.Horizontal))

	log.Debug("grid detected",
		slog.Int("width", w),
		slog.Int("height", h),
		slog.Int("vertical_candidates", len(vertical)),
		slog.Int("horizontal_candidates", len(horizontal)),
		slog.Int("vertical_lines", len(layout.Vertical)),
		slog.Int("horizontal_lines", len(layout.Horizontal)),
		slog.Int("rows", len(layout.Rows)),
		slog.Int("cols", len(layout.Columns)))

	return layout, nil
}

// RuledDetector finds tables drawn with continuous ruling lines.
type RuledDetector struct {
	config Config
}

// NewRuledDetector creates a detector with DefaultConfig
func NewRuledDetector() *RuledDetector {
	return &RuledDetector{config: DefaultConfig()}
}

// Name returns "ruled"
func (d *RuledDetector) Name() string { return "ruled" }

// Configure validates and stores config
func (d *RuledDetector) Configure(config Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	d.config = config
	return nil
}

// Config returns the current configuration
func (d *RuledDetector) Config() Config { return d.config }

// Detect implements Detector
func (d *RuledDetector) Detect(grid raster.Grid) (*Layout, error) {
	return Detect(grid, d.config)
}

// DetectorRegistry holds registered detectors
type DetectorRegistry struct {
	mu        sync.RWMutex
	detectors map[string]Detector
}

// NewRegistry creates a new detector registry
func NewRegistry() *DetectorRegistry {
	return &DetectorRegistry{
		detectors: make(map[string]Detector),
	}
}

// Register registers a detector, replacing any with the same name
func (r *DetectorRegistry) Register(detector Detector) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.detectors[detector.Name()] = detector
}

// Get retrieves a detector by name
func (r *DetectorRegistry) Get(name string) Detector {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.detectors[name]
}

// List returns all registered detector names, sorted
func (r *DetectorRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.detectors))
	for name := range r.detectors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Global registry
var globalRegistry = NewRegistry()

// RegisterDetector registers a detector globally
func RegisterDetector(detector Detector) {
	globalRegistry.Register(detector)
}

// GetDetector retrieves a detector by name
func GetDetector(name string) Detector {
	return globalRegistry.Get(name)
}

// ListDetectors returns all registered detector names
func ListDetectors() []string {
	return globalRegistry.List()
}

// MustGetDetector is like GetDetector but panics for unknown names.
func MustGetDetector(name string) Detector {
	d := GetDetector(name)
	if d == nil {
		panic(fmt.Sprintf("tables: no detector registered as %q", name))
	}
	return d
}

func init() {
	RegisterDetector(NewRuledDetector())
}
