package tablescan

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/tablescan/logging"
	"github.com/tsawler/tablescan/model"
	"github.com/tsawler/tablescan/ocr"
	"github.com/tsawler/tablescan/raster"
	"github.com/tsawler/tablescan/tables"
)

var (
	// ErrNoGrid is returned in strict mode when no cell could be formed.
	ErrNoGrid = errors.New("no table grid found")

	// ErrNoRecognizer is returned when a nil recognizer or factory is configured.
	ErrNoRecognizer = errors.New("no recognizer configured")
)

// Extractor provides a fluent interface for reading a table from an image.
// Each configuration method returns a new Extractor instance, making it
// safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source (exactly one is set)
	filename string
	data     []byte
	img      image.Image
	grid     raster.Grid

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a copy of options.
// This ensures immutability - each chain method returns a new instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		data:     e.data,
		img:      e.img,
		grid:     e.grid,
		options:  e.options.clone(),
		err:      e.err,
	}
}

// fail records err unless an earlier error is already pending.
func (e *Extractor) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Config replaces the detection parameters of the built-in "ruled" detector.
// An invalid configuration is reported by the terminal operation.
//
// Example:
//
//	cfg := tables.DefaultConfig()
//	cfg.Dedup = tables.DedupTrackNew
//	rows, _, err := tablescan.Open("table.png").Config(cfg).Rows(ctx)
func (e *Extractor) Config(cfg tables.Config) *Extractor {
	newExt := e.clone()
	if err := cfg.Validate(); err != nil {
		newExt.fail(err)
	}
	newExt.options.config = cfg
	return newExt
}

// Detector selects a registered detector by name. Detectors other than
// "ruled" use their own configuration; Config does not apply to them.
func (e *Extractor) Detector(name string) *Extractor {
	newExt := e.clone()
	if tables.GetDetector(name) == nil {
		newExt.fail(fmt.Errorf("unknown detector %q", name))
	}
	newExt.options.detector = name
	return newExt
}

// Contrast sets the contrast adjustment in percent (-100 to 100) applied
// before scanning. The default is raster.DefaultContrast.
func (e *Extractor) Contrast(percent float64) *Extractor {
	newExt := e.clone()
	if percent < -100 || percent > 100 {
		newExt.fail(fmt.Errorf("contrast %v out of range [-100, 100]", percent))
	}
	newExt.options.contrast = percent
	return newExt
}

// SkipContrast scans the image as-is, converted to grayscale only.
func (e *Extractor) SkipContrast() *Extractor {
	newExt := e.clone()
	newExt.options.skipContrast = true
	return newExt
}

// Language sets the Tesseract language(s) of the default recognizer, for
// example "deu" or "deu+eng". It has no effect on recognizers supplied via
// Recognizer or Workers.
func (e *Extractor) Language(lang string) *Extractor {
	newExt := e.clone()
	if lang == "" {
		newExt.fail(errors.New("language must not be empty"))
	}
	newExt.options.language = lang
	return newExt
}

// Recognizer sets the recognizer used for every cell instead of the
// built-in Tesseract client. If r implements SetImage(image.Image) error it
// is loaded with the prepared image first. The caller keeps ownership of r.
func (e *Extractor) Recognizer(r ocr.Recognizer) *Extractor {
	newExt := e.clone()
	if r == nil {
		newExt.fail(ErrNoRecognizer)
	}
	newExt.options.recognizer = r
	newExt.options.factory = nil
	newExt.options.workers = 1
	return newExt
}

// Workers recognizes cells in parallel with n recognizers created by
// factory. Each recognizer handles one cell at a time; the output keeps
// row-major order. Recognizers are closed when extraction ends.
func (e *Extractor) Workers(n int, factory RecognizerFactory) *Extractor {
	newExt := e.clone()
	if n < 1 {
		newExt.fail(fmt.Errorf("workers must be at least 1, got %d", n))
	}
	if factory == nil {
		newExt.fail(ErrNoRecognizer)
	}
	newExt.options.workers = n
	newExt.options.factory = factory
	newExt.options.recognizer = nil
	return newExt
}

// Strict makes terminal operations fail with ErrNoGrid when no cell could
// be formed, instead of returning an empty result with a warning.
func (e *Extractor) Strict() *Extractor {
	newExt := e.clone()
	newExt.options.strict = true
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Grid detects the table grid without recognizing any text.
//
// Example:
//
//	layout, _, err := tablescan.Open("table.png").Grid()
//	fmt.Println(len(layout.Rows), "rows,", len(layout.Columns), "columns")
func (e *Extractor) Grid() (*tables.Layout, []Warning, error) {
	src, err := e.load()
	if err != nil {
		return nil, nil, err
	}
	return e.detect(src)
}

// Result is the outcome of one full extraction.
type Result struct {
	// Layout is the detected grid geometry
	Layout *tables.Layout
	// Table holds the recognized cells, shaped like Layout
	Table *model.Table
}

// Extract detects the grid and recognizes every cell, returning both the
// geometry and the recognized table from a single pass over the image.
// Degenerate cells keep empty text and are not sent to the recognizer. Any
// recognition failure aborts the whole extraction.
//
// Example:
//
//	res, _, err := tablescan.Open("table.png").Extract(ctx)
//	overlay := tablescan.DrawLayout(img, res.Layout)
func (e *Extractor) Extract(ctx context.Context) (*Result, []Warning, error) {
	src, err := e.load()
	if err != nil {
		return nil, nil, err
	}
	layout, warnings, err := e.detect(src)
	if err != nil {
		return nil, warnings, err
	}

	table := layout.Table()
	if err := e.recognize(ctx, src.img, table); err != nil {
		return nil, warnings, err
	}

	mean, stddev, n := table.ConfidenceStats()
	logging.Component("tablescan").Debug("table recognized",
		slog.Int("rows", table.RowCount()),
		slog.Int("cols", table.ColCount()),
		slog.Int("cells", n),
		slog.Float64("mean_confidence", mean),
		slog.Float64("stddev_confidence", stddev))

	return &Result{Layout: layout, Table: table}, warnings, nil
}

// Table detects the grid and recognizes every cell, like Extract, and
// returns only the table.
func (e *Extractor) Table(ctx context.Context) (*model.Table, []Warning, error) {
	res, warnings, err := e.Extract(ctx)
	if err != nil {
		return nil, warnings, err
	}
	return res.Table, warnings, nil
}

// Rows returns the recognized cell texts as a row-major matrix.
//
// Example:
//
//	rows, warnings, err := tablescan.Open("table.png").Rows(ctx)
func (e *Extractor) Rows(ctx context.Context) ([][]string, []Warning, error) {
	table, warnings, err := e.Table(ctx)
	if err != nil {
		return nil, warnings, err
	}
	return table.Strings(), warnings, nil
}

// source is a loaded image ready for detection and recognition.
type source struct {
	grid raster.Grid
	// prepared grayscale image, loaded into recognizers
	img *image.Gray
	// image as decoded, before preparation
	orig image.Image
}

// load decodes and prepares the configured image.
func (e *Extractor) load() (*source, error) {
	if e.err != nil {
		return nil, e.err
	}

	if e.grid != nil {
		gray := raster.Render(e.grid)
		return &source{grid: e.grid, img: gray, orig: gray}, nil
	}

	img := e.img
	switch {
	case img != nil:
	case e.filename != "":
		var err error
		if img, err = raster.Open(e.filename); err != nil {
			return nil, fmt.Errorf("failed to open image: %w", err)
		}
	case e.data != nil:
		var err error
		if img, _, err = raster.Decode(e.data); err != nil {
			return nil, fmt.Errorf("failed to decode image: %w", err)
		}
	default:
		return nil, errors.New("no image source specified")
	}

	if img.Bounds().Empty() {
		return nil, raster.ErrEmptyImage
	}

	var gray *image.Gray
	if e.options.skipContrast {
		gray = raster.ToGray(img)
	} else {
		gray = raster.Prepare(img, e.options.contrast)
	}
	return &source{grid: raster.NewGray(gray), img: gray, orig: img}, nil
}

// detect runs the configured detector and collects layout warnings.
func (e *Extractor) detect(src *source) (*tables.Layout, []Warning, error) {
	var (
		layout *tables.Layout
		err    error
	)
	if e.options.detector == "ruled" {
		layout, err = tables.Detect(src.grid, e.options.config)
	} else if d := tables.GetDetector(e.options.detector); d != nil {
		layout, err = d.Detect(src.grid)
	} else {
		err = fmt.Errorf("unknown detector %q", e.options.detector)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to detect grid: %w", err)
	}

	warnings := layoutWarnings(layout)
	log := logging.Component("tablescan")
	for _, w := range warnings {
		log.Warn(w.Message, slog.String("kind", w.Kind.String()))
	}

	if e.options.strict && layout.Empty() {
		return nil, warnings, ErrNoGrid
	}
	return layout, warnings, nil
}

// layoutWarnings reports missing, unpaired and degenerate geometry.
func layoutWarnings(l *tables.Layout) []Warning {
	var warnings []Warning

	if len(l.Columns) == 0 {
		warnings = append(warnings, newWarning(WarningNoLines,
			"no columns: %d vertical grid lines found", len(l.Vertical)))
	}
	if len(l.Rows) == 0 {
		warnings = append(warnings, newWarning(WarningNoLines,
			"no rows: %d horizontal grid lines found", len(l.Horizontal)))
	}
	if l.UnpairedVertical {
		last := l.Vertical[len(l.Vertical)-1]
		warnings = append(warnings, newWarning(WarningUnpairedLine,
			"odd number of vertical grid lines (%d); line at x=%d unused", len(l.Vertical), last.Index))
	}
	if l.UnpairedHorizontal {
		last := l.Horizontal[len(l.Horizontal)-1]
		warnings = append(warnings, newWarning(WarningUnpairedLine,
			"odd number of horizontal grid lines (%d); line at y=%d unused", len(l.Horizontal), last.Index))
	}

	cells := l.Cells()
	for _, pos := range l.DegenerateCells() {
		w := newWarning(WarningDegenerateCell,
			"lines too close for inset %d; rectangle %v is empty", l.Inset, cells[pos[0]][pos[1]])
		w.Row, w.Col = pos[0], pos[1]
		warnings = append(warnings, w)
	}

	return warnings
}

// cellJob addresses one cell to recognize
type cellJob struct {
	row, col int
}

// imageSetter is implemented by recognizers that hold their own image.
type imageSetter interface {
	SetImage(img image.Image) error
}

type closer interface {
	Close() error
}

// recognize fills in the text of every non-degenerate cell of table.
func (e *Extractor) recognize(ctx context.Context, img *image.Gray, table *model.Table) error {
	var jobs []cellJob
	for i, row := range table.Rows {
		for j, cell := range row {
			if !cell.Degenerate {
				jobs = append(jobs, cellJob{row: i, col: j})
			}
		}
	}
	if len(jobs) == 0 {
		return nil
	}

	recognizers, release, err := e.recognizers(img)
	if err != nil {
		return err
	}
	defer release()

	if len(recognizers) == 1 {
		for _, job := range jobs {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := recognizeCell(ctx, recognizers[0], table, job); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	queue := make(chan cellJob)
	g.Go(func() error {
		defer close(queue)
		for _, job := range jobs {
			select {
			case queue <- job:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})
	for _, r := range recognizers {
		g.Go(func() error {
			for job := range queue {
				if err := recognizeCell(gctx, r, table, job); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// recognizeCell reads one cell. Each call writes a distinct cell, so
// workers may share the table.
func recognizeCell(ctx context.Context, r ocr.Recognizer, table *model.Table, job cellJob) error {
	cell := table.GetCell(job.row, job.col)
	res, err := r.Recognize(ctx, cell.Rect)
	if err != nil {
		return fmt.Errorf("recognizing cell (%d, %d): %w", job.row, job.col, err)
	}
	logging.Component("tablescan").Debug("cell recognized",
		slog.Int("row", job.row),
		slog.Int("col", job.col),
		slog.Float64("confidence", res.Confidence))
	return table.SetText(job.row, job.col, ocr.NormalizeText(res.Text), res.Confidence)
}

// recognizers returns the recognizers for one extraction, loaded with img,
// and a function releasing the ones this extraction created.
func (e *Extractor) recognizers(img *image.Gray) ([]ocr.Recognizer, func(), error) {
	var owned []ocr.Recognizer
	release := func() {
		for _, r := range owned {
			if c, ok := r.(closer); ok {
				_ = c.Close()
			}
		}
	}

	var recognizers []ocr.Recognizer
	switch {
	case e.options.factory != nil:
		for i := 0; i < e.options.workers; i++ {
			r, err := e.options.factory()
			if err != nil {
				release()
				return nil, nil, fmt.Errorf("failed to create recognizer: %w", err)
			}
			if r == nil {
				release()
				return nil, nil, ErrNoRecognizer
			}
			owned = append(owned, r)
			recognizers = append(recognizers, r)
		}

	case e.options.recognizer != nil:
		recognizers = []ocr.Recognizer{e.options.recognizer}

	default:
		client, err := ocr.New()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize recognizer: %w", err)
		}
		owned = append(owned, client)
		if err := client.SetLanguage(e.options.language); err != nil {
			release()
			return nil, nil, fmt.Errorf("failed to set OCR language %q: %w", e.options.language, err)
		}
		recognizers = []ocr.Recognizer{client}
	}

	for _, r := range recognizers {
		if s, ok := r.(imageSetter); ok {
			if err := s.SetImage(img); err != nil {
				release()
				return nil, nil, fmt.Errorf("failed to load image into recognizer: %w", err)
			}
		}
	}

	return recognizers, release, nil
}
