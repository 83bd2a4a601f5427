// Command tablescan reads a ruled table from an image and prints its cells.
//
// Usage: tablescan [options] <image>
//
// Text recognition needs a build with -tags ocr and Tesseract installed.
// With -grid only the detected geometry is printed and no OCR is done.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/tsawler/tablescan"
	"github.com/tsawler/tablescan/format"
	"github.com/tsawler/tablescan/logging"
	"github.com/tsawler/tablescan/model"
	"github.com/tsawler/tablescan/ocr"
	"github.com/tsawler/tablescan/raster"
	"github.com/tsawler/tablescan/tables"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("tablescan", flag.ContinueOnError)
	fs.SetOutput(stderr)

	def := tables.DefaultConfig()
	var (
		flagVerbose   = fs.Bool("v", false, "Verbose (debug) logging to stderr")
		flagFormat    = fs.String("format", "text", "Output format: text, csv, md, html, json")
		flagGrid      = fs.Bool("grid", false, "Print detected grid geometry only, without OCR")
		flagOverlay   = fs.String("overlay", "", "Save an image with the detected grid drawn on it")
		flagLang      = fs.String("lang", ocr.DefaultLanguage, "Tesseract language(s), e.g. deu or deu+eng")
		flagWorkers   = fs.Int("j", 1, "Number of parallel recognizers")
		flagStrict    = fs.Bool("strict", false, "Fail when no table grid is found")
		flagContrast  = fs.Float64("contrast", raster.DefaultContrast, "Contrast adjustment in percent before scanning")
		flagNoContr   = fs.Bool("no-contrast", false, "Skip contrast adjustment")
		flagThreshold = fs.Uint("threshold", uint(def.DarkThreshold), "Pixels below this intensity are dark")
		flagMergeGap  = fs.Int("merge-gap", def.MergeGap, "Max gap merging runs into one segment")
		flagVMin      = fs.Float64("vmin", def.VerticalMinFraction, "Min vertical line length as a fraction of height")
		flagHMin      = fs.Float64("hmin", def.HorizontalMinFraction, "Min horizontal line length as a fraction of width")
		flagTolerance = fs.Int("tolerance", def.PositionTolerance, "Max start/end drift within one line")
		flagMinSep    = fs.Int("min-sep", def.MinSeparation, "Min index gap before a line is emitted")
		flagInset     = fs.Int("inset", def.CellInset, "Pixels trimmed from each side of a cell")
		flagDedup     = fs.String("dedup", def.Dedup.String(), "Deduplication mode: reference or track-new")
	)

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: tablescan [options] <image>\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	if *flagVerbose {
		logging.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if !validFormats[*flagFormat] {
		fmt.Fprintf(stderr, "Error: unknown format %q\n", *flagFormat)
		return 2
	}
	mode, ok := tables.ParseDedupMode(*flagDedup)
	if !ok {
		fmt.Fprintf(stderr, "Error: unknown dedup mode %q\n", *flagDedup)
		return 2
	}
	if *flagThreshold > 255 {
		fmt.Fprintf(stderr, "Error: threshold %d out of range [0, 255]\n", *flagThreshold)
		return 2
	}

	cfg := tables.Config{
		DarkThreshold:         uint8(*flagThreshold),
		MergeGap:              *flagMergeGap,
		VerticalMinFraction:   *flagVMin,
		HorizontalMinFraction: *flagHMin,
		PositionTolerance:     *flagTolerance,
		MinSeparation:         *flagMinSep,
		Dedup:                 mode,
		CellInset:             *flagInset,
	}

	if *flagOverlay != "" && !raster.Writable(format.Detect(*flagOverlay)) {
		fmt.Fprintf(stderr, "Error: cannot write overlay %q: use .png, .jpg, .gif, .bmp or .tif\n", *flagOverlay)
		return 2
	}

	// Decode once; the overlay is drawn on the same image the table is read from.
	img, err := raster.Open(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	ext := tablescan.FromImage(img).Config(cfg).Contrast(*flagContrast)
	if *flagNoContr {
		ext = ext.SkipContrast()
	}
	if *flagStrict {
		ext = ext.Strict()
	}
	if *flagWorkers > 1 {
		lang := *flagLang
		ext = ext.Workers(*flagWorkers, func() (ocr.Recognizer, error) {
			client, err := ocr.New()
			if err != nil {
				return nil, err
			}
			if err := client.SetLanguage(lang); err != nil {
				client.Close()
				return nil, err
			}
			return client, nil
		})
	} else {
		ext = ext.Language(*flagLang)
	}

	if *flagGrid {
		layout, warnings, err := ext.Grid()
		printWarnings(stderr, warnings)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		if err := saveOverlay(img, layout, *flagOverlay); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		printGrid(stdout, layout)
		return 0
	}

	res, warnings, err := ext.Extract(ctx)
	printWarnings(stderr, warnings)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if err := saveOverlay(img, res.Layout, *flagOverlay); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if err := writeTable(stdout, res.Table, *flagFormat); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// saveOverlay draws layout on img and writes it to path; an empty path is a no-op.
func saveOverlay(img image.Image, layout *tables.Layout, path string) error {
	if path == "" {
		return nil
	}
	return raster.Save(tablescan.DrawLayout(img, layout), path)
}

var validFormats = map[string]bool{
	"text": true, "csv": true, "md": true, "markdown": true, "html": true, "json": true,
}

func printWarnings(w io.Writer, warnings []tablescan.Warning) {
	if len(warnings) > 0 {
		fmt.Fprintf(w, "Warnings:\n%s\n", tablescan.FormatWarnings(warnings))
	}
}

func printGrid(w io.Writer, l *tables.Layout) {
	fmt.Fprintf(w, "Image: %dx%d\n", l.Width, l.Height)
	fmt.Fprintf(w, "Candidates: %d vertical, %d horizontal\n", l.VerticalCandidates, l.HorizontalCandidates)
	fmt.Fprintf(w, "Columns (%d): %s\n", len(l.Columns), intervals(l.Columns))
	fmt.Fprintf(w, "Rows (%d): %s\n", len(l.Rows), intervals(l.Rows))
	fmt.Fprintf(w, "Regularity: %.2f\n", l.Regularity())
	for i, row := range l.Cells() {
		for j, rect := range row {
			fmt.Fprintf(w, "  cell (%d, %d): %v\n", i, j, rect)
		}
	}
}

func intervals(ivs []model.Interval) string {
	parts := make([]string, len(ivs))
	for i, iv := range ivs {
		parts[i] = fmt.Sprintf("%d-%d", iv.Start, iv.End)
	}
	return strings.Join(parts, " ")
}

func writeTable(w io.Writer, t *model.Table, format string) error {
	switch format {
	case "text":
		_, err := io.WriteString(w, t.GetText())
		return err
	case "csv":
		_, err := io.WriteString(w, t.ToCSV())
		return err
	case "md", "markdown":
		_, err := io.WriteString(w, t.ToMarkdown())
		return err
	case "html":
		s, err := t.ToHTML()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, s)
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(t.Strings())
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
