// transferreport renders the ADIOS2 transfer performance report.
//
// It reads the transfer_metrics.csv written by the receiver, prints summary
// statistics to stdout and saves a four panel performance figure as PNG.
// Optionally it opens the figure in a window and exports per-metric
// quick-look charts.
//
// Usage: transferreport [flags] [metrics.csv]
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/vlad777442/adios2-transmission/src/analysis"
	"github.com/vlad777442/adios2-transmission/src/metrics"
	"github.com/vlad777442/adios2-transmission/src/report"
)

const (
	defaultInput  = "transfer_metrics.csv"
	defaultOutput = "transfer_performance.png"
)

type options struct {
	input     string
	out       string
	title     string
	exportDir string
	show      bool
}

func run(opts options, stdout io.Writer) error {
	if _, err := os.Stat(opts.input); err != nil {
		if os.IsNotExist(err) {
			// User-facing condition, not a fault: point at the likely cause.
			fmt.Fprintf(stdout, "Error: %s not found!\n", opts.input)
			fmt.Fprintln(stdout, "Make sure to run the receiver first to generate metrics.")
			return nil
		}
		return err
	}
	rows, err := metrics.LoadFile(opts.input)
	if err != nil {
		return err
	}
	sum := analysis.Summarize(rows)
	analysis.WriteReport(stdout, sum)

	fig, err := report.RenderFigure(rows, sum, opts.title)
	if err != nil {
		return fmt.Errorf("render figure: %w", err)
	}
	if err := fig.WritePNG(opts.out); err != nil {
		return fmt.Errorf("save figure: %w", err)
	}
	fmt.Fprintf(stdout, "\nPerformance plot saved to: %s\n", opts.out)

	if opts.exportDir != "" {
		if err := report.ExportQuickLook(opts.exportDir, rows, sum, opts.input); err != nil {
			return fmt.Errorf("quick-look export: %w", err)
		}
	}
	if opts.show {
		showFigure(opts.title, fig.Image())
	}
	return nil
}

func main() {
	out := flag.String("out", defaultOutput, "Output figure path")
	title := flag.String("title", "ADIOS2 WAN Transfer Performance", "Figure title")
	exportDir := flag.String("export-dir", "", "If set, also export per-metric quick-look charts into this directory")
	show := flag.Bool("show", true, "Attempt to display the figure in a window after saving")
	logLevel := flag.String("log-level", "info", "Log level (debug|info|warn|error)")
	flag.Parse()
	metrics.SetLogLevel(*logLevel)

	input := defaultInput
	if flag.NArg() > 0 {
		input = flag.Arg(0)
	}
	opts := options{input: input, out: *out, title: *title, exportDir: *exportDir, show: *show}
	if err := run(opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "transferreport: %v\n", err)
		os.Exit(1)
	}
}
