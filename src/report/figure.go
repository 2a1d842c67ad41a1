// Package report renders the transfer performance charts.
package report

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"strconv"

	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/vlad777442/adios2-transmission/src/analysis"
	"github.com/vlad777442/adios2-transmission/src/types"
)

const (
	figureDPI    = 300
	figureWidth  = 14 * vg.Inch
	figureHeight = 10 * vg.Inch

	// Bin count of the throughput distribution panel, independent of row count.
	histogramBins = 15
)

var (
	colorBlue   = color.RGBA{B: 220, A: 255}
	colorGreen  = color.RGBA{G: 150, A: 255}
	colorRed    = color.RGBA{R: 220, A: 255}
	colorOrange = color.RGBA{R: 255, G: 150, A: 255}
	colorPurple = color.RGBA{R: 130, B: 130, A: 255}
)

// Figure is the composed 2x2 performance chart.
type Figure struct {
	canvas *vgimg.Canvas
}

// RenderFigure draws the four report panels onto one titled 14x10 inch canvas
// at 300 DPI: per-step throughput in MB/s and Mbps, per-step transfer time,
// and the throughput distribution.
func RenderFigure(rows []types.StepMeasurement, sum analysis.Summary, title string) (*Figure, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no measurements to plot")
	}
	pA, err := throughputPanel(rows, func(m types.StepMeasurement) float64 { return m.ThroughputMBps },
		"MB/s", sum.MBps.Mean, colorBlue)
	if err != nil {
		return nil, fmt.Errorf("throughput MB/s panel: %w", err)
	}
	pB, err := throughputPanel(rows, func(m types.StepMeasurement) float64 { return m.ThroughputMbps },
		"Mbps", sum.Mbps.Mean, colorGreen)
	if err != nil {
		return nil, fmt.Errorf("throughput Mbps panel: %w", err)
	}
	pC, err := transferTimePanel(rows, sum.Time.Mean)
	if err != nil {
		return nil, fmt.Errorf("transfer time panel: %w", err)
	}
	pD, _, err := histogramPanel(rows, sum)
	if err != nil {
		return nil, fmt.Errorf("distribution panel: %w", err)
	}

	canvas := vgimg.NewWith(vgimg.UseWH(figureWidth, figureHeight), vgimg.UseDPI(figureDPI))
	dc := draw.New(canvas)
	tiles := draw.Tiles{
		Rows: 2, Cols: 2,
		PadTop:    vg.Points(42), // headroom for the figure title
		PadBottom: vg.Points(10),
		PadLeft:   vg.Points(10),
		PadRight:  vg.Points(10),
		PadX:      vg.Points(16),
		PadY:      vg.Points(16),
	}
	plots := [][]*plot.Plot{{pA, pB}, {pC, pD}}
	canvases := plot.Align(plots, tiles, dc)
	for r := range plots {
		for c := range plots[r] {
			plots[r][c].Draw(canvases[r][c])
		}
	}

	sty := text.Style{
		Color:   color.Black,
		Font:    font.Font{Typeface: "Liberation", Variant: "Sans", Weight: xfont.WeightBold, Size: vg.Points(18)},
		Handler: text.Plain{Fonts: font.DefaultCache},
		XAlign:  text.XCenter,
		YAlign:  text.YTop,
	}
	dc.FillText(sty, vg.Point{X: (dc.Min.X + dc.Max.X) / 2, Y: dc.Max.Y - vg.Points(8)}, title)
	return &Figure{canvas: canvas}, nil
}

// Image returns the rendered figure pixels.
func (f *Figure) Image() image.Image { return f.canvas.Image() }

// WritePNG writes the figure to path as PNG. The 300 DPI of the canvas is
// recorded in the PNG metadata.
func (f *Figure) WritePNG(path string) error {
	w, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := (vgimg.PngCanvas{Canvas: f.canvas}).WriteTo(w); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// refLine builds a dashed reference line between two points.
func refLine(x0, y0, x1, y1 float64, col color.Color) (*plotter.Line, error) {
	ln, err := plotter.NewLine(plotter.XYs{{X: x0, Y: y0}, {X: x1, Y: y1}})
	if err != nil {
		return nil, err
	}
	ln.Color = col
	ln.Width = vg.Points(1.5)
	ln.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
	return ln, nil
}

func throughputPanel(rows []types.StepMeasurement, sel func(types.StepMeasurement) float64,
	unit string, mean float64, col color.Color) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Throughput per Step (%s)", unit)
	p.X.Label.Text = "Step Number"
	p.Y.Label.Text = fmt.Sprintf("Throughput (%s)", unit)
	p.Add(plotter.NewGrid())

	xys := make(plotter.XYs, len(rows))
	xmin, xmax := float64(rows[0].Step), float64(rows[0].Step)
	for i, r := range rows {
		x := float64(r.Step)
		xys[i] = plotter.XY{X: x, Y: sel(r)}
		if x < xmin {
			xmin = x
		}
		if x > xmax {
			xmax = x
		}
	}
	if xmax == xmin {
		// widen a single-step axis so the reference line stays visible
		xmax = xmin + 1
	}
	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return nil, err
	}
	line.Color = col
	line.Width = vg.Points(1.5)
	points.Shape = draw.CircleGlyph{}
	points.Color = col
	points.Radius = vg.Points(2.5)
	p.Add(line, points)

	ml, err := refLine(xmin, mean, xmax, mean, colorRed)
	if err != nil {
		return nil, err
	}
	p.Add(ml)
	p.Legend.Add(fmt.Sprintf("Mean: %.2f %s", mean, unit), ml)
	p.Legend.Top = true
	return p, nil
}

func transferTimePanel(rows []types.StepMeasurement, meanTime float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Transfer Time per Step"
	p.X.Label.Text = "Step Number"
	p.Y.Label.Text = "Transfer Time (seconds)"
	p.Add(plotter.NewGrid())

	times := make(plotter.Values, len(rows))
	labels := make([]string, len(rows))
	for i, r := range rows {
		times[i] = r.TimeSec
		labels[i] = strconv.Itoa(r.Step)
	}
	bars, err := plotter.NewBarChart(times, vg.Points(16))
	if err != nil {
		return nil, err
	}
	bars.Color = colorOrange
	bars.LineStyle.Color = color.Black
	bars.LineStyle.Width = vg.Points(0.5)
	p.Add(bars)
	p.NominalX(labels...)

	// bars sit at nominal positions 0..n-1
	ml, err := refLine(-0.5, meanTime, float64(len(rows))-0.5, meanTime, colorRed)
	if err != nil {
		return nil, err
	}
	p.Add(ml)
	p.Legend.Add(fmt.Sprintf("Mean: %.3f s", meanTime), ml)
	p.Legend.Top = true
	return p, nil
}

func histogramPanel(rows []types.StepMeasurement, sum analysis.Summary) (*plot.Plot, *plotter.Histogram, error) {
	p := plot.New()
	p.Title.Text = "Throughput Distribution"
	p.X.Label.Text = "Throughput (MB/s)"
	p.Y.Label.Text = "Frequency"
	p.Add(plotter.NewGrid())

	vals := make(plotter.Values, len(rows))
	for i, r := range rows {
		vals[i] = r.ThroughputMBps
	}
	h, err := makeHistogram(vals)
	if err != nil {
		return nil, nil, err
	}
	h.FillColor = colorPurple
	h.LineStyle.Color = color.Black
	p.Add(h)

	var top float64
	for _, b := range h.Bins {
		if b.Weight > top {
			top = b.Weight
		}
	}
	if top == 0 {
		top = 1
	}
	meanLn, err := refLine(sum.MBps.Mean, 0, sum.MBps.Mean, top, colorRed)
	if err != nil {
		return nil, nil, err
	}
	medianLn, err := refLine(sum.MBps.Median, 0, sum.MBps.Median, top, colorGreen)
	if err != nil {
		return nil, nil, err
	}
	p.Add(meanLn, medianLn)
	p.Legend.Add(fmt.Sprintf("Mean: %.2f MB/s", sum.MBps.Mean), meanLn)
	p.Legend.Add(fmt.Sprintf("Median: %.2f MB/s", sum.MBps.Median), medianLn)
	p.Legend.Top = true
	return p, h, nil
}

// makeHistogram bins vals into the fixed bin count. A zero-width value range
// would collapse to one bin, so that case gets a unit-wide synthetic range
// centered on the value with everything in the middle bin.
func makeHistogram(vals plotter.Values) (*plotter.Histogram, error) {
	lo, hi := vals[0], vals[0]
	for _, v := range vals {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi > lo {
		return plotter.NewHist(vals, histogramBins)
	}
	lo -= 0.5
	w := 1.0 / histogramBins
	bins := make([]plotter.HistogramBin, histogramBins)
	for i := range bins {
		bins[i] = plotter.HistogramBin{Min: lo + w*float64(i), Max: lo + w*float64(i+1)}
	}
	bins[histogramBins/2].Weight = float64(len(vals))
	return &plotter.Histogram{Bins: bins, Width: 1, LineStyle: plotter.DefaultLineStyle}, nil
}
