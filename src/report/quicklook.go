package report

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/vlad777442/adios2-transmission/src/analysis"
	"github.com/vlad777442/adios2-transmission/src/metrics"
	"github.com/vlad777442/adios2-transmission/src/types"
)

const (
	quickLookWidth  = 800
	quickLookHeight = 480
)

// ExportQuickLook renders one standalone trend chart per metric into outDir,
// each stamped with the source file name. Headless, no window. File names are
// fixed: throughput_mbs.png, throughput_mbps.png, transfer_time.png.
func ExportQuickLook(outDir string, rows []types.StepMeasurement, sum analysis.Summary, source string) error {
	if len(rows) == 0 {
		return fmt.Errorf("no measurements to export")
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create out dir: %w", err)
	}
	toRender := []struct {
		name  string
		build func() (image.Image, error)
	}{
		{"throughput_mbs.png", func() (image.Image, error) {
			return trendChart("Throughput per Step (MB/s)", "MB/s", rows,
				func(m types.StepMeasurement) float64 { return m.ThroughputMBps },
				sum.MBps.Mean, fmt.Sprintf("Mean: %.2f MB/s", sum.MBps.Mean), chart.ColorBlue)
		}},
		{"throughput_mbps.png", func() (image.Image, error) {
			return trendChart("Throughput per Step (Mbps)", "Mbps", rows,
				func(m types.StepMeasurement) float64 { return m.ThroughputMbps },
				sum.Mbps.Mean, fmt.Sprintf("Mean: %.2f Mbps", sum.Mbps.Mean), chart.ColorGreen)
		}},
		{"transfer_time.png", func() (image.Image, error) {
			return trendChart("Transfer Time per Step", "seconds", rows,
				func(m types.StepMeasurement) float64 { return m.TimeSec },
				sum.Time.Mean, fmt.Sprintf("Mean: %.3f s", sum.Time.Mean), chart.ColorAlternateGray)
		}},
	}
	for _, item := range toRender {
		img, err := item.build()
		if err != nil {
			return fmt.Errorf("render %s: %w", item.name, err)
		}
		img = stampFooter(img, "source: "+source)
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return fmt.Errorf("png encode %s: %w", item.name, err)
		}
		outPath := filepath.Join(outDir, item.name)
		if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", outPath, err)
		}
	}
	metrics.Infof("quick-look charts written to %s", outDir)
	return nil
}

// trendChart draws one metric over steps with a dashed mean reference line.
func trendChart(title, unit string, rows []types.StepMeasurement,
	sel func(types.StepMeasurement) float64, mean float64, meanLabel string, col drawing.Color) (image.Image, error) {
	xs := make([]float64, len(rows))
	ys := make([]float64, len(rows))
	for i, r := range rows {
		xs[i] = float64(r.Step)
		ys[i] = sel(r)
	}
	if len(xs) == 1 {
		// go-chart cannot render a zero-width x range
		xs = append(xs, xs[0]+1)
		ys = append(ys, ys[0])
	}
	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    unit,
			XValues: xs,
			YValues: ys,
			Style:   chart.Style{StrokeWidth: 2, StrokeColor: col, DotWidth: 3, DotColor: col},
		},
		chart.ContinuousSeries{
			Name:    meanLabel,
			XValues: []float64{xs[0], xs[len(xs)-1]},
			YValues: []float64{mean, mean},
			Style:   chart.Style{StrokeWidth: 1.5, StrokeColor: chart.ColorRed, StrokeDashArray: []float64{5, 5}},
		},
	}
	ch := chart.Chart{
		Title:      title,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 36}},
		Width:      quickLookWidth,
		Height:     quickLookHeight,
		XAxis:      chart.XAxis{Name: "Step"},
		YAxis:      chart.YAxis{Name: unit},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return png.Decode(&buf)
}

// stampFooter draws a small text stamp onto the image near the bottom-left.
func stampFooter(img image.Image, txt string) image.Image {
	if img == nil || strings.TrimSpace(txt) == "" {
		return img
	}
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)
	pad := 4
	face := basicfont.Face7x13
	textCol := image.NewUniform(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	dr := &font.Drawer{Dst: rgba, Src: textCol, Face: face}
	tw := dr.MeasureString(txt).Ceil()
	x := b.Min.X + 8
	y := b.Max.Y - 6
	bg := image.NewUniform(color.RGBA{A: 190})
	rect := image.Rect(x-pad, y-face.Metrics().Ascent.Ceil()-pad, x+tw+pad, y+pad)
	draw.Draw(rgba, rect, bg, image.Point{}, draw.Over)
	dr.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
	dr.DrawString(txt)
	return rgba
}
