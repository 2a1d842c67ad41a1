package main

import (
	"image"
	"os"
	"runtime"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"

	"github.com/vlad777442/adios2-transmission/src/metrics"
)

// displayAvailable reports whether opening a window is worth attempting.
func displayAvailable() bool {
	switch runtime.GOOS {
	case "darwin", "windows":
		return true
	}
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

// showFigure opens a window with the rendered figure scaled to fit and blocks
// until it is closed. Best effort: without a display the saved PNG is the
// deliverable and we just log and return.
func showFigure(title string, img image.Image) {
	if !displayAvailable() {
		metrics.Infof("no display available, skipping interactive view")
		return
	}
	a := app.New()
	w := a.NewWindow(title)
	ci := canvas.NewImageFromImage(img)
	ci.FillMode = canvas.ImageFillContain
	w.SetContent(ci)
	w.Resize(fyne.NewSize(1120, 800))
	w.ShowAndRun()
}
