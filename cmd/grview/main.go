package main

import (
	"flag"
	"fmt"
	"image"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/tdrmk/gorenderer/pkg/engine"
	"github.com/tdrmk/gorenderer/pkg/render"
	"github.com/tdrmk/gorenderer/pkg/text"
)

const (
	windowWidth  = 1000
	windowHeight = 600
	scrollStep   = 40
)

func main() {
	var cssFiles []string
	htmlFile := flag.String("html", "index.html", "html page to render")
	flag.Func("css", "stylesheet for styling the html page (repeatable)", func(value string) error {
		cssFiles = append(cssFiles, value)
		return nil
	})
	flag.Parse()

	log, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot set up logging: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	var missing error
	for _, file := range append([]string{*htmlFile}, cssFiles...) {
		if _, statErr := os.Stat(file); statErr != nil {
			missing = multierr.Append(missing, fmt.Errorf("cannot find %s", file))
		}
	}
	if missing != nil {
		for _, e := range multierr.Errors(missing) {
			fmt.Fprintln(os.Stderr, e)
		}
		os.Exit(1)
	}

	markup, err := os.ReadFile(*htmlFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading %s: %v\n", *htmlFile, err)
		os.Exit(1)
	}
	stylesheets := make([]string, 0, len(cssFiles))
	for _, file := range cssFiles {
		sheet, err := os.ReadFile(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error reading %s: %v\n", file, err)
			os.Exit(1)
		}
		stylesheets = append(stylesheets, string(sheet))
	}

	fonts := text.NewService(text.DefaultConfig(), log)
	eng := engine.New(windowWidth, windowHeight, fonts, log)
	page, err := eng.Render(string(markup), stylesheets)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error rendering %s: %v\n", *htmlFile, err)
		os.Exit(1)
	}

	a := app.New()
	w := a.NewWindow(page.Title)
	w.Resize(fyne.NewSize(windowWidth, windowHeight))
	w.SetFixedSize(true)

	target := image.NewRGBA(image.Rect(0, 0, windowWidth, windowHeight))
	painter := render.NewPainterForImage(target)
	painter.Paint(page.Tree)

	canvasImg := canvas.NewImageFromImage(target)
	canvasImg.FillMode = canvas.ImageFillOriginal
	w.SetContent(canvasImg)

	// Keyboard scrolling. The page height comes from the laid-out
	// root block; fixed content stays put while the rest scrolls.
	scrollY := 0
	maxScroll := page.Tree.Box.BoxHeight() - windowHeight
	if maxScroll < 0 {
		maxScroll = 0
	}
	repaint := func() {
		painter.SetScrollY(scrollY)
		painter.Paint(page.Tree)
		canvasImg.Refresh()
	}
	w.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyDown:
			scrollY = min(scrollY+scrollStep, maxScroll)
			repaint()
		case fyne.KeyUp:
			scrollY = max(scrollY-scrollStep, 0)
			repaint()
		case fyne.KeyPageDown:
			scrollY = min(scrollY+windowHeight, maxScroll)
			repaint()
		case fyne.KeyPageUp:
			scrollY = max(scrollY-windowHeight, 0)
			repaint()
		case fyne.KeyQ, fyne.KeyEscape:
			a.Quit()
		}
	})

	w.ShowAndRun()
}
