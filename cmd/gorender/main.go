package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/tdrmk/gorenderer/pkg/engine"
	"github.com/tdrmk/gorenderer/pkg/html"
	"github.com/tdrmk/gorenderer/pkg/layout"
	"github.com/tdrmk/gorenderer/pkg/render"
	"github.com/tdrmk/gorenderer/pkg/text"
)

const (
	windowWidth  = 1000
	windowHeight = 600
)

type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(value string) error {
	*s = append(*s, value)
	return nil
}

func main() {
	var cssFiles stringList
	htmlFile := flag.String("html", "index.html", "html page to render")
	flag.Var(&cssFiles, "css", "stylesheet for styling the html page (repeatable)")
	output := flag.String("o", "output.png", "output PNG file path")
	showTree := flag.Bool("tree", false, "dump the element and render trees to stdout")
	showLayout := flag.Bool("layout", false, "paint box outlines instead of content")
	flag.Parse()

	log, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot set up logging: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// All input files must exist; report every missing one.
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

	if *showTree {
		fmt.Print(html.DumpTree(page.DOM))
		fmt.Print(layout.DumpRenderTree(page.Tree))
	}

	painter := render.NewPainter(windowWidth, windowHeight)
	painter.SetShowLayout(*showLayout)
	painter.Paint(page.Tree)
	if err := painter.SavePNG(*output); err != nil {
		fmt.Fprintf(os.Stderr, "error saving PNG: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Rendered %s (%s) to %s\n", *htmlFile, page.Title, *output)
}
