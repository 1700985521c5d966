// Package engine wires the rendering pipeline: markup parse, style
// attach, render-tree construction and layout. The result is ready for
// the paint pass.
package engine

import (
	"go.uber.org/zap"

	"github.com/tdrmk/gorenderer/pkg/css"
	"github.com/tdrmk/gorenderer/pkg/html"
	"github.com/tdrmk/gorenderer/pkg/layout"
	"github.com/tdrmk/gorenderer/pkg/text"
)

// Page is a fully laid-out document.
type Page struct {
	DOM   *html.Node
	Tree  *layout.RenderObject
	Title string
}

type Engine struct {
	windowWidth  int
	windowHeight int
	fonts        text.Provider
	log          *zap.Logger
}

func New(windowWidth, windowHeight int, fonts text.Provider, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		windowWidth:  windowWidth,
		windowHeight: windowHeight,
		fonts:        fonts,
		log:          log,
	}
}

// Render runs the pipeline over markup text and stylesheet texts. The
// built-in user-agent stylesheet is ingested before the author sheets,
// so author declarations overwrite it.
func (e *Engine) Render(markup string, stylesheets []string) (*Page, error) {
	dom, err := html.Parse(markup, e.log)
	if err != nil {
		return nil, err
	}

	cssom := css.ParseStylesheet(css.AgentStylesheet, nil, e.log)
	for _, sheet := range stylesheets {
		cssom = css.ParseStylesheet(sheet, cssom, e.log)
	}

	css.AttachStyles(dom, cssom)

	tree := layout.ConstructRenderTree(dom)
	solver := layout.NewSolver(e.windowWidth, e.windowHeight, e.fonts)
	if err := solver.Layout(tree); err != nil {
		return nil, err
	}

	return &Page{DOM: dom, Tree: tree, Title: html.PageTitle(dom)}, nil
}
