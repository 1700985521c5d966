package layout

import (
	"strings"
	"testing"

	"github.com/tdrmk/gorenderer/pkg/css"
	"github.com/tdrmk/gorenderer/pkg/html"
	"github.com/tdrmk/gorenderer/pkg/text"
)

// stubFont measures every byte at a fixed advance, so word widths are
// fully deterministic in tests.
type stubFont struct {
	charWidth int
	height    int
}

func (f stubFont) Measure(s string) (int, int) {
	return len(s) * f.charWidth, f.height
}

// stubFonts hands out the same stubFont for every size/weight/style.
type stubFonts struct {
	font stubFont
}

func (p stubFonts) Font(sizePx int, weight, style string) text.Font {
	return p.font
}

var testFonts = stubFonts{font: stubFont{charWidth: 10, height: 10}}

// buildTree parses and styles markup against the given stylesheets and
// constructs the render tree.
func buildTree(t *testing.T, markup string, sheets ...string) *RenderObject {
	t.Helper()
	root, err := html.Parse(markup, nil)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	cssom := css.ParseStylesheet(baseSheet, nil, nil)
	for _, sheet := range sheets {
		cssom = css.ParseStylesheet(sheet, cssom, nil)
	}
	css.AttachStyles(root, cssom)
	return ConstructRenderTree(root)
}

// layoutTree additionally runs the solver for a window.
func layoutTree(t *testing.T, windowWidth, windowHeight int, markup string, sheets ...string) *RenderObject {
	t.Helper()
	tree := buildTree(t, markup, sheets...)
	solver := NewSolver(windowWidth, windowHeight, testFonts)
	if err := solver.Layout(tree); err != nil {
		t.Fatalf("layout error: %v", err)
	}
	return tree
}

// baseSheet gives the handful of tags used in tests their display
// values, standing in for the user-agent stylesheet.
const baseSheet = `
	body { display: block; }
	div { display: block; }
	p { display: block; }
	span { display: inline; }
	b { display: inline; }
`

// findBlock returns the first block in pre-order whose element has the
// given tag.
func findBlock(ro *RenderObject, tag string) *RenderObject {
	if ro.Kind == BlockKind && ro.Node.TagName == tag && ro.Node.Type == html.ElementNode {
		return ro
	}
	for _, child := range ro.Children {
		if found := findBlock(child, tag); found != nil {
			return found
		}
	}
	return nil
}

// findBlockByID returns the first block whose element has the given id.
func findBlockByID(ro *RenderObject, id string) *RenderObject {
	if ro.Kind == BlockKind && ro.Node.ID() == id {
		return ro
	}
	for _, child := range ro.Children {
		if found := findBlockByID(child, id); found != nil {
			return found
		}
	}
	return nil
}

// shape renders the tree structure as a compact string for comparing
// builder output.
func shape(ro *RenderObject) string {
	var sb strings.Builder
	writeShape(&sb, ro)
	return sb.String()
}

func writeShape(sb *strings.Builder, ro *RenderObject) {
	switch ro.Kind {
	case BlockKind:
		if ro.Node.Parent == nil && ro.Node.TagName == "div" && len(ro.Node.Attributes) == 0 {
			sb.WriteString("anon")
		} else {
			sb.WriteString("block:" + ro.Node.TagName)
		}
	case InlineKind:
		sb.WriteString("inline:" + ro.Node.TagName)
	case TextKind:
		sb.WriteString("text:" + ro.Node.Text)
		return
	}
	if len(ro.Children) > 0 {
		sb.WriteString("(")
		for i, child := range ro.Children {
			if i > 0 {
				sb.WriteString(" ")
			}
			writeShape(sb, child)
		}
		sb.WriteString(")")
	}
}
