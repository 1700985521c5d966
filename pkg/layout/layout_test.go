package layout

import (
	"errors"
	"testing"
)

func TestComputeLength(t *testing.T) {
	tests := []struct {
		value     string
		basis     int
		allowAuto bool
		want      int
		wantErr   bool
	}{
		{"10px", 500, false, 10, false},
		{"0px", 500, false, 0, false},
		{"50%", 500, false, 250, false},
		{"0%", 500, false, 0, false},
		{"100%", 500, false, 500, false},
		{"33%", 100, false, 33, false},
		{"33%", 10, false, 3, false}, // floor division
		{"auto", 500, true, 0, false},
		{"auto", 500, false, 0, true},
		{"10em", 500, false, 0, true},
		{"-10px", 500, false, 0, true},
	}
	for _, tt := range tests {
		got, err := computeLength(tt.value, tt.basis, tt.allowAuto)
		if tt.wantErr {
			if err == nil {
				t.Errorf("computeLength(%q): expected error", tt.value)
			} else if !errors.Is(err, ErrMalformedLength) {
				t.Errorf("computeLength(%q): expected ErrMalformedLength, got %v", tt.value, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("computeLength(%q): unexpected error %v", tt.value, err)
			continue
		}
		if got != tt.want {
			t.Errorf("computeLength(%q, %d): expected %d, got %d", tt.value, tt.basis, tt.want, got)
		}
	}
}

func TestLayout_RootFillsWindow(t *testing.T) {
	tree := layoutTree(t, 1000, 600, `<html></html>`)
	if tree.Box.ContentWidth != 1000 {
		t.Errorf("expected root content width 1000, got %d", tree.Box.ContentWidth)
	}
	// No children and auto height resolve to zero.
	if tree.Box.ContentHeight != 0 {
		t.Errorf("expected root content height 0, got %d", tree.Box.ContentHeight)
	}
}

func TestLayout_RootExplicitHeightResolvesAgainstWindow(t *testing.T) {
	tree := layoutTree(t, 1000, 600, `<html></html>`, `html { height: 50%; }`)
	if tree.Box.ContentHeight != 300 {
		t.Errorf("expected root content height 300, got %d", tree.Box.ContentHeight)
	}
}

func TestLayout_BorderBoxSizing(t *testing.T) {
	tree := layoutTree(t, 1000, 600,
		`<html><body><div id="box"></div></body></html>`,
		`#box { width: 200px; height: 100px; padding-left: 10px; padding-right: 10px;
		        border-left-width: 5px; border-right-width: 5px;
		        padding-top: 10px; padding-bottom: 10px; }`)

	box := findBlockByID(tree, "box")
	// Resolved width includes padding and border.
	if box.Box.ContentWidth != 200-10-10-5-5 {
		t.Errorf("expected content width %d, got %d", 200-10-10-5-5, box.Box.ContentWidth)
	}
	if box.Box.ContentHeight != 100-10-10 {
		t.Errorf("expected content height %d, got %d", 100-10-10, box.Box.ContentHeight)
	}
}

func TestLayout_AutoWidthFillsContainingBlock(t *testing.T) {
	tree := layoutTree(t, 1000, 600,
		`<html><body><div id="box"></div></body></html>`,
		`#box { margin-left: 50px; margin-right: 50px; padding-left: 20px; }`)

	box := findBlockByID(tree, "box")
	if box.Box.ContentWidth != 1000-50-50-20 {
		t.Errorf("expected content width %d, got %d", 1000-50-50-20, box.Box.ContentWidth)
	}
	if box.Box.BoxWidth() != 1000 {
		t.Errorf("expected margin box to fill containing width, got %d", box.Box.BoxWidth())
	}
}

func TestLayout_PercentEdgesResolveAgainstContainingWidth(t *testing.T) {
	tree := layoutTree(t, 1000, 600,
		`<html><body><div id="box"></div></body></html>`,
		`#box { margin-left: 10%; padding-top: 5%; }`)

	box := findBlockByID(tree, "box")
	if box.Box.MarginLeft != 100 {
		t.Errorf("expected margin-left 100, got %d", box.Box.MarginLeft)
	}
	// Vertical edges resolve against the containing width too.
	if box.Box.PaddingTop != 50 {
		t.Errorf("expected padding-top 50, got %d", box.Box.PaddingTop)
	}
}

func TestLayout_PercentHeightDemotedUnderAutoParent(t *testing.T) {
	tree := layoutTree(t, 1000, 600,
		`<html><body><div id="parent"><div id="child"></div></div></body></html>`,
		`#child { height: 50%; }`)

	child := findBlockByID(tree, "child")
	if got := child.Style("height"); got != "auto" {
		t.Errorf("expected height style demoted to auto, got %q", got)
	}
	if child.Box.ContentHeight != 0 {
		t.Errorf("expected auto height to resolve to 0 with no children, got %d", child.Box.ContentHeight)
	}
}

func TestLayout_PercentHeightAgainstExplicitParent(t *testing.T) {
	tree := layoutTree(t, 1000, 600,
		`<html><body><div id="parent"><div id="child"></div></div></body></html>`,
		`#parent { height: 400px; } #child { height: 50%; }`)

	child := findBlockByID(tree, "child")
	if child.Box.ContentHeight != 200 {
		t.Errorf("expected percent height 200 against parent content height, got %d", child.Box.ContentHeight)
	}
}

func TestLayout_AutoHeightSumsStaticChildren(t *testing.T) {
	tree := layoutTree(t, 1000, 600,
		`<html><body><div id="a"></div><div id="b"></div><div id="c"></div></body></html>`,
		`#a { height: 100px; } #b { height: 50px; margin-top: 10px; margin-bottom: 10px; }
		 #c { height: 30px; }`)

	body := findBlock(tree, "body")
	if body.Box.ContentHeight != 100+70+30 {
		t.Errorf("expected body height 200, got %d", body.Box.ContentHeight)
	}

	a, b, c := findBlockByID(tree, "a"), findBlockByID(tree, "b"), findBlockByID(tree, "c")
	if a.Box.RelativeTop != 0 || a.Box.RelativeLeft != 0 {
		t.Errorf("expected a at (0, 0), got (%d, %d)", a.Box.RelativeLeft, a.Box.RelativeTop)
	}
	if b.Box.RelativeTop != 100 {
		t.Errorf("expected b stacked at 100, got %d", b.Box.RelativeTop)
	}
	if c.Box.RelativeTop != 170 {
		t.Errorf("expected c stacked at 170 (margins included), got %d", c.Box.RelativeTop)
	}
}

func TestLayout_AbsoluteChildDoesNotContributeHeight(t *testing.T) {
	tree := layoutTree(t, 1000, 600,
		`<html><body><div id="a"></div><div id="abs"></div><div id="b"></div></body></html>`,
		`#a { height: 100px; } #b { height: 50px; }
		 #abs { position: absolute; height: 400px; }`)

	body := findBlock(tree, "body")
	if body.Box.ContentHeight != 150 {
		t.Errorf("expected absolute child excluded from height, got %d", body.Box.ContentHeight)
	}
}

func TestLayout_InlineContentHeightFromLines(t *testing.T) {
	// Stub font: 10px per character, 10px tall. The paragraph is 100px
	// wide, the words are 60 and 50 px, so they break onto two lines.
	tree := layoutTree(t, 1000, 600,
		`<html><body><p>aaaaa bbbbb</p></body></html>`,
		`p { width: 100px; }`)

	p := findBlock(tree, "p")
	if p.Lines == nil {
		t.Fatal("expected render lines on the paragraph")
	}
	if len(p.Lines.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(p.Lines.Lines))
	}
	if p.Box.ContentHeight != 20 {
		t.Errorf("expected content height 20 from two 10px lines, got %d", p.Box.ContentHeight)
	}
}

func TestLayout_RelativeOffsets(t *testing.T) {
	tree := layoutTree(t, 1000, 600,
		`<html><body><div id="a"></div><div id="rel"></div></body></html>`,
		`#a { height: 100px; }
		 #rel { position: relative; height: 50px; top: 20px; left: 10%; right: 30px; }`)

	rel := findBlockByID(tree, "rel")
	// In-flow position plus (top-bottom, left-right); auto offsets are 0.
	if rel.Box.RelativeTop != 100+20 {
		t.Errorf("expected relative top 120, got %d", rel.Box.RelativeTop)
	}
	if rel.Box.RelativeLeft != 100-30 {
		t.Errorf("expected relative left 70, got %d", rel.Box.RelativeLeft)
	}

	body := findBlock(tree, "body")
	if body.Box.ContentHeight != 150 {
		t.Errorf("expected relative child to keep contributing height, got %d", body.Box.ContentHeight)
	}
}

func TestLayout_AbsoluteTopLeft(t *testing.T) {
	tree := layoutTree(t, 1000, 600,
		`<html><body><div id="abs"></div></body></html>`,
		`#abs { position: absolute; width: 100px; height: 50px; top: 40px; left: 60px; }`)

	abs := findBlockByID(tree, "abs")
	if abs.Box.RelativeTop != 40 || abs.Box.RelativeLeft != 60 {
		t.Errorf("expected absolute at (60, 40), got (%d, %d)",
			abs.Box.RelativeLeft, abs.Box.RelativeTop)
	}
}

func TestLayout_AbsoluteBottomRightOverride(t *testing.T) {
	tree := layoutTree(t, 1000, 600,
		`<html><body><div id="abs"></div></body></html>`,
		`html { height: 600px; }
		 #abs { position: absolute; width: 100px; height: 50px;
		        top: 10px; left: 10px; bottom: 0px; right: 0px; }`)

	abs := findBlockByID(tree, "abs")
	// bottom/right win over top/left; both resolve against the root's
	// content box.
	if abs.Box.RelativeTop != 600-50 {
		t.Errorf("expected bottom-anchored top %d, got %d", 600-50, abs.Box.RelativeTop)
	}
	if abs.Box.RelativeLeft != 1000-100 {
		t.Errorf("expected right-anchored left %d, got %d", 1000-100, abs.Box.RelativeLeft)
	}
}

func TestLayout_ContentSizesNonNegative(t *testing.T) {
	tree := layoutTree(t, 1000, 600,
		`<html><body><div id="tight"></div></body></html>`,
		`#tight { width: 10px; padding-left: 20px; padding-right: 20px;
		         border-left-width: 5px; border-right-width: 5px; }`)

	var walk func(ro *RenderObject)
	walk = func(ro *RenderObject) {
		if ro.Kind == BlockKind && ro.Box != nil {
			if ro.Box.ContentWidth < 0 || ro.Box.ContentHeight < 0 {
				t.Errorf("<%s> has negative content size (%d, %d)",
					ro.Node.TagName, ro.Box.ContentWidth, ro.Box.ContentHeight)
			}
		}
		for _, child := range ro.Children {
			walk(child)
		}
	}
	walk(tree)

	tight := findBlockByID(tree, "tight")
	if tight.Box.ContentWidth != 0 {
		t.Errorf("expected clamped content width 0, got %d", tight.Box.ContentWidth)
	}
}

func TestLayout_StaticChildrenWithinParentHeight(t *testing.T) {
	tree := layoutTree(t, 1000, 600,
		`<html><body><div id="a"></div><div id="b"></div></body></html>`,
		`body { height: 500px; } #a { height: 200px; } #b { height: 100px; }`)

	body := findBlock(tree, "body")
	for _, child := range body.Children {
		if child.Position() != "static" {
			continue
		}
		if child.Box.RelativeTop < 0 || child.Box.RelativeTop > body.Box.ContentHeight {
			t.Errorf("static child %q outside parent: top %d, parent height %d",
				child.Node.ID(), child.Box.RelativeTop, body.Box.ContentHeight)
		}
	}
}

func TestLayout_MalformedLengthSurfaces(t *testing.T) {
	tree := buildTree(t, `<html><body></body></html>`)
	// Corrupt a style value behind the attacher's back.
	body := findBlock(tree, "body")
	body.Node.Styles["margin-left"] = "10em"

	solver := NewSolver(1000, 600, testFonts)
	err := solver.Layout(tree)
	if err == nil {
		t.Fatal("expected malformed length error")
	}
	if !errors.Is(err, ErrMalformedLength) {
		t.Errorf("expected ErrMalformedLength, got %v", err)
	}
}
