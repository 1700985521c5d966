package html

import (
	"testing"
)

func TestParse_BuildsTree(t *testing.T) {
	root, err := Parse(`<html><body><p>Hello there</p><div id="box"></div></body></html>`, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root.TagName != "html" {
		t.Fatalf("expected html root, got %q", root.TagName)
	}
	if len(root.Children) != 1 {
		t.Fatalf("expected 1 child of html, got %d", len(root.Children))
	}
	body := root.Children[0]
	if body.TagName != "body" || body.Parent != root {
		t.Fatalf("expected body child with parent html")
	}
	if len(body.Children) != 2 {
		t.Fatalf("expected 2 children of body, got %d", len(body.Children))
	}
	p, div := body.Children[0], body.Children[1]
	if p.TagName != "p" || div.TagName != "div" {
		t.Errorf("expected p and div children, got %q and %q", p.TagName, div.TagName)
	}
	if div.ID() != "box" {
		t.Errorf("expected div id 'box', got %q", div.ID())
	}
	if len(p.Children) != 1 || p.Children[0].Type != TextNode {
		t.Fatalf("expected text child under p")
	}
	if text := p.Children[0].Text; text != "Hello there" {
		t.Errorf("expected normalised text, got %q", text)
	}
}

func TestParse_EveryChildListsItsParent(t *testing.T) {
	root, err := Parse(`<html><body><div><span>x</span></div></body></html>`, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var walk func(n *Node)
	walk = func(n *Node) {
		for _, child := range n.Children {
			if child.Parent != n {
				t.Errorf("child %q does not point back to parent %q", child.label(), n.label())
			}
			walk(child)
		}
	}
	walk(root)
}

func TestParse_UnmatchedEndTagDropped(t *testing.T) {
	root, err := Parse(`<html><body></span></body></html>`, nil)
	if err != nil {
		t.Fatalf("expected recovery, got error: %v", err)
	}
	if len(root.Children) != 1 || root.Children[0].TagName != "body" {
		t.Fatalf("expected body to survive the stray end tag")
	}
}

func TestParse_AncestorEndTagAutoCloses(t *testing.T) {
	root, err := Parse(`<html><body><div><span>x</div></body></html>`, nil)
	if err != nil {
		t.Fatalf("expected recovery, got error: %v", err)
	}
	body := root.Children[0]
	div := body.Children[0]
	if div.TagName != "div" {
		t.Fatalf("expected div under body, got %q", div.TagName)
	}
	// span was auto-closed inside div, not hoisted anywhere else.
	if len(div.Children) != 1 || div.Children[0].TagName != "span" {
		t.Fatalf("expected span to stay inside div")
	}
	if len(body.Children) != 1 {
		t.Errorf("expected only div under body, got %d children", len(body.Children))
	}
}

func TestParse_LeftoversAutoCloseAtEOF(t *testing.T) {
	root, err := Parse(`<html><body><div>`, nil)
	if err != nil {
		t.Fatalf("expected recovery, got error: %v", err)
	}
	if root.Children[0].Children[0].TagName != "div" {
		t.Fatalf("expected div to be closed and kept")
	}
}

func TestParse_NonHTMLRootRejected(t *testing.T) {
	if _, err := Parse(`<div></div>`, nil); err == nil {
		t.Fatal("expected error for non-html root")
	}
}

func TestParse_TextOutsideRootRejected(t *testing.T) {
	if _, err := Parse(`stray text<html></html>`, nil); err == nil {
		t.Fatal("expected error for text outside any element")
	}
}

func TestPageTitle(t *testing.T) {
	root, err := Parse(`<html><head><title>My Page</title></head><body></body></html>`, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if title := PageTitle(root); title != "My Page" {
		t.Errorf("expected 'My Page', got %q", title)
	}

	root, err = Parse(`<html><body></body></html>`, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if title := PageTitle(root); title != "Default Title" {
		t.Errorf("expected default title, got %q", title)
	}
}
