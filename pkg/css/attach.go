package css

import (
	"fmt"

	"github.com/tdrmk/gorenderer/pkg/html"
)

// ComputeStyle cascades the CSSOM onto a single element and normalises
// the result. Cascade order, each step overwriting the last: universal
// rule, tag rule, class rules in class-list order, id rule. The
// element's parent must already be resolved (no "inherit" left) before
// inheritance can complete.
func ComputeStyle(node *html.Node, cssom *CSSOM) {
	for prop, value := range cssom.Universal.Declarations {
		node.Styles[prop] = value
	}
	if rule, ok := cssom.TagRules[node.TagName]; ok {
		for prop, value := range rule.Declarations {
			node.Styles[prop] = value
		}
	}
	for _, class := range node.Classes() {
		if rule, ok := cssom.ClassRules["."+class]; ok {
			for prop, value := range rule.Declarations {
				node.Styles[prop] = value
			}
		}
	}
	if rule, ok := cssom.IDRules["#"+node.ID()]; ok {
		for prop, value := range rule.Declarations {
			node.Styles[prop] = value
		}
	}

	node.Styles = ParseStyle(node.Styles)

	if node.TagName == "html" {
		// The root is always a positioned block, and cannot inherit.
		node.Styles[Position] = "relative"
		node.Styles[Display] = "block"
		for prop, fallback := range rootInheritDefaults {
			if node.Styles[prop] == "inherit" {
				node.Styles[prop] = fallback
			}
		}
	}

	InheritStyles(node)
}

var rootInheritDefaults = map[string]string{
	Color:           "#000000",
	BorderColor:     "#000000",
	BackgroundColor: "transparent",
	FontSize:        "16px",
	FontWeight:      "normal",
	FontStyle:       "normal",
}

// InheritStyles resolves "inherit" values on the inheritable properties
// by copying the parent's computed value. The parent must already be
// fully resolved.
func InheritStyles(node *html.Node) {
	for _, prop := range InheritableProperties {
		if node.Styles[prop] != "inherit" {
			continue
		}
		if node.Parent == nil || node.Parent.Styles[prop] == "inherit" {
			panic(fmt.Sprintf("cannot inherit %s: parent unresolved for <%s>", prop, node.TagName))
		}
		node.Styles[prop] = node.Parent.Styles[prop]
	}
}

// AttachStyles computes styles for every element of the tree,
// breadth-first so a parent is always resolved before its children.
func AttachStyles(root *html.Node, cssom *CSSOM) {
	nodes := []*html.Node{root}
	for len(nodes) > 0 {
		node := nodes[0]
		nodes = nodes[1:]
		ComputeStyle(node, cssom)
		for _, child := range node.Children {
			if child.Type == html.ElementNode {
				nodes = append(nodes, child)
			}
		}
	}
}
