package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tdrmk/gorenderer/pkg/css"
	"github.com/tdrmk/gorenderer/pkg/html"
)

// RenderKind tags the closed set of render-tree node kinds.
type RenderKind int

const (
	BlockKind RenderKind = iota
	InlineKind
	TextKind
)

// RenderObject is a node of the render tree. Blocks own a BoxModel
// (and, when their content is all inline/text, a RenderLines) after
// layout. The parent pointer is lookup-only; ownership lives in
// Children, and detach/reattach rewrites both ends.
type RenderObject struct {
	Kind     RenderKind
	Node     *html.Node
	Parent   *RenderObject
	Children []*RenderObject

	// Populated by the layout solver. Blocks only.
	Box   *BoxModel
	Lines *RenderLines
}

// NewRenderBlock wraps an element whose display is block.
func NewRenderBlock(node *html.Node) *RenderObject {
	if node.Styles[css.Display] != "block" {
		panic(fmt.Sprintf("render block over non-block element <%s>", node.TagName))
	}
	return &RenderObject{Kind: BlockKind, Node: node}
}

// NewRenderInline wraps an element whose display is inline.
func NewRenderInline(node *html.Node) *RenderObject {
	if node.Styles[css.Display] != "inline" {
		panic(fmt.Sprintf("render inline over non-inline element <%s>", node.TagName))
	}
	return &RenderObject{Kind: InlineKind, Node: node}
}

// NewRenderText wraps a text node.
func NewRenderText(node *html.Node) *RenderObject {
	if node.Type != html.TextNode {
		panic("render text over non-text node")
	}
	return &RenderObject{Kind: TextKind, Node: node}
}

// AddChild appends a child and adopts it.
func (ro *RenderObject) AddChild(child *RenderObject) {
	child.Parent = ro
	ro.Children = append(ro.Children, child)
}

// RemoveChild detaches a child, clearing its parent pointer.
func (ro *RenderObject) RemoveChild(child *RenderObject) {
	for i, c := range ro.Children {
		if c == child {
			ro.Children = append(ro.Children[:i], ro.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

// AbandonChildren detaches and returns all children.
func (ro *RenderObject) AbandonChildren() []*RenderObject {
	children := ro.Children
	for _, child := range children {
		child.Parent = nil
	}
	ro.Children = nil
	return children
}

// InsertAfter inserts child into this node's children immediately
// after sibling, which must be present.
func (ro *RenderObject) InsertAfter(child, sibling *RenderObject) {
	for i, c := range ro.Children {
		if c == sibling {
			child.Parent = ro
			ro.Children = append(ro.Children, nil)
			copy(ro.Children[i+2:], ro.Children[i+1:])
			ro.Children[i+1] = child
			return
		}
	}
	panic("insert after a node that is not a child")
}

// Style reads a computed style property off the backing element.
func (ro *RenderObject) Style(property string) string {
	return ro.Node.Styles[property]
}

// Position returns the computed position property.
func (ro *RenderObject) Position() string {
	return ro.Node.Styles[css.Position]
}

// IsPositioned reports whether position is relative, absolute or fixed.
func (ro *RenderObject) IsPositioned() bool {
	switch ro.Position() {
	case "relative", "absolute", "fixed":
		return true
	}
	return false
}

// Font properties of a render text come from its lexical parent, which
// holds the resolved styles the text renders with.

func (ro *RenderObject) FontSize() int {
	size := ro.Parent.Style(css.FontSize)
	px, err := strconv.Atoi(strings.TrimSuffix(size, "px"))
	if err != nil {
		panic(fmt.Sprintf("unresolved font-size %q", size))
	}
	return px
}

func (ro *RenderObject) FontWeight() string {
	return ro.Parent.Style(css.FontWeight)
}

func (ro *RenderObject) FontStyle() string {
	return ro.Parent.Style(css.FontStyle)
}

// DumpRenderTree renders the subtree as an ASCII tree for debugging.
func DumpRenderTree(ro *RenderObject) string {
	var sb strings.Builder
	dumpRenderNode(&sb, ro, "", true)
	return sb.String()
}

func dumpRenderNode(sb *strings.Builder, ro *RenderObject, prefix string, last bool) {
	connector := "|-- "
	childPrefix := prefix + "|   "
	if last {
		connector = "`-- "
		childPrefix = prefix + "    "
	}
	sb.WriteString(prefix)
	sb.WriteString(connector)
	sb.WriteString(ro.label())
	sb.WriteByte('\n')
	for i, child := range ro.Children {
		dumpRenderNode(sb, child, childPrefix, i == len(ro.Children)-1)
	}
}

func (ro *RenderObject) label() string {
	switch ro.Kind {
	case BlockKind:
		return fmt.Sprintf("RenderBlock[%s] <%s>", ro.Position(), ro.Node.TagName)
	case InlineKind:
		return fmt.Sprintf("RenderInline <%s>", ro.Node.TagName)
	default:
		return fmt.Sprintf("RenderText %q", ro.Node.Text)
	}
}
