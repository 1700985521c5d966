package html

import (
	"strings"
)

// Node is a node of the element tree. Element nodes carry a tag name,
// attributes and the style map populated by the style attacher; text
// nodes carry normalised text only.
type Node struct {
	Type       NodeType
	TagName    string
	Attributes map[string]string
	Text       string
	Styles     map[string]string
	Children   []*Node
	Parent     *Node

	// Source position of the originating token, for diagnostics.
	Line   int
	Column int
}

type NodeType int

const (
	ElementNode NodeType = iota
	TextNode
)

// NewElement creates an element node with no parent.
func NewElement(tag string, attributes map[string]string) *Node {
	if attributes == nil {
		attributes = make(map[string]string)
	}
	return &Node{
		Type:       ElementNode,
		TagName:    tag,
		Attributes: attributes,
		Styles:     make(map[string]string),
		Children:   make([]*Node, 0),
	}
}

// NewText creates a text node with no parent.
func NewText(text string) *Node {
	return &Node{Type: TextNode, Text: text}
}

func (n *Node) GetAttribute(name string) (string, bool) {
	if n.Attributes == nil {
		return "", false
	}
	val, ok := n.Attributes[name]
	return val, ok
}

// ID returns the element's id attribute, or "" when absent.
func (n *Node) ID() string {
	id, _ := n.GetAttribute("id")
	return id
}

// Classes returns the element's class list in source order.
func (n *Node) Classes() []string {
	class, _ := n.GetAttribute("class")
	return strings.Fields(class)
}

// AddChild adds a child node and sets up the parent relationship.
func (n *Node) AddChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// RemoveChild removes the given child from this node's children list,
// clears its parent pointer, and returns the removed child.
// Returns nil if child is not found.
func (n *Node) RemoveChild(child *Node) *Node {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			return child
		}
	}
	return nil
}

// PageTitle returns the text of html > head > title, or a default when
// the document has none.
func PageTitle(root *Node) string {
	for _, node := range root.Children {
		if node.Type != ElementNode || node.TagName != "head" {
			continue
		}
		for _, h := range node.Children {
			if h.Type != ElementNode || h.TagName != "title" {
				continue
			}
			for _, t := range h.Children {
				if t.Type == TextNode {
					return t.Text
				}
			}
		}
	}
	return "Default Title"
}

// DumpTree renders the subtree rooted at n as an ASCII tree, one node
// per line. Used by the CLI's tree-dump flag.
func DumpTree(n *Node) string {
	var sb strings.Builder
	dumpNode(&sb, n, "", true)
	return sb.String()
}

func dumpNode(sb *strings.Builder, n *Node, prefix string, last bool) {
	connector := "|-- "
	childPrefix := prefix + "|   "
	if last {
		connector = "`-- "
		childPrefix = prefix + "    "
	}
	sb.WriteString(prefix)
	sb.WriteString(connector)
	sb.WriteString(n.label())
	sb.WriteByte('\n')
	for i, child := range n.Children {
		dumpNode(sb, child, childPrefix, i == len(n.Children)-1)
	}
}

func (n *Node) label() string {
	if n.Type == TextNode {
		return "#text \"" + n.Text + "\""
	}
	var sb strings.Builder
	sb.WriteString(n.TagName)
	if id := n.ID(); id != "" {
		sb.WriteString("#" + id)
	}
	for _, c := range n.Classes() {
		sb.WriteString("." + c)
	}
	return sb.String()
}
