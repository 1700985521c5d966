package layout

import (
	"github.com/tdrmk/gorenderer/pkg/css"
	"github.com/tdrmk/gorenderer/pkg/html"
)

// anonymousBlock creates a render block with no backing DOM element.
// The synthesised element inherits from the containing block's element;
// the parent pointer is only set while inheritance is computed.
func anonymousBlock(parent *html.Node) *RenderObject {
	node := html.NewElement("div", nil)
	node.Styles = css.ParseStyle(map[string]string{css.Display: "block"})
	node.Parent = parent
	css.InheritStyles(node)
	node.Parent = nil
	return NewRenderBlock(node)
}

// ConstructRenderTree builds the render tree from a styled element
// tree. The result satisfies:
//   - no display:none element (or descendant of one) appears;
//   - every block's children are either all blocks or all inline/text;
//   - inline nodes contain only inline/text nodes;
//   - absolute blocks hang off their nearest positioned ancestor block
//     and fixed blocks off the root html block.
func ConstructRenderTree(root *html.Node) *RenderObject {
	if root.Styles[css.Display] != "block" {
		panic("render tree root element must be a block")
	}
	rootRO := NewRenderBlock(root)
	buildInitialTree(rootRO)
	hoistPositionedBlocks(rootRO)
	wrapAnonymousBlocks(rootRO)
	return rootRO
}

// buildInitialTree walks the element tree depth-first, dropping
// display:none subtrees and lifting blocks out of inline parents so
// block nodes only ever parent to block nodes.
func buildInitialTree(rootRO *RenderObject) {
	worklist := []*RenderObject{rootRO}
	for len(worklist) > 0 {
		ro := worklist[0]
		worklist = worklist[1:]
		for _, node := range ro.Node.Children {
			if node.Type == html.TextNode {
				ro.AddChild(NewRenderText(node))
				continue
			}
			switch node.Styles[css.Display] {
			case "none":
				// The node and its whole subtree are omitted.
			case "block":
				blockRO := NewRenderBlock(node)
				if ro.Node.Styles[css.Display] == "inline" {
					// A block cannot render inside an inline. Walk up
					// to the nearest block ancestor and insert the
					// block right after the inline child it broke out
					// of; the inline is effectively split there.
					ancestorRO, inlineSibling := ro, (*RenderObject)(nil)
					for ancestorRO.Node.Styles[css.Display] != "block" {
						ancestorRO, inlineSibling = ancestorRO.Parent, ancestorRO
						if ancestorRO == nil {
							panic("inline render object with no block ancestor")
						}
					}
					ancestorRO.InsertAfter(blockRO, inlineSibling)
				} else {
					ro.AddChild(blockRO)
				}
				worklist = append([]*RenderObject{blockRO}, worklist...)
			case "inline":
				inlineRO := NewRenderInline(node)
				ro.AddChild(inlineRO)
				worklist = append([]*RenderObject{inlineRO}, worklist...)
			}
		}
	}
}

// hoistPositionedBlocks reattaches absolute blocks to their nearest
// positioned ancestor block and fixed blocks to the root. An absolute
// block whose parent is already positioned stays put. Positioning of
// inline nodes is ignored.
func hoistPositionedBlocks(rootRO *RenderObject) {
	if rootRO.Position() != "relative" {
		panic("render tree root must be relatively positioned")
	}
	worklist := []*RenderObject{rootRO}
	for len(worklist) > 0 {
		ro := worklist[0]
		worklist = worklist[1:]
		for _, childRO := range snapshot(ro.Children) {
			if childRO.Kind != BlockKind {
				continue
			}
			switch childRO.Position() {
			case "absolute":
				if !ro.IsPositioned() {
					ancestorRO := ro
					for !ancestorRO.IsPositioned() {
						ancestorRO = ancestorRO.Parent
						if ancestorRO == nil {
							panic("absolute block with no positioned ancestor")
						}
					}
					ro.RemoveChild(childRO)
					ancestorRO.AddChild(childRO)
				}
			case "fixed":
				if ro != rootRO {
					ro.RemoveChild(childRO)
					rootRO.AddChild(childRO)
				}
			}
			worklist = append([]*RenderObject{childRO}, worklist...)
		}
	}
}

// wrapAnonymousBlocks re-partitions mixed children: each maximal run of
// inline/text children collapses into one anonymous block, leaving the
// block children interspersed in their original order.
func wrapAnonymousBlocks(rootRO *RenderObject) {
	worklist := []*RenderObject{rootRO}
	for len(worklist) > 0 {
		ro := worklist[0]
		worklist = worklist[1:]
		if hasMixedChildren(ro) {
			children := ro.AbandonChildren()
			var anonymousRO *RenderObject
			for _, childRO := range children {
				if childRO.Kind == BlockKind {
					ro.AddChild(childRO)
					anonymousRO = nil
					continue
				}
				if anonymousRO == nil {
					anonymousRO = anonymousBlock(ro.Node)
					ro.AddChild(anonymousRO)
				}
				anonymousRO.AddChild(childRO)
			}
		}
		// Anonymous blocks hold only inline/text children, so they
		// never recurse further.
		for _, childRO := range ro.Children {
			if childRO.Kind == BlockKind {
				worklist = append([]*RenderObject{childRO}, worklist...)
			}
		}
	}
}

func hasMixedChildren(ro *RenderObject) bool {
	hasBlock, hasOther := false, false
	for _, childRO := range ro.Children {
		if childRO.Kind == BlockKind {
			hasBlock = true
		} else {
			hasOther = true
		}
	}
	return hasBlock && hasOther
}

// snapshot copies a child list so reattachment during iteration cannot
// skip siblings.
func snapshot(children []*RenderObject) []*RenderObject {
	out := make([]*RenderObject, len(children))
	copy(out, children)
	return out
}
