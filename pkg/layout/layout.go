package layout

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tdrmk/gorenderer/pkg/css"
	"github.com/tdrmk/gorenderer/pkg/text"
)

// ErrMalformedLength signals a length value outside the style grammar
// reaching the layout solver. The style attacher filters every value,
// so hitting it indicates a bug upstream, not bad user input.
var ErrMalformedLength = errors.New("malformed length")

var (
	pxRe      = regexp.MustCompile(`^\d+px$`)
	percentRe = regexp.MustCompile(`^\d+%$`)
)

// computeLength resolves a length value against a basis: Npx yields N,
// N% yields basis*N/100 (floor), and auto yields 0 when allowed.
func computeLength(value string, basis int, allowAuto bool) (int, error) {
	switch {
	case pxRe.MatchString(value):
		return strconv.Atoi(strings.TrimSuffix(value, "px"))
	case percentRe.MatchString(value):
		n, err := strconv.Atoi(strings.TrimSuffix(value, "%"))
		if err != nil {
			return 0, err
		}
		return basis * n / 100, nil
	case allowAuto && value == "auto":
		return 0, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrMalformedLength, value)
}

// Solver lays out a render tree for a window. Only border-box sizing
// is implemented: a resolved width already includes padding and border.
type Solver struct {
	windowWidth  int
	windowHeight int
	fonts        text.Provider
}

func NewSolver(windowWidth, windowHeight int, fonts text.Provider) *Solver {
	return &Solver{windowWidth: windowWidth, windowHeight: windowHeight, fonts: fonts}
}

// Layout sizes and positions every block of the render tree. The root
// must be the html block, which the attacher forces to be relatively
// positioned. Three iterative phases:
//
//  1. pre-order descent resolving every metric that depends only on
//     the containing block (margins, paddings, borders, width, and
//     non-auto heights; inline content is line-broken here);
//  2. post-order ascent resolving auto heights from children and
//     stacking static/relative children vertically;
//  3. offsets for positioned blocks.
func (s *Solver) Layout(rootRO *RenderObject) error {
	if rootRO.Node.TagName != "html" || rootRO.Position() != "relative" {
		panic("layout root must be the relatively positioned html block")
	}

	// Blocks whose height needs their children resolved first. Popped
	// LIFO so deeper blocks resolve before their ancestors.
	needsHeight := make([]*RenderObject, 0)
	// Positioned blocks, offset in the final phase.
	positioned := make([]*RenderObject, 0)

	worklist := []*RenderObject{rootRO}
	for len(worklist) > 0 {
		ro := worklist[0]
		worklist = worklist[1:]
		if ro.Kind != BlockKind {
			panic("layout worklist holds a non-block render object")
		}

		var width, height int
		if ro.Parent == nil {
			width, height = s.windowWidth, s.windowHeight
		} else {
			// Pre-order: the parent's content box is already sized.
			width = ro.Parent.Box.ContentWidth
			height = ro.Parent.Box.ContentHeight
		}

		// A percent height resolves against an auto parent as auto.
		if ro.Parent != nil && ro.Parent.Style(css.Height) == "auto" &&
			percentRe.MatchString(ro.Style(css.Height)) {
			ro.Node.Styles[css.Height] = "auto"
		}

		if ro.IsPositioned() {
			positioned = append(positioned, ro)
		}

		ro.Box = NewBoxModel()
		if err := s.computeBoxProperties(ro, width, height); err != nil {
			return err
		}

		switch {
		case len(ro.Children) == 0:
			if err := s.computeBoxHeight(ro, height, 0); err != nil {
				return err
			}
		case allInlineChildren(ro):
			lines := constructRenderLines(ro, ro.Box.ContentWidth, s.fonts)
			if err := s.computeBoxHeight(ro, height, lines.Height()); err != nil {
				return err
			}
		default:
			// All children are blocks; the height needs theirs first.
			needsHeight = append(needsHeight, ro)
			worklist = append(snapshot(ro.Children), worklist...)
		}
	}

	// Resolve deferred heights and stack children. Children are
	// positioned in every deferred block, auto height or not.
	for len(needsHeight) > 0 {
		ro := needsHeight[len(needsHeight)-1]
		needsHeight = needsHeight[:len(needsHeight)-1]
		childrenHeight := 0
		for _, childRO := range ro.Children {
			childRO.Box.RelativeLeft = 0
			childRO.Box.RelativeTop = childrenHeight
			// Absolute and fixed children leave normal flow and do
			// not contribute to the parent's height.
			if childRO.Position() == "static" || childRO.Position() == "relative" {
				childrenHeight += childRO.Box.BoxHeight()
			}
		}
		if ro.Style(css.Height) == "auto" {
			if err := s.computeBoxHeight(ro, 0, childrenHeight); err != nil {
				return err
			}
		}
	}

	for len(positioned) > 0 {
		ro := positioned[len(positioned)-1]
		positioned = positioned[:len(positioned)-1]
		if ro.Parent == nil {
			continue
		}
		if err := s.offsetPositioned(ro); err != nil {
			return err
		}
	}
	return nil
}

// computeBoxProperties resolves every box metric that depends only on
// the containing block. Heights that need children stay unresolved.
// Margins, paddings and borders resolve against the containing width,
// percent values included.
func (s *Solver) computeBoxProperties(ro *RenderObject, availableWidth, availableHeight int) error {
	bm := ro.Box
	edges := []struct {
		target   *int
		property string
	}{
		{&bm.MarginLeft, css.MarginLeft}, {&bm.MarginRight, css.MarginRight},
		{&bm.MarginTop, css.MarginTop}, {&bm.MarginBottom, css.MarginBottom},
		{&bm.PaddingLeft, css.PaddingLeft}, {&bm.PaddingRight, css.PaddingRight},
		{&bm.PaddingTop, css.PaddingTop}, {&bm.PaddingBottom, css.PaddingBottom},
		{&bm.BorderLeft, css.BorderLeft}, {&bm.BorderRight, css.BorderRight},
		{&bm.BorderTop, css.BorderTop}, {&bm.BorderBottom, css.BorderBottom},
	}
	for _, edge := range edges {
		value, err := computeLength(ro.Style(edge.property), availableWidth, false)
		if err != nil {
			return err
		}
		*edge.target = value
	}

	if ro.Style(css.Width) == "auto" {
		// Auto width fills the containing block: the content width is
		// whatever remains after margin, border and padding.
		bm.SetBoxWidth(availableWidth)
	} else {
		width, err := computeLength(ro.Style(css.Width), availableWidth, false)
		if err != nil {
			return err
		}
		bm.SetWidth(width)
	}

	if ro.Style(css.Height) != "auto" {
		height, err := computeLength(ro.Style(css.Height), availableHeight, false)
		if err != nil {
			return err
		}
		bm.SetHeight(height)
	}
	return nil
}

// computeBoxHeight finalises a block's height: auto heights take the
// accumulated children height, anything else resolves against the
// containing height.
func (s *Solver) computeBoxHeight(ro *RenderObject, availableHeight, childrenHeight int) error {
	if ro.Style(css.Height) == "auto" {
		ro.Box.ContentHeight = childrenHeight
		return nil
	}
	height, err := computeLength(ro.Style(css.Height), availableHeight, false)
	if err != nil {
		return err
	}
	ro.Box.SetHeight(height)
	return nil
}

// offsetPositioned applies the positioning offsets. All four offsets
// resolve against the parent's content width.
func (s *Solver) offsetPositioned(ro *RenderObject) error {
	basis := ro.Parent.Box.ContentWidth
	if ro.Position() == "relative" {
		// Shift from the in-flow position; the parent's height was
		// frozen in the ascent and does not change.
		top, err := computeLength(ro.Style(css.Top), basis, true)
		if err != nil {
			return err
		}
		left, err := computeLength(ro.Style(css.Left), basis, true)
		if err != nil {
			return err
		}
		bottom, err := computeLength(ro.Style(css.Bottom), basis, true)
		if err != nil {
			return err
		}
		right, err := computeLength(ro.Style(css.Right), basis, true)
		if err != nil {
			return err
		}
		ro.Box.RelativeTop += top - bottom
		ro.Box.RelativeLeft += left - right
		return nil
	}

	// Absolute and fixed: top/left place the box, then bottom/right
	// override from the opposite edge.
	if ro.Style(css.Top) != "auto" {
		top, err := computeLength(ro.Style(css.Top), basis, false)
		if err != nil {
			return err
		}
		ro.Box.RelativeTop = top
	}
	if ro.Style(css.Left) != "auto" {
		left, err := computeLength(ro.Style(css.Left), basis, false)
		if err != nil {
			return err
		}
		ro.Box.RelativeLeft = left
	}
	if ro.Style(css.Bottom) != "auto" {
		bottom, err := computeLength(ro.Style(css.Bottom), basis, false)
		if err != nil {
			return err
		}
		ro.Box.RelativeTop = ro.Parent.Box.ContentHeight - ro.Box.BoxHeight() - bottom
	}
	if ro.Style(css.Right) != "auto" {
		right, err := computeLength(ro.Style(css.Right), basis, false)
		if err != nil {
			return err
		}
		ro.Box.RelativeLeft = ro.Parent.Box.ContentWidth - ro.Box.BoxWidth() - right
	}
	return nil
}

func allInlineChildren(ro *RenderObject) bool {
	for _, childRO := range ro.Children {
		if childRO.Kind == BlockKind {
			return false
		}
	}
	return true
}
