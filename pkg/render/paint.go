package render

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/tdrmk/gorenderer/pkg/css"
	"github.com/tdrmk/gorenderer/pkg/layout"
	"github.com/tdrmk/gorenderer/pkg/text"
)

// DefaultBackground is the browser canvas color painted under the page.
var DefaultBackground = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// Outline colors for layout-debug painting.
var (
	boxOutlineColor     = color.RGBA{R: 220, G: 20, B: 60, A: 0xff}
	borderOutlineColor  = color.RGBA{R: 255, G: 165, B: 0, A: 0xff}
	paddingOutlineColor = color.RGBA{R: 30, G: 144, B: 255, A: 0xff}
	contentOutlineColor = color.RGBA{R: 65, G: 105, B: 225, A: 0xff}
)

// Painter rasterises a positioned render tree. Paint order: static and
// relative blocks in tree order, then absolute subtrees, then fixed
// subtrees. Fixed blocks and their descendants ignore the scroll
// offset.
type Painter struct {
	dc         *gg.Context
	scrollY    int
	showLayout bool
}

func NewPainter(width, height int) *Painter {
	return &Painter{dc: gg.NewContext(width, height)}
}

// NewPainterForImage paints onto the provided RGBA image.
func NewPainterForImage(target *image.RGBA) *Painter {
	return &Painter{dc: gg.NewContextForRGBA(target)}
}

// SetScrollY sets the vertical scroll offset. Non-fixed content shifts
// up by this amount on the next Paint.
func (p *Painter) SetScrollY(scrollY int) {
	p.scrollY = scrollY
}

// SetShowLayout switches to layout-debug painting: only the four box
// rectangles are outlined.
func (p *Painter) SetShowLayout(show bool) {
	p.showLayout = show
}

func (p *Painter) Image() image.Image {
	return p.dc.Image()
}

func (p *Painter) SavePNG(path string) error {
	return p.dc.SavePNG(path)
}

// Paint draws the laid-out render tree. A block's absolute position is
// its parent's absolute content origin plus its own relative offset;
// the root anchors at the window origin.
func (p *Painter) Paint(rootRO *layout.RenderObject) {
	p.dc.SetColor(DefaultBackground)
	p.dc.Clear()

	rootRO.Box.Left = 0
	rootRO.Box.Top = 0

	// Static and relative blocks paint first, then absolute, then
	// fixed. Absolute and fixed subtrees may contain further static
	// and absolute blocks, never fixed ones (the hoist moved those to
	// the root).
	blocks := []*layout.RenderObject{rootRO}
	absoluteBlocks := make([]*layout.RenderObject, 0)
	fixedBlocks := make([]*layout.RenderObject, 0)

	for len(blocks)+len(absoluteBlocks)+len(fixedBlocks) > 0 {
		switch {
		case len(blocks) > 0:
			block := blocks[0]
			blocks = blocks[1:]
			p.placeBlock(block)
			switch block.Position() {
			case "static", "relative":
				p.drawBlock(block)
				blocks = append(blockChildren(block), blocks...)
			case "absolute":
				absoluteBlocks = append(absoluteBlocks, block)
			case "fixed":
				fixedBlocks = append(fixedBlocks, block)
			}

		case len(absoluteBlocks) > 0:
			block := absoluteBlocks[0]
			absoluteBlocks = absoluteBlocks[1:]
			p.placeBlock(block)
			p.drawBlock(block)
			// Finish this subtree before other absolute blocks.
			blocks = append(childrenWithPosition(block, "static", "relative"), blocks...)
			absoluteBlocks = append(childrenWithPosition(block, "absolute"), absoluteBlocks...)

		default:
			block := fixedBlocks[0]
			fixedBlocks = fixedBlocks[1:]
			p.placeBlock(block)
			p.drawBlock(block)
			blocks = append(childrenWithPosition(block, "static", "relative"), blocks...)
			absoluteBlocks = append(childrenWithPosition(block, "absolute"), absoluteBlocks...)
		}
	}
}

// placeBlock computes the absolute position from the parent, which was
// placed earlier in the paint order.
func (p *Painter) placeBlock(block *layout.RenderObject) {
	if block.Parent == nil {
		return
	}
	block.Box.Top = block.Parent.Box.ContentTop() + block.Box.RelativeTop
	block.Box.Left = block.Parent.Box.ContentLeft() + block.Box.RelativeLeft
}

func (p *Painter) drawBlock(block *layout.RenderObject) {
	offsetY := -p.scrollY
	if underFixed(block) {
		offsetY = 0
	}
	if p.showLayout {
		p.drawBoxOutlines(block.Box, offsetY)
		return
	}
	p.drawBackgroundAndBorders(block, offsetY)
	if block.Lines != nil {
		p.drawRenderLines(block.Lines, block.Box.ContentLeft(), block.Box.ContentTop()+offsetY)
	}
}

func (p *Painter) drawBoxOutlines(bm *layout.BoxModel, offsetY int) {
	outlines := []struct {
		rect image.Rectangle
		col  color.RGBA
	}{
		{bm.BoxRect(), boxOutlineColor},
		{bm.BorderRect(), borderOutlineColor},
		{bm.PaddingRect(), paddingOutlineColor},
		{bm.ContentRect(), contentOutlineColor},
	}
	for _, outline := range outlines {
		r := outline.rect
		p.dc.SetColor(outline.col)
		p.dc.SetLineWidth(1)
		p.dc.DrawRectangle(float64(r.Min.X), float64(r.Min.Y+offsetY),
			float64(r.Dx()), float64(r.Dy()))
		p.dc.Stroke()
	}
}

func (p *Painter) drawBackgroundAndBorders(block *layout.RenderObject, offsetY int) {
	bm := block.Box

	if bg := block.Style(css.BackgroundColor); bg != css.Transparent {
		if col, err := css.ParseHexColor(bg); err == nil {
			r := bm.PaddingRect()
			p.dc.SetColor(col)
			p.dc.DrawRectangle(float64(r.Min.X), float64(r.Min.Y+offsetY),
				float64(r.Dx()), float64(r.Dy()))
			p.dc.Fill()
		}
	}

	borderColor, err := css.ParseHexColor(block.Style(css.BorderColor))
	if err != nil {
		return
	}
	// Border lines are centered on their path, so each edge is nudged
	// by half its width to land inside the border box.
	type borderLine struct {
		x1, y1, x2, y2, width int
	}
	borders := []borderLine{
		{bm.Left + bm.MarginLeft, bm.Top + bm.MarginTop + (bm.BorderTop-1)/2,
			bm.Right() - bm.MarginRight - 1, bm.Top + bm.MarginTop + (bm.BorderTop-1)/2,
			bm.BorderTop},
		{bm.Right() - bm.MarginRight - (bm.BorderRight+3)/2, bm.Top + bm.MarginTop,
			bm.Right() - bm.MarginRight - (bm.BorderRight+3)/2, bm.Bottom() - bm.MarginBottom - 1,
			bm.BorderRight},
		{bm.Left + bm.MarginLeft, bm.Bottom() - bm.MarginBottom - (bm.BorderBottom+3)/2,
			bm.Right() - bm.MarginRight - 1, bm.Bottom() - bm.MarginBottom - (bm.BorderBottom+3)/2,
			bm.BorderBottom},
		{bm.Left + bm.MarginLeft + (bm.BorderLeft-1)/2, bm.Top + bm.MarginTop,
			bm.Left + bm.MarginLeft + (bm.BorderLeft-1)/2, bm.Bottom() - bm.MarginBottom - 1,
			bm.BorderLeft},
	}
	for _, b := range borders {
		if b.width <= 0 {
			continue
		}
		p.dc.SetColor(borderColor)
		p.dc.SetLineWidth(float64(b.width))
		p.dc.DrawLine(float64(b.x1), float64(b.y1+offsetY), float64(b.x2), float64(b.y2+offsetY))
		p.dc.Stroke()
	}
}

// drawRenderLines blits the words line by line, each word vertically
// centered within its line.
func (p *Painter) drawRenderLines(lines *layout.RenderLines, left, top int) {
	lineOffset := 0
	for _, line := range lines.Lines {
		lineHeight := line.Height()
		wordOffset := 0
		for _, word := range line.Words {
			p.drawWord(word, left+wordOffset, top+lineOffset+(lineHeight-word.H)/2)
			wordOffset += word.W
		}
		lineOffset += lineHeight
	}
}

func (p *Painter) drawWord(word *layout.WordObject, left, top int) {
	textRO := word.Text
	if bg := textRO.Parent.Style(css.BackgroundColor); bg != css.Transparent {
		if col, err := css.ParseHexColor(bg); err == nil {
			p.dc.SetColor(col)
			p.dc.DrawRectangle(float64(left), float64(top), float64(word.W), float64(word.H))
			p.dc.Fill()
		}
	}

	faceFont, ok := word.Font.(*text.FaceFont)
	if !ok {
		// No glyphs without a real face; the word still occupies its
		// measured box.
		return
	}
	col, err := css.ParseHexColor(textRO.Parent.Style(css.Color))
	if err != nil {
		return
	}
	face := faceFont.Face()
	p.dc.SetFontFace(face)
	p.dc.SetColor(col)
	baseline := float64(top) + float64(face.Metrics().Ascent.Ceil())
	p.dc.DrawString(word.Word, float64(left), baseline)
}

func blockChildren(block *layout.RenderObject) []*layout.RenderObject {
	// Blocks with inline content have no block children to paint; the
	// words were drawn with the block itself.
	for _, childRO := range block.Children {
		if childRO.Kind != layout.BlockKind {
			return nil
		}
	}
	out := make([]*layout.RenderObject, len(block.Children))
	copy(out, block.Children)
	return out
}

func childrenWithPosition(block *layout.RenderObject, positions ...string) []*layout.RenderObject {
	for _, childRO := range block.Children {
		if childRO.Kind != layout.BlockKind {
			return nil
		}
	}
	out := make([]*layout.RenderObject, 0)
	for _, childRO := range block.Children {
		for _, position := range positions {
			if childRO.Position() == position {
				out = append(out, childRO)
				break
			}
		}
	}
	return out
}

func underFixed(block *layout.RenderObject) bool {
	for ro := block; ro != nil; ro = ro.Parent {
		if ro.Kind == layout.BlockKind && ro.Position() == "fixed" {
			return true
		}
	}
	return false
}
