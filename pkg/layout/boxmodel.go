package layout

import (
	"fmt"
	"image"
)

// BoxModel carries the resolved metrics of a render block. All values
// are pixels. RelativeLeft/RelativeTop are offsets within the parent's
// content box, set by the layout solver; Left/Top are absolute screen
// coordinates, set by the paint pass.
type BoxModel struct {
	ContentWidth  int
	ContentHeight int

	MarginTop    int
	MarginRight  int
	MarginBottom int
	MarginLeft   int

	PaddingTop    int
	PaddingRight  int
	PaddingBottom int
	PaddingLeft   int

	BorderTop    int
	BorderRight  int
	BorderBottom int
	BorderLeft   int

	RelativeLeft int
	RelativeTop  int

	Left int
	Top  int
}

func NewBoxModel() *BoxModel {
	return &BoxModel{}
}

func (bm *BoxModel) PaddingWidth() int  { return bm.PaddingLeft + bm.PaddingRight }
func (bm *BoxModel) PaddingHeight() int { return bm.PaddingTop + bm.PaddingBottom }
func (bm *BoxModel) BorderWidth() int   { return bm.BorderLeft + bm.BorderRight }
func (bm *BoxModel) BorderHeight() int  { return bm.BorderTop + bm.BorderBottom }
func (bm *BoxModel) MarginWidth() int   { return bm.MarginLeft + bm.MarginRight }
func (bm *BoxModel) MarginHeight() int  { return bm.MarginTop + bm.MarginBottom }

// Width is the border-box width: border + padding + content.
func (bm *BoxModel) Width() int {
	return bm.BorderWidth() + bm.PaddingWidth() + bm.ContentWidth
}

// Height is the border-box height.
func (bm *BoxModel) Height() int {
	return bm.BorderHeight() + bm.PaddingHeight() + bm.ContentHeight
}

// SetWidth sets the border-box width; content width clamps at zero.
func (bm *BoxModel) SetWidth(width int) {
	bm.ContentWidth = max(width-bm.BorderWidth()-bm.PaddingWidth(), 0)
}

// SetHeight sets the border-box height; content height clamps at zero.
func (bm *BoxModel) SetHeight(height int) {
	bm.ContentHeight = max(height-bm.BorderHeight()-bm.PaddingHeight(), 0)
}

// BoxWidth is the full horizontal extent, margins included.
func (bm *BoxModel) BoxWidth() int {
	return bm.ContentWidth + bm.PaddingWidth() + bm.BorderWidth() + bm.MarginWidth()
}

// BoxHeight is the full vertical extent, margins included.
func (bm *BoxModel) BoxHeight() int {
	return bm.ContentHeight + bm.PaddingHeight() + bm.BorderHeight() + bm.MarginHeight()
}

// SetBoxWidth sets the margin-box width; content width clamps at zero.
func (bm *BoxModel) SetBoxWidth(boxWidth int) {
	bm.ContentWidth = max(boxWidth-bm.PaddingWidth()-bm.BorderWidth()-bm.MarginWidth(), 0)
}

// SetBoxHeight sets the margin-box height; content height clamps at zero.
func (bm *BoxModel) SetBoxHeight(boxHeight int) {
	bm.ContentHeight = max(boxHeight-bm.PaddingHeight()-bm.BorderHeight()-bm.MarginHeight(), 0)
}

// Absolute edges, valid once Left/Top are set by the paint pass.

func (bm *BoxModel) Right() int  { return bm.Left + bm.BoxWidth() }
func (bm *BoxModel) Bottom() int { return bm.Top + bm.BoxHeight() }

func (bm *BoxModel) ContentLeft() int {
	return bm.Left + bm.MarginLeft + bm.BorderLeft + bm.PaddingLeft
}

func (bm *BoxModel) ContentTop() int {
	return bm.Top + bm.MarginTop + bm.BorderTop + bm.PaddingTop
}

// BoxRect is the margin box.
func (bm *BoxModel) BoxRect() image.Rectangle {
	return image.Rect(bm.Left, bm.Top, bm.Right(), bm.Bottom())
}

// BorderRect is the padding box plus border.
func (bm *BoxModel) BorderRect() image.Rectangle {
	left := bm.Left + bm.MarginLeft
	top := bm.Top + bm.MarginTop
	return image.Rect(left, top, left+bm.Width(), top+bm.Height())
}

// PaddingRect is the content box plus padding.
func (bm *BoxModel) PaddingRect() image.Rectangle {
	left := bm.Left + bm.MarginLeft + bm.BorderLeft
	top := bm.Top + bm.MarginTop + bm.BorderTop
	return image.Rect(left, top,
		left+bm.PaddingWidth()+bm.ContentWidth, top+bm.PaddingHeight()+bm.ContentHeight)
}

// ContentRect is the content box alone.
func (bm *BoxModel) ContentRect() image.Rectangle {
	return image.Rect(bm.ContentLeft(), bm.ContentTop(),
		bm.ContentLeft()+bm.ContentWidth, bm.ContentTop()+bm.ContentHeight)
}

func (bm *BoxModel) String() string {
	return fmt.Sprintf("BoxModel(content=(%d, %d), box=(%d, %d), relative=(%d, %d))",
		bm.ContentWidth, bm.ContentHeight, bm.BoxWidth(), bm.BoxHeight(),
		bm.RelativeLeft, bm.RelativeTop)
}
