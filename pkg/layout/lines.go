package layout

import (
	"fmt"
	"unicode"

	"github.com/tdrmk/gorenderer/pkg/text"
)

// WordObject is a single word of a render text, measured with the font
// its text renders in. The word keeps its trailing whitespace, and the
// measured size includes it.
type WordObject struct {
	Word string
	Text *RenderObject
	Font text.Font
	W, H int
}

func newWordObject(word string, textRO *RenderObject, fonts text.Provider) *WordObject {
	font := fonts.Font(textRO.FontSize(), textRO.FontWeight(), textRO.FontStyle())
	w, h := font.Measure(word)
	return &WordObject{Word: word, Text: textRO, Font: font, W: w, H: h}
}

func (wo *WordObject) String() string {
	return fmt.Sprintf("WordObject(%q, size=(%d, %d))", wo.Word, wo.W, wo.H)
}

// LineObject is the run of words that render on one line.
type LineObject struct {
	Words []*WordObject
}

// Width is the sum of the word widths.
func (lo *LineObject) Width() int {
	width := 0
	for _, wo := range lo.Words {
		width += wo.W
	}
	return width
}

// Height is the tallest word on the line.
func (lo *LineObject) Height() int {
	height := 0
	for _, wo := range lo.Words {
		height = max(height, wo.H)
	}
	return height
}

// RenderLines is the broken-line content of a block whose descendants
// are all inline/text.
type RenderLines struct {
	Lines []*LineObject
}

// Width is the widest line.
func (rl *RenderLines) Width() int {
	width := 0
	for _, lo := range rl.Lines {
		width = max(width, lo.Width())
	}
	return width
}

// Height is the sum of the line heights.
func (rl *RenderLines) Height() int {
	height := 0
	for _, lo := range rl.Lines {
		height += lo.Height()
	}
	return height
}

// splitWords splits after each whitespace run, so every word keeps its
// trailing whitespace: "Hello world!" -> ["Hello ", "world!"].
func splitWords(s string) []string {
	words := make([]string, 0)
	start := 0
	inSpace := false
	for i, r := range s {
		if unicode.IsSpace(r) {
			inSpace = true
			continue
		}
		if inSpace {
			words = append(words, s[start:i])
			start = i
			inSpace = false
		}
	}
	if start < len(s) {
		words = append(words, s[start:])
	}
	return words
}

// constructLinesObject packs words greedily into lines. The effective
// width is at least the widest word, so a single word never breaks.
func constructLinesObject(words []*WordObject, availableWidth int) *RenderLines {
	width := availableWidth
	for _, wo := range words {
		width = max(width, wo.W)
	}
	lines := &RenderLines{}
	var line *LineObject
	for _, wo := range words {
		if line != nil && line.Width()+wo.W <= width {
			line.Words = append(line.Words, wo)
		} else {
			line = &LineObject{Words: []*WordObject{wo}}
			lines.Lines = append(lines.Lines, line)
		}
	}
	return lines
}

// constructRenderLines breaks the inline/text content of a block into
// lines against the available width. Text nodes are collected by
// in-order traversal of the inline descendants, split into words and
// measured with the font of their lexical parent.
func constructRenderLines(blockRO *RenderObject, availableWidth int, fonts text.Provider) *RenderLines {
	if len(blockRO.Children) == 0 {
		panic("line breaking over a block with no children")
	}
	for _, childRO := range blockRO.Children {
		if childRO.Kind == BlockKind {
			panic("line breaking over a block with block children")
		}
	}

	textObjects := make([]*RenderObject, 0)
	worklist := snapshot(blockRO.Children)
	for len(worklist) > 0 {
		ro := worklist[0]
		worklist = worklist[1:]
		switch ro.Kind {
		case TextKind:
			textObjects = append(textObjects, ro)
		case InlineKind:
			worklist = append(snapshot(ro.Children), worklist...)
		}
	}

	words := make([]*WordObject, 0)
	for _, textRO := range textObjects {
		for _, word := range splitWords(textRO.Node.Text) {
			words = append(words, newWordObject(word, textRO, fonts))
		}
	}

	blockRO.Lines = constructLinesObject(words, availableWidth)
	return blockRO.Lines
}
