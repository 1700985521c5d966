package html

import (
	"fmt"

	"go.uber.org/zap"
)

// Parse constructs an element tree from markup text. The parser
// recovers from tag mismatches: an end tag with no matching open is
// dropped with a diagnostic, an end tag matching an ancestor
// auto-closes the intervening open tags, and any tags still open at
// end of input are auto-closed. The root element must be html.
func Parse(input string, log *zap.Logger) (*Node, error) {
	if log == nil {
		log = zap.NewNop()
	}
	tokens, err := Tokenize(input)
	if err != nil {
		return nil, err
	}

	stack := make([]*Node, 0) // open elements, from START tokens only
	var root *Node

	for _, token := range tokens {
		switch token.Kind {
		case TokenText:
			if len(stack) == 0 {
				return nil, fmt.Errorf("unexpected text %q at line %d column %d",
					token.Value, token.Line, token.Column)
			}
			stack[len(stack)-1].AddChild(NewText(token.Value))

		case TokenClosing:
			node := newElementFromToken(token)
			if len(stack) == 0 {
				return nil, fmt.Errorf("unexpected self-closing tag %q at line %d column %d",
					token.Value, token.Line, token.Column)
			}
			stack[len(stack)-1].AddChild(node)

		case TokenStart:
			node := newElementFromToken(token)
			if len(stack) > 0 {
				stack[len(stack)-1].AddChild(node)
			} else {
				root = node
			}
			stack = append(stack, node)

		case TokenEnd:
			if len(stack) == 0 {
				return nil, fmt.Errorf("unexpected end tag %q at line %d column %d",
					token.Value, token.Line, token.Column)
			}
			if stack[len(stack)-1].TagName != token.Value {
				log.Warn("unexpected end tag",
					zap.String("tag", token.Value),
					zap.Int("line", token.Line), zap.Int("column", token.Column))
				if !hasOpenTag(stack, token.Value) {
					// No matching start tag anywhere above; drop it.
					log.Warn("no matching start tag for end tag, ignoring",
						zap.String("tag", token.Value),
						zap.Int("line", token.Line), zap.Int("column", token.Column))
					continue
				}
				// Auto-close intervening open tags until the match.
				for stack[len(stack)-1].TagName != token.Value {
					node := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					log.Warn("automatically closing start tag",
						zap.String("tag", node.TagName),
						zap.Int("line", node.Line), zap.Int("column", node.Column))
				}
			}
			stack = stack[:len(stack)-1]
		}

		if root != nil && len(stack) == 0 {
			// Root closed; remaining tokens are not useful.
			break
		}
	}

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		log.Warn("automatically closing start tag at end of input",
			zap.String("tag", node.TagName),
			zap.Int("line", node.Line), zap.Int("column", node.Column))
	}

	if root == nil {
		return nil, fmt.Errorf("no root element in input")
	}
	if root.TagName != "html" {
		return nil, fmt.Errorf("root element is %q, want html", root.TagName)
	}
	return root, nil
}

func newElementFromToken(token Token) *Node {
	node := NewElement(token.Value, token.Attributes)
	node.Line = token.Line
	node.Column = token.Column
	return node
}

func hasOpenTag(stack []*Node, tag string) bool {
	for _, node := range stack {
		if node.TagName == tag {
			return true
		}
	}
	return false
}
