package css

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Rule is a selector plus its declarations.
type Rule struct {
	Selector     string
	Declarations map[string]string
}

func NewRule(selector string) *Rule {
	return &Rule{Selector: selector, Declarations: make(map[string]string)}
}

func (r *Rule) Set(property, value string) {
	r.Declarations[property] = value
}

func (r *Rule) String() string {
	props := make([]string, 0, len(r.Declarations))
	for prop := range r.Declarations {
		props = append(props, prop)
	}
	sort.Strings(props)
	var sb strings.Builder
	sb.WriteString(r.Selector)
	sb.WriteString(" { ")
	for _, prop := range props {
		fmt.Fprintf(&sb, "%s: %s; ", prop, r.Declarations[prop])
	}
	sb.WriteString("}")
	return sb.String()
}

var (
	universalSelectorRe = regexp.MustCompile(`^[*]$`)
	classSelectorRe     = regexp.MustCompile(`^[.][\w-]+$`)
	idSelectorRe        = regexp.MustCompile(`^#[\w-]+$`)
	tagSelectorRe       = regexp.MustCompile(`^[\w-]+$`)
)

// CSSOM holds rules in four buckets keyed by selector kind: the single
// universal rule, and tag, class and id rules keyed by their selector
// text. Repeated stylesheet ingestion mutates the same buckets, so a
// later sheet overwrites earlier declarations at the same
// selector+property.
type CSSOM struct {
	Universal  *Rule
	TagRules   map[string]*Rule
	ClassRules map[string]*Rule
	IDRules    map[string]*Rule
}

func NewCSSOM() *CSSOM {
	return &CSSOM{
		Universal:  NewRule("*"),
		TagRules:   make(map[string]*Rule),
		ClassRules: make(map[string]*Rule),
		IDRules:    make(map[string]*Rule),
	}
}

// RuleFor returns the rule for the given selector, creating it in the
// right bucket on first use. Selectors outside the four supported
// forms produce an error.
func (c *CSSOM) RuleFor(selector string) (*Rule, error) {
	switch {
	case universalSelectorRe.MatchString(selector):
		return c.Universal, nil
	case classSelectorRe.MatchString(selector):
		if _, ok := c.ClassRules[selector]; !ok {
			c.ClassRules[selector] = NewRule(selector)
		}
		return c.ClassRules[selector], nil
	case idSelectorRe.MatchString(selector):
		if _, ok := c.IDRules[selector]; !ok {
			c.IDRules[selector] = NewRule(selector)
		}
		return c.IDRules[selector], nil
	case tagSelectorRe.MatchString(selector):
		if _, ok := c.TagRules[selector]; !ok {
			c.TagRules[selector] = NewRule(selector)
		}
		return c.TagRules[selector], nil
	}
	return nil, fmt.Errorf("cannot handle selector %q", selector)
}
