package css

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// Stylesheet grammar. A rule is a single simple selector followed by a
// braced list of semicolon-terminated declarations. Anything else
// between rules is reported and skipped.
const (
	selectorPattern    = `[*]|[\w-]+|[.][\w-]+|[#][\w-]+`
	declarationPattern = `\s*[\w-]+\s*:\s*#?\w+%?\s*;`
)

var (
	commentRe     = regexp.MustCompile(`(?s)/[*].*?[*]/`)
	declarationRe = regexp.MustCompile(`\s*(?P<PROPERTY>[\w-]+)\s*:\s*(?P<VALUE>#?\w+%?)\s*;`)
	ruleTokenRe   = regexp.MustCompile(
		`(?P<RULE>\s*(?P<SELECTOR>` + selectorPattern + `)\s*\{(?P<DECLARATIONS>(` + declarationPattern + `)+)\s*\})` +
			`|(?P<SPACE>\s+)` +
			`|(?P<EXCEPTION>.+)`)
)

// ParseStylesheet ingests stylesheet text into the CSSOM, creating one
// when cssom is nil. Comments are stripped first. Selectors and
// property names are lowercased. Unknown text is reported through the
// logger and skipped without aborting.
func ParseStylesheet(css string, cssom *CSSOM, log *zap.Logger) *CSSOM {
	if cssom == nil {
		cssom = NewCSSOM()
	}
	if log == nil {
		log = zap.NewNop()
	}

	// Removing comments loses line information for diagnostics.
	css = commentRe.ReplaceAllString(css, "")

	names := ruleTokenRe.SubexpNames()
	for _, m := range ruleTokenRe.FindAllStringSubmatchIndex(css, -1) {
		groups := make(map[string]string)
		for i, name := range names {
			if name == "" || m[2*i] < 0 {
				continue
			}
			groups[name] = css[m[2*i]:m[2*i+1]]
		}
		switch {
		case groups["SPACE"] != "":
		case groups["RULE"] != "":
			rule, err := cssom.RuleFor(strings.ToLower(groups["SELECTOR"]))
			if err != nil {
				log.Warn("skipping rule", zap.Error(err))
				continue
			}
			for _, d := range declarationRe.FindAllStringSubmatch(groups["DECLARATIONS"], -1) {
				rule.Set(strings.ToLower(d[1]), strings.ToLower(d[2]))
			}
		default:
			log.Warn("unexpected stylesheet text", zap.String("text", groups["EXCEPTION"]))
		}
	}
	return cssom
}
