package css

import "regexp"

// Recognised property names.
const (
	MarginTop    = "margin-top"
	MarginRight  = "margin-right"
	MarginBottom = "margin-bottom"
	MarginLeft   = "margin-left"

	PaddingTop    = "padding-top"
	PaddingRight  = "padding-right"
	PaddingBottom = "padding-bottom"
	PaddingLeft   = "padding-left"

	BorderTop    = "border-top-width"
	BorderRight  = "border-right-width"
	BorderBottom = "border-bottom-width"
	BorderLeft   = "border-left-width"

	Width  = "width"
	Height = "height"

	Color           = "color"
	BackgroundColor = "background-color"
	BorderColor     = "border-color"

	FontSize   = "font-size"
	FontWeight = "font-weight"
	FontStyle  = "font-style"

	Display  = "display"
	Position = "position"

	Left   = "left"
	Right  = "right"
	Top    = "top"
	Bottom = "bottom"
)

// InheritableProperties are the properties that propagate from parent
// to child when their computed value is "inherit".
var InheritableProperties = []string{
	Color, BackgroundColor, BorderColor, FontSize, FontStyle, FontWeight,
}

// Value grammars. A value that fails its grammar is replaced by the
// group's default during style normalisation.
var (
	boxLengthRe  = regexp.MustCompile(`^\d+(px|%)$`)
	autoLengthRe = regexp.MustCompile(`^(\d+(px|%)|auto)$`)
	colorRe      = regexp.MustCompile(`^(#[0-9a-f]{6}|inherit)$`)
	bgColorRe    = regexp.MustCompile(`^(#[0-9a-f]{6}|transparent|inherit)$`)
	fontSizeRe   = regexp.MustCompile(`^(\d+px|inherit)$`)
	fontWeightRe = regexp.MustCompile(`^(normal|bold|inherit)$`)
	fontStyleRe  = regexp.MustCompile(`^(normal|italic|inherit)$`)
	displayRe    = regexp.MustCompile(`^(block|inline|none)$`)
	positionRe   = regexp.MustCompile(`^(static|relative|absolute|fixed)$`)
)

type propertyGroup struct {
	properties []string
	grammar    *regexp.Regexp
	fallback   string
}

var propertyGroups = []propertyGroup{
	{[]string{MarginLeft, MarginRight, MarginTop, MarginBottom,
		PaddingLeft, PaddingRight, PaddingTop, PaddingBottom,
		BorderLeft, BorderRight, BorderTop, BorderBottom}, boxLengthRe, "0px"},
	{[]string{Width, Height, Left, Right, Top, Bottom}, autoLengthRe, "auto"},
	{[]string{Color, BorderColor}, colorRe, "inherit"},
	{[]string{BackgroundColor}, bgColorRe, "inherit"},
	{[]string{FontSize}, fontSizeRe, "inherit"},
	{[]string{FontWeight}, fontWeightRe, "inherit"},
	{[]string{FontStyle}, fontStyleRe, "inherit"},
	{[]string{Display}, displayRe, "none"},
	{[]string{Position}, positionRe, "static"},
}

// ParseStyle normalises a raw declaration map into a fully-specified
// style map: every recognised property gets a value from its grammar,
// with the group default substituted for missing or malformed values.
// Unrecognised properties are dropped.
func ParseStyle(styles map[string]string) map[string]string {
	parsed := make(map[string]string, len(propertyGroups)*4)
	for _, group := range propertyGroups {
		for _, prop := range group.properties {
			value, ok := styles[prop]
			if !ok || !group.grammar.MatchString(value) {
				value = group.fallback
			}
			parsed[prop] = value
		}
	}
	return parsed
}
