package text

import (
	"github.com/flopp/go-findfont"
	"github.com/fogleman/gg"
	"go.uber.org/zap"
	"golang.org/x/image/font"
)

// Font weight and style values, as they appear in computed styles.
const (
	WeightNormal = "normal"
	WeightBold   = "bold"
	StyleNormal  = "normal"
	StyleItalic  = "italic"
)

// SupportedSizes are the pixel sizes the service keeps faces for, in
// ascending order. Requests outside the set snap to the nearest size.
var SupportedSizes = []int{11, 13, 16, 19, 24, 32, 40}

// NearestSize snaps a pixel size to the nearest supported size. Ties
// resolve to the smaller size.
func NearestSize(px int) int {
	best := SupportedSizes[0]
	for _, size := range SupportedSizes[1:] {
		if abs(px-size) < abs(px-best) {
			best = size
		}
	}
	return best
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Font is an opaque handle for a single size/weight/style combination.
// Measure reports the pixel box a string occupies.
type Font interface {
	Measure(text string) (w, h int)
}

// Provider resolves font handles for the layout and paint passes.
type Provider interface {
	Font(sizePx int, weight, style string) Font
}

// Config names the font files to look up on the system, one per
// weight/style combination. Lookup goes through the system font
// directories, so bare file names are enough.
type Config struct {
	Regular    string
	Bold       string
	Italic     string
	BoldItalic string
}

// DefaultConfig returns the default font family.
func DefaultConfig() Config {
	return Config{
		Regular:    "Verdana.ttf",
		Bold:       "Verdana_Bold.ttf",
		Italic:     "Verdana_Italic.ttf",
		BoldItalic: "Verdana_Bold_Italic.ttf",
	}
}

type fontKey struct {
	size   int
	weight string
	style  string
}

// Service is the process-wide font table: one face per supported size
// and weight/style combination, loaded once at startup. Combinations
// whose font file cannot be found or loaded fall back to an estimating
// handle so rendering can proceed.
type Service struct {
	faces map[fontKey]Font
}

// NewService builds the font table. It never fails: missing fonts are
// logged and replaced by estimates.
func NewService(cfg Config, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	files := map[[2]string]string{
		{WeightNormal, StyleNormal}: cfg.Regular,
		{WeightBold, StyleNormal}:   cfg.Bold,
		{WeightNormal, StyleItalic}: cfg.Italic,
		{WeightBold, StyleItalic}:   cfg.BoldItalic,
	}
	s := &Service{faces: make(map[fontKey]Font)}
	for variant, file := range files {
		path, err := findfont.Find(file)
		if err != nil {
			log.Warn("font not found, measurements will be estimated",
				zap.String("font", file), zap.Error(err))
			path = ""
		}
		for _, size := range SupportedSizes {
			key := fontKey{size, variant[0], variant[1]}
			if path != "" {
				if face, ferr := gg.LoadFontFace(path, float64(size)); ferr == nil {
					s.faces[key] = &FaceFont{face: face}
					continue
				} else {
					log.Warn("cannot load font face",
						zap.String("font", path), zap.Int("size", size), zap.Error(ferr))
				}
			}
			s.faces[key] = &estimateFont{size: size}
		}
	}
	return s
}

// Font returns the handle for the nearest supported size and the given
// weight and style.
func (s *Service) Font(sizePx int, weight, style string) Font {
	return s.faces[fontKey{NearestSize(sizePx), weight, style}]
}

// FaceFont wraps a loaded font.Face. The painter type-asserts to it to
// reach the face for glyph drawing.
type FaceFont struct {
	face font.Face
}

func (f *FaceFont) Face() font.Face { return f.face }

func (f *FaceFont) Measure(text string) (int, int) {
	w := font.MeasureString(f.face, text).Ceil()
	m := f.face.Metrics()
	h := (m.Ascent + m.Descent).Ceil()
	return w, h
}

// estimateFont approximates metrics when no face is available.
type estimateFont struct {
	size int
}

func (f *estimateFont) Measure(text string) (int, int) {
	return len(text) * f.size * 6 / 10, f.size * 12 / 10
}
