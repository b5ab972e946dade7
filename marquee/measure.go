package marquee

import (
	"fmt"
	"math"
	"sync"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	// DefaultFamily is used when a Font names no family or an unknown one.
	DefaultFamily = "Go"
	// DefaultSize matches the usual system UI font size, in points.
	DefaultSize = 13.0
)

// Font describes how text is measured. The zero value is the default font.
type Font struct {
	Family string
	Size   float64
}

// Measurer returns the rendered width of text. It must return the same value
// for identical input.
type Measurer interface {
	Measure(text string, f Font) float64
}

// MeasureFunc adapts a function to Measurer.
type MeasureFunc func(text string, f Font) float64

// Measure calls fn(text, f).
func (fn MeasureFunc) Measure(text string, f Font) float64 {
	return fn(text, f)
}

type faceKey struct {
	family string
	size   float64
}

// FaceMeasurer measures text by summing glyph advances and kerning of an
// OpenType face at 72 DPI, so one length unit is one point.
type FaceMeasurer struct {
	mu    sync.Mutex
	fonts map[string]*opentype.Font
	faces map[faceKey]font.Face
}

// NewFaceMeasurer returns a measurer with the Go font families registered as
// "Go", "Go Mono" and "Go Bold".
func NewFaceMeasurer() *FaceMeasurer {
	m := &FaceMeasurer{
		fonts: make(map[string]*opentype.Font),
		faces: make(map[faceKey]font.Face),
	}
	for family, ttf := range map[string][]byte{
		DefaultFamily: goregular.TTF,
		"Go Mono":     gomono.TTF,
		"Go Bold":     gobold.TTF,
	} {
		// the embedded Go fonts always parse
		_ = m.Register(family, ttf)
	}
	return m
}

// Register makes an OpenType or TrueType font available under family.
func (m *FaceMeasurer) Register(family string, data []byte) error {
	otf, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("failed to parse font %q: %w", family, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.fonts[family] = otf
	for key, face := range m.faces {
		if key.family == family {
			face.Close()
			delete(m.faces, key)
		}
	}
	return nil
}

// Measure returns the advance width of text in points. Unknown families fall
// back to DefaultFamily.
func (m *FaceMeasurer) Measure(text string, f Font) float64 {
	if text == "" {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	face := m.face(f)
	if face == nil {
		return 0
	}
	return fixedToFloat(font.MeasureString(face, text))
}

// face must be called with m.mu held.
func (m *FaceMeasurer) face(f Font) font.Face {
	family := f.Family
	otf, ok := m.fonts[family]
	if !ok {
		family = DefaultFamily
		otf, ok = m.fonts[family]
		if !ok {
			return nil
		}
	}
	size := f.Size
	if size <= 0 || math.IsNaN(size) || math.IsInf(size, 0) {
		size = DefaultSize
	}

	key := faceKey{family: family, size: size}
	if face, ok := m.faces[key]; ok {
		return face
	}
	face, err := opentype.NewFace(otf, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		if family != DefaultFamily {
			return m.face(Font{Family: DefaultFamily, Size: size})
		}
		return nil
	}
	m.faces[key] = face
	return face
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// CellMeasurer measures text in terminal cells. The font is ignored.
type CellMeasurer struct{}

// Measure returns the number of cells text occupies.
func (CellMeasurer) Measure(text string, _ Font) float64 {
	return float64(Cells(text))
}

// Cells returns the terminal width of s, counting each grapheme cluster once.
func Cells(s string) int {
	n := 0
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		n += ClusterCells(gr.Str())
	}
	return n
}

// ClusterCells returns the width of one grapheme cluster: the width of its
// first visible rune.
func ClusterCells(cluster string) int {
	for _, r := range cluster {
		if w := runewidth.RuneWidth(r); w > 0 {
			return w
		}
	}
	return 0
}
