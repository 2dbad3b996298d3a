// Package fonts loads TrueType faces, measures and shapes text with them and
// describes them as Type0/Identity-H fonts for embedding.
package fonts

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/AmerThamer/bkv-inspector-app/ir/semantic"
)

var (
	// ErrEmptyFont is returned when font data has no bytes.
	ErrEmptyFont = errors.New("truetype font data is empty")
	// ErrInvalidFont is returned when the font cannot be parsed.
	ErrInvalidFont = errors.New("invalid truetype font")
)

// Face is a parsed TrueType face. Widths are in 1/1000 em, the unit used by
// PDF glyph space. A Face caches shaping results and is not safe for
// concurrent use.
type Face struct {
	Name string
	Data []byte

	sf         *sfnt.Font
	unitsPerEm sfnt.Units
	widths     map[int]int
	descriptor *semantic.FontDescriptor

	shaper *shaper
	cache  map[string]float64
}

// LoadTrueType parses a TrueType font and extracts the metrics needed for
// measurement and embedding. The full font is embedded; no subsetting.
func LoadTrueType(name string, data []byte) (*Face, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFont
	}
	font, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFont, err)
	}
	unitsPerEm := font.UnitsPerEm()
	if unitsPerEm == 0 {
		return nil, fmt.Errorf("%w: unitsPerEm is zero", ErrInvalidFont)
	}
	buf := &sfnt.Buffer{}
	ppem := fixed.Int26_6(unitsPerEm << 6)

	baseName := strings.TrimSpace(name)
	if ps, _ := font.Name(buf, sfnt.NameIDPostScript); len(ps) > 0 {
		baseName = ps
	}
	if baseName == "" {
		baseName = "CustomTT"
	}

	metrics, _ := font.Metrics(buf, ppem, xfont.HintingNone)
	bounds, _ := font.Bounds(buf, ppem, xfont.HintingNone)
	angle := italicAngle(font)
	flags := 32 // nonsymbolic
	if angle != 0 {
		flags |= 64
	}

	f := &Face{
		Name:       baseName,
		Data:       data,
		sf:         font,
		unitsPerEm: unitsPerEm,
		widths:     glyphWidths(font, buf, unitsPerEm, ppem),
		cache:      make(map[string]float64),
	}
	f.descriptor = &semantic.FontDescriptor{
		FontName:    baseName,
		Flags:       flags,
		ItalicAngle: angle,
		Ascent:      scaleFixed(metrics.Ascent, unitsPerEm),
		Descent:     -scaleFixed(metrics.Descent, unitsPerEm),
		CapHeight:   scaleFixed(metrics.CapHeight, unitsPerEm),
		StemV:       80,
		FontBBox: [4]float64{
			scaleFixed(bounds.Min.X, unitsPerEm),
			-scaleFixed(bounds.Max.Y, unitsPerEm),
			scaleFixed(bounds.Max.X, unitsPerEm),
			-scaleFixed(bounds.Min.Y, unitsPerEm),
		},
		FontFile:     data,
		FontFileType: "FontFile2",
	}
	if f.descriptor.CapHeight == 0 {
		f.descriptor.CapHeight = f.descriptor.Ascent
	}
	return f, nil
}

// LoadFile reads and parses a TrueType font from disk.
func LoadFile(path string) (*Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", path, err)
	}
	return LoadTrueType(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), data)
}

// GlyphWidth returns the advance of a glyph in 1/1000 em.
func (f *Face) GlyphWidth(gid int) int {
	return f.widths[gid]
}

// Ascent returns the ascender in 1/1000 em.
func (f *Face) Ascent() float64 { return f.descriptor.Ascent }

// Descent returns the descender in 1/1000 em; negative below the baseline.
func (f *Face) Descent() float64 { return f.descriptor.Descent }

// Width returns the advance width of text set at size points.
func (f *Face) Width(text string, size float64) float64 {
	if text == "" || size <= 0 {
		return 0
	}
	units, ok := f.cache[text]
	if !ok {
		for _, g := range f.Shape(text).Glyphs {
			units += g.XAdvance
		}
		f.cache[text] = units
	}
	return units * size / 1000
}

// Semantic returns a fresh Type0/Identity-H font description for this face.
// The caller fills ToUnicode with the glyphs it actually draws.
func (f *Face) Semantic() *semantic.Font {
	defaultWidth := f.widths[0]
	if defaultWidth == 0 {
		defaultWidth = 1000
	}
	cidInfo := semantic.CIDSystemInfo{Registry: "Adobe", Ordering: "Identity", Supplement: 0}
	descendant := &semantic.CIDFont{
		Subtype:         "CIDFontType2",
		BaseFont:        f.Name,
		CIDSystemInfo:   cidInfo,
		DW:              defaultWidth,
		W:               make(map[int]int),
		CIDToGIDMapName: "Identity",
		Descriptor:      f.descriptor,
	}
	return &semantic.Font{
		Subtype:        "Type0",
		BaseFont:       f.Name,
		Encoding:       "Identity-H",
		Widths:         descendant.W,
		ToUnicode:      make(map[int][]rune),
		CIDSystemInfo:  &cidInfo,
		DescendantFont: descendant,
		Descriptor:     f.descriptor,
	}
}

func glyphWidths(font *sfnt.Font, buf *sfnt.Buffer, unitsPerEm sfnt.Units, ppem fixed.Int26_6) map[int]int {
	glyphs := font.NumGlyphs()
	widths := make(map[int]int, glyphs)
	for i := 0; i < glyphs; i++ {
		adv, err := font.GlyphAdvance(buf, sfnt.GlyphIndex(i), ppem, xfont.HintingNone)
		if err != nil {
			continue
		}
		widths[i] = int(math.Round(scaleFixed(adv, unitsPerEm)))
	}
	return widths
}

func italicAngle(font *sfnt.Font) float64 {
	post := font.PostTable()
	if post == nil {
		return 0
	}
	return post.ItalicAngle
}

func scaleFixed(val fixed.Int26_6, unitsPerEm sfnt.Units) float64 {
	return float64(val) * 1000.0 / (64.0 * float64(unitsPerEm))
}
