package fonts

import (
	"bytes"

	"github.com/go-text/typesetting/di"
	gofont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"
)

// Glyph is a single shaped glyph. Advances and offsets are in 1/1000 em.
type Glyph struct {
	ID       int
	Cluster  int
	XAdvance float64
	XOffset  float64
	YOffset  float64
}

// Shaped is the result of shaping one run of text. Glyph clusters index
// into Runes, which hold the NFC-normalized input.
type Shaped struct {
	Runes  []rune
	Glyphs []Glyph
}

type shaper struct {
	face *gofont.Face
	hb   shaping.HarfbuzzShaper
}

// Shape normalizes text to NFC and shapes it with HarfBuzz. Text the face
// cannot be parsed for falls back to one glyph per rune from the cmap.
func (f *Face) Shape(text string) Shaped {
	runes := []rune(norm.NFC.String(text))
	out := Shaped{Runes: runes}
	if len(runes) == 0 {
		return out
	}
	if f.shaper == nil {
		face, err := gofont.ParseTTF(bytes.NewReader(f.Data))
		if err != nil {
			return f.cmapShape(out)
		}
		f.shaper = &shaper{face: face}
	}

	script := DetectScript(runes)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: scriptDirection(script),
		Face:      f.shaper.face,
		// 1 em = 1000 units, so advances come back in glyph space.
		Size:     fixed.Int26_6(1000 * 64),
		Script:   script,
		Language: language.DefaultLanguage(),
	}
	output := f.shaper.hb.Shape(input)
	out.Glyphs = make([]Glyph, 0, len(output.Glyphs))
	for _, g := range output.Glyphs {
		out.Glyphs = append(out.Glyphs, Glyph{
			ID:       int(g.GlyphID),
			Cluster:  g.ClusterIndex,
			XAdvance: float64(g.XAdvance) / 64.0,
			XOffset:  float64(g.XOffset) / 64.0,
			YOffset:  float64(g.YOffset) / 64.0,
		})
	}
	return out
}

func (f *Face) cmapShape(out Shaped) Shaped {
	out.Glyphs = make([]Glyph, 0, len(out.Runes))
	for i, r := range out.Runes {
		gid, err := f.sf.GlyphIndex(nil, r)
		if err != nil {
			gid = 0
		}
		out.Glyphs = append(out.Glyphs, Glyph{
			ID:       int(gid),
			Cluster:  i,
			XAdvance: float64(f.widths[int(gid)]),
		})
	}
	return out
}

func scriptDirection(script language.Script) di.Direction {
	switch script {
	case language.Arabic, language.Hebrew, language.Syriac, language.Thaana, language.Nko:
		return di.DirectionRTL
	default:
		return di.DirectionLTR
	}
}

// DetectScript returns the most frequent script in runes. Digits,
// punctuation and combining marks do not vote; Latin wins when nothing does.
func DetectScript(runes []rune) language.Script {
	counts := make(map[language.Script]int)
	best, bestCount := language.Latin, 0
	for _, r := range runes {
		script := language.LookupScript(r)
		switch script {
		case language.Common, language.Inherited, language.Unknown:
			continue
		}
		counts[script]++
		if counts[script] > bestCount {
			best, bestCount = script, counts[script]
		}
	}
	return best
}
