package fonts

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func loadRegular(t *testing.T) *Face {
	t.Helper()
	face, err := LoadTrueType("GoRegular", goregular.TTF)
	if err != nil {
		t.Fatalf("load font: %v", err)
	}
	return face
}

func TestLoadTrueTypeMetrics(t *testing.T) {
	face := loadRegular(t)
	if face.Name == "" {
		t.Fatalf("expected a base font name")
	}
	if face.Ascent() <= 0 || face.Descent() >= 0 {
		t.Fatalf("unexpected ascent/descent %v/%v", face.Ascent(), face.Descent())
	}
	if w := face.GlyphWidth(0); w <= 0 {
		t.Fatalf("notdef width should be positive, got %d", w)
	}
}

func TestLoadTrueTypeErrors(t *testing.T) {
	if _, err := LoadTrueType("x", nil); !errors.Is(err, ErrEmptyFont) {
		t.Fatalf("expected ErrEmptyFont, got %v", err)
	}
	if _, err := LoadTrueType("x", []byte("not a font")); !errors.Is(err, ErrInvalidFont) {
		t.Fatalf("expected ErrInvalidFont, got %v", err)
	}
}

func TestWidthScalesWithSize(t *testing.T) {
	face := loadRegular(t)
	w10 := face.Width("Ellenőrzés", 10)
	w20 := face.Width("Ellenőrzés", 20)
	if w10 <= 0 {
		t.Fatalf("width should be positive")
	}
	if math.Abs(w20-2*w10) > 1e-9 {
		t.Fatalf("width not linear in size: %v vs %v", w10, w20)
	}
	if face.Width("", 12) != 0 || face.Width("abc", 0) != 0 {
		t.Fatalf("empty text or zero size must measure 0")
	}
}

func TestWidthIsAdditiveForSimpleLatin(t *testing.T) {
	face := loadRegular(t)
	a := face.Width("ab", 11.5)
	b := face.Width("a", 11.5) + face.Width("b", 11.5)
	if math.Abs(a-b) > 0.01 {
		t.Fatalf("expected additive widths, got %v vs %v", a, b)
	}
}

func TestShapeNormalizesToNFC(t *testing.T) {
	face := loadRegular(t)
	// o + combining double acute composes to a single rune.
	shaped := face.Shape("ő")
	if len(shaped.Runes) != 1 || shaped.Runes[0] != 'ő' {
		t.Fatalf("expected NFC composed rune, got %q", string(shaped.Runes))
	}
	if len(shaped.Glyphs) != 1 || shaped.Glyphs[0].ID == 0 {
		t.Fatalf("expected one real glyph, got %+v", shaped.Glyphs)
	}
}

func TestShapeHungarianHasNoMissingGlyphs(t *testing.T) {
	face := loadRegular(t)
	for _, g := range face.Shape("Árvíztűrő tükörfúrógép • – ŐŰ").Glyphs {
		if g.ID == 0 {
			t.Fatalf("missing glyph in shaped output: %+v", g)
		}
	}
}

func TestSemanticFontIsType0(t *testing.T) {
	font := loadRegular(t).Semantic()
	if font.Subtype != "Type0" || font.Encoding != "Identity-H" {
		t.Fatalf("unexpected font %s/%s", font.Subtype, font.Encoding)
	}
	if font.DescendantFont == nil || font.DescendantFont.Subtype != "CIDFontType2" {
		t.Fatalf("expected CIDFontType2 descendant")
	}
	if font.Descriptor.FontFileType != "FontFile2" || len(font.Descriptor.FontFile) == 0 {
		t.Fatalf("expected embedded FontFile2")
	}
}

func TestLoadSetDefaultsAndFiles(t *testing.T) {
	set := Default()
	if set.Regular == nil || set.Bold == nil || set.Title == nil || set.Italic == nil {
		t.Fatalf("default set incomplete: %+v", set)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "Custom.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o600); err != nil {
		t.Fatal(err)
	}
	set, err := LoadSet(Paths{Bold: path})
	if err != nil {
		t.Fatalf("load set: %v", err)
	}
	if set.Title.Name != set.Bold.Name {
		t.Fatalf("title should follow a custom bold font, got %q vs %q", set.Title.Name, set.Bold.Name)
	}

	if _, err := LoadSet(Paths{Italic: filepath.Join(dir, "missing.ttf")}); err == nil {
		t.Fatalf("expected error for missing font file")
	}
}
