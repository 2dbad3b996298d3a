package fonts_test

import (
	"testing"

	"github.com/go-text/typesetting/language"

	"github.com/AmerThamer/bkv-inspector-app/fonts"
)

func TestDetectScript(t *testing.T) {
	tests := map[string]language.Script{
		"":                         language.Latin,
		"12:30 - 13:45":            language.Latin,
		"Árvíztűrő tükörfúrógép":   language.Latin,
		"Привет мир":               language.Cyrillic,
		"Γειά σου Κόσμε":           language.Greek,
		"Astoria – Keleti, 7":      language.Latin,
		"Hello World مرحبا":        language.Latin,
		"مرحبا بالعالم Hello":      language.Arabic,
	}
	for in, want := range tests {
		if got := fonts.DetectScript([]rune(in)); got != want {
			t.Errorf("DetectScript(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestShapeKeepsClustersInOrder(t *testing.T) {
	face := fonts.Default().Regular
	shaped := face.Shape("Őrs vezér tere")
	if len(shaped.Glyphs) == 0 {
		t.Fatal("no glyphs")
	}
	prev := -1
	for _, g := range shaped.Glyphs {
		if g.Cluster < prev || g.Cluster >= len(shaped.Runes) {
			t.Fatalf("cluster %d out of order or range (prev %d, runes %d)", g.Cluster, prev, len(shaped.Runes))
		}
		if g.ID == 0 {
			t.Errorf("missing glyph for rune %q", shaped.Runes[g.Cluster])
		}
		prev = g.Cluster
	}
}
