package fonts

import (
	"fmt"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// Paths names TrueType files for each text role. Empty entries fall back to
// the bundled Go fonts, which cover the Latin Extended-A letters Hungarian
// needs.
type Paths struct {
	Regular string
	Bold    string
	Title   string
	Italic  string
}

// Set holds one face per text role used by the report templates.
type Set struct {
	Regular *Face
	Bold    *Face
	Title   *Face
	Italic  *Face
}

// LoadSet loads every role, reading files where paths are given.
func LoadSet(p Paths) (*Set, error) {
	var s Set
	var err error
	if s.Regular, err = load(p.Regular, "GoRegular", goregular.TTF); err != nil {
		return nil, fmt.Errorf("regular font: %w", err)
	}
	if s.Bold, err = load(p.Bold, "GoBold", gobold.TTF); err != nil {
		return nil, fmt.Errorf("bold font: %w", err)
	}
	if p.Title == "" && p.Bold != "" {
		p.Title = p.Bold
	}
	if s.Title, err = load(p.Title, "GoBold", gobold.TTF); err != nil {
		return nil, fmt.Errorf("title font: %w", err)
	}
	if s.Italic, err = load(p.Italic, "GoItalic", goitalic.TTF); err != nil {
		return nil, fmt.Errorf("italic font: %w", err)
	}
	return &s, nil
}

// Default returns the bundled Go fonts.
func Default() *Set {
	s, err := LoadSet(Paths{})
	if err != nil {
		panic(err)
	}
	return s
}

func load(path, name string, fallback []byte) (*Face, error) {
	if path != "" {
		return LoadFile(path)
	}
	return LoadTrueType(name, fallback)
}
