package report

import (
	"fmt"

	"github.com/AmerThamer/bkv-inspector-app/builder"
)

// Font resource names registered with the builder.
const (
	FontRegular = "Regular"
	FontBold    = "Bold"
	FontTitle   = "Title"
	FontItalic  = "Italic"
)

var (
	ink      = builder.RGB(0, 0, 0)
	muted    = builder.RGB(90, 90, 90)
	positive = builder.RGB(0x00, 0x96, 0x00)
	negative = builder.RGB(0xB4, 0x00, 0x00)
)

// TextStyle selects a font, a size and a color.
type TextStyle struct {
	Font  string
	Size  float64
	Color builder.Color
}

func (s TextStyle) options() builder.TextOptions {
	return builder.TextOptions{Font: s.Font, FontSize: s.Size, Color: s.Color}
}

// BlockKind names a block a template is made of.
type BlockKind int

const (
	BlockHeaderImage BlockKind = iota
	BlockTitle
	BlockMetadata
	BlockNarrative
	BlockRule
	BlockColumns
	BlockNotes
	BlockClosing
	BlockFooter
)

// Align is a horizontal text alignment.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
)

// Metrics are the sizes and distances a template draws with. Vertical
// distances are baseline advances in points.
type Metrics struct {
	Title   TextStyle
	Heading TextStyle
	Body    TextStyle
	Caption TextStyle
	Closing TextStyle

	// TitleMinY is the lowest allowed title baseline; TitleAdvance moves
	// from the title baseline to the next block.
	TitleMinY    float64
	TitleAdvance float64
	TitleRule    bool

	LineStep  float64
	RowGap    float64
	RowSafety float64

	RuleWidth   float64
	RuleOffset  float64
	RuleAdvance float64

	NarrativeStep  float64
	NarrativeAfter float64

	ColumnGap      float64
	RightColumnX   float64
	ColumnsNeed    float64
	HeadingAdvance float64
	BulletIndent   float64
	ItemGap        float64
	ColumnsAfter   float64

	NotesNeed    float64
	NotesAdvance float64
	NotesStep    float64
	NotesColon   bool

	HeaderImageMaxFraction float64
	HeaderImageGap         float64

	ClosingY       float64
	FooterBaseline float64
}

// Template describes one report layout: which blocks appear in which order,
// whether content breaks onto new pages and how it is styled.
type Template struct {
	Name       string
	Blocks     []BlockKind
	Paginate   bool
	TitleAlign Align
	Bullet     string
	Metrics    Metrics

	// KindTitle ignores ReportData.HeaderTitle and always titles the report
	// after the inspection kind.
	KindTitle bool
	// FileCode selects whose code is appended to the output file name.
	FileCode CodeSource
}

// CodeSource names the person whose code goes into the file name.
type CodeSource int

const (
	CodeInspector CodeSource = iota
	CodeDriver
)

// Title returns the title the template prints for d.
func (t Template) Title(d ReportData, l Labels) string {
	if t.KindTitle || d.HeaderTitle == "" {
		return l.TitleFor(d.Kind)
	}
	return d.HeaderTitle
}

// FileNameCode returns the code appended to the output file name for d.
func (t Template) FileNameCode(d ReportData) string {
	if t.FileCode == CodeDriver {
		return d.DriverCode
	}
	return d.InspectorCode
}

// Has reports whether the template contains kind.
func (t Template) Has(kind BlockKind) bool {
	for _, k := range t.Blocks {
		if k == kind {
			return true
		}
	}
	return false
}

// Structured is the multi-page report: title with date, key-value metadata,
// two bulleted observation columns, notes and a footer on every page.
var Structured = Template{
	Name:       "structured",
	Blocks:     []BlockKind{BlockTitle, BlockMetadata, BlockRule, BlockColumns, BlockNotes, BlockFooter},
	Paginate:   true,
	TitleAlign: AlignLeft,
	Bullet:     "•",
	Metrics: Metrics{
		Title:   TextStyle{Font: FontTitle, Size: 18, Color: ink},
		Heading: TextStyle{Font: FontBold, Size: 14, Color: ink},
		Body:    TextStyle{Font: FontRegular, Size: 11.5, Color: ink},
		Caption: TextStyle{Font: FontRegular, Size: 9.5, Color: muted},

		TitleAdvance: 26 + 12,
		TitleRule:    true,

		LineStep:  11.5 + 4,
		RowGap:    6,
		RowSafety: 116,

		RuleWidth:   0.8,
		RuleOffset:  6,
		RuleAdvance: 18,

		ColumnGap:      24,
		ColumnsNeed:    28,
		HeadingAdvance: 12,
		BulletIndent:   11.5,
		ItemGap:        2,
		ColumnsAfter:   10,

		NotesNeed:    24,
		NotesAdvance: 10,
		NotesStep:    11.5 + 5,

		FooterBaseline: 842 - 20,
	},
}

// Classic is the single-page letter layout: optional letterhead image, a
// centered title, a narrative paragraph, dashed observation columns, notes
// and a closing line. Content that does not fit on the page is dropped.
var Classic = Template{
	Name:       "classic",
	Blocks:     []BlockKind{BlockHeaderImage, BlockTitle, BlockNarrative, BlockColumns, BlockNotes, BlockClosing},
	Paginate:   false,
	TitleAlign: AlignCenter,
	Bullet:     "-",
	KindTitle:  true,
	FileCode:   CodeDriver,
	Metrics: Metrics{
		Title:   TextStyle{Font: FontTitle, Size: 20, Color: ink},
		Heading: TextStyle{Font: FontBold, Size: 12, Color: ink},
		Body:    TextStyle{Font: FontRegular, Size: 12, Color: ink},
		Caption: TextStyle{Font: FontRegular, Size: 9.5, Color: muted},
		Closing: TextStyle{Font: FontItalic, Size: 12, Color: ink},

		TitleMinY:    80,
		TitleAdvance: 30,

		LineStep: 22,

		NarrativeStep:  22,
		NarrativeAfter: 16,

		ColumnGap:      24,
		RightColumnX:   290,
		HeadingAdvance: 22,
		ColumnsAfter:   18,

		NotesAdvance: 22,
		NotesStep:    22,
		NotesColon:   true,

		HeaderImageMaxFraction: 0.25,
		HeaderImageGap:         18,

		ClosingY: 780,
	},
}

// TemplateByName returns Structured or Classic.
func TemplateByName(name string) (Template, error) {
	switch name {
	case "", Structured.Name:
		return Structured, nil
	case Classic.Name:
		return Classic, nil
	}
	return Template{}, fmt.Errorf("unknown template %q", name)
}
