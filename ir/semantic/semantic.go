// Package semantic models a PDF document at the level the builder produces
// and the writer consumes: pages, content operations, fonts and images.
package semantic

import "time"

// Document is the semantic representation of a PDF.
type Document struct {
	Pages []*Page
	Info  *DocumentInfo
	Lang  string
}

// Page models a single PDF page.
type Page struct {
	Index     int
	MediaBox  Rectangle
	Resources *Resources
	Contents  []ContentStream
}

// ContentStream is a sequence of operations on a page.
type ContentStream struct {
	Operations []Operation
}

// Operation represents a PDF operator and operands.
type Operation struct {
	Operator string
	Operands []Operand
}

// Operand is a type-safe operand value.
type Operand interface {
	operand()
	Type() string
}

type NumberOperand struct{ Value float64 }

func (NumberOperand) operand()     {}
func (NumberOperand) Type() string { return "number" }

type NameOperand struct{ Value string }

func (NameOperand) operand()     {}
func (NameOperand) Type() string { return "name" }

// StringOperand is written as a literal string unless Hex is set.
type StringOperand struct {
	Value []byte
	Hex   bool
}

func (StringOperand) operand()     {}
func (StringOperand) Type() string { return "string" }

type ArrayOperand struct{ Values []Operand }

func (ArrayOperand) operand()     {}
func (ArrayOperand) Type() string { return "array" }

// Resources holds per-page resources.
type Resources struct {
	Fonts    map[string]*Font
	XObjects map[string]XObject
}

// Font represents a font resource. Only Type0/Identity-H TrueType fonts are
// produced; Widths and ToUnicode are keyed by CID (which equals the glyph id).
type Font struct {
	Subtype        string
	BaseFont       string
	Encoding       string
	Widths         map[int]int
	ToUnicode      map[int][]rune
	CIDSystemInfo  *CIDSystemInfo
	DescendantFont *CIDFont
	Descriptor     *FontDescriptor
}

// CIDSystemInfo describes the registry/ordering of a CID font.
type CIDSystemInfo struct {
	Registry   string
	Ordering   string
	Supplement int
}

// CIDFont describes a descendant font for Type0 fonts.
type CIDFont struct {
	Subtype         string // CIDFontType2
	BaseFont        string
	CIDSystemInfo   CIDSystemInfo
	DW              int
	W               map[int]int // CID -> width
	CIDToGIDMapName string      // "Identity"
	Descriptor      *FontDescriptor
}

// FontDescriptor carries metrics and font file embedding details.
type FontDescriptor struct {
	FontName     string
	Flags        int
	ItalicAngle  float64
	Ascent       float64
	Descent      float64
	CapHeight    float64
	StemV        int
	FontBBox     [4]float64
	FontFile     []byte
	FontFileType string // FontFile2
}

// ColorSpace is implemented by the color spaces images may use.
type ColorSpace interface {
	ColorSpaceName() string
}

// DeviceColorSpace is one of DeviceRGB, DeviceGray, DeviceCMYK.
type DeviceColorSpace struct{ Name string }

func (cs DeviceColorSpace) ColorSpaceName() string { return cs.Name }

// XObject is an image external object.
type XObject struct {
	Subtype string
	Width   int
	Height  int
	ColorSpace
	BitsPerComponent int
	Data             []byte
	Interpolate      bool
	SMask            *XObject
}

// Image is an alias for XObject for image convenience APIs.
type Image = XObject

type Rectangle struct {
	LLX, LLY, URX, URY float64
}

// Width of the rectangle.
func (r Rectangle) Width() float64 { return r.URX - r.LLX }

// Height of the rectangle.
func (r Rectangle) Height() float64 { return r.URY - r.LLY }

// DocumentInfo models /Info dictionary values.
type DocumentInfo struct {
	Title        string
	Author       string
	Subject      string
	Creator      string
	Producer     string
	Keywords     []string
	CreationDate time.Time
}
