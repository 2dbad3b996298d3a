package builder

import (
	"cmp"
	"errors"
	"fmt"
	"math"

	"github.com/AmerThamer/bkv-inspector-app/fonts"
	"github.com/AmerThamer/bkv-inspector-app/ir/semantic"
)

// ErrUnknownFont is recorded when text is drawn with a font name that was
// never registered. Build reports it.
var ErrUnknownFont = errors.New("font not registered")

// PDFBuilder provides a fluent API for PDF construction.
type PDFBuilder interface {
	NewPage(width, height float64) PageBuilder
	SetInfo(info *semantic.DocumentInfo) PDFBuilder
	SetLanguage(lang string) PDFBuilder
	RegisterFace(name string, face *fonts.Face) PDFBuilder
	MeasureText(text string, fontSize float64, fontName string) float64
	Build() (*semantic.Document, error)
}

// PageBuilder provides a fluent API for page construction. Coordinates are
// PDF user space: origin bottom-left, y up.
type PageBuilder interface {
	DrawText(text string, x, y float64, opts TextOptions) PageBuilder
	DrawImage(img *semantic.Image, x, y, width, height float64, opts ImageOptions) PageBuilder
	DrawLine(x1, y1, x2, y2 float64, opts LineOptions) PageBuilder
	Size() (width, height float64)
	Finish() PDFBuilder
}

// TextOptions configures text drawing.
type TextOptions struct {
	Font     string
	FontSize float64
	Color    Color
}

// LineOptions configures a stroked line. A zero LineWidth keeps the PDF
// default of 1.
type LineOptions struct {
	StrokeColor Color
	LineWidth   float64
	DashPattern []float64
	DashPhase   float64
}

// ImageOptions configures image drawing.
type ImageOptions struct {
	Interpolate bool
}

// Color is an RGB color with components in [0,1]. The zero value is black.
type Color struct {
	R, G, B float64
}

// RGB builds a Color from 8-bit components.
func RGB(r, g, b uint8) Color {
	return Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

type fontResource struct {
	face *fonts.Face
	font *semantic.Font
}

type builderImpl struct {
	pages        []*semantic.Page
	info         *semantic.DocumentInfo
	lang         string
	fonts        map[string]*fontResource
	defaultFont  string
	xobjectCount int
	xobjectNames map[*semantic.Image]string
	fontErr      error
}

type pageBuilderImpl struct {
	parent *builderImpl
	page   *semantic.Page
}

const defaultFontSize = 12

// NewBuilder constructs a PDFBuilder.
func NewBuilder() PDFBuilder { return &builderImpl{fonts: make(map[string]*fontResource)} }

func (b *builderImpl) NewPage(w, h float64) PageBuilder {
	p := &semantic.Page{MediaBox: semantic.Rectangle{LLX: 0, LLY: 0, URX: w, URY: h}}
	b.pages = append(b.pages, p)
	return &pageBuilderImpl{parent: b, page: p}
}

func (b *builderImpl) SetInfo(info *semantic.DocumentInfo) PDFBuilder {
	b.info = info
	return b
}

func (b *builderImpl) SetLanguage(lang string) PDFBuilder {
	b.lang = lang
	return b
}

func (b *builderImpl) RegisterFace(name string, face *fonts.Face) PDFBuilder {
	if face == nil {
		return b
	}
	b.fonts[name] = &fontResource{face: face, font: face.Semantic()}
	if b.defaultFont == "" {
		b.defaultFont = name
	}
	return b
}

// MeasureText returns the advance width of text in points, using the same
// shaping DrawText uses.
func (b *builderImpl) MeasureText(text string, fontSize float64, fontName string) float64 {
	res, _ := b.fontForName(fontName)
	if res == nil {
		return 0
	}
	if fontSize <= 0 {
		fontSize = defaultFontSize
	}
	return res.face.Width(text, fontSize)
}

func (b *builderImpl) Build() (*semantic.Document, error) {
	if b.fontErr != nil {
		return nil, b.fontErr
	}
	for i, p := range b.pages {
		p.Index = i
	}
	return &semantic.Document{
		Pages: b.pages,
		Info:  b.info,
		Lang:  b.lang,
	}, nil
}

func (p *pageBuilderImpl) DrawText(text string, x, y float64, opts TextOptions) PageBuilder {
	if text == "" {
		return p
	}
	res, fontName := p.parent.fontForName(opts.Font)
	if res == nil {
		p.parent.fontErr = fmt.Errorf("%w: %q", ErrUnknownFont, fontName)
		return p
	}
	resources := p.ensureResources()
	if _, ok := resources.Fonts[fontName]; !ok {
		resources.Fonts[fontName] = res.font
	}
	size := opts.FontSize
	if size <= 0 {
		size = defaultFontSize
	}

	ops := p.ensureContentOps()
	*ops = append(*ops, semantic.Operation{Operator: "q"})
	*ops = append(*ops, semantic.Operation{Operator: "BT"})
	*ops = append(*ops, semantic.Operation{
		Operator: "Tf",
		Operands: []semantic.Operand{semantic.NameOperand{Value: fontName}, semantic.NumberOperand{Value: size}},
	})
	*ops = append(*ops, op("Tm", 1, 0, 0, 1, x, y))
	p.appendColorOp(ops, opts.Color, false)
	*ops = append(*ops, semantic.Operation{
		Operator: "TJ",
		Operands: []semantic.Operand{encodeText(text, res)},
	})
	*ops = append(*ops, semantic.Operation{Operator: "ET"})
	*ops = append(*ops, semantic.Operation{Operator: "Q"})
	return p
}

func (p *pageBuilderImpl) DrawImage(img *semantic.Image, x, y, width, height float64, opts ImageOptions) PageBuilder {
	if img == nil {
		return p
	}
	res := p.ensureResources()

	name := p.parent.imageName(img)
	if _, exists := res.XObjects[name]; !exists {
		xobj := semantic.XObject(*img)
		xobj.Subtype = "Image"
		xobj.Interpolate = xobj.Interpolate || opts.Interpolate
		res.XObjects[name] = xobj
	}
	// A zero size draws at one point per pixel.
	w, h := cmp.Or(width, float64(img.Width)), cmp.Or(height, float64(img.Height))

	ops := p.ensureContentOps()
	*ops = append(*ops, semantic.Operation{Operator: "q"}, op("cm", w, 0, 0, h, x, y))
	*ops = append(*ops, semantic.Operation{
		Operator: "Do",
		Operands: []semantic.Operand{semantic.NameOperand{Value: name}},
	})
	*ops = append(*ops, semantic.Operation{Operator: "Q"})
	return p
}

func (p *pageBuilderImpl) DrawLine(x1, y1, x2, y2 float64, opts LineOptions) PageBuilder {
	ops := p.ensureContentOps()
	*ops = append(*ops, semantic.Operation{Operator: "q"})
	p.appendColorOp(ops, opts.StrokeColor, true)
	if opts.LineWidth > 0 {
		*ops = append(*ops, op("w", opts.LineWidth))
	}
	if len(opts.DashPattern) > 0 {
		dash := make([]semantic.Operand, len(opts.DashPattern))
		for i, v := range opts.DashPattern {
			dash[i] = semantic.NumberOperand{Value: v}
		}
		*ops = append(*ops, semantic.Operation{
			Operator: "d",
			Operands: []semantic.Operand{semantic.ArrayOperand{Values: dash}, semantic.NumberOperand{Value: opts.DashPhase}},
		})
	}
	*ops = append(*ops, op("m", x1, y1), op("l", x2, y2), semantic.Operation{Operator: "S"}, semantic.Operation{Operator: "Q"})
	return p
}

// op builds an operation with numeric operands.
func op(operator string, values ...float64) semantic.Operation {
	operands := make([]semantic.Operand, len(values))
	for i, v := range values {
		operands[i] = semantic.NumberOperand{Value: v}
	}
	return semantic.Operation{Operator: operator, Operands: operands}
}

func (p *pageBuilderImpl) Size() (float64, float64) {
	return p.page.MediaBox.Width(), p.page.MediaBox.Height()
}

func (p *pageBuilderImpl) Finish() PDFBuilder { return p.parent }

func (b *builderImpl) fontForName(name string) (*fontResource, string) {
	if name == "" {
		name = b.defaultFont
	}
	return b.fonts[name], name
}

func (b *builderImpl) imageName(img *semantic.Image) string {
	if b.xobjectNames == nil {
		b.xobjectNames = make(map[*semantic.Image]string)
	}
	if name, ok := b.xobjectNames[img]; ok {
		return name
	}
	b.xobjectCount++
	name := fmt.Sprintf("Im%d", b.xobjectCount)
	b.xobjectNames[img] = name
	return name
}

// encodeText shapes text and returns a TJ array of 2-byte glyph ids. The
// kerning numbers correct each glyph's W entry to its shaped advance, so the
// drawn width equals MeasureText. Used glyphs are recorded in the font's
// widths and ToUnicode map.
func encodeText(text string, res *fontResource) semantic.ArrayOperand {
	shaped := res.face.Shape(text)
	var arr semantic.ArrayOperand
	var run []byte
	flush := func() {
		if len(run) > 0 {
			arr.Values = append(arr.Values, semantic.StringOperand{Value: run, Hex: true})
			run = nil
		}
	}
	for i, g := range shaped.Glyphs {
		w := res.face.GlyphWidth(g.ID)
		res.font.Widths[g.ID] = w
		if _, ok := res.font.ToUnicode[g.ID]; !ok {
			if runes := clusterRunes(shaped, i); len(runes) > 0 {
				res.font.ToUnicode[g.ID] = runes
			}
		}
		run = append(run, byte(g.ID>>8), byte(g.ID))
		adj := math.Round((float64(w)-g.XAdvance)*100) / 100
		if adj != 0 {
			flush()
			arr.Values = append(arr.Values, semantic.NumberOperand{Value: adj})
		}
	}
	flush()
	return arr
}

// clusterRunes returns the source runes of the cluster glyph i starts, or
// nil when glyph i continues a cluster already mapped.
func clusterRunes(s fonts.Shaped, i int) []rune {
	start := s.Glyphs[i].Cluster
	if i > 0 && s.Glyphs[i-1].Cluster == start {
		return nil
	}
	end := len(s.Runes)
	for _, g := range s.Glyphs {
		if g.Cluster > start && g.Cluster < end {
			end = g.Cluster
		}
	}
	if start < 0 || start >= end {
		return nil
	}
	return append([]rune(nil), s.Runes[start:end]...)
}

func (p *pageBuilderImpl) ensureResources() *semantic.Resources {
	if p.page.Resources == nil {
		p.page.Resources = &semantic.Resources{}
	}
	if p.page.Resources.Fonts == nil {
		p.page.Resources.Fonts = make(map[string]*semantic.Font)
	}
	if p.page.Resources.XObjects == nil {
		p.page.Resources.XObjects = make(map[string]semantic.XObject)
	}
	return p.page.Resources
}

func (p *pageBuilderImpl) ensureContentOps() *[]semantic.Operation {
	if len(p.page.Contents) == 0 {
		p.page.Contents = append(p.page.Contents, semantic.ContentStream{})
	}
	return &p.page.Contents[0].Operations
}

func (p *pageBuilderImpl) appendColorOp(ops *[]semantic.Operation, c Color, stroking bool) {
	op := "rg"
	if stroking {
		op = "RG"
	}
	*ops = append(*ops, semantic.Operation{
		Operator: op,
		Operands: colorOperands(c),
	})
}

func colorOperands(c Color) []semantic.Operand {
	return []semantic.Operand{
		semantic.NumberOperand{Value: c.R},
		semantic.NumberOperand{Value: c.G},
		semantic.NumberOperand{Value: c.B},
	}
}
