package report

import (
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/AmerThamer/bkv-inspector-app/builder"
	"github.com/AmerThamer/bkv-inspector-app/fonts"
	"github.com/AmerThamer/bkv-inspector-app/ir/semantic"
	"github.com/AmerThamer/bkv-inspector-app/layout"
	"github.com/AmerThamer/bkv-inspector-app/observability"
)

const (
	dateLayout    = "2006.01.02"
	closingLayout = "2006.01.02. 15:04"

	// producer is written to the document information dictionary.
	producer = "bkv-inspector-app"

	// Header images are resampled to at most twice the content width in
	// pixels before embedding.
	headerImageScale = 2
)

// Result is a rendered report.
type Result struct {
	Document *semantic.Document
	Pages    int
}

// Renderer turns ReportData into a semantic document. A Renderer may be
// reused; each Render loads its own fonts.
type Renderer struct {
	template   Template
	labels     Labels
	fontPaths  fonts.Paths
	headerPath string
	header     image.Image
	now        func() time.Time
	logger     observability.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTemplate selects the layout. Structured is the default.
func WithTemplate(t Template) Option {
	return func(r *Renderer) { r.template = t }
}

// WithLabels selects the printed strings. LabelsHU is the default.
func WithLabels(l Labels) Option {
	return func(r *Renderer) { r.labels = l }
}

// WithFonts reads faces from the given files instead of the bundled Go fonts.
func WithFonts(p fonts.Paths) Option {
	return func(r *Renderer) { r.fontPaths = p }
}

// WithHeaderImageFile sets the letterhead for templates that show one. A
// file that cannot be read is logged and left out.
func WithHeaderImageFile(path string) Option {
	return func(r *Renderer) { r.headerPath = path }
}

// WithHeaderImage sets an already decoded letterhead.
func WithHeaderImage(img image.Image) Option {
	return func(r *Renderer) { r.header = img }
}

// WithClock replaces time.Now for footers, closing lines and metadata.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) { r.now = now }
}

// WithLogger sets the logger.
func WithLogger(l observability.Logger) Option {
	return func(r *Renderer) { r.logger = l }
}

// NewRenderer returns a renderer for the structured template with Hungarian
// labels unless options say otherwise.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		template: Structured,
		labels:   LabelsHU,
		now:      time.Now,
		logger:   observability.NopLogger{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Template returns the template the renderer draws with.
func (r *Renderer) Template() Template { return r.template }

// Render lays out data and returns the document with its page count.
func (r *Renderer) Render(data ReportData) (*Result, error) {
	return r.render(data, r.now())
}

func (r *Renderer) render(data ReportData, now time.Time) (*Result, error) {
	ctx, err := r.newContext(data, now)
	if err != nil {
		return nil, err
	}
	cur := ctx.pages.Begin()
	for _, blk := range r.blocks(ctx) {
		cur = blk.Draw(ctx, cur)
	}
	pages := ctx.pages.Finish()

	doc, err := ctx.b.Build()
	if err != nil {
		return nil, fmt.Errorf("build document: %w", err)
	}
	return &Result{Document: doc, Pages: pages}, nil
}

// newContext loads fonts, prepares a builder and a paginator for one render.
func (r *Renderer) newContext(data ReportData, now time.Time) (*Context, error) {
	set, err := fonts.LoadSet(r.fontPaths)
	if err != nil {
		return nil, fmt.Errorf("load fonts: %w", err)
	}
	b := builder.NewBuilder().
		RegisterFace(FontRegular, set.Regular).
		RegisterFace(FontBold, set.Bold).
		RegisterFace(FontTitle, set.Title).
		RegisterFace(FontItalic, set.Italic).
		SetLanguage(r.labels.Lang)

	if data.DateStr == "" {
		data.DateStr = now.Format(dateLayout)
	}
	data.HeaderTitle = r.template.Title(data, r.labels)
	b.SetInfo(&semantic.DocumentInfo{
		Title:        data.HeaderTitle,
		Author:       data.Inspector().Display(),
		Subject:      r.labels.SubjectFor(data.Kind),
		Creator:      producer,
		Producer:     producer,
		Keywords:     nonEmpty(data.Line, data.DriverCode, data.VehicleCode),
		CreationDate: now,
	})

	ctx := &Context{
		Data:     data,
		Labels:   r.labels,
		Template: r.template,
		Geometry: layout.A4Geometry(),
		Now:      now,
		b:        b,
		logger:   r.logger,
	}
	if r.template.Has(BlockHeaderImage) {
		ctx.header = r.headerImage(ctx.Geometry)
	}

	var opts []layout.Option
	if r.template.Has(BlockFooter) {
		opts = append(opts, layout.WithFooter(func(_ builder.PageBuilder, n int) {
			FooterBlock{PageNumber: n}.Draw(ctx, layout.Cursor{Page: n})
		}))
	}
	if !r.template.Paginate {
		opts = append(opts, layout.WithSinglePage())
	}
	ctx.pages = layout.NewPaginator(b, ctx.Geometry, opts...)
	return ctx, nil
}

// blocks expands the template into concrete blocks for ctx.Data.
func (r *Renderer) blocks(ctx *Context) []Block {
	data := ctx.Data
	l := ctx.Labels
	var out []Block
	for _, kind := range r.template.Blocks {
		switch kind {
		case BlockHeaderImage:
			if ctx.header != nil {
				out = append(out, HeaderImageBlock{Image: ctx.header})
			}
		case BlockTitle:
			tb := TitleBlock{Text: data.HeaderTitle}
			if r.template.TitleAlign == AlignLeft {
				tb.Date = data.DateStr
			}
			out = append(out, tb)
		case BlockMetadata:
			out = append(out,
				KeyValueBlock{Key: l.Inspector, Value: data.Inspector().Display()},
				KeyValueBlock{Key: l.Driver, Value: data.Driver().Display()},
				KeyValueBlock{Key: l.Line, Value: data.Line},
				KeyValueBlock{Key: l.Segment, Value: segment(data)},
			)
		case BlockNarrative:
			out = append(out, NarrativeBlock{Lines: narrative(data, l)})
		case BlockRule:
			out = append(out, RuleBlock{})
		case BlockColumns:
			out = append(out, ColumnListBlock{Columns: [2]Column{
				{Heading: l.Positives, Items: data.Positives, Color: positive},
				{Heading: l.Negatives, Items: data.Negatives, Color: negative},
			}})
		case BlockNotes:
			out = append(out, NotesBlock{Text: data.Notes})
		case BlockClosing:
			out = append(out, ClosingBlock{Text: l.Closed + ": " + ctx.Now.Format(closingLayout)})
		case BlockFooter:
			// Drawn by the paginator as each page is finished.
		}
	}
	return out
}

func (r *Renderer) headerImage(g layout.Geometry) *semantic.Image {
	img := r.header
	if img == nil && r.headerPath != "" {
		var err error
		if img, err = builder.DecodeFile(r.headerPath); err != nil {
			r.logger.Warn("header image skipped",
				observability.String("path", r.headerPath),
				observability.Error("error", err))
			return nil
		}
	}
	if img == nil {
		return nil
	}
	if px := img.Bounds().Dx(); px > 0 {
		r.logger.Debug("header image scaled",
			observability.Int("width_px", px),
			observability.Float("scale", g.ContentWidth()/float64(px)))
	}
	maxW := int(g.ContentWidth()) * headerImageScale
	maxH := int(g.PageHeight*r.template.Metrics.HeaderImageMaxFraction) * headerImageScale
	return builder.FromImage(builder.Downscale(img, maxW, maxH))
}

// segment is "startTime startLoc – endTime endLoc".
func segment(d ReportData) string {
	start := strings.TrimSpace(d.StartTime + " " + d.StartLoc)
	end := strings.TrimSpace(d.EndTime + " " + d.EndLoc)
	return start + " – " + end
}

// narrative is the classic template's body text.
func narrative(d ReportData, l Labels) []string {
	return []string{
		l.Place + ": " + d.StartLoc + " -> " + d.EndLoc,
		l.Time + ": " + d.DateStr + " " + d.StartTime + " -> " + d.EndTime,
		l.PerformedBy + ": " + d.InspectorName,
		l.CardNumber + ": " + d.InspectorCode,
		l.Subject + ": " + l.SubjectFor(d.Kind),
		"",
		l.Details,
		"",
		l.DriverName + ": " + d.Driver().Display() + " " + l.Line + ": " + d.Line + " " + l.Vehicle + ": " + d.VehicleCode,
		l.Start + ": " + d.StartLoc + " " + d.StartTime,
		l.End + ": " + d.EndLoc + " " + d.EndTime,
		"",
		l.Findings,
	}
}

func nonEmpty(values ...string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
