package report

import (
	"strconv"
	"strings"

	"github.com/AmerThamer/bkv-inspector-app/builder"
	"github.com/AmerThamer/bkv-inspector-app/ir/semantic"
	"github.com/AmerThamer/bkv-inspector-app/layout"
)

// Block is one part of a report. Height measures it without drawing; Draw
// renders it starting at cur and returns where the next block starts.
type Block interface {
	Height(ctx *Context) float64
	Draw(ctx *Context, cur layout.Cursor) layout.Cursor
}

// titleRuleOffset places the rule under the title baseline.
const titleRuleOffset = 16

// TitleBlock is the report title. Date, when set, is printed right-aligned
// on the title baseline.
type TitleBlock struct {
	Text string
	Date string
}

func (b TitleBlock) Height(ctx *Context) float64 {
	return ctx.Metrics().TitleAdvance
}

func (b TitleBlock) Draw(ctx *Context, cur layout.Cursor) layout.Cursor {
	m := ctx.Metrics()
	cur.Y = max(cur.Y, m.TitleMinY)
	x := ctx.Geometry.MarginLeft
	if ctx.Template.TitleAlign == AlignCenter {
		x += (ctx.Geometry.ContentWidth() - ctx.Width(b.Text, m.Title)) / 2
	}
	ctx.Text(cur, x, b.Text, m.Title)
	if b.Date != "" {
		ctx.TextRight(cur, ctx.Labels.Date+": "+b.Date, m.Caption)
	}
	if m.TitleRule {
		ctx.Rule(cur.Down(titleRuleOffset))
	}
	return cur.Down(m.TitleAdvance)
}

// KeyValueBlock is one metadata row: a bold key and a wrapped value whose
// continuation lines start at the left margin.
type KeyValueBlock struct {
	Key   string
	Value string
}

func (b KeyValueBlock) keyWidth(ctx *Context) float64 {
	return ctx.Width(b.Key+": ", ctx.Metrics().Heading)
}

func (b KeyValueBlock) lines(ctx *Context) []string {
	return ctx.Wrap(b.Value, ctx.Metrics().Body, ctx.Geometry.ContentWidth()-b.keyWidth(ctx))
}

func (b KeyValueBlock) Height(ctx *Context) float64 {
	m := ctx.Metrics()
	return m.LineStep*float64(max(1, len(b.lines(ctx)))) + m.RowGap
}

func (b KeyValueBlock) Draw(ctx *Context, cur layout.Cursor) layout.Cursor {
	m := ctx.Metrics()
	lines := b.lines(ctx)
	rowHeight := m.LineStep * float64(max(1, len(lines)))
	cur, ok := ctx.Reserve(cur, min(max(m.RowSafety, rowHeight), ctx.pageSpan()))
	if !ok {
		return cur
	}
	left := ctx.Geometry.MarginLeft
	keyWidth := b.keyWidth(ctx)
	ctx.Text(cur, left, b.Key+":", m.Heading)
	row := cur
	for i, line := range lines {
		x := left
		if i == 0 {
			x += keyWidth
		} else {
			if row, ok = ctx.Reserve(row.Down(m.LineStep), m.LineStep); !ok {
				break
			}
		}
		ctx.Text(row, x, line, m.Body)
	}
	return row.Down(m.LineStep + m.RowGap)
}

// RuleBlock is a thin divider.
type RuleBlock struct{}

func (RuleBlock) Height(ctx *Context) float64 { return ctx.Metrics().RuleAdvance }

func (RuleBlock) Draw(ctx *Context, cur layout.Cursor) layout.Cursor {
	m := ctx.Metrics()
	cur, ok := ctx.Reserve(cur, m.RuleAdvance)
	if ok {
		ctx.Rule(cur.Down(m.RuleOffset))
	}
	return cur.Down(m.RuleAdvance)
}

// Column is one side of a ColumnListBlock.
type Column struct {
	Heading string
	Items   []string
	Color   builder.Color
}

// ColumnListBlock draws two bulleted lists side by side. Both columns start
// at the same cursor and break pages on their own; the block ends below the
// longer one.
type ColumnListBlock struct {
	Columns [2]Column
}

// columnBox returns the x position and width of column i.
func (b ColumnListBlock) columnBox(ctx *Context, i int) (x, width float64) {
	m := ctx.Metrics()
	g := ctx.Geometry
	rightX := g.MarginLeft + (g.ContentWidth()-m.ColumnGap)/2 + m.ColumnGap
	if m.RightColumnX > 0 {
		rightX = m.RightColumnX
	}
	if i == 0 {
		return g.MarginLeft, rightX - m.ColumnGap - g.MarginLeft
	}
	return rightX, g.Right() - rightX
}

func (b ColumnListBlock) indent(ctx *Context) float64 {
	m := ctx.Metrics()
	if m.BulletIndent > 0 {
		return m.BulletIndent
	}
	return ctx.Width(ctx.Template.Bullet+" ", m.Body)
}

func (b ColumnListBlock) Height(ctx *Context) float64 {
	m := ctx.Metrics()
	var tallest float64
	for i, col := range b.Columns {
		_, width := b.columnBox(ctx, i)
		var h float64
		for _, item := range col.Items {
			if n := len(ctx.Wrap(item, m.Body, width-b.indent(ctx))); n > 0 {
				h += float64(n)*m.LineStep + m.ItemGap
			}
		}
		tallest = max(tallest, h)
	}
	return m.HeadingAdvance + tallest + m.ColumnsAfter
}

func (b ColumnListBlock) Draw(ctx *Context, cur layout.Cursor) layout.Cursor {
	m := ctx.Metrics()
	need := m.ColumnsNeed
	if need == 0 {
		need = m.HeadingAdvance
	}
	cur, ok := ctx.Reserve(cur, need)
	if !ok {
		return cur
	}
	for i, col := range b.Columns {
		x, _ := b.columnBox(ctx, i)
		ctx.Text(cur, x, col.Heading, m.Heading)
	}
	start := cur.Down(m.HeadingAdvance)
	end := start
	for i := range b.Columns {
		end = layout.Later(end, b.drawColumn(ctx, start, i))
	}
	return end.Down(m.ColumnsAfter)
}

func (b ColumnListBlock) drawColumn(ctx *Context, cur layout.Cursor, i int) layout.Cursor {
	m := ctx.Metrics()
	col := b.Columns[i]
	x, width := b.columnBox(ctx, i)
	indent := b.indent(ctx)
	style := m.Body
	style.Color = col.Color

	for _, item := range col.Items {
		lines := ctx.Wrap(item, style, width-indent)
		if len(lines) == 0 {
			continue
		}
		// Items taller than a page reserve room line by line.
		need := float64(len(lines)) * m.LineStep
		whole := need <= ctx.pageSpan()
		ok := true
		if whole {
			cur, ok = ctx.Reserve(cur, need)
		}
		for j, line := range lines {
			if !whole {
				cur, ok = ctx.Reserve(cur, m.LineStep)
			}
			if !ok {
				break
			}
			if j == 0 {
				ctx.Text(cur, x, ctx.Template.Bullet, style)
			}
			ctx.Text(cur, x+indent, line, style)
			cur = cur.Down(m.LineStep)
		}
		if ok {
			cur = cur.Down(m.ItemGap)
		}
	}
	return cur
}

// NotesBlock is the free-text remark under a heading. Blank text draws
// nothing.
type NotesBlock struct {
	Text string
}

func (b NotesBlock) heading(ctx *Context) string {
	if ctx.Metrics().NotesColon {
		return ctx.Labels.Notes + ":"
	}
	return ctx.Labels.Notes
}

func (b NotesBlock) Height(ctx *Context) float64 {
	if strings.TrimSpace(b.Text) == "" {
		return 0
	}
	m := ctx.Metrics()
	lines := ctx.Wrap(b.Text, m.Body, ctx.Geometry.ContentWidth())
	return m.NotesAdvance + float64(len(lines))*m.NotesStep
}

func (b NotesBlock) Draw(ctx *Context, cur layout.Cursor) layout.Cursor {
	if strings.TrimSpace(b.Text) == "" {
		return cur
	}
	m := ctx.Metrics()
	need := m.NotesNeed
	if need == 0 {
		need = m.NotesAdvance + m.NotesStep
	}
	cur, ok := ctx.Reserve(cur, need)
	if !ok {
		return cur
	}
	left := ctx.Geometry.MarginLeft
	ctx.Text(cur, left, b.heading(ctx), m.Heading)
	cur = cur.Down(m.NotesAdvance)
	for _, line := range ctx.Wrap(b.Text, m.Body, ctx.Geometry.ContentWidth()) {
		if cur, ok = ctx.Reserve(cur, m.NotesStep); !ok {
			break
		}
		ctx.Text(cur, left, line, m.Body)
		cur = cur.Down(m.NotesStep)
	}
	return cur
}

// FooterBlock prints the generation time and the page number at the bottom
// of a page. It sits outside the content flow.
type FooterBlock struct {
	PageNumber int
}

const footerTimeLayout = "2006.01.02. 15:04:05"

func (FooterBlock) Height(*Context) float64 { return 0 }

func (b FooterBlock) Draw(ctx *Context, cur layout.Cursor) layout.Cursor {
	m := ctx.Metrics()
	at := layout.Cursor{Page: b.PageNumber, Y: m.FooterBaseline}
	ctx.Text(at, ctx.Geometry.MarginLeft, ctx.Labels.Generated+": "+ctx.Now.Format(footerTimeLayout), m.Caption)
	ctx.TextRight(at, ctx.Labels.Page+" "+strconv.Itoa(b.PageNumber), m.Caption)
	return cur
}

// HeaderImageBlock is a letterhead scaled to the content width and pinned
// to the top edge of the page. Its height is capped at a fraction of the
// page; the aspect ratio is kept.
type HeaderImageBlock struct {
	Image *semantic.Image
}

func (b HeaderImageBlock) size(ctx *Context) (w, h float64) {
	if b.Image == nil || b.Image.Width <= 0 || b.Image.Height <= 0 {
		return 0, 0
	}
	m := ctx.Metrics()
	w = ctx.Geometry.ContentWidth()
	h = float64(b.Image.Height) * w / float64(b.Image.Width)
	if limit := ctx.Geometry.PageHeight * m.HeaderImageMaxFraction; m.HeaderImageMaxFraction > 0 && h > limit {
		w *= limit / h
		h = limit
	}
	return w, h
}

func (b HeaderImageBlock) Height(ctx *Context) float64 {
	_, h := b.size(ctx)
	if h == 0 {
		return 0
	}
	return h + ctx.Metrics().HeaderImageGap
}

func (b HeaderImageBlock) Draw(ctx *Context, cur layout.Cursor) layout.Cursor {
	w, h := b.size(ctx)
	if h == 0 {
		return cur
	}
	m := ctx.Metrics()
	x := ctx.Geometry.MarginLeft + (ctx.Geometry.ContentWidth()-w)/2
	ctx.pages.Page(cur.Page).DrawImage(b.Image, x, ctx.Geometry.PDFY(h), w, h, builder.ImageOptions{Interpolate: true})
	// Leave room for the title's ascent below the image.
	cur.Y = max(cur.Y, h+m.HeaderImageGap+m.Title.Size)
	return cur
}

// NarrativeBlock is a paragraph of prepared lines. Blank lines keep their
// vertical step; long lines wrap.
type NarrativeBlock struct {
	Lines []string
}

func (b NarrativeBlock) wrapped(ctx *Context) []string {
	var out []string
	for _, line := range b.Lines {
		parts := ctx.Wrap(line, ctx.Metrics().Body, ctx.Geometry.ContentWidth())
		if len(parts) == 0 {
			parts = []string{""}
		}
		out = append(out, parts...)
	}
	return out
}

func (b NarrativeBlock) Height(ctx *Context) float64 {
	m := ctx.Metrics()
	return float64(len(b.wrapped(ctx)))*m.NarrativeStep + m.NarrativeAfter
}

func (b NarrativeBlock) Draw(ctx *Context, cur layout.Cursor) layout.Cursor {
	m := ctx.Metrics()
	for _, line := range b.wrapped(ctx) {
		next, ok := ctx.Reserve(cur, m.NarrativeStep)
		if !ok {
			break
		}
		cur = next
		if line != "" {
			ctx.Text(cur, ctx.Geometry.MarginLeft, line, m.Body)
		}
		cur = cur.Down(m.NarrativeStep)
	}
	return cur.Down(m.NarrativeAfter)
}

// ClosingBlock is the signature line at a fixed position near the bottom of
// the page.
type ClosingBlock struct {
	Text string
}

func (ClosingBlock) Height(*Context) float64 { return 0 }

func (b ClosingBlock) Draw(ctx *Context, cur layout.Cursor) layout.Cursor {
	m := ctx.Metrics()
	at := layout.Cursor{Page: cur.Page, Y: m.ClosingY}
	ctx.Text(at, ctx.Geometry.MarginLeft, b.Text, m.Closing)
	return layout.Later(cur, at)
}
