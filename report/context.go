package report

import (
	"time"

	"github.com/AmerThamer/bkv-inspector-app/builder"
	"github.com/AmerThamer/bkv-inspector-app/ir/semantic"
	"github.com/AmerThamer/bkv-inspector-app/layout"
	"github.com/AmerThamer/bkv-inspector-app/observability"
)

// Context is the state shared by the blocks of one render.
type Context struct {
	Data     ReportData
	Labels   Labels
	Template Template
	Geometry layout.Geometry
	Now      time.Time

	b      builder.PDFBuilder
	pages  *layout.Paginator
	header *semantic.Image
	logger observability.Logger
}

// Metrics returns the active template's metrics.
func (c *Context) Metrics() *Metrics { return &c.Template.Metrics }

// Width measures text in style, in points.
func (c *Context) Width(text string, st TextStyle) float64 {
	return c.b.MeasureText(text, st.Size, st.Font)
}

// Wrap breaks text into lines no wider than maxWidth in style.
func (c *Context) Wrap(text string, st TextStyle, maxWidth float64) []string {
	return layout.WrapLines(text, func(s string) float64 { return c.Width(s, st) }, maxWidth)
}

// Text draws text with its baseline at cur and its left edge at x.
func (c *Context) Text(cur layout.Cursor, x float64, text string, st TextStyle) {
	c.pages.Page(cur.Page).DrawText(text, x, c.Geometry.PDFY(cur.Y), st.options())
}

// TextRight draws text ending at the right margin.
func (c *Context) TextRight(cur layout.Cursor, text string, st TextStyle) {
	c.Text(cur, c.Geometry.Right()-c.Width(text, st), text, st)
}

// Rule draws a muted horizontal line across the content width at cur.
func (c *Context) Rule(cur layout.Cursor) {
	y := c.Geometry.PDFY(cur.Y)
	c.pages.Page(cur.Page).DrawLine(c.Geometry.MarginLeft, y, c.Geometry.Right(), y, builder.LineOptions{
		StrokeColor: muted,
		LineWidth:   c.Metrics().RuleWidth,
	})
}

// Reserve makes room for needed points below cur. Paginated templates move
// to the next page when the room is missing and always report ok. Single
// page templates stay put and report whether the content fits; callers drop
// content that does not.
func (c *Context) Reserve(cur layout.Cursor, needed float64) (layout.Cursor, bool) {
	next := c.pages.EnsureSpace(cur, needed)
	if c.Template.Paginate {
		return next, true
	}
	return next, c.pages.Fits(next, needed)
}

// pageSpan is the vertical room of an empty page.
func (c *Context) pageSpan() float64 {
	return c.Geometry.BottomLimit() - c.Geometry.MarginTop
}
