// Package layout wraps text to a width and places content on A4 pages,
// breaking to a new page when the remaining vertical space runs out.
package layout

import (
	"github.com/AmerThamer/bkv-inspector-app/builder"
)

// Geometry describes the page box and the margins content must respect.
// Vertical positions are measured top-down from the upper page edge.
type Geometry struct {
	PageWidth, PageHeight float64
	MarginLeft            float64
	MarginRight           float64
	MarginTop             float64
	MarginBottom          float64
	// FooterReserve is kept free above the bottom margin for the footer.
	FooterReserve float64
}

// A4Geometry is the report page: A4 with 40pt side margins, 48pt top and
// bottom margins and 24pt reserved for the footer.
func A4Geometry() Geometry {
	return Geometry{
		PageWidth:     builder.A4.Width,
		PageHeight:    builder.A4.Height,
		MarginLeft:    40,
		MarginRight:   40,
		MarginTop:     48,
		MarginBottom:  48,
		FooterReserve: 24,
	}
}

// BottomLimit is the lowest baseline content may use.
func (g Geometry) BottomLimit() float64 {
	return g.PageHeight - g.MarginBottom - g.FooterReserve
}

// ContentWidth is the horizontal space between the side margins.
func (g Geometry) ContentWidth() float64 {
	return g.PageWidth - g.MarginLeft - g.MarginRight
}

// Right is the x position of the right margin.
func (g Geometry) Right() float64 { return g.PageWidth - g.MarginRight }

// PDFY converts a top-down position into PDF user space.
func (g Geometry) PDFY(y float64) float64 { return g.PageHeight - y }

// Cursor is a position in the flow: a 1-based page number and a top-down
// baseline offset on that page.
type Cursor struct {
	Page int
	Y    float64
}

// Down returns the cursor moved dy points down the same page.
func (c Cursor) Down(dy float64) Cursor {
	return Cursor{Page: c.Page, Y: c.Y + dy}
}

// Before reports whether c precedes o in reading order.
func (c Cursor) Before(o Cursor) bool {
	if c.Page != o.Page {
		return c.Page < o.Page
	}
	return c.Y < o.Y
}

// Later returns whichever cursor is further along the flow.
func Later(a, b Cursor) Cursor {
	if a.Before(b) {
		return b
	}
	return a
}

// FooterFunc draws the footer of page number on page.
type FooterFunc func(page builder.PageBuilder, number int)

// Option configures a Paginator.
type Option func(*Paginator)

// WithFooter sets the footer drawn once on every page.
func WithFooter(fn FooterFunc) Option {
	return func(p *Paginator) {
		p.footer = fn
	}
}

// WithSinglePage keeps everything on page one: EnsureSpace never breaks and
// callers use Fits to drop content that would overflow.
func WithSinglePage() Option {
	return func(p *Paginator) {
		p.single = true
	}
}

// Paginator owns the pages of one render. Pages are opened on demand and
// numbered sequentially from 1; a page opened by one column is reused by a
// sibling column that breaks onto it later.
type Paginator struct {
	b      builder.PDFBuilder
	geom   Geometry
	footer FooterFunc
	single bool

	pages     []builder.PageBuilder
	finalized []bool
}

// NewPaginator creates a paginator drawing into b.
func NewPaginator(b builder.PDFBuilder, geom Geometry, opts ...Option) *Paginator {
	p := &Paginator{b: b, geom: geom}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Geometry returns the page geometry.
func (p *Paginator) Geometry() Geometry { return p.geom }

// Begin opens page 1 and returns the cursor at its top margin.
func (p *Paginator) Begin() Cursor {
	p.open(1)
	return Cursor{Page: 1, Y: p.geom.MarginTop}
}

// Fits reports whether needed points fit below cur on its page.
func (p *Paginator) Fits(cur Cursor, needed float64) bool {
	return cur.Y+needed <= p.geom.BottomLimit()
}

// EnsureSpace returns cur when needed points fit below it. Otherwise the
// current page gets its footer and the cursor moves to the top of the next
// page, which is opened if no sibling has opened it yet. A cursor already at
// the top of a page is returned as is, so oversize content never produces
// runs of blank pages.
func (p *Paginator) EnsureSpace(cur Cursor, needed float64) Cursor {
	if p.single || p.Fits(cur, needed) || cur.Y <= p.geom.MarginTop {
		return cur
	}
	p.finalize(cur.Page)
	next := cur.Page + 1
	p.open(next)
	return Cursor{Page: next, Y: p.geom.MarginTop}
}

// Page returns the builder of page n, opening pages up to n if needed.
func (p *Paginator) Page(n int) builder.PageBuilder {
	p.open(n)
	return p.pages[n-1]
}

// PageCount reports how many pages have been opened.
func (p *Paginator) PageCount() int { return len(p.pages) }

// Finish draws the footer on every page that does not have one yet and
// returns the page count.
func (p *Paginator) Finish() int {
	for n := 1; n <= len(p.pages); n++ {
		p.finalize(n)
	}
	return len(p.pages)
}

func (p *Paginator) open(n int) {
	if n < 1 {
		n = 1
	}
	for len(p.pages) < n {
		p.pages = append(p.pages, p.b.NewPage(p.geom.PageWidth, p.geom.PageHeight))
		p.finalized = append(p.finalized, false)
	}
}

func (p *Paginator) finalize(n int) {
	if n < 1 || n > len(p.pages) || p.finalized[n-1] {
		return
	}
	p.finalized[n-1] = true
	if p.footer != nil {
		p.footer(p.pages[n-1], n)
	}
}
