package layout

import (
	"testing"

	"github.com/AmerThamer/bkv-inspector-app/builder"
)

func newTestPaginator(footers *[]int, opts ...Option) *Paginator {
	opts = append(opts, WithFooter(func(_ builder.PageBuilder, n int) {
		*footers = append(*footers, n)
	}))
	return NewPaginator(builder.NewBuilder(), A4Geometry(), opts...)
}

func TestA4Geometry(t *testing.T) {
	g := A4Geometry()
	if g.BottomLimit() != 770 {
		t.Fatalf("bottom limit = %v, want 770", g.BottomLimit())
	}
	if g.ContentWidth() != 515 {
		t.Fatalf("content width = %v, want 515", g.ContentWidth())
	}
	if g.PDFY(48) != 794 {
		t.Fatalf("PDFY(48) = %v", g.PDFY(48))
	}
}

func TestEnsureSpaceKeepsCursorWhenItFits(t *testing.T) {
	var footers []int
	p := newTestPaginator(&footers)
	cur := p.Begin()
	if cur != (Cursor{Page: 1, Y: 48}) {
		t.Fatalf("unexpected start %+v", cur)
	}
	cur = cur.Down(600)
	if got := p.EnsureSpace(cur, 122); got != cur {
		t.Fatalf("exact fit should not break, got %+v", got)
	}
	if len(footers) != 0 || p.PageCount() != 1 {
		t.Fatalf("no page should be finalized")
	}
}

func TestEnsureSpaceBreaksAndFinalizes(t *testing.T) {
	var footers []int
	p := newTestPaginator(&footers)
	cur := p.Begin().Down(700)
	next := p.EnsureSpace(cur, 100)
	if next != (Cursor{Page: 2, Y: 48}) {
		t.Fatalf("expected top of page 2, got %+v", next)
	}
	if p.PageCount() != 2 || len(footers) != 1 || footers[0] != 1 {
		t.Fatalf("page 1 should be finalized once: pages=%d footers=%v", p.PageCount(), footers)
	}
	// Finalizing again is a no-op.
	p.EnsureSpace(cur, 100)
	if p.PageCount() != 2 || len(footers) != 1 {
		t.Fatalf("sibling break should reuse page 2 and not redraw footer: pages=%d footers=%v", p.PageCount(), footers)
	}
	if n := p.Finish(); n != 2 {
		t.Fatalf("finish = %d", n)
	}
	if len(footers) != 2 || footers[1] != 2 {
		t.Fatalf("finish should draw remaining footers, got %v", footers)
	}
	if p.Finish(); len(footers) != 2 {
		t.Fatalf("finish must be idempotent, got %v", footers)
	}
}

func TestEnsureSpaceAtTopNeverLoops(t *testing.T) {
	var footers []int
	p := newTestPaginator(&footers)
	cur := p.Begin()
	if got := p.EnsureSpace(cur, 5000); got != cur {
		t.Fatalf("oversize block at top should stay, got %+v", got)
	}
	if p.PageCount() != 1 {
		t.Fatalf("no blank page should be opened")
	}
}

func TestSinglePageNeverBreaks(t *testing.T) {
	var footers []int
	p := newTestPaginator(&footers, WithSinglePage())
	cur := p.Begin().Down(760)
	if got := p.EnsureSpace(cur, 100); got != cur {
		t.Fatalf("single page mode broke the page: %+v", got)
	}
	if p.Fits(cur, 100) {
		t.Fatalf("Fits should report overflow")
	}
	if p.Finish() != 1 {
		t.Fatalf("expected one page")
	}
}

func TestCursorOrdering(t *testing.T) {
	a := Cursor{Page: 1, Y: 700}
	b := Cursor{Page: 2, Y: 60}
	if !a.Before(b) || b.Before(a) {
		t.Fatalf("page order wrong")
	}
	if Later(a, b) != b || Later(b, a) != b {
		t.Fatalf("Later should pick the further cursor")
	}
	c := Cursor{Page: 2, Y: 90}
	if Later(b, c) != c {
		t.Fatalf("same page should compare by y")
	}
}

func TestMonotonicFlowStaysWithinLimit(t *testing.T) {
	var footers []int
	p := newTestPaginator(&footers)
	cur := p.Begin()
	prev := cur
	for i := 0; i < 200; i++ {
		cur = p.EnsureSpace(cur, 15.5)
		if cur.Before(prev) {
			t.Fatalf("cursor moved backwards: %+v after %+v", cur, prev)
		}
		cur = cur.Down(15.5)
		if cur.Y > p.Geometry().BottomLimit() {
			t.Fatalf("baseline %v below limit", cur.Y)
		}
		prev = cur
	}
	pages := p.Finish()
	if pages < 2 || len(footers) != pages {
		t.Fatalf("pages=%d footers=%v", pages, footers)
	}
	for i, n := range footers {
		if n != i+1 {
			t.Fatalf("footers not sequential: %v", footers)
		}
	}
}
