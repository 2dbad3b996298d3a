package builder

// PaperSize is a page size in points.
type PaperSize struct {
	Width, Height float64
}

// A4 is 210×297 mm.
var A4 = PaperSize{Width: 595, Height: 842}
