package report

import (
	"fmt"
	"time"
)

// Canvas is A4 in millimetres, origin at the top-left corner
const (
	PageWidth  = 210.0
	PageHeight = 297.0

	marginLeft   = 20.0
	contentWidth = 170.0
	pageCenter   = PageWidth / 2

	headerHeight = 40.0
	contentTop   = 50.0
	footerTop    = 290.0 // baseline of the page number line

	// PageCount is fixed: detail, comparison, timing, summary
	PageCount = 4
)

// OpKind identifies the primitive a DrawOp asks the renderer for
type OpKind int

const (
	OpFillRect OpKind = iota
	OpStrokeRect
	OpText
)

// Align is the horizontal anchoring of a text op relative to its X coordinate
type Align string

const (
	AlignLeft   Align = "L"
	AlignCenter Align = "C"
	AlignRight  Align = "R"
)

// FontWeight selects the regular or bold face
type FontWeight string

const (
	WeightNormal FontWeight = "normal"
	WeightBold   FontWeight = "bold"
)

// Color is an RGB triple
type Color struct {
	R, G, B uint8
}

var (
	ColorPrimary   = Color{138, 43, 226}
	ColorText      = Color{51, 51, 51}
	ColorLightGray = Color{248, 249, 250}
	ColorWhite     = Color{255, 255, 255}
	ColorGreen     = Color{40, 167, 69}
	ColorRed       = Color{220, 53, 69}
	ColorBaseRow   = Color{232, 245, 232}
	ColorStrategy  = Color{102, 126, 234}
)

// DrawOp is one positioned primitive. Rectangles use X, Y, W, H; text uses X, Y
// (baseline) and the text attributes. Color is the fill, stroke or text color.
type DrawOp struct {
	Kind      OpKind
	X, Y      float64
	W, H      float64
	Color     Color
	LineWidth float64
	Text      string
	Align     Align
	Weight    FontWeight
	Size      float64
}

// Page is an ordered list of draw operations, applied in order
type Page struct {
	Number int
	Ops    []DrawOp
}

// Layout is the full composed report handed to a Renderer
type Layout struct {
	Title       string
	FileName    string
	GeneratedAt time.Time
	Pages       []Page
}

// pageWriter accumulates ops for one page and owns its vertical cursor.
// The cursor only moves forward.
type pageWriter struct {
	page   Page
	cursor float64
}

func newPageWriter(number int) *pageWriter {
	return &pageWriter{
		page:   Page{Number: number},
		cursor: contentTop,
	}
}

func (w *pageWriter) fillRect(x, y, width, height float64, c Color) {
	w.page.Ops = append(w.page.Ops, DrawOp{Kind: OpFillRect, X: x, Y: y, W: width, H: height, Color: c})
}

func (w *pageWriter) strokeRect(x, y, width, height float64, c Color) {
	w.page.Ops = append(w.page.Ops, DrawOp{Kind: OpStrokeRect, X: x, Y: y, W: width, H: height, Color: c, LineWidth: 0.5})
}

// framedBox draws a light gray box with a primary colored border
func (w *pageWriter) framedBox(x, y, width, height float64) {
	w.fillRect(x, y, width, height, ColorLightGray)
	w.strokeRect(x, y, width, height, ColorPrimary)
}

type textStyle struct {
	size   float64
	weight FontWeight
	color  Color
	align  Align
}

func (w *pageWriter) text(s string, x, y float64, style textStyle) {
	align := style.align
	if align == "" {
		align = AlignLeft
	}
	w.page.Ops = append(w.page.Ops, DrawOp{
		Kind:   OpText,
		X:      x,
		Y:      y,
		Color:  style.color,
		Text:   s,
		Align:  align,
		Weight: style.weight,
		Size:   style.size,
	})
}

func (w *pageWriter) advance(dy float64) {
	if dy > 0 {
		w.cursor += dy
	}
}

// sectionTitle prints a primary colored heading at the cursor and moves past it
func (w *pageWriter) sectionTitle(title string, gap float64) {
	w.text(title, marginLeft, w.cursor, textStyle{size: 14, weight: WeightBold, color: ColorPrimary})
	w.advance(gap)
}

// column is one cell position of a table
type column struct {
	x     float64
	title string
}

const rowHeight = 8.0

// tableHeader prints a colored header band with white column titles
func (w *pageWriter) tableHeader(cols []column, band Color) {
	w.fillRect(marginLeft, w.cursor, contentWidth, rowHeight, band)
	for _, c := range cols {
		w.text(c.title, c.x, w.cursor+5, textStyle{size: 9, weight: WeightBold, color: ColorWhite})
	}
	w.advance(rowHeight)
}

// cell is one value of a table row; a zero color means the default text color
type cell struct {
	text  string
	color Color
}

// tableRow prints one row; even rows (by zebra index) get a light gray band
func (w *pageWriter) tableRow(cols []column, cells []cell, zebra int, weight FontWeight, background *Color) {
	switch {
	case background != nil:
		w.fillRect(marginLeft, w.cursor, contentWidth, rowHeight, *background)
	case zebra%2 == 0:
		w.fillRect(marginLeft, w.cursor, contentWidth, rowHeight, ColorLightGray)
	}
	for i, c := range cells {
		color := c.color
		if color == (Color{}) {
			color = ColorText
		}
		w.text(c.text, cols[i].x, w.cursor+5, textStyle{size: 8, weight: weight, color: color})
	}
	w.advance(rowHeight)
}

// finish stamps the header and footer and checks that content stayed above the footer
func (w *pageWriter) finish(header []DrawOp) (Page, error) {
	if w.cursor > footerTop-rowHeight {
		return Page{}, fmt.Errorf("page %d overflows: cursor at %.1f", w.page.Number, w.cursor)
	}

	ops := make([]DrawOp, 0, len(header)+len(w.page.Ops)+2)
	ops = append(ops, header...)
	ops = append(ops, w.page.Ops...)

	footer := textStyle{size: 8, weight: WeightNormal, color: ColorText, align: AlignCenter}
	ops = append(ops,
		DrawOp{Kind: OpText, X: pageCenter, Y: footerTop, Color: footer.color, Text: fmt.Sprintf("Page %d", w.page.Number), Align: footer.align, Weight: footer.weight, Size: footer.size},
		DrawOp{Kind: OpText, X: pageCenter, Y: footerTop + 5, Color: footer.color, Text: footerLegal, Align: footer.align, Weight: footer.weight, Size: footer.size},
	)

	return Page{Number: w.page.Number, Ops: ops}, nil
}
