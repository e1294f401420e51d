package pdf

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/simaogato/fipify-backend/internal/usecase/report"
)

const fontFamily = "Helvetica"

// Renderer implements report.Renderer with fpdf
type Renderer struct {
	// Compress toggles stream compression; tests turn it off to inspect content
	Compress bool
	Author   string
}

// NewRenderer creates a new Renderer instance
func NewRenderer() *Renderer {
	return &Renderer{Compress: true, Author: "Fipify"}
}

// Render draws every page of the layout, in order, on an A4 portrait document.
// Output is deterministic for a given layout: dates come from layout.GeneratedAt.
func (r *Renderer) Render(layout *report.Layout) ([]byte, error) {
	if layout == nil || len(layout.Pages) == 0 {
		return nil, fmt.Errorf("render: empty layout")
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	doc.SetMargins(0, 0, 0)
	doc.SetCompression(r.Compress)
	doc.SetCatalogSort(true)
	doc.SetCreationDate(layout.GeneratedAt)
	doc.SetModificationDate(layout.GeneratedAt)
	doc.SetTitle(layout.Title, true)
	doc.SetAuthor(r.Author, true)
	doc.SetCreator(r.Author, true)

	tr := doc.UnicodeTranslatorFromDescriptor("")

	for _, page := range layout.Pages {
		doc.AddPage()
		for _, op := range page.Ops {
			drawOp(doc, tr, op)
		}
	}

	if err := doc.Error(); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render output: %w", err)
	}
	return buf.Bytes(), nil
}

func drawOp(doc *fpdf.Fpdf, tr func(string) string, op report.DrawOp) {
	switch op.Kind {
	case report.OpFillRect:
		doc.SetFillColor(int(op.Color.R), int(op.Color.G), int(op.Color.B))
		doc.Rect(op.X, op.Y, op.W, op.H, "F")
	case report.OpStrokeRect:
		doc.SetDrawColor(int(op.Color.R), int(op.Color.G), int(op.Color.B))
		doc.SetLineWidth(op.LineWidth)
		doc.Rect(op.X, op.Y, op.W, op.H, "D")
	case report.OpText:
		style := ""
		if op.Weight == report.WeightBold {
			style = "B"
		}
		doc.SetFont(fontFamily, style, op.Size)
		doc.SetTextColor(int(op.Color.R), int(op.Color.G), int(op.Color.B))

		text := tr(op.Text)
		x := op.X
		switch op.Align {
		case report.AlignCenter:
			x -= doc.GetStringWidth(text) / 2
		case report.AlignRight:
			x -= doc.GetStringWidth(text)
		}
		doc.Text(x, op.Y, text)
	}
}
