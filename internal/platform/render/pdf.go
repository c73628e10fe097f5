package render

import (
	"bytes"
	"errors"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfMargin    = 10.0
	pdfRowHeight = 7.0
)

// PDF lays the document out as a bordered grid on landscape A4. The header
// row is repeated on every page.
type PDF struct{}

func NewPDF() PDF { return PDF{} }

func (PDF) Format() string      { return "pdf" }
func (PDF) ContentType() string { return "application/pdf" }

func (p PDF) Render(doc Document) ([]byte, error) {
	if len(doc.Columns) == 0 {
		return nil, &RenderError{Format: p.Format(), Err: errors.New("document has no columns")}
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pageWidth, pageHeight := pdf.GetPageSize()
	widths := columnWidths(len(doc.Columns), pageWidth-2*pdfMargin)

	header := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(31, 78, 121)
		pdf.SetTextColor(255, 255, 255)
		for i, col := range doc.Columns {
			pdf.CellFormat(widths[i], pdfRowHeight+1, fit(pdf, tr(col), widths[i]), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
	}

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, tr(doc.Title), "", 1, "C", false, 0, "")
	pdf.Ln(2)
	header()

	for _, row := range doc.Rows {
		if pdf.GetY()+pdfRowHeight > pageHeight-pdfMargin {
			pdf.AddPage()
			header()
		}
		for i := range doc.Columns {
			value := ""
			if i < len(row) {
				value = row[i]
			}
			align := "L"
			if doc.numeric(i) {
				align = "R"
			}
			pdf.CellFormat(widths[i], pdfRowHeight, fit(pdf, tr(value), widths[i]), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &RenderError{Format: p.Format(), Err: err}
	}
	return buf.Bytes(), nil
}

// columnWidths gives the first column a double share for employee names.
func columnWidths(n int, total float64) []float64 {
	unit := total / float64(n+1)
	widths := make([]float64, n)
	for i := range widths {
		widths[i] = unit
	}
	widths[0] = 2 * unit
	return widths
}

// fit trims text so that it stays inside its cell.
func fit(pdf *gofpdf.Fpdf, text string, width float64) string {
	limit := width - 2
	if pdf.GetStringWidth(text) <= limit {
		return text
	}
	for len(text) > 0 && pdf.GetStringWidth(text+"..") > limit {
		text = text[:len(text)-1]
	}
	return text + ".."
}
