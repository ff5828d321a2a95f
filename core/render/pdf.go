// Package render — PDF renderer.
// Converts a parse result into a styled PDF using gofpdf: one section
// per chunk, followed by the harvested link and image lists.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/wisebayes/solstice-scrapegraph/core"
)

// PDFRenderer renders a parse result as a PDF document.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render converts the result into PDF bytes.
func (r *PDFRenderer) Render(res core.Result, meta core.PageMetadata) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	// Title from metadata.
	if meta.Title != "" {
		pdf.SetFont("Helvetica", "B", 18)
		pdf.MultiCell(0, 8, meta.Title, "", "L", false)
		pdf.Ln(4)
	}

	// Source URL.
	if meta.URL != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(100, 100, 100)
		pdf.MultiCell(0, 5, "Source: "+meta.URL, "", "L", false)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(6)
	}

	for i, chunk := range res.Chunks {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.MultiCell(0, 7, fmt.Sprintf("Chunk %d", i+1), "", "L", false)
		pdf.Ln(2)

		pdf.SetFont("Helvetica", "", 10)
		for _, para := range strings.Split(chunk, "\n\n") {
			pdf.MultiCell(0, 5, para, "", "L", false)
			pdf.Ln(3)
		}
		pdf.Ln(3)
	}

	renderURLList(pdf, "Links", res.Links)
	renderURLList(pdf, "Images", res.Images)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

// renderURLList writes a heading followed by one bullet per URL.
func renderURLList(pdf *gofpdf.Fpdf, heading string, urls []string) {
	if len(urls) == 0 {
		return
	}
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.MultiCell(0, 7, heading, "", "L", false)
	pdf.Ln(2)

	pdf.SetFont("Courier", "", 9)
	for _, u := range urls {
		pdf.MultiCell(0, 4.5, "- "+u, "", "L", false)
	}
}
