package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders the solutions document as a PDF using gofpdf
type PDFExporter struct {
	orientation string
	pageSize    string
}

// NewPDFExporter creates a new PDF exporter
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{
		orientation: "P",
		pageSize:    "A4",
	}
}

// Export writes the solutions document to writer
func (p *PDFExporter) Export(data *SolutionData, writer io.Writer) error {
	pdf := gofpdf.New(p.orientation, "mm", p.pageSize, "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.MultiCell(0, 10, data.Title, "", "L", false)
	pdf.Ln(6)

	for i, q := range data.Questions {
		if i > 0 {
			pdf.AddPage()
		}

		pdf.SetFont("Arial", "B", 14)
		pdf.Cell(0, 8, fmt.Sprintf("Question %d", i+1))
		pdf.Ln(10)

		if q.Text != "" {
			pdf.SetFont("Arial", "", 11)
			pdf.MultiCell(0, 5, q.Text, "", "L", false)
			pdf.Ln(4)
		}

		if q.ImagePath != "" {
			if _, err := os.Stat(q.ImagePath); err == nil {
				imgType := strings.TrimPrefix(strings.ToUpper(filepath.Ext(q.ImagePath)), ".")
				if imgType == "JPG" {
					imgType = "JPEG"
				}
				opts := gofpdf.ImageOptions{ImageType: imgType, ReadDpi: true}
				pdf.ImageOptions(q.ImagePath, pdf.GetX(), pdf.GetY(), 100, 0, true, opts, 0, "")
				pdf.Ln(4)
			}
		}

		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(0, 8, "Solution")
		pdf.Ln(9)

		pdf.SetFont("Arial", "", 11)
		if q.Analysis != "" {
			if q.Answer != "" {
				pdf.MultiCell(0, 5, "Answer: "+q.Answer, "", "L", false)
			}
			pdf.MultiCell(0, 5, q.Analysis, "", "L", false)
		} else {
			pdf.MultiCell(0, 5, "[No solution generated]", "", "L", false)
		}
	}

	if err := pdf.Output(writer); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// GetContentType returns the MIME type for PDF
func (p *PDFExporter) GetContentType() string {
	return "application/pdf"
}

// GetFileExtension returns the file extension
func (p *PDFExporter) GetFileExtension() string {
	return "pdf"
}
