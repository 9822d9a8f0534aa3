package export

import (
	"fmt"
	"io"
	"os"

	"github.com/fumiama/go-docx"
)

// DocxExporter assembles the solutions document as a Word file
type DocxExporter struct{}

// NewDocxExporter creates a new docx exporter
func NewDocxExporter() *DocxExporter {
	return &DocxExporter{}
}

// Export writes the solutions document to writer
func (e *DocxExporter) Export(data *SolutionData, writer io.Writer) error {
	doc := docx.New().WithDefaultTheme()

	title := doc.AddParagraph()
	title.AddText(data.Title).Size("36").Bold()

	for i, q := range data.Questions {
		heading := doc.AddParagraph()
		heading.AddText(fmt.Sprintf("Question %d", i+1)).Size("28").Bold()

		if q.Text != "" {
			doc.AddParagraph().AddText("Question Text:").Bold()
			doc.AddParagraph().AddText(q.Text)
		}

		if q.ImagePath != "" {
			if _, err := os.Stat(q.ImagePath); err == nil {
				if _, err := doc.AddParagraph().AddInlineDrawingFrom(q.ImagePath); err != nil {
					doc.AddParagraph().AddText("[Image could not be added]")
				}
			}
		}

		doc.AddParagraph().AddText("Solution").Size("24").Bold()
		if q.Analysis != "" {
			if q.Answer != "" {
				doc.AddParagraph().AddText("Answer: " + q.Answer).Bold()
			}
			doc.AddParagraph().AddText(q.Analysis)
		} else {
			doc.AddParagraph().AddText("[No solution generated]")
		}

		if i < len(data.Questions)-1 {
			doc.AddParagraph().AddPageBreaks()
		}
	}

	if _, err := doc.WriteTo(writer); err != nil {
		return fmt.Errorf("write docx: %w", err)
	}
	return nil
}

// GetContentType returns the MIME type for docx
func (e *DocxExporter) GetContentType() string {
	return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
}

// GetFileExtension returns the file extension
func (e *DocxExporter) GetFileExtension() string {
	return "docx"
}
