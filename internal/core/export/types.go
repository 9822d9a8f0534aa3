package export

import "io"

// Format represents the export file format
type Format string

const (
	FormatDocx Format = "docx"
	FormatPDF  Format = "pdf"
)

// SolutionData is the assembled content of one exported paper
type SolutionData struct {
	Title     string
	Questions []QuestionItem
}

// QuestionItem is one question's contribution to the document
type QuestionItem struct {
	Text      string
	ImagePath string // absolute path to the crop, may be empty or missing
	Answer    string
	Analysis  string
}

// Exporter is the interface for all export formats
type Exporter interface {
	Export(data *SolutionData, writer io.Writer) error
	GetContentType() string
	GetFileExtension() string
}
