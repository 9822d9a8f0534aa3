package export

import (
	"fmt"
	"io"
)

// Service provides high-level export functionality
type Service struct {
	docxExporter Exporter
	pdfExporter  Exporter
}

// NewService creates a new export service
func NewService() *Service {
	return &Service{
		docxExporter: NewDocxExporter(),
		pdfExporter:  NewPDFExporter(),
	}
}

func (s *Service) exporter(format Format) (Exporter, error) {
	switch format {
	case FormatDocx:
		return s.docxExporter, nil
	case FormatPDF:
		return s.pdfExporter, nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

// ExportToWriter exports data to a writer in the given format
func (s *Service) ExportToWriter(data *SolutionData, format Format, writer io.Writer) error {
	exporter, err := s.exporter(format)
	if err != nil {
		return err
	}
	return exporter.Export(data, writer)
}

// FileExtension returns the file extension for the given format
func (s *Service) FileExtension(format Format) (string, error) {
	exporter, err := s.exporter(format)
	if err != nil {
		return "", err
	}
	return exporter.GetFileExtension(), nil
}

// ContentType returns the MIME type for the given format
func (s *Service) ContentType(format Format) (string, error) {
	exporter, err := s.exporter(format)
	if err != nil {
		return "", err
	}
	return exporter.GetContentType(), nil
}
