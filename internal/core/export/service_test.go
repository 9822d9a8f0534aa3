package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleData() *SolutionData {
	return &SolutionData{
		Title: "Solutions: exam.jpg",
		Questions: []QuestionItem{
			{Text: "2+2=?", Answer: "4", Analysis: "Basic addition."},
			{Text: "Unsolved fragment", ImagePath: "/nonexistent/crop.jpg"},
		},
	}
}

func TestExportDocx(t *testing.T) {
	svc := NewService()
	var buf bytes.Buffer

	require.NoError(t, svc.ExportToWriter(sampleData(), FormatDocx, &buf))
	assert.Greater(t, buf.Len(), 0)
	// docx files are zip archives
	assert.Equal(t, []byte("PK"), buf.Bytes()[:2])
}

func TestExportPDF(t *testing.T) {
	svc := NewService()
	var buf bytes.Buffer

	require.NoError(t, svc.ExportToWriter(sampleData(), FormatPDF, &buf))
	assert.Greater(t, buf.Len(), 0)
	assert.Equal(t, []byte("%PDF"), buf.Bytes()[:4])
}

func TestExportUnsupportedFormat(t *testing.T) {
	svc := NewService()
	var buf bytes.Buffer

	err := svc.ExportToWriter(sampleData(), Format("xlsx"), &buf)
	assert.Error(t, err)

	_, err = svc.FileExtension(Format("xlsx"))
	assert.Error(t, err)
}

func TestContentTypes(t *testing.T) {
	svc := NewService()

	ct, err := svc.ContentType(FormatDocx)
	require.NoError(t, err)
	assert.Contains(t, ct, "wordprocessingml")

	ct, err = svc.ContentType(FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", ct)

	ext, err := svc.FileExtension(FormatDocx)
	require.NoError(t, err)
	assert.Equal(t, "docx", ext)
}
