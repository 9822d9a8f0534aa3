package vision

import (
	"context"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gocv.io/x/gocv"

	"github.com/LoftyComet/QSnap/internal/core/ocr"
)

// Block is one detected question region with its persisted crop and the
// text recognized inside it.
type Block struct {
	BBox          image.Rectangle
	ImageFilename string
	OCRText       string
}

// Pipeline runs segmentation and OCR over uploaded paper images. Crop
// artifacts are written into outputDir.
type Pipeline struct {
	ocrService *ocr.Service
	outputDir  string
}

// NewPipeline creates a vision pipeline backed by the given OCR service
func NewPipeline(ocrService *ocr.Service, outputDir string) *Pipeline {
	return &Pipeline{ocrService: ocrService, outputDir: outputDir}
}

// ProcessImage segments the image at imagePath into question blocks, saves
// one crop file per block, and OCRs each crop. A recognition failure on one
// crop leaves that block's text empty and does not abort the batch. When
// segmentation finds nothing, the whole page is returned as a single block.
func (p *Pipeline) ProcessImage(ctx context.Context, imagePath string) ([]Block, error) {
	img, err := LoadImage(imagePath)
	if err != nil {
		return nil, err
	}
	defer img.Close()

	if err := os.MkdirAll(p.outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	boxes, fullPage := SegmentBoxes(DetectBlocks(img), img.Cols(), img.Rows())
	if fullPage {
		log.Println("⚠️ No distinct questions found, returning full image as one block")
	}

	prefix := "crop"
	if fullPage {
		prefix = "full"
	}

	blocks := make([]Block, 0, len(boxes))
	for _, box := range boxes {
		crop := img.Region(box)
		filename := fmt.Sprintf("%s_%s.jpg", prefix, uuid.New().String())
		if ok := gocv.IMWrite(filepath.Join(p.outputDir, filename), crop); !ok {
			crop.Close()
			return nil, fmt.Errorf("failed to write crop %s", filename)
		}

		text := p.recognize(ctx, crop)
		crop.Close()

		blocks = append(blocks, Block{
			BBox:          box,
			ImageFilename: filename,
			OCRText:       text,
		})
	}
	return blocks, nil
}

// ExtractTextFullPage OCRs the entire undivided image. Any failure yields
// an empty string rather than an error.
func (p *Pipeline) ExtractTextFullPage(ctx context.Context, imagePath string) string {
	img, err := LoadImage(imagePath)
	if err != nil {
		log.Printf("⚠️ Full-page OCR: %v", err)
		return ""
	}
	defer img.Close()

	buf, err := gocv.IMEncode(gocv.JPEGFileExt, img)
	if err != nil {
		log.Printf("⚠️ Full-page OCR: encode failed: %v", err)
		return ""
	}
	defer buf.Close()

	result, err := p.ocrService.ExtractText(ctx, buf.GetBytes())
	if err != nil {
		log.Printf("⚠️ Full-page OCR failed: %v", err)
		return ""
	}
	return strings.TrimSpace(result.Text)
}

// recognize OCRs one crop, collapsing the recognized lines into a single
// space-joined string. Failures degrade to empty text.
func (p *Pipeline) recognize(ctx context.Context, crop gocv.Mat) string {
	buf, err := gocv.IMEncode(gocv.JPEGFileExt, crop)
	if err != nil {
		log.Printf("⚠️ OCR skipped: encode failed: %v", err)
		return ""
	}
	defer buf.Close()

	result, err := p.ocrService.ExtractText(ctx, buf.GetBytes())
	if err != nil {
		log.Printf("⚠️ OCR failed: %v", err)
		return ""
	}
	return strings.Join(strings.Fields(result.Text), " ")
}
