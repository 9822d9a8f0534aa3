package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gorm.io/datatypes"

	"github.com/LoftyComet/QSnap/internal/core/export"
	"github.com/LoftyComet/QSnap/internal/core/jobs"
	"github.com/LoftyComet/QSnap/internal/core/llm"
	"github.com/LoftyComet/QSnap/internal/core/vision"
	"github.com/LoftyComet/QSnap/internal/models"
	"github.com/LoftyComet/QSnap/internal/repositories"
)

// SolveQueue is the queue name for background solve jobs
const SolveQueue = "solve"

// Processing modes for ProcessPaper. Split mode (full-page OCR + LLM
// split) is the supported default; segment mode is the visual
// segmentation alternative selected per request.
const (
	ModeSplit   = "split"
	ModeSegment = "segment"
)

// VisionPipeline is the segmentation/OCR surface the service depends on
type VisionPipeline interface {
	ProcessImage(ctx context.Context, imagePath string) ([]vision.Block, error)
	ExtractTextFullPage(ctx context.Context, imagePath string) string
}

// QuestionAssistant is the LLM surface the service depends on
type QuestionAssistant interface {
	SplitQuestions(ctx context.Context, text string) []string
	FormatQuestion(ctx context.Context, text string) llm.FormatResult
	SolveQuestion(ctx context.Context, text string) llm.SolveResult
}

// ProcessResult is the outcome of a process request
type ProcessResult struct {
	Status         string `json:"status"`
	QuestionsFound int    `json:"questions_found"`
}

// PaperService orchestrates upload processing, solving and export
type PaperService struct {
	papers    repositories.PaperRepo
	questions repositories.QuestionRepo
	pipeline  VisionPipeline
	assistant QuestionAssistant
	exports   *export.Service
	queue     *jobs.Queue
	uploadDir string
}

// NewPaperService creates a new paper service
func NewPaperService(
	papers repositories.PaperRepo,
	questions repositories.QuestionRepo,
	pipeline VisionPipeline,
	assistant QuestionAssistant,
	exports *export.Service,
	queue *jobs.Queue,
	uploadDir string,
) *PaperService {
	return &PaperService{
		papers:    papers,
		questions: questions,
		pipeline:  pipeline,
		assistant: assistant,
		exports:   exports,
		queue:     queue,
		uploadDir: uploadDir,
	}
}

// ProcessPaper discovers questions in a paper and enqueues background
// solving. Re-processing an already processed paper is a no-op that
// reports the existing question count.
func (s *PaperService) ProcessPaper(ctx context.Context, paperID uint, mode string) (*ProcessResult, error) {
	paper, err := s.papers.GetByIDWithQuestions(paperID)
	if err != nil {
		return nil, err
	}

	if paper.IsProcessed {
		return &ProcessResult{Status: "completed", QuestionsFound: len(paper.Questions)}, nil
	}

	absPath, err := filepath.Abs(paper.FilePath)
	if err != nil {
		absPath = paper.FilePath
	}

	var created []models.Question
	switch mode {
	case ModeSegment:
		created, err = s.createFromSegmentation(ctx, paper, absPath)
	default:
		created, err = s.createFromSplit(ctx, paper, absPath)
	}
	if err != nil {
		return nil, err
	}

	if err := s.papers.MarkProcessed(paper.ID); err != nil {
		return nil, err
	}

	questionIDs := make([]uint, 0, len(created))
	for _, q := range created {
		questionIDs = append(questionIDs, q.ID)
	}

	payload := jobs.SolvePaperPayload{PaperID: paper.ID, QuestionIDs: questionIDs}
	if _, err := s.queue.Enqueue(ctx, paper.ID, jobs.TypeSolvePaper, payload, jobs.EnqueueOptions{Queue: SolveQueue}); err != nil {
		return nil, fmt.Errorf("failed to enqueue solve job: %w", err)
	}

	log.Printf("📝 Paper %d processed: %d questions found (mode: %s)", paper.ID, len(created), mode)
	return &ProcessResult{Status: "processing_started", QuestionsFound: len(created)}, nil
}

// createFromSegmentation runs the visual segmentation pipeline: one
// question per detected block, each with its own crop image.
func (s *PaperService) createFromSegmentation(ctx context.Context, paper *models.Paper, absPath string) ([]models.Question, error) {
	blocks, err := s.pipeline.ProcessImage(ctx, absPath)
	if err != nil {
		return nil, err
	}

	created := make([]models.Question, 0, len(blocks))
	for i, block := range blocks {
		bbox, _ := json.Marshal([4]int{block.BBox.Min.X, block.BBox.Min.Y, block.BBox.Dx(), block.BBox.Dy()})
		q := models.Question{
			PaperID:    paper.ID,
			ImagePath:  filepath.Join(s.uploadDir, block.ImageFilename),
			BBox:       datatypes.JSON(bbox),
			OCRText:    block.OCRText,
			OrderIndex: i + 1,
		}
		if err := s.questions.Create(&q); err != nil {
			return nil, err
		}
		created = append(created, q)
	}
	return created, nil
}

// createFromSplit OCRs the whole page and asks the model to partition the
// text; every question shares the parent paper's image.
func (s *PaperService) createFromSplit(ctx context.Context, paper *models.Paper, absPath string) ([]models.Question, error) {
	fullText := s.pipeline.ExtractTextFullPage(ctx, absPath)
	log.Printf("🔍 Full text extracted: %d chars", len(fullText))

	texts := s.assistant.SplitQuestions(ctx, fullText)

	created := make([]models.Question, 0, len(texts))
	for i, text := range texts {
		q := models.Question{
			PaperID:    paper.ID,
			ImagePath:  paper.FilePath,
			BBox:       datatypes.JSON("[]"),
			OCRText:    text,
			OrderIndex: i + 1,
		}
		if err := s.questions.Create(&q); err != nil {
			return nil, err
		}
		created = append(created, q)
	}
	return created, nil
}

// SolveQuestion runs the solver synchronously for one question, bypassing
// the incompleteness gate. Empty question text short-circuits to the
// no-text fallback without a model call.
func (s *PaperService) SolveQuestion(ctx context.Context, questionID uint) (*models.Question, error) {
	q, err := s.questions.GetByID(questionID)
	if err != nil {
		return nil, err
	}

	result := s.assistant.SolveQuestion(ctx, q.OCRText)
	q.Answer = result.Answer
	q.Analysis = result.Analysis
	q.SolutionText = result.Analysis

	if err := s.questions.Save(q); err != nil {
		return nil, err
	}
	return q, nil
}

// DeletePaper removes the paper, its questions, and their image files.
// File removal is best-effort: a missing file is logged, never fatal.
func (s *PaperService) DeletePaper(paperID uint) error {
	paper, err := s.papers.GetByIDWithQuestions(paperID)
	if err != nil {
		return err
	}

	for _, q := range paper.Questions {
		if q.ImagePath == "" || q.ImagePath == paper.FilePath {
			continue
		}
		if err := os.Remove(q.ImagePath); err != nil && !os.IsNotExist(err) {
			log.Printf("⚠️ Failed to delete question image %s: %v", q.ImagePath, err)
		}
	}
	if paper.FilePath != "" {
		if err := os.Remove(paper.FilePath); err != nil && !os.IsNotExist(err) {
			log.Printf("⚠️ Failed to delete paper file %s: %v", paper.FilePath, err)
		}
	}

	return s.papers.Delete(paper)
}

// ExportPaper builds the solutions document for a paper and returns the
// name of the written artifact inside the upload directory.
func (s *PaperService) ExportPaper(paperID uint, format export.Format) (string, error) {
	paper, err := s.papers.GetByIDWithQuestions(paperID)
	if err != nil {
		return "", err
	}

	data := &export.SolutionData{
		Title:     "Solutions: " + paper.Filename,
		Questions: make([]export.QuestionItem, 0, len(paper.Questions)),
	}
	for _, q := range paper.Questions {
		imagePath, err := filepath.Abs(q.ImagePath)
		if err != nil {
			imagePath = q.ImagePath
		}
		data.Questions = append(data.Questions, export.QuestionItem{
			Text:      q.OCRText,
			ImagePath: imagePath,
			Answer:    q.Answer,
			Analysis:  q.Analysis,
		})
	}

	ext, err := s.exports.FileExtension(format)
	if err != nil {
		return "", err
	}

	filename := fmt.Sprintf("solutions_%d.%s", paper.ID, ext)
	outPath := filepath.Join(s.uploadDir, filename)

	f, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	if err := s.exports.ExportToWriter(data, format, f); err != nil {
		return "", err
	}
	return filename, nil
}
