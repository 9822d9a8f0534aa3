package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/LoftyComet/QSnap/internal/core/jobs"
	"github.com/LoftyComet/QSnap/internal/repositories"
)

// SolvePaperHandler is the background handler that formats and solves
// every question of a processed paper, in presentation order.
type SolvePaperHandler struct {
	questions repositories.QuestionRepo
	assistant QuestionAssistant
}

// NewSolvePaperHandler creates a new solve handler
func NewSolvePaperHandler(questions repositories.QuestionRepo, assistant QuestionAssistant) *SolvePaperHandler {
	return &SolvePaperHandler{questions: questions, assistant: assistant}
}

// GetType returns the job type this handler processes
func (h *SolvePaperHandler) GetType() string {
	return jobs.TypeSolvePaper
}

// Handle formats each question, commits it, then solves the ones whose
// text came back complete. A failure on one question is logged and the
// loop moves on, so a single bad question never stalls the paper.
func (h *SolvePaperHandler) Handle(ctx context.Context, job *jobs.Job) error {
	var payload jobs.SolvePaperPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("invalid solve_paper payload: %w", err)
	}

	questions, err := h.questions.GetByPaperID(payload.PaperID)
	if err != nil {
		return fmt.Errorf("failed to load questions for paper %d: %w", payload.PaperID, err)
	}

	log.Printf("🤖 Solving paper %d: %d questions", payload.PaperID, len(questions))

	for i := range questions {
		q := &questions[i]

		// Segments with no recognized text are left alone rather than
		// burning a model call on an empty prompt
		if strings.TrimSpace(q.OCRText) == "" {
			log.Printf("⚠️ Question %d has no text, skipping", q.ID)
			continue
		}

		formatted := h.assistant.FormatQuestion(ctx, q.OCRText)
		q.OCRText = formatted.FormattedText
		q.IsIncomplete = !formatted.IsComplete
		if err := h.questions.Save(q); err != nil {
			log.Printf("❌ Failed to save formatted question %d: %v", q.ID, err)
			continue
		}

		if q.IsIncomplete {
			log.Printf("⚠️ Question %d marked incomplete, skipping solve", q.ID)
			continue
		}

		solution := h.assistant.SolveQuestion(ctx, q.OCRText)
		q.Answer = solution.Answer
		q.Analysis = solution.Analysis
		q.SolutionText = solution.Analysis
		if err := h.questions.Save(q); err != nil {
			log.Printf("❌ Failed to save solution for question %d: %v", q.ID, err)
			continue
		}

		log.Printf("✅ Question %d solved (%d/%d)", q.ID, i+1, len(questions))
	}

	return nil
}
