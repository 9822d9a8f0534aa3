package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/LoftyComet/QSnap/internal/services"
)

// QuestionHandler handles single-question requests
type QuestionHandler struct {
	paperService *services.PaperService
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(paperService *services.PaperService) *QuestionHandler {
	return &QuestionHandler{paperService: paperService}
}

// Solve runs the solver synchronously for one question and returns the
// stored solution. Works on incomplete questions too; the caller decides
// whether the fragment is worth solving.
func (h *QuestionHandler) Solve(c *fiber.Ctx) error {
	id, err := c.ParamsInt("question_id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid question id",
		})
	}

	question, err := h.paperService.SolveQuestion(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "question not found",
			})
		}
		log.Printf("❌ Failed to solve question %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to solve question",
		})
	}

	return c.JSON(fiber.Map{
		"solution": question.Analysis,
		"answer":   question.Answer,
	})
}
