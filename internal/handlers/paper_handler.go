package handlers

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/LoftyComet/QSnap/internal/core/export"
	"github.com/LoftyComet/QSnap/internal/core/vision"
	"github.com/LoftyComet/QSnap/internal/models"
	"github.com/LoftyComet/QSnap/internal/repositories"
	"github.com/LoftyComet/QSnap/internal/services"
)

// UploadsURLPrefix is the URL path the upload directory is served under,
// independent of where UPLOAD_DIR lives on disk.
const UploadsURLPrefix = "/static/uploads"

// PaperHandler handles paper upload and lifecycle requests
type PaperHandler struct {
	paperService *services.PaperService
	papers       repositories.PaperRepo
	uploadDir    string
}

// NewPaperHandler creates a new paper handler
func NewPaperHandler(paperService *services.PaperService, papers repositories.PaperRepo, uploadDir string) *PaperHandler {
	return &PaperHandler{
		paperService: paperService,
		papers:       papers,
		uploadDir:    uploadDir,
	}
}

// Upload accepts an exam page image and registers it for processing
func (h *PaperHandler) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "file is required",
		})
	}

	contentType := file.Header.Get("Content-Type")
	if contentType != "image/jpeg" && contentType != "image/jpg" && contentType != "image/png" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "only JPEG and PNG images are supported",
		})
	}

	if file.Size > 10*1024*1024 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "file size must be less than 10MB",
		})
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		log.Printf("❌ Failed to create upload dir: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to store uploaded file",
		})
	}

	ext := filepath.Ext(file.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	storedName := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	storedPath := filepath.Join(h.uploadDir, storedName)

	if err := c.SaveFile(file, storedPath); err != nil {
		log.Printf("❌ Failed to save uploaded file: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to store uploaded file",
		})
	}

	paper := &models.Paper{
		Filename: file.Filename,
		FilePath: storedPath,
	}
	if err := h.papers.Create(paper); err != nil {
		log.Printf("❌ Failed to save paper record: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to save paper",
		})
	}

	log.Printf("📄 Paper uploaded: %s -> %s (id=%d)", file.Filename, storedPath, paper.ID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":       paper.ID,
		"filename": paper.Filename,
	})
}

// List returns all uploaded papers, newest first
func (h *PaperHandler) List(c *fiber.Ctx) error {
	papers, err := h.papers.List()
	if err != nil {
		log.Printf("❌ Failed to list papers: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to retrieve papers",
		})
	}

	return c.JSON(fiber.Map{
		"count": len(papers),
		"data":  papers,
	})
}

// Get returns one paper with its questions in presentation order
func (h *PaperHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid paper id",
		})
	}

	paper, err := h.papers.GetByIDWithQuestions(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "paper not found",
			})
		}
		log.Printf("❌ Failed to get paper %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to retrieve paper",
		})
	}

	return c.JSON(fiber.Map{
		"paper":     paper,
		"questions": paper.Questions,
	})
}

// Delete removes a paper, its questions, and all their image files
func (h *PaperHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid paper id",
		})
	}

	if err := h.paperService.DeletePaper(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "paper not found",
			})
		}
		log.Printf("❌ Failed to delete paper %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to delete paper",
		})
	}

	return c.JSON(fiber.Map{
		"status": "deleted",
	})
}

// Process discovers questions in a paper and enqueues background solving.
// mode=segment switches to visual segmentation; the default is full-page
// OCR followed by model-driven splitting.
func (h *PaperHandler) Process(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid paper id",
		})
	}

	mode := c.Query("mode", services.ModeSplit)

	result, err := h.paperService.ProcessPaper(c.Context(), uint(id), mode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "paper not found",
			})
		}
		log.Printf("❌ Failed to process paper %d: %v", id, err)
		// Decode failures carry path diagnostics worth showing the caller
		if errors.Is(err, vision.ErrImageDecode) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to process paper",
		})
	}

	return c.JSON(result)
}

// Export generates the solutions document and returns its download URL
func (h *PaperHandler) Export(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid paper id",
		})
	}

	format := export.Format(c.Query("format", string(export.FormatDocx)))

	filename, err := h.paperService.ExportPaper(uint(id), format)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "paper not found",
			})
		}
		log.Printf("❌ Failed to export paper %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to export paper",
		})
	}

	downloadURL := UploadsURLPrefix + "/" + filename
	log.Printf("📦 Paper %d exported: %s", id, downloadURL)

	return c.JSON(fiber.Map{
		"download_url": downloadURL,
	})
}
