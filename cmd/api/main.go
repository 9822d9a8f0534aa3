package main

import (
	"context"
	"io"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/robfig/cron/v3"

	"github.com/LoftyComet/QSnap/internal/core/export"
	"github.com/LoftyComet/QSnap/internal/core/jobs"
	"github.com/LoftyComet/QSnap/internal/core/llm"
	"github.com/LoftyComet/QSnap/internal/core/ocr"
	"github.com/LoftyComet/QSnap/internal/core/vision"
	"github.com/LoftyComet/QSnap/internal/handlers"
	"github.com/LoftyComet/QSnap/internal/models"
	"github.com/LoftyComet/QSnap/internal/repositories"
	"github.com/LoftyComet/QSnap/internal/services"
	"github.com/LoftyComet/QSnap/internal/shared/config"
	"github.com/LoftyComet/QSnap/internal/shared/database"
	"github.com/LoftyComet/QSnap/internal/shared/logger"
)

func main() {
	// Load config
	cfg := config.LoadConfig()
	logger.Init()
	log.Printf("🚀 Starting QSnap API on port %s", cfg.Port)

	// Init database
	db := database.NewDB(cfg.DatabaseURL, cfg.SQLitePath)
	defer db.Close()

	if err := db.GORM.AutoMigrate(&models.Paper{}, &models.Question{}, &jobs.Job{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Init repositories
	paperRepo := repositories.NewPaperRepo(db.GORM)
	questionRepo := repositories.NewQuestionRepo(db.GORM)

	// Init OCR service (multi-provider support)
	var ocrProvider ocr.Provider
	switch cfg.OCRProvider {
	case "llm":
		ocrProvider = ocr.NewLLMVisionProvider(cfg.OCRAPIKey, cfg.OCRAPIBase, cfg.OCRModel)
	default:
		ocrProvider = ocr.NewTesseractProvider(cfg.OCRLanguages)
	}
	ocrService := ocr.NewService(ocrProvider)
	if closer, ok := ocrProvider.(io.Closer); ok {
		defer closer.Close()
	}
	log.Printf("🔍 Using OCR provider: %s", ocrService.GetProviderName())

	// Init LLM assistant
	llmService := llm.NewService(llm.ProviderConfig{
		APIKey:  cfg.OpenAIKey,
		BaseURL: cfg.OpenAIBase,
		Model:   cfg.LLMModel,
	})
	assistant := llm.NewAssistant(llmService)
	log.Printf("🤖 Using LLM model: %s", cfg.LLMModel)

	// Init vision pipeline and export service
	pipeline := vision.NewPipeline(ocrService, cfg.UploadDir)
	exportService := export.NewService()

	// Init job queue and paper service
	queue := jobs.NewQueue(db.GORM)
	paperService := services.NewPaperService(paperRepo, questionRepo, pipeline, assistant, exportService, queue, cfg.UploadDir)

	// Start solve worker. Concurrency stays at 1 so questions within a
	// paper are solved strictly in order.
	workerCfg := jobs.DefaultWorkerConfig()
	workerCfg.Queue = services.SolveQueue
	worker := jobs.NewWorker(queue, workerCfg)
	worker.RegisterHandler(services.NewSolvePaperHandler(questionRepo, assistant))

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	defer cancelWorker()
	if err := worker.Start(workerCtx); err != nil {
		log.Fatalf("Failed to start solve worker: %v", err)
	}
	defer worker.Stop()

	// Purge finished jobs nightly
	scheduler := cron.New()
	_, err := scheduler.AddFunc("0 3 * * *", func() {
		deleted, err := queue.DeleteOldJobs(context.Background(), 24*time.Hour)
		if err != nil {
			logger.Error("job purge failed", err, nil)
			return
		}
		logger.Info("purged old jobs", map[string]interface{}{"deleted": deleted})
	})
	if err != nil {
		log.Fatalf("Failed to schedule job purge: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Init handlers
	paperHandler := handlers.NewPaperHandler(paperService, paperRepo, cfg.UploadDir)
	questionHandler := handlers.NewQuestionHandler(paperService)
	healthHandler := handlers.NewHealthHandler(db)

	// Init Fiber app
	app := fiber.New(fiber.Config{
		AppName:   "QSnap API",
		BodyLimit: 20 * 1024 * 1024,
	})

	// Middleware
	app.Use(cors.New())

	// Uploaded images and exported documents, wherever UPLOAD_DIR points
	app.Static(handlers.UploadsURLPrefix, cfg.UploadDir)

	// Health check
	app.Get("/health", healthHandler.Check)

	// Paper routes
	app.Post("/upload", paperHandler.Upload)
	app.Get("/papers", paperHandler.List)
	app.Get("/papers/:id", paperHandler.Get)
	app.Delete("/papers/:id", paperHandler.Delete)
	app.Post("/process/:id", paperHandler.Process)
	app.Get("/export/:id", paperHandler.Export)

	// Question routes
	app.Post("/solve/:question_id", questionHandler.Solve)

	log.Printf("✅ QSnap API running at :%s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
