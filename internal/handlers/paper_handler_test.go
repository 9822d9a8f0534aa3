package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/LoftyComet/QSnap/internal/core/export"
	"github.com/LoftyComet/QSnap/internal/core/jobs"
	"github.com/LoftyComet/QSnap/internal/core/llm"
	"github.com/LoftyComet/QSnap/internal/core/vision"
	"github.com/LoftyComet/QSnap/internal/models"
	"github.com/LoftyComet/QSnap/internal/repositories"
	"github.com/LoftyComet/QSnap/internal/services"
)

type stubPipeline struct {
	blocks   []vision.Block
	fullText string
	err      error
}

func (s *stubPipeline) ProcessImage(ctx context.Context, imagePath string) ([]vision.Block, error) {
	return s.blocks, s.err
}

func (s *stubPipeline) ExtractTextFullPage(ctx context.Context, imagePath string) string {
	return s.fullText
}

type stubAssistant struct{}

func (stubAssistant) SplitQuestions(ctx context.Context, text string) []string {
	if text == "" {
		return nil
	}
	return []string{text}
}

func (stubAssistant) FormatQuestion(ctx context.Context, text string) llm.FormatResult {
	return llm.FormatResult{FormattedText: text, IsComplete: true}
}

func (stubAssistant) SolveQuestion(ctx context.Context, text string) llm.SolveResult {
	return llm.SolveResult{Answer: "A", Analysis: "done"}
}

type handlerFixture struct {
	app      *fiber.App
	papers   repositories.PaperRepo
	quests   repositories.QuestionRepo
	pipeline *stubPipeline
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Paper{}, &models.Question{}, &jobs.Job{}))

	paperRepo := repositories.NewPaperRepo(db)
	questionRepo := repositories.NewQuestionRepo(db)
	pipeline := &stubPipeline{}
	uploadDir := t.TempDir() // absolute path on purpose

	svc := services.NewPaperService(paperRepo, questionRepo, pipeline, stubAssistant{}, export.NewService(), jobs.NewQueue(db), uploadDir)

	paperHandler := NewPaperHandler(svc, paperRepo, uploadDir)
	questionHandler := NewQuestionHandler(svc)

	app := fiber.New()
	app.Post("/upload", paperHandler.Upload)
	app.Get("/papers", paperHandler.List)
	app.Get("/papers/:id", paperHandler.Get)
	app.Delete("/papers/:id", paperHandler.Delete)
	app.Post("/process/:id", paperHandler.Process)
	app.Get("/export/:id", paperHandler.Export)
	app.Post("/solve/:question_id", questionHandler.Solve)

	return &handlerFixture{app: app, papers: paperRepo, quests: questionRepo, pipeline: pipeline}
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func TestProcessDecodeFailureReturnsDetail(t *testing.T) {
	f := newHandlerFixture(t)
	paper := &models.Paper{Filename: "bad.jpg", FilePath: "static/uploads/bad.jpg"}
	require.NoError(t, f.papers.Create(paper))
	f.pipeline.err = fmt.Errorf("%w: could not read image at static/uploads/bad.jpg", vision.ErrImageDecode)

	req := httptest.NewRequest(http.MethodPost, "/process/1?mode=segment", nil)
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Contains(t, body["error"], "could not read image at static/uploads/bad.jpg")
}

func TestProcessUnknownPaper(t *testing.T) {
	f := newHandlerFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/process/99", nil)
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestExportDownloadURLIgnoresUploadDirLocation(t *testing.T) {
	f := newHandlerFixture(t) // upload dir is an absolute temp path here
	paper := &models.Paper{Filename: "exam.jpg", FilePath: "static/uploads/exam.jpg"}
	require.NoError(t, f.papers.Create(paper))
	q := &models.Question{PaperID: paper.ID, OCRText: "2+2=?", Answer: "4", Analysis: "add", OrderIndex: 1}
	require.NoError(t, f.quests.Create(q))

	req := httptest.NewRequest(http.MethodGet, "/export/1", nil)
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "/static/uploads/solutions_1.docx", body["download_url"])
}

func TestSolveUnknownQuestion(t *testing.T) {
	f := newHandlerFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/solve/42", nil)
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
