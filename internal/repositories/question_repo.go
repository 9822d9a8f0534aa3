package repositories

import (
	"github.com/LoftyComet/QSnap/internal/models"
	"gorm.io/gorm"
)

// QuestionRepo interface defines question operations
type QuestionRepo interface {
	Create(question *models.Question) error
	GetByID(id uint) (*models.Question, error)
	GetByPaperID(paperID uint) ([]models.Question, error)
	CountByPaperID(paperID uint) (int64, error)
	Save(question *models.Question) error
}

type questionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo creates a new question repository
func NewQuestionRepo(db *gorm.DB) QuestionRepo {
	return &questionRepo{db: db}
}

func (r *questionRepo) Create(question *models.Question) error {
	return r.db.Create(question).Error
}

func (r *questionRepo) GetByID(id uint) (*models.Question, error) {
	var question models.Question
	if err := r.db.First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

// GetByPaperID returns the paper's questions in presentation order
func (r *questionRepo) GetByPaperID(paperID uint) ([]models.Question, error) {
	var questions []models.Question
	err := r.db.Where("paper_id = ?", paperID).
		Order("order_index ASC").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepo) CountByPaperID(paperID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Question{}).Where("paper_id = ?", paperID).Count(&count).Error
	return count, err
}

func (r *questionRepo) Save(question *models.Question) error {
	return r.db.Save(question).Error
}
