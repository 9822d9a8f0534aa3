package repositories

import (
	"github.com/LoftyComet/QSnap/internal/models"
	"gorm.io/gorm"
)

// PaperRepo interface defines paper operations
type PaperRepo interface {
	Create(paper *models.Paper) error
	GetByID(id uint) (*models.Paper, error)
	GetByIDWithQuestions(id uint) (*models.Paper, error)
	List() ([]models.Paper, error)
	MarkProcessed(id uint) error
	Delete(paper *models.Paper) error
}

type paperRepo struct {
	db *gorm.DB
}

// NewPaperRepo creates a new paper repository
func NewPaperRepo(db *gorm.DB) PaperRepo {
	return &paperRepo{db: db}
}

func (r *paperRepo) Create(paper *models.Paper) error {
	return r.db.Create(paper).Error
}

func (r *paperRepo) GetByID(id uint) (*models.Paper, error) {
	var paper models.Paper
	if err := r.db.First(&paper, id).Error; err != nil {
		return nil, err
	}
	return &paper, nil
}

// GetByIDWithQuestions loads the paper together with its questions sorted
// by order_index.
func (r *paperRepo) GetByIDWithQuestions(id uint) (*models.Paper, error) {
	var paper models.Paper
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_index ASC")
	}).First(&paper, id).Error
	if err != nil {
		return nil, err
	}
	return &paper, nil
}

// List returns all papers, newest first
func (r *paperRepo) List() ([]models.Paper, error) {
	var papers []models.Paper
	if err := r.db.Order("created_at DESC").Find(&papers).Error; err != nil {
		return nil, err
	}
	return papers, nil
}

func (r *paperRepo) MarkProcessed(id uint) error {
	return r.db.Model(&models.Paper{}).Where("id = ?", id).Update("is_processed", true).Error
}

// Delete removes the paper and its questions in one transaction
func (r *paperRepo) Delete(paper *models.Paper) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("paper_id = ?", paper.ID).Delete(&models.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(paper).Error
	})
}
