package models

import (
	"time"

	"gorm.io/datatypes"
)

// Question represents one exam question derived from a paper.
// ImagePath points at the per-question crop in segmentation mode, or at
// the parent paper's full image in LLM-split mode.
type Question struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	PaperID uint `gorm:"not null;index:idx_questions_paper" json:"paper_id"`

	ImagePath string         `gorm:"type:varchar(512)" json:"image_path"`
	BBox      datatypes.JSON `gorm:"type:json" json:"bbox"` // [x, y, w, h], empty array in full-page mode

	OCRText      string `gorm:"type:text" json:"ocr_text"`
	IsIncomplete bool   `gorm:"not null;default:false" json:"is_incomplete"`

	Answer   string `gorm:"type:text" json:"answer"`
	Analysis string `gorm:"type:text" json:"analysis"`
	// SolutionText mirrors Analysis for older clients that only read it.
	SolutionText string `gorm:"type:text" json:"solution_text"`

	OrderIndex int `gorm:"not null;default:0;index" json:"order_index"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name
func (Question) TableName() string {
	return "questions"
}
