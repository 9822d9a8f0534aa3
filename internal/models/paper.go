package models

import (
	"time"
)

// Paper represents one uploaded exam-paper image
type Paper struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Filename    string     `gorm:"type:varchar(255);index" json:"filename"`
	FilePath    string     `gorm:"type:varchar(512)" json:"file_path"`
	IsProcessed bool       `gorm:"not null;default:false" json:"is_processed"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	Questions   []Question `gorm:"foreignKey:PaperID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

// TableName specifies the table name
func (Paper) TableName() string {
	return "papers"
}
