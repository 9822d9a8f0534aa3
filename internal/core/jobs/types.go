package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// JobStatus represents the status of a job
type JobStatus string

const (
	StatusPending    JobStatus = "pending"
	StatusProcessing JobStatus = "processing"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
	StatusRetrying   JobStatus = "retrying"
	StatusCancelled  JobStatus = "cancelled"
)

// TypeSolvePaper is the background job that formats and solves every
// question of one paper.
const TypeSolvePaper = "solve_paper"

// SolvePaperPayload is the payload for TypeSolvePaper jobs
type SolvePaperPayload struct {
	PaperID     uint   `json:"paper_id"`
	QuestionIDs []uint `json:"question_ids"`
}

// Job represents a background job in the database
type Job struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	PaperID uint      `gorm:"not null;index"`
	Queue   string    `gorm:"type:varchar(100);not null;index"`
	Type    string    `gorm:"type:varchar(100);not null"`
	Payload datatypes.JSON

	Status JobStatus `gorm:"type:varchar(20);not null;default:'pending';index"`

	Attempts   int `gorm:"not null;default:0"`
	MaxRetries int `gorm:"not null;default:3"`

	ScheduledAt *time.Time `gorm:"index"` // for retry backoff
	StartedAt   *time.Time
	CompletedAt *time.Time
	FailedAt    *time.Time

	Error  string `gorm:"type:text"`
	Result datatypes.JSON

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for Job model
func (Job) TableName() string {
	return "jobs"
}

// BeforeCreate sets the job ID; SQLite has no server-side UUID default
func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}

// JobHandler is the interface that job handlers must implement
type JobHandler interface {
	Handle(ctx context.Context, job *Job) error
	GetType() string
}

// EnqueueOptions contains options for enqueueing a job
type EnqueueOptions struct {
	Queue      string
	MaxRetries int
	ScheduleAt *time.Time
}

// WorkerConfig contains configuration for job workers
type WorkerConfig struct {
	Queue        string
	Concurrency  int           // number of concurrent workers
	PollInterval time.Duration // how often to poll for new jobs
	Timeout      time.Duration // maximum time for job execution
}

// DefaultWorkerConfig returns default worker configuration
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		Queue:        "default",
		Concurrency:  1,
		PollInterval: time.Second,
		Timeout:      30 * time.Minute,
	}
}
