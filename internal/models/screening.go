package models

import (
	"time"

	"github.com/google/uuid"
)

type ScreeningStatus string

const (
	StatusQueued     ScreeningStatus = "queued"
	StatusProcessing ScreeningStatus = "processing"
	StatusCompleted  ScreeningStatus = "completed"
	StatusFailed     ScreeningStatus = "failed"
)

// Screening is one resume-to-job assessment. The job description comes
// either from a stored Job or inline text; the full result payload is
// persisted as JSON next to the scalar columns used for listing.
type Screening struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobID            *uuid.UUID      `gorm:"type:uuid" json:"job_id,omitempty"`
	JobDescription   string          `gorm:"type:text" json:"job_description"`
	ResumeDocumentID uuid.UUID       `gorm:"type:uuid;not null" json:"resume_document_id"`
	Status           ScreeningStatus `gorm:"not null;default:'queued'" json:"status"`
	ATSScore         *int            `gorm:"type:integer" json:"ats_score,omitempty"`
	FitVerdict       *string         `gorm:"type:text" json:"fit_verdict,omitempty"`
	ResultJSON       *string         `gorm:"type:text" json:"-"`
	ErrorMessage     *string         `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt        time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	Job            *Job     `gorm:"foreignKey:JobID" json:"-"`
	ResumeDocument Document `gorm:"foreignKey:ResumeDocumentID" json:"-"`
}

func (Screening) TableName() string {
	return "screenings"
}
