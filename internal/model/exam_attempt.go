package model

import (
	"time"

	"gorm.io/gorm"
)

// ExamAttempt is created when a student passes the password step and
// acknowledges the instructions. SetID is the committed assignment for that
// student; it stays nil for exams that run on the full pool.
type ExamAttempt struct {
	ID        uint  `gorm:"primarykey" json:"id"`
	ExamID    uint  `json:"exam_id" gorm:"not null;index"`
	SetID     *uint `json:"set_id,omitempty" gorm:"index"`
	StudentID uint  `json:"student_id" gorm:"not null;index"`

	StartTime time.Time  `json:"start_time" gorm:"autoCreateTime"`
	EndTime   *time.Time `json:"end_time,omitempty"`

	Submitted   bool       `json:"submitted" gorm:"default:false"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	Score       *float64   `json:"score,omitempty"`

	Exam    Exam     `json:"exam,omitempty" gorm:"foreignKey:ExamID"`
	ExamSet *ExamSet `json:"exam_set,omitempty" gorm:"foreignKey:SetID"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
