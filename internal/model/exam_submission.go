package model

import (
	"time"

	"gorm.io/gorm"
)

// ExamSubmission is the durable record of a finished exam. The composite
// unique index is the single concurrency guard: at most one row ever exists
// per (exam, student), no matter how many attempts were started.
type ExamSubmission struct {
	ID        uint  `gorm:"primarykey" json:"id"`
	ExamID    uint  `json:"exam_id" gorm:"not null;uniqueIndex:uix_exam_student"`
	StudentID uint  `json:"student_id" gorm:"not null;uniqueIndex:uix_exam_student"`
	SetID     *uint `json:"set_id,omitempty" gorm:"index"`

	Score       float64   `json:"score"`
	SubmittedAt time.Time `json:"submitted_at" gorm:"autoCreateTime"`

	Exam    Exam     `json:"exam,omitempty" gorm:"foreignKey:ExamID"`
	ExamSet *ExamSet `json:"exam_set,omitempty" gorm:"foreignKey:SetID"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
