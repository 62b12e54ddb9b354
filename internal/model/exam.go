package model

import (
	"time"

	"gorm.io/gorm"
)

// Assignment modes decide how a student is mapped to one of the exam's sets.
const (
	AssignRandom = "random"
	AssignHash   = "hash"
	AssignChoice = "choice"
)

type Exam struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	Subject     string `json:"subject" gorm:"not null"`
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description,omitempty" gorm:"type:text"`

	AssignedClass   string `json:"assigned_class" gorm:"not null"`
	DurationMinutes int    `json:"duration_minutes"`

	StartDatetime time.Time `json:"start_datetime" gorm:"not null"`
	EndDatetime   time.Time `json:"end_datetime" gorm:"not null"`

	AssignmentMode string `json:"assignment_mode" gorm:"not null;default:'random'"` // "random", "hash", "choice"
	AssignmentSeed string `json:"assignment_seed,omitempty"`

	// PassPercent overrides the global pass threshold when set.
	PassPercent *float64 `json:"pass_percent,omitempty"`

	Questions   []ExamQuestion   `json:"questions,omitempty" gorm:"foreignKey:ExamID;constraint:OnDelete:CASCADE"`
	Sets        []ExamSet        `json:"sets,omitempty" gorm:"foreignKey:ExamID;constraint:OnDelete:CASCADE"`
	Submissions []ExamSubmission `json:"submissions,omitempty" gorm:"foreignKey:ExamID"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// PoolMaxScore is the sum of marks over the whole question pool. Result
// projection never uses it for set-less submissions; it exists for the
// admin set overview.
func (e *Exam) PoolMaxScore() float64 {
	var total float64
	for _, q := range e.Questions {
		total += q.Marks
	}
	return total
}
