package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	QuestionMCQ        = "mcq"
	QuestionTrueFalse  = "true_false"
	QuestionMath       = "math"
	QuestionSubjective = "subjective"
)

type ExamQuestion struct {
	ID     uint `gorm:"primarykey" json:"id"`
	ExamID uint `json:"exam_id" gorm:"not null;index"`

	QuestionText string  `json:"question_text" gorm:"type:text;not null"`
	QuestionType string  `json:"question_type" gorm:"not null"` // "mcq", "true_false", "math", "subjective"
	Marks        float64 `json:"marks" gorm:"not null;default:1"`

	Options []ExamOption      `json:"options,omitempty" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
	InSets  []ExamSetQuestion `json:"-" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsAcceptedOption reports whether the option is one of the question's
// correct-flagged options. MCQ and true_false carry exactly one; math
// questions may store several accepted answers. Subjective questions have
// none and are never auto-graded.
func (q *ExamQuestion) IsAcceptedOption(optionID uint) bool {
	for i := range q.Options {
		if q.Options[i].ID == optionID && q.Options[i].IsCorrect {
			return true
		}
	}
	return false
}
