package model

import (
	"time"

	"gorm.io/gorm"
)

// Quiz is the single-pool sibling of Exam: no sets, no password, a capped
// number of attempts instead of the one-shot submission rule.
type Quiz struct {
	ID            uint   `gorm:"primarykey" json:"id"`
	Subject       string `json:"subject" gorm:"not null"`
	Title         string `json:"title" gorm:"not null"`
	AssignedClass string `json:"assigned_class" gorm:"not null"`

	DurationMinutes int       `json:"duration_minutes" gorm:"not null"`
	StartDatetime   time.Time `json:"start_datetime" gorm:"not null"`
	EndDatetime     time.Time `json:"end_datetime" gorm:"not null"`
	AttemptsAllowed int       `json:"attempts_allowed" gorm:"not null;default:1"`

	Questions []QuizQuestion `json:"questions,omitempty" gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (q *Quiz) MaxScore() float64 {
	var total float64
	for _, question := range q.Questions {
		total += question.Points
	}
	return total
}

type QuizQuestion struct {
	ID     uint    `gorm:"primarykey" json:"id"`
	QuizID uint    `json:"quiz_id" gorm:"not null;index"`
	Text   string  `json:"text" gorm:"type:text;not null"`
	Points float64 `json:"points" gorm:"not null;default:1"`

	Options []QuizOption `json:"options,omitempty" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (q *QuizQuestion) CorrectOption() *QuizOption {
	for i := range q.Options {
		if q.Options[i].IsCorrect {
			return &q.Options[i]
		}
	}
	return nil
}

type QuizOption struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	QuestionID uint   `json:"question_id" gorm:"not null;index"`
	Text       string `json:"text" gorm:"not null"`
	IsCorrect  bool   `json:"is_correct" gorm:"default:false"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type QuizAttempt struct {
	ID        uint `gorm:"primarykey" json:"id"`
	QuizID    uint `json:"quiz_id" gorm:"not null;index"`
	StudentID uint `json:"student_id" gorm:"not null;index"`

	Score       *float64  `json:"score,omitempty"`
	SubmittedAt time.Time `json:"submitted_at" gorm:"autoCreateTime"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type QuizSubmission struct {
	ID        uint `gorm:"primarykey" json:"id"`
	QuizID    uint `json:"quiz_id" gorm:"not null;index"`
	StudentID uint `json:"student_id" gorm:"not null;index"`

	Score       float64   `json:"score"`
	SubmittedAt time.Time `json:"submitted_at" gorm:"autoCreateTime"`

	Quiz Quiz `json:"quiz,omitempty" gorm:"foreignKey:QuizID"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
