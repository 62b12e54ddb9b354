package model

import (
	"time"

	"gorm.io/gorm"
)

// ExamSetQuestion links a pool question into a set at a position. A question
// may appear in any number of sets of the same exam; within one set it
// appears once.
type ExamSetQuestion struct {
	ID         uint `gorm:"primarykey" json:"id"`
	SetID      uint `json:"set_id" gorm:"not null;uniqueIndex:uix_set_question"`
	QuestionID uint `json:"question_id" gorm:"not null;uniqueIndex:uix_set_question"`
	Order      int  `json:"order" gorm:"column:question_order"`

	Question ExamQuestion `json:"question,omitempty" gorm:"foreignKey:QuestionID"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
