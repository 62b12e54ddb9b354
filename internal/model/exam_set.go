package model

import (
	"time"

	"gorm.io/gorm"
)

// ExamSet is one parallel paper of an exam: a named, ordered subset of the
// exam's question pool guarded by a shared access password.
type ExamSet struct {
	ID     uint   `gorm:"primarykey" json:"id"`
	ExamID uint   `json:"exam_id" gorm:"not null;index"`
	Name   string `json:"name" gorm:"not null"`

	// AccessPassword is a shared secret handed to the students assigned to
	// this set, not a per-user credential.
	AccessPassword string `json:"-" gorm:"size:128"`

	SetQuestions []ExamSetQuestion `json:"set_questions,omitempty" gorm:"foreignKey:SetID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// ComputedMaxScore is the sum of marks of the questions linked to this set.
// Requires SetQuestions.Question to be preloaded.
func (s *ExamSet) ComputedMaxScore() float64 {
	var total float64
	for _, sq := range s.SetQuestions {
		total += sq.Question.Marks
	}
	return total
}
