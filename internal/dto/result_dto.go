package dto

import "time"

type ResultResponse struct {
	SubmissionID uint      `json:"submission_id"`
	ExamID       uint      `json:"exam_id"`
	ExamTitle    string    `json:"exam_title"`
	Subject      string    `json:"subject"`
	SetID        *uint     `json:"set_id,omitempty"`
	SetName      string    `json:"set_name,omitempty"`
	Score        float64   `json:"score"`
	MaxScore     float64   `json:"max_score"`
	Percent      float64   `json:"percent"`
	Passed       bool      `json:"passed"`
	SubmittedAt  time.Time `json:"submitted_at"`
}
