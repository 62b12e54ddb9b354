package dto

import "time"

type ExamCreateRequest struct {
	Subject         string    `json:"subject" binding:"required"`
	Title           string    `json:"title" binding:"required"`
	Description     string    `json:"description"`
	AssignedClass   string    `json:"assigned_class" binding:"required"`
	DurationMinutes int       `json:"duration_minutes" binding:"required,gt=0"`
	StartDatetime   time.Time `json:"start_datetime" binding:"required"`
	EndDatetime     time.Time `json:"end_datetime" binding:"required"`
	AssignmentMode  string    `json:"assignment_mode" binding:"omitempty,oneof=random hash choice"`
	AssignmentSeed  string    `json:"assignment_seed"`
	PassPercent     *float64  `json:"pass_percent" binding:"omitempty,gte=0,lte=100"`
}

type ExamResponse struct {
	ID              uint      `json:"id"`
	Subject         string    `json:"subject"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	AssignedClass   string    `json:"assigned_class"`
	DurationMinutes int       `json:"duration_minutes"`
	StartDatetime   time.Time `json:"start_datetime"`
	EndDatetime     time.Time `json:"end_datetime"`
	AssignmentMode  string    `json:"assignment_mode"`
	PassPercent     *float64  `json:"pass_percent,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// DashboardExamResponse is one row of the student dashboard: the exam plus
// the student's standing on it.
type DashboardExamResponse struct {
	ExamResponse
	Status       string `json:"status"` // "upcoming", "ongoing", "ended"
	Submitted    bool   `json:"submitted"`
	SubmissionID *uint  `json:"submission_id,omitempty"`
}

type AssignmentResponse struct {
	ExamID         uint   `json:"exam_id"`
	AssignmentMode string `json:"assignment_mode"`
	SetID          *uint  `json:"set_id,omitempty"`
	SetName        string `json:"set_name,omitempty"`
	// ChoiceRequired is set in choice mode until the student picks a set.
	ChoiceRequired bool `json:"choice_required,omitempty"`
}
