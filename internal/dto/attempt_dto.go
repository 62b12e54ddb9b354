package dto

import "time"

type SelectSetRequest struct {
	SetID uint `json:"set_id" binding:"required"`
}

type PasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

type StartAttemptResponse struct {
	AttemptID uint  `json:"attempt_id"`
	ExamID    uint  `json:"exam_id"`
	SetID     *uint `json:"set_id,omitempty"`
}

// TakeViewResponse is the full paper a student sees during the attempt.
type TakeViewResponse struct {
	AttemptID       uint               `json:"attempt_id"`
	ExamID          uint               `json:"exam_id"`
	Title           string             `json:"title"`
	DurationMinutes int                `json:"duration_minutes"`
	SetID           *uint              `json:"set_id,omitempty"`
	SetName         string             `json:"set_name,omitempty"`
	Questions       []QuestionResponse `json:"questions"`
	SavedAnswers    map[uint]uint      `json:"saved_answers"`
}

type TimerResponse struct {
	StartedAt        time.Time `json:"started_at"`
	RemainingSeconds int       `json:"remaining_seconds"`
}

type AutosaveRequest struct {
	Answers map[uint]uint `json:"answers" binding:"required"`
}

type SubmitRequest struct {
	// Answers maps question id to the chosen option id. Optional: when empty
	// the autosaved answers are graded instead.
	Answers map[uint]uint `json:"answers"`
}

type SubmitResponse struct {
	SubmissionID uint    `json:"submission_id"`
	Score        float64 `json:"score"`
	// AlreadySubmitted marks the short-circuit path: the returned submission
	// existed before this call.
	AlreadySubmitted bool `json:"already_submitted,omitempty"`
}

type SubmittedPollResponse struct {
	Submitted    bool  `json:"submitted"`
	SubmissionID *uint `json:"submission_id,omitempty"`
}
