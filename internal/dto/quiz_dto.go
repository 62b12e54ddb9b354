package dto

import "time"

type QuizCreateRequest struct {
	Subject         string    `json:"subject" binding:"required"`
	Title           string    `json:"title" binding:"required"`
	AssignedClass   string    `json:"assigned_class" binding:"required"`
	DurationMinutes int       `json:"duration_minutes" binding:"required,gt=0"`
	StartDatetime   time.Time `json:"start_datetime" binding:"required"`
	EndDatetime     time.Time `json:"end_datetime" binding:"required"`
	AttemptsAllowed int       `json:"attempts_allowed" binding:"omitempty,gt=0"`
}

type QuizQuestionCreateRequest struct {
	Text    string                `json:"text" binding:"required"`
	Points  float64               `json:"points" binding:"omitempty,gt=0"`
	Options []OptionCreateRequest `json:"options" binding:"required,min=2,dive"`
}

type QuizResponse struct {
	ID              uint      `json:"id"`
	Subject         string    `json:"subject"`
	Title           string    `json:"title"`
	AssignedClass   string    `json:"assigned_class"`
	DurationMinutes int       `json:"duration_minutes"`
	StartDatetime   time.Time `json:"start_datetime"`
	EndDatetime     time.Time `json:"end_datetime"`
	AttemptsAllowed int       `json:"attempts_allowed"`
}

type QuizQuestionResponse struct {
	ID      uint             `json:"id"`
	Text    string           `json:"text"`
	Points  float64          `json:"points"`
	Options []OptionResponse `json:"options,omitempty"`
}

// QuizInstructionsResponse is the pre-start view: quiz metadata and how many
// attempts the student has left, without the questions.
type QuizInstructionsResponse struct {
	QuizResponse
	QuestionCount     int     `json:"question_count"`
	MaxScore          float64 `json:"max_score"`
	AttemptsUsed      int     `json:"attempts_used"`
	AttemptsRemaining int     `json:"attempts_remaining"`
}

type QuizTakeViewResponse struct {
	QuizID          uint                   `json:"quiz_id"`
	Title           string                 `json:"title"`
	DurationMinutes int                    `json:"duration_minutes"`
	AttemptsUsed    int                    `json:"attempts_used"`
	AttemptsAllowed int                    `json:"attempts_allowed"`
	Questions       []QuizQuestionResponse `json:"questions"`
	SavedAnswers    map[uint]uint          `json:"saved_answers"`
}

type QuizSubmitRequest struct {
	Answers map[uint]uint `json:"answers"`
}

type QuizSubmitResponse struct {
	SubmissionID uint    `json:"submission_id"`
	Score        float64 `json:"score"`
	MaxScore     float64 `json:"max_score"`
}

type QuizResultResponse struct {
	SubmissionID uint      `json:"submission_id"`
	QuizID       uint      `json:"quiz_id"`
	Title        string    `json:"title"`
	Score        float64   `json:"score"`
	MaxScore     float64   `json:"max_score"`
	Percent      float64   `json:"percent"`
	SubmittedAt  time.Time `json:"submitted_at"`
}
