package dto

type OptionCreateRequest struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"is_correct"`
}

type QuestionCreateRequest struct {
	QuestionText string                `json:"question_text" binding:"required"`
	QuestionType string                `json:"question_type" binding:"required,oneof=mcq true_false math subjective"`
	Marks        float64               `json:"marks" binding:"omitempty,gt=0"`
	Options      []OptionCreateRequest `json:"options" binding:"dive"`
}

type OptionResponse struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

// OptionAdminResponse includes the answer key; only admin endpoints return it.
type OptionAdminResponse struct {
	ID        uint   `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

type QuestionResponse struct {
	ID           uint             `json:"id"`
	QuestionText string           `json:"question_text"`
	QuestionType string           `json:"question_type"`
	Marks        float64          `json:"marks"`
	Options      []OptionResponse `json:"options,omitempty"`
}

type QuestionAdminResponse struct {
	ID           uint                  `json:"id"`
	ExamID       uint                  `json:"exam_id"`
	QuestionText string                `json:"question_text"`
	QuestionType string                `json:"question_type"`
	Marks        float64               `json:"marks"`
	Options      []OptionAdminResponse `json:"options,omitempty"`
}
