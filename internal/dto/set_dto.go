package dto

type SetCreateRequest struct {
	Name           string `json:"name" binding:"required"`
	AccessPassword string `json:"access_password" binding:"required"`
}

type SetUpdateRequest struct {
	Name           string `json:"name"`
	AccessPassword string `json:"access_password"`
}

type SetAddQuestionsRequest struct {
	QuestionIDs []uint `json:"question_ids" binding:"required,min=1"`
}

// SetAddQuestionsResponse reports which ids were linked and which were
// skipped because they were already in the set or not in the pool.
type SetAddQuestionsResponse struct {
	Added   []uint `json:"added"`
	Skipped []uint `json:"skipped"`
}

type SetReorderRequest struct {
	QuestionIDs []uint `json:"question_ids" binding:"required,min=1"`
}

type SetQuestionResponse struct {
	QuestionID   uint    `json:"question_id"`
	Order        int     `json:"order"`
	QuestionText string  `json:"question_text"`
	QuestionType string  `json:"question_type"`
	Marks        float64 `json:"marks"`
}

type SetResponse struct {
	ID            uint                  `json:"id"`
	ExamID        uint                  `json:"exam_id"`
	Name          string                `json:"name"`
	QuestionCount int                   `json:"question_count"`
	MaxScore      float64               `json:"max_score"`
	Questions     []SetQuestionResponse `json:"questions,omitempty"`
}
