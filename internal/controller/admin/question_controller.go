package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eyramt/examhall/internal/dto"
	"github.com/eyramt/examhall/internal/service"
)

type QuestionController struct {
	questionService service.QuestionService
}

func NewQuestionController(questionService service.QuestionService) *QuestionController {
	return &QuestionController{questionService: questionService}
}

// AddQuestion godoc
// @Summary Add a question to an exam's pool
// @Tags admin-questions
// @Accept json
// @Produce json
// @Param exam_id path int true "Exam ID"
// @Param question body dto.QuestionCreateRequest true "Question"
// @Success 201 {object} dto.QuestionAdminResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/exams/{exam_id}/questions [post]
func (ctrl *QuestionController) AddQuestion(c *gin.Context) {
	examID, ok := pathID(c, "exam_id")
	if !ok {
		return
	}
	var req dto.QuestionCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.questionService.AddQuestion(examID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListQuestions godoc
// @Summary List an exam's question pool with answer keys
// @Tags admin-questions
// @Produce json
// @Param exam_id path int true "Exam ID"
// @Success 200 {array} dto.QuestionAdminResponse
// @Router /admin/exams/{exam_id}/questions [get]
func (ctrl *QuestionController) ListQuestions(c *gin.Context) {
	examID, ok := pathID(c, "exam_id")
	if !ok {
		return
	}
	resp, err := ctrl.questionService.ListQuestions(examID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteQuestion godoc
// @Summary Remove a question from the pool
// @Tags admin-questions
// @Produce json
// @Param exam_id path int true "Exam ID"
// @Param question_id path int true "Question ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/exams/{exam_id}/questions/{question_id} [delete]
func (ctrl *QuestionController) DeleteQuestion(c *gin.Context) {
	examID, ok := pathID(c, "exam_id")
	if !ok {
		return
	}
	questionID, ok := pathID(c, "question_id")
	if !ok {
		return
	}
	if err := ctrl.questionService.DeleteQuestion(examID, questionID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "question deleted"})
}
