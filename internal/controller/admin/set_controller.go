package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eyramt/examhall/internal/dto"
	"github.com/eyramt/examhall/internal/service"
)

type SetController struct {
	setBuilder service.SetBuilderService
}

func NewSetController(setBuilder service.SetBuilderService) *SetController {
	return &SetController{setBuilder: setBuilder}
}

// CreateSet godoc
// @Summary Create a set for an exam
// @Tags admin-sets
// @Accept json
// @Produce json
// @Param exam_id path int true "Exam ID"
// @Param set body dto.SetCreateRequest true "Set"
// @Success 201 {object} dto.SetResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/exams/{exam_id}/sets [post]
func (ctrl *SetController) CreateSet(c *gin.Context) {
	examID, ok := pathID(c, "exam_id")
	if !ok {
		return
	}
	var req dto.SetCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.setBuilder.CreateSet(examID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListSets godoc
// @Summary List an exam's sets
// @Tags admin-sets
// @Produce json
// @Param exam_id path int true "Exam ID"
// @Success 200 {array} dto.SetResponse
// @Router /admin/exams/{exam_id}/sets [get]
func (ctrl *SetController) ListSets(c *gin.Context) {
	examID, ok := pathID(c, "exam_id")
	if !ok {
		return
	}
	resp, err := ctrl.setBuilder.ListSets(examID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetSet godoc
// @Summary Get one set with its ordered questions
// @Tags admin-sets
// @Produce json
// @Param exam_id path int true "Exam ID"
// @Param set_id path int true "Set ID"
// @Success 200 {object} dto.SetResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/exams/{exam_id}/sets/{set_id} [get]
func (ctrl *SetController) GetSet(c *gin.Context) {
	examID, ok := pathID(c, "exam_id")
	if !ok {
		return
	}
	setID, ok := pathID(c, "set_id")
	if !ok {
		return
	}
	resp, err := ctrl.setBuilder.GetSet(examID, setID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateSet godoc
// @Summary Rename a set or rotate its password
// @Tags admin-sets
// @Accept json
// @Produce json
// @Param exam_id path int true "Exam ID"
// @Param set_id path int true "Set ID"
// @Param set body dto.SetUpdateRequest true "Fields to update"
// @Success 200 {object} dto.SetResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/exams/{exam_id}/sets/{set_id} [put]
func (ctrl *SetController) UpdateSet(c *gin.Context) {
	examID, ok := pathID(c, "exam_id")
	if !ok {
		return
	}
	setID, ok := pathID(c, "set_id")
	if !ok {
		return
	}
	var req dto.SetUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.setBuilder.UpdateSet(examID, setID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteSet godoc
// @Summary Delete a set
// @Tags admin-sets
// @Produce json
// @Param exam_id path int true "Exam ID"
// @Param set_id path int true "Set ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/exams/{exam_id}/sets/{set_id} [delete]
func (ctrl *SetController) DeleteSet(c *gin.Context) {
	examID, ok := pathID(c, "exam_id")
	if !ok {
		return
	}
	setID, ok := pathID(c, "set_id")
	if !ok {
		return
	}
	if err := ctrl.setBuilder.DeleteSet(examID, setID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "set deleted"})
}

// AddSetQuestions godoc
// @Summary Link pool questions into a set
// @Tags admin-sets
// @Accept json
// @Produce json
// @Param exam_id path int true "Exam ID"
// @Param set_id path int true "Set ID"
// @Param body body dto.SetAddQuestionsRequest true "Question ids"
// @Success 200 {object} dto.SetAddQuestionsResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/exams/{exam_id}/sets/{set_id}/questions [post]
func (ctrl *SetController) AddSetQuestions(c *gin.Context) {
	examID, ok := pathID(c, "exam_id")
	if !ok {
		return
	}
	setID, ok := pathID(c, "set_id")
	if !ok {
		return
	}
	var req dto.SetAddQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.setBuilder.AddQuestions(examID, setID, req.QuestionIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RemoveSetQuestion godoc
// @Summary Unlink a question from a set
// @Tags admin-sets
// @Produce json
// @Param exam_id path int true "Exam ID"
// @Param set_id path int true "Set ID"
// @Param question_id path int true "Question ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/exams/{exam_id}/sets/{set_id}/questions/{question_id} [delete]
func (ctrl *SetController) RemoveSetQuestion(c *gin.Context) {
	examID, ok := pathID(c, "exam_id")
	if !ok {
		return
	}
	setID, ok := pathID(c, "set_id")
	if !ok {
		return
	}
	questionID, ok := pathID(c, "question_id")
	if !ok {
		return
	}
	if err := ctrl.setBuilder.RemoveQuestion(examID, setID, questionID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "question removed from set"})
}

// ReorderSet godoc
// @Summary Reorder a set's questions
// @Tags admin-sets
// @Accept json
// @Produce json
// @Param exam_id path int true "Exam ID"
// @Param set_id path int true "Set ID"
// @Param body body dto.SetReorderRequest true "Question ids in the new order"
// @Success 200 {object} dto.SetResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/exams/{exam_id}/sets/{set_id}/order [put]
func (ctrl *SetController) ReorderSet(c *gin.Context) {
	examID, ok := pathID(c, "exam_id")
	if !ok {
		return
	}
	setID, ok := pathID(c, "set_id")
	if !ok {
		return
	}
	var req dto.SetReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.setBuilder.Reorder(examID, setID, req.QuestionIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
