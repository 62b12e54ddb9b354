package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/eyramt/examhall/internal/dto"
	"github.com/eyramt/examhall/internal/service"
)

type ExamController struct {
	examService service.ExamService
}

func NewExamController(examService service.ExamService) *ExamController {
	return &ExamController{examService: examService}
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "not found"})
	default:
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}
}

// CreateExam godoc
// @Summary Create an exam
// @Tags admin-exams
// @Accept json
// @Produce json
// @Param exam body dto.ExamCreateRequest true "Exam"
// @Success 201 {object} dto.ExamResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/exams [post]
func (ctrl *ExamController) CreateExam(c *gin.Context) {
	var req dto.ExamCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.examService.CreateExam(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListExams godoc
// @Summary List all exams
// @Tags admin-exams
// @Produce json
// @Success 200 {array} dto.ExamResponse
// @Router /admin/exams [get]
func (ctrl *ExamController) ListExams(c *gin.Context) {
	resp, err := ctrl.examService.ListExams()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetExam godoc
// @Summary Get one exam
// @Tags admin-exams
// @Produce json
// @Param exam_id path int true "Exam ID"
// @Success 200 {object} dto.ExamResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/exams/{exam_id} [get]
func (ctrl *ExamController) GetExam(c *gin.Context) {
	examID, ok := pathID(c, "exam_id")
	if !ok {
		return
	}
	resp, err := ctrl.examService.GetExam(examID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
