package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eyramt/examhall/internal/dto"
	"github.com/eyramt/examhall/internal/service"
)

type QuizController struct {
	quizService service.QuizService
}

func NewQuizController(quizService service.QuizService) *QuizController {
	return &QuizController{quizService: quizService}
}

// CreateQuiz godoc
// @Summary Create a quiz
// @Tags admin-quizzes
// @Accept json
// @Produce json
// @Param quiz body dto.QuizCreateRequest true "Quiz"
// @Success 201 {object} dto.QuizResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/quizzes [post]
func (ctrl *QuizController) CreateQuiz(c *gin.Context) {
	var req dto.QuizCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.quizService.CreateQuiz(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListQuizzes godoc
// @Summary List all quizzes
// @Tags admin-quizzes
// @Produce json
// @Success 200 {array} dto.QuizResponse
// @Router /admin/quizzes [get]
func (ctrl *QuizController) ListQuizzes(c *gin.Context) {
	resp, err := ctrl.quizService.ListQuizzes("")
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AddQuizQuestion godoc
// @Summary Add a question to a quiz
// @Tags admin-quizzes
// @Accept json
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Param question body dto.QuizQuestionCreateRequest true "Question"
// @Success 201 {object} dto.QuizQuestionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/quizzes/{quiz_id}/questions [post]
func (ctrl *QuizController) AddQuizQuestion(c *gin.Context) {
	quizID, ok := pathID(c, "quiz_id")
	if !ok {
		return
	}
	var req dto.QuizQuestionCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.quizService.AddQuestion(quizID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
