package student

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

// ListQuizzes godoc
// @Summary List the student's quizzes
// @Tags student-quizzes
// @Produce json
// @Success 200 {array} dto.QuizResponse
// @Router /quizzes [get]
func (ctrl *QuizController) ListQuizzes(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	resp, err := ctrl.quizService.ListQuizzes(p.Class)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Instructions godoc
// @Summary View the quiz instructions and remaining attempts
// @Tags student-quizzes
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Success 200 {object} dto.QuizInstructionsResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /quizzes/{quiz_id}/instructions [get]
func (ctrl *QuizController) Instructions(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	quizID, ok := pathID(c, "quiz_id")
	if !ok {
		return
	}
	resp, err := ctrl.quizService.Instructions(quizID, p.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TakeView godoc
// @Summary Open the quiz for answering; consumes one attempt
// @Tags student-quizzes
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Success 200 {object} dto.QuizTakeViewResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /quizzes/{quiz_id}/take [post]
func (ctrl *QuizController) TakeView(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	quizID, ok := pathID(c, "quiz_id")
	if !ok {
		return
	}
	resp, err := ctrl.quizService.TakeView(quizID, p.Code, p.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Timer godoc
// @Summary Anchor or read the quiz countdown
// @Tags student-quizzes
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Success 200 {object} dto.TimerResponse
// @Router /quizzes/{quiz_id}/timer [post]
func (ctrl *QuizController) Timer(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	quizID, ok := pathID(c, "quiz_id")
	if !ok {
		return
	}
	resp, err := ctrl.quizService.StartTimer(quizID, p.Code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Autosave godoc
// @Summary Save the in-progress quiz answers
// @Tags student-quizzes
// @Accept json
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Param body body dto.AutosaveRequest true "Answers"
// @Success 200 {object} dto.MessageResponse
// @Router /quizzes/{quiz_id}/autosave [post]
func (ctrl *QuizController) Autosave(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	quizID, ok := pathID(c, "quiz_id")
	if !ok {
		return
	}
	var req dto.AutosaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	if err := ctrl.quizService.Autosave(quizID, p.Code, req.Answers); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "answers saved"})
}

// Submit godoc
// @Summary Submit the quiz for grading
// @Tags student-quizzes
// @Accept json
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Param body body dto.QuizSubmitRequest false "Answers; autosaved answers used when omitted"
// @Success 200 {object} dto.QuizSubmitResponse
// @Router /quizzes/{quiz_id}/submit [post]
func (ctrl *QuizController) Submit(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	quizID, ok := pathID(c, "quiz_id")
	if !ok {
		return
	}
	var req dto.QuizSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req.Answers = nil
	}
	resp, err := ctrl.quizService.Submit(quizID, p.Code, p.ID, req.Answers)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SubmittedPoll godoc
// @Summary Check whether the quiz has been submitted
// @Tags student-quizzes
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Success 200 {object} dto.SubmittedPollResponse
// @Router /quizzes/{quiz_id}/submitted [get]
func (ctrl *QuizController) SubmittedPoll(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	quizID, ok := pathID(c, "quiz_id")
	if !ok {
		return
	}
	resp, err := ctrl.quizService.SubmittedPoll(quizID, p.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Result godoc
// @Summary Get a quiz submission's result
// @Tags student-quizzes
// @Produce json
// @Param submission_id path int true "Submission ID"
// @Success 200 {object} dto.QuizResultResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /quiz-results/{submission_id} [get]
func (ctrl *QuizController) Result(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	submissionID, ok := pathID(c, "submission_id")
	if !ok {
		return
	}
	resp, err := ctrl.quizService.Result(submissionID, p.ID, isStaff(p))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
