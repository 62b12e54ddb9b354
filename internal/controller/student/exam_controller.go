package student

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/eyramt/examhall/internal/dto"
	"github.com/eyramt/examhall/internal/middleware"
	"github.com/eyramt/examhall/internal/service"
)

type ExamController struct {
	attemptService service.AttemptService
	resultService  service.ResultService
}

func NewExamController(attemptService service.AttemptService, resultService service.ResultService) *ExamController {
	return &ExamController{attemptService: attemptService, resultService: resultService}
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

func principal(c *gin.Context) (middleware.Principal, bool) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "not authenticated"})
	}
	return p, ok
}

// isStaff reports whether the caller may read any student's results.
func isStaff(p middleware.Principal) bool {
	return p.Role == middleware.RoleAdmin || p.Role == middleware.RoleTeacher
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "not found"})
	case errors.Is(err, service.ErrExamNotOpen):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrWrongPassword),
		errors.Is(err, service.ErrNotVerified),
		errors.Is(err, service.ErrAttemptLimit),
		errors.Is(err, service.ErrResultForbidden):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrAlreadySubmitted),
		errors.Is(err, service.ErrChoiceRequired),
		errors.Is(err, service.ErrNoSetsAvailable):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}
}

// Dashboard godoc
// @Summary List the student's exams with status and submission state
// @Tags student-exams
// @Produce json
// @Success 200 {array} dto.DashboardExamResponse
// @Router /exams [get]
func (ctrl *ExamController) Dashboard(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	resp, err := ctrl.attemptService.Dashboard(p.ID, p.Class)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Assignment godoc
// @Summary Preview which set the student would sit
// @Tags student-exams
// @Produce json
// @Param exam_id path int true "Exam ID"
// @Success 200 {object} dto.AssignmentResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /exams/{exam_id}/assignment [get]
func (ctrl *ExamController) Assignment(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	examID, ok := pathID(c, "exam_id")
	if !ok {
		return
	}
	resp, err := ctrl.attemptService.PreviewAssignment(examID, p.Code, p.Code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SelectSet godoc
// @Summary Choose a set on a choice-mode exam
// @Tags student-exams
// @Accept json
// @Produce json
// @Param exam_id path int true "Exam ID"
// @Param body body dto.SelectSetRequest true "Chosen set"
// @Success 200 {object} dto.AssignmentResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /exams/{exam_id}/select-set [post]
func (ctrl *ExamController) SelectSet(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	examID, ok := pathID(c, "exam_id")
	if !ok {
		return
	}
	var req dto.SelectSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.attemptService.SelectSet(examID, p.Code, req.SetID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// VerifyPassword godoc
// @Summary Verify the assigned set's access password
// @Tags student-exams
// @Accept json
// @Produce json
// @Param exam_id path int true "Exam ID"
// @Param body body dto.PasswordRequest true "Set password"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /exams/{exam_id}/password [post]
func (ctrl *ExamController) VerifyPassword(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	examID, ok := pathID(c, "exam_id")
	if !ok {
		return
	}
	var req dto.PasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	if err := ctrl.attemptService.VerifyPassword(examID, p.Code, p.Code, req.Password); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "password accepted"})
}

// Start godoc
// @Summary Start an attempt, committing the set assignment
// @Tags student-exams
// @Produce json
// @Param exam_id path int true "Exam ID"
// @Success 201 {object} dto.StartAttemptResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /exams/{exam_id}/start [post]
func (ctrl *ExamController) Start(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	examID, ok := pathID(c, "exam_id")
	if !ok {
		return
	}
	resp, err := ctrl.attemptService.Start(examID, p.Code, p.Code, p.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// TakeView godoc
// @Summary Get the attempt's paper and saved answers
// @Tags student-exams
// @Produce json
// @Param exam_id path int true "Exam ID"
// @Param attempt_id path int true "Attempt ID"
// @Success 200 {object} dto.TakeViewResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /exams/{exam_id}/attempts/{attempt_id} [get]
func (ctrl *ExamController) TakeView(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	examID, ok := pathID(c, "exam_id")
	if !ok {
		return
	}
	attemptID, ok := pathID(c, "attempt_id")
	if !ok {
		return
	}
	resp, err := ctrl.attemptService.TakeView(examID, attemptID, p.Code, p.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Timer godoc
// @Summary Anchor or read the countdown for this exam
// @Tags student-exams
// @Produce json
// @Param exam_id path int true "Exam ID"
// @Success 200 {object} dto.TimerResponse
// @Router /exams/{exam_id}/timer [post]
func (ctrl *ExamController) Timer(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	examID, ok := pathID(c, "exam_id")
	if !ok {
		return
	}
	resp, err := ctrl.attemptService.StartTimer(examID, p.Code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Autosave godoc
// @Summary Save the in-progress answer map
// @Tags student-exams
// @Accept json
// @Produce json
// @Param exam_id path int true "Exam ID"
// @Param body body dto.AutosaveRequest true "Answers"
// @Success 200 {object} dto.MessageResponse
// @Router /exams/{exam_id}/autosave [post]
func (ctrl *ExamController) Autosave(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	examID, ok := pathID(c, "exam_id")
	if !ok {
		return
	}
	var req dto.AutosaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	if err := ctrl.attemptService.Autosave(examID, p.Code, req.Answers); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "answers saved"})
}

// Submit godoc
// @Summary Submit the attempt for grading
// @Tags student-exams
// @Accept json
// @Produce json
// @Param exam_id path int true "Exam ID"
// @Param attempt_id path int true "Attempt ID"
// @Param body body dto.SubmitRequest false "Answers; autosaved answers used when omitted"
// @Success 200 {object} dto.SubmitResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /exams/{exam_id}/attempts/{attempt_id}/submit [post]
func (ctrl *ExamController) Submit(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	examID, ok := pathID(c, "exam_id")
	if !ok {
		return
	}
	attemptID, ok := pathID(c, "attempt_id")
	if !ok {
		return
	}
	// An empty or absent body is allowed; grading falls back to autosave.
	var req dto.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req.Answers = nil
	}
	resp, err := ctrl.attemptService.Submit(examID, attemptID, p.Code, p.ID, req.Answers)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SubmittedPoll godoc
// @Summary Check whether the exam has been submitted
// @Tags student-exams
// @Produce json
// @Param exam_id path int true "Exam ID"
// @Success 200 {object} dto.SubmittedPollResponse
// @Router /exams/{exam_id}/submitted [get]
func (ctrl *ExamController) SubmittedPoll(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	examID, ok := pathID(c, "exam_id")
	if !ok {
		return
	}
	resp, err := ctrl.attemptService.SubmittedPoll(examID, p.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Result godoc
// @Summary Get the projected result of a submission
// @Tags student-exams
// @Produce json
// @Param submission_id path int true "Submission ID"
// @Success 200 {object} dto.ResultResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /exam-results/{submission_id} [get]
func (ctrl *ExamController) Result(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	submissionID, ok := pathID(c, "submission_id")
	if !ok {
		return
	}
	resp, err := ctrl.resultService.Project(submissionID, p.ID, isStaff(p))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
