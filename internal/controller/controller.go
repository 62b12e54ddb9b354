package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/eyramt/examhall/config"
	"github.com/eyramt/examhall/internal/controller/admin"
	"github.com/eyramt/examhall/internal/controller/student"
	"github.com/eyramt/examhall/internal/middleware"
)

type Controller struct {
	cfg *config.Config

	adminExam     *admin.ExamController
	adminQuestion *admin.QuestionController
	adminSet      *admin.SetController
	adminQuiz     *admin.QuizController

	studentExam *student.ExamController
	studentQuiz *student.QuizController
}

func NewController(
	cfg *config.Config,
	adminExam *admin.ExamController,
	adminQuestion *admin.QuestionController,
	adminSet *admin.SetController,
	adminQuiz *admin.QuizController,
	studentExam *student.ExamController,
	studentQuiz *student.QuizController,
) *Controller {
	return &Controller{
		cfg:           cfg,
		adminExam:     adminExam,
		adminQuestion: adminQuestion,
		adminSet:      adminSet,
		adminQuiz:     adminQuiz,
		studentExam:   studentExam,
		studentQuiz:   studentQuiz,
	}
}

func (ctrl *Controller) RegisterRoutes(router *gin.Engine) {
	apiV1 := router.Group("/api/v1")
	apiV1.Use(middleware.Auth(ctrl.cfg.Auth.SigningKey))
	{
		adminGroup := apiV1.Group("/admin")
		adminGroup.Use(middleware.RequireRole(middleware.RoleAdmin, middleware.RoleTeacher))
		{
			exams := adminGroup.Group("/exams")
			exams.POST("", ctrl.adminExam.CreateExam)
			exams.GET("", ctrl.adminExam.ListExams)
			exams.GET("/:exam_id", ctrl.adminExam.GetExam)

			exams.POST("/:exam_id/questions", ctrl.adminQuestion.AddQuestion)
			exams.GET("/:exam_id/questions", ctrl.adminQuestion.ListQuestions)
			exams.DELETE("/:exam_id/questions/:question_id", ctrl.adminQuestion.DeleteQuestion)

			exams.POST("/:exam_id/sets", ctrl.adminSet.CreateSet)
			exams.GET("/:exam_id/sets", ctrl.adminSet.ListSets)
			exams.GET("/:exam_id/sets/:set_id", ctrl.adminSet.GetSet)
			exams.PUT("/:exam_id/sets/:set_id", ctrl.adminSet.UpdateSet)
			exams.DELETE("/:exam_id/sets/:set_id", ctrl.adminSet.DeleteSet)
			exams.POST("/:exam_id/sets/:set_id/questions", ctrl.adminSet.AddSetQuestions)
			exams.DELETE("/:exam_id/sets/:set_id/questions/:question_id", ctrl.adminSet.RemoveSetQuestion)
			exams.PUT("/:exam_id/sets/:set_id/order", ctrl.adminSet.ReorderSet)

			quizzes := adminGroup.Group("/quizzes")
			quizzes.POST("", ctrl.adminQuiz.CreateQuiz)
			quizzes.GET("", ctrl.adminQuiz.ListQuizzes)
			quizzes.POST("/:quiz_id/questions", ctrl.adminQuiz.AddQuizQuestion)
		}

		studentGroup := apiV1.Group("")
		studentGroup.Use(middleware.RequireRole(middleware.RoleStudent))
		{
			exams := studentGroup.Group("/exams")
			exams.GET("", ctrl.studentExam.Dashboard)
			exams.GET("/:exam_id/assignment", ctrl.studentExam.Assignment)
			exams.POST("/:exam_id/select-set", ctrl.studentExam.SelectSet)
			exams.POST("/:exam_id/password", ctrl.studentExam.VerifyPassword)
			exams.POST("/:exam_id/start", ctrl.studentExam.Start)
			exams.GET("/:exam_id/attempts/:attempt_id", ctrl.studentExam.TakeView)
			exams.POST("/:exam_id/timer", ctrl.studentExam.Timer)
			exams.POST("/:exam_id/autosave", ctrl.studentExam.Autosave)
			exams.POST("/:exam_id/attempts/:attempt_id/submit", ctrl.studentExam.Submit)
			exams.GET("/:exam_id/submitted", ctrl.studentExam.SubmittedPoll)

			quizzes := studentGroup.Group("/quizzes")
			quizzes.GET("", ctrl.studentQuiz.ListQuizzes)
			quizzes.GET("/:quiz_id/instructions", ctrl.studentQuiz.Instructions)
			quizzes.POST("/:quiz_id/take", ctrl.studentQuiz.TakeView)
			quizzes.POST("/:quiz_id/timer", ctrl.studentQuiz.Timer)
			quizzes.POST("/:quiz_id/autosave", ctrl.studentQuiz.Autosave)
			quizzes.POST("/:quiz_id/submit", ctrl.studentQuiz.Submit)
			quizzes.GET("/:quiz_id/submitted", ctrl.studentQuiz.SubmittedPoll)
		}

		// Results are readable by the owning student and by admins, so they
		// sit outside the role-scoped groups.
		apiV1.GET("/exam-results/:submission_id", ctrl.studentExam.Result)
		apiV1.GET("/quiz-results/:submission_id", ctrl.studentQuiz.Result)
	}
}
