package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/eyramt/examhall/config"
	"github.com/eyramt/examhall/database"
	_ "github.com/eyramt/examhall/docs" // Swagger docs - auto-generated
	"github.com/eyramt/examhall/internal/controller"
	adminctrl "github.com/eyramt/examhall/internal/controller/admin"
	studentctrl "github.com/eyramt/examhall/internal/controller/student"
	"github.com/eyramt/examhall/internal/jobs"
	"github.com/eyramt/examhall/internal/logger"
	"github.com/eyramt/examhall/internal/middleware"
	"github.com/eyramt/examhall/internal/model"
	"github.com/eyramt/examhall/internal/repository"
	"github.com/eyramt/examhall/internal/service"
	"github.com/eyramt/examhall/internal/session"
)

// @title ExamHall API
// @version 1.0
// @description School exam and quiz backend: question pools, parallel sets, assignment, attempts and scoring.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
			NewSessionStore,
			func(store *session.MemoryStore) session.Store { return store },
			session.NewScratch,
			jobs.NewSweeper,
		),

		fx.Provide(
			repository.NewExamRepository,
			repository.NewQuestionRepository,
			repository.NewSetRepository,
			repository.NewAttemptRepository,
			repository.NewSubmissionRepository,
			repository.NewQuizRepository,
		),

		fx.Provide(
			service.NewExamService,
			service.NewQuestionService,
			service.NewSetBuilderService,
			service.NewAssignmentService,
			service.NewAttemptService,
			func(submissionRepo repository.SubmissionRepository, cfg *config.Config) service.ResultService {
				return service.NewResultService(submissionRepo, cfg.Exam.DefaultPassPercent)
			},
			service.NewQuizService,
		),

		fx.Provide(
			adminctrl.NewExamController,
			adminctrl.NewQuestionController,
			adminctrl.NewSetController,
			adminctrl.NewQuizController,
			studentctrl.NewExamController,
			studentctrl.NewQuizController,
			controller.NewController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
		fx.Invoke(StartSweeper),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func NewSessionStore(cfg *config.Config) *session.MemoryStore {
	return session.NewMemoryStore(cfg.Session.TTL)
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	ctrl *controller.Controller,
) {
	ctrl.RegisterRoutes(router)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("ExamHall API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func StartSweeper(lc fx.Lifecycle, sweeper *jobs.Sweeper) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return sweeper.Start()
		},
		OnStop: func(ctx context.Context) error {
			sweeper.Stop()
			return nil
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Exam{},
		&model.ExamQuestion{},
		&model.ExamOption{},
		&model.ExamSet{},
		&model.ExamSetQuestion{},
		&model.ExamAttempt{},
		&model.ExamSubmission{},
		&model.Quiz{},
		&model.QuizQuestion{},
		&model.QuizOption{},
		&model.QuizAttempt{},
		&model.QuizSubmission{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
