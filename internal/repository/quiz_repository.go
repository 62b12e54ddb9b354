package repository

import (
	"github.com/eyramt/examhall/internal/model"
	"gorm.io/gorm"
)

type QuizRepository interface {
	Create(quiz *model.Quiz) error
	FindAll() ([]model.Quiz, error)
	FindByIDWithQuestions(id uint) (*model.Quiz, error)
	AddQuestion(question *model.QuizQuestion) error
	CountAttempts(quizID, studentID uint) (int64, error)
	CreateAttempt(attempt *model.QuizAttempt) error
	CreateSubmission(submission *model.QuizSubmission) error
	FindSubmissionByID(id uint) (*model.QuizSubmission, error)
	FindSubmission(quizID, studentID uint) (*model.QuizSubmission, error)
}

type quizRepository struct {
	db *gorm.DB
}

func NewQuizRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) Create(quiz *model.Quiz) error {
	return r.db.Create(quiz).Error
}

func (r *quizRepository) FindAll() ([]model.Quiz, error) {
	var quizzes []model.Quiz
	if err := r.db.Order("start_datetime DESC").Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *quizRepository) FindByIDWithQuestions(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("quiz_questions.id ASC")
		}).
		Preload("Questions.Options").
		First(&quiz, id).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) AddQuestion(question *model.QuizQuestion) error {
	return r.db.Create(question).Error
}

func (r *quizRepository) CountAttempts(quizID, studentID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.QuizAttempt{}).
		Where("quiz_id = ? AND student_id = ?", quizID, studentID).
		Count(&count).Error
	return count, err
}

func (r *quizRepository) CreateAttempt(attempt *model.QuizAttempt) error {
	return r.db.Create(attempt).Error
}

func (r *quizRepository) CreateSubmission(submission *model.QuizSubmission) error {
	return r.db.Create(submission).Error
}

func (r *quizRepository) FindSubmissionByID(id uint) (*model.QuizSubmission, error) {
	var submission model.QuizSubmission
	err := r.db.Preload("Quiz.Questions").First(&submission, id).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *quizRepository) FindSubmission(quizID, studentID uint) (*model.QuizSubmission, error) {
	var submission model.QuizSubmission
	err := r.db.
		Where("quiz_id = ? AND student_id = ?", quizID, studentID).
		Order("submitted_at DESC").
		First(&submission).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}
