package repository

import (
	"github.com/eyramt/examhall/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	Create(question *model.ExamQuestion) error
	FindByID(id uint) (*model.ExamQuestion, error)
	FindByExamID(examID uint) ([]model.ExamQuestion, error)
	Delete(id uint) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(question *model.ExamQuestion) error {
	return r.db.Create(question).Error
}

func (r *questionRepository) FindByID(id uint) (*model.ExamQuestion, error) {
	var question model.ExamQuestion
	if err := r.db.Preload("Options").First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindByExamID(examID uint) ([]model.ExamQuestion, error) {
	var questions []model.ExamQuestion
	err := r.db.Preload("Options").
		Where("exam_id = ?", examID).
		Order("id ASC").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) Delete(id uint) error {
	return r.db.Delete(&model.ExamQuestion{}, id).Error
}
