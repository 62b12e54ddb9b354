package repository

import (
	"github.com/eyramt/examhall/internal/model"
	"gorm.io/gorm"
)

type SetRepository interface {
	Create(set *model.ExamSet) error
	Update(set *model.ExamSet) error
	Delete(id uint) error
	FindByID(id uint) (*model.ExamSet, error)
	FindByIDForExam(id, examID uint) (*model.ExamSet, error)
	// FindByExamID returns the exam's sets ordered by id; hash-mode
	// assignment indexes into this ordering.
	FindByExamID(examID uint) ([]model.ExamSet, error)
	FindLink(setID, questionID uint) (*model.ExamSetQuestion, error)
	CreateLink(link *model.ExamSetQuestion) error
	DeleteLink(setID, questionID uint) error
	UpdateLinkOrder(setID, questionID uint, order int) error
	MaxOrder(setID uint) (int, error)
	// QuestionsForSet returns the set's questions with options, ordered by
	// the link's position.
	QuestionsForSet(setID uint) ([]model.ExamQuestion, error)
}

type setRepository struct {
	db *gorm.DB
}

func NewSetRepository(db *gorm.DB) SetRepository {
	return &setRepository{db: db}
}

func (r *setRepository) Create(set *model.ExamSet) error {
	return r.db.Create(set).Error
}

func (r *setRepository) Update(set *model.ExamSet) error {
	return r.db.Save(set).Error
}

func (r *setRepository) Delete(id uint) error {
	return r.db.Delete(&model.ExamSet{}, id).Error
}

func (r *setRepository) FindByID(id uint) (*model.ExamSet, error) {
	var set model.ExamSet
	err := r.db.
		Preload("SetQuestions", func(db *gorm.DB) *gorm.DB {
			return db.Order("exam_set_questions.question_order ASC")
		}).
		Preload("SetQuestions.Question").
		First(&set, id).Error
	if err != nil {
		return nil, err
	}
	return &set, nil
}

func (r *setRepository) FindByIDForExam(id, examID uint) (*model.ExamSet, error) {
	var set model.ExamSet
	err := r.db.
		Preload("SetQuestions", func(db *gorm.DB) *gorm.DB {
			return db.Order("exam_set_questions.question_order ASC")
		}).
		Preload("SetQuestions.Question").
		Where("id = ? AND exam_id = ?", id, examID).
		First(&set).Error
	if err != nil {
		return nil, err
	}
	return &set, nil
}

func (r *setRepository) FindByExamID(examID uint) ([]model.ExamSet, error) {
	var sets []model.ExamSet
	err := r.db.
		Preload("SetQuestions.Question").
		Where("exam_id = ?", examID).
		Order("id ASC").
		Find(&sets).Error
	if err != nil {
		return nil, err
	}
	return sets, nil
}

func (r *setRepository) FindLink(setID, questionID uint) (*model.ExamSetQuestion, error) {
	var link model.ExamSetQuestion
	err := r.db.Where("set_id = ? AND question_id = ?", setID, questionID).First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *setRepository) CreateLink(link *model.ExamSetQuestion) error {
	return r.db.Create(link).Error
}

func (r *setRepository) DeleteLink(setID, questionID uint) error {
	return r.db.
		Where("set_id = ? AND question_id = ?", setID, questionID).
		Delete(&model.ExamSetQuestion{}).Error
}

func (r *setRepository) UpdateLinkOrder(setID, questionID uint, order int) error {
	return r.db.Model(&model.ExamSetQuestion{}).
		Where("set_id = ? AND question_id = ?", setID, questionID).
		Update("question_order", order).Error
}

func (r *setRepository) MaxOrder(setID uint) (int, error) {
	var max *int
	err := r.db.Model(&model.ExamSetQuestion{}).
		Where("set_id = ?", setID).
		Select("MAX(question_order)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

func (r *setRepository) QuestionsForSet(setID uint) ([]model.ExamQuestion, error) {
	var questions []model.ExamQuestion
	err := r.db.Model(&model.ExamQuestion{}).
		Joins("JOIN exam_set_questions ON exam_set_questions.question_id = exam_questions.id").
		Where("exam_set_questions.set_id = ? AND exam_set_questions.deleted_at IS NULL", setID).
		Order("exam_set_questions.question_order ASC").
		Preload("Options").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}
