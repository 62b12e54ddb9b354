package repository

import (
	"github.com/eyramt/examhall/internal/model"
	"gorm.io/gorm"
)

type AttemptRepository interface {
	Create(attempt *model.ExamAttempt) error
	Update(attempt *model.ExamAttempt) error
	FindForStudent(id, examID, studentID uint) (*model.ExamAttempt, error)
	// FindLatestOpen returns the student's most recent unsubmitted attempt
	// for the exam.
	FindLatestOpen(examID, studentID uint) (*model.ExamAttempt, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Create(attempt *model.ExamAttempt) error {
	return r.db.Create(attempt).Error
}

func (r *attemptRepository) Update(attempt *model.ExamAttempt) error {
	return r.db.Save(attempt).Error
}

func (r *attemptRepository) FindForStudent(id, examID, studentID uint) (*model.ExamAttempt, error) {
	var attempt model.ExamAttempt
	err := r.db.
		Where("id = ? AND exam_id = ? AND student_id = ?", id, examID, studentID).
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) FindLatestOpen(examID, studentID uint) (*model.ExamAttempt, error) {
	var attempt model.ExamAttempt
	err := r.db.
		Where("exam_id = ? AND student_id = ? AND submitted = ?", examID, studentID, false).
		Order("start_time DESC").
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}
