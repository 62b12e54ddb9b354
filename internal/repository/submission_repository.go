package repository

import (
	"github.com/eyramt/examhall/internal/model"
	"gorm.io/gorm"
)

type SubmissionRepository interface {
	// Create inserts the submission; the (exam_id, student_id) unique index
	// rejects a second row, surfacing gorm.ErrDuplicatedKey.
	Create(submission *model.ExamSubmission) error
	FindByID(id uint) (*model.ExamSubmission, error)
	FindByExamAndStudent(examID, studentID uint) (*model.ExamSubmission, error)
}

type submissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(submission *model.ExamSubmission) error {
	return r.db.Create(submission).Error
}

func (r *submissionRepository) FindByID(id uint) (*model.ExamSubmission, error) {
	var submission model.ExamSubmission
	err := r.db.
		Preload("Exam").
		Preload("ExamSet.SetQuestions.Question").
		First(&submission, id).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *submissionRepository) FindByExamAndStudent(examID, studentID uint) (*model.ExamSubmission, error) {
	var submission model.ExamSubmission
	err := r.db.
		Where("exam_id = ? AND student_id = ?", examID, studentID).
		First(&submission).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}
