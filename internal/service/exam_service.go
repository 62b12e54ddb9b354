package service

import (
	"errors"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"

	"github.com/eyramt/examhall/internal/dto"
	"github.com/eyramt/examhall/internal/model"
	"github.com/eyramt/examhall/internal/repository"
)

type ExamService interface {
	CreateExam(req dto.ExamCreateRequest) (*dto.ExamResponse, error)
	GetExam(id uint) (*dto.ExamResponse, error)
	ListExams() ([]dto.ExamResponse, error)
}

type examService struct {
	examRepo repository.ExamRepository
}

func NewExamService(examRepo repository.ExamRepository) ExamService {
	return &examService{examRepo: examRepo}
}

func (s *examService) CreateExam(req dto.ExamCreateRequest) (*dto.ExamResponse, error) {
	if !req.EndDatetime.After(req.StartDatetime) {
		return nil, errors.New("end_datetime must be after start_datetime")
	}

	mode := req.AssignmentMode
	if mode == "" {
		mode = model.AssignRandom
	}
	exam := model.Exam{
		Subject:         req.Subject,
		Title:           req.Title,
		Description:     req.Description,
		AssignedClass:   req.AssignedClass,
		DurationMinutes: req.DurationMinutes,
		StartDatetime:   req.StartDatetime,
		EndDatetime:     req.EndDatetime,
		AssignmentMode:  mode,
		AssignmentSeed:  req.AssignmentSeed,
		PassPercent:     req.PassPercent,
	}
	if err := s.examRepo.Create(&exam); err != nil {
		log.Error().Err(err).Msg("failed to create exam")
		return nil, err
	}

	var resp dto.ExamResponse
	if err := copier.Copy(&resp, &exam); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *examService) GetExam(id uint) (*dto.ExamResponse, error) {
	exam, err := s.examRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	var resp dto.ExamResponse
	if err := copier.Copy(&resp, exam); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *examService) ListExams() ([]dto.ExamResponse, error) {
	exams, err := s.examRepo.FindAll()
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ExamResponse, 0, len(exams))
	for i := range exams {
		var item dto.ExamResponse
		if err := copier.Copy(&item, &exams[i]); err != nil {
			return nil, err
		}
		resp = append(resp, item)
	}
	return resp, nil
}
