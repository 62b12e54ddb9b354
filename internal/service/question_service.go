package service

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/eyramt/examhall/internal/dto"
	"github.com/eyramt/examhall/internal/model"
	"github.com/eyramt/examhall/internal/repository"
)

// QuestionService manages an exam's question pool. The option policy is
// enforced at write time so the grader can trust the data:
//
//	mcq        at least 2 options, exactly one correct
//	true_false exactly 2 options, exactly one correct
//	math       options are accepted answers, any count, all marked correct
//	subjective at most 1 option (a rubric note), never marked correct
type QuestionService interface {
	AddQuestion(examID uint, req dto.QuestionCreateRequest) (*dto.QuestionAdminResponse, error)
	ListQuestions(examID uint) ([]dto.QuestionAdminResponse, error)
	DeleteQuestion(examID, questionID uint) error
}

type questionService struct {
	examRepo     repository.ExamRepository
	questionRepo repository.QuestionRepository
	validate     *validator.Validate
}

func NewQuestionService(examRepo repository.ExamRepository, questionRepo repository.QuestionRepository) QuestionService {
	return &questionService{
		examRepo:     examRepo,
		questionRepo: questionRepo,
		validate:     validator.New(),
	}
}

func (s *questionService) AddQuestion(examID uint, req dto.QuestionCreateRequest) (*dto.QuestionAdminResponse, error) {
	if _, err := s.examRepo.FindByID(examID); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	if err := validateOptionPolicy(req.QuestionType, req.Options); err != nil {
		return nil, err
	}

	marks := req.Marks
	if marks == 0 {
		marks = 1
	}
	question := model.ExamQuestion{
		ExamID:       examID,
		QuestionText: req.QuestionText,
		QuestionType: req.QuestionType,
		Marks:        marks,
	}
	for _, opt := range req.Options {
		question.Options = append(question.Options, model.ExamOption{
			Text:      opt.Text,
			IsCorrect: opt.IsCorrect,
		})
	}
	if err := s.questionRepo.Create(&question); err != nil {
		log.Error().Err(err).Uint("exam_id", examID).Msg("failed to create question")
		return nil, err
	}
	return questionToAdminResponse(&question), nil
}

func (s *questionService) ListQuestions(examID uint) ([]dto.QuestionAdminResponse, error) {
	questions, err := s.questionRepo.FindByExamID(examID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.QuestionAdminResponse, 0, len(questions))
	for i := range questions {
		resp = append(resp, *questionToAdminResponse(&questions[i]))
	}
	return resp, nil
}

func (s *questionService) DeleteQuestion(examID, questionID uint) error {
	question, err := s.questionRepo.FindByID(questionID)
	if err != nil {
		return err
	}
	if question.ExamID != examID {
		return errors.New("question does not belong to exam")
	}
	return s.questionRepo.Delete(questionID)
}

func validateOptionPolicy(questionType string, options []dto.OptionCreateRequest) error {
	correct := 0
	for _, opt := range options {
		if opt.IsCorrect {
			correct++
		}
	}
	switch questionType {
	case model.QuestionMCQ:
		if len(options) < 2 {
			return fmt.Errorf("mcq question needs at least 2 options, got %d", len(options))
		}
		if correct != 1 {
			return fmt.Errorf("mcq question needs exactly 1 correct option, got %d", correct)
		}
	case model.QuestionTrueFalse:
		if len(options) != 2 {
			return fmt.Errorf("true_false question needs exactly 2 options, got %d", len(options))
		}
		if correct != 1 {
			return fmt.Errorf("true_false question needs exactly 1 correct option, got %d", correct)
		}
	case model.QuestionMath:
		// Options hold the accepted answer values; several are legal.
		if correct != len(options) {
			return errors.New("math options are accepted answers and must be marked correct")
		}
	case model.QuestionSubjective:
		if len(options) > 1 {
			return errors.New("subjective question takes at most 1 rubric option")
		}
		if correct != 0 {
			return errors.New("subjective option cannot be marked correct")
		}
	}
	return nil
}

func questionToAdminResponse(q *model.ExamQuestion) *dto.QuestionAdminResponse {
	resp := dto.QuestionAdminResponse{
		ID:           q.ID,
		ExamID:       q.ExamID,
		QuestionText: q.QuestionText,
		QuestionType: q.QuestionType,
		Marks:        q.Marks,
	}
	for _, opt := range q.Options {
		resp.Options = append(resp.Options, dto.OptionAdminResponse{
			ID:        opt.ID,
			Text:      opt.Text,
			IsCorrect: opt.IsCorrect,
		})
	}
	return &resp
}
