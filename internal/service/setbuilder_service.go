package service

import (
	"errors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/eyramt/examhall/internal/dto"
	"github.com/eyramt/examhall/internal/model"
	"github.com/eyramt/examhall/internal/repository"
)

// SetBuilderService manages the parallel papers of an exam: creating sets,
// linking pool questions into them and keeping the link order contiguous.
type SetBuilderService interface {
	CreateSet(examID uint, req dto.SetCreateRequest) (*dto.SetResponse, error)
	UpdateSet(examID, setID uint, req dto.SetUpdateRequest) (*dto.SetResponse, error)
	DeleteSet(examID, setID uint) error
	GetSet(examID, setID uint) (*dto.SetResponse, error)
	ListSets(examID uint) ([]dto.SetResponse, error)
	AddQuestions(examID, setID uint, questionIDs []uint) (*dto.SetAddQuestionsResponse, error)
	RemoveQuestion(examID, setID, questionID uint) error
	Reorder(examID, setID uint, questionIDs []uint) (*dto.SetResponse, error)
}

type setBuilderService struct {
	examRepo     repository.ExamRepository
	setRepo      repository.SetRepository
	questionRepo repository.QuestionRepository
}

func NewSetBuilderService(examRepo repository.ExamRepository, setRepo repository.SetRepository, questionRepo repository.QuestionRepository) SetBuilderService {
	return &setBuilderService{examRepo: examRepo, setRepo: setRepo, questionRepo: questionRepo}
}

func (s *setBuilderService) CreateSet(examID uint, req dto.SetCreateRequest) (*dto.SetResponse, error) {
	if _, err := s.examRepo.FindByID(examID); err != nil {
		return nil, err
	}
	set := model.ExamSet{
		ExamID:         examID,
		Name:           req.Name,
		AccessPassword: req.AccessPassword,
	}
	if err := s.setRepo.Create(&set); err != nil {
		log.Error().Err(err).Uint("exam_id", examID).Msg("failed to create set")
		return nil, err
	}
	return setToResponse(&set), nil
}

func (s *setBuilderService) UpdateSet(examID, setID uint, req dto.SetUpdateRequest) (*dto.SetResponse, error) {
	set, err := s.setRepo.FindByIDForExam(setID, examID)
	if err != nil {
		return nil, err
	}
	if req.Name != "" {
		set.Name = req.Name
	}
	if req.AccessPassword != "" {
		set.AccessPassword = req.AccessPassword
	}
	if err := s.setRepo.Update(set); err != nil {
		return nil, err
	}
	return setToResponse(set), nil
}

func (s *setBuilderService) DeleteSet(examID, setID uint) error {
	if _, err := s.setRepo.FindByIDForExam(setID, examID); err != nil {
		return err
	}
	return s.setRepo.Delete(setID)
}

func (s *setBuilderService) GetSet(examID, setID uint) (*dto.SetResponse, error) {
	set, err := s.setRepo.FindByIDForExam(setID, examID)
	if err != nil {
		return nil, err
	}
	return setToResponse(set), nil
}

func (s *setBuilderService) ListSets(examID uint) ([]dto.SetResponse, error) {
	sets, err := s.setRepo.FindByExamID(examID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.SetResponse, 0, len(sets))
	for i := range sets {
		resp = append(resp, *setToResponse(&sets[i]))
	}
	return resp, nil
}

// AddQuestions links pool questions to the set, appending after the current
// highest position. Ids already in the set or outside the exam's pool are
// skipped and reported, not failed.
func (s *setBuilderService) AddQuestions(examID, setID uint, questionIDs []uint) (*dto.SetAddQuestionsResponse, error) {
	set, err := s.setRepo.FindByIDForExam(setID, examID)
	if err != nil {
		return nil, err
	}
	maxOrder, err := s.setRepo.MaxOrder(set.ID)
	if err != nil {
		return nil, err
	}

	resp := dto.SetAddQuestionsResponse{Added: []uint{}, Skipped: []uint{}}
	next := maxOrder
	for _, qid := range questionIDs {
		question, err := s.questionRepo.FindByID(qid)
		if err != nil || question.ExamID != examID {
			resp.Skipped = append(resp.Skipped, qid)
			continue
		}
		if _, err := s.setRepo.FindLink(set.ID, qid); err == nil {
			resp.Skipped = append(resp.Skipped, qid)
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		next++
		link := model.ExamSetQuestion{SetID: set.ID, QuestionID: qid, Order: next}
		if err := s.setRepo.CreateLink(&link); err != nil {
			return nil, err
		}
		resp.Added = append(resp.Added, qid)
	}
	return &resp, nil
}

func (s *setBuilderService) RemoveQuestion(examID, setID, questionID uint) error {
	if _, err := s.setRepo.FindByIDForExam(setID, examID); err != nil {
		return err
	}
	if _, err := s.setRepo.FindLink(setID, questionID); err != nil {
		return err
	}
	return s.setRepo.DeleteLink(setID, questionID)
}

// Reorder renumbers the set's questions 1-based in the order given. Ids not
// linked to the set are ignored; linked questions missing from the request
// keep their old positions, which may leave gaps.
func (s *setBuilderService) Reorder(examID, setID uint, questionIDs []uint) (*dto.SetResponse, error) {
	set, err := s.setRepo.FindByIDForExam(setID, examID)
	if err != nil {
		return nil, err
	}
	linked := make(map[uint]bool, len(set.SetQuestions))
	for _, sq := range set.SetQuestions {
		linked[sq.QuestionID] = true
	}
	pos := 0
	for _, qid := range questionIDs {
		if !linked[qid] {
			continue
		}
		pos++
		if err := s.setRepo.UpdateLinkOrder(set.ID, qid, pos); err != nil {
			return nil, err
		}
	}
	return s.GetSet(examID, setID)
}

func setToResponse(set *model.ExamSet) *dto.SetResponse {
	resp := dto.SetResponse{
		ID:            set.ID,
		ExamID:        set.ExamID,
		Name:          set.Name,
		QuestionCount: len(set.SetQuestions),
		MaxScore:      set.ComputedMaxScore(),
	}
	for _, sq := range set.SetQuestions {
		resp.Questions = append(resp.Questions, dto.SetQuestionResponse{
			QuestionID:   sq.QuestionID,
			Order:        sq.Order,
			QuestionText: sq.Question.QuestionText,
			QuestionType: sq.Question.QuestionType,
			Marks:        sq.Question.Marks,
		})
	}
	return &resp
}
