package service

import (
	"errors"

	"github.com/eyramt/examhall/internal/dto"
	"github.com/eyramt/examhall/internal/repository"
)

var ErrResultForbidden = errors.New("result belongs to another student")

// ResultService projects a stored submission into the result a student or
// admin sees. max_score comes from the bound set; a submission graded against
// the full pool has no committed set and reports max_score 0, which also
// forces percent to 0.
type ResultService interface {
	Project(submissionID, requesterID uint, isAdmin bool) (*dto.ResultResponse, error)
}

type resultService struct {
	submissionRepo repository.SubmissionRepository
	// defaultPassPercent applies when the exam carries no threshold of its
	// own.
	defaultPassPercent float64
}

func NewResultService(submissionRepo repository.SubmissionRepository, defaultPassPercent float64) ResultService {
	return &resultService{submissionRepo: submissionRepo, defaultPassPercent: defaultPassPercent}
}

func (s *resultService) Project(submissionID, requesterID uint, isAdmin bool) (*dto.ResultResponse, error) {
	submission, err := s.submissionRepo.FindByID(submissionID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && submission.StudentID != requesterID {
		return nil, ErrResultForbidden
	}

	resp := dto.ResultResponse{
		SubmissionID: submission.ID,
		ExamID:       submission.ExamID,
		ExamTitle:    submission.Exam.Title,
		Subject:      submission.Exam.Subject,
		SetID:        submission.SetID,
		Score:        submission.Score,
		SubmittedAt:  submission.SubmittedAt,
	}
	if submission.ExamSet != nil {
		resp.SetName = submission.ExamSet.Name
		resp.MaxScore = submission.ExamSet.ComputedMaxScore()
	}

	if resp.MaxScore > 0 {
		resp.Percent = submission.Score / resp.MaxScore * 100
	}
	threshold := s.defaultPassPercent
	if submission.Exam.PassPercent != nil {
		threshold = *submission.Exam.PassPercent
	}
	resp.Passed = resp.Percent >= threshold && resp.MaxScore > 0
	return &resp, nil
}
