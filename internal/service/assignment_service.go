package service

import (
	"crypto/sha256"
	"encoding/hex"
	"math/big"
	"math/rand"

	"github.com/rs/zerolog/log"

	"github.com/eyramt/examhall/internal/model"
	"github.com/eyramt/examhall/internal/repository"
	"github.com/eyramt/examhall/internal/session"
)

// AssignmentService maps a student to one of an exam's sets according to the
// exam's assignment mode.
//
// Hash mode is a pure function of (seed, student code, set count), so the
// same student always lands on the same set as long as the set list does not
// change. Random mode is a fresh draw per call; the draw only becomes binding
// when an attempt commits it. Choice mode reads the student's own selection
// from session scratch.
type AssignmentService interface {
	// Resolve returns the set the student would sit. ErrNoSetsAvailable when
	// the exam has no sets, ErrChoiceRequired in choice mode before the
	// student has picked.
	Resolve(exam *model.Exam, owner string, studentCode string) (*model.ExamSet, error)
	// SelectSet records the student's pick for a choice-mode exam.
	SelectSet(exam *model.Exam, owner string, setID uint) (*model.ExamSet, error)
}

type assignmentService struct {
	setRepo repository.SetRepository
	scratch *session.Scratch
}

func NewAssignmentService(setRepo repository.SetRepository, scratch *session.Scratch) AssignmentService {
	return &assignmentService{setRepo: setRepo, scratch: scratch}
}

func (s *assignmentService) Resolve(exam *model.Exam, owner string, studentCode string) (*model.ExamSet, error) {
	sets, err := s.setRepo.FindByExamID(exam.ID)
	if err != nil {
		return nil, err
	}
	if len(sets) == 0 {
		return nil, ErrNoSetsAvailable
	}

	switch exam.AssignmentMode {
	case model.AssignHash:
		idx := hashSetIndex(exam.AssignmentSeed, studentCode, len(sets))
		return &sets[idx], nil
	case model.AssignChoice:
		setID, ok := s.scratch.ChosenSet(owner, exam.ID)
		if !ok {
			return nil, ErrChoiceRequired
		}
		for i := range sets {
			if sets[i].ID == setID {
				return &sets[i], nil
			}
		}
		// Stale selection, e.g. the set was deleted after the pick.
		return nil, ErrChoiceRequired
	default:
		if exam.AssignmentMode != model.AssignRandom {
			log.Warn().
				Uint("exam_id", exam.ID).
				Str("mode", exam.AssignmentMode).
				Msg("unknown assignment mode, falling back to random")
		}
		return &sets[rand.Intn(len(sets))], nil
	}
}

func (s *assignmentService) SelectSet(exam *model.Exam, owner string, setID uint) (*model.ExamSet, error) {
	set, err := s.setRepo.FindByIDForExam(setID, exam.ID)
	if err != nil {
		return nil, err
	}
	s.scratch.SetChosenSet(owner, exam.ID, set.ID)
	return set, nil
}

// hashSetIndex reduces sha256(seed + studentCode), read as a hex integer, to
// an index in [0, n). n must be positive.
func hashSetIndex(seed, studentCode string, n int) int {
	sum := sha256.Sum256([]byte(seed + studentCode))
	digest := new(big.Int)
	digest.SetString(hex.EncodeToString(sum[:]), 16)
	return int(new(big.Int).Mod(digest, big.NewInt(int64(n))).Int64())
}
