package service

import (
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/eyramt/examhall/internal/dto"
	"github.com/eyramt/examhall/internal/model"
	"github.com/eyramt/examhall/internal/repository"
	"github.com/eyramt/examhall/internal/session"
)

// AttemptService drives a student's path through an exam:
//
//	dashboard -> assignment -> (select set) -> password -> start -> take ->
//	autosave/timer -> submit
//
// The exam window is checked when entering the flow (select, password,
// start); an attempt already in progress is never force-terminated, so
// autosave and submit still work after end_datetime. Submission is one-shot:
// once a submission row exists every later submit returns it unchanged.
type AttemptService interface {
	Dashboard(studentID uint, class string) ([]dto.DashboardExamResponse, error)
	PreviewAssignment(examID uint, owner, studentCode string) (*dto.AssignmentResponse, error)
	SelectSet(examID uint, owner string, setID uint) (*dto.AssignmentResponse, error)
	VerifyPassword(examID uint, owner, studentCode, password string) error
	Start(examID uint, owner, studentCode string, studentID uint) (*dto.StartAttemptResponse, error)
	TakeView(examID, attemptID uint, owner string, studentID uint) (*dto.TakeViewResponse, error)
	StartTimer(examID uint, owner string) (*dto.TimerResponse, error)
	Autosave(examID uint, owner string, answers map[uint]uint) error
	Submit(examID, attemptID uint, owner string, studentID uint, answers map[uint]uint) (*dto.SubmitResponse, error)
	SubmittedPoll(examID uint, studentID uint) (*dto.SubmittedPollResponse, error)
}

type attemptService struct {
	examRepo       repository.ExamRepository
	setRepo        repository.SetRepository
	attemptRepo    repository.AttemptRepository
	submissionRepo repository.SubmissionRepository
	assignment     AssignmentService
	scratch        *session.Scratch
	now            func() time.Time
}

func NewAttemptService(
	examRepo repository.ExamRepository,
	setRepo repository.SetRepository,
	attemptRepo repository.AttemptRepository,
	submissionRepo repository.SubmissionRepository,
	assignment AssignmentService,
	scratch *session.Scratch,
) AttemptService {
	return &attemptService{
		examRepo:       examRepo,
		setRepo:        setRepo,
		attemptRepo:    attemptRepo,
		submissionRepo: submissionRepo,
		assignment:     assignment,
		scratch:        scratch,
		now:            time.Now,
	}
}

// windowOpen reports whether t falls inside the exam window, both bounds
// inclusive.
func windowOpen(exam *model.Exam, t time.Time) bool {
	return !t.Before(exam.StartDatetime) && !t.After(exam.EndDatetime)
}

func examStatus(exam *model.Exam, t time.Time) string {
	switch {
	case t.Before(exam.StartDatetime):
		return "upcoming"
	case t.After(exam.EndDatetime):
		return "ended"
	default:
		return "ongoing"
	}
}

func (s *attemptService) Dashboard(studentID uint, class string) ([]dto.DashboardExamResponse, error) {
	exams, err := s.examRepo.FindAll()
	if err != nil {
		return nil, err
	}
	now := s.now()
	resp := make([]dto.DashboardExamResponse, 0, len(exams))
	for i := range exams {
		exam := &exams[i]
		if class != "" && exam.AssignedClass != class {
			continue
		}
		row := dto.DashboardExamResponse{
			ExamResponse: dto.ExamResponse{
				ID:              exam.ID,
				Subject:         exam.Subject,
				Title:           exam.Title,
				Description:     exam.Description,
				AssignedClass:   exam.AssignedClass,
				DurationMinutes: exam.DurationMinutes,
				StartDatetime:   exam.StartDatetime,
				EndDatetime:     exam.EndDatetime,
				AssignmentMode:  exam.AssignmentMode,
				PassPercent:     exam.PassPercent,
				CreatedAt:       exam.CreatedAt,
			},
			Status: examStatus(exam, now),
		}
		if sub, err := s.submissionRepo.FindByExamAndStudent(exam.ID, studentID); err == nil {
			row.Submitted = true
			row.SubmissionID = &sub.ID
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		resp = append(resp, row)
	}
	return resp, nil
}

// PreviewAssignment shows which set the student would get without committing
// anything. In random mode every call may name a different set.
func (s *attemptService) PreviewAssignment(examID uint, owner, studentCode string) (*dto.AssignmentResponse, error) {
	exam, err := s.examRepo.FindByID(examID)
	if err != nil {
		return nil, err
	}
	resp := dto.AssignmentResponse{ExamID: exam.ID, AssignmentMode: exam.AssignmentMode}

	set, err := s.assignment.Resolve(exam, owner, studentCode)
	switch {
	case errors.Is(err, ErrNoSetsAvailable):
		return &resp, nil
	case errors.Is(err, ErrChoiceRequired):
		resp.ChoiceRequired = true
		return &resp, nil
	case err != nil:
		return nil, err
	}
	resp.SetID = &set.ID
	resp.SetName = set.Name
	return &resp, nil
}

func (s *attemptService) SelectSet(examID uint, owner string, setID uint) (*dto.AssignmentResponse, error) {
	exam, err := s.examRepo.FindByID(examID)
	if err != nil {
		return nil, err
	}
	if exam.AssignmentMode != model.AssignChoice {
		return nil, errors.New("exam does not allow choosing a set")
	}
	if !windowOpen(exam, s.now()) {
		return nil, ErrExamNotOpen
	}
	set, err := s.assignment.SelectSet(exam, owner, setID)
	if err != nil {
		return nil, err
	}
	return &dto.AssignmentResponse{
		ExamID:         exam.ID,
		AssignmentMode: exam.AssignmentMode,
		SetID:          &set.ID,
		SetName:        set.Name,
	}, nil
}

// VerifyPassword checks the shared password of the student's resolved set and
// marks the session verified on success.
func (s *attemptService) VerifyPassword(examID uint, owner, studentCode, password string) error {
	exam, err := s.examRepo.FindByID(examID)
	if err != nil {
		return err
	}
	if !windowOpen(exam, s.now()) {
		return ErrExamNotOpen
	}
	set, err := s.assignment.Resolve(exam, owner, studentCode)
	if err != nil {
		return err
	}
	if set.AccessPassword != password {
		log.Info().Uint("exam_id", examID).Uint("set_id", set.ID).Msg("wrong set password")
		return ErrWrongPassword
	}
	s.scratch.MarkVerified(owner, examID)
	return nil
}

// Start commits the assignment into a new attempt, or returns the student's
// open attempt when one exists. The verified flag is consumed on creation so
// it cannot carry over into another attempt.
func (s *attemptService) Start(examID uint, owner, studentCode string, studentID uint) (*dto.StartAttemptResponse, error) {
	exam, err := s.examRepo.FindByID(examID)
	if err != nil {
		return nil, err
	}
	if !windowOpen(exam, s.now()) {
		return nil, ErrExamNotOpen
	}
	if _, err := s.submissionRepo.FindByExamAndStudent(examID, studentID); err == nil {
		return nil, ErrAlreadySubmitted
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// A reload resumes the open attempt instead of spawning a second one.
	if open, err := s.attemptRepo.FindLatestOpen(examID, studentID); err == nil {
		return &dto.StartAttemptResponse{
			AttemptID: open.ID,
			ExamID:    examID,
			SetID:     open.SetID,
		}, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	attempt := model.ExamAttempt{ExamID: examID, StudentID: studentID}

	set, err := s.assignment.Resolve(exam, owner, studentCode)
	switch {
	case errors.Is(err, ErrNoSetsAvailable):
		// Pool exam: no set, no password gate.
	case err != nil:
		return nil, err
	default:
		if !s.scratch.IsVerified(owner, examID) {
			return nil, ErrNotVerified
		}
		attempt.SetID = &set.ID
	}

	if err := s.attemptRepo.Create(&attempt); err != nil {
		return nil, err
	}
	s.scratch.ClearVerified(owner, examID)

	return &dto.StartAttemptResponse{
		AttemptID: attempt.ID,
		ExamID:    examID,
		SetID:     attempt.SetID,
	}, nil
}

func (s *attemptService) TakeView(examID, attemptID uint, owner string, studentID uint) (*dto.TakeViewResponse, error) {
	attempt, err := s.attemptRepo.FindForStudent(attemptID, examID, studentID)
	if err != nil {
		return nil, err
	}
	if attempt.Submitted {
		return nil, ErrAlreadySubmitted
	}
	exam, err := s.examRepo.FindByIDWithQuestions(examID)
	if err != nil {
		return nil, err
	}

	resp := dto.TakeViewResponse{
		AttemptID:       attempt.ID,
		ExamID:          exam.ID,
		Title:           exam.Title,
		DurationMinutes: exam.DurationMinutes,
		SetID:           attempt.SetID,
		SavedAnswers:    s.scratch.Answers(owner, examID),
	}

	questions, setName, err := s.effectiveQuestions(exam, attempt.SetID)
	if err != nil {
		return nil, err
	}
	resp.SetName = setName
	for i := range questions {
		q := dto.QuestionResponse{
			ID:           questions[i].ID,
			QuestionText: questions[i].QuestionText,
			QuestionType: questions[i].QuestionType,
			Marks:        questions[i].Marks,
		}
		for _, opt := range questions[i].Options {
			q.Options = append(q.Options, dto.OptionResponse{ID: opt.ID, Text: opt.Text})
		}
		resp.Questions = append(resp.Questions, q)
	}
	return &resp, nil
}

// effectiveQuestions is the list the student answers and the grader scores:
// the committed set's ordered questions, or the full pool when no set is
// bound.
func (s *attemptService) effectiveQuestions(exam *model.Exam, setID *uint) ([]model.ExamQuestion, string, error) {
	if setID == nil {
		return exam.Questions, "", nil
	}
	set, err := s.setRepo.FindByIDForExam(*setID, exam.ID)
	if err != nil {
		return nil, "", err
	}
	questions, err := s.setRepo.QuestionsForSet(set.ID)
	if err != nil {
		return nil, "", err
	}
	return questions, set.Name, nil
}

func (s *attemptService) StartTimer(examID uint, owner string) (*dto.TimerResponse, error) {
	exam, err := s.examRepo.FindByID(examID)
	if err != nil {
		return nil, err
	}
	started := s.scratch.MarkTimerStart(owner, examID, s.now())
	deadline := started.Add(time.Duration(exam.DurationMinutes) * time.Minute)
	remaining := int(deadline.Sub(s.now()).Seconds())
	if remaining < 0 {
		remaining = 0
	}
	return &dto.TimerResponse{StartedAt: started, RemainingSeconds: remaining}, nil
}

func (s *attemptService) Autosave(examID uint, owner string, answers map[uint]uint) error {
	return s.scratch.SaveAnswers(owner, examID, answers)
}

func (s *attemptService) Submit(examID, attemptID uint, owner string, studentID uint, answers map[uint]uint) (*dto.SubmitResponse, error) {
	if existing, err := s.submissionRepo.FindByExamAndStudent(examID, studentID); err == nil {
		return &dto.SubmitResponse{
			SubmissionID:     existing.ID,
			Score:            existing.Score,
			AlreadySubmitted: true,
		}, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	attempt, err := s.attemptRepo.FindForStudent(attemptID, examID, studentID)
	if err != nil {
		return nil, err
	}
	exam, err := s.examRepo.FindByIDWithQuestions(examID)
	if err != nil {
		return nil, err
	}
	questions, _, err := s.effectiveQuestions(exam, attempt.SetID)
	if err != nil {
		return nil, err
	}

	// Per-question fallback: any question the payload omits is graded from
	// the autosaved answers.
	answers = mergeAnswers(answers, s.scratch.Answers(owner, examID))
	score := scoreAnswers(questions, answers)

	submission := model.ExamSubmission{
		ExamID:    examID,
		StudentID: studentID,
		SetID:     attempt.SetID,
		Score:     score,
	}
	if err := s.submissionRepo.Create(&submission); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race to a concurrent submit; the first row wins.
			existing, ferr := s.submissionRepo.FindByExamAndStudent(examID, studentID)
			if ferr != nil {
				return nil, ferr
			}
			return &dto.SubmitResponse{
				SubmissionID:     existing.ID,
				Score:            existing.Score,
				AlreadySubmitted: true,
			}, nil
		}
		return nil, err
	}

	now := s.now()
	attempt.Submitted = true
	attempt.SubmittedAt = &now
	attempt.EndTime = &now
	attempt.Score = &score
	if err := s.attemptRepo.Update(attempt); err != nil {
		log.Error().Err(err).Uint("attempt_id", attempt.ID).Msg("failed to close attempt")
	}
	s.scratch.ClearAnswers(owner, examID)
	s.scratch.ClearTimer(owner, examID)

	return &dto.SubmitResponse{SubmissionID: submission.ID, Score: score}, nil
}

func (s *attemptService) SubmittedPoll(examID uint, studentID uint) (*dto.SubmittedPollResponse, error) {
	sub, err := s.submissionRepo.FindByExamAndStudent(examID, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.SubmittedPollResponse{Submitted: false}, nil
		}
		return nil, err
	}
	return &dto.SubmittedPollResponse{Submitted: true, SubmissionID: &sub.ID}, nil
}
