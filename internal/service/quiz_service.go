package service

import (
	"errors"
	"time"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/eyramt/examhall/internal/dto"
	"github.com/eyramt/examhall/internal/model"
	"github.com/eyramt/examhall/internal/repository"
	"github.com/eyramt/examhall/internal/session"
)

// QuizService is the lighter sibling of the exam flow: one shared question
// pool, no sets or passwords, and a per-student attempt cap instead of the
// one-shot submission rule.
type QuizService interface {
	CreateQuiz(req dto.QuizCreateRequest) (*dto.QuizResponse, error)
	AddQuestion(quizID uint, req dto.QuizQuestionCreateRequest) (*dto.QuizQuestionResponse, error)
	ListQuizzes(class string) ([]dto.QuizResponse, error)
	Instructions(quizID, studentID uint) (*dto.QuizInstructionsResponse, error)
	TakeView(quizID uint, owner string, studentID uint) (*dto.QuizTakeViewResponse, error)
	StartTimer(quizID uint, owner string) (*dto.TimerResponse, error)
	Autosave(quizID uint, owner string, answers map[uint]uint) error
	Submit(quizID uint, owner string, studentID uint, answers map[uint]uint) (*dto.QuizSubmitResponse, error)
	SubmittedPoll(quizID, studentID uint) (*dto.SubmittedPollResponse, error)
	Result(submissionID, requesterID uint, isAdmin bool) (*dto.QuizResultResponse, error)
}

type quizService struct {
	quizRepo repository.QuizRepository
	scratch  *session.Scratch
	now      func() time.Time
}

func NewQuizService(quizRepo repository.QuizRepository, scratch *session.Scratch) QuizService {
	return &quizService{quizRepo: quizRepo, scratch: scratch, now: time.Now}
}

func (s *quizService) CreateQuiz(req dto.QuizCreateRequest) (*dto.QuizResponse, error) {
	if !req.EndDatetime.After(req.StartDatetime) {
		return nil, errors.New("end_datetime must be after start_datetime")
	}
	attempts := req.AttemptsAllowed
	if attempts == 0 {
		attempts = 1
	}
	quiz := model.Quiz{
		Subject:         req.Subject,
		Title:           req.Title,
		AssignedClass:   req.AssignedClass,
		DurationMinutes: req.DurationMinutes,
		StartDatetime:   req.StartDatetime,
		EndDatetime:     req.EndDatetime,
		AttemptsAllowed: attempts,
	}
	if err := s.quizRepo.Create(&quiz); err != nil {
		log.Error().Err(err).Msg("failed to create quiz")
		return nil, err
	}
	var resp dto.QuizResponse
	if err := copier.Copy(&resp, &quiz); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *quizService) AddQuestion(quizID uint, req dto.QuizQuestionCreateRequest) (*dto.QuizQuestionResponse, error) {
	if _, err := s.quizRepo.FindByIDWithQuestions(quizID); err != nil {
		return nil, err
	}
	correct := 0
	for _, opt := range req.Options {
		if opt.IsCorrect {
			correct++
		}
	}
	if correct != 1 {
		return nil, errors.New("quiz question needs exactly 1 correct option")
	}

	points := req.Points
	if points == 0 {
		points = 1
	}
	question := model.QuizQuestion{QuizID: quizID, Text: req.Text, Points: points}
	for _, opt := range req.Options {
		question.Options = append(question.Options, model.QuizOption{
			Text:      opt.Text,
			IsCorrect: opt.IsCorrect,
		})
	}
	if err := s.quizRepo.AddQuestion(&question); err != nil {
		return nil, err
	}

	resp := dto.QuizQuestionResponse{ID: question.ID, Text: question.Text, Points: question.Points}
	for _, opt := range question.Options {
		resp.Options = append(resp.Options, dto.OptionResponse{ID: opt.ID, Text: opt.Text})
	}
	return &resp, nil
}

func (s *quizService) ListQuizzes(class string) ([]dto.QuizResponse, error) {
	quizzes, err := s.quizRepo.FindAll()
	if err != nil {
		return nil, err
	}
	resp := make([]dto.QuizResponse, 0, len(quizzes))
	for i := range quizzes {
		if class != "" && quizzes[i].AssignedClass != class {
			continue
		}
		var item dto.QuizResponse
		if err := copier.Copy(&item, &quizzes[i]); err != nil {
			return nil, err
		}
		resp = append(resp, item)
	}
	return resp, nil
}

// Instructions is the pre-start view; it does not consume an attempt.
func (s *quizService) Instructions(quizID, studentID uint) (*dto.QuizInstructionsResponse, error) {
	quiz, err := s.quizRepo.FindByIDWithQuestions(quizID)
	if err != nil {
		return nil, err
	}
	used, err := s.quizRepo.CountAttempts(quizID, studentID)
	if err != nil {
		return nil, err
	}

	var resp dto.QuizInstructionsResponse
	if err := copier.Copy(&resp.QuizResponse, quiz); err != nil {
		return nil, err
	}
	resp.QuestionCount = len(quiz.Questions)
	resp.MaxScore = quiz.MaxScore()
	resp.AttemptsUsed = int(used)
	resp.AttemptsRemaining = quiz.AttemptsAllowed - int(used)
	if resp.AttemptsRemaining < 0 {
		resp.AttemptsRemaining = 0
	}
	return &resp, nil
}

// TakeView opens the quiz for answering. Opening counts as an attempt: the
// cap is enforced here, not at submit.
func (s *quizService) TakeView(quizID uint, owner string, studentID uint) (*dto.QuizTakeViewResponse, error) {
	quiz, err := s.quizRepo.FindByIDWithQuestions(quizID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if now.Before(quiz.StartDatetime) || now.After(quiz.EndDatetime) {
		return nil, ErrExamNotOpen
	}

	used, err := s.quizRepo.CountAttempts(quizID, studentID)
	if err != nil {
		return nil, err
	}
	if int(used) >= quiz.AttemptsAllowed {
		return nil, ErrAttemptLimit
	}
	if err := s.quizRepo.CreateAttempt(&model.QuizAttempt{QuizID: quizID, StudentID: studentID}); err != nil {
		return nil, err
	}

	resp := dto.QuizTakeViewResponse{
		QuizID:          quiz.ID,
		Title:           quiz.Title,
		DurationMinutes: quiz.DurationMinutes,
		AttemptsUsed:    int(used) + 1,
		AttemptsAllowed: quiz.AttemptsAllowed,
		SavedAnswers:    s.scratch.QuizAnswers(owner, quizID),
	}
	for i := range quiz.Questions {
		q := dto.QuizQuestionResponse{
			ID:     quiz.Questions[i].ID,
			Text:   quiz.Questions[i].Text,
			Points: quiz.Questions[i].Points,
		}
		for _, opt := range quiz.Questions[i].Options {
			q.Options = append(q.Options, dto.OptionResponse{ID: opt.ID, Text: opt.Text})
		}
		resp.Questions = append(resp.Questions, q)
	}
	return &resp, nil
}

func (s *quizService) StartTimer(quizID uint, owner string) (*dto.TimerResponse, error) {
	quiz, err := s.quizRepo.FindByIDWithQuestions(quizID)
	if err != nil {
		return nil, err
	}
	started := s.scratch.MarkQuizTimerStart(owner, quizID, s.now())
	deadline := started.Add(time.Duration(quiz.DurationMinutes) * time.Minute)
	remaining := int(deadline.Sub(s.now()).Seconds())
	if remaining < 0 {
		remaining = 0
	}
	return &dto.TimerResponse{StartedAt: started, RemainingSeconds: remaining}, nil
}

func (s *quizService) Autosave(quizID uint, owner string, answers map[uint]uint) error {
	return s.scratch.SaveQuizAnswers(owner, quizID, answers)
}

func (s *quizService) Submit(quizID uint, owner string, studentID uint, answers map[uint]uint) (*dto.QuizSubmitResponse, error) {
	quiz, err := s.quizRepo.FindByIDWithQuestions(quizID)
	if err != nil {
		return nil, err
	}
	// Per-question fallback: any question the payload omits is graded from
	// the autosaved answers.
	answers = mergeAnswers(answers, s.scratch.QuizAnswers(owner, quizID))
	score := scoreQuizAnswers(quiz.Questions, answers)

	submission := model.QuizSubmission{QuizID: quizID, StudentID: studentID, Score: score}
	if err := s.quizRepo.CreateSubmission(&submission); err != nil {
		return nil, err
	}
	s.scratch.ClearQuizAnswers(owner, quizID)
	s.scratch.ClearQuizTimer(owner, quizID)

	return &dto.QuizSubmitResponse{
		SubmissionID: submission.ID,
		Score:        score,
		MaxScore:     quiz.MaxScore(),
	}, nil
}

// SubmittedPoll reports the student's latest submission for the quiz, if
// any.
func (s *quizService) SubmittedPoll(quizID, studentID uint) (*dto.SubmittedPollResponse, error) {
	sub, err := s.quizRepo.FindSubmission(quizID, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.SubmittedPollResponse{Submitted: false}, nil
		}
		return nil, err
	}
	return &dto.SubmittedPollResponse{Submitted: true, SubmissionID: &sub.ID}, nil
}

func (s *quizService) Result(submissionID, requesterID uint, isAdmin bool) (*dto.QuizResultResponse, error) {
	submission, err := s.quizRepo.FindSubmissionByID(submissionID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && submission.StudentID != requesterID {
		return nil, ErrResultForbidden
	}
	maxScore := submission.Quiz.MaxScore()
	resp := dto.QuizResultResponse{
		SubmissionID: submission.ID,
		QuizID:       submission.QuizID,
		Title:        submission.Quiz.Title,
		Score:        submission.Score,
		MaxScore:     maxScore,
		SubmittedAt:  submission.SubmittedAt,
	}
	if maxScore > 0 {
		resp.Percent = submission.Score / maxScore * 100
	}
	return &resp, nil
}
