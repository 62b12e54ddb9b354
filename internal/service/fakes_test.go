package service

import (
	"sort"

	"gorm.io/gorm"

	"github.com/eyramt/examhall/internal/model"
)

// In-memory repositories backing the service tests. They mimic the parts of
// gorm behavior the services depend on: record-not-found errors, id
// assignment and the duplicate-key error on the submission unique index.

type fakeExamRepo struct {
	exams  map[uint]*model.Exam
	nextID uint
}

func newFakeExamRepo() *fakeExamRepo {
	return &fakeExamRepo{exams: map[uint]*model.Exam{}}
}

func (r *fakeExamRepo) Create(exam *model.Exam) error {
	r.nextID++
	exam.ID = r.nextID
	r.exams[exam.ID] = exam
	return nil
}

func (r *fakeExamRepo) FindByID(id uint) (*model.Exam, error) {
	exam, ok := r.exams[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return exam, nil
}

func (r *fakeExamRepo) FindByIDWithQuestions(id uint) (*model.Exam, error) {
	return r.FindByID(id)
}

func (r *fakeExamRepo) FindAll() ([]model.Exam, error) {
	ids := make([]uint, 0, len(r.exams))
	for id := range r.exams {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]model.Exam, 0, len(ids))
	for _, id := range ids {
		out = append(out, *r.exams[id])
	}
	return out, nil
}

type fakeSetRepo struct {
	sets map[uint]*model.ExamSet
	// questions, when set, lets CreateLink emulate the real repository's
	// Preload("SetQuestions.Question") behavior.
	questions *fakeQuestionRepo
	nextID    uint
}

func newFakeSetRepo() *fakeSetRepo {
	return &fakeSetRepo{sets: map[uint]*model.ExamSet{}}
}

func (r *fakeSetRepo) Create(set *model.ExamSet) error {
	r.nextID++
	set.ID = r.nextID
	r.sets[set.ID] = set
	return nil
}

func (r *fakeSetRepo) Update(set *model.ExamSet) error {
	r.sets[set.ID] = set
	return nil
}

func (r *fakeSetRepo) Delete(id uint) error {
	delete(r.sets, id)
	return nil
}

func (r *fakeSetRepo) FindByID(id uint) (*model.ExamSet, error) {
	set, ok := r.sets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return set, nil
}

func (r *fakeSetRepo) FindByIDForExam(id, examID uint) (*model.ExamSet, error) {
	set, ok := r.sets[id]
	if !ok || set.ExamID != examID {
		return nil, gorm.ErrRecordNotFound
	}
	return set, nil
}

func (r *fakeSetRepo) FindByExamID(examID uint) ([]model.ExamSet, error) {
	ids := make([]uint, 0, len(r.sets))
	for id, set := range r.sets {
		if set.ExamID == examID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]model.ExamSet, 0, len(ids))
	for _, id := range ids {
		out = append(out, *r.sets[id])
	}
	return out, nil
}

func (r *fakeSetRepo) FindLink(setID, questionID uint) (*model.ExamSetQuestion, error) {
	set, ok := r.sets[setID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	for i := range set.SetQuestions {
		if set.SetQuestions[i].QuestionID == questionID {
			return &set.SetQuestions[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSetRepo) CreateLink(link *model.ExamSetQuestion) error {
	if r.questions != nil {
		if q, err := r.questions.FindByID(link.QuestionID); err == nil {
			link.Question = *q
		}
	}
	set := r.sets[link.SetID]
	set.SetQuestions = append(set.SetQuestions, *link)
	return nil
}

func (r *fakeSetRepo) DeleteLink(setID, questionID uint) error {
	set := r.sets[setID]
	kept := set.SetQuestions[:0]
	for _, sq := range set.SetQuestions {
		if sq.QuestionID != questionID {
			kept = append(kept, sq)
		}
	}
	set.SetQuestions = kept
	return nil
}

func (r *fakeSetRepo) UpdateLinkOrder(setID, questionID uint, order int) error {
	set := r.sets[setID]
	for i := range set.SetQuestions {
		if set.SetQuestions[i].QuestionID == questionID {
			set.SetQuestions[i].Order = order
		}
	}
	return nil
}

func (r *fakeSetRepo) MaxOrder(setID uint) (int, error) {
	set, ok := r.sets[setID]
	if !ok {
		return 0, nil
	}
	max := 0
	for _, sq := range set.SetQuestions {
		if sq.Order > max {
			max = sq.Order
		}
	}
	return max, nil
}

func (r *fakeSetRepo) QuestionsForSet(setID uint) ([]model.ExamQuestion, error) {
	set, ok := r.sets[setID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	links := append([]model.ExamSetQuestion(nil), set.SetQuestions...)
	sort.Slice(links, func(i, j int) bool { return links[i].Order < links[j].Order })
	out := make([]model.ExamQuestion, 0, len(links))
	for _, sq := range links {
		out = append(out, sq.Question)
	}
	return out, nil
}

type fakeQuestionRepo struct {
	questions map[uint]*model.ExamQuestion
	nextID    uint
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{questions: map[uint]*model.ExamQuestion{}}
}

func (r *fakeQuestionRepo) Create(question *model.ExamQuestion) error {
	r.nextID++
	question.ID = r.nextID
	for i := range question.Options {
		r.nextID++
		question.Options[i].ID = r.nextID
		question.Options[i].QuestionID = question.ID
	}
	r.questions[question.ID] = question
	return nil
}

func (r *fakeQuestionRepo) FindByID(id uint) (*model.ExamQuestion, error) {
	question, ok := r.questions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return question, nil
}

func (r *fakeQuestionRepo) FindByExamID(examID uint) ([]model.ExamQuestion, error) {
	ids := make([]uint, 0, len(r.questions))
	for id, q := range r.questions {
		if q.ExamID == examID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]model.ExamQuestion, 0, len(ids))
	for _, id := range ids {
		out = append(out, *r.questions[id])
	}
	return out, nil
}

func (r *fakeQuestionRepo) Delete(id uint) error {
	delete(r.questions, id)
	return nil
}

type fakeAttemptRepo struct {
	attempts map[uint]*model.ExamAttempt
	nextID   uint
}

func newFakeAttemptRepo() *fakeAttemptRepo {
	return &fakeAttemptRepo{attempts: map[uint]*model.ExamAttempt{}}
}

func (r *fakeAttemptRepo) Create(attempt *model.ExamAttempt) error {
	r.nextID++
	attempt.ID = r.nextID
	r.attempts[attempt.ID] = attempt
	return nil
}

func (r *fakeAttemptRepo) Update(attempt *model.ExamAttempt) error {
	r.attempts[attempt.ID] = attempt
	return nil
}

func (r *fakeAttemptRepo) FindForStudent(id, examID, studentID uint) (*model.ExamAttempt, error) {
	attempt, ok := r.attempts[id]
	if !ok || attempt.ExamID != examID || attempt.StudentID != studentID {
		return nil, gorm.ErrRecordNotFound
	}
	return attempt, nil
}

func (r *fakeAttemptRepo) FindLatestOpen(examID, studentID uint) (*model.ExamAttempt, error) {
	var latest *model.ExamAttempt
	for _, attempt := range r.attempts {
		if attempt.ExamID != examID || attempt.StudentID != studentID || attempt.Submitted {
			continue
		}
		if latest == nil || attempt.ID > latest.ID {
			latest = attempt
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return latest, nil
}

type fakeSubmissionRepo struct {
	submissions map[uint]*model.ExamSubmission
	nextID      uint
	// failNextCreate simulates losing the insert race: the next Create
	// returns gorm.ErrDuplicatedKey after registering a competing row.
	failNextCreate func() *model.ExamSubmission
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{submissions: map[uint]*model.ExamSubmission{}}
}

func (r *fakeSubmissionRepo) Create(submission *model.ExamSubmission) error {
	if r.failNextCreate != nil {
		competing := r.failNextCreate()
		r.failNextCreate = nil
		r.nextID++
		competing.ID = r.nextID
		r.submissions[competing.ID] = competing
		return gorm.ErrDuplicatedKey
	}
	for _, existing := range r.submissions {
		if existing.ExamID == submission.ExamID && existing.StudentID == submission.StudentID {
			return gorm.ErrDuplicatedKey
		}
	}
	r.nextID++
	submission.ID = r.nextID
	r.submissions[submission.ID] = submission
	return nil
}

func (r *fakeSubmissionRepo) FindByID(id uint) (*model.ExamSubmission, error) {
	submission, ok := r.submissions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return submission, nil
}

func (r *fakeSubmissionRepo) FindByExamAndStudent(examID, studentID uint) (*model.ExamSubmission, error) {
	for _, submission := range r.submissions {
		if submission.ExamID == examID && submission.StudentID == studentID {
			return submission, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
