package service

import (
	"errors"
	"testing"
	"time"

	"github.com/eyramt/examhall/internal/model"
	"github.com/eyramt/examhall/internal/session"
)

type attemptFixture struct {
	svc      *attemptService
	examRepo *fakeExamRepo
	setRepo  *fakeSetRepo
	subRepo  *fakeSubmissionRepo
	scratch  *session.Scratch
	exam     *model.Exam
	set      *model.ExamSet
	now      time.Time
}

// newAttemptFixture builds an open hash-mode exam with one password-guarded
// set of two mcq questions worth 2 and 3 marks.
func newAttemptFixture(t *testing.T) *attemptFixture {
	t.Helper()

	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	f := &attemptFixture{
		examRepo: newFakeExamRepo(),
		setRepo:  newFakeSetRepo(),
		subRepo:  newFakeSubmissionRepo(),
		scratch:  newScratch(),
		now:      start.Add(5 * time.Minute),
	}

	f.exam = &model.Exam{
		Title:           "Algebra Midterm",
		Subject:         "Math",
		AssignedClass:   "JHS-2",
		DurationMinutes: 45,
		StartDatetime:   start,
		EndDatetime:     start.Add(time.Hour),
		AssignmentMode:  model.AssignHash,
		AssignmentSeed:  "term-1",
	}
	if err := f.examRepo.Create(f.exam); err != nil {
		t.Fatal(err)
	}

	q1 := mcq(101, 2, 1011, 1012)
	q2 := mcq(102, 3, 1021, 1022)
	f.exam.Questions = []model.ExamQuestion{q1, q2}

	f.set = &model.ExamSet{
		ExamID:         f.exam.ID,
		Name:           "Set A",
		AccessPassword: "alpha",
		SetQuestions: []model.ExamSetQuestion{
			{QuestionID: q1.ID, Order: 1, Question: q1},
			{QuestionID: q2.ID, Order: 2, Question: q2},
		},
	}
	if err := f.setRepo.Create(f.set); err != nil {
		t.Fatal(err)
	}
	for i := range f.set.SetQuestions {
		f.set.SetQuestions[i].SetID = f.set.ID
	}

	assignment := NewAssignmentService(f.setRepo, f.scratch)
	f.svc = &attemptService{
		examRepo:       f.examRepo,
		setRepo:        f.setRepo,
		attemptRepo:    newFakeAttemptRepo(),
		submissionRepo: f.subRepo,
		assignment:     assignment,
		scratch:        f.scratch,
		now:            func() time.Time { return f.now },
	}
	return f
}

func (f *attemptFixture) start(t *testing.T) *model.ExamAttempt {
	t.Helper()
	if err := f.svc.VerifyPassword(f.exam.ID, "stu-1", "STU-001", "alpha"); err != nil {
		t.Fatal(err)
	}
	resp, err := f.svc.Start(f.exam.ID, "stu-1", "STU-001", 1)
	if err != nil {
		t.Fatal(err)
	}
	attempt, err := f.svc.attemptRepo.FindForStudent(resp.AttemptID, f.exam.ID, 1)
	if err != nil {
		t.Fatal(err)
	}
	return attempt
}

func TestVerifyPassword(t *testing.T) {
	f := newAttemptFixture(t)

	err := f.svc.VerifyPassword(f.exam.ID, "stu-1", "STU-001", "wrong")
	if !errors.Is(err, ErrWrongPassword) {
		t.Fatalf("got %v, want ErrWrongPassword", err)
	}
	if f.scratch.IsVerified("stu-1", f.exam.ID) {
		t.Fatal("wrong password must not verify the session")
	}

	if err := f.svc.VerifyPassword(f.exam.ID, "stu-1", "STU-001", "alpha"); err != nil {
		t.Fatal(err)
	}
	if !f.scratch.IsVerified("stu-1", f.exam.ID) {
		t.Fatal("correct password should verify the session")
	}
}

func TestWindowBoundaries(t *testing.T) {
	f := newAttemptFixture(t)

	f.now = f.exam.StartDatetime
	if err := f.svc.VerifyPassword(f.exam.ID, "stu-1", "STU-001", "alpha"); err != nil {
		t.Fatalf("t=start should be open, got %v", err)
	}

	f.now = f.exam.EndDatetime
	if err := f.svc.VerifyPassword(f.exam.ID, "stu-1", "STU-001", "alpha"); err != nil {
		t.Fatalf("t=end should be open, got %v", err)
	}

	f.now = f.exam.EndDatetime.Add(time.Second)
	if err := f.svc.VerifyPassword(f.exam.ID, "stu-1", "STU-001", "alpha"); !errors.Is(err, ErrExamNotOpen) {
		t.Fatalf("t=end+1s: got %v, want ErrExamNotOpen", err)
	}

	f.now = f.exam.StartDatetime.Add(-time.Second)
	if _, err := f.svc.Start(f.exam.ID, "stu-1", "STU-001", 1); !errors.Is(err, ErrExamNotOpen) {
		t.Fatalf("before start: got %v, want ErrExamNotOpen", err)
	}
}

func TestStartRequiresVerifiedAndConsumesFlag(t *testing.T) {
	f := newAttemptFixture(t)

	if _, err := f.svc.Start(f.exam.ID, "stu-1", "STU-001", 1); !errors.Is(err, ErrNotVerified) {
		t.Fatalf("got %v, want ErrNotVerified", err)
	}

	attempt := f.start(t)
	if attempt.SetID == nil || *attempt.SetID != f.set.ID {
		t.Fatalf("attempt committed set %v, want %d", attempt.SetID, f.set.ID)
	}
	if f.scratch.IsVerified("stu-1", f.exam.ID) {
		t.Fatal("verified flag must be consumed by Start")
	}
}

func TestStartResumesOpenAttempt(t *testing.T) {
	f := newAttemptFixture(t)
	attempt := f.start(t)

	// A reload hits Start again without reverifying; it must return the open
	// attempt, not spawn a second one or demand the password again.
	resp, err := f.svc.Start(f.exam.ID, "stu-1", "STU-001", 1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.AttemptID != attempt.ID {
		t.Fatalf("resumed attempt %d, want %d", resp.AttemptID, attempt.ID)
	}
	if resp.SetID == nil || *resp.SetID != f.set.ID {
		t.Fatalf("resumed attempt set %v, want %d", resp.SetID, f.set.ID)
	}
}

func TestStartPoolExamSkipsPasswordGate(t *testing.T) {
	f := newAttemptFixture(t)
	f.setRepo.sets = map[uint]*model.ExamSet{}

	resp, err := f.svc.Start(f.exam.ID, "stu-1", "STU-001", 1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.SetID != nil {
		t.Fatalf("pool exam committed set %v, want nil", resp.SetID)
	}
}

func TestStartAfterSubmission(t *testing.T) {
	f := newAttemptFixture(t)
	attempt := f.start(t)
	if _, err := f.svc.Submit(f.exam.ID, attempt.ID, "stu-1", 1, map[uint]uint{101: 1011}); err != nil {
		t.Fatal(err)
	}

	if err := f.svc.VerifyPassword(f.exam.ID, "stu-1", "STU-001", "alpha"); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.Start(f.exam.ID, "stu-1", "STU-001", 1); !errors.Is(err, ErrAlreadySubmitted) {
		t.Fatalf("got %v, want ErrAlreadySubmitted", err)
	}
}

func TestTakeViewHidesAnswerKey(t *testing.T) {
	f := newAttemptFixture(t)
	attempt := f.start(t)

	view, err := f.svc.TakeView(f.exam.ID, attempt.ID, "stu-1", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(view.Questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(view.Questions))
	}
	if view.Questions[0].ID != 101 || view.Questions[1].ID != 102 {
		t.Fatalf("questions out of set order: %d, %d", view.Questions[0].ID, view.Questions[1].ID)
	}
	if view.SetName != "Set A" {
		t.Fatalf("set name %q", view.SetName)
	}
}

func TestTakeViewForeignAttempt(t *testing.T) {
	f := newAttemptFixture(t)
	attempt := f.start(t)

	if _, err := f.svc.TakeView(f.exam.ID, attempt.ID, "stu-2", 2); err == nil {
		t.Fatal("another student's attempt must not be readable")
	}
}

func TestSubmitGradesCommittedSet(t *testing.T) {
	f := newAttemptFixture(t)
	attempt := f.start(t)

	resp, err := f.svc.Submit(f.exam.ID, attempt.ID, "stu-1", 1, map[uint]uint{101: 1011, 102: 1022})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Score != 2 {
		t.Fatalf("score = %v, want 2 (only q101 correct)", resp.Score)
	}
	if resp.AlreadySubmitted {
		t.Fatal("first submit flagged as already submitted")
	}

	stored, err := f.subRepo.FindByID(resp.SubmissionID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.SetID == nil || *stored.SetID != f.set.ID {
		t.Fatalf("submission set %v, want %d", stored.SetID, f.set.ID)
	}
}

func TestSubmitFallsBackToAutosave(t *testing.T) {
	tests := []struct {
		name      string
		autosaved map[uint]uint
		payload   map[uint]uint
		want      float64
	}{
		{"empty payload grades from autosave",
			map[uint]uint{101: 1011, 102: 1021}, nil, 5},
		{"omitted question keeps its autosaved answer",
			map[uint]uint{102: 1021}, map[uint]uint{101: 1011}, 5},
		{"payload wins per question over autosave",
			map[uint]uint{101: 1011, 102: 1021}, map[uint]uint{101: 1012}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAttemptFixture(t)
			attempt := f.start(t)
			if err := f.svc.Autosave(f.exam.ID, "stu-1", tt.autosaved); err != nil {
				t.Fatal(err)
			}

			resp, err := f.svc.Submit(f.exam.ID, attempt.ID, "stu-1", 1, tt.payload)
			if err != nil {
				t.Fatal(err)
			}
			if resp.Score != tt.want {
				t.Fatalf("score = %v, want %v", resp.Score, tt.want)
			}
			if got := f.scratch.Answers("stu-1", f.exam.ID); len(got) != 0 {
				t.Fatalf("autosave not cleared after submit: %v", got)
			}
		})
	}
}

func TestSubmitClearsTimerScratch(t *testing.T) {
	f := newAttemptFixture(t)
	attempt := f.start(t)
	if _, err := f.svc.StartTimer(f.exam.ID, "stu-1"); err != nil {
		t.Fatal(err)
	}

	if _, err := f.svc.Submit(f.exam.ID, attempt.ID, "stu-1", 1, map[uint]uint{101: 1011}); err != nil {
		t.Fatal(err)
	}
	if _, ok := f.scratch.TimerStart("stu-1", f.exam.ID); ok {
		t.Fatal("timer anchor must not survive submission")
	}
}

func TestSubmitIdempotent(t *testing.T) {
	f := newAttemptFixture(t)
	attempt := f.start(t)

	first, err := f.svc.Submit(f.exam.ID, attempt.ID, "stu-1", 1, map[uint]uint{101: 1011, 102: 1021})
	if err != nil {
		t.Fatal(err)
	}
	second, err := f.svc.Submit(f.exam.ID, attempt.ID, "stu-1", 1, map[uint]uint{})
	if err != nil {
		t.Fatal(err)
	}
	if !second.AlreadySubmitted {
		t.Fatal("second submit should short-circuit")
	}
	if second.SubmissionID != first.SubmissionID || second.Score != first.Score {
		t.Fatalf("second submit returned %+v, want the first submission", second)
	}
}

func TestSubmitDuplicateRaceReturnsWinner(t *testing.T) {
	f := newAttemptFixture(t)
	attempt := f.start(t)

	f.subRepo.failNextCreate = func() *model.ExamSubmission {
		return &model.ExamSubmission{ExamID: f.exam.ID, StudentID: 1, SetID: &f.set.ID, Score: 5}
	}

	resp, err := f.svc.Submit(f.exam.ID, attempt.ID, "stu-1", 1, map[uint]uint{101: 1011})
	if err != nil {
		t.Fatal(err)
	}
	if !resp.AlreadySubmitted {
		t.Fatal("lost race should report already submitted")
	}
	if resp.Score != 5 {
		t.Fatalf("score = %v, want the winning row's 5", resp.Score)
	}
}

func TestSubmitAllowedAfterWindowEnd(t *testing.T) {
	f := newAttemptFixture(t)
	attempt := f.start(t)

	f.now = f.exam.EndDatetime.Add(10 * time.Minute)
	resp, err := f.svc.Submit(f.exam.ID, attempt.ID, "stu-1", 1, map[uint]uint{101: 1011, 102: 1021})
	if err != nil {
		t.Fatalf("in-progress attempt must still submit after end, got %v", err)
	}
	if resp.Score != 5 {
		t.Fatalf("score = %v, want 5", resp.Score)
	}
}

func TestStartTimerAnchorsOnce(t *testing.T) {
	f := newAttemptFixture(t)

	first, err := f.svc.StartTimer(f.exam.ID, "stu-1")
	if err != nil {
		t.Fatal(err)
	}
	if first.RemainingSeconds != 45*60 {
		t.Fatalf("remaining = %d, want %d", first.RemainingSeconds, 45*60)
	}

	f.now = f.now.Add(10 * time.Minute)
	second, err := f.svc.StartTimer(f.exam.ID, "stu-1")
	if err != nil {
		t.Fatal(err)
	}
	if !second.StartedAt.Equal(first.StartedAt) {
		t.Fatal("timer anchor moved on second call")
	}
	if second.RemainingSeconds != 35*60 {
		t.Fatalf("remaining = %d, want %d", second.RemainingSeconds, 35*60)
	}
}

func TestDashboard(t *testing.T) {
	f := newAttemptFixture(t)
	attempt := f.start(t)
	if _, err := f.svc.Submit(f.exam.ID, attempt.ID, "stu-1", 1, map[uint]uint{101: 1011}); err != nil {
		t.Fatal(err)
	}

	upcoming := &model.Exam{
		Title:          "Next Week",
		Subject:        "Math",
		AssignedClass:  "JHS-2",
		StartDatetime:  f.now.Add(24 * time.Hour),
		EndDatetime:    f.now.Add(25 * time.Hour),
		AssignmentMode: model.AssignRandom,
	}
	if err := f.examRepo.Create(upcoming); err != nil {
		t.Fatal(err)
	}
	otherClass := &model.Exam{
		Title:          "Not Ours",
		Subject:        "Math",
		AssignedClass:  "JHS-3",
		StartDatetime:  f.now,
		EndDatetime:    f.now.Add(time.Hour),
		AssignmentMode: model.AssignRandom,
	}
	if err := f.examRepo.Create(otherClass); err != nil {
		t.Fatal(err)
	}

	rows, err := f.svc.Dashboard(1, "JHS-2")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2 (other class filtered)", len(rows))
	}
	for _, row := range rows {
		switch row.ID {
		case f.exam.ID:
			if row.Status != "ongoing" || !row.Submitted || row.SubmissionID == nil {
				t.Fatalf("submitted exam row wrong: %+v", row)
			}
		case upcoming.ID:
			if row.Status != "upcoming" || row.Submitted {
				t.Fatalf("upcoming exam row wrong: %+v", row)
			}
		default:
			t.Fatalf("unexpected exam %d on dashboard", row.ID)
		}
	}
}
