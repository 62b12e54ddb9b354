package service

import (
	"testing"

	"github.com/eyramt/examhall/internal/dto"
	"github.com/eyramt/examhall/internal/model"
)

type builderFixture struct {
	svc       SetBuilderService
	examRepo  *fakeExamRepo
	setRepo   *fakeSetRepo
	qRepo     *fakeQuestionRepo
	examID    uint
	setID     uint
	questions []uint
}

func newBuilderFixture(t *testing.T) *builderFixture {
	t.Helper()
	f := &builderFixture{
		examRepo: newFakeExamRepo(),
		setRepo:  newFakeSetRepo(),
		qRepo:    newFakeQuestionRepo(),
	}
	f.setRepo.questions = f.qRepo
	f.svc = NewSetBuilderService(f.examRepo, f.setRepo, f.qRepo)

	exam := &model.Exam{Title: "Midterm", Subject: "Math", AssignedClass: "JHS-1"}
	if err := f.examRepo.Create(exam); err != nil {
		t.Fatal(err)
	}
	f.examID = exam.ID

	for i := 0; i < 3; i++ {
		q := &model.ExamQuestion{ExamID: exam.ID, QuestionText: "q", QuestionType: model.QuestionMCQ, Marks: 2}
		if err := f.qRepo.Create(q); err != nil {
			t.Fatal(err)
		}
		f.questions = append(f.questions, q.ID)
	}

	set, err := f.svc.CreateSet(exam.ID, dto.SetCreateRequest{Name: "Set A", AccessPassword: "pw"})
	if err != nil {
		t.Fatal(err)
	}
	f.setID = set.ID
	return f
}

func TestAddQuestionsAppendsAfterMaxOrder(t *testing.T) {
	f := newBuilderFixture(t)

	resp, err := f.svc.AddQuestions(f.examID, f.setID, f.questions[:2])
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Added) != 2 || len(resp.Skipped) != 0 {
		t.Fatalf("added=%v skipped=%v", resp.Added, resp.Skipped)
	}

	set, err := f.svc.GetSet(f.examID, f.setID)
	if err != nil {
		t.Fatal(err)
	}
	if set.Questions[0].Order != 1 || set.Questions[1].Order != 2 {
		t.Fatalf("orders %d,%d want 1,2", set.Questions[0].Order, set.Questions[1].Order)
	}

	resp, err = f.svc.AddQuestions(f.examID, f.setID, f.questions[2:])
	if err != nil {
		t.Fatal(err)
	}
	set, _ = f.svc.GetSet(f.examID, f.setID)
	if set.Questions[2].Order != 3 {
		t.Fatalf("late add got order %d, want 3", set.Questions[2].Order)
	}
	if set.MaxScore != 6 {
		t.Fatalf("max score = %v, want 6", set.MaxScore)
	}
}

func TestAddQuestionsSkipsDuplicatesAndForeign(t *testing.T) {
	f := newBuilderFixture(t)
	if _, err := f.svc.AddQuestions(f.examID, f.setID, f.questions[:1]); err != nil {
		t.Fatal(err)
	}

	foreign := &model.ExamQuestion{ExamID: f.examID + 99, QuestionType: model.QuestionMCQ}
	if err := f.qRepo.Create(foreign); err != nil {
		t.Fatal(err)
	}

	resp, err := f.svc.AddQuestions(f.examID, f.setID, []uint{f.questions[0], f.questions[1], foreign.ID, 9999})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Added) != 1 || resp.Added[0] != f.questions[1] {
		t.Fatalf("added = %v, want only %d", resp.Added, f.questions[1])
	}
	if len(resp.Skipped) != 3 {
		t.Fatalf("skipped = %v, want duplicate, foreign and unknown", resp.Skipped)
	}
}

func TestRemoveQuestion(t *testing.T) {
	f := newBuilderFixture(t)
	if _, err := f.svc.AddQuestions(f.examID, f.setID, f.questions); err != nil {
		t.Fatal(err)
	}

	if err := f.svc.RemoveQuestion(f.examID, f.setID, f.questions[1]); err != nil {
		t.Fatal(err)
	}
	set, err := f.svc.GetSet(f.examID, f.setID)
	if err != nil {
		t.Fatal(err)
	}
	if set.QuestionCount != 2 {
		t.Fatalf("count = %d, want 2", set.QuestionCount)
	}

	if err := f.svc.RemoveQuestion(f.examID, f.setID, f.questions[1]); err == nil {
		t.Fatal("removing an unlinked question should fail")
	}
}

func TestReorderRenumbersAndIgnoresUnknown(t *testing.T) {
	f := newBuilderFixture(t)
	if _, err := f.svc.AddQuestions(f.examID, f.setID, f.questions); err != nil {
		t.Fatal(err)
	}

	order := []uint{f.questions[2], 9999, f.questions[0], f.questions[1]}
	set, err := f.svc.Reorder(f.examID, f.setID, order)
	if err != nil {
		t.Fatal(err)
	}

	want := map[uint]int{f.questions[2]: 1, f.questions[0]: 2, f.questions[1]: 3}
	for _, q := range set.Questions {
		if q.Order != want[q.QuestionID] {
			t.Fatalf("question %d at order %d, want %d", q.QuestionID, q.Order, want[q.QuestionID])
		}
	}
}
