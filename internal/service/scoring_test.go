package service

import (
	"testing"

	"github.com/eyramt/examhall/internal/model"
)

func mcq(id uint, marks float64, correctOpt uint, otherOpts ...uint) model.ExamQuestion {
	q := model.ExamQuestion{
		ID:           id,
		QuestionType: model.QuestionMCQ,
		Marks:        marks,
		Options:      []model.ExamOption{{ID: correctOpt, QuestionID: id, IsCorrect: true}},
	}
	for _, opt := range otherOpts {
		q.Options = append(q.Options, model.ExamOption{ID: opt, QuestionID: id})
	}
	return q
}

func TestScoreAnswers(t *testing.T) {
	questions := []model.ExamQuestion{
		mcq(1, 2, 11, 12, 13),
		mcq(2, 3, 21, 22),
		mcq(3, 5, 31, 32),
	}

	tests := []struct {
		name    string
		answers map[uint]uint
		want    float64
	}{
		{"all correct", map[uint]uint{1: 11, 2: 21, 3: 31}, 10},
		{"partial", map[uint]uint{1: 11, 2: 22, 3: 31}, 7},
		{"all wrong", map[uint]uint{1: 12, 2: 22, 3: 32}, 0},
		{"unanswered questions score zero", map[uint]uint{1: 11}, 2},
		{"empty answers", map[uint]uint{}, 0},
		{"option id from another question does not match", map[uint]uint{1: 21}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scoreAnswers(questions, tt.answers); got != tt.want {
				t.Fatalf("score = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScoreAnswersSkipsUngradableTypes(t *testing.T) {
	questions := []model.ExamQuestion{
		mcq(1, 2, 11, 12),
		{ID: 2, QuestionType: model.QuestionMath, Marks: 5},
		{ID: 3, QuestionType: model.QuestionSubjective, Marks: 10,
			Options: []model.ExamOption{{ID: 31, QuestionID: 3}}},
	}
	answers := map[uint]uint{1: 11, 2: 999, 3: 31}

	if got := scoreAnswers(questions, answers); got != 2 {
		t.Fatalf("score = %v, want 2 (only the mcq counts)", got)
	}
}

func TestScoreAnswersMathAcceptedValues(t *testing.T) {
	q := model.ExamQuestion{
		ID:           1,
		QuestionType: model.QuestionMath,
		Marks:        4,
		Options: []model.ExamOption{
			{ID: 10, QuestionID: 1, IsCorrect: true},
			{ID: 11, QuestionID: 1, IsCorrect: true},
		},
	}
	for _, opt := range []uint{10, 11} {
		if got := scoreAnswers([]model.ExamQuestion{q}, map[uint]uint{1: opt}); got != 4 {
			t.Fatalf("accepted value %d scored %v, want 4", opt, got)
		}
	}
	if got := scoreAnswers([]model.ExamQuestion{q}, map[uint]uint{1: 999}); got != 0 {
		t.Fatalf("unknown value scored %v, want 0", got)
	}
}

func TestMergeAnswers(t *testing.T) {
	merged := mergeAnswers(map[uint]uint{1: 12}, map[uint]uint{1: 11, 2: 21})
	if merged[1] != 12 {
		t.Fatalf("payload answer overridden: %v", merged)
	}
	if merged[2] != 21 {
		t.Fatalf("autosaved answer lost: %v", merged)
	}
	if got := mergeAnswers(nil, map[uint]uint{3: 31}); got[3] != 31 {
		t.Fatalf("nil payload dropped autosave: %v", got)
	}
}

func TestScoreQuizAnswersWeightedByPoints(t *testing.T) {
	questions := []model.QuizQuestion{
		{ID: 1, Points: 1, Options: []model.QuizOption{{ID: 11, IsCorrect: true}, {ID: 12}}},
		{ID: 2, Points: 2.5, Options: []model.QuizOption{{ID: 21, IsCorrect: true}, {ID: 22}}},
	}
	if got := scoreQuizAnswers(questions, map[uint]uint{1: 11, 2: 21}); got != 3.5 {
		t.Fatalf("score = %v, want 3.5", got)
	}
	if got := scoreQuizAnswers(questions, map[uint]uint{2: 21}); got != 2.5 {
		t.Fatalf("score = %v, want 2.5", got)
	}
}
