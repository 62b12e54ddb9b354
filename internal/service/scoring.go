package service

import "github.com/eyramt/examhall/internal/model"

// scoreAnswers grades a submitted answer map (question id -> option id)
// against the effective question list. A question earns its full marks when
// the submitted option is one of its correct-flagged options, zero otherwise;
// math questions may store several accepted answers and any of them counts.
// Questions without a correct option (subjective) contribute nothing.
func scoreAnswers(questions []model.ExamQuestion, answers map[uint]uint) float64 {
	var score float64
	for i := range questions {
		if optID, ok := answers[questions[i].ID]; ok && questions[i].IsAcceptedOption(optID) {
			score += questions[i].Marks
		}
	}
	return score
}

// mergeAnswers overlays the submitted payload on the autosaved map. The
// payload wins per question; questions it omits keep their autosaved answer.
func mergeAnswers(submitted, autosaved map[uint]uint) map[uint]uint {
	merged := make(map[uint]uint, len(autosaved)+len(submitted))
	for q, opt := range autosaved {
		merged[q] = opt
	}
	for q, opt := range submitted {
		merged[q] = opt
	}
	return merged
}

// scoreQuizAnswers is the quiz counterpart, weighted by each question's
// points.
func scoreQuizAnswers(questions []model.QuizQuestion, answers map[uint]uint) float64 {
	var score float64
	for i := range questions {
		correct := questions[i].CorrectOption()
		if correct == nil {
			continue
		}
		if optID, ok := answers[questions[i].ID]; ok && optID == correct.ID {
			score += questions[i].Points
		}
	}
	return score
}
