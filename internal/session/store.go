package session

import (
	"encoding/json"
	"fmt"
	"time"
)

// Store holds per-student scratch state that never belongs in the database:
// password verification flags, chosen sets, autosaved answers and timer
// anchors. Keys are scoped by owner, the authenticated student's code.
type Store interface {
	Get(owner, key string) (string, bool)
	Set(owner, key, value string)
	Delete(owner, key string)
	// DeleteOwner drops every key for the owner.
	DeleteOwner(owner string)
}

// Scratch wraps a Store with the typed accessors the exam and quiz flows use.
type Scratch struct {
	store Store
}

func NewScratch(store Store) *Scratch {
	return &Scratch{store: store}
}

func verifiedKey(examID uint) string  { return fmt.Sprintf("exam_%d_set_verified", examID) }
func chosenSetKey(examID uint) string { return fmt.Sprintf("selected_set_for_exam_%d", examID) }
func answersKey(examID uint) string   { return fmt.Sprintf("autosaved_exam_%d", examID) }
func timerKey(examID uint) string     { return fmt.Sprintf("exam_%d_start_time", examID) }
func quizTimerKey(quizID uint) string { return fmt.Sprintf("quiz_%d_start_time", quizID) }
func quizAnswersKey(quizID uint) string {
	return fmt.Sprintf("autosaved_quiz_%d", quizID)
}

// MarkVerified records a successful password check for the exam.
func (s *Scratch) MarkVerified(owner string, examID uint) {
	s.store.Set(owner, verifiedKey(examID), "1")
}

func (s *Scratch) IsVerified(owner string, examID uint) bool {
	v, ok := s.store.Get(owner, verifiedKey(examID))
	return ok && v == "1"
}

// ClearVerified is called when the attempt is created so the flag cannot be
// replayed into a second attempt.
func (s *Scratch) ClearVerified(owner string, examID uint) {
	s.store.Delete(owner, verifiedKey(examID))
}

func (s *Scratch) SetChosenSet(owner string, examID, setID uint) {
	s.store.Set(owner, chosenSetKey(examID), fmt.Sprintf("%d", setID))
}

func (s *Scratch) ChosenSet(owner string, examID uint) (uint, bool) {
	v, ok := s.store.Get(owner, chosenSetKey(examID))
	if !ok {
		return 0, false
	}
	var setID uint
	if _, err := fmt.Sscanf(v, "%d", &setID); err != nil {
		return 0, false
	}
	return setID, true
}

// SaveAnswers overwrites the autosaved answer map (question id -> option id).
func (s *Scratch) SaveAnswers(owner string, examID uint, answers map[uint]uint) error {
	raw, err := json.Marshal(answers)
	if err != nil {
		return err
	}
	s.store.Set(owner, answersKey(examID), string(raw))
	return nil
}

// Answers returns the autosaved map, or an empty map when nothing was saved
// or the stored payload does not parse.
func (s *Scratch) Answers(owner string, examID uint) map[uint]uint {
	v, ok := s.store.Get(owner, answersKey(examID))
	if !ok {
		return map[uint]uint{}
	}
	var answers map[uint]uint
	if err := json.Unmarshal([]byte(v), &answers); err != nil || answers == nil {
		return map[uint]uint{}
	}
	return answers
}

func (s *Scratch) ClearAnswers(owner string, examID uint) {
	s.store.Delete(owner, answersKey(examID))
}

// MarkTimerStart anchors the countdown. Set-once: a reload never resets the
// clock.
func (s *Scratch) MarkTimerStart(owner string, examID uint, at time.Time) time.Time {
	if existing, ok := s.TimerStart(owner, examID); ok {
		return existing
	}
	s.store.Set(owner, timerKey(examID), at.UTC().Format(time.RFC3339))
	return at
}

func (s *Scratch) TimerStart(owner string, examID uint) (time.Time, bool) {
	v, ok := s.store.Get(owner, timerKey(examID))
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ClearTimer drops the timer anchor when the attempt ends so a later attempt
// starts a fresh countdown.
func (s *Scratch) ClearTimer(owner string, examID uint) {
	s.store.Delete(owner, timerKey(examID))
}

func (s *Scratch) MarkQuizTimerStart(owner string, quizID uint, at time.Time) time.Time {
	if existing, ok := s.QuizTimerStart(owner, quizID); ok {
		return existing
	}
	s.store.Set(owner, quizTimerKey(quizID), at.UTC().Format(time.RFC3339))
	return at
}

func (s *Scratch) QuizTimerStart(owner string, quizID uint) (time.Time, bool) {
	v, ok := s.store.Get(owner, quizTimerKey(quizID))
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (s *Scratch) SaveQuizAnswers(owner string, quizID uint, answers map[uint]uint) error {
	raw, err := json.Marshal(answers)
	if err != nil {
		return err
	}
	s.store.Set(owner, quizAnswersKey(quizID), string(raw))
	return nil
}

func (s *Scratch) QuizAnswers(owner string, quizID uint) map[uint]uint {
	v, ok := s.store.Get(owner, quizAnswersKey(quizID))
	if !ok {
		return map[uint]uint{}
	}
	var answers map[uint]uint
	if err := json.Unmarshal([]byte(v), &answers); err != nil || answers == nil {
		return map[uint]uint{}
	}
	return answers
}

func (s *Scratch) ClearQuizAnswers(owner string, quizID uint) {
	s.store.Delete(owner, quizAnswersKey(quizID))
}

func (s *Scratch) ClearQuizTimer(owner string, quizID uint) {
	s.store.Delete(owner, quizTimerKey(quizID))
}
