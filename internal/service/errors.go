package service

import "errors"

var (
	ErrExamNotOpen      = errors.New("exam is not open")
	ErrAlreadySubmitted = errors.New("exam already submitted")
	ErrWrongPassword    = errors.New("wrong set password")
	ErrNoSetsAvailable  = errors.New("exam has no sets")
	ErrChoiceRequired   = errors.New("set choice required")
	ErrNotVerified      = errors.New("set password not verified")
	ErrAttemptLimit     = errors.New("attempt limit reached")
)
