package util

import "errors"

var (
	ErrEmailRegistered         = errors.New("cette adresse email est déjà utilisée")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrPermissionDenied        = errors.New("permission denied")
	ErrSubjectNotFound         = errors.New("subject not found")
	ErrExerciseNotFound        = errors.New("exercise not found")
	ErrLessonNotFound          = errors.New("lesson not found")
	ErrQuizNotFound            = errors.New("quiz not found")
	ErrAttemptNotFound         = errors.New("attempt not found")
	ErrAttemptAlreadyCompleted = errors.New("quiz attempt already completed")
	ErrAINotConfigured         = errors.New("AI generation is not configured")
	ErrGenerationQuotaReached  = errors.New("daily generation quota reached")
	ErrUnsupportedExerciseType = errors.New("unsupported exercise type")
)
