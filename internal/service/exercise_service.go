package service

import (
	"encoding/json"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/answer"
	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/model"
	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/repository"
	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/util"
)

const (
	successMessage = "Bravo !"
	failureMessage = "Ce n'est pas la bonne réponse. Réessayez !"

	hintPenalty = 2
)

type ExerciseService struct {
	exerciseRepo *repository.ExerciseRepository
	logger       *zap.Logger
}

func NewExerciseService(exerciseRepo *repository.ExerciseRepository, logger *zap.Logger) *ExerciseService {
	return &ExerciseService{exerciseRepo: exerciseRepo, logger: logger}
}

// ExerciseView is an exercise with the correction stripped, safe to hand to
// a student before they answer.
type ExerciseView struct {
	ID            uint            `json:"id"`
	SubjectID     uint            `json:"subject_id"`
	Subject       *model.Subject  `json:"subject,omitempty"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	ExerciseType  string          `json:"exercise_type"`
	Difficulty    string          `json:"difficulty"`
	Level         string          `json:"level"`
	Content       json.RawMessage `json:"content"`
	Hints         json.RawMessage `json:"hints"`
	Points        uint            `json:"points"`
	TimeLimit     *uint           `json:"time_limit,omitempty"`
	IsAIGenerated bool            `json:"is_ai_generated"`
}

func NewExerciseView(e *model.Exercise) *ExerciseView {
	return &ExerciseView{
		ID:            e.ID,
		SubjectID:     e.SubjectID,
		Subject:       e.Subject,
		Title:         e.Title,
		Description:   e.Description,
		ExerciseType:  e.ExerciseType,
		Difficulty:    e.Difficulty,
		Level:         e.Level,
		Content:       e.Content,
		Hints:         e.Hints,
		Points:        e.Points,
		TimeLimit:     e.TimeLimit,
		IsAIGenerated: e.IsAIGenerated,
	}
}

func (s *ExerciseService) List(filter repository.ExerciseFilter) ([]*ExerciseView, error) {
	exercises, err := s.exerciseRepo.List(filter)
	if err != nil {
		return nil, err
	}
	views := make([]*ExerciseView, len(exercises))
	for i := range exercises {
		views[i] = NewExerciseView(&exercises[i])
	}
	return views, nil
}

func (s *ExerciseService) Get(id uint) (*ExerciseView, error) {
	exercise, err := s.exerciseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExerciseNotFound
		}
		return nil, err
	}
	return NewExerciseView(exercise), nil
}

type SubmitRequest struct {
	Answer    json.RawMessage `json:"answer" binding:"required"`
	TimeSpent uint            `json:"time_spent"`
	HintsUsed uint            `json:"hints_used"`
}

// SubmitResult is returned after an attempt is recorded. The correction is
// only revealed once the student has answered.
type SubmitResult struct {
	IsCorrect     bool            `json:"is_correct"`
	Score         uint            `json:"score"`
	MaxScore      uint            `json:"max_score"`
	AttemptNumber uint            `json:"attempt_number"`
	CorrectAnswer json.RawMessage `json:"correct_answer"`
	Explanation   string          `json:"explanation"`
	Message       string          `json:"message"`
}

// Submit checks a student's answer, computes the score and records the
// attempt. Each hint used before answering costs two points; the score never
// goes negative.
func (s *ExerciseService) Submit(userID, exerciseID uint, req SubmitRequest) (*SubmitResult, error) {
	exercise, err := s.exerciseRepo.FindByID(exerciseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExerciseNotFound
		}
		return nil, err
	}

	isCorrect := answer.Check(req.Answer, exercise.CorrectAnswers, exercise.ExerciseType)

	var score uint
	if isCorrect {
		penalty := hintPenalty * req.HintsUsed
		if penalty < exercise.Points {
			score = exercise.Points - penalty
		}
	}

	attempt := &model.ExerciseAttempt{
		ExerciseID: exerciseID,
		StudentID:  userID,
		Answer:     req.Answer,
		IsCorrect:  isCorrect,
		Score:      score,
		TimeSpent:  req.TimeSpent,
		HintsUsed:  req.HintsUsed,
	}
	if err := s.exerciseRepo.CreateAttempt(attempt); err != nil {
		return nil, err
	}

	s.logger.Debug("exercise attempt recorded",
		zap.Uint("exerciseID", exerciseID),
		zap.Uint("studentID", userID),
		zap.Uint("attemptNumber", attempt.AttemptNumber),
		zap.Bool("isCorrect", isCorrect))

	message := failureMessage
	if isCorrect {
		message = successMessage
	}
	return &SubmitResult{
		IsCorrect:     isCorrect,
		Score:         score,
		MaxScore:      exercise.Points,
		AttemptNumber: attempt.AttemptNumber,
		CorrectAnswer: exercise.CorrectAnswers,
		Explanation:   exercise.Explanation,
		Message:       message,
	}, nil
}

func (s *ExerciseService) MyAttempts(userID uint) ([]model.ExerciseAttempt, error) {
	return s.exerciseRepo.ListAttemptsByStudent(userID)
}
