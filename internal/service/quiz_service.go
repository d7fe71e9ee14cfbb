package service

import (
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/answer"
	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/model"
	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/repository"
	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/util"
)

type QuizService struct {
	quizRepo *repository.QuizRepository
	logger   *zap.Logger
}

func NewQuizService(quizRepo *repository.QuizRepository, logger *zap.Logger) *QuizService {
	return &QuizService{quizRepo: quizRepo, logger: logger}
}

func (s *QuizService) List(filter repository.QuizFilter) ([]model.Quiz, error) {
	return s.quizRepo.List(filter)
}

// QuizView is a quiz with each exercise's correction stripped.
type QuizView struct {
	ID           uint            `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	SubjectID    uint            `json:"subject_id"`
	Subject      *model.Subject  `json:"subject,omitempty"`
	Level        string          `json:"level"`
	TimeLimit    *uint           `json:"time_limit,omitempty"`
	PassingScore uint            `json:"passing_score"`
	Exercises    []*ExerciseView `json:"exercises"`
}

func newQuizView(q *model.Quiz) *QuizView {
	view := &QuizView{
		ID:           q.ID,
		Title:        q.Title,
		Description:  q.Description,
		SubjectID:    q.SubjectID,
		Subject:      q.Subject,
		Level:        q.Level,
		TimeLimit:    q.TimeLimit,
		PassingScore: q.PassingScore,
		Exercises:    make([]*ExerciseView, len(q.Exercises)),
	}
	for i := range q.Exercises {
		view.Exercises[i] = NewExerciseView(&q.Exercises[i])
	}
	return view
}

func (s *QuizService) Get(id uint) (*QuizView, error) {
	quiz, err := s.quizRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	return newQuizView(quiz), nil
}

// StartResult pairs the fresh attempt with the quiz the student will answer.
type StartResult struct {
	AttemptID uint      `json:"attempt_id"`
	StartedAt time.Time `json:"started_at"`
	Quiz      *QuizView `json:"quiz"`
}

// Start opens a new attempt. A student may hold several open attempts on the
// same quiz; each submission closes exactly one.
func (s *QuizService) Start(userID, quizID uint) (*StartResult, error) {
	quiz, err := s.quizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	attempt := &model.QuizAttempt{
		QuizID:    quizID,
		StudentID: userID,
		StartedAt: time.Now(),
	}
	if err := s.quizRepo.CreateAttempt(attempt); err != nil {
		return nil, err
	}

	return &StartResult{
		AttemptID: attempt.ID,
		StartedAt: attempt.StartedAt,
		Quiz:      newQuizView(quiz),
	}, nil
}

// QuizSubmission carries the student's answers keyed by exercise ID.
type QuizSubmission struct {
	AttemptID uint                     `json:"attempt_id" binding:"required"`
	Answers   map[uint]json.RawMessage `json:"answers" binding:"required"`
	TimeSpent uint                     `json:"time_spent"`
}

type QuizResult struct {
	AttemptID  uint `json:"attempt_id"`
	Score      uint `json:"score"`
	TotalScore uint `json:"total_score"`
	Percentage uint `json:"percentage"`
	IsPassed   bool `json:"is_passed"`
}

// scoreQuiz grades a submission against the quiz's exercises. Every exercise
// counts toward the total whether answered or not; an unanswered exercise
// simply scores zero. Percentage is floored integer division, and the pass
// threshold is inclusive.
func scoreQuiz(quiz *model.Quiz, answers map[uint]json.RawMessage) (score, total, percentage uint, passed bool) {
	for i := range quiz.Exercises {
		ex := &quiz.Exercises[i]
		total += ex.Points
		submitted, ok := answers[ex.ID]
		if !ok {
			continue
		}
		if answer.Check(submitted, ex.CorrectAnswers, ex.ExerciseType) {
			score += ex.Points
		}
	}
	if total > 0 {
		percentage = score * 100 / total
	}
	passed = percentage >= quiz.PassingScore
	return score, total, percentage, passed
}

// Submit grades the submission and completes the attempt. The attempt must
// reference the quiz in the URL, belong to the calling student and still be
// open; a second submission on the same attempt is rejected, never re-graded.
func (s *QuizService) Submit(userID, quizID uint, submission QuizSubmission) (*QuizResult, error) {
	attempt, err := s.quizRepo.FindAttemptByID(submission.AttemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}
	// A foreign or mismatched attempt is indistinguishable from a missing one
	// on purpose.
	if attempt.StudentID != userID || attempt.QuizID != quizID {
		return nil, util.ErrAttemptNotFound
	}
	if attempt.Completed {
		return nil, util.ErrAttemptAlreadyCompleted
	}

	quiz, err := s.quizRepo.FindByID(attempt.QuizID)
	if err != nil {
		return nil, err
	}

	score, total, percentage, passed := scoreQuiz(quiz, submission.Answers)

	attempt.Score = score
	attempt.TotalScore = total
	attempt.Percentage = percentage
	attempt.IsPassed = passed
	attempt.TimeSpent = submission.TimeSpent

	ok, err := s.quizRepo.CompleteAttempt(attempt)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Lost the race against another submission on the same attempt.
		return nil, util.ErrAttemptAlreadyCompleted
	}

	s.logger.Info("quiz attempt completed",
		zap.Uint("quizID", quiz.ID),
		zap.Uint("studentID", userID),
		zap.Uint("attemptID", submission.AttemptID),
		zap.Uint("percentage", percentage),
		zap.Bool("isPassed", passed))

	return &QuizResult{
		AttemptID:  submission.AttemptID,
		Score:      score,
		TotalScore: total,
		Percentage: percentage,
		IsPassed:   passed,
	}, nil
}
