package repository

import (
	"time"

	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/model"
	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

type QuizFilter struct {
	SubjectSlug string
	Level       string
	Levels      []string
}

func (r *QuizRepository) List(filter QuizFilter) ([]model.Quiz, error) {
	q := r.DB.Preload("Subject").Where("quizzes.is_active = ?", true)

	if filter.SubjectSlug != "" {
		q = q.Joins("JOIN subjects ON subjects.id = quizzes.subject_id").
			Where("subjects.slug = ?", filter.SubjectSlug)
	}
	if filter.Level != "" {
		q = q.Where("quizzes.level = ?", filter.Level)
	}
	if len(filter.Levels) > 0 {
		q = q.Where("quizzes.level IN ?", filter.Levels)
	}

	var quizzes []model.Quiz
	err := q.Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.Preload("Subject").Preload("Exercises").
		Where("is_active = ?", true).
		First(&quiz, id).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) CreateAttempt(attempt *model.QuizAttempt) error {
	return r.DB.Create(attempt).Error
}

func (r *QuizRepository) FindAttemptByID(id uint) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	if err := r.DB.First(&attempt, id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

// CompleteAttempt writes the final score and flips the attempt to completed.
// The completed=false guard makes the transition one-way even under
// concurrent submissions: only the first writer gets a row, later ones see
// zero rows affected.
func (r *QuizRepository) CompleteAttempt(attempt *model.QuizAttempt) (bool, error) {
	now := time.Now()
	res := r.DB.Model(&model.QuizAttempt{}).
		Where("id = ? AND completed = ?", attempt.ID, false).
		Updates(map[string]interface{}{
			"score":        attempt.Score,
			"total_score":  attempt.TotalScore,
			"percentage":   attempt.Percentage,
			"is_passed":    attempt.IsPassed,
			"time_spent":   attempt.TimeSpent,
			"completed":    true,
			"completed_at": now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	attempt.Completed = true
	attempt.CompletedAt = &now
	return true, nil
}
