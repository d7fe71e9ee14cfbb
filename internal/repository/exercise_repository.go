package repository

import (
	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ExerciseRepository struct {
	DB *gorm.DB
}

func NewExerciseRepository(db *gorm.DB) *ExerciseRepository {
	return &ExerciseRepository{DB: db}
}

type ExerciseFilter struct {
	SubjectSlug string
	Level       string
	Levels      []string
	Difficulty  string
	LessonID    uint
}

func (r *ExerciseRepository) List(filter ExerciseFilter) ([]model.Exercise, error) {
	q := r.DB.Preload("Subject").Where("exercises.is_active = ?", true)

	if filter.SubjectSlug != "" {
		q = q.Joins("JOIN subjects ON subjects.id = exercises.subject_id").
			Where("subjects.slug = ?", filter.SubjectSlug)
	}
	if filter.Level != "" {
		q = q.Where("exercises.level = ?", filter.Level)
	}
	if len(filter.Levels) > 0 {
		q = q.Where("exercises.level IN ?", filter.Levels)
	}
	if filter.Difficulty != "" {
		q = q.Where("exercises.difficulty = ?", filter.Difficulty)
	}
	if filter.LessonID != 0 {
		q = q.Where("exercises.lesson_id = ?", filter.LessonID)
	}

	var exercises []model.Exercise
	err := q.Order("exercises.`order`, exercises.difficulty, exercises.title").Find(&exercises).Error
	return exercises, err
}

func (r *ExerciseRepository) FindByID(id uint) (*model.Exercise, error) {
	var exercise model.Exercise
	if err := r.DB.Preload("Subject").Where("is_active = ?", true).First(&exercise, id).Error; err != nil {
		return nil, err
	}
	return &exercise, nil
}

// CreateAttempt assigns the next attempt number and inserts the attempt in
// one transaction. The MAX read takes a row lock so two concurrent
// submissions by the same student serialize; the composite unique index on
// (exercise_id, student_id, attempt_number) backstops the remaining gap-lock
// edge case by turning a duplicate into an insert error instead of silent
// duplicate numbering.
func (r *ExerciseRepository) CreateAttempt(attempt *model.ExerciseAttempt) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var last int64
		err := tx.Model(&model.ExerciseAttempt{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("exercise_id = ? AND student_id = ?", attempt.ExerciseID, attempt.StudentID).
			Select("COALESCE(MAX(attempt_number), 0)").
			Scan(&last).Error
		if err != nil {
			return err
		}
		attempt.AttemptNumber = uint(last) + 1
		return tx.Create(attempt).Error
	})
}

func (r *ExerciseRepository) ListAttemptsByStudent(studentID uint) ([]model.ExerciseAttempt, error) {
	var attempts []model.ExerciseAttempt
	err := r.DB.Preload("Exercise").
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&attempts).Error
	return attempts, err
}

// CreateGenerated persists an AI-generated exercise and its generation log
// entry atomically, so a constraint violation leaves no partial record.
func (r *ExerciseRepository) CreateGenerated(exercise *model.Exercise, genLog *model.GenerationLog) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(exercise).Error; err != nil {
			return err
		}
		genLog.ExerciseID = &exercise.ID
		genLog.Status = model.GenerationStatusOK
		return tx.Create(genLog).Error
	})
}
