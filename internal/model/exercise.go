package model

import "encoding/json"

const (
	ExerciseTypeQCM     = "qcm"
	ExerciseTypeClassic = "classic"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Exercise content is type-tagged JSON: for qcm a list of questions with 4
// options each, for classic an instruction text plus a list of sub-questions.
// CorrectAnswers follows the same polymorphic shape the matcher accepts
// (index, letter, or list thereof for qcm; list of correction strings for
// classic).
// swagger:model Exercise
type Exercise struct {
	BaseModel
	SubjectID      uint            `gorm:"index;not null" json:"subject_id"`
	Subject        *Subject        `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
	LessonID       *uint           `gorm:"index" json:"lesson_id,omitempty"`
	Title          string          `gorm:"size:200;not null" json:"title"`
	Description    string          `gorm:"type:text" json:"description"`
	ExerciseType   string          `gorm:"size:20;default:'qcm'" json:"exercise_type"`
	Difficulty     string          `gorm:"size:20;default:'medium'" json:"difficulty"`
	Level          string          `gorm:"size:20;index;not null" json:"level"`
	Content        json.RawMessage `gorm:"type:json;not null" json:"content"`
	CorrectAnswers json.RawMessage `gorm:"type:json;not null" json:"correct_answers"`
	Explanation    string          `gorm:"type:text" json:"explanation"`
	Hints          json.RawMessage `gorm:"type:json" json:"hints"`
	Points         uint            `gorm:"default:10" json:"points"`
	TimeLimit      *uint           `json:"time_limit,omitempty"` // seconds
	Order          uint            `gorm:"default:0" json:"order"`
	IsActive       bool            `gorm:"default:true" json:"is_active"`
	CreatorID      *uint           `gorm:"index" json:"creator_id,omitempty"`
	IsAIGenerated  bool            `gorm:"default:false" json:"is_ai_generated"`
}

func (Exercise) TableName() string {
	return "exercises"
}

// ExerciseAttempt is immutable once created. AttemptNumber is assigned inside
// a locked transaction; the composite unique index makes duplicates impossible
// even if two submissions race past the lock.
// swagger:model ExerciseAttempt
type ExerciseAttempt struct {
	BaseModel
	ExerciseID    uint            `gorm:"uniqueIndex:idx_attempt_seq;not null" json:"exercise_id"`
	Exercise      *Exercise       `gorm:"foreignKey:ExerciseID" json:"exercise,omitempty"`
	StudentID     uint            `gorm:"uniqueIndex:idx_attempt_seq;index;not null" json:"student_id"`
	Answer        json.RawMessage `gorm:"type:json;not null" json:"answer"`
	IsCorrect     bool            `gorm:"not null" json:"is_correct"`
	Score         uint            `gorm:"default:0" json:"score"`
	TimeSpent     uint            `gorm:"default:0" json:"time_spent"` // seconds
	HintsUsed     uint            `gorm:"default:0" json:"hints_used"`
	AttemptNumber uint            `gorm:"uniqueIndex:idx_attempt_seq;default:1" json:"attempt_number"`
}

func (ExerciseAttempt) TableName() string {
	return "exercise_attempts"
}
