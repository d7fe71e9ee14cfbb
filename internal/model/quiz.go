package model

import "time"

// Quiz aggregates exercises by reference. Deleting a quiz leaves its
// exercises untouched.
// swagger:model Quiz
type Quiz struct {
	BaseModel
	Title        string     `gorm:"size:200;not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description"`
	SubjectID    uint       `gorm:"index;not null" json:"subject_id"`
	Subject      *Subject   `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
	LessonID     *uint      `gorm:"index" json:"lesson_id,omitempty"`
	Exercises    []Exercise `gorm:"many2many:quiz_exercises" json:"exercises,omitempty"`
	Level        string     `gorm:"size:20;index;not null" json:"level"`
	TimeLimit    *uint      `json:"time_limit,omitempty"` // minutes
	PassingScore uint       `gorm:"default:50" json:"passing_score"` // percent
	IsActive     bool       `gorm:"default:true" json:"is_active"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// QuizAttempt lifecycle: created started (Completed=false), one transition to
// completed on submission, never mutated afterwards.
// swagger:model QuizAttempt
type QuizAttempt struct {
	BaseModel
	QuizID      uint       `gorm:"index;not null" json:"quiz_id"`
	Quiz        *Quiz      `gorm:"foreignKey:QuizID" json:"quiz,omitempty"`
	StudentID   uint       `gorm:"index;not null" json:"student_id"`
	Score       uint       `gorm:"default:0" json:"score"`
	TotalScore  uint       `gorm:"default:0" json:"total_score"`
	Percentage  uint       `gorm:"default:0" json:"percentage"`
	IsPassed    bool       `gorm:"default:false" json:"is_passed"`
	TimeSpent   uint       `gorm:"default:0" json:"time_spent"` // seconds
	Completed   bool       `gorm:"default:false" json:"completed"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
