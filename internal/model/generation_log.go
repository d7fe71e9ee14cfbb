package model

const (
	GenerationStatusOK     = "ok"
	GenerationStatusFailed = "failed"
)

// GenerationLog records every AI exercise generation request, successful or
// not. The UUID is the identifier exposed in API responses and logs.
type GenerationLog struct {
	UUIDBase
	UserID       uint   `gorm:"index;not null" json:"user_id"`
	SubjectName  string `gorm:"size:100" json:"subject_name"`
	Level        string `gorm:"size:20" json:"level"`
	Topic        string `gorm:"size:200" json:"topic"`
	Difficulty   string `gorm:"size:20" json:"difficulty"`
	ExerciseType string `gorm:"size:20" json:"exercise_type"`
	Model        string `gorm:"size:100" json:"model"`
	Status       string `gorm:"size:20;index" json:"status"`
	Error        string `gorm:"type:text" json:"error,omitempty"`
	DurationMs   int64  `json:"duration_ms"`
	ExerciseID   *uint  `gorm:"index" json:"exercise_id,omitempty"`
}

func (GenerationLog) TableName() string {
	return "generation_logs"
}
