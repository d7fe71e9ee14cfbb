package model

// swagger:model Subject
type Subject struct {
	BaseModel
	Name        string `gorm:"size:100;not null" json:"name"`
	Slug        string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
	Icon        string `gorm:"size:50" json:"icon"`
	Color       string `gorm:"size:20" json:"color"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`
}

func (Subject) TableName() string {
	return "subjects"
}

// swagger:model Lesson
type Lesson struct {
	BaseModel
	SubjectID       uint     `gorm:"index;not null" json:"subject_id"`
	Subject         *Subject `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
	Title           string   `gorm:"size:200;not null" json:"title"`
	Slug            string   `gorm:"size:200;index" json:"slug"`
	Content         string   `gorm:"type:longtext" json:"content"`
	Summary         string   `gorm:"type:text" json:"summary"`
	Level           string   `gorm:"size:20;index;not null" json:"level"`
	DurationMinutes uint     `gorm:"default:30" json:"duration_minutes"`
	VideoURL        string   `gorm:"size:255" json:"video_url"`
	ThumbnailURL    string   `gorm:"size:255" json:"thumbnail_url"`
	Order           uint     `gorm:"default:0" json:"order"`
	IsOfficial      bool     `gorm:"default:true" json:"is_official"`
	IsActive        bool     `gorm:"default:true" json:"is_active"`
}

func (Lesson) TableName() string {
	return "lessons"
}
