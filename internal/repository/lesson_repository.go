package repository

import (
	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/model"
	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

// LessonFilter narrows lesson listings. Levels, when set, restricts results
// to that set of level codes (student access restriction).
type LessonFilter struct {
	SubjectSlug string
	Level       string
	Levels      []string
	Search      string
}

func (r *LessonRepository) List(filter LessonFilter) ([]model.Lesson, error) {
	q := r.DB.Preload("Subject").Where("lessons.is_active = ?", true)

	if filter.SubjectSlug != "" {
		q = q.Joins("JOIN subjects ON subjects.id = lessons.subject_id").
			Where("subjects.slug = ?", filter.SubjectSlug)
	}
	if filter.Level != "" {
		q = q.Where("lessons.level = ?", filter.Level)
	}
	if len(filter.Levels) > 0 {
		q = q.Where("lessons.level IN ?", filter.Levels)
	}
	if filter.Search != "" {
		q = q.Where("lessons.title LIKE ?", "%"+filter.Search+"%")
	}

	var lessons []model.Lesson
	err := q.Order("lessons.`order`, lessons.title").Find(&lessons).Error
	return lessons, err
}

func (r *LessonRepository) FindByID(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	if err := r.DB.Preload("Subject").First(&lesson, id).Error; err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *LessonRepository) Update(lesson *model.Lesson) error {
	return r.DB.Save(lesson).Error
}
