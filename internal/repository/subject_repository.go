package repository

import (
	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/model"
	"gorm.io/gorm"
)

type SubjectRepository struct {
	DB *gorm.DB
}

func NewSubjectRepository(db *gorm.DB) *SubjectRepository {
	return &SubjectRepository{DB: db}
}

func (r *SubjectRepository) ListActive() ([]model.Subject, error) {
	var subjects []model.Subject
	err := r.DB.Where("is_active = ?", true).Order("name").Find(&subjects).Error
	return subjects, err
}

func (r *SubjectRepository) FindByID(id uint) (*model.Subject, error) {
	var subject model.Subject
	if err := r.DB.First(&subject, id).Error; err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *SubjectRepository) FindBySlug(slug string) (*model.Subject, error) {
	var subject model.Subject
	if err := r.DB.Where("slug = ?", slug).First(&subject).Error; err != nil {
		return nil, err
	}
	return &subject, nil
}
