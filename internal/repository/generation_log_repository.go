package repository

import (
	"time"

	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/model"
	"gorm.io/gorm"
)

type GenerationLogRepository struct {
	DB *gorm.DB
}

func NewGenerationLogRepository(db *gorm.DB) *GenerationLogRepository {
	return &GenerationLogRepository{DB: db}
}

func (r *GenerationLogRepository) Create(entry *model.GenerationLog) error {
	return r.DB.Create(entry).Error
}

func (r *GenerationLogRepository) ListByUser(userID uint, limit int) ([]model.GenerationLog, error) {
	if limit <= 0 {
		limit = 50
	}
	var entries []model.GenerationLog
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

// PruneOlderThan hard-deletes log entries past the retention window.
func (r *GenerationLogRepository) PruneOlderThan(cutoff time.Time) (int64, error) {
	res := r.DB.Unscoped().
		Where("created_at < ?", cutoff).
		Delete(&model.GenerationLog{})
	return res.RowsAffected, res.Error
}
