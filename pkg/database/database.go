package database

import (
	"fmt"
	"log"

	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/config"
	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/model"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Subject{},
		&model.Lesson{},
		&model.Exercise{},
		&model.ExerciseAttempt{},
		&model.Quiz{},
		&model.QuizAttempt{},
		&model.GenerationLog{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// Default subjects so a fresh install can generate exercises right away.
	var count int64
	db.Model(&model.Subject{}).Count(&count)
	if count == 0 {
		defaultSubjects := []model.Subject{
			{Name: "Mathématiques", Slug: "mathematiques", Description: "Maîtrisez les nombres et la géométrie", Color: "#3B82F6", Icon: "calculator", IsActive: true},
			{Name: "Français", Slug: "francais", Description: "Grammaire, conjugaison et vocabulaire", Color: "#EF4444", Icon: "book-open", IsActive: true},
			{Name: "Sciences", Slug: "sciences", Description: "Découvrez le monde scientifique", Color: "#10B981", Icon: "flask", IsActive: true},
			{Name: "Histoire-Géographie", Slug: "histoire-geographie", Description: "Explorez le monde et son histoire", Color: "#F59E0B", Icon: "globe", IsActive: true},
			{Name: "Anglais", Slug: "anglais", Description: "Apprenez l'anglais facilement", Color: "#8B5CF6", Icon: "message-circle", IsActive: true},
		}
		for _, s := range defaultSubjects {
			db.Create(&s)
		}
	}

	return db, nil
}
