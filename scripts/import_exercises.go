// Bulk exercise import.
//
// Reads a JSON file of exercises and inserts them, resolving subject names
// and normalizing level codes the same way the API does. Meant for first
// deployments or curriculum drops prepared offline.
//
// Usage: go run scripts/import_exercises.go -file exercises.json
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"log"
	"os"

	"gorm.io/gorm"

	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/config"
	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/model"
	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/service"
	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/util"
	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/pkg/database"
)

var errAlreadyImported = errors.New("already imported")

type importedExercise struct {
	Subject string `json:"subject"`
	Level   string `json:"level"`
	service.ExercisePayload
}

func main() {
	file := flag.String("file", "exercises.json", "JSON file with exercises to import")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *file, err)
	}

	var entries []importedExercise
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Fatalf("Failed to parse %s: %v", *file, err)
	}

	var subjects []model.Subject
	if err := db.Where("is_active = ?", true).Find(&subjects).Error; err != nil {
		log.Fatalf("Failed to load subjects: %v", err)
	}
	bySlug := make(map[string]uint, len(subjects))
	for _, s := range subjects {
		bySlug[s.Slug] = s.ID
	}

	imported, skipped := 0, 0
	for i, entry := range entries {
		subjectID, ok := bySlug[util.Slugify(entry.Subject)]
		if !ok {
			log.Printf("entry %d: unknown subject %q, skipping", i, entry.Subject)
			skipped++
			continue
		}

		exerciseType := entry.Type
		if exerciseType == "" {
			exerciseType = model.ExerciseTypeQCM
		}
		if err := service.ValidatePayload(&entry.ExercisePayload, exerciseType); err != nil {
			log.Printf("entry %d (%s): invalid payload: %v, skipping", i, entry.Title, err)
			skipped++
			continue
		}

		exercise, err := service.BuildExercise(&entry.ExercisePayload, subjectID, model.NormalizeLevel(entry.Level), 0)
		if err != nil {
			log.Printf("entry %d (%s): %v, skipping", i, entry.Title, err)
			skipped++
			continue
		}
		// Imported content is curated, not generated.
		exercise.IsAIGenerated = false
		exercise.CreatorID = nil

		err = db.Transaction(func(tx *gorm.DB) error {
			var count int64
			tx.Model(&model.Exercise{}).
				Where("subject_id = ? AND level = ? AND title = ?", subjectID, exercise.Level, exercise.Title).
				Count(&count)
			if count > 0 {
				return errAlreadyImported
			}
			return tx.Create(exercise).Error
		})
		if err != nil {
			if errors.Is(err, errAlreadyImported) {
				log.Printf("entry %d (%s): already imported, skipping", i, entry.Title)
			} else {
				log.Printf("entry %d (%s): insert failed: %v", i, entry.Title, err)
			}
			skipped++
			continue
		}
		imported++
	}

	log.Printf("Import finished: %d imported, %d skipped", imported, skipped)
}
