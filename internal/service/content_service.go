package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/model"
	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/repository"
	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/util"
)

const (
	subjectsCacheKey = "cache:subjects:active"
	subjectsCacheTTL = 10 * time.Minute
)

// ContentService serves the browsable catalog: subjects and lessons, plus
// lesson video uploads for teachers.
type ContentService struct {
	subjectRepo *repository.SubjectRepository
	lessonRepo  *repository.LessonRepository
	storage     *StorageService
	redisClient *redis.Client
	logger      *zap.Logger
}

func NewContentService(
	subjectRepo *repository.SubjectRepository,
	lessonRepo *repository.LessonRepository,
	storage *StorageService,
	redisClient *redis.Client,
	logger *zap.Logger,
) *ContentService {
	return &ContentService{
		subjectRepo: subjectRepo,
		lessonRepo:  lessonRepo,
		storage:     storage,
		redisClient: redisClient,
		logger:      logger,
	}
}

// ListSubjects returns active subjects, served from Redis when warm. A cache
// failure degrades to a database read, never to an error.
func (s *ContentService) ListSubjects(ctx context.Context) ([]model.Subject, error) {
	if s.redisClient != nil {
		if cached, err := s.redisClient.Get(ctx, subjectsCacheKey).Bytes(); err == nil {
			var subjects []model.Subject
			if json.Unmarshal(cached, &subjects) == nil {
				return subjects, nil
			}
		}
	}

	subjects, err := s.subjectRepo.ListActive()
	if err != nil {
		return nil, err
	}

	if s.redisClient != nil {
		if encoded, err := json.Marshal(subjects); err == nil {
			if err := s.redisClient.Set(ctx, subjectsCacheKey, encoded, subjectsCacheTTL).Err(); err != nil {
				s.logger.Debug("subject cache write failed", zap.Error(err))
			}
		}
	}
	return subjects, nil
}

// ListLessons applies the caller's access restriction: a student only sees
// lessons at their own level or below. Teachers, parents and admins see
// everything.
func (s *ContentService) ListLessons(filter repository.LessonFilter, claims *util.Claims) ([]model.Lesson, error) {
	if claims != nil && claims.Role == model.Student && claims.Level != "" {
		filter.Levels = model.AllowedLevels(claims.Level)
	}
	return s.lessonRepo.List(filter)
}

func (s *ContentService) GetLesson(id uint) (*model.Lesson, error) {
	lesson, err := s.lessonRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}
	return lesson, nil
}

// UploadLessonVideo stores a lesson video, probes its duration and renders a
// thumbnail. The lesson record is updated only after both assets are stored.
func (s *ContentService) UploadLessonVideo(ctx context.Context, lessonID uint, fileHeader *multipart.FileHeader) (*model.Lesson, error) {
	lesson, err := s.GetLesson(lessonID)
	if err != nil {
		return nil, err
	}

	ext := filepath.Ext(fileHeader.Filename)
	allowed := false
	for _, e := range util.AllowedVideoExtensions {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("unsupported video extension %q", ext)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	mimeType, err := util.ValidateMimeType(src, []string{util.MimeVideo})
	if err != nil {
		return nil, err
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	// ffprobe needs a real path, so the upload lands in a temp file first.
	tmp, err := os.CreateTemp("", "lesson-video-*"+ext)
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		return nil, err
	}
	tmp.Close()

	info, err := util.GetVideoInfo(tmp.Name())
	if err != nil {
		return nil, fmt.Errorf("probing uploaded video: %w", err)
	}

	thumbPath := tmp.Name() + ".jpg"
	defer os.Remove(thumbPath)
	if err := util.GenerateThumbnail(tmp.Name(), thumbPath, "00:00:01"); err != nil {
		return nil, fmt.Errorf("generating thumbnail: %w", err)
	}

	videoName := fmt.Sprintf("lessons/%d/video%s", lessonID, ext)
	videoURL, err := s.storage.Provider.UploadFile(ctx, videoName, tmp.Name(), mimeType)
	if err != nil {
		return nil, err
	}

	thumbName := fmt.Sprintf("lessons/%d/thumbnail.jpg", lessonID)
	thumbURL, err := s.storage.Provider.UploadFile(ctx, thumbName, thumbPath, "image/jpeg")
	if err != nil {
		return nil, err
	}

	lesson.VideoURL = videoURL
	lesson.ThumbnailURL = thumbURL
	lesson.DurationMinutes = uint(info.Duration/60) + 1
	if err := s.lessonRepo.Update(lesson); err != nil {
		return nil, err
	}

	s.logger.Info("lesson video uploaded",
		zap.Uint("lessonID", lessonID),
		zap.Float64("durationSeconds", info.Duration),
		zap.String("mimeType", mimeType))
	return lesson, nil
}
