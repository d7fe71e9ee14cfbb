package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/answer"
	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/model"
	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/repository"
	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/util"
	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/pkg/monitoring"
)

// GenerationService runs the full generation pipeline: resolve the subject,
// normalize the level, call the model, validate the payload and persist the
// exercise together with its generation log.
type GenerationService struct {
	aiService    *AIService
	subjectRepo  *repository.SubjectRepository
	exerciseRepo *repository.ExerciseRepository
	genLogRepo   *repository.GenerationLogRepository
	redisClient  *redis.Client
	dailyLimit   int
	logger       *zap.Logger
}

func NewGenerationService(
	aiService *AIService,
	subjectRepo *repository.SubjectRepository,
	exerciseRepo *repository.ExerciseRepository,
	genLogRepo *repository.GenerationLogRepository,
	redisClient *redis.Client,
	dailyLimit int,
	logger *zap.Logger,
) *GenerationService {
	return &GenerationService{
		aiService:    aiService,
		subjectRepo:  subjectRepo,
		exerciseRepo: exerciseRepo,
		genLogRepo:   genLogRepo,
		redisClient:  redisClient,
		dailyLimit:   dailyLimit,
		logger:       logger,
	}
}

// GenerateRequest is the caller-facing shape of a generation request.
// Subject accepts a display name, a partial name or a slug.
type GenerateRequest struct {
	Subject    string `json:"subject" binding:"required"`
	Level      string `json:"level" binding:"required"`
	Topic      string `json:"topic" binding:"required"`
	Difficulty string `json:"difficulty"`
	Type       string `json:"exercise_type"`
	Language   string `json:"language"`
}

// ResolveSubject matches a free-form subject query against active subjects,
// in order: exact name match, substring match, slug match. All comparisons
// are accent-folded and case-insensitive, so "mathematiques" finds
// "Mathématiques".
func (s *GenerationService) ResolveSubject(query string) (*model.Subject, error) {
	subjects, err := s.subjectRepo.ListActive()
	if err != nil {
		return nil, err
	}
	return resolveSubject(subjects, query)
}

func resolveSubject(subjects []model.Subject, query string) (*model.Subject, error) {
	q := strings.ToLower(util.FoldAccents(strings.TrimSpace(query)))
	if q == "" {
		return nil, util.ErrSubjectNotFound
	}

	for i := range subjects {
		if strings.ToLower(util.FoldAccents(subjects[i].Name)) == q {
			return &subjects[i], nil
		}
	}
	for i := range subjects {
		if strings.Contains(strings.ToLower(util.FoldAccents(subjects[i].Name)), q) {
			return &subjects[i], nil
		}
	}
	for i := range subjects {
		if subjects[i].Slug == util.Slugify(query) {
			return &subjects[i], nil
		}
	}
	return nil, util.ErrSubjectNotFound
}

// Generate runs one generation for a user. Students are held to the daily
// quota, charged before the model call; a failed generation still consumes
// it, which keeps a broken prompt from hammering the API for free.
func (s *GenerationService) Generate(ctx context.Context, userID uint, role model.UserRole, req GenerateRequest) (*model.Exercise, error) {
	subject, err := s.ResolveSubject(req.Subject)
	if err != nil {
		return nil, err
	}

	level := model.NormalizeLevel(req.Level)

	if req.Difficulty == "" {
		req.Difficulty = model.DifficultyMedium
	}
	if req.Type == "" {
		req.Type = model.ExerciseTypeQCM
	}
	if req.Type != model.ExerciseTypeQCM && req.Type != model.ExerciseTypeClassic {
		return nil, fmt.Errorf("%w: %q", util.ErrUnsupportedExerciseType, req.Type)
	}
	if req.Language == "" {
		req.Language = "fr"
	}

	if role == model.Student {
		if err := s.chargeQuota(ctx, userID); err != nil {
			return nil, err
		}
	}

	genLog := &model.GenerationLog{
		UserID:       userID,
		SubjectName:  subject.Name,
		Level:        level,
		Topic:        req.Topic,
		Difficulty:   req.Difficulty,
		ExerciseType: req.Type,
		Model:        s.aiService.Model(),
	}

	start := time.Now()
	payload, err := s.aiService.GenerateExercise(ctx, GeneratePromptRequest{
		Subject:    subject.Name,
		Level:      model.LevelLabel(level),
		Topic:      req.Topic,
		Difficulty: req.Difficulty,
		Type:       req.Type,
		Language:   req.Language,
	})
	genLog.DurationMs = time.Since(start).Milliseconds()

	if err == nil {
		err = ValidatePayload(payload, req.Type)
	}
	if err != nil {
		s.recordFailure(genLog, err)
		return nil, err
	}

	// The requested type and difficulty win over whatever the model echoed
	// back, since validation and scoring key off them.
	payload.Type = req.Type
	payload.Difficulty = req.Difficulty

	exercise, err := BuildExercise(payload, subject.ID, level, userID)
	if err != nil {
		s.recordFailure(genLog, err)
		return nil, err
	}

	if err := s.exerciseRepo.CreateGenerated(exercise, genLog); err != nil {
		s.recordFailure(genLog, err)
		return nil, err
	}

	monitoring.GenerationCounter.WithLabelValues(req.Type, model.GenerationStatusOK).Inc()
	monitoring.GenerationDuration.Observe(time.Since(start).Seconds())
	s.logger.Info("exercise generated",
		zap.Uint("userID", userID),
		zap.String("subject", subject.Name),
		zap.String("level", level),
		zap.Uint("exerciseID", exercise.ID),
		zap.Int64("durationMs", genLog.DurationMs))

	return exercise, nil
}

func (s *GenerationService) recordFailure(genLog *model.GenerationLog, cause error) {
	genLog.Status = model.GenerationStatusFailed
	genLog.Error = cause.Error()
	if err := s.genLogRepo.Create(genLog); err != nil {
		s.logger.Error("failed to record generation log", zap.Error(err))
	}
	monitoring.GenerationCounter.WithLabelValues(genLog.ExerciseType, model.GenerationStatusFailed).Inc()
	s.logger.Warn("exercise generation failed",
		zap.Uint("userID", genLog.UserID),
		zap.String("subject", genLog.SubjectName),
		zap.Error(cause))
}

// History returns the student's recent generation log entries.
func (s *GenerationService) History(userID uint, limit int) ([]model.GenerationLog, error) {
	return s.genLogRepo.ListByUser(userID, limit)
}

// chargeQuota increments the student's daily counter in Redis. The key rolls
// over at midnight UTC; a Redis outage lets the request through rather than
// blocking all generation.
func (s *GenerationService) chargeQuota(ctx context.Context, userID uint) error {
	if s.dailyLimit <= 0 || s.redisClient == nil {
		return nil
	}

	key := fmt.Sprintf("ai:quota:%d:%s", userID, time.Now().UTC().Format("2006-01-02"))
	count, err := s.redisClient.Incr(ctx, key).Result()
	if err != nil {
		s.logger.Warn("quota check unavailable", zap.Error(err))
		return nil
	}
	if count == 1 {
		s.redisClient.Expire(ctx, key, 25*time.Hour)
	}
	if count > int64(s.dailyLimit) {
		return util.ErrGenerationQuotaReached
	}
	return nil
}

type qcmQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type qcmContent struct {
	Questions []qcmQuestion `json:"questions"`
}

type classicContent struct {
	Text      string   `json:"text"`
	Questions []string `json:"questions"`
}

// validatePayload rejects model output that does not match the structural
// contract for its exercise type. Nothing invalid is ever persisted.
func ValidatePayload(p *ExercisePayload, exerciseType string) error {
	if p.Title == "" {
		return fmt.Errorf("generated exercise has no title")
	}
	if len(p.Content) == 0 {
		return fmt.Errorf("generated exercise has no content")
	}
	if len(p.CorrectAnswers) == 0 {
		return fmt.Errorf("generated exercise has no correct answers")
	}

	switch exerciseType {
	case model.ExerciseTypeQCM:
		var content qcmContent
		if err := json.Unmarshal(p.Content, &content); err != nil {
			return fmt.Errorf("invalid qcm content: %w", err)
		}
		if len(content.Questions) == 0 {
			return fmt.Errorf("qcm content has no questions")
		}
		for i, q := range content.Questions {
			if q.Question == "" {
				return fmt.Errorf("qcm question %d is empty", i)
			}
			if len(q.Options) != 4 {
				return fmt.Errorf("qcm question %d has %d options, want 4", i, len(q.Options))
			}
		}
		canonical, ok := canonicalAnswers(p.CorrectAnswers)
		if !ok {
			return fmt.Errorf("qcm correct answers are not option references")
		}
		if len(canonical) != len(content.Questions) {
			return fmt.Errorf("qcm has %d questions but %d answers", len(content.Questions), len(canonical))
		}
		for i, idx := range canonical {
			if idx < 0 || idx > 3 {
				return fmt.Errorf("qcm answer %d is out of range: %d", i, idx)
			}
		}

	case model.ExerciseTypeClassic:
		var content classicContent
		if err := json.Unmarshal(p.Content, &content); err != nil {
			return fmt.Errorf("invalid classic content: %w", err)
		}
		if content.Text == "" {
			return fmt.Errorf("classic content has no text")
		}
		if len(content.Questions) == 0 {
			return fmt.Errorf("classic content has no questions")
		}
		var corrections []string
		if err := json.Unmarshal(p.CorrectAnswers, &corrections); err != nil {
			return fmt.Errorf("classic correct answers must be a list of strings: %w", err)
		}
		if len(corrections) != len(content.Questions) {
			return fmt.Errorf("classic has %d questions but %d corrections", len(content.Questions), len(corrections))
		}

	default:
		return fmt.Errorf("unsupported exercise type %q", exerciseType)
	}
	return nil
}

// canonicalAnswers normalizes qcm correct answers to a 0-based index list.
// Letters ("B"), scalars (2) and mixed lists all come in from the model.
func canonicalAnswers(raw json.RawMessage) ([]int, bool) {
	return answer.Decode(raw).Canonical()
}

// buildExercise maps a validated payload to the persistent model. QCM correct
// answers are stored in canonical index-list form regardless of how the model
// phrased them.
func BuildExercise(p *ExercisePayload, subjectID uint, level string, creatorID uint) (*model.Exercise, error) {
	correctAnswers := p.CorrectAnswers
	if p.Type == model.ExerciseTypeQCM {
		if canonical, ok := canonicalAnswers(p.CorrectAnswers); ok {
			normalized, err := json.Marshal(canonical)
			if err != nil {
				return nil, err
			}
			correctAnswers = normalized
		}
	}

	points := uint(10)
	if p.Points != "" {
		if n, err := p.Points.Int64(); err == nil && n > 0 {
			points = uint(n)
		}
	}

	hints := json.RawMessage("[]")
	if len(p.Hints) > 0 {
		encoded, err := json.Marshal(p.Hints)
		if err != nil {
			return nil, err
		}
		hints = encoded
	}

	exerciseType := p.Type
	if exerciseType == "" {
		exerciseType = model.ExerciseTypeQCM
	}
	difficulty := p.Difficulty
	if difficulty == "" {
		difficulty = model.DifficultyMedium
	}

	return &model.Exercise{
		SubjectID:      subjectID,
		Title:          p.Title,
		Description:    p.Description,
		ExerciseType:   exerciseType,
		Difficulty:     difficulty,
		Level:          level,
		Content:        p.Content,
		CorrectAnswers: correctAnswers,
		Explanation:    p.Explanation,
		Hints:          hints,
		Points:         points,
		IsActive:       true,
		CreatorID:      &creatorID,
		IsAIGenerated:  true,
	}, nil
}
