package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/config"
	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/controller"
	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/repository"
	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/service"
	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/internal/util"
	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/pkg/database"
	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/pkg/logger"
	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/pkg/monitoring"
	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/pkg/security"
	"github.com/Abdoul1995/TUTEUR-INTELLIGENT-2026/pkg/tracing"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user     *repository.UserRepository
	subject  *repository.SubjectRepository
	lesson   *repository.LessonRepository
	exercise *repository.ExerciseRepository
	quiz     *repository.QuizRepository
	genLog   *repository.GenerationLogRepository
}

type services struct {
	auth       *service.AuthService
	storage    *service.StorageService
	content    *service.ContentService
	exercise   *service.ExerciseService
	quiz       *service.QuizService
	ai         *service.AIService
	generation *service.GenerationService
}

type controllers struct {
	auth     *controller.AuthController
	content  *controller.ContentController
	exercise *controller.ExerciseController
	quiz     *controller.QuizController
	ai       *controller.AIController
	health   *controller.HealthController
}

// RegisterConfigCallback adds a hook invoked on config hot-reload.
func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig runs the registered reload hooks against a fresh config.
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config = cfg
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		subject:  repository.NewSubjectRepository(db),
		lesson:   repository.NewLessonRepository(db),
		exercise: repository.NewExerciseRepository(db),
		quiz:     repository.NewQuizRepository(db),
		genLog:   repository.NewGenerationLogRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg, logger.Log)
	s.auth = service.NewAuthService(repos.user, cfg.JWT, logger.Log)
	s.content = service.NewContentService(repos.subject, repos.lesson, s.storage, rdb, logger.Log)
	s.exercise = service.NewExerciseService(repos.exercise, logger.Log)
	s.quiz = service.NewQuizService(repos.quiz, logger.Log)
	s.ai = service.NewAIService(cfg.AI)
	s.generation = service.NewGenerationService(
		s.ai, repos.subject, repos.exercise, repos.genLog, rdb, cfg.AI.DailyLimit, logger.Log)

	a.RegisterConfigCallback(func(updated *config.Config) {
		s.ai.Reconfigure(updated.AI)
	})

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:     controller.NewAuthController(s.auth),
		content:  controller.NewContentController(s.content),
		exercise: controller.NewExerciseController(s.exercise),
		quiz:     controller.NewQuizController(s.quiz),
		ai:       controller.NewAIController(s.ai, s.generation),
		health:   controller.NewHealthController(db, rdb, s.ai),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) startBackgroundTasks(repos *repositories) {
	// Generation logs are diagnostics, not pedagogy; drop them after 90 days.
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		for range ticker.C {
			cutoff := time.Now().AddDate(0, 0, -90)
			deleted, err := repos.genLog.PruneOlderThan(cutoff)
			if err != nil {
				logger.Log.Error("generation log pruning failed", zap.Error(err))
				continue
			}
			if deleted > 0 {
				logger.Log.Info("pruned generation logs", zap.Int64("deleted", deleted))
			}
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// Caching and quotas degrade gracefully; the app still serves.
		logger.Log.Warn("Redis unavailable, running without cache", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("tuteur-intelligent", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.startBackgroundTasks(repos)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Log.Info("Server exiting")
}
