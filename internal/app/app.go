package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"devlingo_backend/internal/config"
	"devlingo_backend/internal/controller"
	"devlingo_backend/internal/repository"
	"devlingo_backend/internal/service"
	"devlingo_backend/pkg/configwatcher"
	"devlingo_backend/pkg/database"
	"devlingo_backend/pkg/logger"
	"devlingo_backend/pkg/monitoring"
	"devlingo_backend/pkg/security"
	"devlingo_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	tracerProvider  *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user     *repository.UserRepository
	task     *repository.TaskRepository
	progress *repository.ProgressRepository
	score    *repository.ScoreRepository
	note     *repository.NoteRepository
	attempt  *repository.AttemptRepository
}

type services struct {
	auth        *service.AuthService
	storage     *service.StorageService
	progress    *service.ProgressService
	practice    *service.PracticeService
	leaderboard *service.LeaderboardService
	user        *service.UserService
	note        *service.NoteService
}

type controllers struct {
	auth        *controller.AuthController
	practice    *controller.PracticeController
	progress    *controller.ProgressController
	leaderboard *controller.LeaderboardController
	user        *controller.UserController
	note        *controller.NoteController
	task        *controller.TaskController
	health      *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *repositories {
	attemptTTL := time.Duration(cfg.Practice.AttemptTTLMinutes) * time.Minute
	return &repositories{
		user:     repository.NewUserRepository(db),
		task:     repository.NewTaskRepository(db),
		progress: repository.NewProgressRepository(db),
		score:    repository.NewScoreRepository(db),
		note:     repository.NewNoteRepository(db),
		attempt:  repository.NewAttemptRepository(rdb, attemptTTL),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.progress = service.NewProgressService(repos.progress, repos.score, repos.user)
	s.practice = service.NewPracticeService(repos.task, s.progress, repos.attempt, cfg.Practice.HintThreshold)
	s.leaderboard = service.NewLeaderboardService(repos.score, rdb, cfg.Practice.LeaderboardSize, cfg.Practice.LeaderboardTTL)
	s.user = service.NewUserService(repos.user, s.leaderboard)
	s.note = service.NewNoteService(repos.note)

	return s
}

func (a *App) initControllers(s *services, repos *repositories, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth),
		practice:    controller.NewPracticeController(s.practice),
		progress:    controller.NewProgressController(s.progress),
		leaderboard: controller.NewLeaderboardController(s.leaderboard),
		user:        controller.NewUserController(s.user, s.storage),
		note:        controller.NewNoteController(s.note),
		task:        controller.NewTaskController(repos.task),
		health:      controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) watchConfig() {
	go configwatcher.WatchConfig("configs/config.yaml", a.Config, func(newCfg interface{}) {
		cfg, ok := newCfg.(*config.Config)
		if !ok {
			return
		}
		logger.Log.Info("Configuration reloaded")
		for _, cb := range a.configCallbacks {
			cb(cfg)
		}
	})
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// practice still works without the cache, hints are just per-request
		logger.Log.Warn("Redis unavailable, attempt tracking and leaderboard cache disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb, cfg)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, repos, db, rdb)

	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("devlingo-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracerProvider = tp
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
		router.Static("/api/uploads", cfg.Storage.LocalPath)
	}

	app.watchConfig()

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	log.Println("Server exiting")
}
