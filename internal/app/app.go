package app

import (
	"context"
	"institute_backend/internal/config"
	"institute_backend/internal/controller"
	"institute_backend/internal/middleware"
	"institute_backend/internal/repository"
	"institute_backend/internal/service"
	"institute_backend/pkg/configwatcher"
	"institute_backend/pkg/database"
	"institute_backend/pkg/logger"
	"institute_backend/pkg/monitoring"
	"institute_backend/pkg/security"
	"institute_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
	// 非空时监听该文件并热更新
	ConfigFile string

	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user       *repository.UserRepository
	branch     *repository.BranchRepository
	subject    *repository.SubjectRepository
	unit       *repository.UnitRepository
	question   *repository.QuestionRepository
	attendance *repository.AttendanceRepository
	progress   *repository.ProgressRepository
	analytics  *repository.AnalyticsRepository
}

type services struct {
	auth       *service.AuthService
	user       *service.UserService
	branch     *service.BranchService
	subject    *service.SubjectService
	unit       *service.UnitService
	question   *service.QuestionService
	attendance *service.AttendanceService
	progress   *service.ProgressService
	quiz       *service.QuizService
	analytics  *service.AnalyticsService
	storage    *service.StorageService
	report     *service.ReportService
}

type controllers struct {
	auth       *controller.AuthController
	user       *controller.UserController
	branch     *controller.BranchController
	subject    *controller.SubjectController
	unit       *controller.UnitController
	question   *controller.QuestionController
	attendance *controller.AttendanceController
	progress   *controller.ProgressController
	quiz       *controller.QuizController
	analytics  *controller.AnalyticsController
	report     *controller.ReportController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		branch:     repository.NewBranchRepository(db),
		subject:    repository.NewSubjectRepository(db),
		unit:       repository.NewUnitRepository(db),
		question:   repository.NewQuestionRepository(db),
		attendance: repository.NewAttendanceRepository(db),
		progress:   repository.NewProgressRepository(db),
		analytics:  repository.NewAnalyticsRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) (*services, error) {
	s := &services{}

	storage, err := service.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}
	s.storage = storage

	// 所有写操作都通过 analytics 让统计缓存失效
	s.analytics = service.NewAnalyticsService(repos.analytics, rdb, cfg.Redis.CacheTTL)

	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.branch = service.NewBranchService(repos.branch, s.analytics)
	s.subject = service.NewSubjectService(repos.subject, repos.branch, s.analytics)
	s.unit = service.NewUnitService(repos.unit, repos.subject)
	s.question = service.NewQuestionService(repos.question, repos.unit)
	s.attendance = service.NewAttendanceService(repos.attendance, s.analytics)
	s.progress = service.NewProgressService(repos.progress, s.analytics)
	s.quiz = service.NewQuizService(repos.question, repos.unit, repos.progress, s.analytics)
	s.report = service.NewReportService(repos.subject, repos.unit, repos.progress, s.storage)

	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		user:       controller.NewUserController(s.user),
		branch:     controller.NewBranchController(s.branch),
		subject:    controller.NewSubjectController(s.subject),
		unit:       controller.NewUnitController(s.unit),
		question:   controller.NewQuestionController(s.question),
		attendance: controller.NewAttendanceController(s.attendance),
		progress:   controller.NewProgressController(s.progress),
		quiz:       controller.NewQuizController(s.quiz),
		analytics:  controller.NewAnalyticsController(s.analytics),
		report:     controller.NewReportController(s.report),
		health:     controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(middleware.RequestLogger())
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, window))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// New 在已打开的数据库和 Redis 上组装路由，Redis 可以为 nil
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*App, error) {
	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services, err := app.initServices(repos, cfg, rdb)
	if err != nil {
		return nil, err
	}
	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.RegisterConfigCallback(logger.SetLevel)

	return app, nil
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}
	if cfg.MigrateOnly {
		return &App{Config: cfg, DB: db}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app, err := New(cfg, db, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize application", zap.Error(err))
	}

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	return app
}

func (a *App) watchConfig(ctx context.Context) {
	if a.ConfigFile == "" {
		return
	}
	err := configwatcher.WatchConfig(ctx, a.ConfigFile, func(cfg *config.Config) {
		for _, cb := range a.configCallbacks {
			cb(cfg)
		}
	})
	if err != nil {
		logger.Log.Warn("config watcher stopped", zap.Error(err))
	}
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	go a.watchConfig(watchCtx)

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("listen failed", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")
	stopWatch()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Log.Info("Server exiting")
}
