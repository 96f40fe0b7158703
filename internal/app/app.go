package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eduagent_backend/internal/config"
	"eduagent_backend/internal/controller"
	"eduagent_backend/internal/repository"
	"eduagent_backend/internal/service"
	"eduagent_backend/pkg/database"
	"eduagent_backend/pkg/logger"
	"eduagent_backend/pkg/monitoring"
	"eduagent_backend/pkg/security"
	"eduagent_backend/pkg/tracing"

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

	tracerProvider *sdktrace.TracerProvider
}

type services struct {
	llm        service.LLMGateway
	storage    *service.StorageService
	dataset    *service.DatasetService
	paper      *service.PaperService
	mock       *service.MockService
	grading    *service.GradingService
	learning   *service.LearningService
	evaluation *service.EvaluationService
	session    *service.SessionService
}

type controllers struct {
	system     *controller.SystemController
	paper      *controller.PaperController
	grading    *controller.GradingController
	learning   *controller.LearningController
	evaluation *controller.EvaluationController
	session    *controller.SessionController
}

func (a *App) initServices(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	var sessionRepo *repository.SessionRepository
	if db != nil {
		sessionRepo = repository.NewSessionRepository(db)
	}

	s.llm = service.NewLLMService(cfg.LLM, rdb)
	s.storage = service.NewStorageService(cfg)
	s.dataset = service.NewDatasetService(cfg.Dataset)
	s.paper = service.NewPaperService(s.llm)
	s.mock = service.NewMockService(s.llm, cfg.Paper.MockPDFDir, s.storage)
	s.grading = service.NewGradingService(s.llm)
	s.learning = service.NewLearningService(s.llm, s.dataset)
	s.evaluation = service.NewEvaluationService(s.dataset)
	s.session = service.NewSessionService(sessionRepo)

	return s
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		system:     controller.NewSystemController(s.llm, s.dataset, s.learning),
		paper:      controller.NewPaperController(s.paper, s.mock, s.session, &a.Config.Paper),
		grading:    controller.NewGradingController(s.grading, s.paper, s.evaluation, s.session, &a.Config.Paper),
		learning:   controller.NewLearningController(s.learning, s.evaluation, s.session),
		evaluation: controller.NewEvaluationController(s.dataset),
		session:    controller.NewSessionController(s.session),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 100000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	// 没有MySQL也能跑：会话不落库，只保留在内存里
	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Warn("Database unavailable, sessions will not be persisted", zap.Error(err))
		db = nil
	}

	// 没有Redis也能跑：LLM缓存退回进程内map
	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, falling back to in-process LLM cache", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	svcs := app.initServices(cfg, db, rdb)
	ctrls := app.initControllers(svcs)

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("eduagent-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracerProvider = tp
	}

	app.registerRoutes(router, ctrls)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
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
