package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tutorboard_backend/internal/config"
	"tutorboard_backend/internal/controller"
	"tutorboard_backend/internal/repository"
	"tutorboard_backend/internal/service"
	"tutorboard_backend/pkg/database"
	"tutorboard_backend/pkg/hub"
	"tutorboard_backend/pkg/logger"
	"tutorboard_backend/pkg/monitoring"
	"tutorboard_backend/pkg/security"
	"tutorboard_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user         *repository.UserRepository
	class        *repository.ClassRepository
	lesson       *repository.LessonRepository
	assignment   *repository.AssignmentRepository
	test         *repository.TestRepository
	attendance   *repository.AttendanceRepository
	comment      *repository.CommentRepository
	notification *repository.NotificationRepository
	badge        *repository.BadgeRepository
	schedule     *repository.ScheduleRepository
}

type services struct {
	auth         *service.AuthService
	access       *service.AccessService
	class        *service.ClassService
	teacher      *service.TeacherService
	assignment   *service.AssignmentService
	test         *service.TestService
	student      *service.StudentService
	parent       *service.ParentService
	dashboard    *service.DashboardService
	notification *service.NotificationService
	schedule     *service.ScheduleService
	storage      *service.StorageService
}

type controllers struct {
	auth         *controller.AuthController
	class        *controller.ClassController
	teacher      *controller.TeacherController
	assignment   *controller.AssignmentController
	test         *controller.TestController
	student      *controller.StudentController
	parent       *controller.ParentController
	dashboard    *controller.DashboardController
	notification *controller.NotificationController
	schedule     *controller.ScheduleController
	upload       *controller.UploadController
	health       *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		class:        repository.NewClassRepository(db),
		lesson:       repository.NewLessonRepository(db),
		assignment:   repository.NewAssignmentRepository(db),
		test:         repository.NewTestRepository(db),
		attendance:   repository.NewAttendanceRepository(db),
		comment:      repository.NewCommentRepository(db),
		notification: repository.NewNotificationRepository(db),
		badge:        repository.NewBadgeRepository(db),
		schedule:     repository.NewScheduleRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*services, error) {
	s := &services{}

	storage, err := service.NewStorageService(&cfg.Storage)
	if err != nil {
		return nil, err
	}
	s.storage = storage

	s.auth = service.NewAuthService(repos.user, hub.NewClient(&cfg.Hub), rdb)
	s.access = service.NewAccessService(repos.class)
	s.notification = service.NewNotificationService(repos.notification)
	s.schedule = service.NewScheduleService(repos.schedule, repos.class, repos.assignment, repos.test)
	s.class = service.NewClassService(repos.class, s.access)
	s.teacher = service.NewTeacherService(db, repos.class, repos.lesson, repos.assignment,
		repos.test, repos.attendance, repos.comment, s.access, s.notification, s.schedule)
	s.assignment = service.NewAssignmentService(repos.class, repos.assignment)
	s.test = service.NewTestService(repos.class, repos.test)
	s.student = service.NewStudentService(repos.class, repos.lesson, repos.assignment,
		repos.test, repos.attendance, repos.comment, s.access, s.notification)
	s.parent = service.NewParentService(repos.class, repos.lesson, repos.assignment,
		repos.test, repos.attendance, repos.comment, repos.notification, s.access, s.notification)
	s.dashboard = service.NewDashboardService(repos.class, repos.lesson, repos.assignment,
		repos.test, repos.badge, repos.notification)

	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth),
		class:        controller.NewClassController(s.class),
		teacher:      controller.NewTeacherController(s.teacher),
		assignment:   controller.NewAssignmentController(s.assignment),
		test:         controller.NewTestController(s.test),
		student:      controller.NewStudentController(s.student, s.schedule),
		parent:       controller.NewParentController(s.parent),
		dashboard:    controller.NewDashboardController(s.dashboard),
		notification: controller.NewNotificationController(s.notification),
		schedule:     controller.NewScheduleController(s.schedule),
		upload:       controller.NewUploadController(s.storage),
		health:       controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("failed to initialize database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.Log.Fatal("failed to migrate database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// The Redis-backed SSO replay guard degrades gracefully without it.
		logger.Log.Warn("redis unavailable, continuing without it", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services, err := app.initServices(repos, cfg, db, rdb)
	if err != nil {
		logger.Log.Fatal("failed to initialize services", zap.Error(err))
	}
	controllers := app.initControllers(services, db)

	monitoring.Init()

	gin.SetMode(ginMode(cfg.Server.Mode))
	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("tutorboard", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" || cfg.Storage.Type == "" {
		router.Static("/uploads/files", cfg.Storage.LocalPath)
	}

	return app
}

func ginMode(mode string) string {
	switch mode {
	case "debug":
		return gin.DebugMode
	case "test":
		return gin.TestMode
	default:
		return gin.ReleaseMode
	}
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		logger.Log.Info("server listening", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server forced to shutdown:", err)
	}
	logger.Log.Info("server exited")
}
