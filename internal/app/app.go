package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"slp_caseload_backend/internal/config"
	"slp_caseload_backend/internal/controller"
	"slp_caseload_backend/internal/repository"
	"slp_caseload_backend/internal/service"
	"slp_caseload_backend/internal/util"
	"slp_caseload_backend/pkg/database"
	"slp_caseload_backend/pkg/logger"
	"slp_caseload_backend/pkg/monitoring"
	"slp_caseload_backend/pkg/notify"
	"slp_caseload_backend/pkg/security"
	"slp_caseload_backend/pkg/tracing"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	Publisher       *notify.Publisher
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user          *repository.UserRepository
	student       *repository.StudentRepository
	goal          *repository.GoalRepository
	session       *repository.SessionRepository
	school        *repository.SchoolRepository
	contact       *repository.ContactRepository
	schedule      *repository.ScheduleRepository
	communication *repository.CommunicationRepository
	report        *repository.ProgressReportRepository
}

type services struct {
	storage       *service.StorageService
	auth          *service.AuthService
	hierarchy     *service.GoalHierarchyService
	scheduler     *service.ReportSchedulerService
	student       *service.StudentService
	goal          *service.GoalService
	session       *service.SessionService
	schedule      *service.ScheduleService
	directory     *service.DirectoryService
	communication *service.CommunicationService
	report        *service.ReportService
	export        *service.ExportService
	backup        *service.BackupService
}

type controllers struct {
	auth          *controller.AuthController
	student       *controller.StudentController
	goal          *controller.GoalController
	session       *controller.SessionController
	schedule      *controller.ScheduleController
	directory     *controller.DirectoryController
	communication *controller.CommunicationController
	report        *controller.ReportController
	export        *controller.ExportController
	health        *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig swaps in a hot-reloaded configuration and notifies
// registered callbacks. Only settings read per-request pick up the change;
// listeners and connections keep their startup values.
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config = cfg
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
	logger.Log.Info("Configuration reloaded")
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:          repository.NewUserRepository(db),
		student:       repository.NewStudentRepository(db),
		goal:          repository.NewGoalRepository(db),
		session:       repository.NewSessionRepository(db),
		school:        repository.NewSchoolRepository(db),
		contact:       repository.NewContactRepository(db),
		schedule:      repository.NewScheduleRepository(db),
		communication: repository.NewCommunicationRepository(db),
		report:        repository.NewProgressReportRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.hierarchy = service.NewGoalHierarchyService()
	s.scheduler = service.NewReportSchedulerService(repos.report, a.Publisher)
	s.student = service.NewStudentService(repos.student, repos.session, repos.goal, s.scheduler, rdb)
	s.goal = service.NewGoalService(repos.goal, repos.session, s.hierarchy)
	s.session = service.NewSessionService(repos.session, repos.goal)
	s.schedule = service.NewScheduleService(repos.schedule, repos.student)
	s.directory = service.NewDirectoryService(repos.school, repos.contact)
	s.communication = service.NewCommunicationService(repos.communication, s.storage)
	s.report = service.NewReportService(repos.report)
	s.export = service.NewExportService(repos.student, repos.goal, repos.session, repos.report, repos.communication, s.hierarchy)
	s.backup = service.NewBackupService(db, s.storage)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:          controller.NewAuthController(s.auth),
		student:       controller.NewStudentController(s.student),
		goal:          controller.NewGoalController(s.goal, s.student),
		session:       controller.NewSessionController(s.session, s.student),
		schedule:      controller.NewScheduleController(s.schedule),
		directory:     controller.NewDirectoryController(s.directory),
		communication: controller.NewCommunicationController(s.communication, s.student),
		report:        controller.NewReportController(s.report, s.scheduler, s.student),
		export:        controller.NewExportController(s.export, s.backup),
		health:        controller.NewHealthController(db, rdb, a.Publisher),
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

const overdueSweepLockKey = "reports:overdue-sweep:lock"

// startBackgroundTasks runs the hourly overdue sweep. The redis lock keeps
// the sweep single-flight when several instances share a database.
func (a *App) startBackgroundTasks(s *services) {
	go func() {
		ticker := time.NewTicker(time.Hour)
		for range ticker.C {
			if !a.acquireSweepLock() {
				continue
			}
			if err := s.scheduler.RefreshOverdueStatuses(time.Now()); err != nil {
				logger.Log.Error("overdue sweep failed", zap.Error(err))
			}
		}
	}()
}

func (a *App) acquireSweepLock() bool {
	if a.Redis == nil {
		return true
	}
	ok, err := a.Redis.SetNX(context.Background(), overdueSweepLockKey, 1, 55*time.Minute).Result()
	if err != nil {
		logger.Log.Warn("overdue sweep lock unavailable, running anyway", zap.Error(err))
		return true
	}
	return ok
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// the cache and sweep lock degrade gracefully without redis
		logger.Log.Warn("Redis unavailable, caching disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	if cfg.Notify.Enabled {
		publisher, err := notify.NewPublisher(cfg.Notify.URL, cfg.Notify.Exchange)
		if err != nil {
			logger.Log.Warn("Report event publisher unavailable", zap.Error(err))
		} else {
			app.Publisher = publisher
		}
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("slp-caseload", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
			}
		}()
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type != util.StorageMinio {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.startBackgroundTasks(services)

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

	a.Publisher.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
