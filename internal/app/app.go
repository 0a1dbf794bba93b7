package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/studytrail/internal/config"
	"github.com/templui/studytrail/internal/db"
	"github.com/templui/studytrail/internal/generation"
	"github.com/templui/studytrail/internal/markdown"
	"github.com/templui/studytrail/internal/middleware"
	"github.com/templui/studytrail/internal/repository"
	"github.com/templui/studytrail/internal/repository/memstore"
	"github.com/templui/studytrail/internal/service"
	"github.com/templui/studytrail/internal/storage"
)

type App struct {
	Cfg              *config.Config
	DB               *sqlx.DB // nil with the memory driver
	Repos            *repository.Repositories
	Storage          storage.Storage
	Markdown         *markdown.Parser
	AuthService      *service.AuthService
	UserService      *service.UserService
	ProfileService   *service.ProfileService
	EmailService     *service.EmailService
	FileService      *service.FileService
	GoalService      *service.GoalService
	PlanService      *service.PlanService
	DashboardService *service.DashboardService
	SetupService     *service.SetupService
	AuthLimiter      *middleware.RateLimiter
	GenerateLimiter  *middleware.RateLimiter

	stop chan struct{}
}

// authAttempts is the per-IP budget for register and login.
const authAttempts = 20

func New(cfg *config.Config) (*App, error) {
	// Database
	database, repos, err := openRepositories(cfg)
	if err != nil {
		return nil, err
	}

	// Storage
	fileStorage, err := storage.New(cfg)
	if err != nil {
		_ = db.Close(database)
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	// Content generation
	generator := generation.NewGateway(generation.NewChatClient(generation.ChatConfig{
		BaseURL: cfg.AIBaseURL,
		APIKey:  cfg.AIAPIKey,
		Model:   cfg.AIModel,
		Timeout: cfg.AITimeout,
	}))

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	authService := service.NewAuthService(repos.Users, repos.Profiles, emailService, cfg.JWTSecret, cfg.JWTExpiry)
	userService := service.NewUserService(repos.Users, repos.Profiles)
	profileService := service.NewProfileService(repos.Profiles)
	fileService := service.NewFileService(repos.Files, repos.Goals, fileStorage)
	goalService := service.NewGoalService(repos.Goals, repos.Files)
	planService := service.NewPlanService(
		repos.Goals,
		repos.Plans,
		repos.DailyContents,
		repos.Profiles,
		repos.Users,
		fileService,
		emailService,
		generator,
		cfg.RewardTokensPerDay,
	)
	dashboardService := service.NewDashboardService(goalService, planService, profileService)
	setupService := service.NewSetupService(fileService, goalService, planService)

	a := &App{
		Cfg:              cfg,
		DB:               database,
		Repos:            repos,
		Storage:          fileStorage,
		Markdown:         markdown.NewParser(),
		AuthService:      authService,
		UserService:      userService,
		ProfileService:   profileService,
		EmailService:     emailService,
		FileService:      fileService,
		GoalService:      goalService,
		PlanService:      planService,
		DashboardService: dashboardService,
		SetupService:     setupService,
		AuthLimiter:      middleware.NewRateLimiter(authAttempts, cfg.RateLimitWindow),
		GenerateLimiter:  middleware.NewRateLimiter(cfg.RateLimitGenerate, cfg.RateLimitWindow),
		stop:             make(chan struct{}),
	}

	go a.AuthLimiter.CleanupLoop(time.Minute, a.stop)
	go a.GenerateLimiter.CleanupLoop(time.Minute, a.stop)

	return a, nil
}

// openRepositories selects the memory store or a migrated SQL database.
func openRepositories(cfg *config.Config) (*sqlx.DB, *repository.Repositories, error) {
	if cfg.DBDriver == db.DriverMemory {
		return nil, memstore.New().Repositories(), nil
	}

	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		_ = database.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	return database, repository.NewSQL(database), nil
}

// Ping checks the database connection. The memory store is always healthy.
func (a *App) Ping(ctx context.Context) error {
	if a.DB == nil {
		return nil
	}
	return a.DB.PingContext(ctx)
}

func (a *App) Close() error {
	close(a.stop)
	return db.Close(a.DB)
}
