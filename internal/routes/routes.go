package routes

import (
	"net/http"

	"github.com/templui/studytrail/internal/app"
	"github.com/templui/studytrail/internal/handler"
	"github.com/templui/studytrail/internal/middleware"
	"github.com/templui/studytrail/internal/storage"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	health := handler.NewHealthHandler(app.Ping)
	auth := handler.NewAuthHandler(app.AuthService)
	profile := handler.NewProfileHandler(app.UserService, app.ProfileService)
	goal := handler.NewGoalHandler(app.GoalService)
	plan := handler.NewPlanHandler(app.PlanService, app.Markdown)
	file := handler.NewFileHandler(app.FileService)
	dashboard := handler.NewDashboardHandler(app.DashboardService)
	setup := handler.NewSetupHandler(app.SetupService)

	authLimit := middleware.RateLimit(app.AuthLimiter)
	generateLimit := middleware.RateLimit(app.GenerateLimiter)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /healthz", health.Health)

	// Local file storage (development)
	if disk, ok := app.Storage.(*storage.DiskStorage); ok {
		mux.Handle("GET "+storage.DiskURLPrefix, disk.Handler())
	}

	// Auth (rate limited per client IP)
	mux.HandleFunc("POST /api/auth/register", authLimit(auth.Register))
	mux.HandleFunc("POST /api/auth/login", authLimit(auth.Login))

	// ============================================================================
	// PROTECTED ROUTES (/api/*)
	// ============================================================================

	// Profile
	mux.HandleFunc("GET /api/profile", middleware.RequireAuth(profile.Show))
	mux.HandleFunc("PATCH /api/profile", middleware.RequireAuth(profile.UpdateName))

	// Goals
	mux.HandleFunc("GET /api/goals", middleware.RequireAuth(goal.List))
	mux.HandleFunc("POST /api/goals", middleware.RequireAuth(goal.Create))
	mux.HandleFunc("GET /api/goals/{id}", middleware.RequireAuth(goal.Show))
	mux.HandleFunc("PATCH /api/goals/{id}", middleware.RequireAuth(goal.Update))
	mux.HandleFunc("POST /api/goals/{id}/complete", middleware.RequireAuth(goal.Complete))

	// Study files
	mux.HandleFunc("POST /api/files", middleware.RequireAuth(file.Upload))
	mux.HandleFunc("GET /api/files", middleware.RequireAuth(file.List))
	mux.HandleFunc("GET /api/files/{id}/url", middleware.RequireAuth(file.URL))
	mux.HandleFunc("PATCH /api/files/{id}", middleware.RequireAuth(file.Link))
	mux.HandleFunc("DELETE /api/files/{id}", middleware.RequireAuth(file.Delete))

	// Plans
	mux.HandleFunc("POST /api/goals/{id}/plans", middleware.RequireAuth(generateLimit(plan.Generate)))
	mux.HandleFunc("GET /api/goals/{id}/plan", middleware.RequireAuth(plan.Current))
	mux.HandleFunc("GET /api/goals/{id}/plans", middleware.RequireAuth(plan.List))

	mux.HandleFunc("GET /api/plans/{id}", middleware.RequireAuth(plan.Show))

	// Daily content
	mux.HandleFunc("GET /api/plans/{id}/days", middleware.RequireAuth(plan.Days))
	mux.HandleFunc("POST /api/plans/{id}/days", middleware.RequireAuth(generateLimit(plan.GenerateDay)))
	mux.HandleFunc("PATCH /api/days/{id}", middleware.RequireAuth(plan.ToggleDay))
	mux.HandleFunc("GET /api/plans/{id}/progress", middleware.RequireAuth(plan.Progress))

	// Dashboard
	mux.HandleFunc("GET /api/dashboard/today", middleware.RequireAuth(dashboard.Today))

	// Setup wizard
	mux.HandleFunc("POST /api/setup", middleware.RequireAuth(generateLimit(setup.Run)))

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.RequestID, // Request id first so every log line carries it
		middleware.RequestLogging,
		middleware.Recover, // Inside logging so a panic is logged as a 500
		middleware.SecurityHeaders,
		middleware.CORS(app.Cfg.CORSAllowedOrigins),
		middleware.AuthMiddleware(app.AuthService),
	)

	return handler
}
