package http

import (
	"taskhub_backend/internal/config"
	"taskhub_backend/internal/http/handlers"
	"taskhub_backend/internal/http/middleware"
	"taskhub_backend/internal/service"
	"taskhub_backend/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegisterRoutes wires the REST surface, health checks and the websocket
// notifier endpoint. Returns the hub so callers can observe it.
func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, mailer service.Mailer, cfg *config.Config, version string) *ws.Hub {
	h := handlers.NewHandler(db, mailer)
	healthHandler := handlers.NewHealthHandler(db, version)

	r.Use(middleware.Metrics())

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	api := r.Group("/api")
	api.Use(middleware.RateLimit(cfg.APIRateLimit, cfg.APIRateWindow))

	authRL := middleware.RateLimit(cfg.AuthRateLimit, cfg.AuthRateWindow)

	// Users: registration, session issuance, confirmation and reset flows
	users := api.Group("/users")
	{
		users.POST("", authRL, h.Register)
		users.POST("/login", authRL, h.Login)
		users.GET("/confirm/:token", h.Confirm)
		users.POST("/forgot-password", authRL, h.ForgotPassword)
		users.GET("/forgot-password/:token", h.CheckResetToken)
		users.POST("/forgot-password/:token", authRL, h.ResetPassword)
		users.GET("/profile", middleware.JWT(), h.Profile)
	}

	// Per-user cap on mutations, stacked on the per-IP limiter
	userRL := middleware.UserRateLimit(cfg.APIRateLimit, cfg.APIRateWindow)

	// Projects: CRUD plus collaborator membership
	projects := api.Group("/projects")
	projects.Use(middleware.JWT())
	{
		projects.GET("", h.ListProjects)
		projects.POST("", userRL, h.CreateProject)
		projects.GET("/:id", h.GetProject)
		projects.PUT("/:id", h.UpdateProject)
		projects.DELETE("/:id", h.DeleteProject)
		projects.POST("/collaborators", h.FindCollaborator)
		projects.POST("/collaborators/:id", h.AddCollaborator)
		projects.POST("/remove-collaborator/:id", h.RemoveCollaborator)
	}

	// Tasks: CRUD plus the completion toggle
	tasks := api.Group("/tasks")
	tasks.Use(middleware.JWT())
	{
		tasks.POST("", userRL, h.CreateTask)
		tasks.GET("/:id", h.GetTask)
		tasks.PUT("/:id", h.UpdateTask)
		tasks.DELETE("/:id", h.DeleteTask)
		tasks.POST("/state/:id", h.ToggleTaskState)
	}

	// Realtime notifier
	hub := ws.NewHub()
	r.GET("/ws", h.WS(hub))

	return hub
}
