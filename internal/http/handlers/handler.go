package handlers

import (
	"errors"
	"net/http"

	"taskhub_backend/internal/domain"
	"taskhub_backend/internal/logger"
	"taskhub_backend/internal/repository"
	"taskhub_backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	DB       *pgxpool.Pool
	Users    *service.UserService
	Projects *service.ProjectService
	Tasks    *service.TaskService
}

func NewHandler(db *pgxpool.Pool, mailer service.Mailer) *Handler {
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	return &Handler{
		DB:       db,
		Users:    service.NewUserService(userRepo, mailer),
		Projects: service.NewProjectService(projectRepo, taskRepo, userRepo),
		Tasks:    service.NewTaskService(taskRepo, projectRepo, userRepo),
	}
}

// actorID extracts the authenticated user id stored by the JWT middleware.
func actorID(c *gin.Context) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	uid, ok := uidVal.(int64)
	return uid, ok
}

// respondErr maps service error kinds to statuses. Every error body is
// {"msg": string}.
func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"msg": err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"msg": err.Error()})
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
	default:
		logger.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal server error"})
	}
}
