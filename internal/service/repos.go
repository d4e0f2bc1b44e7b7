package service

import (
	"context"
	"time"

	"taskhub_backend/internal/domain"
)

// Repository contracts consumed by the services. The pgx implementations
// live in internal/repository; tests substitute mocks.

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByToken(ctx context.Context, token string) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	DeleteStaleUnconfirmed(ctx context.Context, olderThan time.Duration) (int64, error)
}

type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	ListForUser(ctx context.Context, userID int64) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id int64) error
	GetCollaborators(ctx context.Context, projectID int64) ([]domain.UserRef, error)
	AddCollaborator(ctx context.Context, projectID, userID int64) error
	RemoveCollaborator(ctx context.Context, projectID, userID int64) error
}

type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID int64) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id, projectID int64) error
	SetState(ctx context.Context, id int64, completed bool, completedBy int64) error
}

// Mailer delivers account emails. Fire-and-forget: the services never wait
// on delivery.
type Mailer interface {
	SendConfirmation(email, name, token string)
	SendPasswordReset(email, name, token string)
}
