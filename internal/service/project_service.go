package service

import (
	"context"
	"errors"
	"time"

	"taskhub_backend/internal/auth"
	"taskhub_backend/internal/domain"
)

// ProjectService enforces the authorization policy around project CRUD and
// collaborator membership.
type ProjectService struct {
	projects ProjectRepository
	tasks    TaskRepository
	users    UserRepository
}

func NewProjectService(projects ProjectRepository, tasks TaskRepository, users UserRepository) *ProjectService {
	return &ProjectService{projects: projects, tasks: tasks, users: users}
}

// List returns the summary view (no tasks) of every project the actor
// created or collaborates on.
func (s *ProjectService) List(ctx context.Context, actorID int64) ([]*domain.Project, error) {
	return s.projects.ListForUser(ctx, actorID)
}

type CreateProjectInput struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Client      string    `json:"client"`
	DueDate     time.Time `json:"due_date"`
}

func (s *ProjectService) Create(ctx context.Context, actorID int64, in CreateProjectInput) (*domain.Project, error) {
	if in.Name == "" || in.Description == "" || in.Client == "" {
		return nil, domain.Invalid("name, description and client are required")
	}

	due := in.DueDate
	if due.IsZero() {
		due = time.Now()
	}

	p := &domain.Project{
		Name:        in.Name,
		Description: in.Description,
		Client:      in.Client,
		DueDate:     due,
		CreatorID:   actorID,
	}
	if err := s.projects.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get returns the detail view: tasks with completor references resolved and
// collaborators projected to {id, name, email}.
func (s *ProjectService) Get(ctx context.Context, actorID, id int64) (*domain.Project, error) {
	p, err := s.getAuthorized(ctx, actorID, id, auth.CanReadProject)
	if err != nil {
		return nil, err
	}

	tasks, err := s.tasks.ListByProject(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Tasks = tasks

	collaborators, err := s.projects.GetCollaborators(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Collaborators = collaborators

	return p, nil
}

type UpdateProjectInput struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Client      string    `json:"client"`
	DueDate     time.Time `json:"due_date"`
}

// Update applies partial semantics: empty fields mean "no change".
func (s *ProjectService) Update(ctx context.Context, actorID, id int64, in UpdateProjectInput) (*domain.Project, error) {
	p, err := s.getAuthorized(ctx, actorID, id, auth.CanWriteProject)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		p.Name = in.Name
	}
	if in.Description != "" {
		p.Description = in.Description
	}
	if in.Client != "" {
		p.Client = in.Client
	}
	if !in.DueDate.IsZero() {
		p.DueDate = in.DueDate
	}

	if err := s.projects.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes the project; its tasks are cascade-deleted by the store.
func (s *ProjectService) Delete(ctx context.Context, actorID, id int64) error {
	if _, err := s.getAuthorized(ctx, actorID, id, auth.CanWriteProject); err != nil {
		return err
	}
	return s.projects.Delete(ctx, id)
}

// FindCollaborator looks a user up by email, projected to public fields.
func (s *ProjectService) FindCollaborator(ctx context.Context, email string) (domain.UserRef, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.UserRef{}, domain.NotFound("user not found")
		}
		return domain.UserRef{}, err
	}
	return u.Ref(), nil
}

// AddCollaborator grants a user read and toggle access to the project.
// Creator-only; the creator itself and existing members are rejected.
func (s *ProjectService) AddCollaborator(ctx context.Context, actorID, projectID int64, email string) error {
	p, err := s.getAuthorized(ctx, actorID, projectID, auth.CanWriteProject)
	if err != nil {
		return err
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NotFound("user not found")
		}
		return err
	}

	if u.ID == p.CreatorID {
		return domain.Invalid("user is already the project administrator")
	}
	if auth.IsCollaborator(u.ID, p) {
		return domain.Invalid("user is already a collaborator")
	}

	return s.projects.AddCollaborator(ctx, projectID, u.ID)
}

// RemoveCollaborator revokes membership. Removing a non-member is a no-op.
func (s *ProjectService) RemoveCollaborator(ctx context.Context, actorID, projectID, collaboratorID int64) error {
	if _, err := s.getAuthorized(ctx, actorID, projectID, auth.CanWriteProject); err != nil {
		return err
	}
	return s.projects.RemoveCollaborator(ctx, projectID, collaboratorID)
}

// getAuthorized loads the project and runs the given policy predicate:
// absent projects surface as not-found before any authorization result.
func (s *ProjectService) getAuthorized(ctx context.Context, actorID, id int64, allowed func(int64, *domain.Project) bool) (*domain.Project, error) {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("project not found")
		}
		return nil, err
	}
	if !allowed(actorID, p) {
		return nil, domain.Unauthorized("action not allowed")
	}
	return p, nil
}
