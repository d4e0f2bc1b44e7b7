package service

import (
	"context"
	"errors"
	"time"

	"taskhub_backend/internal/auth"
	"taskhub_backend/internal/domain"
)

// TaskService enforces the authorization policy around task CRUD and the
// completion toggle.
type TaskService struct {
	tasks    TaskRepository
	projects ProjectRepository
	users    UserRepository
}

func NewTaskService(tasks TaskRepository, projects ProjectRepository, users UserRepository) *TaskService {
	return &TaskService{tasks: tasks, projects: projects, users: users}
}

type CreateTaskInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Priority    domain.Priority `json:"priority"`
	DueDate     time.Time       `json:"due_date"`
	ProjectID   int64           `json:"project"`
}

func (s *TaskService) Create(ctx context.Context, actorID int64, in CreateTaskInput) (*domain.Task, error) {
	p, err := s.loadProject(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}
	if !auth.CanCreateTask(actorID, p) {
		return nil, domain.Unauthorized("you cannot add tasks to this project")
	}

	if in.Name == "" || in.Description == "" {
		return nil, domain.Invalid("name and description are required")
	}
	if !in.Priority.Valid() {
		return nil, domain.Invalid("priority must be high, medium or low")
	}

	due := in.DueDate
	if due.IsZero() {
		due = time.Now()
	}

	t := &domain.Task{
		Name:        in.Name,
		Description: in.Description,
		Priority:    in.Priority,
		DueDate:     due,
		ProjectID:   in.ProjectID,
	}
	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Get returns the task with its project reference resolved. Read access is
// restricted to the project creator; collaborators are denied here even
// though they can read the project itself.
func (s *TaskService) Get(ctx context.Context, actorID, id int64) (*domain.Task, error) {
	t, p, err := s.loadTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanWriteProject(actorID, p) {
		return nil, domain.Unauthorized("you cannot view this task")
	}

	t.ProjectRef = p
	return t, nil
}

type UpdateTaskInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Priority    domain.Priority `json:"priority"`
	DueDate     time.Time       `json:"due_date"`
}

// Update applies partial semantics: empty fields mean "no change".
func (s *TaskService) Update(ctx context.Context, actorID, id int64, in UpdateTaskInput) (*domain.Task, error) {
	t, p, err := s.loadTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanEditTask(actorID, p) {
		return nil, domain.Unauthorized("you cannot update this task")
	}

	if in.Name != "" {
		t.Name = in.Name
	}
	if in.Description != "" {
		t.Description = in.Description
	}
	if in.Priority != "" {
		if !in.Priority.Valid() {
			return nil, domain.Invalid("priority must be high, medium or low")
		}
		t.Priority = in.Priority
	}
	if !in.DueDate.IsZero() {
		t.DueDate = in.DueDate
	}

	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, actorID, id int64) error {
	t, p, err := s.loadTask(ctx, id)
	if err != nil {
		return err
	}
	if !auth.CanDeleteTask(actorID, p) {
		return domain.Unauthorized("you cannot delete this task")
	}
	return s.tasks.Delete(ctx, t.ID, t.ProjectID)
}

// ToggleState flips the completion flag and stamps the actor as the
// completor in both directions: un-completing also records who did it.
func (s *TaskService) ToggleState(ctx context.Context, actorID, id int64) (*domain.Task, error) {
	t, p, err := s.loadTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanToggleTask(actorID, p) {
		return nil, domain.Unauthorized("you cannot change the state of this task")
	}

	t.Completed = !t.Completed
	t.CompletedBy = &actorID
	if err := s.tasks.SetState(ctx, t.ID, t.Completed, actorID); err != nil {
		return nil, err
	}

	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	ref := actor.Ref()
	t.Completor = &ref
	t.ProjectRef = p
	return t, nil
}

func (s *TaskService) loadProject(ctx context.Context, id int64) (*domain.Project, error) {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("project not found")
		}
		return nil, err
	}
	return p, nil
}

// loadTask fetches the task and its owning project (needed for every policy
// decision).
func (s *TaskService) loadTask(ctx context.Context, id int64) (*domain.Task, *domain.Project, error) {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.NotFound("task not found")
		}
		return nil, nil, err
	}

	p, err := s.loadProject(ctx, t.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	return t, p, nil
}
