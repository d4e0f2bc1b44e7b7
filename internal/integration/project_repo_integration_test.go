package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"taskhub_backend/internal/domain"
	"taskhub_backend/internal/repository"
)

func applyMigrations(t *testing.T, db *pgxpool.Pool) {
	t.Helper()
	migDir := filepath.Join("..", "..", "internal", "migrations")
	files, err := os.ReadDir(migDir)
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	for _, f := range files {
		b, err := os.ReadFile(filepath.Join(migDir, f.Name()))
		if err != nil {
			t.Fatalf("read file: %v", err)
		}
		if _, err := db.Exec(context.Background(), string(b)); err != nil {
			t.Fatalf("apply migration %s: %v", f.Name(), err)
		}
	}
}

func createUser(t *testing.T, users *repository.UserRepository, name string) *domain.User {
	t.Helper()
	u := &domain.User{
		Name:     name,
		Email:    fmt.Sprintf("%s-%d@integration.test", name, time.Now().UnixNano()),
		Password: "x",
	}
	if err := users.Create(context.Background(), u); err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	u.Confirmed = true
	if err := users.Update(context.Background(), u); err != nil {
		t.Fatalf("confirm user %s: %v", name, err)
	}
	return u
}

func TestProjectRepository_CollaboratorsAndTasks(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	defer db.Close()

	applyMigrations(t, db)

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	projects := repository.NewProjectRepository(db)
	tasks := repository.NewTaskRepository(db)

	creator := createUser(t, users, "creator")
	collab := createUser(t, users, "collab")

	p := &domain.Project{
		Name:        "integration project",
		Description: "exercises the store",
		Client:      "acme",
		DueDate:     time.Now().Add(24 * time.Hour),
		CreatorID:   creator.ID,
	}
	if err := projects.Create(ctx, p); err != nil {
		t.Fatalf("create project: %v", err)
	}

	if err := projects.AddCollaborator(ctx, p.ID, collab.ID); err != nil {
		t.Fatalf("add collaborator: %v", err)
	}
	// adding twice must be a no-op
	if err := projects.AddCollaborator(ctx, p.ID, collab.ID); err != nil {
		t.Fatalf("re-add collaborator: %v", err)
	}

	loaded, err := projects.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("get project: %v", err)
	}
	if len(loaded.CollaboratorIDs) != 1 || loaded.CollaboratorIDs[0] != collab.ID {
		t.Fatalf("collaborator ids = %v; want [%d]", loaded.CollaboratorIDs, collab.ID)
	}

	// the collaborator's listing includes projects shared with them
	list, err := projects.ListForUser(ctx, collab.ID)
	if err != nil {
		t.Fatalf("list for collaborator: %v", err)
	}
	found := false
	for _, lp := range list {
		if lp.ID == p.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("shared project %d missing from collaborator's listing", p.ID)
	}

	task := &domain.Task{
		Name:        "first task",
		Description: "stored through the repo",
		Priority:    domain.PriorityHigh,
		DueDate:     time.Now().Add(48 * time.Hour),
		ProjectID:   p.ID,
	}
	if err := tasks.Create(ctx, task); err != nil {
		t.Fatalf("create task: %v", err)
	}

	// task insert also touches the project's updated_at
	touched, err := projects.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("reload project: %v", err)
	}
	if !touched.UpdatedAt.After(loaded.UpdatedAt) {
		t.Fatalf("project updated_at not touched by task insert: %v <= %v", touched.UpdatedAt, loaded.UpdatedAt)
	}

	if err := tasks.SetState(ctx, task.ID, true, collab.ID); err != nil {
		t.Fatalf("set state: %v", err)
	}

	listed, err := tasks.ListByProject(ctx, p.ID)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("tasks = %d; want 1", len(listed))
	}
	if !listed[0].Completed || listed[0].Completor == nil || listed[0].Completor.ID != collab.ID {
		t.Fatalf("completor not resolved: %+v", listed[0])
	}

	if err := projects.RemoveCollaborator(ctx, p.ID, collab.ID); err != nil {
		t.Fatalf("remove collaborator: %v", err)
	}
	// removing a non-member stays silent
	if err := projects.RemoveCollaborator(ctx, p.ID, collab.ID); err != nil {
		t.Fatalf("re-remove collaborator: %v", err)
	}

	// deleting the project cascades to its tasks
	if err := projects.Delete(ctx, p.ID); err != nil {
		t.Fatalf("delete project: %v", err)
	}
	if _, err := tasks.GetByID(ctx, task.ID); err == nil {
		t.Fatalf("task %d survived project deletion", task.ID)
	}
}
