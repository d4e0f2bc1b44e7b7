package repository

import (
	"context"
	"errors"

	"taskhub_backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = `id, name, description, priority, due_date, completed, project_id, completed_by, created_at, updated_at`

func scanTask(row pgx.Row) (*domain.Task, error) {
	var t domain.Task
	if err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Description,
		&t.Priority,
		&t.DueDate,
		&t.Completed,
		&t.ProjectID,
		&t.CompletedBy,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Create inserts the task and touches the owning project inside a single
// transaction, so the task and the project's task set can never diverge.
func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := tx.QueryRow(ctx,
		`INSERT INTO tasks (name, description, priority, due_date, project_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, completed, created_at, updated_at`,
		t.Name, t.Description, t.Priority, t.DueDate, t.ProjectID,
	).Scan(&t.ID, &t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE projects SET updated_at = now() WHERE id = $1`, t.ProjectID,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	return scanTask(r.db.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id))
}

// ListByProject returns the project's tasks with the completor reference
// resolved to a name.
func (r *TaskRepository) ListByProject(ctx context.Context, projectID int64) ([]*domain.Task, error) {
	rows, err := r.db.Query(ctx,
		`SELECT t.id, t.name, t.description, t.priority, t.due_date, t.completed,
		        t.project_id, t.completed_by, t.created_at, t.updated_at,
		        u.name
		 FROM tasks t
		 LEFT JOIN users u ON u.id = t.completed_by
		 WHERE t.project_id = $1
		 ORDER BY t.created_at`,
		projectID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Task
	for rows.Next() {
		var t domain.Task
		var completorName *string
		if err := rows.Scan(
			&t.ID, &t.Name, &t.Description, &t.Priority, &t.DueDate, &t.Completed,
			&t.ProjectID, &t.CompletedBy, &t.CreatedAt, &t.UpdatedAt,
			&completorName,
		); err != nil {
			return nil, err
		}
		if t.CompletedBy != nil && completorName != nil {
			t.Completor = &domain.UserRef{ID: *t.CompletedBy, Name: *completorName}
		}
		res = append(res, &t)
	}
	return res, rows.Err()
}

func (r *TaskRepository) Update(ctx context.Context, t *domain.Task) error {
	_, err := r.db.Exec(ctx,
		`UPDATE tasks
		 SET name = $1, description = $2, priority = $3, due_date = $4, updated_at = now()
		 WHERE id = $5`,
		t.Name, t.Description, t.Priority, t.DueDate, t.ID,
	)
	return err
}

// Delete removes the task and touches the owning project inside a single
// transaction, mirroring Create.
func (r *TaskRepository) Delete(ctx context.Context, id, projectID int64) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE projects SET updated_at = now() WHERE id = $1`, projectID,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// SetState flips nothing itself; it persists the completion flag and the
// actor who toggled it.
func (r *TaskRepository) SetState(ctx context.Context, id int64, completed bool, completedBy int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE tasks SET completed = $1, completed_by = $2, updated_at = now() WHERE id = $3`,
		completed, completedBy, id,
	)
	return err
}
