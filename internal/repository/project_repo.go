package repository

import (
	"context"
	"errors"

	"taskhub_backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProjectRepository struct {
	db *pgxpool.Pool
}

func NewProjectRepository(db *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `id, name, description, client, due_date, creator_id, created_at, updated_at`

func scanProject(row pgx.Row) (*domain.Project, error) {
	var p domain.Project
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Client,
		&p.DueDate,
		&p.CreatorID,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO projects (name, description, client, due_date, creator_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		p.Name, p.Description, p.Client, p.DueDate, p.CreatorID,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// GetByID loads the project row together with its collaborator id set, so
// callers can run policy checks without a second round-trip.
func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	p, err := scanProject(r.db.QueryRow(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT user_id FROM project_collaborators WHERE project_id = $1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var uid int64
		if err := rows.Scan(&uid); err != nil {
			return nil, err
		}
		p.CollaboratorIDs = append(p.CollaboratorIDs, uid)
	}
	return p, rows.Err()
}

// ListForUser returns every project the user created or collaborates on,
// without tasks (summary view).
func (r *ProjectRepository) ListForUser(ctx context.Context, userID int64) ([]*domain.Project, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+projectColumns+`
		 FROM projects
		 WHERE creator_id = $1
		    OR id IN (SELECT project_id FROM project_collaborators WHERE user_id = $1)
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, rows.Err()
}

func (r *ProjectRepository) Update(ctx context.Context, p *domain.Project) error {
	_, err := r.db.Exec(ctx,
		`UPDATE projects
		 SET name = $1, description = $2, client = $3, due_date = $4, updated_at = now()
		 WHERE id = $5`,
		p.Name, p.Description, p.Client, p.DueDate, p.ID,
	)
	return err
}

// Delete removes the project; tasks and collaborator rows go with it via
// ON DELETE CASCADE.
func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	return err
}

// GetCollaborators resolves the collaborator references to their public
// projection.
func (r *ProjectRepository) GetCollaborators(ctx context.Context, projectID int64) ([]domain.UserRef, error) {
	rows, err := r.db.Query(ctx,
		`SELECT u.id, u.name, u.email
		 FROM project_collaborators pc
		 JOIN users u ON u.id = pc.user_id
		 WHERE pc.project_id = $1
		 ORDER BY pc.added_at`,
		projectID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.UserRef
	for rows.Next() {
		var ref domain.UserRef
		if err := rows.Scan(&ref.ID, &ref.Name, &ref.Email); err != nil {
			return nil, err
		}
		res = append(res, ref)
	}
	return res, rows.Err()
}

func (r *ProjectRepository) AddCollaborator(ctx context.Context, projectID, userID int64) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO project_collaborators (project_id, user_id) VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`,
		projectID, userID,
	)
	return err
}

// RemoveCollaborator is a no-op when the user is not a member.
func (r *ProjectRepository) RemoveCollaborator(ctx context.Context, projectID, userID int64) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM project_collaborators WHERE project_id = $1 AND user_id = $2`,
		projectID, userID,
	)
	return err
}
