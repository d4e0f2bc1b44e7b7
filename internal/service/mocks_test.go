package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"taskhub_backend/internal/domain"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) GetByToken(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) DeleteStaleUnconfirmed(ctx context.Context, olderThan time.Duration) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}

type mockProjectRepo struct{ mock.Mock }

func (m *mockProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProjectRepo) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*domain.Project)
	return p, args.Error(1)
}

func (m *mockProjectRepo) ListForUser(ctx context.Context, userID int64) ([]*domain.Project, error) {
	args := m.Called(ctx, userID)
	ps, _ := args.Get(0).([]*domain.Project)
	return ps, args.Error(1)
}

func (m *mockProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProjectRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockProjectRepo) GetCollaborators(ctx context.Context, projectID int64) ([]domain.UserRef, error) {
	args := m.Called(ctx, projectID)
	refs, _ := args.Get(0).([]domain.UserRef)
	return refs, args.Error(1)
}

func (m *mockProjectRepo) AddCollaborator(ctx context.Context, projectID, userID int64) error {
	return m.Called(ctx, projectID, userID).Error(0)
}

func (m *mockProjectRepo) RemoveCollaborator(ctx context.Context, projectID, userID int64) error {
	return m.Called(ctx, projectID, userID).Error(0)
}

type mockTaskRepo struct{ mock.Mock }

func (m *mockTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	return m.Called(ctx, t).Error(0)
}

func (m *mockTaskRepo) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*domain.Task)
	return t, args.Error(1)
}

func (m *mockTaskRepo) ListByProject(ctx context.Context, projectID int64) ([]*domain.Task, error) {
	args := m.Called(ctx, projectID)
	ts, _ := args.Get(0).([]*domain.Task)
	return ts, args.Error(1)
}

func (m *mockTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	return m.Called(ctx, t).Error(0)
}

func (m *mockTaskRepo) Delete(ctx context.Context, id, projectID int64) error {
	return m.Called(ctx, id, projectID).Error(0)
}

func (m *mockTaskRepo) SetState(ctx context.Context, id int64, completed bool, completedBy int64) error {
	return m.Called(ctx, id, completed, completedBy).Error(0)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendConfirmation(email, name, token string) {
	m.Called(email, name, token)
}

func (m *mockMailer) SendPasswordReset(email, name, token string) {
	m.Called(email, name, token)
}
