package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"taskhub_backend/internal/domain"
)

const (
	creatorID      = int64(1)
	collaboratorID = int64(2)
	strangerID     = int64(3)
)

func sampleProject() *domain.Project {
	return &domain.Project{
		ID:              7,
		Name:            "Website relaunch",
		Description:     "Rebuild the marketing site",
		Client:          "Acme",
		DueDate:         time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		CreatorID:       creatorID,
		CollaboratorIDs: []int64{collaboratorID},
	}
}

func newProjectService() (*ProjectService, *mockProjectRepo, *mockTaskRepo, *mockUserRepo) {
	projects := &mockProjectRepo{}
	tasks := &mockTaskRepo{}
	users := &mockUserRepo{}
	return NewProjectService(projects, tasks, users), projects, tasks, users
}

func TestProjectCreateValidation(t *testing.T) {
	svc, projects, _, _ := newProjectService()

	_, err := svc.Create(context.Background(), creatorID, CreateProjectInput{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	projects.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProjectCreateDefaultsDueDate(t *testing.T) {
	svc, projects, _, _ := newProjectService()
	projects.On("Create", mock.Anything, mock.Anything).Return(nil)

	p, err := svc.Create(context.Background(), creatorID, CreateProjectInput{
		Name: "n", Description: "d", Client: "c",
	})
	require.NoError(t, err)
	assert.Equal(t, creatorID, p.CreatorID)
	assert.False(t, p.DueDate.IsZero())
}

func TestProjectGetDeniedForStranger(t *testing.T) {
	svc, projects, _, _ := newProjectService()
	projects.On("GetByID", mock.Anything, int64(7)).Return(sampleProject(), nil)

	_, err := svc.Get(context.Background(), strangerID, 7)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestProjectGetAllowedForCollaborator(t *testing.T) {
	svc, projects, tasks, _ := newProjectService()
	projects.On("GetByID", mock.Anything, int64(7)).Return(sampleProject(), nil)
	tasks.On("ListByProject", mock.Anything, int64(7)).Return([]*domain.Task{{ID: 1, ProjectID: 7}}, nil)
	projects.On("GetCollaborators", mock.Anything, int64(7)).
		Return([]domain.UserRef{{ID: collaboratorID, Name: "Bea"}}, nil)

	p, err := svc.Get(context.Background(), collaboratorID, 7)
	require.NoError(t, err)
	assert.Len(t, p.Tasks, 1)
	assert.Len(t, p.Collaborators, 1)
}

func TestProjectGetMissingIsNotFound(t *testing.T) {
	svc, projects, _, _ := newProjectService()
	projects.On("GetByID", mock.Anything, int64(99)).Return(nil, domain.ErrNotFound)

	// existence is checked before policy, so even a stranger sees 404
	_, err := svc.Get(context.Background(), strangerID, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectUpdatePartial(t *testing.T) {
	svc, projects, _, _ := newProjectService()
	orig := sampleProject()
	projects.On("GetByID", mock.Anything, int64(7)).Return(orig, nil)
	projects.On("Update", mock.Anything, mock.Anything).Return(nil)

	p, err := svc.Update(context.Background(), creatorID, 7, UpdateProjectInput{Name: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", p.Name)
	assert.Equal(t, "Rebuild the marketing site", p.Description)
	assert.Equal(t, "Acme", p.Client)
	assert.Equal(t, orig.DueDate, p.DueDate)
}

func TestProjectUpdateDeniedForCollaborator(t *testing.T) {
	svc, projects, _, _ := newProjectService()
	projects.On("GetByID", mock.Anything, int64(7)).Return(sampleProject(), nil)

	_, err := svc.Update(context.Background(), collaboratorID, 7, UpdateProjectInput{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	projects.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAddCollaboratorRejectsCreator(t *testing.T) {
	svc, projects, _, users := newProjectService()
	projects.On("GetByID", mock.Anything, int64(7)).Return(sampleProject(), nil)
	users.On("GetByEmail", mock.Anything, "admin@acme.test").
		Return(&domain.User{ID: creatorID, Email: "admin@acme.test"}, nil)

	err := svc.AddCollaborator(context.Background(), creatorID, 7, "admin@acme.test")
	assert.ErrorIs(t, err, domain.ErrValidation)
	projects.AssertNotCalled(t, "AddCollaborator", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddCollaboratorRejectsExistingMember(t *testing.T) {
	svc, projects, _, users := newProjectService()
	projects.On("GetByID", mock.Anything, int64(7)).Return(sampleProject(), nil)
	users.On("GetByEmail", mock.Anything, "bea@acme.test").
		Return(&domain.User{ID: collaboratorID, Email: "bea@acme.test"}, nil)

	err := svc.AddCollaborator(context.Background(), creatorID, 7, "bea@acme.test")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAddCollaboratorUnknownEmail(t *testing.T) {
	svc, projects, _, users := newProjectService()
	projects.On("GetByID", mock.Anything, int64(7)).Return(sampleProject(), nil)
	users.On("GetByEmail", mock.Anything, "ghost@acme.test").Return(nil, domain.ErrNotFound)

	err := svc.AddCollaborator(context.Background(), creatorID, 7, "ghost@acme.test")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddCollaboratorHappyPath(t *testing.T) {
	svc, projects, _, users := newProjectService()
	projects.On("GetByID", mock.Anything, int64(7)).Return(sampleProject(), nil)
	users.On("GetByEmail", mock.Anything, "new@acme.test").
		Return(&domain.User{ID: strangerID, Email: "new@acme.test"}, nil)
	projects.On("AddCollaborator", mock.Anything, int64(7), strangerID).Return(nil)

	require.NoError(t, svc.AddCollaborator(context.Background(), creatorID, 7, "new@acme.test"))
	projects.AssertExpectations(t)
}

func TestRemoveCollaboratorIsIdempotent(t *testing.T) {
	svc, projects, _, _ := newProjectService()
	projects.On("GetByID", mock.Anything, int64(7)).Return(sampleProject(), nil)
	projects.On("RemoveCollaborator", mock.Anything, int64(7), strangerID).Return(nil)

	// never a member, the removal still succeeds
	require.NoError(t, svc.RemoveCollaborator(context.Background(), creatorID, 7, strangerID))
}

func TestRemoveCollaboratorDeniedForCollaborator(t *testing.T) {
	svc, projects, _, _ := newProjectService()
	projects.On("GetByID", mock.Anything, int64(7)).Return(sampleProject(), nil)

	err := svc.RemoveCollaborator(context.Background(), collaboratorID, 7, collaboratorID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestProjectDeleteStoreError(t *testing.T) {
	svc, projects, _, _ := newProjectService()
	boom := errors.New("connection reset")
	projects.On("GetByID", mock.Anything, int64(7)).Return(sampleProject(), nil)
	projects.On("Delete", mock.Anything, int64(7)).Return(boom)

	err := svc.Delete(context.Background(), creatorID, 7)
	assert.ErrorIs(t, err, boom)
}
