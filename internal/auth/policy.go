// Package auth holds the authorization policy for projects and tasks:
// pure predicates over an actor id and a loaded project. All persistence and
// existence checks happen before these are consulted.
package auth

import "taskhub_backend/internal/domain"

// IsCollaborator reports whether the actor appears in the project's
// collaborator set. The check is an explicit per-id membership test.
func IsCollaborator(actorID int64, p *domain.Project) bool {
	for _, id := range p.CollaboratorIDs {
		if id == actorID {
			return true
		}
	}
	return false
}

// CanReadProject: creator or collaborator.
func CanReadProject(actorID int64, p *domain.Project) bool {
	return p.CreatorID == actorID || IsCollaborator(actorID, p)
}

// CanWriteProject: field edits, deletion and collaborator management are
// creator-only.
func CanWriteProject(actorID int64, p *domain.Project) bool {
	return p.CreatorID == actorID
}

func CanCreateTask(actorID int64, p *domain.Project) bool {
	return p.CreatorID == actorID
}

func CanEditTask(actorID int64, p *domain.Project) bool {
	return p.CreatorID == actorID
}

func CanDeleteTask(actorID int64, p *domain.Project) bool {
	return p.CreatorID == actorID
}

// CanToggleTask: creator or any collaborator may flip a task's completion
// state.
func CanToggleTask(actorID int64, p *domain.Project) bool {
	return p.CreatorID == actorID || IsCollaborator(actorID, p)
}
