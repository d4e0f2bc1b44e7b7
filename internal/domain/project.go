package domain

import "time"

type Project struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Client      string    `db:"client" json:"client"`
	DueDate     time.Time `db:"due_date" json:"due_date"`
	CreatorID   int64     `db:"creator_id" json:"creator"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`

	// CollaboratorIDs is the membership set used by the authorization
	// policy. Always loaded alongside the row.
	CollaboratorIDs []int64 `json:"-"`

	// Collaborators and Tasks are filled only by the detail view.
	Collaborators []UserRef `json:"collaborators,omitempty"`
	Tasks         []*Task   `json:"tasks,omitempty"`
}
