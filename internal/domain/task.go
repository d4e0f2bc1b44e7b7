package domain

import "time"

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

type Task struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Priority    Priority  `db:"priority" json:"priority"`
	DueDate     time.Time `db:"due_date" json:"due_date"`
	Completed   bool      `db:"completed" json:"completed"`
	ProjectID   int64     `db:"project_id" json:"project"`
	CompletedBy *int64    `db:"completed_by" json:"-"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`

	// Completor is the resolved reference to the user who last toggled the
	// completion state. Filled by the detail and toggle views.
	Completor *UserRef `json:"completed_by,omitempty"`

	// ProjectRef is filled when the task is returned standalone.
	ProjectRef *Project `json:"project_detail,omitempty"`
}
