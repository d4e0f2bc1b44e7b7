package ws

import "encoding/json"

// Envelope is the wire format in both directions. Clients join a project's
// channel with an open-project message, then emit task mutation events that
// the hub relays to the channel's other members.
type Envelope struct {
	Type    string          `json:"type"`
	Project int64           `json:"project,omitempty"`
	Task    json.RawMessage `json:"task,omitempty"`
}

const (
	// client → server channel membership
	MsgOpenProject  = "open-project"
	MsgCloseProject = "close-project"

	// task mutation events, relayed verbatim to other channel members
	EventTaskCreated      = "task-created"
	EventTaskDeleted      = "task-deleted"
	EventTaskEdited       = "task-edited"
	EventTaskStateChanged = "task-state-changed"
)

// projectIDFrom resolves the target channel. The envelope's project field
// wins; otherwise the task payload's project reference is used, which may be
// a bare id or a resolved object depending on which endpoint produced it.
func projectIDFrom(e *Envelope) int64 {
	if e.Project != 0 {
		return e.Project
	}
	if len(e.Task) == 0 {
		return 0
	}

	var t struct {
		Project json.RawMessage `json:"project"`
	}
	if err := json.Unmarshal(e.Task, &t); err != nil || len(t.Project) == 0 {
		return 0
	}

	var id int64
	if err := json.Unmarshal(t.Project, &id); err == nil {
		return id
	}

	var obj struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(t.Project, &obj); err == nil {
		return obj.ID
	}
	return 0
}
