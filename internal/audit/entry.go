package audit

import "context"

const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionClone  = "clone"
)

// Entry describes one administrative change.
type Entry struct {
	ActorEmail   string         `json:"actor_email"`
	Action       string         `json:"action"`
	ResourceType string         `json:"resource_type"`
	ResourceID   *int64         `json:"resource_id,omitempty"`
	Details      map[string]any `json:"details,omitempty"`
}

// Recorder accepts entries for persistence. Implementations may be asynchronous.
type Recorder interface {
	Record(ctx context.Context, e Entry) error
}
