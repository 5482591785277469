package domain

import "context"

// ListUpdate carries the fields replaced by a full save of an existing list.
type ListUpdate struct {
	Title     string
	Tasks     []Task
	ShareMode ShareMode
	Watcher   []string
}

// TaskListRepository is the persistence boundary for task lists. Every method
// is a single store round trip; AddWatcher and RemoveWatcher use atomic set
// operators so concurrent membership changes cannot produce duplicates.
type TaskListRepository interface {
	FindByID(ctx context.Context, id string) (*TaskList, error)
	// FindVisible returns lists owned by or watched by the user.
	FindVisible(ctx context.Context, userID string) ([]TaskList, error)
	// FindJoinable returns shared lists the user does not own and does not
	// watch yet.
	FindJoinable(ctx context.Context, userID string) ([]TaskList, error)
	Insert(ctx context.Context, list *TaskList) (*TaskList, error)
	Update(ctx context.Context, id string, update ListUpdate) (*TaskList, error)
	ReplaceTasks(ctx context.Context, id string, tasks []Task) error
	AddWatcher(ctx context.Context, id, userID string) error
	RemoveWatcher(ctx context.Context, id, userID string) error
	Delete(ctx context.Context, id string) error
}

// UserResolver resolves user ids to display names for embedding in results.
// Implementations are best-effort; unknown ids resolve to themselves.
type UserResolver interface {
	DisplayNames(ctx context.Context, userIDs []string) (map[string]string, error)
}

// Notifier is the push channel boundary. Publish is fire-and-forget: no
// delivery guarantee, no acknowledgment.
type Notifier interface {
	Publish(room, event string, payload interface{})
}
