package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ShareMode controls whether non-owners may join a task list as watchers.
type ShareMode string

const (
	ShareModeNone  ShareMode = "none"
	ShareModeRead  ShareMode = "read"
	ShareModeWrite ShareMode = "write"
)

// Valid reports whether m is one of the three known modes.
func (m ShareMode) Valid() bool {
	switch m {
	case ShareModeNone, ShareModeRead, ShareModeWrite:
		return true
	}
	return false
}

// Shared reports whether watchers are permitted at all.
func (m ShareMode) Shared() bool {
	return m == ShareModeRead || m == ShareModeWrite
}

// Task is embedded in a TaskList; it has no identity in the store beyond
// the caller-assigned UUID.
type Task struct {
	UUID    string     `bson:"uuid" json:"uuid"`
	Title   string     `bson:"title" json:"title"`
	DueDate *time.Time `bson:"dueDate" json:"dueDate"`
	Done    bool       `bson:"done" json:"done"`
}

// TaskList is the single persistent entity of the service.
type TaskList struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Owner     string             `bson:"owner" json:"owner"`
	OwnerName string             `bson:"-" json:"ownerName,omitempty"`
	Title     string             `bson:"title" json:"title"`
	Tasks     []Task             `bson:"tasks" json:"tasks"`
	ShareMode ShareMode          `bson:"shareMode" json:"shareMode"`
	Watcher   []string           `bson:"watcher" json:"watcher"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// IsWatcher reports whether userID is a member of the watcher set.
func (l *TaskList) IsWatcher(userID string) bool {
	for _, w := range l.Watcher {
		if w == userID {
			return true
		}
	}
	return false
}

// CanView reports whether userID may read the list: the owner always may,
// watchers keep visibility regardless of the current share mode.
func (l *TaskList) CanView(userID string) bool {
	return l.Owner == userID || l.IsWatcher(userID)
}

// CanMutate reports whether userID may change the list. Owners always may;
// watchers only when the list is shared in write mode. Read-mode watchers
// cannot write.
func (l *TaskList) CanMutate(userID string) bool {
	if l.Owner == userID {
		return true
	}
	return l.ShareMode == ShareModeWrite && l.IsWatcher(userID)
}
