package service

import (
	"context"
	"fmt"

	"github.com/gehrmanng/taskplanner/internal/domain"
	"github.com/gehrmanng/taskplanner/internal/logger"
)

// EventTasksUpdated is published to a list's subscribers after saveTasks.
const EventTasksUpdated = "tasks.updated"

// TasksUpdatedPayload is the broadcast body for EventTasksUpdated.
type TasksUpdatedPayload struct {
	TaskListID string        `json:"taskListId"`
	Tasks      []domain.Task `json:"tasks"`
}

type TaskListService interface {
	List(ctx context.Context, userID string) ([]domain.TaskList, error)
	ListShared(ctx context.Context, userID string) ([]domain.TaskList, error)
	Get(ctx context.Context, userID, id string) (*domain.TaskList, error)
	Save(ctx context.Context, userID string, list *domain.TaskList) (*domain.TaskList, error)
	SaveTasks(ctx context.Context, userID, id string, tasks []domain.Task) error
	Remove(ctx context.Context, userID, id string) error
	AddWatcher(ctx context.Context, userID, id string) error
	RemoveWatcher(ctx context.Context, userID, id string) error
}

type taskListService struct {
	repo     domain.TaskListRepository
	resolver domain.UserResolver
	notifier domain.Notifier
}

func NewTaskListService(repo domain.TaskListRepository, resolver domain.UserResolver, notifier domain.Notifier) TaskListService {
	return &taskListService{repo: repo, resolver: resolver, notifier: notifier}
}

// List returns every list the user owns or watches. Watchers keep visibility
// even when the share mode changed after they joined.
func (s *taskListService) List(ctx context.Context, userID string) ([]domain.TaskList, error) {
	return s.repo.FindVisible(ctx, userID)
}

// ListShared returns lists available to be joined: shared lists the user
// neither owns nor watches yet, with owner display names embedded.
func (s *taskListService) ListShared(ctx context.Context, userID string) ([]domain.TaskList, error) {
	lists, err := s.repo.FindJoinable(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(lists) == 0 {
		return lists, nil
	}

	ownerIDs := make([]string, 0, len(lists))
	seen := make(map[string]bool, len(lists))
	for _, l := range lists {
		if !seen[l.Owner] {
			seen[l.Owner] = true
			ownerIDs = append(ownerIDs, l.Owner)
		}
	}

	names, err := s.resolver.DisplayNames(ctx, ownerIDs)
	if err != nil {
		// Owner names are display sugar; the listing itself must not fail.
		logger.WarnLog(ctx, "failed to resolve owner names: %v", err)
		names = map[string]string{}
	}
	for i := range lists {
		if name, ok := names[lists[i].Owner]; ok {
			lists[i].OwnerName = name
		} else {
			lists[i].OwnerName = lists[i].Owner
		}
	}
	return lists, nil
}

// Get returns a single list after a visibility check.
func (s *taskListService) Get(ctx context.Context, userID, id string) (*domain.TaskList, error) {
	list, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !list.CanView(userID) {
		return nil, domain.ErrForbidden
	}
	return list, nil
}

// Save persists a full list. Without an id this is a creation and the owner
// is forced to the caller regardless of the payload. With an id the caller
// must be allowed to mutate the list. The watcher set is taken from the
// payload only while the list is shared; saving with share mode none always
// clears it.
func (s *taskListService) Save(ctx context.Context, userID string, list *domain.TaskList) (*domain.TaskList, error) {
	mode, err := normalizeShareMode(list.ShareMode)
	if err != nil {
		return nil, err
	}
	list.ShareMode = mode
	if !mode.Shared() {
		list.Watcher = []string{}
	}

	if list.ID.IsZero() {
		list.Owner = userID
		return s.repo.Insert(ctx, list)
	}

	existing, err := s.repo.FindByID(ctx, list.ID.Hex())
	if err != nil {
		return nil, err
	}
	if !existing.CanMutate(userID) {
		return nil, domain.ErrForbidden
	}

	return s.repo.Update(ctx, list.ID.Hex(), domain.ListUpdate{
		Title:     list.Title,
		Tasks:     list.Tasks,
		ShareMode: mode,
		Watcher:   list.Watcher,
	})
}

// SaveTasks replaces the tasks of a list wholesale and notifies the list's
// subscribers. The broadcast is fire-and-forget and happens exactly once per
// successful save.
func (s *taskListService) SaveTasks(ctx context.Context, userID, id string, tasks []domain.Task) error {
	list, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !list.CanMutate(userID) {
		return domain.ErrForbidden
	}

	if err := s.repo.ReplaceTasks(ctx, id, tasks); err != nil {
		return err
	}

	s.notifier.Publish(id, EventTasksUpdated, TasksUpdatedPayload{
		TaskListID: id,
		Tasks:      tasks,
	})
	return nil
}

// Remove deletes a list. Only the owner may do this; write-mode watchers can
// edit tasks but not destroy the list.
func (s *taskListService) Remove(ctx context.Context, userID, id string) error {
	list, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if list.Owner != userID {
		return domain.ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}

// AddWatcher joins the caller to a shared list. Owners are already members
// in every sense, so the call is a no-op for them. Joins are idempotent.
func (s *taskListService) AddWatcher(ctx context.Context, userID, id string) error {
	list, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if list.Owner == userID {
		return nil
	}
	if !list.ShareMode.Shared() {
		return domain.ErrNotShared
	}
	return s.repo.AddWatcher(ctx, id, userID)
}

// RemoveWatcher leaves a list. Succeeds unconditionally, even when the caller
// was never a watcher or the list no longer exists.
func (s *taskListService) RemoveWatcher(ctx context.Context, userID, id string) error {
	return s.repo.RemoveWatcher(ctx, id, userID)
}

func normalizeShareMode(mode domain.ShareMode) (domain.ShareMode, error) {
	if mode == "" {
		return domain.ShareModeNone, nil
	}
	if !mode.Valid() {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidShareMode, mode)
	}
	return mode, nil
}
