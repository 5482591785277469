// Package repository provides MongoDB-backed task list persistence.
package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gehrmanng/taskplanner/internal/domain"
	"github.com/gehrmanng/taskplanner/internal/logger"
)

type taskListRepository struct {
	collection *mongo.Collection
}

// NewTaskListRepository creates a task list repository backed by the
// "task_lists" collection. Indexes on owner and watcher keep the two list
// queries from scanning the collection.
func NewTaskListRepository(db *mongo.Database) domain.TaskListRepository {
	collection := db.Collection("task_lists")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner", Value: 1}}},
		{Keys: bson.D{{Key: "watcher", Value: 1}}},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logger.WarnLog(ctx, "failed to create task_lists indexes: %v", err)
	}

	return &taskListRepository{collection: collection}
}

func (r *taskListRepository) FindByID(ctx context.Context, id string) (*domain.TaskList, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	var list domain.TaskList
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&list)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		logger.ErrorLog(ctx, "failed to find task list %s: %v", id, err)
		return nil, fmt.Errorf("failed to find task list: %w", err)
	}
	return &list, nil
}

func (r *taskListRepository) FindVisible(ctx context.Context, userID string) ([]domain.TaskList, error) {
	return r.find(ctx, visibleFilter(userID))
}

func (r *taskListRepository) FindJoinable(ctx context.Context, userID string) ([]domain.TaskList, error) {
	return r.find(ctx, joinableFilter(userID))
}

func (r *taskListRepository) find(ctx context.Context, filter bson.M) ([]domain.TaskList, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		logger.ErrorLog(ctx, "failed to query task lists: %v", err)
		return nil, fmt.Errorf("failed to query task lists: %w", err)
	}
	defer cursor.Close(ctx)

	lists := []domain.TaskList{}
	if err := cursor.All(ctx, &lists); err != nil {
		logger.ErrorLog(ctx, "failed to decode task lists: %v", err)
		return nil, fmt.Errorf("failed to decode task lists: %w", err)
	}
	return lists, nil
}

func (r *taskListRepository) Insert(ctx context.Context, list *domain.TaskList) (*domain.TaskList, error) {
	list.ID = primitive.NewObjectID()
	list.UpdatedAt = time.Now()
	if list.Tasks == nil {
		list.Tasks = []domain.Task{}
	}
	if list.Watcher == nil {
		list.Watcher = []string{}
	}

	if _, err := r.collection.InsertOne(ctx, list); err != nil {
		logger.ErrorLog(ctx, "failed to insert task list: %v", err)
		return nil, fmt.Errorf("failed to insert task list: %w", err)
	}
	return list, nil
}

func (r *taskListRepository) Update(ctx context.Context, id string, update domain.ListUpdate) (*domain.TaskList, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	watcher := update.Watcher
	if !update.ShareMode.Shared() || watcher == nil {
		watcher = []string{}
	}
	tasks := update.Tasks
	if tasks == nil {
		tasks = []domain.Task{}
	}

	set := bson.M{
		"title":      update.Title,
		"tasks":      tasks,
		"shareMode":  update.ShareMode,
		"watcher":    watcher,
		"updated_at": time.Now(),
	}

	result := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		if result.Err() == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		logger.ErrorLog(ctx, "failed to update task list %s: %v", id, result.Err())
		return nil, fmt.Errorf("failed to update task list: %w", result.Err())
	}

	var updated domain.TaskList
	if err := result.Decode(&updated); err != nil {
		return nil, fmt.Errorf("failed to decode updated task list: %w", err)
	}
	return &updated, nil
}

func (r *taskListRepository) ReplaceTasks(ctx context.Context, id string, tasks []domain.Task) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"tasks": tasks, "updated_at": time.Now()}},
	)
	if err != nil {
		logger.ErrorLog(ctx, "failed to replace tasks of %s: %v", id, err)
		return fmt.Errorf("failed to replace tasks: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddWatcher inserts the user into the watcher set with $addToSet, so two
// concurrent calls for the same user still yield a single entry.
func (r *taskListRepository) AddWatcher(ctx context.Context, id, userID string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": objectID},
		bson.M{
			"$addToSet": bson.M{"watcher": userID},
			"$set":      bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		logger.ErrorLog(ctx, "failed to add watcher to %s: %v", id, err)
		return fmt.Errorf("failed to add watcher: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// RemoveWatcher pulls the user from the watcher set. Succeeds even when the
// user was never a watcher or the list does not exist.
func (r *taskListRepository) RemoveWatcher(ctx context.Context, id, userID string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}

	_, err = r.collection.UpdateOne(
		ctx,
		bson.M{"_id": objectID},
		bson.M{
			"$pull": bson.M{"watcher": userID},
			"$set":  bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		logger.ErrorLog(ctx, "failed to remove watcher from %s: %v", id, err)
		return fmt.Errorf("failed to remove watcher: %w", err)
	}
	return nil
}

func (r *taskListRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		logger.ErrorLog(ctx, "failed to delete task list %s: %v", id, err)
		return fmt.Errorf("failed to delete task list: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
