package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gehrmanng/taskplanner/internal/domain"
	"github.com/gehrmanng/taskplanner/internal/logger"
)

// userDoc is the slice of the users collection this service reads. The
// collection itself is owned by the authentication service.
type userDoc struct {
	ID    string `bson:"_id"`
	Name  string `bson:"name"`
	Email string `bson:"email"`
}

type userResolver struct {
	collection *mongo.Collection
}

// NewUserResolver resolves user ids against the shared "users" collection.
func NewUserResolver(db *mongo.Database) domain.UserResolver {
	return &userResolver{collection: db.Collection("users")}
}

// DisplayNames maps each id to the user's name, falling back to email and
// finally to the id itself for unknown users.
func (r *userResolver) DisplayNames(ctx context.Context, userIDs []string) (map[string]string, error) {
	names := make(map[string]string, len(userIDs))
	for _, id := range userIDs {
		names[id] = id
	}
	if len(userIDs) == 0 {
		return names, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": userIDs}})
	if err != nil {
		logger.ErrorLog(ctx, "failed to query users: %v", err)
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []userDoc
	if err := cursor.All(ctx, &users); err != nil {
		logger.ErrorLog(ctx, "failed to decode users: %v", err)
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}

	for _, u := range users {
		switch {
		case u.Name != "":
			names[u.ID] = u.Name
		case u.Email != "":
			names[u.ID] = u.Email
		}
	}
	return names, nil
}
