package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/gehrmanng/taskplanner/internal/domain"
)

// visibleFilter matches lists the user owns or watches.
func visibleFilter(userID string) bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"owner": userID},
		bson.M{"watcher": userID},
	}}
}

// joinableFilter matches shared lists the user neither owns nor watches yet.
// Equality on the array field "watcher" matches element membership, so $ne
// means "not in the watcher set".
func joinableFilter(userID string) bson.M {
	return bson.M{
		"shareMode": bson.M{"$in": bson.A{domain.ShareModeRead, domain.ShareModeWrite}},
		"owner":     bson.M{"$ne": userID},
		"watcher":   bson.M{"$ne": userID},
	}
}
