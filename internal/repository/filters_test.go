package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/gehrmanng/taskplanner/internal/domain"
)

func TestVisibleFilter(t *testing.T) {
	filter := visibleFilter("u1")

	assert.Equal(t, bson.M{"$or": bson.A{
		bson.M{"owner": "u1"},
		bson.M{"watcher": "u1"},
	}}, filter)
}

func TestJoinableFilter(t *testing.T) {
	filter := joinableFilter("u1")

	assert.Equal(t, bson.M{"$in": bson.A{domain.ShareModeRead, domain.ShareModeWrite}}, filter["shareMode"])
	assert.Equal(t, bson.M{"$ne": "u1"}, filter["owner"])
	assert.Equal(t, bson.M{"$ne": "u1"}, filter["watcher"])
}
