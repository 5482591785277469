package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gehrmanng/taskplanner/internal/domain"
)

func TestShareMode(t *testing.T) {
	assert.True(t, domain.ShareModeNone.Valid())
	assert.True(t, domain.ShareModeRead.Valid())
	assert.True(t, domain.ShareModeWrite.Valid())
	assert.False(t, domain.ShareMode("public").Valid())
	assert.False(t, domain.ShareMode("").Valid())

	assert.False(t, domain.ShareModeNone.Shared())
	assert.True(t, domain.ShareModeRead.Shared())
	assert.True(t, domain.ShareModeWrite.Shared())
}

func TestCanView(t *testing.T) {
	list := &domain.TaskList{
		Owner:     "u1",
		ShareMode: domain.ShareModeNone,
		Watcher:   []string{"u2"},
	}

	assert.True(t, list.CanView("u1"), "owner always views")
	assert.True(t, list.CanView("u2"), "watcher keeps visibility regardless of share mode")
	assert.False(t, list.CanView("u3"))
}

func TestCanMutate(t *testing.T) {
	tests := []struct {
		name      string
		shareMode domain.ShareMode
		watcher   []string
		userID    string
		want      bool
	}{
		{"owner", domain.ShareModeNone, nil, "u1", true},
		{"write watcher", domain.ShareModeWrite, []string{"u2"}, "u2", true},
		{"read watcher", domain.ShareModeRead, []string{"u2"}, "u2", false},
		{"former watcher after mode reset", domain.ShareModeNone, []string{"u2"}, "u2", false},
		{"stranger", domain.ShareModeWrite, []string{"u2"}, "u3", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := &domain.TaskList{Owner: "u1", ShareMode: tt.shareMode, Watcher: tt.watcher}
			assert.Equal(t, tt.want, list.CanMutate(tt.userID))
		})
	}
}
