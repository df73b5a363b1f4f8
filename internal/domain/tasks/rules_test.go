package tasks

import (
	"testing"

	"github.com/awrteam/awr/internal/identity"
	"github.com/stretchr/testify/assert"
)

func TestCanSetStatus(t *testing.T) {
	cases := []struct {
		name string
		role identity.Role
		st   Status
		want bool
	}{
		{"admin any status", identity.RoleAdmin, StatusDone, true},
		{"admin deferred", identity.RoleAdmin, StatusDeferred, true},
		{"admin problem", identity.RoleAdmin, StatusProblem, true},
		{"admin invalid label", identity.RoleAdmin, Status("готово"), false},
		{"brigade in progress", identity.RoleBrigade, StatusInProgress, true},
		{"brigade done", identity.RoleBrigade, StatusDone, false},
		{"brigade new", identity.RoleBrigade, StatusNew, false},
		{"storekeeper in progress", identity.RoleStorekeeper, StatusInProgress, false},
		{"storekeeper done", identity.RoleStorekeeper, StatusDone, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanSetStatus(tc.role, tc.st))
		})
	}
}

func TestValidStatus(t *testing.T) {
	for _, st := range []Status{StatusNew, StatusInProgress, StatusDone, StatusDeferred, StatusProblem} {
		assert.True(t, ValidStatus(st))
	}
	assert.False(t, ValidStatus(Status("")))
	assert.False(t, ValidStatus(Status("Done")))
}
