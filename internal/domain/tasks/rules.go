package tasks

import (
	"github.com/awrteam/awr/internal/access"
	"github.com/awrteam/awr/internal/identity"
)

// CanSetStatus reports whether role may set st through the constrained status
// endpoint. Admins set anything; a brigade may only move a task into work.
func CanSetStatus(role identity.Role, st Status) bool {
	if !ValidStatus(st) {
		return false
	}
	if access.Can(role, access.OpTaskStatusAny) {
		return true
	}
	return st == StatusInProgress && access.Can(role, access.OpTaskStatusInProgress)
}
