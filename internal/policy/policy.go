// Package policy holds the pure authorization checks. Every function
// answers permit/deny from the caller's identity alone; violations are
// turned into errors by the callers, never silently ignored.
package policy

import "github.com/taskboard/taskboard/internal/models"

// Caller is the authenticated identity a request acts as.
type Caller struct {
	ID   int64
	Role models.Role
}

// IsPrivileged reports whether the caller may act on resources owned
// by other users.
func IsPrivileged(c Caller) bool {
	return c.Role == models.RoleAdmin || c.Role == models.RoleManager
}

// CanManageTasks reports whether the caller may create or mutate tasks
// belonging to targetUserID.
func CanManageTasks(c Caller, targetUserID int64) bool {
	if IsPrivileged(c) {
		return true
	}
	return c.ID == targetUserID
}

// CanAccessUser reports whether the caller may read or update the
// account of targetUserID.
func CanAccessUser(c Caller, targetUserID int64) bool {
	if IsPrivileged(c) {
		return true
	}
	return c.ID == targetUserID
}

// RequireRole reports whether the caller's role is one of the allowed
// roles.
func RequireRole(c Caller, roles ...models.Role) bool {
	for _, r := range roles {
		if c.Role == r {
			return true
		}
	}
	return false
}
