package policy

import (
	"testing"

	"github.com/taskboard/taskboard/internal/models"
)

func TestCanManageTasks(t *testing.T) {
	tests := []struct {
		name   string
		caller Caller
		target int64
		want   bool
	}{
		{"admin manages anyone", Caller{ID: 1, Role: models.RoleAdmin}, 2, true},
		{"manager manages anyone", Caller{ID: 1, Role: models.RoleManager}, 2, true},
		{"reader manages own", Caller{ID: 3, Role: models.RoleReader}, 3, true},
		{"reader cannot manage others", Caller{ID: 3, Role: models.RoleReader}, 4, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanManageTasks(tt.caller, tt.target); got != tt.want {
				t.Errorf("CanManageTasks(%+v, %d) = %v, want %v", tt.caller, tt.target, got, tt.want)
			}
		})
	}
}

func TestCanAccessUser(t *testing.T) {
	reader := Caller{ID: 5, Role: models.RoleReader}
	if !CanAccessUser(reader, 5) {
		t.Error("reader should access their own account")
	}
	if CanAccessUser(reader, 6) {
		t.Error("reader should not access another account")
	}
	if !CanAccessUser(Caller{ID: 1, Role: models.RoleManager}, 6) {
		t.Error("manager should access any account")
	}
}

func TestRequireRole(t *testing.T) {
	manager := Caller{ID: 1, Role: models.RoleManager}
	if !RequireRole(manager, models.RoleAdmin, models.RoleManager) {
		t.Error("manager should pass an admin/manager gate")
	}
	if RequireRole(Caller{ID: 2, Role: models.RoleReader}, models.RoleAdmin, models.RoleManager) {
		t.Error("reader should fail an admin/manager gate")
	}
}

func TestRoleHierarchy(t *testing.T) {
	if !models.RoleAdmin.AtLeast(models.RoleManager) || !models.RoleManager.AtLeast(models.RoleReader) {
		t.Error("role order should be reader < manager < admin")
	}
	if models.RoleReader.AtLeast(models.RoleManager) {
		t.Error("reader should not reach manager level")
	}
}
