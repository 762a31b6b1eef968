package service

import (
	"errors"
	"testing"

	"github.com/taskboard/taskboard/internal/apperr"
	"github.com/taskboard/taskboard/internal/models"
	"github.com/taskboard/taskboard/internal/repository"
)

func TestCategoryCreateOwnership(t *testing.T) {
	db := newTestDB(t)
	users := repository.NewUserRepository(db)
	svc := NewCategoryService(db, repository.NewCategoryRepository(db))

	admin := createUser(t, users, "Admin", "admin@example.com", models.RoleAdmin)
	reader := createUser(t, users, "Reader", "reader@example.com", models.RoleReader)

	global, err := svc.Create(admin, "Financeiro")
	if err != nil {
		t.Fatalf("admin create: %v", err)
	}
	if global.UserID != nil {
		t.Error("admin-created category should be global")
	}

	owned, err := svc.Create(reader, "Hobbies")
	if err != nil {
		t.Fatalf("reader create: %v", err)
	}
	if owned.UserID == nil || *owned.UserID != reader.ID {
		t.Error("reader-created category should belong to the reader")
	}

	if _, err := svc.Create(admin, "Financeiro"); !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("duplicate name: got %v, want ErrConflict", err)
	}
	if _, err := svc.Create(admin, "  "); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("blank name: got %v, want ErrValidation", err)
	}
}

func TestCategoryListScoping(t *testing.T) {
	db := newTestDB(t)
	users := repository.NewUserRepository(db)
	svc := NewCategoryService(db, repository.NewCategoryRepository(db))

	admin := createUser(t, users, "Admin", "admin@example.com", models.RoleAdmin)
	alice := createUser(t, users, "Alice", "alice@example.com", models.RoleReader)
	bob := createUser(t, users, "Bob", "bob@example.com", models.RoleReader)

	if _, err := svc.Create(admin, "Global"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(alice, "Alice's"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(bob, "Bob's"); err != nil {
		t.Fatalf("create: %v", err)
	}

	list, err := svc.List(alice)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	names := make(map[string]bool, len(list))
	for _, c := range list {
		names[c.Name] = true
	}
	if !names["Global"] || !names["Alice's"] || names["Bob's"] {
		t.Errorf("alice sees %v, want global plus her own only", names)
	}

	all, err := svc.List(admin)
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("admin sees %d categories, want 3", len(all))
	}
}

func TestCategoryRenameRewritesTasks(t *testing.T) {
	db := newTestDB(t)
	users := repository.NewUserRepository(db)
	tasks := repository.NewTaskRepository(db)
	catSvc := NewCategoryService(db, repository.NewCategoryRepository(db))
	taskSvc := NewTaskService(db, tasks)

	admin := createUser(t, users, "Admin", "admin@example.com", models.RoleAdmin)

	category, err := catSvc.Create(admin, "Projetos")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	task := mustCreateTask(t, taskSvc, admin, CreateTaskInput{Title: "A", Category: "Projetos"})

	renamed, err := catSvc.Rename(admin, category.ID, "Entregas")
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if renamed.Name != "Entregas" {
		t.Errorf("name = %q, want Entregas", renamed.Name)
	}

	got, err := tasks.Get(db, task.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if got.Category != "Entregas" {
		t.Errorf("task category = %q, want Entregas", got.Category)
	}
}

func TestCategoryRenamePermissions(t *testing.T) {
	db := newTestDB(t)
	users := repository.NewUserRepository(db)
	svc := NewCategoryService(db, repository.NewCategoryRepository(db))

	admin := createUser(t, users, "Admin", "admin@example.com", models.RoleAdmin)
	reader := createUser(t, users, "Reader", "reader@example.com", models.RoleReader)

	global, err := svc.Create(admin, "Global")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Rename(reader, global.ID, "Hijacked"); !errors.Is(err, apperr.ErrPermissionDenied) {
		t.Errorf("reader renaming global: got %v, want ErrPermissionDenied", err)
	}

	own, err := svc.Create(reader, "Mine")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Rename(reader, own.ID, "Still Mine"); err != nil {
		t.Errorf("reader renaming own: %v", err)
	}
}

func TestCategoryDeleteBlockedByTasks(t *testing.T) {
	db := newTestDB(t)
	users := repository.NewUserRepository(db)
	tasks := repository.NewTaskRepository(db)
	catSvc := NewCategoryService(db, repository.NewCategoryRepository(db))
	taskSvc := NewTaskService(db, tasks)

	admin := createUser(t, users, "Admin", "admin@example.com", models.RoleAdmin)

	category, err := catSvc.Create(admin, "Projetos")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	task := mustCreateTask(t, taskSvc, admin, CreateTaskInput{Title: "A", Category: "Projetos"})

	if err := catSvc.Delete(admin, category.ID); !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("delete with tasks: got %v, want ErrConflict", err)
	}

	if err := taskSvc.Delete(admin, task.ID); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	if err := catSvc.Delete(admin, category.ID); err != nil {
		t.Errorf("delete empty category: %v", err)
	}
	if err := catSvc.Delete(admin, category.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("delete twice: got %v, want ErrNotFound", err)
	}
}
