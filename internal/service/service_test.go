package service

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/taskboard/taskboard/internal/board"
	"github.com/taskboard/taskboard/internal/models"
	"github.com/taskboard/taskboard/internal/policy"
	"github.com/taskboard/taskboard/internal/repository"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := repository.InitDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("init db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createUser(t *testing.T, users *repository.UserRepository, name, email string, role models.Role) policy.Caller {
	t.Helper()
	id, err := users.Create(&models.User{
		Name:     name,
		Email:    email,
		Password: "not-a-real-hash",
		Role:     role,
	})
	if err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return policy.Caller{ID: id, Role: role}
}

func mustCreateTask(t *testing.T, s *TaskService, caller policy.Caller, in CreateTaskInput) *models.Task {
	t.Helper()
	task, err := s.Create(caller, in)
	if err != nil {
		t.Fatalf("create task %q: %v", in.Title, err)
	}
	return task
}

func bucketPositions(t *testing.T, db *sql.DB, tasks *repository.TaskRepository, b board.Bucket) []int {
	t.Helper()
	positions, err := tasks.BucketPositions(db, b)
	if err != nil {
		t.Fatalf("bucket positions: %v", err)
	}
	return positions
}

func assertDense(t *testing.T, db *sql.DB, tasks *repository.TaskRepository, b board.Bucket) {
	t.Helper()
	positions := bucketPositions(t, db, tasks, b)
	for i, p := range positions {
		if p != i {
			t.Fatalf("bucket %v positions %v: want dense 0..%d", b, positions, len(positions)-1)
		}
	}
}

func taskPosition(t *testing.T, db *sql.DB, tasks *repository.TaskRepository, id int64) (board.Bucket, int) {
	t.Helper()
	task, err := tasks.Get(db, id)
	if err != nil {
		t.Fatalf("get task %d: %v", id, err)
	}
	return board.Bucket{Category: task.Category, Status: string(task.Status)}, task.Position
}
