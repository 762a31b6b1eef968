package api_test

import (
	"database/sql"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/taskboard/taskboard/client"
	"github.com/taskboard/taskboard/internal/api"
	"github.com/taskboard/taskboard/internal/auth"
	"github.com/taskboard/taskboard/internal/board"
	"github.com/taskboard/taskboard/internal/models"
	"github.com/taskboard/taskboard/internal/repository"
)

func newServer(t *testing.T) (*httptest.Server, *sql.DB) {
	t.Helper()
	db, err := repository.InitDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("init db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	srv := httptest.NewServer(api.SetupRouter(db, tokens))
	t.Cleanup(srv.Close)
	return srv, db
}

// loginAdmin provisions an admin account directly in the store and
// returns a logged-in client for it.
func loginAdmin(t *testing.T, srv *httptest.Server, db *sql.DB) *client.Client {
	t.Helper()
	hash, err := auth.HashPassword("admin123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	_, err = repository.NewUserRepository(db).Create(&models.User{
		Name:     "Admin",
		Email:    "admin@example.com",
		Password: hash,
		Role:     models.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}

	c := client.New(srv.URL)
	if _, err := c.Login("admin@example.com", "admin123"); err != nil {
		t.Fatalf("admin login: %v", err)
	}
	return c
}

func TestAuthFlow(t *testing.T) {
	srv, _ := newServer(t)
	c := client.New(srv.URL)

	session, err := c.Register("Nova Pessoa", "nova@example.com", "secret1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if session.User.Role != models.RoleReader {
		t.Errorf("registered role = %s, want reader", session.User.Role)
	}

	user, err := c.Verify()
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if user.Email != "nova@example.com" {
		t.Errorf("verify returned %q", user.Email)
	}

	// Login on a fresh client works with the same credentials.
	c2 := client.New(srv.URL)
	if _, err := c2.Login("nova@example.com", "secret1"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := c2.Login("nova@example.com", "wrong"); err == nil {
		t.Error("wrong password should fail")
	}

	// Requests without or with a bad token are rejected.
	anon := client.New(srv.URL)
	if _, err := anon.Tasks(); err == nil {
		t.Error("unauthenticated list should fail")
	}
	anon.SetToken("not-a-token")
	if _, err := anon.Verify(); err == nil {
		t.Error("garbage token should fail verification")
	}
}

func TestTaskLifecycle(t *testing.T) {
	srv, db := newServer(t)
	c := loginAdmin(t, srv, db)

	a, err := c.CreateTask(client.TaskDraft{Title: "A", Category: "Trabalho"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	b, err := c.CreateTask(client.TaskDraft{Title: "B", Category: "Trabalho"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	cc, err := c.CreateTask(client.TaskDraft{Title: "C", Category: "Trabalho"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if a.Position != 0 || b.Position != 1 || cc.Position != 2 {
		t.Fatalf("creates not appended: %d %d %d", a.Position, b.Position, cc.Position)
	}

	if err := c.MoveTask(cc.ID, nil, nil, 0); err != nil {
		t.Fatalf("move: %v", err)
	}

	tasks, err := c.Tasks()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	pos := make(map[int64]int)
	for _, task := range tasks {
		pos[task.ID] = task.Position
	}
	if pos[cc.ID] != 0 || pos[a.ID] != 1 || pos[b.ID] != 2 {
		t.Errorf("after move positions = %v", pos)
	}

	done := "done"
	updated, err := c.UpdateTask(a.ID, client.TaskPatch{Status: &done})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != models.StatusDone || !updated.Completed || updated.Position != 0 {
		t.Errorf("updated task = (%s, %v, %d), want (done, true, 0)",
			updated.Status, updated.Completed, updated.Position)
	}

	if err := c.DeleteTask(cc.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err := c.Tasks()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d tasks after delete, want 2", len(got))
	}
}

// TestMoveLocalMatchesServer applies the same drag with MoveLocal and
// MoveTask and checks the cached board ends up identical to a refetch.
func TestMoveLocalMatchesServer(t *testing.T) {
	srv, db := newServer(t)
	c := loginAdmin(t, srv, db)

	for _, d := range []client.TaskDraft{
		{Title: "A", Category: "Trabalho"},
		{Title: "B", Category: "Trabalho"},
		{Title: "C", Category: "Trabalho"},
		{Title: "D", Category: "Pessoal", Status: "done"},
	} {
		if _, err := c.CreateTask(d); err != nil {
			t.Fatalf("create %s: %v", d.Title, err)
		}
	}

	tasks, err := c.Tasks()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	items := client.BoardItems(tasks)

	// Drag B into (Pessoal, done) at position 0.
	var mover int64
	for _, task := range tasks {
		if task.Title == "B" {
			mover = task.ID
		}
	}
	target := board.Bucket{Category: "Pessoal", Status: "done"}
	landed, ok := client.MoveLocal(items, mover, target, 0)
	if !ok {
		t.Fatal("MoveLocal did not find the task")
	}
	if landed != 0 {
		t.Errorf("local landing position = %d, want 0", landed)
	}

	status, category := "done", "Pessoal"
	if err := c.MoveTask(mover, &status, &category, 0); err != nil {
		t.Fatalf("server move: %v", err)
	}

	fresh, err := c.Tasks()
	if err != nil {
		t.Fatalf("refetch: %v", err)
	}
	serverItems := make(map[int64]board.Item)
	for _, it := range client.BoardItems(fresh) {
		serverItems[it.ID] = it
	}
	for _, it := range items {
		if got := serverItems[it.ID]; got != it {
			t.Errorf("task %d: local %+v, server %+v", it.ID, it, got)
		}
	}
}

func TestRoleGates(t *testing.T) {
	srv, db := newServer(t)
	admin := loginAdmin(t, srv, db)

	reader := client.New(srv.URL)
	if _, err := reader.Register("Reader", "reader@example.com", "secret1"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := reader.Users(); err == nil || !strings.Contains(err.Error(), "insufficient permissions") {
		t.Errorf("reader listing users: got %v, want permission error", err)
	}
	if _, err := admin.Users(); err != nil {
		t.Errorf("admin listing users: %v", err)
	}

	// A reader cannot touch another user's task, and the position is
	// reported as not found rather than forbidden on reads.
	task, err := admin.CreateTask(client.TaskDraft{Title: "Admin task"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := reader.DeleteTask(task.ID); err == nil {
		t.Error("reader deleting another user's task should fail")
	}
	if err := reader.MoveTask(task.ID, nil, nil, 0); err == nil {
		t.Error("reader moving another user's task should fail")
	}

	tasks, err := reader.Tasks()
	if err != nil {
		t.Fatalf("reader list: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("reader sees %d foreign tasks", len(tasks))
	}
}

func TestCategoryEndpoints(t *testing.T) {
	srv, db := newServer(t)
	c := loginAdmin(t, srv, db)

	category, err := c.CreateCategory("Projetos")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if _, err := c.CreateCategory("Projetos"); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("duplicate category: got %v, want conflict", err)
	}

	task, err := c.CreateTask(client.TaskDraft{Title: "A", Category: "Projetos"})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if err := c.DeleteCategory(category.ID); err == nil {
		t.Error("deleting a category with tasks should fail")
	}

	renamed, err := c.RenameCategory(category.ID, "Entregas")
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if renamed.Name != "Entregas" {
		t.Errorf("renamed to %q, want Entregas", renamed.Name)
	}
	tasks, err := c.Tasks()
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	for _, got := range tasks {
		if got.ID == task.ID && got.Category != "Entregas" {
			t.Errorf("task category = %q after rename", got.Category)
		}
	}

	categories, err := c.Categories()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	found := false
	for _, cat := range categories {
		if cat.Name == "Entregas" {
			found = true
		}
	}
	if !found {
		t.Error("renamed category missing from list")
	}
}
