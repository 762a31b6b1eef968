package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/taskboard/taskboard/internal/apperr"
	"github.com/taskboard/taskboard/internal/board"
	"github.com/taskboard/taskboard/internal/models"
)

const taskColumns = `t.id, t.title, t.description, t.completed, t.user_id, u.name,
	t.category, t.status, t.position, t.created_at, t.updated_at`

type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	var t models.Task
	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.Completed,
		&t.UserID,
		&t.UserName,
		&t.Category,
		&t.Status,
		&t.Position,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// List returns every task visible to the viewer, ordered the way the
// board renders: by status column, then ascending position.
func (r *TaskRepository) List(viewerID int64, privileged bool) ([]models.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks t
		JOIN users u ON t.user_id = u.id
	`
	var args []any
	if !privileged {
		query += ` WHERE t.user_id = ?`
		args = append(args, viewerID)
	}
	query += ` ORDER BY t.status, t.position ASC, t.created_at DESC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

// ListByUser returns one user's tasks, newest first.
func (r *TaskRepository) ListByUser(userID int64) ([]models.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks t
		JOIN users u ON t.user_id = u.id
		WHERE t.user_id = ?
		ORDER BY t.created_at DESC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("list user tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepository) Get(q Queryer, id int64) (*models.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks t
		JOIN users u ON t.user_id = u.id
		WHERE t.id = ?
	`

	t, err := scanTask(q.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.New(apperr.ErrNotFound, "task not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

func (r *TaskRepository) Insert(tx *sql.Tx, t *models.Task) (int64, error) {
	result, err := tx.Exec(
		`INSERT INTO tasks (title, description, completed, user_id, category, status, position)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.Title, t.Description, t.Completed, t.UserID, t.Category, t.Status, t.Position,
	)
	if err != nil {
		return 0, fmt.Errorf("insert task: %w", err)
	}
	return result.LastInsertId()
}

// BucketSize counts the tasks in a (category, status) bucket.
func (r *TaskRepository) BucketSize(q Queryer, b board.Bucket) (int, error) {
	var n int
	err := q.QueryRow(
		`SELECT COUNT(*) FROM tasks WHERE category = ? AND status = ?`,
		b.Category, b.Status,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count bucket: %w", err)
	}
	return n, nil
}

// BucketPositions returns the positions present in a bucket, ascending.
func (r *TaskRepository) BucketPositions(q Queryer, b board.Bucket) ([]int, error) {
	rows, err := q.Query(
		`SELECT position FROM tasks WHERE category = ? AND status = ? ORDER BY position ASC`,
		b.Category, b.Status,
	)
	if err != nil {
		return nil, fmt.Errorf("bucket positions: %w", err)
	}
	defer rows.Close()

	var positions []int
	for rows.Next() {
		var p int
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		positions = append(positions, p)
	}
	return positions, rows.Err()
}

// ApplyShift executes one planned range shift as a bulk update.
func (r *TaskRepository) ApplyShift(tx *sql.Tx, s board.Shift) error {
	var err error
	if s.To >= 0 {
		_, err = tx.Exec(
			`UPDATE tasks SET position = position + ?
			 WHERE category = ? AND status = ? AND position >= ? AND position <= ?`,
			s.Delta, s.Bucket.Category, s.Bucket.Status, s.From, s.To,
		)
	} else {
		_, err = tx.Exec(
			`UPDATE tasks SET position = position + ?
			 WHERE category = ? AND status = ? AND position >= ?`,
			s.Delta, s.Bucket.Category, s.Bucket.Status, s.From,
		)
	}
	if err != nil {
		return fmt.Errorf("shift positions: %w", err)
	}
	return nil
}

// Place writes the mover's final bucket, position, and completed flag.
func (r *TaskRepository) Place(tx *sql.Tx, id int64, b board.Bucket, pos int, completed bool) error {
	_, err := tx.Exec(
		`UPDATE tasks SET status = ?, category = ?, position = ?, completed = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		b.Status, b.Category, pos, completed, id,
	)
	if err != nil {
		return fmt.Errorf("place task: %w", err)
	}
	return nil
}

// TaskUpdate carries the optional field updates of PUT /tasks/:id.
// Nil means unchanged. Category and status changes go through the
// mover instead, so they are not represented here.
type TaskUpdate struct {
	Title       *string
	Description *string
	Completed   *bool
	UserID      *int64
}

func (r *TaskRepository) Update(tx *sql.Tx, id int64, u TaskUpdate) error {
	var sets []string
	var args []any

	if u.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *u.Title)
	}
	if u.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *u.Description)
	}
	if u.Completed != nil {
		sets = append(sets, "completed = ?")
		args = append(args, *u.Completed)
	}
	if u.UserID != nil {
		sets = append(sets, "user_id = ?")
		args = append(args, *u.UserID)
	}

	if len(sets) == 0 {
		return nil
	}

	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	query := "UPDATE tasks SET "
	for i, s := range sets {
		if i > 0 {
			query += ", "
		}
		query += s
	}
	query += " WHERE id = ?"

	if _, err := tx.Exec(query, args...); err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

func (r *TaskRepository) Delete(tx *sql.Tx, id int64) error {
	if _, err := tx.Exec(`DELETE FROM tasks WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// UserBuckets returns the distinct buckets holding tasks of one user.
func (r *TaskRepository) UserBuckets(tx *sql.Tx, userID int64) ([]board.Bucket, error) {
	rows, err := tx.Query(
		`SELECT DISTINCT category, status FROM tasks WHERE user_id = ?`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("user buckets: %w", err)
	}
	defer rows.Close()

	var buckets []board.Bucket
	for rows.Next() {
		var b board.Bucket
		if err := rows.Scan(&b.Category, &b.Status); err != nil {
			return nil, err
		}
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}

func (r *TaskRepository) DeleteByUser(tx *sql.Tx, userID int64) error {
	if _, err := tx.Exec(`DELETE FROM tasks WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("delete user tasks: %w", err)
	}
	return nil
}

// Resequence rewrites a bucket's positions to 0..n-1 preserving the
// current order. Used after bulk deletions that can leave gaps.
func (r *TaskRepository) Resequence(tx *sql.Tx, b board.Bucket) error {
	rows, err := tx.Query(
		`SELECT id FROM tasks WHERE category = ? AND status = ? ORDER BY position ASC, id ASC`,
		b.Category, b.Status,
	)
	if err != nil {
		return fmt.Errorf("resequence bucket: %w", err)
	}

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	for i, id := range ids {
		if _, err := tx.Exec(`UPDATE tasks SET position = ? WHERE id = ?`, i, id); err != nil {
			return fmt.Errorf("resequence position: %w", err)
		}
	}
	return nil
}

func (r *TaskRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM tasks`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return n, nil
}
