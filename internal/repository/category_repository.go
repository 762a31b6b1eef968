package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/taskboard/taskboard/internal/apperr"
	"github.com/taskboard/taskboard/internal/models"
)

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// List returns the categories visible to the viewer: everything for
// privileged callers, global plus own for everyone else.
func (r *CategoryRepository) List(viewerID int64, privileged bool) ([]models.Category, error) {
	query := `SELECT id, name, user_id, created_at FROM categories`
	var args []any
	if !privileged {
		query += ` WHERE user_id IS NULL OR user_id = ?`
		args = append(args, viewerID)
	}
	query += ` ORDER BY name`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.UserID, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) Get(q Queryer, id int64) (*models.Category, error) {
	var c models.Category
	err := q.QueryRow(
		`SELECT id, name, user_id, created_at FROM categories WHERE id = ?`,
		id,
	).Scan(&c.ID, &c.Name, &c.UserID, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.New(apperr.ErrNotFound, "category not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepository) Create(name string, userID *int64) (*models.Category, error) {
	result, err := r.db.Exec(
		`INSERT INTO categories (name, user_id) VALUES (?, ?)`,
		name, userID,
	)
	if isUniqueViolation(err) {
		return nil, apperr.New(apperr.ErrConflict, "category already exists")
	}
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return r.Get(r.db, id)
}

// Rename changes a category's name and rewrites the category column of
// every task that referenced the old name. Tasks store the name, not
// the id, so both updates must land together.
func (r *CategoryRepository) Rename(tx *sql.Tx, id int64, oldName, newName string) error {
	_, err := tx.Exec(`UPDATE categories SET name = ? WHERE id = ?`, newName, id)
	if isUniqueViolation(err) {
		return apperr.New(apperr.ErrConflict, "category already exists")
	}
	if err != nil {
		return fmt.Errorf("rename category: %w", err)
	}

	_, err = tx.Exec(`UPDATE tasks SET category = ? WHERE category = ?`, newName, oldName)
	if err != nil {
		return fmt.Errorf("rename category tasks: %w", err)
	}
	return nil
}

// HasTasks reports whether any task references the category name.
func (r *CategoryRepository) HasTasks(q Queryer, name string) (bool, error) {
	var n int
	err := q.QueryRow(`SELECT COUNT(*) FROM tasks WHERE category = ?`, name).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("count category tasks: %w", err)
	}
	return n > 0, nil
}

func (r *CategoryRepository) Delete(q Queryer, id int64) error {
	result, err := q.Exec(`DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if n == 0 {
		return apperr.New(apperr.ErrNotFound, "category not found")
	}
	return nil
}
