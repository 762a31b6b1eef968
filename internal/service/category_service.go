package service

import (
	"database/sql"
	"strings"

	"github.com/taskboard/taskboard/internal/apperr"
	"github.com/taskboard/taskboard/internal/models"
	"github.com/taskboard/taskboard/internal/policy"
	"github.com/taskboard/taskboard/internal/repository"
)

type CategoryService struct {
	db         *sql.DB
	categories *repository.CategoryRepository
}

func NewCategoryService(db *sql.DB, categories *repository.CategoryRepository) *CategoryService {
	return &CategoryService{db: db, categories: categories}
}

func canModifyCategory(caller policy.Caller, c *models.Category) bool {
	if policy.IsPrivileged(caller) {
		return true
	}
	return c.UserID != nil && *c.UserID == caller.ID
}

func (s *CategoryService) List(caller policy.Caller) ([]models.Category, error) {
	return s.categories.List(caller.ID, policy.IsPrivileged(caller))
}

// Create adds a category. Admins create global categories; everyone
// else owns theirs.
func (s *CategoryService) Create(caller policy.Caller, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.New(apperr.ErrValidation, "name is required")
	}

	var userID *int64
	if caller.Role != models.RoleAdmin {
		userID = &caller.ID
	}
	return s.categories.Create(name, userID)
}

// Rename changes a category's name and carries every referencing task
// along in the same transaction.
func (s *CategoryService) Rename(caller policy.Caller, id int64, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.New(apperr.ErrValidation, "name is required")
	}

	err := repository.WithTx(s.db, func(tx *sql.Tx) error {
		category, err := s.categories.Get(tx, id)
		if err != nil {
			return err
		}
		if !canModifyCategory(caller, category) {
			return apperr.New(apperr.ErrPermissionDenied, "permission denied")
		}
		if category.Name == name {
			return nil
		}
		return s.categories.Rename(tx, id, category.Name, name)
	})
	if err != nil {
		return nil, err
	}

	return s.categories.Get(s.db, id)
}

// Delete removes a category. A category still referenced by tasks
// cannot be deleted.
func (s *CategoryService) Delete(caller policy.Caller, id int64) error {
	return repository.WithTx(s.db, func(tx *sql.Tx) error {
		category, err := s.categories.Get(tx, id)
		if err != nil {
			return err
		}
		if !canModifyCategory(caller, category) {
			return apperr.New(apperr.ErrPermissionDenied, "permission denied")
		}

		hasTasks, err := s.categories.HasTasks(tx, category.Name)
		if err != nil {
			return err
		}
		if hasTasks {
			return apperr.New(apperr.ErrConflict, "category has tasks assigned to it")
		}
		return s.categories.Delete(tx, id)
	})
}
