package service

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/taskboard/taskboard/internal/apperr"
	"github.com/taskboard/taskboard/internal/auth"
	"github.com/taskboard/taskboard/internal/models"
	"github.com/taskboard/taskboard/internal/policy"
	"github.com/taskboard/taskboard/internal/repository"
)

type UserService struct {
	db    *sql.DB
	users *repository.UserRepository
	tasks *repository.TaskRepository
}

func NewUserService(db *sql.DB, users *repository.UserRepository, tasks *repository.TaskRepository) *UserService {
	return &UserService{db: db, users: users, tasks: tasks}
}

func (s *UserService) List(caller policy.Caller) ([]models.User, error) {
	if !policy.RequireRole(caller, models.RoleAdmin, models.RoleManager) {
		return nil, apperr.New(apperr.ErrPermissionDenied, "insufficient permissions")
	}
	return s.users.List()
}

func (s *UserService) Get(caller policy.Caller, id int64) (*models.User, error) {
	if !policy.CanAccessUser(caller, id) {
		return nil, apperr.New(apperr.ErrPermissionDenied, "you can only access your own data")
	}
	return s.users.Get(id)
}

// Tasks lists one user's tasks, for callers allowed to see them.
func (s *UserService) Tasks(caller policy.Caller, id int64) ([]models.Task, error) {
	if !policy.CanAccessUser(caller, id) {
		return nil, apperr.New(apperr.ErrPermissionDenied, "you can only access your own data")
	}
	return s.tasks.ListByUser(id)
}

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     models.Role
}

// Create adds a user with an explicit role. Admin only.
func (s *UserService) Create(caller policy.Caller, in CreateUserInput) (*models.User, error) {
	if !policy.RequireRole(caller, models.RoleAdmin) {
		return nil, apperr.New(apperr.ErrPermissionDenied, "insufficient permissions")
	}

	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, apperr.New(apperr.ErrValidation, "name, email and password are required")
	}
	if len(in.Password) < minPasswordLen {
		return nil, apperr.New(apperr.ErrValidation, "password must be at least %d characters", minPasswordLen)
	}

	role := in.Role
	if role == "" {
		role = models.RoleReader
	}
	if !role.Valid() {
		return nil, apperr.New(apperr.ErrValidation, "invalid role %q", in.Role)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	id, err := s.users.Create(&models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hash,
		Role:     role,
	})
	if err != nil {
		return nil, err
	}
	return s.users.Get(id)
}

type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
	Role     *models.Role
}

// Update edits a user account. Admins edit anyone; everyone else only
// their own profile, and never their role.
func (s *UserService) Update(caller policy.Caller, id int64, in UpdateUserInput) (*models.User, error) {
	if !policy.CanAccessUser(caller, id) {
		return nil, apperr.New(apperr.ErrPermissionDenied, "you can only access your own data")
	}
	if caller.Role != models.RoleAdmin && caller.ID != id {
		return nil, apperr.New(apperr.ErrPermissionDenied, "you can only update your own profile")
	}

	upd := repository.UserUpdate{Name: in.Name, Email: in.Email}

	if in.Role != nil {
		if caller.Role != models.RoleAdmin {
			if *in.Role != caller.Role {
				return nil, apperr.New(apperr.ErrPermissionDenied, "you cannot change your own role")
			}
		} else {
			if !in.Role.Valid() {
				return nil, apperr.New(apperr.ErrValidation, "invalid role %q", *in.Role)
			}
			upd.Role = in.Role
		}
	}

	if in.Email != nil {
		taken, err := s.users.EmailTaken(*in.Email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.New(apperr.ErrConflict, "email already exists")
		}
	}

	if in.Password != nil {
		if len(*in.Password) < minPasswordLen {
			return nil, apperr.New(apperr.ErrValidation, "password must be at least %d characters", minPasswordLen)
		}
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		upd.Password = &hash
	}

	if err := s.users.Update(id, upd); err != nil {
		return nil, err
	}
	return s.users.Get(id)
}

// Delete removes a user together with their tasks, resequencing every
// bucket those tasks occupied. Admin only, and never the caller's own
// account.
func (s *UserService) Delete(caller policy.Caller, id int64) error {
	if !policy.RequireRole(caller, models.RoleAdmin) {
		return apperr.New(apperr.ErrPermissionDenied, "insufficient permissions")
	}
	if caller.ID == id {
		return apperr.New(apperr.ErrValidation, "you cannot delete your own account")
	}

	return repository.WithTx(s.db, func(tx *sql.Tx) error {
		buckets, err := s.tasks.UserBuckets(tx, id)
		if err != nil {
			return err
		}
		if err := s.tasks.DeleteByUser(tx, id); err != nil {
			return err
		}
		for _, b := range buckets {
			if err := s.tasks.Resequence(tx, b); err != nil {
				return err
			}
		}
		return s.users.Delete(tx, id)
	})
}
